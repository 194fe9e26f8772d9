package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/teamlens/teamlens/pkg/server"
)

const serveHelp = `Start the teamlens HTTP server.`

func (cmd *serveCommand) Name() string      { return "serve" }
func (cmd *serveCommand) Args() string      { return "[OPTIONS]" }
func (cmd *serveCommand) ShortHelp() string { return serveHelp }
func (cmd *serveCommand) LongHelp() string  { return serveHelp }
func (cmd *serveCommand) Hidden() bool      { return false }

func (cmd *serveCommand) Register(fs *flag.FlagSet) {
	fs.StringVar(&cmd.addr, "addr", ":8080", "address to listen on")
}

type serveCommand struct {
	addr string
}

func (cmd *serveCommand) Run(ctx context.Context, args []string) error {
	// On ^C, or SIGTERM handle exit.
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)
	signal.Notify(signals, syscall.SIGTERM)

	_, cancel := context.WithCancel(ctx)
	go func() {
		for sig := range signals {
			cancel()
			logrus.Infof("Received %s, exiting.", sig.String())
			os.Exit(0)
		}
	}()

	agg, roster, code, issues, err := newApp(ctx)
	if err != nil {
		return err
	}

	srv := server.New(agg, roster, code, issues)
	logrus.Infof("teamlens listening on %s", cmd.addr)
	return http.ListenAndServe(cmd.addr, srv.Router())
}
