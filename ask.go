package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/teamlens/teamlens/pkg/aggregator"
)

const askHelp = `Ask a one-off question from the command line.`

func (cmd *askCommand) Name() string      { return "ask" }
func (cmd *askCommand) Args() string      { return "QUESTION" }
func (cmd *askCommand) ShortHelp() string { return askHelp }
func (cmd *askCommand) LongHelp() string  { return askHelp }
func (cmd *askCommand) Hidden() bool      { return false }

func (cmd *askCommand) Register(fs *flag.FlagSet) {}

type askCommand struct{}

func (cmd *askCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("pass a question, e.g. teamlens ask \"what is Mike working on?\"")
	}
	question := strings.Join(args, " ")

	agg, _, _, _, err := newApp(ctx)
	if err != nil {
		return err
	}

	answer, err := agg.HandleQuestion(ctx, question)
	if err != nil {
		fmt.Println(aggregator.ErrorMessage(err))
		return nil
	}

	fmt.Println(answer)
	return nil
}
