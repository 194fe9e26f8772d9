package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/genuinetools/pkg/cli"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/teamlens/teamlens/pkg/aggregator"
	"github.com/teamlens/teamlens/pkg/auth"
	"github.com/teamlens/teamlens/pkg/llm"
	"github.com/teamlens/teamlens/pkg/provider"
	"github.com/teamlens/teamlens/pkg/team"
	"github.com/teamlens/teamlens/version"
)

var (
	githubToken string
	jiraURL     string
	jiraUser    string
	jiraToken   string
	geminiKey   string
	geminiModel string
	rosterPath  string
	debug       bool
)

func main() {
	// A local .env is optional; real environment variables win.
	_ = godotenv.Load()

	p := cli.NewProgram()
	p.Name = "teamlens"
	p.Description = "A service that answers questions about what your team has been working on"

	p.GitCommit = version.GITCOMMIT
	p.Version = version.VERSION

	p.FlagSet = flag.NewFlagSet("global", flag.ExitOnError)
	p.FlagSet.StringVar(&githubToken, "github-token", os.Getenv("GITHUB_TOKEN"), "GitHub API token (or env var GITHUB_TOKEN)")
	p.FlagSet.StringVar(&jiraURL, "jira-url", os.Getenv("JIRA_URL"), "Jira base URL (or env var JIRA_URL)")
	p.FlagSet.StringVar(&jiraUser, "jira-user", os.Getenv("JIRA_USER"), "Jira account email (or env var JIRA_USER)")
	p.FlagSet.StringVar(&jiraToken, "jira-token", os.Getenv("JIRA_TOKEN"), "Jira API token (or env var JIRA_TOKEN)")
	p.FlagSet.StringVar(&geminiKey, "gemini-key", os.Getenv("GEMINI_API_KEY"), "Gemini API key (or env var GEMINI_API_KEY)")
	p.FlagSet.StringVar(&geminiModel, "model", envOr("GEMINI_MODEL", "gemini-2.0-flash"), "Gemini model name (or env var GEMINI_MODEL)")
	p.FlagSet.StringVar(&rosterPath, "roster", envOr("TEAMLENS_ROSTER", "team.json"), "Path to the team roster JSON file (or env var TEAMLENS_ROSTER)")

	p.FlagSet.BoolVar(&debug, "debug", false, "enable debug logging")
	p.FlagSet.BoolVar(&debug, "d", false, "enable debug logging")

	p.Before = func(ctx context.Context) error {
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}

		if len(githubToken) < 1 {
			return errors.New("github token cannot be empty")
		}

		if len(jiraURL) < 1 || len(jiraUser) < 1 || len(jiraToken) < 1 {
			return errors.New("jira url, user, and token cannot be empty")
		}

		if len(geminiKey) < 1 {
			return errors.New("gemini api key cannot be empty")
		}

		return nil
	}

	p.Commands = []cli.Command{
		&serveCommand{},
		&askCommand{},
	}

	p.Run()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newApp wires the roster, connectors, model, and aggregator together
func newApp(ctx context.Context) (*aggregator.Aggregator, *team.Roster, provider.CodeProvider, provider.IssueProvider, error) {
	roster, err := team.Load(rosterPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	code := provider.NewGithubProvider(ctx, githubToken)
	issues := provider.NewJiraProvider(auth.NewAuthID(jiraURL, jiraUser, jiraToken))

	model, err := llm.NewGeminiClient(ctx, geminiKey, geminiModel)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	agg := aggregator.New(roster, code, issues, model)
	return agg, roster, code, issues, nil
}
