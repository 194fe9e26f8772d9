package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/teamlens/teamlens/pkg/llm"
)

// Intent names the subset of upstream data a question needs.
type Intent string

const (
	Issues      Intent = "ISSUES"
	Commits     Intent = "COMMITS"
	Reviews     Intent = "REVIEWS"
	FullSummary Intent = "FULL_SUMMARY"
)

const classifyPrompt = `You are a router for a team activity assistant.
Classify the question below into exactly one category:

ISSUES - the question is about tickets, issues, or tracker work
COMMITS - the question is about commits or pushed code
REVIEWS - the question is about pull requests or code reviews
FULL_SUMMARY - anything else, including general "what is X working on"

Respond with the category name only, nothing else.

Question: %s`

// Classify asks the model which data kinds the question needs. The
// model is an unreliable oracle: its answer is validated against the
// closed set and anything else, including a transport failure, falls
// back to FullSummary. Classification is never fatal.
func Classify(ctx context.Context, client llm.Client, question string) Intent {
	out, err := client.Generate(ctx, fmt.Sprintf(classifyPrompt, question))
	if err != nil {
		logrus.Warnf("intent classification failed, defaulting to full summary: %v", err)
		return FullSummary
	}
	it, ok := Parse(out)
	if !ok {
		logrus.Warnf("unrecognized intent %q, defaulting to full summary", out)
		return FullSummary
	}
	return it
}

// Parse validates a label against the closed intent set
func Parse(s string) (Intent, bool) {
	label := strings.ToUpper(strings.TrimSpace(s))
	label = strings.Trim(label, `"'.`)
	switch Intent(label) {
	case Issues, Commits, Reviews, FullSummary:
		return Intent(label), true
	}
	return "", false
}
