package aggregator_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gotest.tools/assert"

	"github.com/teamlens/teamlens/pkg/aggregator"
	"github.com/teamlens/teamlens/pkg/llm"
	"github.com/teamlens/teamlens/pkg/provider"
	"github.com/teamlens/teamlens/pkg/team"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	agg    *aggregator.Aggregator
	code   *provider.FakeCodeProvider
	issues *provider.FakeIssueProvider
	model  *llm.FakeClient
}

// newFixture wires an aggregator around fakes for Mike, who has one
// open issue, one recent commit, and one open pull request.
func newFixture(t *testing.T, responses ...string) *fixture {
	t.Helper()

	roster, err := team.New([]*team.Identity{
		{
			Name:       "Michael Chen",
			GithubUser: "mchen",
			JiraUser:   "michael.chen@example.com",
			Aliases:    []string{"Mike"},
		},
	})
	assert.NilError(t, err)

	code := provider.NewFakeCodeProvider()
	code.Commits["mchen"] = []*provider.Commit{
		{Message: "fix login redirect", Author: "mchen", Date: testNow.Add(-26 * time.Hour), Repo: "acme/api"},
	}
	code.Reviews["mchen"] = []*provider.Review{
		{Title: "Add rate limiter", Author: "mchen", Repo: "acme/api", State: "open", Link: "https://github.com/acme/api/pull/7"},
	}

	issues := provider.NewFakeIssueProvider()
	issues.Issues["michael.chen@example.com"] = []*provider.Issue{
		{Key: "TS-102", Summary: "Fix login redirect loop", Status: "In Progress", Type: "Bug", Priority: "High", Updated: testNow.Add(-2 * time.Hour), Link: "https://jira.example.com/browse/TS-102"},
	}

	model := &llm.FakeClient{Responses: responses}
	agg := aggregator.NewWithClock(roster, code, issues, model, func() time.Time { return testNow })

	return &fixture{agg: agg, code: code, issues: issues, model: model}
}

func TestUnknownPerson(t *testing.T) {
	f := newFixture(t)

	answer, err := f.agg.HandleQuestion(context.Background(), "What is Greg working on?")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(answer, "I don't know who that is"))
	assert.Assert(t, strings.Contains(answer, "Michael Chen"))

	// Resolution failed before anything else ran: no model calls, no fetches.
	assert.Equal(t, len(f.model.Prompts), 0)
	assert.Equal(t, f.code.Calls, 0)
	assert.Equal(t, f.issues.Calls, 0)
}

func TestNoActivitySkipsSummarizer(t *testing.T) {
	f := newFixture(t, "FULL_SUMMARY")
	f.code.Commits = map[string][]*provider.Commit{}
	f.code.Reviews = map[string][]*provider.Review{}
	f.issues.Issues = map[string][]*provider.Issue{}

	answer, err := f.agg.HandleQuestion(context.Background(), "What is Mike up to?")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(answer, "couldn't find any recent activity for Michael Chen"))

	// One model call for classification, none for summarization.
	assert.Equal(t, len(f.model.Prompts), 1)
}

func TestIssuesScenario(t *testing.T) {
	f := newFixture(t, "ISSUES", "Mike is working on TS-102.")

	answer, err := f.agg.HandleQuestion(context.Background(), "What JIRA tickets is Mike working on?")
	assert.NilError(t, err)
	assert.Equal(t, answer, "Mike is working on TS-102.")

	assert.Equal(t, len(f.model.Prompts), 2)
	summary := f.model.Prompts[1]
	assert.Assert(t, strings.Contains(summary, "TS-102"))
	assert.Assert(t, strings.Contains(summary, "updated 2 hours ago"))

	// Scoping contract: only issue data in the context, even though
	// Mike has commits and an open pull request.
	assert.Assert(t, !strings.Contains(summary, "fix login redirect\""))
	assert.Assert(t, !strings.Contains(summary, "pull request"))

	// Only the issue tracker was consulted.
	assert.Equal(t, f.code.Calls, 0)
	assert.Equal(t, f.issues.Calls, 1)
}

func TestCommitsScopingExcludesIssues(t *testing.T) {
	f := newFixture(t, "COMMITS", "Mike pushed one commit.")

	_, err := f.agg.HandleQuestion(context.Background(), "What did Mike push this week?")
	assert.NilError(t, err)

	summary := f.model.Prompts[1]
	assert.Assert(t, strings.Contains(summary, "fix login redirect"))
	assert.Assert(t, !strings.Contains(summary, "TS-102"))
	assert.Assert(t, !strings.Contains(summary, "Open issues"))
	assert.Equal(t, f.issues.Calls, 0)
}

func TestFullSummaryFetchesAllKinds(t *testing.T) {
	f := newFixture(t, "FULL_SUMMARY", "Mike did several things.")

	_, err := f.agg.HandleQuestion(context.Background(), "What is Mike working on?")
	assert.NilError(t, err)

	summary := f.model.Prompts[1]
	assert.Assert(t, strings.Contains(summary, "TS-102"))
	assert.Assert(t, strings.Contains(summary, "fix login redirect"))
	assert.Assert(t, strings.Contains(summary, "Add rate limiter"))
}

func TestRepeatedQuestionHitsCache(t *testing.T) {
	f := newFixture(t, "ISSUES", "Mike is working on TS-102.", "ISSUES", "Mike is working on TS-102.")

	_, err := f.agg.HandleQuestion(context.Background(), "What JIRA tickets is Mike working on?")
	assert.NilError(t, err)
	assert.Equal(t, f.issues.Calls, 1)

	_, err = f.agg.HandleQuestion(context.Background(), "What tickets does Mike have open?")
	assert.NilError(t, err)

	// Second question inside the TTL window: zero additional upstream
	// calls, but the summarizer still runs. Only raw data is cached.
	assert.Equal(t, f.issues.Calls, 1)
	assert.Equal(t, len(f.model.Prompts), 4)
}

func TestUpstreamErrorPropagates(t *testing.T) {
	f := newFixture(t, "ISSUES")
	f.issues.Err = &provider.APIError{StatusCode: 401, Message: "Authentication failed"}

	_, err := f.agg.HandleQuestion(context.Background(), "What tickets is Mike on?")
	assert.Assert(t, err != nil)
	assert.Assert(t, provider.IsAuthError(err))
	assert.Assert(t, strings.Contains(aggregator.ErrorMessage(err), "credentials"))
}

func TestSummarizerFailureDegradesGracefully(t *testing.T) {
	f := newFixture(t)
	f.model.Err = errors.New("model unavailable")

	// The classifier failure silently falls back to a full summary; the
	// summarizer failure yields the raw context instead of an error.
	answer, err := f.agg.HandleQuestion(context.Background(), "What is Mike doing?")
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(answer, "couldn't generate a summary"))
	assert.Assert(t, strings.Contains(answer, "TS-102"))
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"auth error",
			&provider.APIError{StatusCode: 403, Message: "forbidden"},
			"credentials",
		}, {
			"rate limited",
			&provider.APIError{StatusCode: 429, Message: "slow down"},
			"try again",
		}, {
			"not found",
			&provider.APIError{StatusCode: 404, Message: "no such repo"},
			"not found",
		}, {
			"generic",
			errors.New("connection reset"),
			"connection reset",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Assert(t, strings.Contains(aggregator.ErrorMessage(tt.err), tt.want))
		})
	}
}
