// The MIT License (MIT)
//
// Copyright (c) 2026 The teamlens authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/teamlens/teamlens/pkg/cache"
	"github.com/teamlens/teamlens/pkg/intent"
	"github.com/teamlens/teamlens/pkg/llm"
	"github.com/teamlens/teamlens/pkg/provider"
	"github.com/teamlens/teamlens/pkg/team"
)

const (
	noActivityTemplate = "I couldn't find any recent activity for %s: no open issues, no commits in the last week, and no open pull requests."

	degradedTemplate = "I found recent activity for %s but couldn't generate a summary right now. Here is the raw data:\n\n%s"

	summaryPrompt = `You are an assistant reporting on a team member's recent work.
Answer the question using only the context below. Answer only what was
asked, in plain prose. Cite the concrete identifiers and the relative
times given in the context.

Question: %s

Context:
%s`
)

// Aggregator answers questions by resolving who they are about,
// classifying what data they need, fetching just that data through the
// cache, and handing the assembled context to the summarizer.
type Aggregator struct {
	roster *team.Roster
	code   provider.CodeProvider
	issues provider.IssueProvider
	model  llm.Client
	now    func() time.Time

	issueCache  *cache.Store[[]*provider.Issue]
	commitCache *cache.Store[[]*provider.Commit]
	reviewCache *cache.Store[[]*provider.Review]
}

// New creates an aggregator with the default clock and cache TTL
func New(roster *team.Roster, code provider.CodeProvider, issues provider.IssueProvider, model llm.Client) *Aggregator {
	return NewWithClock(roster, code, issues, model, time.Now)
}

// NewWithClock creates an aggregator with an injected clock. The clock
// drives both cache expiry and relative-time phrasing, so tests can
// pin it.
func NewWithClock(roster *team.Roster, code provider.CodeProvider, issues provider.IssueProvider, model llm.Client, now func() time.Time) *Aggregator {
	return &Aggregator{
		roster:      roster,
		code:        code,
		issues:      issues,
		model:       model,
		now:         now,
		issueCache:  cache.NewStore[[]*provider.Issue](cache.DefaultTTL, now),
		commitCache: cache.NewStore[[]*provider.Commit](cache.DefaultTTL, now),
		reviewCache: cache.NewStore[[]*provider.Review](cache.DefaultTTL, now),
	}
}

// HandleQuestion runs the full pipeline for one question. The returned
// string is always user-facing; the error is an upstream failure for
// the caller to translate with ErrorMessage.
func (a *Aggregator) HandleQuestion(ctx context.Context, question string) (string, error) {
	id, ok := a.roster.Resolve(question)
	if !ok {
		return a.unknownPersonMessage(), nil
	}

	it := intent.Classify(ctx, a.model, question)
	logrus.WithField("person", id.Name).Infof("classified question as %s", it)

	var (
		issues  []*provider.Issue
		commits []*provider.Commit
		reviews []*provider.Review
		err     error
	)
	switch it {
	case intent.Issues:
		issues, err = a.fetchIssues(id)
	case intent.Commits:
		commits, err = a.fetchCommits(id)
	case intent.Reviews:
		reviews, err = a.fetchReviews(id)
	default:
		// Full summary: all three kinds, fetched concurrently so their
		// latencies overlap. Each consults the cache independently.
		var g errgroup.Group
		g.Go(func() error {
			var ferr error
			issues, ferr = a.fetchIssues(id)
			return ferr
		})
		g.Go(func() error {
			var ferr error
			commits, ferr = a.fetchCommits(id)
			return ferr
		})
		g.Go(func() error {
			var ferr error
			reviews, ferr = a.fetchReviews(id)
			return ferr
		})
		err = g.Wait()
	}
	if err != nil {
		return "", err
	}

	if len(issues)+len(commits)+len(reviews) == 0 {
		// Nothing to summarize; skip the model call entirely.
		return fmt.Sprintf(noActivityTemplate, id.Name), nil
	}

	assembled := buildContext(id, it, issues, commits, reviews, a.now())

	answer, err := a.model.Generate(ctx, fmt.Sprintf(summaryPrompt, question, assembled))
	if err != nil {
		logrus.Warnf("summarizer failed for %s: %v", id.Name, err)
		return fmt.Sprintf(degradedTemplate, id.Name, assembled), nil
	}
	return answer, nil
}

func (a *Aggregator) fetchIssues(id *team.Identity) ([]*provider.Issue, error) {
	if cached, ok := a.issueCache.Get(cache.KindIssues, id.JiraUser); ok {
		return cached, nil
	}
	issues, err := a.issues.ActiveIssues(id.JiraUser)
	if err != nil {
		return nil, err
	}
	a.issueCache.Put(cache.KindIssues, id.JiraUser, issues)
	return issues, nil
}

func (a *Aggregator) fetchCommits(id *team.Identity) ([]*provider.Commit, error) {
	if cached, ok := a.commitCache.Get(cache.KindCommits, id.GithubUser); ok {
		return cached, nil
	}
	commits, skipped, err := a.code.CommitsForUser(id.GithubUser)
	if err != nil {
		return nil, err
	}
	logSkipped(id.GithubUser, skipped)
	a.commitCache.Put(cache.KindCommits, id.GithubUser, commits)
	return commits, nil
}

func (a *Aggregator) fetchReviews(id *team.Identity) ([]*provider.Review, error) {
	if cached, ok := a.reviewCache.Get(cache.KindReviews, id.GithubUser); ok {
		return cached, nil
	}
	reviews, skipped, err := a.code.ReviewsForUser(id.GithubUser)
	if err != nil {
		return nil, err
	}
	logSkipped(id.GithubUser, skipped)
	a.reviewCache.Put(cache.KindReviews, id.GithubUser, reviews)
	return reviews, nil
}

func logSkipped(user string, skipped []provider.SkippedRepo) {
	for _, s := range skipped {
		logrus.WithField("user", user).Warnf("skipped repo %s: %v", s.Repo, s.Reason)
	}
}

func (a *Aggregator) unknownPersonMessage() string {
	var names []string
	for _, m := range a.roster.Members() {
		names = append(names, m.Name)
	}
	return fmt.Sprintf("I don't know who that is. I can answer questions about: %s.", strings.Join(names, ", "))
}

// ErrorMessage translates an upstream failure into the message shown to
// the user. Raw errors keep their text for diagnosability; stack traces
// never leak.
func ErrorMessage(err error) string {
	switch {
	case provider.IsAuthError(err):
		return "One of the upstream services rejected our credentials. Check the GitHub and Jira tokens."
	case provider.IsRateLimited(err):
		return "An upstream service is rate limiting us. Please try again in a few minutes."
	case provider.IsNotFound(err):
		return fmt.Sprintf("An upstream resource was not found: %v", err)
	default:
		return fmt.Sprintf("Something went wrong talking to an upstream service: %v", err)
	}
}
