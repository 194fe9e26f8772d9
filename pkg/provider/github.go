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

package provider

import (
	"context"
	"strings"
	"time"

	"github.com/google/go-github/v21/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// recentWindow is how far back RecentCommits looks
const recentWindow = 7 * 24 * time.Hour

type GithubProvider struct {
	Client  *github.Client
	Context context.Context
}

// NewGithubProvider creates a new GitHub client which implements the
// CodeProvider interface
func NewGithubProvider(ctx context.Context, githubToken string) *GithubProvider {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: githubToken},
	)
	tc := oauth2.NewClient(ctx, ts)
	client := github.NewClient(tc)
	return WithGithubClient(ctx, client)
}

// WithGithubClient creates a new GithubProvider with an existing client
// This function is exported to create mock clients in tests
func WithGithubClient(ctx context.Context, client *github.Client) *GithubProvider {
	return &GithubProvider{
		Client:  client,
		Context: ctx,
	}
}

// RecentCommits lists the commits the user authored in a repository
// within the trailing seven-day window
// For >100 commits this _depaginates_ the responses and appends them to one slice
func (g *GithubProvider) RecentCommits(owner, repo, user string) ([]*Commit, error) {
	opts := &github.CommitsListOptions{
		Author: user,
		Since:  time.Now().Add(-recentWindow),
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var commits []*Commit
	for {
		list, resp, err := g.Client.Repositories.ListCommits(g.Context, owner, repo, opts)
		if err != nil {
			return nil, fromGithubError(err)
		}
		for _, c := range list {
			commits = append(commits, fromGithubCommit(c, owner+"/"+repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return commits, nil
}

func fromGithubCommit(c *github.RepositoryCommit, repoFullName string) *Commit {
	commit := &Commit{
		Message: c.GetCommit().GetMessage(),
		Author:  c.GetCommit().GetAuthor().GetName(),
		Date:    c.GetCommit().GetAuthor().GetDate(),
		Repo:    repoFullName,
	}
	if login := c.GetAuthor().GetLogin(); login != "" {
		commit.Author = login
	}
	return commit
}

// OpenReviews lists the open pull requests the user authored in a repository
func (g *GithubProvider) OpenReviews(owner, repo, user string) ([]*Review, error) {
	opts := &github.PullRequestListOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	var reviews []*Review
	for {
		list, resp, err := g.Client.PullRequests.List(g.Context, owner, repo, opts)
		if err != nil {
			return nil, fromGithubError(err)
		}
		for _, pr := range list {
			if !strings.EqualFold(pr.GetUser().GetLogin(), user) {
				continue
			}
			reviews = append(reviews, fromGithubPull(pr, owner+"/"+repo))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return reviews, nil
}

func fromGithubPull(pr *github.PullRequest, repoFullName string) *Review {
	return &Review{
		Title:  pr.GetTitle(),
		Author: pr.GetUser().GetLogin(),
		Repo:   repoFullName,
		State:  pr.GetState(),
		Link:   pr.GetHTMLURL(),
	}
}

// ContributionRepos derives the set of repositories the user recently
// touched from their public activity feed. The result is deduplicated
// and unordered. The feed is best-effort: repos listed here may have
// since been deleted or made private.
func (g *GithubProvider) ContributionRepos(user string) ([]string, error) {
	opts := &github.ListOptions{PerPage: 100}

	seen := map[string]bool{}
	var repos []string
	for {
		events, resp, err := g.Client.Activity.ListEventsPerformedByUser(g.Context, user, true, opts)
		if err != nil {
			return nil, fromGithubError(err)
		}
		for _, event := range events {
			name := event.GetRepo().GetName()
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			repos = append(repos, name)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return repos, nil
}

// CommitsForUser fans out RecentCommits across every contribution repo.
// A repo that fails to fetch is skipped and reported, not fatal.
func (g *GithubProvider) CommitsForUser(user string) ([]*Commit, []SkippedRepo, error) {
	repos, err := g.ContributionRepos(user)
	if err != nil {
		return nil, nil, err
	}

	var commits []*Commit
	var skipped []SkippedRepo
	for _, full := range repos {
		owner, repo, ok := splitRepo(full)
		if !ok {
			continue
		}
		list, err := g.RecentCommits(owner, repo, user)
		if err != nil {
			logrus.Warnf("skipping commits for %s: %v", full, err)
			skipped = append(skipped, SkippedRepo{Repo: full, Reason: err})
			continue
		}
		commits = append(commits, list...)
	}
	return commits, skipped, nil
}

// ReviewsForUser fans out OpenReviews across every contribution repo.
// A repo that fails to fetch is skipped and reported, not fatal.
func (g *GithubProvider) ReviewsForUser(user string) ([]*Review, []SkippedRepo, error) {
	repos, err := g.ContributionRepos(user)
	if err != nil {
		return nil, nil, err
	}

	var reviews []*Review
	var skipped []SkippedRepo
	for _, full := range repos {
		owner, repo, ok := splitRepo(full)
		if !ok {
			continue
		}
		list, err := g.OpenReviews(owner, repo, user)
		if err != nil {
			logrus.Warnf("skipping reviews for %s: %v", full, err)
			skipped = append(skipped, SkippedRepo{Repo: full, Reason: err})
			continue
		}
		reviews = append(reviews, list...)
	}
	return reviews, skipped, nil
}

func splitRepo(full string) (owner, repo string, ok bool) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}

func fromGithubError(err error) error {
	if err == nil {
		return nil
	}
	if rl, ok := err.(*github.RateLimitError); ok {
		return &APIError{StatusCode: 429, Message: rl.Message}
	}
	if er, ok := err.(*github.ErrorResponse); ok && er.Response != nil {
		return &APIError{StatusCode: er.Response.StatusCode, Message: er.Message}
	}
	return err
}
