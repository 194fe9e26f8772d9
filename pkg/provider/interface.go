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

// CodeProvider exposes the normalized read operations teamlens needs
// from a code-hosting service.
type CodeProvider interface {
	// Per-repo reads
	RecentCommits(owner, repo, user string) ([]*Commit, error)

	OpenReviews(owner, repo, user string) ([]*Review, error)

	// ContributionRepos lists the repositories the user recently
	// touched, derived from their public activity feed.
	ContributionRepos(user string) ([]string, error)

	// Fan-out reads across every contribution repo. A single failing
	// repo is reported in the skipped list, never as an error.
	CommitsForUser(user string) ([]*Commit, []SkippedRepo, error)

	ReviewsForUser(user string) ([]*Review, []SkippedRepo, error)
}

// IssueProvider exposes the normalized read operations teamlens needs
// from an issue tracker. The user key may be a display name or an
// email; the tracker's own query language resolves it.
type IssueProvider interface {
	ActiveIssues(user string) ([]*Issue, error)

	AllIssues(user string) ([]*Issue, error)
}
