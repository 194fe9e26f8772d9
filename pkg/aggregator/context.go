package aggregator

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/teamlens/teamlens/pkg/intent"
	"github.com/teamlens/teamlens/pkg/provider"
	"github.com/teamlens/teamlens/pkg/team"
)

// buildContext renders the fetched records as the text handed to the
// summarizer. Only the kinds that were actually fetched appear, so the
// model cannot drift into talking about data nobody asked for.
// Relative times are computed against now, not against cache time.
func buildContext(id *team.Identity, it intent.Intent, issues []*provider.Issue, commits []*provider.Commit, reviews []*provider.Review, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Team member: %s (GitHub: %s, Jira: %s)\n", id.Name, id.GithubUser, id.JiraUser)

	if it == intent.Issues || it == intent.FullSummary {
		writeIssues(&b, issues, now)
	}
	if it == intent.Commits || it == intent.FullSummary {
		writeCommits(&b, commits, now)
	}
	if it == intent.Reviews || it == intent.FullSummary {
		writeReviews(&b, reviews)
	}
	return b.String()
}

func writeIssues(b *strings.Builder, issues []*provider.Issue, now time.Time) {
	b.WriteString("\nOpen issues:\n")
	if len(issues) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, issue := range issues {
		fmt.Fprintf(b, "- %s: %s [%s, %s priority, %s] (updated %s) %s\n",
			issue.Key, issue.Summary, issue.Type, issue.Priority, issue.Status,
			relativeTime(issue.Updated, now), issue.Link)
	}
}

func writeCommits(b *strings.Builder, commits []*provider.Commit, now time.Time) {
	b.WriteString("\nCommits from the last week:\n")
	if len(commits) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, commit := range commits {
		fmt.Fprintf(b, "- %s: %q (%s)\n",
			commit.Repo, firstLine(commit.Message), relativeTime(commit.Date, now))
	}
}

func writeReviews(b *strings.Builder, reviews []*provider.Review) {
	b.WriteString("\nOpen pull requests:\n")
	if len(reviews) == 0 {
		b.WriteString("(none)\n")
		return
	}
	for _, review := range reviews {
		fmt.Fprintf(b, "- %s: %q [%s] %s\n",
			review.Repo, review.Title, review.State, review.Link)
	}
}

func relativeTime(t time.Time, now time.Time) string {
	if t.IsZero() {
		return "at an unknown time"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// firstLine trims a commit message to its subject line
func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return strings.TrimSpace(msg[:i])
	}
	return strings.TrimSpace(msg)
}
