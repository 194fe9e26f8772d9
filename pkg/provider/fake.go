package provider

// FakeCodeProvider is an in-memory CodeProvider for tests. It records
// how many calls each operation received so tests can assert that a
// cache hit avoided an upstream fetch.
type FakeCodeProvider struct {
	Commits map[string][]*Commit
	Reviews map[string][]*Review
	Repos   map[string][]string
	Skipped []SkippedRepo
	Err     error

	Calls int
}

// NewFakeCodeProvider creates a new fake code provider
func NewFakeCodeProvider() *FakeCodeProvider {
	return &FakeCodeProvider{
		Commits: map[string][]*Commit{},
		Reviews: map[string][]*Review{},
		Repos:   map[string][]string{},
	}
}

func (f *FakeCodeProvider) RecentCommits(owner, repo, user string) ([]*Commit, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	var commits []*Commit
	for _, c := range f.Commits[user] {
		if c.Repo == owner+"/"+repo {
			commits = append(commits, c)
		}
	}
	return commits, nil
}

func (f *FakeCodeProvider) OpenReviews(owner, repo, user string) ([]*Review, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	var reviews []*Review
	for _, r := range f.Reviews[user] {
		if r.Repo == owner+"/"+repo {
			reviews = append(reviews, r)
		}
	}
	return reviews, nil
}

func (f *FakeCodeProvider) ContributionRepos(user string) ([]string, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Repos[user], nil
}

func (f *FakeCodeProvider) CommitsForUser(user string) ([]*Commit, []SkippedRepo, error) {
	f.Calls++
	if f.Err != nil {
		return nil, nil, f.Err
	}
	return f.Commits[user], f.Skipped, nil
}

func (f *FakeCodeProvider) ReviewsForUser(user string) ([]*Review, []SkippedRepo, error) {
	f.Calls++
	if f.Err != nil {
		return nil, nil, f.Err
	}
	return f.Reviews[user], f.Skipped, nil
}

// FakeIssueProvider is an in-memory IssueProvider for tests.
type FakeIssueProvider struct {
	Issues map[string][]*Issue
	Err    error

	Calls int
}

// NewFakeIssueProvider creates a new fake issue provider
func NewFakeIssueProvider() *FakeIssueProvider {
	return &FakeIssueProvider{
		Issues: map[string][]*Issue{},
	}
}

func (f *FakeIssueProvider) ActiveIssues(user string) ([]*Issue, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	var issues []*Issue
	for _, issue := range f.Issues[user] {
		if issue.Status != "Done" {
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

func (f *FakeIssueProvider) AllIssues(user string) ([]*Issue, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Issues[user], nil
}
