package provider

import "time"

type (
	// Issue is a normalized issue-tracker record.
	Issue struct {
		Key      string    `json:"key"`
		Summary  string    `json:"summary"`
		Status   string    `json:"status"`
		Type     string    `json:"type"`
		Priority string    `json:"priority"`
		Updated  time.Time `json:"updated"`
		Link     string    `json:"link"`
	}

	// Commit is a normalized code-host commit record.
	Commit struct {
		Message string    `json:"message"`
		Author  string    `json:"author"`
		Date    time.Time `json:"date"`
		Repo    string    `json:"repo"`
	}

	// Review is a normalized pull request record.
	Review struct {
		Title  string `json:"title"`
		Author string `json:"author"`
		Repo   string `json:"repo"`
		State  string `json:"state"`
		Link   string `json:"link"`
	}

	// SkippedRepo records one repository a fan-out fetch gave up on and
	// why. Fan-out results carry these instead of aborting the query.
	SkippedRepo struct {
		Repo   string
		Reason error
	}
)
