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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/teamlens/teamlens/pkg/auth"
)

// jiraTimeLayout is Jira's REST timestamp format
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

type JiraProvider struct {
	Client *resty.Client
	ID     *auth.ID
}

// NewJiraProvider creates a new Jira client which implements the
// IssueProvider interface. Authentication is basic auth with the
// account email and an API token.
func NewJiraProvider(id *auth.ID) *JiraProvider {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(id.URL, "/")).
		SetBasicAuth(id.User, id.Token).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return WithJiraClient(id, client)
}

// WithJiraClient creates a new JiraProvider with an existing client
// This function is exported to create mock clients in tests
func WithJiraClient(id *auth.ID, client *resty.Client) *JiraProvider {
	return &JiraProvider{
		Client: client,
		ID:     id,
	}
}

// ActiveIssues lists the user's open issues, most recently updated
// first. Issues whose status has reached the Done category are
// excluded.
func (j *JiraProvider) ActiveIssues(user string) ([]*Issue, error) {
	jql := fmt.Sprintf("assignee = %q AND statusCategory != Done ORDER BY updated DESC", user)
	return j.search(jql)
}

// AllIssues lists every issue assigned to the user regardless of
// status, most recently updated first.
func (j *JiraProvider) AllIssues(user string) ([]*Issue, error) {
	jql := fmt.Sprintf("assignee = %q ORDER BY updated DESC", user)
	return j.search(jql)
}

type (
	jiraSearchResponse struct {
		StartAt    int         `json:"startAt"`
		MaxResults int         `json:"maxResults"`
		Total      int         `json:"total"`
		Issues     []jiraIssue `json:"issues"`
	}

	jiraIssue struct {
		Key    string     `json:"key"`
		Fields jiraFields `json:"fields"`
	}

	jiraFields struct {
		Summary   string   `json:"summary"`
		Status    jiraName `json:"status"`
		IssueType jiraName `json:"issuetype"`
		Priority  jiraName `json:"priority"`
		Updated   string   `json:"updated"`
	}

	jiraName struct {
		Name string `json:"name"`
	}

	jiraErrorResponse struct {
		ErrorMessages []string `json:"errorMessages"`
	}
)

// search runs a JQL query against the search endpoint
// For >50 issues this _depaginates_ the responses and appends them to one slice
func (j *JiraProvider) search(jql string) ([]*Issue, error) {
	var issues []*Issue

	startAt := 0
	for {
		resp, err := j.Client.R().
			SetQueryParams(map[string]string{
				"jql":        jql,
				"startAt":    fmt.Sprintf("%d", startAt),
				"maxResults": "50",
				"fields":     "summary,status,issuetype,priority,updated",
			}).
			Get("/rest/api/2/search")
		if err != nil {
			return nil, fmt.Errorf("jira request failed: %v", err)
		}
		if resp.StatusCode() != http.StatusOK {
			return nil, fromJiraError(resp)
		}

		var result jiraSearchResponse
		if err := json.Unmarshal(resp.Body(), &result); err != nil {
			return nil, fmt.Errorf("failed to decode jira response: %v", err)
		}

		for _, issue := range result.Issues {
			issues = append(issues, j.fromJiraIssue(issue))
		}

		startAt += len(result.Issues)
		if startAt >= result.Total || len(result.Issues) == 0 {
			break
		}
	}
	return issues, nil
}

func (j *JiraProvider) fromJiraIssue(issue jiraIssue) *Issue {
	updated, err := time.Parse(jiraTimeLayout, issue.Fields.Updated)
	if err != nil {
		updated = time.Time{}
	}
	return &Issue{
		Key:      issue.Key,
		Summary:  issue.Fields.Summary,
		Status:   issue.Fields.Status.Name,
		Type:     issue.Fields.IssueType.Name,
		Priority: issue.Fields.Priority.Name,
		Updated:  updated,
		Link:     strings.TrimSuffix(j.ID.URL, "/") + "/browse/" + issue.Key,
	}
}

// fromJiraError lifts a non-200 search response into an APIError,
// keeping the tracker-reported message when one is present.
func fromJiraError(resp *resty.Response) error {
	msg := http.StatusText(resp.StatusCode())

	var body jiraErrorResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.ErrorMessages) > 0 {
		msg = strings.Join(body.ErrorMessages, "; ")
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
