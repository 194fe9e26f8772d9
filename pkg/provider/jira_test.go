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

package provider_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/teamlens/teamlens/pkg/auth"
	"github.com/teamlens/teamlens/pkg/provider"
)

const (
	jiraUserEmail = "bot@example.com"
	jiraToken     = "test-token"
)

type JiraProviderSuite struct {
	suite.Suite
	mux      *http.ServeMux
	server   *httptest.Server
	provider *provider.JiraProvider
	lastJQL  string
	lastAuth string
}

func (s *JiraProviderSuite) SetupSuite() {
	s.mux = http.NewServeMux()
	s.server = httptest.NewServer(s.mux)

	s.mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		s.lastJQL = r.URL.Query().Get("jql")
		s.lastAuth = r.Header.Get("Authorization")

		src, err := os.ReadFile("../../test_data/jira/search.json")
		s.Require().Nil(err)
		_, _ = w.Write(src)
	})

	id := auth.NewAuthID(s.server.URL, jiraUserEmail, jiraToken)
	s.provider = provider.NewJiraProvider(id)
}

func (s *JiraProviderSuite) TearDownSuite() {
	s.server.Close()
}

func (s *JiraProviderSuite) TestActiveIssues() {
	issues, err := s.provider.ActiveIssues("michael.chen@example.com")
	s.Require().Nil(err)
	s.Require().Len(issues, 2)

	s.Equal("TS-102", issues[0].Key)
	s.Equal("Fix login redirect loop", issues[0].Summary)
	s.Equal("In Progress", issues[0].Status)
	s.Equal("Bug", issues[0].Type)
	s.Equal("High", issues[0].Priority)
	s.Equal(s.server.URL+"/browse/TS-102", issues[0].Link)
	s.False(issues[0].Updated.IsZero())

	s.Contains(s.lastJQL, `assignee = "michael.chen@example.com"`)
	s.Contains(s.lastJQL, "statusCategory != Done")
	s.Contains(s.lastJQL, "ORDER BY updated DESC")
	s.True(strings.HasPrefix(s.lastAuth, "Basic "), "expected basic auth, got %q", s.lastAuth)
}

func (s *JiraProviderSuite) TestAllIssues() {
	issues, err := s.provider.AllIssues("michael.chen@example.com")
	s.Require().Nil(err)
	s.Require().Len(issues, 2)

	s.NotContains(s.lastJQL, "statusCategory")
}

func TestJiraProviderSuite(t *testing.T) {
	suite.Run(t, new(JiraProviderSuite))
}

func TestJiraAuthError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errorMessages":["Authentication failed"]}`))
	}))
	defer server.Close()

	prov := provider.NewJiraProvider(auth.NewAuthID(server.URL, jiraUserEmail, "bad-token"))
	_, err := prov.ActiveIssues("michael.chen@example.com")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if !provider.IsAuthError(err) {
		t.Errorf("err = %v, want an auth error", err)
	}
	if !strings.Contains(err.Error(), "Authentication failed") {
		t.Errorf("err = %v, want the tracker-reported message", err)
	}
}

func TestJiraRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	prov := provider.NewJiraProvider(auth.NewAuthID(server.URL, jiraUserEmail, jiraToken))
	_, err := prov.ActiveIssues("michael.chen@example.com")
	if !provider.IsRateLimited(err) {
		t.Errorf("err = %v, want a rate-limit error", err)
	}
}
