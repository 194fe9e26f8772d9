package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/teamlens/teamlens/pkg/aggregator"
	"github.com/teamlens/teamlens/pkg/provider"
	"github.com/teamlens/teamlens/pkg/team"
)

// Server is the thin HTTP surface over the aggregator and connectors.
// The query endpoint goes through the full AI pipeline; the per-user
// endpoints are direct pass-throughs to the providers.
type Server struct {
	agg    *aggregator.Aggregator
	roster *team.Roster
	code   provider.CodeProvider
	issues provider.IssueProvider
}

// New creates a new HTTP server
func New(agg *aggregator.Aggregator, roster *team.Roster, code provider.CodeProvider, issues provider.IssueProvider) *Server {
	return &Server{
		agg:    agg,
		roster: roster,
		code:   code,
		issues: issues,
	}
}

// Router builds the route table
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/query", s.handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/api/users/{user}/issues", s.handleUserIssues).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{user}/commits", s.handleUserCommits).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{user}/reviews", s.handleUserReviews).Methods(http.MethodGet)
	return r
}

type (
	queryRequest struct {
		Question string `json:"question"`
	}

	queryResponse struct {
		Answer string `json:"answer"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be JSON with a non-empty question field"})
		return
	}

	answer, err := s.agg.HandleQuestion(r.Context(), req.Question)
	if err != nil {
		logrus.Errorf("query failed: %v", err)
		writeJSON(w, statusFor(err), errorResponse{Error: aggregator.ErrorMessage(err)})
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Answer: answer})
}

func (s *Server) handleUserIssues(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(w, r)
	if !ok {
		return
	}
	issues, err := s.issues.ActiveIssues(id.JiraUser)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, issues)
}

func (s *Server) handleUserCommits(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(w, r)
	if !ok {
		return
	}
	commits, _, err := s.code.CommitsForUser(id.GithubUser)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, commits)
}

func (s *Server) handleUserReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := s.resolve(w, r)
	if !ok {
		return
	}
	reviews, _, err := s.code.ReviewsForUser(id.GithubUser)
	if err != nil {
		s.upstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (*team.Identity, bool) {
	user := mux.Vars(r)["user"]
	id, ok := s.roster.Resolve(user)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown team member: " + user})
		return nil, false
	}
	return id, true
}

func (s *Server) upstreamError(w http.ResponseWriter, err error) {
	logrus.Errorf("upstream fetch failed: %v", err)
	writeJSON(w, statusFor(err), errorResponse{Error: aggregator.ErrorMessage(err)})
}

func statusFor(err error) int {
	switch {
	case provider.IsAuthError(err):
		return http.StatusBadGateway
	case provider.IsRateLimited(err):
		return http.StatusServiceUnavailable
	case provider.IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("failed to encode response: %v", err)
	}
}
