package team_test

import (
	"testing"

	"gotest.tools/assert"

	"github.com/teamlens/teamlens/pkg/team"
)

func testRoster(t *testing.T) *team.Roster {
	roster, err := team.New([]*team.Identity{
		{
			Name:       "Michael Chen",
			GithubUser: "mchen",
			JiraUser:   "michael.chen@example.com",
			Aliases:    []string{"Mike", "mchen", "michael.chen@example.com"},
		},
		{
			Name:       "Sara Okafor",
			GithubUser: "sokafor",
			JiraUser:   "sara.okafor@example.com",
			Aliases:    []string{"Sara"},
		},
	})
	assert.NilError(t, err)
	return roster
}

func TestResolve(t *testing.T) {
	roster := testRoster(t)

	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			"display name",
			"What is Michael Chen working on?",
			"Michael Chen",
			true,
		}, {
			"short alias",
			"what JIRA tickets is mike working on",
			"Michael Chen",
			true,
		}, {
			"email alias",
			"any PRs from michael.chen@example.com?",
			"Michael Chen",
			true,
		}, {
			"case insensitive",
			"WHAT DID SARA PUSH THIS WEEK",
			"Sara Okafor",
			true,
		}, {
			"unknown person",
			"what is Greg doing",
			"",
			false,
		}, {
			"empty input",
			"",
			"",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := roster.Resolve(tt.input)
			assert.Equal(t, ok, tt.found)
			if tt.found {
				assert.Equal(t, id.Name, tt.want)
			}
		})
	}
}

func TestResolveLongestAliasWins(t *testing.T) {
	roster, err := team.New([]*team.Identity{
		{
			Name:       "Chen Wei",
			GithubUser: "chenwei",
			JiraUser:   "chen.wei@example.com",
			Aliases:    []string{"Chen"},
		},
		{
			Name:       "Michael Chen",
			GithubUser: "mchen",
			JiraUser:   "michael.chen@example.com",
		},
	})
	assert.NilError(t, err)

	// "Michael Chen" contains the alias "Chen" of a different member;
	// the longer alias must win.
	id, ok := roster.Resolve("what is Michael Chen up to?")
	assert.Equal(t, ok, true)
	assert.Equal(t, id.Name, "Michael Chen")
}

func TestNewRejectsPartialIdentity(t *testing.T) {
	_, err := team.New([]*team.Identity{
		{
			Name:       "Michael Chen",
			GithubUser: "mchen",
		},
	})
	assert.ErrorContains(t, err, "must have both github and jira ids")
}
