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

package team

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Identity maps one team member to their accounts on both upstream
// systems. Aliases are the spellings a question may use to refer to
// them: display name, username, email.
type Identity struct {
	Name       string   `json:"name"`
	GithubUser string   `json:"github"`
	JiraUser   string   `json:"jira"`
	Aliases    []string `json:"aliases"`
}

type aliasEntry struct {
	alias string
	ident *Identity
}

// Roster is the read-only lookup table of known identities. It is
// loaded once at startup and never mutated afterwards.
type Roster struct {
	members []*Identity
	aliases []aliasEntry
}

// Load reads a roster from a JSON file
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file %s: %v", path, err)
	}

	var members []*Identity
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("failed to parse roster file %s: %v", path, err)
	}
	return New(members)
}

// New builds a roster from a list of identities. Every member must carry
// both upstream ids; a half-mapped identity is rejected outright rather
// than resolved partially later.
func New(members []*Identity) (*Roster, error) {
	r := &Roster{members: members}

	for _, m := range members {
		if m.Name == "" {
			return nil, fmt.Errorf("roster entry with empty name")
		}
		if m.GithubUser == "" || m.JiraUser == "" {
			return nil, fmt.Errorf("roster entry %q must have both github and jira ids", m.Name)
		}
		for _, alias := range append([]string{m.Name}, m.Aliases...) {
			alias = strings.TrimSpace(alias)
			if alias == "" {
				continue
			}
			r.aliases = append(r.aliases, aliasEntry{
				alias: strings.ToLower(alias),
				ident: m,
			})
		}
	}

	// Longest alias wins so "Michael Chen" is never shadowed by "Chen".
	// Ties keep registration order to stay deterministic.
	sort.SliceStable(r.aliases, func(i, j int) bool {
		return len(r.aliases[i].alias) > len(r.aliases[j].alias)
	})

	return r, nil
}

// Members returns every known identity
func (r *Roster) Members() []*Identity {
	return r.members
}

// Resolve matches the question text against every known alias,
// case-insensitively, and returns the identity of the longest alias
// found. The second return is false when no alias matches.
func (r *Roster) Resolve(text string) (*Identity, bool) {
	lower := strings.ToLower(text)
	for _, entry := range r.aliases {
		if strings.Contains(lower, entry.alias) {
			return entry.ident, true
		}
	}
	return nil, false
}
