package auth

// ID groups the coordinates and credentials needed to talk to one
// upstream service.
type ID struct {
	URL   string
	User  string
	Token string
}

// NewAuthID creates a new set of upstream credentials
func NewAuthID(url, user, token string) *ID {
	return &ID{
		URL:   url,
		User:  user,
		Token: token,
	}
}
