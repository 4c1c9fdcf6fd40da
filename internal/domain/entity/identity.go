package entity

// Identity is what a verified bearer token tells us about the caller.
type Identity struct {
	UID      string
	Email    string
	Name     string
	Provider string
}

// CreatedIdentity is returned by an identity provider on signup. Token is only set by
// providers that issue their own sessions.
type CreatedIdentity struct {
	UID   string
	Token string
}
