package auth

// User is the profile the identity provider reports for the signed-in
// account. It is a read-only projection of ID token claims.
type User struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Nickname      string `json:"nickname,omitempty"`
	Picture       string `json:"picture"`
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified"`
}
