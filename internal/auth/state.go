package auth

import "context"

// State is the per-request view of the session: whether the browser holds a
// valid session and, if so, who it belongs to.
type State struct {
	Authenticated bool
	User          *User
}

// Anonymous is the state of a request without a valid session.
func Anonymous() State {
	return State{}
}

// SignedIn returns an authenticated state for u. A nil user yields the
// anonymous state so User is never nil while Authenticated is set.
func SignedIn(u *User) State {
	if u == nil {
		return Anonymous()
	}
	return State{Authenticated: true, User: u}
}

// LoggedIn reports whether there is a user to show. A state flagged as
// authenticated without a user counts as logged out.
func (s State) LoggedIn() bool {
	return s.Authenticated && s.User != nil
}

type stateContextKeyType struct{}

var stateKey = stateContextKeyType{}

// WithState attaches s to ctx.
func WithState(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, stateKey, s)
}

// StateFromContext returns the state attached by WithState, or the
// anonymous state when none was attached.
func StateFromContext(ctx context.Context) State {
	s, ok := ctx.Value(stateKey).(State)
	if !ok {
		return Anonymous()
	}
	return s
}
