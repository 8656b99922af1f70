// Package auth contains domain-level types for authentication sessions.
// It is pure and free of framework/adapter concerns.
package auth

// Gateway messages synthesized when the network round trip itself fails.
const (
	MessageNetworkError       = "Network error. Please check your connection and try again."
	MessageVerifyFailed       = "Token verification failed"
	MessageNoToken            = "No token found"
	MessageLoginFailed        = "Login failed"
	MessageSignupFailed       = "Signup failed"
	MessageInvalidToken       = "Invalid token"
	MessageInvalidCredentials = "Invalid email or password"
	MessageEmailExists        = "Email already exists"
)

// TokenKey is the fixed storage key of the persisted bearer token.
const TokenKey = "token"

// User is the identity record held by an authenticated session.
type User struct {
	Email string `json:"email"`
}

// Credentials are the email/password pair submitted by login and signup forms.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Result is the normalized outcome of a gateway call.
// Gateways never return errors; every failure mode is folded into Success=false.
type Result struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Token   string            `json:"token,omitempty"`
	User    *User             `json:"user,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`

	// Transport marks a result synthesized after a network or decoding failure,
	// as opposed to an explicit rejection from the backend. It is never sent on the wire.
	Transport bool `json:"-"`
}

// Rejected reports whether the backend explicitly refused the request.
func (r Result) Rejected() bool {
	return !r.Success && !r.Transport
}

// NetworkFailure builds the result a gateway returns when the round trip fails.
func NetworkFailure(message string) Result {
	return Result{Success: false, Message: message, Transport: true}
}

// OperationResult is what session operations hand back to their caller (a form handler).
type OperationResult struct {
	Success bool
	Message string
	Errors  map[string]string
}
