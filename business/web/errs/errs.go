// Package errs defines the error values handlers return so the error
// middleware can tell a client facing rejection from an internal failure.
package errs

import "errors"

// Response is the body sent to a client when a request fails.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted carries an error whose message is safe to send to the client
// together with the HTTP status to respond with. Any other error reaching
// the middleware is reported as a 500 without its message.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted marks the error as safe for the client with the status code.
// Handlers use it for expected rejections such as a bad miner id.
func NewTrusted(err error, status int) error {
	return &Trusted{Err: err, Status: status}
}

// Error returns the message of the wrapped error.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports whether a Trusted error is anywhere in the chain.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error in the chain or nil if there is none.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
