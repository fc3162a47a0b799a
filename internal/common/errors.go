// Package common defines shared constants and sentinel errors used across
// the storage, backup and lifecycle layers. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation error")

	// ErrConnectivity marks a backend that is unreachable. It is never
	// retried silently; the caller decides whether to try again.
	ErrConnectivity = errors.New("backend unreachable")

	// ErrClientClosed marks a cached database client that was explicitly
	// closed. The connection cache recreates the client only on this error;
	// any other probe failure is a real connectivity fault and propagates.
	ErrClientClosed = errors.New("client is closed")

	// ErrConfiguration marks invalid or missing operator-supplied
	// configuration: malformed connection strings, absent bundled
	// executables, missing secrets.
	ErrConfiguration = errors.New("configuration error")

	// Auth errors.
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
