package common

import "errors"

var (
	// ErrInvalidToken reports a credential that is not a well-formed JWT.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired reports a credential whose exp claim has passed.
	ErrTokenExpired = errors.New("token expired")
)
