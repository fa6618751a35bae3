package service

import "errors"

var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
	ErrConflict           = errors.New("conflict")            // 409
)

// dbTimeoutSeconds bounds every storage operation so a stuck transaction
// fails the request instead of hanging it.
const dbTimeoutSeconds = 5
