package model

import "errors"

var (
	ErrTokenInvalid  = errors.New("refresh token invalid")
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)
