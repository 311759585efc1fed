package service

import "errors"

// Sentinels matched with errors.Is; the HTTP layer maps each to a distinct
// status code. None of them is ever swallowed into a success response.
var (
	ErrValidation        = errors.New("validation")         // 400
	ErrEmptyCart         = errors.New("empty cart")         // 400
	ErrItemUnavailable   = errors.New("item unavailable")   // 400
	ErrInvalidOperation  = errors.New("invalid operation")  // 400
	ErrUnauthorized      = errors.New("unauthorized")       // 403
	ErrNotFound          = errors.New("not found")          // 404
	ErrInvalidTransition = errors.New("invalid transition") // 409
	ErrConflict          = errors.New("conflict")           // 409
)
