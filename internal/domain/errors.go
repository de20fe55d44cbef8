package domain

import "errors"

var (
	ErrBrandNotFound    = errors.New("brand not found")
	ErrBrandExists      = errors.New("brand already exists")
	ErrNoActiveSession  = errors.New("no active session")
	ErrHandoffNotFound  = errors.New("handoff not found")
	ErrLearningNotFound = errors.New("learning not found")
)
