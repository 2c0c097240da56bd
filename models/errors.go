package models

import "errors"

var (
	ErrTeamNotFound = errors.New("team not found")

	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidSeverity   = errors.New("invalid severity")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
