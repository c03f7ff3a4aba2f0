package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrNoLeagueLoaded        = errors.New("no league loaded")
	ErrGridUnavailable       = errors.New("could not generate grid")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
