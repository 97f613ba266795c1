package utils

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNoCandidates      = errors.New("no candidate places to schedule")
	ErrNoFeasibleRoute   = errors.New("no feasible route")
	ErrUpstream          = errors.New("upstream service error")
	ErrDatabaseError     = errors.New("database error")
	ErrItineraryNotFound = errors.New("itinerary not found")
)
