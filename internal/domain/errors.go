package domain

import "errors"

var (
	ErrNodeNotFound        = errors.New("algorithm node not found")
	ErrSubscriberNotFound  = errors.New("subscriber not found")
	ErrInvalidVertical     = errors.New("unknown algorithm vertical")
	ErrAlreadyNotified     = errors.New("initial notification already sent for node")
	ErrUpstreamUnavailable = errors.New("upstream dependency unavailable")
	ErrCycleDetected       = errors.New("cycle detected in node tree")
)
