package domain

import "errors"

var (
	// ErrMalformedEvent is returned when a ledger event payload cannot be
	// decoded into a valid podium vote
	ErrMalformedEvent = errors.New("malformed ledger event")

	// ErrBrandNotFound is returned when an event references a brand that does
	// not exist in the projection
	ErrBrandNotFound = errors.New("brand not found in projection")

	// ErrUserNotFound is returned when a projection user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrVoteNotFound is returned when a vote row is not found
	ErrVoteNotFound = errors.New("vote not found")

	// ErrEventNotInTransaction is returned by the repair path when the raw
	// transaction logs contain no decodable vote event
	ErrEventNotInTransaction = errors.New("no vote event found in transaction logs")
)
