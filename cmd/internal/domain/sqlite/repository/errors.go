package repository

import "errors"

// Sentinel errors returned by the transactional swap transitions when a
// freshness re-check inside the transaction fails. Any of these aborts
// the whole transaction with no partial writes.
var (
	// ErrSlotNotSwappable: an event could not be claimed because its
	// status was no longer SWAPPABLE when the transaction ran.
	ErrSlotNotSwappable = errors.New("slot is not swappable")

	// ErrRequestNotPending: the swap request was already resolved when
	// the transaction tried to claim it (e.g. a concurrent accept won).
	ErrRequestNotPending = errors.New("swap request is not pending")

	// ErrStaleSwap: a referenced event was deleted or left SWAP_PENDING
	// between the caller's precondition check and the transaction.
	ErrStaleSwap = errors.New("swap events are no longer pending")
)
