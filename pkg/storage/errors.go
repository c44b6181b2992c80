package storage

import "errors"

var (
	// ErrAlreadyInTx is returned by Begin on a storage handle that already
	// belongs to an account transaction. Nested transactions are not supported.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit and Rollback on the root storage handle.
	ErrNotInTx = errors.New("not in tx")
	// ErrDuplicate reports a unique violation: a verified email owned by
	// another user, or a reused verification token.
	ErrDuplicate = errors.New("duplicate record")
)
