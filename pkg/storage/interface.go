// Package storage defines the persistence interfaces of the account service.
// Backends such as pkg/storage/postgres provide the implementations, and
// transactions are exposed through TxStorage and Storage.WithTx.
//
//go:generate mockgen -package mockstorage -source=interface.go -destination=mock/mockstorage.go *
package storage

import "context"

// AllStorage combines every storage capability the service needs.
type AllStorage interface {
	UserStorage
	VerificationStorage
	JobStorage
}

// TxStorage is a storage handle bound to an open transaction. It is unusable
// after Commit or Rollback.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction, persisting all changes.
	Commit() error
	// Rollback aborts the transaction, discarding all uncommitted changes.
	Rollback() error
}

// Storage is a non-transactional handle that can start transactions.
type Storage interface {
	AllStorage

	// Close releases the underlying connection pool.
	Close() error

	// Begin starts a new transaction.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction. It commits when cb returns nil and
	// rolls back otherwise.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}
