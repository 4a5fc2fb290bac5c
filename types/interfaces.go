package types

import (
	"context"
)

// AccountStore holds the canonical account snapshot for a session.
// Mutations replace the snapshot atomically and notify subscribers
// synchronously, in registration order, with the (next, previous)
// pair. It is the single writer surface; readers only ever see copies.
type AccountStore interface {
	GetState() AccountState
	GetAccounts() []Account
	GetCurrentAccount() *Account
	GetAlianName() string
	IsLocked() bool
	GetHiddenAddresses() []string
	SetAccounts(accounts []Account)
	SetCurrentAccount(account Account)
	SetAlianName(name string)
	// SelectAccount replaces the selection and the snapshot alias in a
	// single mutation, so subscribers never observe the intermediate
	// state a SetCurrentAccount+SetAlianName sequence would expose.
	SelectAccount(account Account)
	SetLocked(locked bool)
	SetHiddenAddresses(addresses []string)
	ReplaceState(state AccountState)
	Subscribe(listener func(next, prev AccountState)) (unsubscribe func())
}

// AccountRepository persists an account snapshot across sessions.
// GetState returns nil when nothing has been persisted yet.
type AccountRepository interface {
	GetType() string
	AddState(ctx context.Context, state AccountState) error
	GetState(ctx context.Context) (*AccountState, error)
	CleanState(ctx context.Context) error
	Close()
}
