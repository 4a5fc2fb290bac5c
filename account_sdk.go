package lumossdk

import (
	"github.com/lumoswallet/go-sdk/types"
)

var Version string

// AccountClient is the account-state facade consumed by the wallet's
// UI surfaces. Reads are recomputed from the underlying store on every
// access; mutations go through the store's transactional operations;
// observers receive at most one classified event per store mutation.
type AccountClient interface {
	GetVersion() string
	CurrentAccount() *types.Account
	Accounts() []types.Account
	VisibleAccounts() []types.Account
	AlianName() string
	IsLocked() bool
	HiddenAddresses() []string
	SetAccounts(accounts []types.Account)
	// SwitchAccount selects the account and restores the alias to the
	// account's own label in one atomic store mutation. The target is
	// not checked against the known-accounts list, and switching is
	// permitted while locked; both are enforced, if at all, by layers
	// above this one.
	SwitchAccount(account types.Account)
	RenameCurrentAccount(alianName string)
	HideAccount(address string)
	ShowAccount(address string)
	SetLocked(locked bool)
	// OnChanged registers an observer for the classified change stream.
	// The disposer is idempotent.
	OnChanged(callback func(types.AccountEvent)) (unsubscribe func())
	// GetEventChannel returns a buffered feed of the same classified
	// stream for channel-oriented consumers, with a cancel func.
	GetEventChannel() (<-chan types.AccountEvent, func())
	Dump() types.AccountState
	Close()
}
