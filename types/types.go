package types

import (
	"encoding/json"
	"strings"
)

const (
	InMemoryStore = "inmemory"
	FileStore     = "file"
	KVStore       = "kv"
	SQLStore      = "sql"
)

// Account is one wallet identity known to the product. Addresses are
// compared case-insensitively, lowercase is the canonical form.
type Account struct {
	Address   string
	AlianName string
}

func (a Account) String() string {
	// nolint
	buf, _ := json.Marshal(a)
	return string(buf)
}

// SameAddress reports whether the two accounts refer to the same
// identity, ignoring address casing.
func (a Account) SameAddress(other Account) bool {
	return strings.EqualFold(a.Address, other.Address)
}

// NormalizeAddress folds an address to its canonical lowercase form.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// AccountState is the full account snapshot at one instant. Stores
// replace it wholesale on every mutation and hand out copies, so a
// subscriber always observes a coherent (previous, next) pair.
type AccountState struct {
	Accounts        []Account
	CurrentAccount  *Account
	AlianName       string
	IsLocked        bool
	HiddenAddresses []string
}

// Copy returns a deep copy of the snapshot. Mutating the result never
// affects the state held by a store.
func (s AccountState) Copy() AccountState {
	next := AccountState{
		Accounts:        make([]Account, len(s.Accounts)),
		AlianName:       s.AlianName,
		IsLocked:        s.IsLocked,
		HiddenAddresses: make([]string, len(s.HiddenAddresses)),
	}
	copy(next.Accounts, s.Accounts)
	copy(next.HiddenAddresses, s.HiddenAddresses)
	if s.CurrentAccount != nil {
		current := *s.CurrentAccount
		next.CurrentAccount = &current
	}
	return next
}

// CurrentAddress returns the selected account's address as stored, or
// "" when nothing is selected.
func (s AccountState) CurrentAddress() string {
	if s.CurrentAccount == nil {
		return ""
	}
	return s.CurrentAccount.Address
}

// IsHidden reports whether the address belongs to the hidden set,
// ignoring casing.
func (s AccountState) IsHidden(address string) bool {
	folded := NormalizeAddress(address)
	for _, hidden := range s.HiddenAddresses {
		if hidden == folded {
			return true
		}
	}
	return false
}

// VisibleAccounts returns the accounts not present in the hidden set,
// preserving their original relative order.
func (s AccountState) VisibleAccounts() []Account {
	visible := make([]Account, 0, len(s.Accounts))
	for _, account := range s.Accounts {
		if s.IsHidden(account.Address) {
			continue
		}
		visible = append(visible, account)
	}
	return visible
}

type AccountEventType int

const (
	CurrentAccountChanged AccountEventType = iota
	AliasNameChanged
)

func (e AccountEventType) String() string {
	return map[AccountEventType]string{
		CurrentAccountChanged: "CURRENT_ACCOUNT_CHANGED",
		AliasNameChanged:      "ALIAS_NAME_CHANGED",
	}[e]
}

// AccountEvent is one classified change derived from a pair of store
// snapshots. Address is the now-current account's address as stored,
// "" when the selection was cleared.
type AccountEvent struct {
	Type    AccountEventType
	Address string
}
