package inmemorystore

import (
	"sync"

	"github.com/lumoswallet/go-sdk/types"
)

type subscription struct {
	id       uint64
	listener func(next, prev types.AccountState)
}

// AccountStore is the in-memory canonical account state for one
// session. Every mutation swaps the whole snapshot under the lock,
// then delivers the (next, previous) pair to subscribers outside the
// lock, so a listener may itself mutate the store; delivery then nests
// in call order. There is no recursion guard, callers must not
// ping-pong a field they observe.
type AccountStore struct {
	mu     *sync.Mutex
	state  types.AccountState
	subs   []subscription
	nextID uint64
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		mu: &sync.Mutex{},
	}
}

func (s *AccountStore) GetState() types.AccountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Copy()
}

func (s *AccountStore) GetAccounts() []types.Account {
	return s.GetState().Accounts
}

func (s *AccountStore) GetCurrentAccount() *types.Account {
	return s.GetState().CurrentAccount
}

func (s *AccountStore) GetAlianName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AlianName
}

func (s *AccountStore) IsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLocked
}

func (s *AccountStore) GetHiddenAddresses() []string {
	return s.GetState().HiddenAddresses
}

// SetAccounts replaces the account collection. Entries whose address
// folds to one already seen are dropped, first occurrence wins, order
// is preserved.
func (s *AccountStore) SetAccounts(accounts []types.Account) {
	deduped := dedupeAccounts(accounts)
	s.mutate(func(state *types.AccountState) {
		state.Accounts = deduped
	})
}

func (s *AccountStore) SetCurrentAccount(account types.Account) {
	s.mutate(func(state *types.AccountState) {
		state.CurrentAccount = &account
	})
}

func (s *AccountStore) SetAlianName(name string) {
	s.mutate(func(state *types.AccountState) {
		state.AlianName = name
	})
}

// SelectAccount switches the selection and the denormalized alias in
// one snapshot swap. Membership of the account in the collection is
// not validated, the provisioning layer owns that.
func (s *AccountStore) SelectAccount(account types.Account) {
	s.mutate(func(state *types.AccountState) {
		state.CurrentAccount = &account
		state.AlianName = account.AlianName
	})
}

func (s *AccountStore) SetLocked(locked bool) {
	s.mutate(func(state *types.AccountState) {
		state.IsLocked = locked
	})
}

// SetHiddenAddresses replaces the hidden set, folding every entry to
// lowercase.
func (s *AccountStore) SetHiddenAddresses(addresses []string) {
	folded := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, address := range addresses {
		normalized := types.NormalizeAddress(address)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		folded = append(folded, normalized)
	}
	s.mutate(func(state *types.AccountState) {
		state.HiddenAddresses = folded
	})
}

// ReplaceState swaps in a whole snapshot, typically one restored from
// an AccountRepository. Fires subscribers like any other mutation.
func (s *AccountStore) ReplaceState(state types.AccountState) {
	restored := state.Copy()
	restored.Accounts = dedupeAccounts(restored.Accounts)
	for i, hidden := range restored.HiddenAddresses {
		restored.HiddenAddresses[i] = types.NormalizeAddress(hidden)
	}
	s.mutate(func(target *types.AccountState) {
		*target = restored
	})
}

// Subscribe registers a listener invoked synchronously after every
// mutation with the (next, previous) snapshot pair. The returned
// disposer deregisters it; calling the disposer again is a no-op.
func (s *AccountStore) Subscribe(
	listener func(next, prev types.AccountState),
) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, listener: listener})
	s.mu.Unlock()

	done := false
	return func() {
		if done {
			return
		}
		done = true
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
	}
}

func (s *AccountStore) mutate(apply func(state *types.AccountState)) {
	s.mu.Lock()
	prev := s.state.Copy()
	next := s.state.Copy()
	apply(&next)
	s.state = next
	listeners := make([]subscription, len(s.subs))
	copy(listeners, s.subs)
	s.mu.Unlock()

	for _, sub := range listeners {
		sub.listener(next.Copy(), prev.Copy())
	}
}

func dedupeAccounts(accounts []types.Account) []types.Account {
	deduped := make([]types.Account, 0, len(accounts))
	seen := make(map[string]struct{}, len(accounts))
	for _, account := range accounts {
		folded := types.NormalizeAddress(account.Address)
		if _, ok := seen[folded]; ok {
			continue
		}
		seen[folded] = struct{}{}
		deduped = append(deduped, account)
	}
	return deduped
}
