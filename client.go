package lumossdk

import (
	"context"
	"sync"

	"github.com/lumoswallet/go-sdk/internal/utils"
	inmemorystore "github.com/lumoswallet/go-sdk/store/inmemory"
	"github.com/lumoswallet/go-sdk/types"
	log "github.com/sirupsen/logrus"
)

const defaultEventBuffer = 100

type observer struct {
	id       uint64
	callback func(types.AccountEvent)
}

type accountClient struct {
	store types.AccountStore
	repo  types.AccountRepository

	obsMu       *sync.Mutex
	observers   []observer
	nextObsID   uint64
	broadcaster *utils.Broadcaster[types.AccountEvent]
	eventBuffer int

	unsubscribeStore func()
}

// NewAccountClient builds a facade over the given store. A nil store
// gets a fresh in-memory one, so UI surfaces can start from an empty
// session without extra wiring.
func NewAccountClient(store types.AccountStore, opts ...Option) AccountClient {
	if store == nil {
		store = inmemorystore.NewAccountStore()
	}

	client := &accountClient{
		store:       store,
		obsMu:       &sync.Mutex{},
		broadcaster: utils.NewBroadcaster[types.AccountEvent](),
		eventBuffer: defaultEventBuffer,
	}
	for _, opt := range opts {
		opt(client)
	}

	client.unsubscribeStore = store.Subscribe(client.onStoreChanged)

	return client
}

// LoadAccountClient restores the snapshot persisted in repo into a
// fresh store and returns a facade that keeps persisting every change
// back to it.
func LoadAccountClient(repo types.AccountRepository, opts ...Option) (AccountClient, error) {
	if repo == nil {
		return nil, ErrMissingRepository
	}

	state, err := repo.GetState(context.Background())
	if err != nil {
		return nil, err
	}

	store := inmemorystore.NewAccountStore()
	if state != nil {
		store.ReplaceState(*state)
	}

	opts = append(opts, WithRepository(repo))
	return NewAccountClient(store, opts...), nil
}

func (c *accountClient) GetVersion() string {
	return Version
}

func (c *accountClient) CurrentAccount() *types.Account {
	return c.store.GetCurrentAccount()
}

func (c *accountClient) Accounts() []types.Account {
	return c.store.GetAccounts()
}

func (c *accountClient) VisibleAccounts() []types.Account {
	return c.store.GetState().VisibleAccounts()
}

func (c *accountClient) AlianName() string {
	return c.store.GetAlianName()
}

func (c *accountClient) IsLocked() bool {
	return c.store.IsLocked()
}

func (c *accountClient) HiddenAddresses() []string {
	return c.store.GetHiddenAddresses()
}

func (c *accountClient) SetAccounts(accounts []types.Account) {
	c.store.SetAccounts(accounts)
}

func (c *accountClient) SwitchAccount(account types.Account) {
	c.store.SelectAccount(account)
}

func (c *accountClient) RenameCurrentAccount(alianName string) {
	current := c.store.GetCurrentAccount()
	if current == nil {
		return
	}

	accounts := c.store.GetAccounts()
	for i, account := range accounts {
		if account.SameAddress(*current) {
			accounts[i].AlianName = alianName
		}
	}
	c.store.SetAccounts(accounts)

	renamed := *current
	renamed.AlianName = alianName
	c.store.SelectAccount(renamed)
}

func (c *accountClient) HideAccount(address string) {
	hidden := c.store.GetHiddenAddresses()
	folded := types.NormalizeAddress(address)
	for _, existing := range hidden {
		if existing == folded {
			return
		}
	}
	c.store.SetHiddenAddresses(append(hidden, folded))
}

func (c *accountClient) ShowAccount(address string) {
	hidden := c.store.GetHiddenAddresses()
	folded := types.NormalizeAddress(address)
	remaining := make([]string, 0, len(hidden))
	for _, existing := range hidden {
		if existing == folded {
			continue
		}
		remaining = append(remaining, existing)
	}
	if len(remaining) == len(hidden) {
		return
	}
	c.store.SetHiddenAddresses(remaining)
}

func (c *accountClient) SetLocked(locked bool) {
	c.store.SetLocked(locked)
}

func (c *accountClient) OnChanged(
	callback func(types.AccountEvent),
) (unsubscribe func()) {
	c.obsMu.Lock()
	id := c.nextObsID
	c.nextObsID++
	c.observers = append(c.observers, observer{id: id, callback: callback})
	c.obsMu.Unlock()

	done := false
	return func() {
		if done {
			return
		}
		done = true
		c.obsMu.Lock()
		defer c.obsMu.Unlock()
		for i, obs := range c.observers {
			if obs.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				break
			}
		}
	}
}

func (c *accountClient) GetEventChannel() (<-chan types.AccountEvent, func()) {
	return c.broadcaster.Subscribe(c.eventBuffer)
}

func (c *accountClient) Dump() types.AccountState {
	return c.store.GetState()
}

func (c *accountClient) Close() {
	c.unsubscribeStore()
	c.broadcaster.Close()
	if c.repo != nil {
		c.repo.Close()
	}
}

// onStoreChanged is the single store subscription behind both the
// observer registry and the channel feed. Persistence piggybacks on it
// so every published snapshot is also the persisted one.
func (c *accountClient) onStoreChanged(next, prev types.AccountState) {
	if c.repo != nil {
		if err := c.repo.AddState(context.Background(), next); err != nil {
			log.WithError(err).Warn("failed to persist account state")
		}
	}

	event := classifyChange(next, prev)
	if event == nil {
		return
	}

	c.obsMu.Lock()
	observers := make([]observer, len(c.observers))
	copy(observers, c.observers)
	c.obsMu.Unlock()

	for _, obs := range observers {
		obs.callback(*event)
	}
	c.broadcaster.Publish(*event)
}

// classifyChange reduces a snapshot pair to at most one event. A
// selection change shadows the alias change a full switch also causes,
// so a switch is reported once. Addresses compare as stored, absent
// selections compare equal to each other.
func classifyChange(next, prev types.AccountState) *types.AccountEvent {
	nextPresent := next.CurrentAccount != nil
	prevPresent := prev.CurrentAccount != nil

	if nextPresent != prevPresent ||
		(nextPresent && next.CurrentAccount.Address != prev.CurrentAccount.Address) {
		return &types.AccountEvent{
			Type:    types.CurrentAccountChanged,
			Address: next.CurrentAddress(),
		}
	}

	if next.AlianName != prev.AlianName && nextPresent {
		return &types.AccountEvent{
			Type:    types.AliasNameChanged,
			Address: next.CurrentAccount.Address,
		}
	}

	return nil
}
