package inmemorystore

import (
	"context"
	"sync"

	"github.com/lumoswallet/go-sdk/types"
)

var _ types.AccountStore = (*AccountStore)(nil)

// stateRepository is the volatile AccountRepository, used by tests and
// as the default backend when no datadir is configured.
type stateRepository struct {
	lock  *sync.Mutex
	state *types.AccountState
}

func NewStateRepository() types.AccountRepository {
	return &stateRepository{
		lock: &sync.Mutex{},
	}
}

func (r *stateRepository) GetType() string {
	return types.InMemoryStore
}

func (r *stateRepository) AddState(_ context.Context, state types.AccountState) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	copied := state.Copy()
	r.state = &copied
	return nil
}

func (r *stateRepository) GetState(_ context.Context) (*types.AccountState, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.state == nil {
		return nil, nil
	}
	copied := r.state.Copy()
	return &copied, nil
}

func (r *stateRepository) CleanState(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.state = nil
	return nil
}

func (r *stateRepository) Close() {}
