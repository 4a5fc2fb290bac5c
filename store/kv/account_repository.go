package kvstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/lumoswallet/go-sdk/types"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	accountStoreDir = "accounts"
	selectionKey    = "selection"
)

type accountRecord struct {
	Address   string
	AlianName string
	Position  int
}

type selectionRecord struct {
	HasCurrent       bool
	CurrentAddress   string
	CurrentAlianName string
	AlianName        string
	IsLocked         bool
	HiddenAddresses  []string
}

type accountStore struct {
	db *badgerhold.Store
}

// NewAccountRepository opens a badger-backed repository under dir. An
// empty dir opens an in-memory database, which tests rely on.
func NewAccountRepository(dir string, logger badger.Logger) (types.AccountRepository, error) {
	if dir != "" {
		dir = filepath.Join(dir, accountStoreDir)
	}
	badgerDb, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open account store: %s", err)
	}
	return &accountStore{
		db: badgerDb,
	}, nil
}

func (s *accountStore) GetType() string {
	return types.KVStore
}

func (s *accountStore) AddState(_ context.Context, state types.AccountState) error {
	if err := s.db.DeleteMatching(&accountRecord{}, nil); err != nil {
		return err
	}

	for i, account := range state.Accounts {
		record := accountRecord{
			Address:   account.Address,
			AlianName: account.AlianName,
			Position:  i,
		}
		key := types.NormalizeAddress(account.Address)
		if err := s.db.Upsert(key, &record); err != nil {
			return err
		}
	}

	selection := selectionRecord{
		HasCurrent:      state.CurrentAccount != nil,
		AlianName:       state.AlianName,
		IsLocked:        state.IsLocked,
		HiddenAddresses: state.HiddenAddresses,
	}
	if state.CurrentAccount != nil {
		selection.CurrentAddress = state.CurrentAccount.Address
		selection.CurrentAlianName = state.CurrentAccount.AlianName
	}
	return s.db.Upsert(selectionKey, &selection)
}

func (s *accountStore) GetState(_ context.Context) (*types.AccountState, error) {
	var selection selectionRecord
	if err := s.db.Get(selectionKey, &selection); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var records []accountRecord
	if err := s.db.Find(&records, nil); err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})

	accounts := make([]types.Account, 0, len(records))
	for _, record := range records {
		accounts = append(accounts, types.Account{
			Address:   record.Address,
			AlianName: record.AlianName,
		})
	}

	var current *types.Account
	if selection.HasCurrent {
		current = &types.Account{
			Address:   selection.CurrentAddress,
			AlianName: selection.CurrentAlianName,
		}
	}

	return &types.AccountState{
		Accounts:        accounts,
		CurrentAccount:  current,
		AlianName:       selection.AlianName,
		IsLocked:        selection.IsLocked,
		HiddenAddresses: selection.HiddenAddresses,
	}, nil
}

func (s *accountStore) CleanState(_ context.Context) error {
	if err := s.db.Badger().DropAll(); err != nil {
		return fmt.Errorf("failed to clean the account db: %s", err)
	}
	return nil
}

func (s *accountStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Debugf("error on closing db: %s", err)
	}
}
