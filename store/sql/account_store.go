package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ccoveille/go-safecast"
	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lumoswallet/go-sdk/types"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const dbFile = "state.db"

//go:embed migration/*
var migrations embed.FS

type accountStore struct {
	db *sql.DB
}

func NewAccountRepository(baseDir string) (types.AccountRepository, error) {
	db, err := openDB(filepath.Join(baseDir, dbFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open account store: %s", err)
	}
	return &accountStore{
		db: db,
	}, nil
}

func openDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(migrations, "migration")
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return nil, err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}

	return db, nil
}

func (s *accountStore) GetType() string {
	return types.SQLStore
}

func (s *accountStore) AddState(ctx context.Context, state types.AccountState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	// nolint:errcheck
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM accounts"); err != nil {
		return err
	}
	for i, account := range state.Accounts {
		position, err := safecast.ToInt64(i)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO accounts (address, display_address, alian_name, position) "+
				"VALUES (?, ?, ?, ?)",
			types.NormalizeAddress(account.Address),
			account.Address,
			account.AlianName,
			position,
		); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM hidden_addresses"); err != nil {
		return err
	}
	for _, address := range state.HiddenAddresses {
		if _, err := tx.ExecContext(
			ctx,
			"INSERT INTO hidden_addresses (address) VALUES (?)",
			types.NormalizeAddress(address),
		); err != nil {
			return err
		}
	}

	currentAddress := sql.NullString{Valid: false}
	currentAlianName := sql.NullString{Valid: false}
	if state.CurrentAccount != nil {
		currentAddress = sql.NullString{String: state.CurrentAccount.Address, Valid: true}
		currentAlianName = sql.NullString{String: state.CurrentAccount.AlianName, Valid: true}
	}
	if _, err := tx.ExecContext(
		ctx,
		"INSERT INTO selection "+
			"(id, has_current, current_address, current_alian_name, alian_name, is_locked) "+
			"VALUES (1, ?, ?, ?, ?, ?) "+
			"ON CONFLICT (id) DO UPDATE SET "+
			"has_current = excluded.has_current, "+
			"current_address = excluded.current_address, "+
			"current_alian_name = excluded.current_alian_name, "+
			"alian_name = excluded.alian_name, "+
			"is_locked = excluded.is_locked",
		state.CurrentAccount != nil,
		currentAddress,
		currentAlianName,
		state.AlianName,
		state.IsLocked,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *accountStore) GetState(ctx context.Context) (*types.AccountState, error) {
	row := s.db.QueryRowContext(
		ctx,
		"SELECT has_current, current_address, current_alian_name, alian_name, is_locked "+
			"FROM selection WHERE id = 1",
	)

	var (
		hasCurrent       bool
		currentAddress   sql.NullString
		currentAlianName sql.NullString
		alianName        string
		isLocked         bool
	)
	if err := row.Scan(
		&hasCurrent, &currentAddress, &currentAlianName, &alianName, &isLocked,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	accounts, err := s.getAccounts(ctx)
	if err != nil {
		return nil, err
	}

	hidden, err := s.getHiddenAddresses(ctx)
	if err != nil {
		return nil, err
	}

	var current *types.Account
	if hasCurrent {
		current = &types.Account{
			Address:   currentAddress.String,
			AlianName: currentAlianName.String,
		}
	}

	return &types.AccountState{
		Accounts:        accounts,
		CurrentAccount:  current,
		AlianName:       alianName,
		IsLocked:        isLocked,
		HiddenAddresses: hidden,
	}, nil
}

func (s *accountStore) getAccounts(ctx context.Context) ([]types.Account, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT display_address, alian_name FROM accounts ORDER BY position ASC",
	)
	if err != nil {
		return nil, err
	}
	// nolint:errcheck
	defer rows.Close()

	accounts := make([]types.Account, 0)
	for rows.Next() {
		var account types.Account
		if err := rows.Scan(&account.Address, &account.AlianName); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (s *accountStore) getHiddenAddresses(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT address FROM hidden_addresses ORDER BY address ASC",
	)
	if err != nil {
		return nil, err
	}
	// nolint:errcheck
	defer rows.Close()

	hidden := make([]string, 0)
	for rows.Next() {
		var address string
		if err := rows.Scan(&address); err != nil {
			return nil, err
		}
		hidden = append(hidden, address)
	}
	return hidden, rows.Err()
}

func (s *accountStore) CleanState(ctx context.Context) error {
	for _, table := range []string{"hidden_addresses", "selection", "accounts"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clean the account db: %s", err)
		}
	}
	return nil
}

func (s *accountStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Debugf("error on closing db: %s", err)
	}
}
