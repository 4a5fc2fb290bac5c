package kvstore_test

import (
	"context"
	"testing"

	kvstore "github.com/lumoswallet/go-sdk/store/kv"
	"github.com/lumoswallet/go-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestKVRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := kvstore.NewAccountRepository("", nil)
	require.NoError(t, err)
	defer repo.Close()

	require.Equal(t, types.KVStore, repo.GetType())

	got, err := repo.GetState(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	state := types.AccountState{
		Accounts: []types.Account{
			{Address: "0xCCC", AlianName: "Third"},
			{Address: "0xAAA", AlianName: "Main"},
			{Address: "0xBBB"},
		},
		CurrentAccount:  &types.Account{Address: "0xAAA", AlianName: "Main"},
		AlianName:       "Main",
		HiddenAddresses: []string{"0xbbb"},
	}
	require.NoError(t, repo.AddState(ctx, state))

	got, err = repo.GetState(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	// Insertion order survives the store, it is display order.
	require.Equal(t, state.Accounts, got.Accounts)
	require.Equal(t, "0xAAA", got.CurrentAddress())
	require.Equal(t, "Main", got.AlianName)
	require.Equal(t, []string{"0xbbb"}, got.HiddenAddresses)
}

func TestKVRepositoryReplacesWholeSnapshot(t *testing.T) {
	ctx := context.Background()
	repo, err := kvstore.NewAccountRepository("", nil)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.AddState(ctx, types.AccountState{
		Accounts: []types.Account{
			{Address: "0xAAA", AlianName: "Main"},
			{Address: "0xBBB", AlianName: "Cold"},
		},
	}))

	// A later snapshot with fewer accounts must not leak the removed one.
	require.NoError(t, repo.AddState(ctx, types.AccountState{
		Accounts: []types.Account{{Address: "0xBBB", AlianName: "Cold"}},
	}))

	got, err := repo.GetState(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Accounts, 1)
	require.Equal(t, "0xBBB", got.Accounts[0].Address)
}

func TestKVRepositoryClean(t *testing.T) {
	ctx := context.Background()
	repo, err := kvstore.NewAccountRepository("", nil)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.AddState(ctx, types.AccountState{
		CurrentAccount: &types.Account{Address: "0xAAA"},
	}))
	require.NoError(t, repo.CleanState(ctx))

	got, err := repo.GetState(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}
