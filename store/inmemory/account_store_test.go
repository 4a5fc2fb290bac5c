package inmemorystore_test

import (
	"context"
	"testing"

	inmemorystore "github.com/lumoswallet/go-sdk/store/inmemory"
	"github.com/lumoswallet/go-sdk/types"
	"github.com/stretchr/testify/require"
)

func TestSubscribersSeeSamePairInRegistrationOrder(t *testing.T) {
	store := inmemorystore.NewAccountStore()

	var order []int
	var pairs [][2]types.AccountState
	for i := 0; i < 3; i++ {
		i := i
		store.Subscribe(func(next, prev types.AccountState) {
			order = append(order, i)
			pairs = append(pairs, [2]types.AccountState{prev, next})
		})
	}

	store.SetAlianName("Main")

	require.Equal(t, []int{0, 1, 2}, order)
	require.Len(t, pairs, 3)
	for _, pair := range pairs {
		require.Empty(t, pair[0].AlianName)
		require.Equal(t, "Main", pair[1].AlianName)
	}
}

func TestUnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	store := inmemorystore.NewAccountStore()

	kept := 0
	dropped := 0
	store.Subscribe(func(next, prev types.AccountState) { kept++ })
	unsubscribe := store.Subscribe(func(next, prev types.AccountState) { dropped++ })

	store.SetLocked(true)
	require.Equal(t, 1, kept)
	require.Equal(t, 1, dropped)

	unsubscribe()
	unsubscribe()

	store.SetLocked(false)
	require.Equal(t, 2, kept)
	require.Equal(t, 1, dropped)
}

func TestSelectAccountSwapsSelectionAndAliasTogether(t *testing.T) {
	store := inmemorystore.NewAccountStore()
	store.SetAccounts([]types.Account{{Address: "0xAAA", AlianName: "Main"}})

	notifications := 0
	store.Subscribe(func(next, prev types.AccountState) {
		notifications++
		require.NotNil(t, next.CurrentAccount)
		require.Equal(t, "0xAAA", next.CurrentAccount.Address)
		require.Equal(t, "Main", next.AlianName)
	})

	store.SelectAccount(types.Account{Address: "0xAAA", AlianName: "Main"})
	require.Equal(t, 1, notifications)
	require.Equal(t, "Main", store.GetAlianName())
}

func TestGetStateReturnsIndependentCopy(t *testing.T) {
	store := inmemorystore.NewAccountStore()
	store.SetAccounts([]types.Account{{Address: "0xAAA", AlianName: "Main"}})
	store.SelectAccount(types.Account{Address: "0xAAA", AlianName: "Main"})

	state := store.GetState()
	state.Accounts[0].AlianName = "Tampered"
	state.CurrentAccount.Address = "0xBBB"
	state.AlianName = "Tampered"

	fresh := store.GetState()
	require.Equal(t, "Main", fresh.Accounts[0].AlianName)
	require.Equal(t, "0xAAA", fresh.CurrentAccount.Address)
	require.Equal(t, "Main", fresh.AlianName)
}

func TestSetAccountsDropsCaseInsensitiveDuplicates(t *testing.T) {
	store := inmemorystore.NewAccountStore()
	store.SetAccounts([]types.Account{
		{Address: "0xAAA", AlianName: "first"},
		{Address: "0xBBB"},
		{Address: "0xaaa", AlianName: "second"},
	})

	accounts := store.GetAccounts()
	require.Len(t, accounts, 2)
	require.Equal(t, "0xAAA", accounts[0].Address)
	require.Equal(t, "first", accounts[0].AlianName)
	require.Equal(t, "0xBBB", accounts[1].Address)
}

func TestSetHiddenAddressesNormalizesToLowercase(t *testing.T) {
	store := inmemorystore.NewAccountStore()
	store.SetHiddenAddresses([]string{"0xBBB", "0xCcC", "0xbbb"})

	require.Equal(t, []string{"0xbbb", "0xccc"}, store.GetHiddenAddresses())
}

func TestReentrantMutationNestsWithoutDeadlock(t *testing.T) {
	store := inmemorystore.NewAccountStore()

	fired := 0
	store.Subscribe(func(next, prev types.AccountState) {
		fired++
		if next.AlianName == "" && next.CurrentAccount != nil {
			store.SetAlianName(next.CurrentAccount.AlianName)
		}
	})

	store.SetCurrentAccount(types.Account{Address: "0xAAA", AlianName: "Main"})

	require.Equal(t, 2, fired)
	require.Equal(t, "Main", store.GetAlianName())
}

func TestReplaceStateRestoresSnapshot(t *testing.T) {
	store := inmemorystore.NewAccountStore()
	store.ReplaceState(types.AccountState{
		Accounts:        []types.Account{{Address: "0xAAA", AlianName: "Main"}},
		CurrentAccount:  &types.Account{Address: "0xAAA", AlianName: "Main"},
		AlianName:       "Main",
		IsLocked:        true,
		HiddenAddresses: []string{"0xBBB"},
	})

	state := store.GetState()
	require.Len(t, state.Accounts, 1)
	require.Equal(t, "0xAAA", state.CurrentAddress())
	require.Equal(t, "Main", state.AlianName)
	require.True(t, state.IsLocked)
	require.Equal(t, []string{"0xbbb"}, state.HiddenAddresses)
}

func TestStateRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := inmemorystore.NewStateRepository()
	defer repo.Close()

	got, err := repo.GetState(ctx)
	require.NoError(t, err)
	require.Nil(t, got)

	state := types.AccountState{
		Accounts:       []types.Account{{Address: "0xAAA", AlianName: "Main"}},
		CurrentAccount: &types.Account{Address: "0xAAA", AlianName: "Main"},
		AlianName:      "Main",
	}
	require.NoError(t, repo.AddState(ctx, state))

	got, err = repo.GetState(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, state.Accounts, got.Accounts)
	require.Equal(t, "0xAAA", got.CurrentAddress())

	require.NoError(t, repo.CleanState(ctx))
	got, err = repo.GetState(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}
