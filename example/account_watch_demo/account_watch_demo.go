package main

import (
	"flag"
	"fmt"
	"log"

	lumossdk "github.com/lumoswallet/go-sdk"
	"github.com/lumoswallet/go-sdk/store"
	"github.com/lumoswallet/go-sdk/types"
)

func main() {
	storeType := flag.String("store", types.InMemoryStore, "account store backend (inmemory, file, kv or sql)")
	datadir := flag.String("datadir", "", "data directory for persistent backends")
	flag.Parse()

	repo, err := store.NewAccountRepository(store.Config{
		StoreType: *storeType,
		BaseDir:   *datadir,
	})
	if err != nil {
		log.Fatalf("failed to open account store: %v", err)
	}

	client, err := lumossdk.LoadAccountClient(repo)
	if err != nil {
		log.Fatalf("failed to load account client: %v", err)
	}
	defer client.Close()

	eventCh, cancel := client.GetEventChannel()
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range eventCh {
			fmt.Printf("event: %s address=%s\n", event.Type, event.Address)
		}
	}()

	client.SetAccounts([]types.Account{
		{Address: "0xAAA", AlianName: "Main"},
		{Address: "0xBBB", AlianName: "Cold"},
	})

	// A full switch is reported once, as an account change.
	client.SwitchAccount(types.Account{Address: "0xAAA", AlianName: "Main"})

	// Renaming the selected account is reported as an alias change.
	client.RenameCurrentAccount("Hot")

	// Hidden accounts stay in the collection but leave the visible list.
	client.HideAccount("0xBBB")
	fmt.Printf("visible accounts: %v\n", client.VisibleAccounts())

	cancel()
	<-done
}
