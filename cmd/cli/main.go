package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	lumossdk "github.com/lumoswallet/go-sdk"
	"github.com/lumoswallet/go-sdk/store"
	"github.com/lumoswallet/go-sdk/types"
	"github.com/urfave/cli/v2"
)

const (
	DatadirEnvVar = "LUMOS_WALLET_DATADIR"
)

var (
	Version       string
	accountClient lumossdk.AccountClient
)

func main() {
	app := cli.NewApp()
	app.Version = Version
	app.Name = "Lumos CLI"
	app.Usage = "lumos wallet account command line interface"
	app.Commands = append(
		app.Commands,
		&listCommand,
		&currentCommand,
		&switchCommand,
		&renameCommand,
		&addCommand,
		&hideCommand,
		&showCommand,
		&lockCommand,
		&unlockCommand,
		&dumpCommand,
		&cleanCommand,
		&versionCommand,
	)
	app.Flags = []cli.Flag{datadirFlag, storeTypeFlag}
	app.Before = func(ctx *cli.Context) error {
		client, err := getAccountClient(ctx)
		if err != nil {
			return fmt.Errorf("error initializing lumos sdk client: %v", err)
		}
		accountClient = client

		return nil
	}
	app.After = func(ctx *cli.Context) error {
		if accountClient != nil {
			accountClient.Close()
		}
		return nil
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(fmt.Errorf("error: %v", err))
		os.Exit(1)
	}
}

var (
	datadirFlag = &cli.StringFlag{
		Name:     "datadir",
		Usage:    "Specify the data directory",
		Required: false,
		Value:    defaultDatadir(),
		EnvVars:  []string{DatadirEnvVar},
	}
	storeTypeFlag = &cli.StringFlag{
		Name:  "store",
		Usage: "account store backend to use (file, kv or sql)",
		Value: types.FileStore,
	}
	aliasFlag = &cli.StringFlag{
		Name:  "alias",
		Usage: "human readable label for the account",
	}
	addressFlag = &cli.StringFlag{
		Name:     "address",
		Usage:    "account address",
		Required: true,
	}
	allFlag = &cli.BoolFlag{
		Name:  "all",
		Usage: "include hidden accounts",
	}
)

var (
	listCommand = cli.Command{
		Name:  "list",
		Usage: "Shows the visible accounts, or all of them with --all",
		Flags: []cli.Flag{allFlag},
		Action: func(ctx *cli.Context) error {
			return list(ctx)
		},
	}
	currentCommand = cli.Command{
		Name:  "current",
		Usage: "Shows the selected account",
		Action: func(ctx *cli.Context) error {
			return current(ctx)
		},
	}
	switchCommand = cli.Command{
		Name:  "switch",
		Usage: "Selects another account",
		Flags: []cli.Flag{addressFlag, aliasFlag},
		Action: func(ctx *cli.Context) error {
			return switchAccount(ctx)
		},
	}
	renameCommand = cli.Command{
		Name:  "rename",
		Usage: "Renames the selected account",
		Flags: []cli.Flag{aliasFlag},
		Action: func(ctx *cli.Context) error {
			return rename(ctx)
		},
	}
	addCommand = cli.Command{
		Name:  "add",
		Usage: "Adds an account to the known list",
		Flags: []cli.Flag{addressFlag, aliasFlag},
		Action: func(ctx *cli.Context) error {
			return add(ctx)
		},
	}
	hideCommand = cli.Command{
		Name:  "hide",
		Usage: "Hides an account from the visible list",
		Flags: []cli.Flag{addressFlag},
		Action: func(ctx *cli.Context) error {
			accountClient.HideAccount(ctx.String(addressFlag.Name))
			return nil
		},
	}
	showCommand = cli.Command{
		Name:  "show",
		Usage: "Puts a hidden account back in the visible list",
		Flags: []cli.Flag{addressFlag},
		Action: func(ctx *cli.Context) error {
			accountClient.ShowAccount(ctx.String(addressFlag.Name))
			return nil
		},
	}
	lockCommand = cli.Command{
		Name:  "lock",
		Usage: "Flags the session as locked",
		Action: func(ctx *cli.Context) error {
			accountClient.SetLocked(true)
			return nil
		},
	}
	unlockCommand = cli.Command{
		Name:  "unlock",
		Usage: "Flags the session as unlocked",
		Action: func(ctx *cli.Context) error {
			accountClient.SetLocked(false)
			return nil
		},
	}
	dumpCommand = cli.Command{
		Name:  "dump",
		Usage: "Dumps the whole account state",
		Action: func(ctx *cli.Context) error {
			return printJSON(accountClient.Dump())
		},
	}
	cleanCommand = cli.Command{
		Name:  "clean",
		Usage: "Wipes the persisted account state",
		Action: func(ctx *cli.Context) error {
			return clean(ctx)
		},
	}
	versionCommand = cli.Command{
		Name:  "version",
		Usage: "Display version information",
		Action: func(ctx *cli.Context) error {
			fmt.Printf("Lumos CLI version: %s\n", Version)
			return nil
		},
	}
)

var accountRepository types.AccountRepository

func getAccountClient(ctx *cli.Context) (lumossdk.AccountClient, error) {
	repo, err := store.NewAccountRepository(store.Config{
		StoreType: ctx.String(storeTypeFlag.Name),
		BaseDir:   ctx.String(datadirFlag.Name),
	})
	if err != nil {
		return nil, err
	}
	accountRepository = repo
	return lumossdk.LoadAccountClient(repo)
}

func list(ctx *cli.Context) error {
	accounts := accountClient.VisibleAccounts()
	if ctx.Bool(allFlag.Name) {
		accounts = accountClient.Accounts()
	}
	return printJSON(map[string]interface{}{
		"accounts":         accounts,
		"hidden_addresses": accountClient.HiddenAddresses(),
	})
}

func current(_ *cli.Context) error {
	account := accountClient.CurrentAccount()
	if account == nil {
		return printJSON(map[string]interface{}{"current_account": nil})
	}
	return printJSON(map[string]interface{}{
		"current_account": account,
		"alian_name":      accountClient.AlianName(),
		"is_locked":       accountClient.IsLocked(),
	})
}

func switchAccount(ctx *cli.Context) error {
	address := ctx.String(addressFlag.Name)
	alias := ctx.String(aliasFlag.Name)
	if alias == "" {
		// Reuse the label the account is already known by.
		for _, account := range accountClient.Accounts() {
			if account.SameAddress(types.Account{Address: address}) {
				alias = account.AlianName
				break
			}
		}
	}
	accountClient.SwitchAccount(types.Account{Address: address, AlianName: alias})
	return current(ctx)
}

func rename(ctx *cli.Context) error {
	if accountClient.CurrentAccount() == nil {
		return fmt.Errorf("no account selected")
	}
	accountClient.RenameCurrentAccount(ctx.String(aliasFlag.Name))
	return current(ctx)
}

func add(ctx *cli.Context) error {
	accounts := accountClient.Accounts()
	accounts = append(accounts, types.Account{
		Address:   ctx.String(addressFlag.Name),
		AlianName: ctx.String(aliasFlag.Name),
	})
	accountClient.SetAccounts(accounts)
	return list(ctx)
}

func clean(ctx *cli.Context) error {
	return accountRepository.CleanState(ctx.Context)
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lumos-cli"
	}
	return filepath.Join(home, ".lumos-cli")
}

func printJSON(resp interface{}) error {
	jsonBytes, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		return err
	}
	fmt.Println(string(jsonBytes))
	return nil
}
