package filestore

import (
	"strconv"

	"github.com/lumoswallet/go-sdk/types"
)

type accountEntry struct {
	Address   string `json:"address"`
	AlianName string `json:"alian_name"`
}

type stateData struct {
	Accounts         []accountEntry `json:"accounts"`
	HasCurrent       string         `json:"has_current"`
	CurrentAddress   string         `json:"current_address"`
	CurrentAlianName string         `json:"current_alian_name"`
	AlianName        string         `json:"alian_name"`
	IsLocked         string         `json:"is_locked"`
	HiddenAddresses  []string       `json:"hidden_addresses"`
}

func (d stateData) isEmpty() bool {
	return len(d.Accounts) == 0 && d.HasCurrent == "" && d.AlianName == ""
}

func (d stateData) decode() types.AccountState {
	accounts := make([]types.Account, 0, len(d.Accounts))
	for _, entry := range d.Accounts {
		accounts = append(accounts, types.Account{
			Address:   entry.Address,
			AlianName: entry.AlianName,
		})
	}

	hasCurrent, _ := strconv.ParseBool(d.HasCurrent)
	var current *types.Account
	if hasCurrent {
		current = &types.Account{
			Address:   d.CurrentAddress,
			AlianName: d.CurrentAlianName,
		}
	}

	isLocked, _ := strconv.ParseBool(d.IsLocked)

	hidden := make([]string, 0, len(d.HiddenAddresses))
	for _, address := range d.HiddenAddresses {
		hidden = append(hidden, types.NormalizeAddress(address))
	}

	return types.AccountState{
		Accounts:        accounts,
		CurrentAccount:  current,
		AlianName:       d.AlianName,
		IsLocked:        isLocked,
		HiddenAddresses: hidden,
	}
}

func (d stateData) asMap() map[string]any {
	accounts := make([]map[string]any, 0, len(d.Accounts))
	for _, entry := range d.Accounts {
		accounts = append(accounts, map[string]any{
			"address":    entry.Address,
			"alian_name": entry.AlianName,
		})
	}
	return map[string]any{
		"accounts":           accounts,
		"has_current":        d.HasCurrent,
		"current_address":    d.CurrentAddress,
		"current_alian_name": d.CurrentAlianName,
		"alian_name":         d.AlianName,
		"is_locked":          d.IsLocked,
		"hidden_addresses":   d.HiddenAddresses,
	}
}

func encode(state types.AccountState) stateData {
	accounts := make([]accountEntry, 0, len(state.Accounts))
	for _, account := range state.Accounts {
		accounts = append(accounts, accountEntry{
			Address:   account.Address,
			AlianName: account.AlianName,
		})
	}

	data := stateData{
		Accounts:        accounts,
		HasCurrent:      strconv.FormatBool(state.CurrentAccount != nil),
		AlianName:       state.AlianName,
		IsLocked:        strconv.FormatBool(state.IsLocked),
		HiddenAddresses: state.HiddenAddresses,
	}
	if state.CurrentAccount != nil {
		data.CurrentAddress = state.CurrentAccount.Address
		data.CurrentAlianName = state.CurrentAccount.AlianName
	}
	return data
}
