package types

import (
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisZkapp is one zkapp record plus its program hash and, for ZkVM apps,
// the verifying-key descriptor (hex).
type GenesisZkapp struct {
	ProgramHash  ProgramHash `json:"program_hash"`
	Zkapp        Zkapp       `json:"zkapp"`
	VerifyingKey string      `json:"verifying_key,omitempty"`
}

// GenesisAccount is one user's ledger record inside one zkapp.
type GenesisAccount struct {
	ProgramHash ProgramHash `json:"program_hash"`
	Account     Account     `json:"account"`
}

// GenesisExit marks a user as having exited a zkapp.
type GenesisExit struct {
	ProgramHash ProgramHash `json:"program_hash"`
	User        string      `json:"user"`
}

// GenesisState is the zkrollup module's genesis state.
type GenesisState struct {
	Params   Params           `json:"params"`
	Zkapps   []GenesisZkapp   `json:"zkapps"`
	Accounts []GenesisAccount `json:"accounts"`
	Exits    []GenesisExit    `json:"exits"`
}

// DefaultGenesis returns the default genesis state.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:   DefaultParams(),
		Zkapps:   []GenesisZkapp{},
		Accounts: []GenesisAccount{},
		Exits:    []GenesisExit{},
	}
}

// Validate performs basic genesis state validation returning an error upon any
// failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return fmt.Errorf("invalid params: %w", err)
	}

	apps := make(map[ProgramHash]struct{}, len(gs.Zkapps))
	for i, gz := range gs.Zkapps {
		if _, dup := apps[gz.ProgramHash]; dup {
			return fmt.Errorf("zkapp %d: duplicate program hash %s", i, gz.ProgramHash)
		}
		apps[gz.ProgramHash] = struct{}{}
		if err := gz.Zkapp.Validate(gs.Params); err != nil {
			return fmt.Errorf("zkapp %d (%s): %w", i, gz.ProgramHash, err)
		}
		if gz.VerifyingKey != "" {
			if _, err := hex.DecodeString(gz.VerifyingKey); err != nil {
				return fmt.Errorf("zkapp %d (%s): invalid verifying key hex: %w", i, gz.ProgramHash, err)
			}
		}
	}

	accounts := make(map[string]struct{}, len(gs.Accounts))
	for i, ga := range gs.Accounts {
		if _, ok := apps[ga.ProgramHash]; !ok {
			return fmt.Errorf("account %d: unknown program hash %s", i, ga.ProgramHash)
		}
		if err := ga.Account.Validate(gs.Params); err != nil {
			return fmt.Errorf("account %d: %w", i, err)
		}
		key := ga.ProgramHash.String() + "/" + ga.Account.User
		if _, dup := accounts[key]; dup {
			return fmt.Errorf("account %d: duplicate entry for %s", i, key)
		}
		accounts[key] = struct{}{}
	}

	exits := make(map[string]struct{}, len(gs.Exits))
	for i, ge := range gs.Exits {
		if _, ok := apps[ge.ProgramHash]; !ok {
			return fmt.Errorf("exit %d: unknown program hash %s", i, ge.ProgramHash)
		}
		if _, err := sdk.AccAddressFromBech32(ge.User); err != nil {
			return fmt.Errorf("exit %d: invalid user %q: %w", i, ge.User, err)
		}
		key := ge.ProgramHash.String() + "/" + ge.User
		if _, dup := exits[key]; dup {
			return fmt.Errorf("exit %d: duplicate entry for %s", i, key)
		}
		exits[key] = struct{}{}
	}

	return nil
}
