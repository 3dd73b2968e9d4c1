package keeper

import (
	"context"
	"encoding/hex"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// InitGenesis initializes the zkrollup module state from a genesis state.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, gz := range genState.Zkapps {
		if err := k.SetZkapp(ctx, gz.ProgramHash, gz.Zkapp); err != nil {
			return fmt.Errorf("failed to set zkapp %s: %w", gz.ProgramHash, err)
		}
		if gz.VerifyingKey != "" {
			vk, err := hex.DecodeString(gz.VerifyingKey)
			if err != nil {
				return fmt.Errorf("invalid verifying key for %s: %w", gz.ProgramHash, err)
			}
			if err := k.SetVerifyingKey(ctx, gz.ProgramHash, vk); err != nil {
				return fmt.Errorf("failed to set verifying key for %s: %w", gz.ProgramHash, err)
			}
		}
	}

	for _, ga := range genState.Accounts {
		user, err := sdk.AccAddressFromBech32(ga.Account.User)
		if err != nil {
			return fmt.Errorf("invalid account user %q: %w", ga.Account.User, err)
		}
		if err := k.SetAccount(ctx, ga.ProgramHash, user, ga.Account); err != nil {
			return fmt.Errorf("failed to set account %s/%s: %w", ga.ProgramHash, ga.Account.User, err)
		}
	}

	for _, ge := range genState.Exits {
		user, err := sdk.AccAddressFromBech32(ge.User)
		if err != nil {
			return fmt.Errorf("invalid exit user %q: %w", ge.User, err)
		}
		if err := k.SetExited(ctx, ge.ProgramHash, user); err != nil {
			return fmt.Errorf("failed to set exit %s/%s: %w", ge.ProgramHash, ge.User, err)
		}
	}

	return nil
}

// ExportGenesis returns the zkrollup module's exported genesis.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	genState := types.GenesisState{
		Params:   params,
		Zkapps:   []types.GenesisZkapp{},
		Accounts: []types.GenesisAccount{},
		Exits:    []types.GenesisExit{},
	}

	err = k.IterateZkapps(ctx, func(programHash types.ProgramHash, zkapp types.Zkapp) bool {
		gz := types.GenesisZkapp{ProgramHash: programHash, Zkapp: zkapp}
		if vk, err := k.GetVerifyingKey(ctx, programHash); err == nil {
			gz.VerifyingKey = hex.EncodeToString(vk)
		}
		genState.Zkapps = append(genState.Zkapps, gz)
		return false
	})
	if err != nil {
		return nil, err
	}

	err = k.IterateAccounts(ctx, func(programHash types.ProgramHash, account types.Account) bool {
		genState.Accounts = append(genState.Accounts, types.GenesisAccount{
			ProgramHash: programHash,
			Account:     account,
		})
		return false
	})
	if err != nil {
		return nil, err
	}

	err = k.IterateExits(ctx, func(programHash types.ProgramHash, user sdk.AccAddress) bool {
		genState.Exits = append(genState.Exits, types.GenesisExit{
			ProgramHash: programHash,
			User:        user.String(),
		})
		return false
	})
	if err != nil {
		return nil, err
	}

	return &genState, nil
}
