package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// Exit pays a user out of an inactive zkapp entirely: every ledger balance is
// transferred back from escrow, and the user's still-pending Deposit entries
// are refunded and removed from the queue. Each user can exit an app once.
func (k Keeper) Exit(ctx context.Context, user sdk.AccAddress, programHash types.ProgramHash) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if !zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrNotInactive, "program %s", programHash)
	}
	if k.HasExited(ctx, programHash, user) {
		return sdkerrors.Wrapf(types.ErrHasExit, "user %s already exited program %s", user, programHash)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	branch, commit := sdkCtx.CacheContext()

	// Pay out the settled ledger balances.
	account, hasAccount := k.GetAccount(branch, programHash, user)
	if hasAccount {
		for _, value := range account.Assets {
			if err := k.userWithdraw(branch, user, value, params); err != nil {
				return err
			}
		}
		account.Assets = nil
		if err := k.SetAccount(branch, programHash, user, account); err != nil {
			return err
		}
	}

	// Refund the user's Deposits still sitting in the pending queue; they
	// were escrowed at Deposit time but never settled into the ledger.
	kept := zkapp.L1Operations[:0:0]
	for _, op := range zkapp.L1Operations {
		if op.Kind == types.OpDeposit && op.User == user.String() {
			if err := k.userWithdraw(branch, user, op.Value, params); err != nil {
				return err
			}
			continue
		}
		kept = append(kept, op)
	}
	zkapp.L1Operations = kept
	if err := k.SetZkapp(branch, programHash, zkapp); err != nil {
		return err
	}

	if err := k.SetExited(branch, programHash, user); err != nil {
		return err
	}
	commit()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeExited,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeyUser, user.String()),
		),
	)
	k.Logger(ctx).Info("user exited zkapp", "program_hash", programHash.String(), "user", user.String())
	return nil
}
