package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// Deposit escrows value from user and enqueues a Deposit operation on the
// zkapp's pending queue. The ledger credit happens later, when a submitted
// batch echoes the operation back.
func (k Keeper) Deposit(ctx context.Context, user sdk.AccAddress, programHash types.ProgramHash, value types.AssetValue) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}
	if !zkapp.SupportsAsset(value.Asset()) {
		return sdkerrors.Wrapf(types.ErrNotSupportAsset, "asset %s", value.Asset())
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if err := value.Validate(params.NonfungibleItemLimit); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidAssets, err.Error())
	}
	if uint32(len(zkapp.L1Operations))+1 > params.L1OperationLimit {
		return sdkerrors.Wrapf(types.ErrL1OperationLimitExceed, "limit %d", params.L1OperationLimit)
	}

	// Escrow transfer and queue growth commit together or not at all.
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	branch, commit := sdkCtx.CacheContext()

	if err := k.userDeposit(branch, user, value, params); err != nil {
		return err
	}
	zkapp.L1Operations = append(zkapp.L1Operations, types.NewDeposit(user.String(), value))
	if err := k.SetZkapp(branch, programHash, zkapp); err != nil {
		return err
	}
	commit()

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposited,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeyUser, user.String()),
			sdk.NewAttribute(types.AttributeKeyAssetValue, value.String()),
		),
	)
	return nil
}

// Withdraw enqueues a Withdraw operation. Assets leave escrow only when the
// batch carrying the operation settles; until then the ledger is untouched.
func (k Keeper) Withdraw(ctx context.Context, user sdk.AccAddress, programHash types.ProgramHash, value types.AssetValue) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}
	if !zkapp.SupportsAsset(value.Asset()) {
		return sdkerrors.Wrapf(types.ErrNotSupportAsset, "asset %s", value.Asset())
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if err := value.Validate(params.NonfungibleItemLimit); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidAssets, err.Error())
	}

	account, found := k.GetAccount(ctx, programHash, user)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoEnoughAssets, "user %s has no account in program %s", user, programHash)
	}
	if !account.HasEnough(value) {
		return sdkerrors.Wrapf(types.ErrNoEnoughAssets, "user %s lacks %s", user, value)
	}

	if uint32(len(zkapp.L1Operations))+1 > params.L1OperationLimit {
		return sdkerrors.Wrapf(types.ErrL1OperationLimitExceed, "limit %d", params.L1OperationLimit)
	}
	zkapp.L1Operations = append(zkapp.L1Operations, types.NewWithdraw(user.String(), value))
	if err := k.SetZkapp(ctx, programHash, zkapp); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawn,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeyUser, user.String()),
			sdk.NewAttribute(types.AttributeKeyAssetValue, value.String()),
		),
	)
	return nil
}

// MoveAsset enqueues a Move of value from one zkapp towards another. Both
// apps must be active and support the asset; the destination's Deposit entry
// is created at settlement of the source app's batch.
func (k Keeper) MoveAsset(ctx context.Context, user sdk.AccAddress, fromProgram, toProgram types.ProgramHash, value types.AssetValue) error {
	fromZkapp, found := k.GetZkapp(ctx, fromProgram)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", fromProgram)
	}
	toZkapp, found := k.GetZkapp(ctx, toProgram)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", toProgram)
	}
	if fromProgram == toProgram {
		return sdkerrors.Wrapf(types.ErrSameZkapp, "program %s", fromProgram)
	}
	if fromZkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", fromProgram)
	}
	if toZkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", toProgram)
	}
	if !fromZkapp.SupportsAsset(value.Asset()) {
		return sdkerrors.Wrapf(types.ErrNotSupportAsset, "asset %s in program %s", value.Asset(), fromProgram)
	}
	if !toZkapp.SupportsAsset(value.Asset()) {
		return sdkerrors.Wrapf(types.ErrNotSupportAsset, "asset %s in program %s", value.Asset(), toProgram)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if err := value.Validate(params.NonfungibleItemLimit); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidAssets, err.Error())
	}

	account, found := k.GetAccount(ctx, fromProgram, user)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoEnoughAssets, "user %s has no account in program %s", user, fromProgram)
	}
	if !account.HasEnough(value) {
		return sdkerrors.Wrapf(types.ErrNoEnoughAssets, "user %s lacks %s", user, value)
	}

	if uint32(len(fromZkapp.L1Operations))+1 > params.L1OperationLimit {
		return sdkerrors.Wrapf(types.ErrL1OperationLimitExceed, "limit %d", params.L1OperationLimit)
	}
	fromZkapp.L1Operations = append(fromZkapp.L1Operations, types.NewMove(user.String(), toProgram, value))
	if err := k.SetZkapp(ctx, fromProgram, fromZkapp); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAssetMoved,
			sdk.NewAttribute(types.AttributeKeyProgramHash, fromProgram.String()),
			sdk.NewAttribute(types.AttributeKeyDestProgramHash, toProgram.String()),
			sdk.NewAttribute(types.AttributeKeyUser, user.String()),
			sdk.NewAttribute(types.AttributeKeyAssetValue, value.String()),
		),
	)
	return nil
}
