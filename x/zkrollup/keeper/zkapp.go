package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// RegisterZkapp registers a new zkapp under programHash. The caller becomes
// the owner; submitter is who may submit batches; emptyStateRoot is the root
// of the app's empty state tree. ZkVM apps must carry a verifying-key
// descriptor, checked for well-formedness at submit time.
//
// Every zkapp supports the native currency from the start.
func (k Keeper) RegisterZkapp(
	ctx context.Context,
	owner sdk.AccAddress,
	programHash types.ProgramHash,
	verifierKind types.VerifierKind,
	submitter sdk.AccAddress,
	emptyStateRoot types.StateRoot,
	verifyingKey []byte,
) error {
	if err := verifierKind.Validate(); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
	}
	if k.HasZkapp(ctx, programHash) {
		return sdkerrors.Wrapf(types.ErrDuplicateApp, "program %s", programHash)
	}
	if verifierKind == types.VerifierKindZkVM && len(verifyingKey) == 0 {
		return sdkerrors.Wrap(types.ErrInvalidBatchParams, "zkvm app registered without verifying key")
	}

	zkapp := types.Zkapp{
		VerifierKind:    verifierKind,
		Owner:           owner.String(),
		Submitter:       submitter.String(),
		StateRoot:       emptyStateRoot,
		SupportedAssets: []types.Asset{types.CurrencyAsset()},
	}
	if err := k.SetZkapp(ctx, programHash, zkapp); err != nil {
		return err
	}
	if len(verifyingKey) > 0 {
		if err := k.SetVerifyingKey(ctx, programHash, verifyingKey); err != nil {
			return err
		}
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeZkappRegistered,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeyVerifierKind, verifierKind.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, zkapp.Owner),
			sdk.NewAttribute(types.AttributeKeySubmitter, zkapp.Submitter),
		),
	)
	k.Logger(ctx).Info("zkapp registered",
		"program_hash", programHash.String(),
		"verifier", verifierKind.String(),
		"owner", zkapp.Owner,
	)
	return nil
}

// AddAssetSupport adds asset to the zkapp's supported set. Owner only.
func (k Keeper) AddAssetSupport(ctx context.Context, owner sdk.AccAddress, programHash types.ProgramHash, asset types.Asset) error {
	if err := asset.Validate(); err != nil {
		return sdkerrors.Wrap(types.ErrNotSupportAsset, err.Error())
	}

	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.Owner != owner.String() {
		return sdkerrors.Wrapf(types.ErrNotOwner, "caller %s, owner %s", owner, zkapp.Owner)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}
	if zkapp.SupportsAsset(asset) {
		return sdkerrors.Wrapf(types.ErrDuplicateSupportAsset, "asset %s", asset)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if uint32(len(zkapp.SupportedAssets))+1 > params.AssetsLimit {
		return sdkerrors.Wrapf(types.ErrAssetsLimitExceed, "limit %d", params.AssetsLimit)
	}

	zkapp.SupportedAssets = append(zkapp.SupportedAssets, asset)
	if err := k.SetZkapp(ctx, programHash, zkapp); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAssetSupportAdded,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeyAsset, asset.String()),
		),
	)
	return nil
}

// ChangeSubmitter replaces the zkapp's submitter. Owner only.
func (k Keeper) ChangeSubmitter(ctx context.Context, owner sdk.AccAddress, programHash types.ProgramHash, submitter sdk.AccAddress) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.Owner != owner.String() {
		return sdkerrors.Wrapf(types.ErrNotOwner, "caller %s, owner %s", owner, zkapp.Owner)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}

	zkapp.Submitter = submitter.String()
	if err := k.SetZkapp(ctx, programHash, zkapp); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmitterChanged,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
			sdk.NewAttribute(types.AttributeKeySubmitter, zkapp.Submitter),
		),
	)
	return nil
}

// SetInactive deactivates the zkapp. Owner only, one-way: once inactive, the
// only operation left for the app is user exit.
func (k Keeper) SetInactive(ctx context.Context, owner sdk.AccAddress, programHash types.ProgramHash) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.Owner != owner.String() {
		return sdkerrors.Wrapf(types.ErrNotOwner, "caller %s, owner %s", owner, zkapp.Owner)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}

	zkapp.IsInactive = true
	if err := k.SetZkapp(ctx, programHash, zkapp); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeZkappDeactivated,
			sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
		),
	)
	k.Logger(ctx).Info("zkapp deactivated", "program_hash", programHash.String())
	return nil
}
