package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// userDeposit moves value from user into the module escrow account. For
// non-fungible values, every item must currently be owned by user; the check
// is against the prior owner the transfer reports.
func (k Keeper) userDeposit(ctx context.Context, user sdk.AccAddress, value types.AssetValue, params types.Params) error {
	switch value.Kind {
	case types.AssetKindCurrency:
		coins := sdk.NewCoins(sdk.NewCoin(params.NativeDenom, sdkmath.NewIntFromUint64(value.Amount)))
		return k.bankKeeper.SendCoins(ctx, user, k.escrowAddr, coins)
	case types.AssetKindFungible:
		return k.fungibleKeeper.Transfer(ctx, value.AssetID, user, k.escrowAddr, sdkmath.NewIntFromUint64(value.Amount))
	case types.AssetKindNonfungible:
		for _, item := range value.Items {
			priorOwner, err := k.nonfungibleKeeper.TransferItem(ctx, value.CollectionID, item, k.escrowAddr)
			if err != nil {
				return err
			}
			if !priorOwner.Equals(user) {
				return sdkerrors.Wrapf(types.ErrNotAssetOwner, "item %d of collection %d owned by %s, not %s",
					item, value.CollectionID, priorOwner, user)
			}
		}
		return nil
	default:
		return sdkerrors.Wrapf(types.ErrInvalidAssets, "unknown asset kind %d", value.Kind)
	}
}

// userWithdraw moves value from the module escrow account out to user. For
// non-fungible values, every item must currently sit in escrow.
func (k Keeper) userWithdraw(ctx context.Context, user sdk.AccAddress, value types.AssetValue, params types.Params) error {
	switch value.Kind {
	case types.AssetKindCurrency:
		coins := sdk.NewCoins(sdk.NewCoin(params.NativeDenom, sdkmath.NewIntFromUint64(value.Amount)))
		return k.bankKeeper.SendCoins(ctx, k.escrowAddr, user, coins)
	case types.AssetKindFungible:
		return k.fungibleKeeper.Transfer(ctx, value.AssetID, k.escrowAddr, user, sdkmath.NewIntFromUint64(value.Amount))
	case types.AssetKindNonfungible:
		for _, item := range value.Items {
			priorOwner, err := k.nonfungibleKeeper.TransferItem(ctx, value.CollectionID, item, user)
			if err != nil {
				return err
			}
			if !priorOwner.Equals(k.escrowAddr) {
				return sdkerrors.Wrapf(types.ErrNotAssetOwner, "item %d of collection %d owned by %s, not escrow",
					item, value.CollectionID, priorOwner)
			}
		}
		return nil
	default:
		return sdkerrors.Wrapf(types.ErrInvalidAssets, "unknown asset kind %d", value.Kind)
	}
}
