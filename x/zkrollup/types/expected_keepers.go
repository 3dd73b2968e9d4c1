package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper is the native currency primitive the custody bridge moves
// currency values through.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// FungibleKeeper is the fungible-token primitive, keyed by asset id.
type FungibleKeeper interface {
	Transfer(ctx context.Context, assetID uint32, from, to sdk.AccAddress, amount sdkmath.Int) error
	MintInto(ctx context.Context, assetID uint32, to sdk.AccAddress, amount sdkmath.Int) error
	Create(ctx context.Context, assetID uint32, admin sdk.AccAddress) error
}

// NonfungibleKeeper is the non-fungible primitive. TransferItem returns the
// owner the item was taken from, which the custody bridge checks item by item.
type NonfungibleKeeper interface {
	TransferItem(ctx context.Context, collectionID, itemID uint32, to sdk.AccAddress) (priorOwner sdk.AccAddress, err error)
	MintItem(ctx context.Context, collectionID, itemID uint32, to sdk.AccAddress) error
	CreateCollection(ctx context.Context, collectionID uint32, admin sdk.AccAddress) error
}
