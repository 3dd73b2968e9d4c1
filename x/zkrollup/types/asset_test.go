package types_test

import (
	"testing"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

func testAddr() string {
	return sdk.AccAddress(secp256k1.GenPrivKey().PubKey().Address()).String()
}

func TestAssetValueValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   types.AssetValue
		wantErr bool
	}{
		{
			name:  "currency",
			value: types.CurrencyValue(100),
		},
		{
			name:  "fungible",
			value: types.FungibleValue(1, 100),
		},
		{
			name:  "nonfungible",
			value: types.NonfungibleValue(1, 10, 11),
		},
		{
			name:    "nonfungible without items",
			value:   types.NonfungibleValue(1),
			wantErr: true,
		},
		{
			name:    "nonfungible duplicate items",
			value:   types.NonfungibleValue(1, 10, 10),
			wantErr: true,
		},
		{
			name: "currency with items",
			value: types.AssetValue{
				Kind:   types.AssetKindCurrency,
				Amount: 1,
				Items:  []uint32{1},
			},
			wantErr: true,
		},
		{
			name: "fungible with collection id",
			value: types.AssetValue{
				Kind:         types.AssetKindFungible,
				AssetID:      1,
				CollectionID: 2,
				Amount:       1,
			},
			wantErr: true,
		},
		{
			name: "currency with asset id",
			value: types.AssetValue{
				Kind:    types.AssetKindCurrency,
				AssetID: 1,
				Amount:  1,
			},
			wantErr: true,
		},
		{
			name: "nonfungible with asset id",
			value: types.AssetValue{
				Kind:         types.AssetKindNonfungible,
				AssetID:      1,
				CollectionID: 2,
				Items:        []uint32{1},
			},
			wantErr: true,
		},
		{
			name: "nonfungible with amount",
			value: types.AssetValue{
				Kind:         types.AssetKindNonfungible,
				CollectionID: 1,
				Amount:       1,
				Items:        []uint32{1},
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			value: types.AssetValue{
				Kind:   types.AssetKind(9),
				Amount: 1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Validate(types.DefaultNonfungibleItemLimit)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAssetValueItemLimit(t *testing.T) {
	items := make([]uint32, 0, types.DefaultNonfungibleItemLimit+1)
	for i := uint32(0); i <= types.DefaultNonfungibleItemLimit; i++ {
		items = append(items, i)
	}
	value := types.NonfungibleValue(1, items...)
	require.Error(t, value.Validate(types.DefaultNonfungibleItemLimit))
	require.NoError(t, value.Validate(types.DefaultNonfungibleItemLimit+1))
}

func TestAssetProjection(t *testing.T) {
	require.Equal(t, types.CurrencyAsset(), types.CurrencyValue(5).Asset())
	require.Equal(t, types.FungibleAsset(7), types.FungibleValue(7, 5).Asset())
	require.Equal(t, types.NonfungibleAsset(9), types.NonfungibleValue(9, 1).Asset())

	// Projection drops amounts: values of the same asset compare equal.
	require.Equal(t, types.FungibleValue(7, 1).Asset(), types.FungibleValue(7, 2).Asset())
	require.NotEqual(t, types.FungibleAsset(7), types.NonfungibleAsset(7))
}

func TestAccountAddAsset(t *testing.T) {
	params := types.DefaultParams()
	account := types.NewAccount(testAddr())

	require.NoError(t, account.AddAsset(types.CurrencyValue(100), params))
	require.NoError(t, account.AddAsset(types.CurrencyValue(50), params))
	require.Len(t, account.Assets, 1)
	require.Equal(t, uint64(150), account.Assets[0].Amount)

	require.NoError(t, account.AddAsset(types.NonfungibleValue(1, 10, 11), params))
	require.NoError(t, account.AddAsset(types.NonfungibleValue(1, 11, 12), params))
	require.Len(t, account.Assets, 2)
	require.ElementsMatch(t, []uint32{10, 11, 12}, account.Assets[1].Items)
}

func TestAccountAddAssetOverflow(t *testing.T) {
	params := types.DefaultParams()
	account := types.NewAccount(testAddr())

	require.NoError(t, account.AddAsset(types.CurrencyValue(^uint64(0)), params))
	err := account.AddAsset(types.CurrencyValue(1), params)
	require.ErrorIs(t, err, types.ErrInvalidAssets)
	require.Equal(t, ^uint64(0), account.Assets[0].Amount)
}

func TestAccountAddAssetSlotLimit(t *testing.T) {
	params := types.DefaultParams()
	params.AssetsItemLimit = 2
	account := types.NewAccount(testAddr())

	require.NoError(t, account.AddAsset(types.CurrencyValue(1), params))
	require.NoError(t, account.AddAsset(types.FungibleValue(1, 1), params))
	err := account.AddAsset(types.FungibleValue(2, 1), params)
	require.ErrorIs(t, err, types.ErrInvalidAssets)

	// An existing slot still accepts credits.
	require.NoError(t, account.AddAsset(types.FungibleValue(1, 1), params))
}

func TestAccountReduceAsset(t *testing.T) {
	params := types.DefaultParams()
	account := types.NewAccount(testAddr())
	require.NoError(t, account.AddAsset(types.CurrencyValue(100), params))
	require.NoError(t, account.AddAsset(types.NonfungibleValue(1, 10, 11, 12), params))

	require.NoError(t, account.ReduceAsset(types.CurrencyValue(40)))
	require.Equal(t, uint64(60), account.Assets[0].Amount)

	require.NoError(t, account.ReduceAsset(types.NonfungibleValue(1, 11)))
	require.ElementsMatch(t, []uint32{10, 12}, account.Assets[1].Items)

	// A zero balance stays as an entry.
	require.NoError(t, account.ReduceAsset(types.CurrencyValue(60)))
	require.Len(t, account.Assets, 2)
	require.Equal(t, uint64(0), account.Assets[0].Amount)
}

func TestAccountReduceAssetFailures(t *testing.T) {
	params := types.DefaultParams()
	account := types.NewAccount(testAddr())
	require.NoError(t, account.AddAsset(types.CurrencyValue(100), params))
	require.NoError(t, account.AddAsset(types.NonfungibleValue(1, 10), params))

	require.ErrorIs(t, account.ReduceAsset(types.CurrencyValue(101)), types.ErrInvalidAssets)
	require.ErrorIs(t, account.ReduceAsset(types.FungibleValue(1, 1)), types.ErrInvalidAssets)
	require.ErrorIs(t, account.ReduceAsset(types.NonfungibleValue(1, 11)), types.ErrInvalidAssets)

	// Failures must not mutate.
	require.Equal(t, uint64(100), account.Assets[0].Amount)
	require.ElementsMatch(t, []uint32{10}, account.Assets[1].Items)
}

func TestAccountHasEnough(t *testing.T) {
	params := types.DefaultParams()
	account := types.NewAccount(testAddr())
	require.NoError(t, account.AddAsset(types.CurrencyValue(100), params))
	require.NoError(t, account.AddAsset(types.NonfungibleValue(1, 10, 11), params))

	require.True(t, account.HasEnough(types.CurrencyValue(100)))
	require.False(t, account.HasEnough(types.CurrencyValue(101)))
	require.True(t, account.HasEnough(types.NonfungibleValue(1, 10, 11)))
	require.False(t, account.HasEnough(types.NonfungibleValue(1, 12)))
	require.False(t, account.HasEnough(types.FungibleValue(2, 1)))
}
