package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/zkapp-labs/zkrollup/testutil/keeper"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

func TestRegisterZkapp(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)

	program := programHash("app")
	owner := testAddr()
	submitter := testAddr()
	root := stateRoot("empty")

	require.NoError(t, f.Keeper.RegisterZkapp(
		f.Ctx, owner, program, types.VerifierKindFake, submitter, root, nil,
	))

	zkapp, found := f.Keeper.GetZkapp(f.Ctx, program)
	require.True(t, found)
	require.Equal(t, owner.String(), zkapp.Owner)
	require.Equal(t, submitter.String(), zkapp.Submitter)
	require.Equal(t, root, zkapp.StateRoot)
	require.False(t, zkapp.IsInactive)
	require.Empty(t, zkapp.L1Operations)
	// Native currency support comes with registration.
	require.Equal(t, []types.Asset{types.CurrencyAsset()}, zkapp.SupportedAssets)

	// Same program hash cannot register twice.
	err := f.Keeper.RegisterZkapp(f.Ctx, testAddr(), program, types.VerifierKindFake, submitter, root, nil)
	require.ErrorIs(t, err, types.ErrDuplicateApp)
}

func TestRegisterZkappZkVMNeedsKey(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program := programHash("zkvm-app")

	err := f.Keeper.RegisterZkapp(
		f.Ctx, testAddr(), program, types.VerifierKindZkVM, testAddr(), stateRoot("empty"), nil,
	)
	require.ErrorIs(t, err, types.ErrInvalidBatchParams)

	vk := []byte{1, 2, 3}
	require.NoError(t, f.Keeper.RegisterZkapp(
		f.Ctx, testAddr(), program, types.VerifierKindZkVM, testAddr(), stateRoot("empty"), vk,
	))
	stored, err := f.Keeper.GetVerifyingKey(f.Ctx, program)
	require.NoError(t, err)
	require.Equal(t, vk, stored)
}

func TestAddAssetSupport(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")

	require.NoError(t, f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(1)))

	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.True(t, zkapp.SupportsAsset(types.FungibleAsset(1)))

	err := f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(1))
	require.ErrorIs(t, err, types.ErrDuplicateSupportAsset)

	err = f.Keeper.AddAssetSupport(f.Ctx, testAddr(), program, types.FungibleAsset(2))
	require.ErrorIs(t, err, types.ErrNotOwner)

	err = f.Keeper.AddAssetSupport(f.Ctx, owner, programHash("missing"), types.FungibleAsset(2))
	require.ErrorIs(t, err, types.ErrNoProgram)
}

func TestAddAssetSupportLimit(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")

	params, err := f.Keeper.GetParams(f.Ctx)
	require.NoError(t, err)

	// Currency occupies one slot already.
	for i := uint32(1); i < params.AssetsLimit; i++ {
		require.NoError(t, f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(i)))
	}
	err = f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(params.AssetsLimit))
	require.ErrorIs(t, err, types.ErrAssetsLimitExceed)
}

func TestChangeSubmitter(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")
	next := testAddr()

	require.NoError(t, f.Keeper.ChangeSubmitter(f.Ctx, owner, program, next))
	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.Equal(t, next.String(), zkapp.Submitter)

	err := f.Keeper.ChangeSubmitter(f.Ctx, testAddr(), program, next)
	require.ErrorIs(t, err, types.ErrNotOwner)
}

func TestSetInactive(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")

	err := f.Keeper.SetInactive(f.Ctx, testAddr(), program)
	require.ErrorIs(t, err, types.ErrNotOwner)

	require.NoError(t, f.Keeper.SetInactive(f.Ctx, owner, program))
	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.True(t, zkapp.IsInactive)

	// Deactivation is one-way and closes the owner surface too.
	err = f.Keeper.SetInactive(f.Ctx, owner, program)
	require.ErrorIs(t, err, types.ErrInactive)
	err = f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(1))
	require.ErrorIs(t, err, types.ErrInactive)
	err = f.Keeper.ChangeSubmitter(f.Ctx, owner, program, testAddr())
	require.ErrorIs(t, err, types.ErrInactive)
}
