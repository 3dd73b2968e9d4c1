package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/zkapp-labs/zkrollup/testutil/keeper"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/keeper"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, submitter := registerFakeApp(t, f, "app")
	require.NoError(t, f.Keeper.AddAssetSupport(f.Ctx, owner, program, types.FungibleAsset(1)))

	user := testAddr()
	fundUser(t, f, user, 1000)
	require.NoError(t, f.Keeper.Deposit(f.Ctx, user, program, types.CurrencyValue(300)))
	require.NoError(t, f.Keeper.SubmitBatch(
		f.Ctx, submitter, program, stateRoot("empty"), stateRoot("r1"), 1,
		[]types.Operation{types.NewDeposit(user.String(), types.CurrencyValue(300))}, nil, nil,
	))

	zkvmProgram := programHash("zkvm")
	require.NoError(t, f.Keeper.RegisterZkapp(
		f.Ctx, owner, zkvmProgram, types.VerifierKindZkVM, submitter, stateRoot("empty"), []byte{9, 9},
	))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Zkapps, 2)
	require.Len(t, exported.Accounts, 1)

	// Import into a fresh keeper and compare the surviving state.
	g := keepertest.ZkrollupKeeper(t)
	require.NoError(t, g.Keeper.InitGenesis(g.Ctx, *exported))

	zkapp, found := g.Keeper.GetZkapp(g.Ctx, program)
	require.True(t, found)
	require.Equal(t, stateRoot("r1"), zkapp.StateRoot)
	require.True(t, zkapp.SupportsAsset(types.FungibleAsset(1)))

	account, found := g.Keeper.GetAccount(g.Ctx, program, user)
	require.True(t, found)
	require.Equal(t, uint64(300), account.Assets[0].Amount)

	vk, err := g.Keeper.GetVerifyingKey(g.Ctx, zkvmProgram)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9}, vk)

	reExported, err := g.Keeper.ExportGenesis(g.Ctx)
	require.NoError(t, err)
	require.Equal(t, exported, reExported)
}

func TestGenesisExits(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")
	user := testAddr()
	require.NoError(t, f.Keeper.SetInactive(f.Ctx, owner, program))
	require.NoError(t, f.Keeper.Exit(f.Ctx, user, program))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.Len(t, exported.Exits, 1)
	require.Equal(t, user.String(), exported.Exits[0].User)

	g := keepertest.ZkrollupKeeper(t)
	require.NoError(t, g.Keeper.InitGenesis(g.Ctx, *exported))
	require.True(t, g.Keeper.HasExited(g.Ctx, program, user))
}

func TestInvariants(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, _, submitter := registerFakeApp(t, f, "app")
	user := testAddr()
	fundUser(t, f, user, 1000)

	require.NoError(t, f.Keeper.Deposit(f.Ctx, user, program, types.CurrencyValue(400)))

	msg, broken := keeper.AllInvariants(*f.Keeper)(f.Ctx)
	require.False(t, broken, msg)

	require.NoError(t, f.Keeper.SubmitBatch(
		f.Ctx, submitter, program, stateRoot("empty"), stateRoot("r1"), 1,
		[]types.Operation{types.NewDeposit(user.String(), types.CurrencyValue(400))}, nil, nil,
	))
	msg, broken = keeper.AllInvariants(*f.Keeper)(f.Ctx)
	require.False(t, broken, msg)

	// Plant a claim the escrow cannot cover.
	ghost := testAddr()
	account := types.NewAccount(ghost.String())
	require.NoError(t, account.AddAsset(types.CurrencyValue(1_000_000), types.DefaultParams()))
	require.NoError(t, f.Keeper.SetAccount(f.Ctx, program, ghost, account))

	msg, broken = keeper.AllInvariants(*f.Keeper)(f.Ctx)
	require.True(t, broken, msg)
}
