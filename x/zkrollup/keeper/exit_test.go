package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zkapp-labs/zkrollup/testutil/keeper"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

func TestExit(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, submitter := registerFakeApp(t, f, "app")
	user := testAddr()
	fundUser(t, f, user, 1000)

	// Settle one deposit, leave a second pending, then deactivate.
	require.NoError(t, f.Keeper.Deposit(f.Ctx, user, program, types.CurrencyValue(300)))
	require.NoError(t, f.Keeper.SubmitBatch(
		f.Ctx, submitter, program, stateRoot("empty"), stateRoot("r1"), 1,
		[]types.Operation{types.NewDeposit(user.String(), types.CurrencyValue(300))}, nil, nil,
	))
	require.NoError(t, f.Keeper.Deposit(f.Ctx, user, program, types.CurrencyValue(200)))
	require.NoError(t, f.Keeper.SetInactive(f.Ctx, owner, program))

	require.NoError(t, f.Keeper.Exit(f.Ctx, user, program))

	// Settled balance and the pending deposit both came back.
	balance := f.Bank.GetBalance(f.Ctx, user, types.DefaultNativeDenom)
	require.Equal(t, sdkmath.NewInt(1000), balance.Amount)
	escrow := f.Bank.GetBalance(f.Ctx, f.Keeper.EscrowAddress(), types.DefaultNativeDenom)
	require.True(t, escrow.Amount.IsZero())

	account, found := f.Keeper.GetAccount(f.Ctx, program, user)
	require.True(t, found)
	require.Empty(t, account.Assets)

	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.Empty(t, zkapp.L1Operations)
	require.True(t, f.Keeper.HasExited(f.Ctx, program, user))
}

func TestExitLeavesOtherUsersQueueEntries(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")
	alice := testAddr()
	bob := testAddr()
	fundUser(t, f, alice, 100)
	fundUser(t, f, bob, 100)

	require.NoError(t, f.Keeper.Deposit(f.Ctx, alice, program, types.CurrencyValue(50)))
	require.NoError(t, f.Keeper.Deposit(f.Ctx, bob, program, types.CurrencyValue(60)))
	require.NoError(t, f.Keeper.SetInactive(f.Ctx, owner, program))

	require.NoError(t, f.Keeper.Exit(f.Ctx, alice, program))

	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.Len(t, zkapp.L1Operations, 1)
	require.Equal(t, bob.String(), zkapp.L1Operations[0].User)

	balance := f.Bank.GetBalance(f.Ctx, alice, types.DefaultNativeDenom)
	require.Equal(t, sdkmath.NewInt(100), balance.Amount)
}

func TestExitErrors(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)
	program, owner, _ := registerFakeApp(t, f, "app")
	user := testAddr()

	err := f.Keeper.Exit(f.Ctx, user, programHash("missing"))
	require.ErrorIs(t, err, types.ErrNoProgram)

	// Active apps cannot be exited.
	err = f.Keeper.Exit(f.Ctx, user, program)
	require.ErrorIs(t, err, types.ErrNotInactive)

	require.NoError(t, f.Keeper.SetInactive(f.Ctx, owner, program))
	require.NoError(t, f.Keeper.Exit(f.Ctx, user, program))

	err = f.Keeper.Exit(f.Ctx, user, program)
	require.ErrorIs(t, err, types.ErrHasExit)
}
