package keeper

import (
	"context"
	"strconv"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// SubmitBatch settles one execution of the zkapp's program. The submitter
// hands in the state roots bracketing the execution, the operations it
// produced, how many leading entries of the pending queue it consumed, and a
// proof. After the proof checks out the operations are replayed against the
// ledger; any replay failure rejects the whole batch and leaves every store
// untouched.
//
// zkOutputs optionally carries the raw public outputs the proof commits to.
// When nil, the canonical encoding of the declared outputs is used.
func (k Keeper) SubmitBatch(
	ctx context.Context,
	submitter sdk.AccAddress,
	programHash types.ProgramHash,
	oldStateRoot, newStateRoot types.StateRoot,
	l1OperationsPos uint32,
	operations []types.Operation,
	zkProof []byte,
	zkOutputs []byte,
) error {
	zkapp, found := k.GetZkapp(ctx, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	if zkapp.IsInactive {
		return sdkerrors.Wrapf(types.ErrInactive, "program %s", programHash)
	}
	if zkapp.Submitter != submitter.String() {
		return sdkerrors.Wrapf(types.ErrNotSubmitter, "caller %s, submitter %s", submitter, zkapp.Submitter)
	}
	if zkapp.StateRoot != oldStateRoot {
		return sdkerrors.Wrapf(types.ErrInvalidStateRoot, "declared %s, current %s", oldStateRoot, zkapp.StateRoot)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}

	// The batch must replay the pending queue it consumed verbatim: the
	// first l1OperationsPos operations equal the queue's leading entries.
	if int(l1OperationsPos) > len(zkapp.L1Operations) || int(l1OperationsPos) > len(operations) {
		return sdkerrors.Wrapf(types.ErrInvalidBatchParams,
			"position %d beyond queue length %d or batch length %d",
			l1OperationsPos, len(zkapp.L1Operations), len(operations))
	}
	for i := 0; i < int(l1OperationsPos); i++ {
		if !zkapp.L1Operations[i].Equal(operations[i]) {
			return sdkerrors.Wrapf(types.ErrInvalidBatchParams, "operation %d does not match pending queue", i)
		}
	}
	for i, op := range operations {
		if err := op.Validate(params.NonfungibleItemLimit); err != nil {
			return sdkerrors.Wrapf(types.ErrInvalidBatchParams, "operation %d: %s", i, err)
		}
	}

	if zkOutputs == nil {
		zkOutputs, err = types.ProofOutput{
			Operations:      operations,
			NewStateRoot:    newStateRoot,
			L1OperationsPos: l1OperationsPos,
		}.Canonical()
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
	}

	backend, err := k.verifiers.For(zkapp.VerifierKind)
	if err != nil {
		return sdkerrors.Wrap(types.ErrInvalidProof, err.Error())
	}
	if err := backend.Verify(ctx, programHash.Bytes(), oldStateRoot.Bytes(), zkProof, zkOutputs); err != nil {
		return sdkerrors.Wrap(types.ErrInvalidProof, err.Error())
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	branch, commit := sdkCtx.CacheContext()

	// Persist the trimmed queue before replay so that a Move towards this
	// very app reads the post-trim record instead of a stale copy.
	zkapp.L1Operations = append([]types.Operation(nil), zkapp.L1Operations[l1OperationsPos:]...)
	if err := k.SetZkapp(branch, programHash, zkapp); err != nil {
		return err
	}

	var events sdk.Events
	for i, op := range operations {
		if err := k.applyOperation(branch, programHash, i, int(l1OperationsPos), op, params, &events); err != nil {
			return err
		}
	}

	// Re-read: replay may have grown this app's own queue.
	zkapp, found = k.GetZkapp(branch, programHash)
	if !found {
		return sdkerrors.Wrapf(types.ErrNoProgram, "program %s", programHash)
	}
	zkapp.StateRoot = newStateRoot
	if err := k.SetZkapp(branch, programHash, zkapp); err != nil {
		return err
	}
	commit()

	events = append(events, sdk.NewEvent(
		types.EventTypeBatchSubmitted,
		sdk.NewAttribute(types.AttributeKeyProgramHash, programHash.String()),
		sdk.NewAttribute(types.AttributeKeyOldStateRoot, oldStateRoot.String()),
		sdk.NewAttribute(types.AttributeKeyNewStateRoot, newStateRoot.String()),
		sdk.NewAttribute(types.AttributeKeyOperationCount, strconv.Itoa(len(operations))),
		sdk.NewAttribute(types.AttributeKeyL1OperationsPos, strconv.Itoa(int(l1OperationsPos))),
	))
	sdkCtx.EventManager().EmitEvents(events)

	k.Logger(ctx).Info("batch settled",
		"program_hash", programHash.String(),
		"operations", len(operations),
		"l1_operations_pos", l1OperationsPos,
		"new_state_root", newStateRoot.String(),
	)
	return nil
}

// applyOperation replays one batch operation against the ledger on the
// branched store. index and pos locate the operation relative to the consumed
// pending-queue prefix.
func (k Keeper) applyOperation(
	ctx context.Context,
	programHash types.ProgramHash,
	index, pos int,
	op types.Operation,
	params types.Params,
	events *sdk.Events,
) error {
	switch op.Kind {
	case types.OpDeposit:
		// A Deposit only enters the ledger by replaying a queue entry; a
		// batch cannot mint one past the consumed prefix.
		if index >= pos {
			return sdkerrors.Wrapf(types.ErrInvalidBatchParams, "deposit at %d past consumed prefix %d", index, pos)
		}
		user, err := sdk.AccAddressFromBech32(op.User)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		account, found := k.GetAccount(ctx, programHash, user)
		if !found {
			account = types.NewAccount(op.User)
		}
		if err := account.AddAsset(op.Value, params); err != nil {
			return err
		}
		return k.SetAccount(ctx, programHash, user, account)

	case types.OpWithdraw:
		user, err := sdk.AccAddressFromBech32(op.User)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		account, found := k.GetAccount(ctx, programHash, user)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoAccount, "user %s in program %s", op.User, programHash)
		}
		if err := k.userWithdraw(ctx, user, op.Value, params); err != nil {
			return err
		}
		if err := account.ReduceAsset(op.Value); err != nil {
			return err
		}
		return k.SetAccount(ctx, programHash, user, account)

	case types.OpMove:
		user, err := sdk.AccAddressFromBech32(op.User)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		account, found := k.GetAccount(ctx, programHash, user)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoAccount, "user %s in program %s", op.User, programHash)
		}
		if err := account.ReduceAsset(op.Value); err != nil {
			return err
		}
		if err := k.SetAccount(ctx, programHash, user, account); err != nil {
			return err
		}

		// The value stays in escrow; it re-enters the destination app as a
		// pending Deposit.
		destZkapp, found := k.GetZkapp(ctx, op.DestProgram)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoProgram, "move destination %s", op.DestProgram)
		}
		if uint32(len(destZkapp.L1Operations))+1 > params.L1OperationLimit {
			return sdkerrors.Wrapf(types.ErrL1OperationLimitExceed, "destination %s queue at limit %d", op.DestProgram, params.L1OperationLimit)
		}
		destZkapp.L1Operations = append(destZkapp.L1Operations, types.NewDeposit(op.User, op.Value))
		if err := k.SetZkapp(ctx, op.DestProgram, destZkapp); err != nil {
			return err
		}
		*events = append(*events, sdk.NewEvent(
			types.EventTypeDeposited,
			sdk.NewAttribute(types.AttributeKeyProgramHash, op.DestProgram.String()),
			sdk.NewAttribute(types.AttributeKeyUser, op.User),
			sdk.NewAttribute(types.AttributeKeyAssetValue, op.Value.String()),
		))
		return nil

	case types.OpTransfer:
		from, err := sdk.AccAddressFromBech32(op.User)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		to, err := sdk.AccAddressFromBech32(op.Counterparty)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		fromAccount, found := k.GetAccount(ctx, programHash, from)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoAccount, "user %s in program %s", op.User, programHash)
		}
		if err := fromAccount.ReduceAsset(op.Value); err != nil {
			return err
		}
		if err := k.SetAccount(ctx, programHash, from, fromAccount); err != nil {
			return err
		}
		toAccount, found := k.GetAccount(ctx, programHash, to)
		if !found {
			toAccount = types.NewAccount(op.Counterparty)
		}
		if err := toAccount.AddAsset(op.Value, params); err != nil {
			return err
		}
		return k.SetAccount(ctx, programHash, to, toAccount)

	case types.OpSwap:
		userA, err := sdk.AccAddressFromBech32(op.User)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		userB, err := sdk.AccAddressFromBech32(op.Counterparty)
		if err != nil {
			return sdkerrors.Wrap(types.ErrInvalidBatchParams, err.Error())
		}
		accountA, found := k.GetAccount(ctx, programHash, userA)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoAccount, "user %s in program %s", op.User, programHash)
		}
		if err := accountA.ReduceAsset(op.Value); err != nil {
			return err
		}
		if err := accountA.AddAsset(op.CounterValue, params); err != nil {
			return err
		}
		if err := k.SetAccount(ctx, programHash, userA, accountA); err != nil {
			return err
		}
		accountB, found := k.GetAccount(ctx, programHash, userB)
		if !found {
			return sdkerrors.Wrapf(types.ErrNoAccount, "user %s in program %s", op.Counterparty, programHash)
		}
		if err := accountB.ReduceAsset(op.CounterValue); err != nil {
			return err
		}
		if err := accountB.AddAsset(op.Value, params); err != nil {
			return err
		}
		return k.SetAccount(ctx, programHash, userB, accountB)

	default:
		return sdkerrors.Wrapf(types.ErrInvalidBatchParams, "operation %d: unknown kind %d", index, op.Kind)
	}
}
