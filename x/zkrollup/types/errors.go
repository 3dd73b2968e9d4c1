package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Zkrollup module sentinel errors
var (
	// Lifecycle errors
	ErrDuplicateApp = sdkerrors.Register(ModuleName, 2, "zkapp already registered for program hash")
	ErrNoProgram    = sdkerrors.Register(ModuleName, 3, "no zkapp registered for program hash")
	ErrSameZkapp    = sdkerrors.Register(ModuleName, 4, "cannot move asset to the same zkapp")
	ErrInactive     = sdkerrors.Register(ModuleName, 5, "zkapp is inactive")
	ErrNotInactive  = sdkerrors.Register(ModuleName, 6, "zkapp is not inactive")
	ErrHasExit      = sdkerrors.Register(ModuleName, 7, "user has already exited the zkapp")

	// Authorization errors
	ErrNotOwner     = sdkerrors.Register(ModuleName, 10, "caller is not the zkapp owner")
	ErrNotSubmitter = sdkerrors.Register(ModuleName, 11, "caller is not the zkapp submitter")

	// Capacity errors
	ErrDuplicateSupportAsset  = sdkerrors.Register(ModuleName, 20, "asset support already added")
	ErrAssetsLimitExceed      = sdkerrors.Register(ModuleName, 21, "supported assets limit exceeded")
	ErrL1OperationLimitExceed = sdkerrors.Register(ModuleName, 22, "pending operation queue limit exceeded")

	// Consistency errors
	ErrInvalidStateRoot   = sdkerrors.Register(ModuleName, 30, "old state root does not match current state root")
	ErrInvalidBatchParams = sdkerrors.Register(ModuleName, 31, "invalid batch operations or position")
	ErrNoAccount          = sdkerrors.Register(ModuleName, 32, "batch references an account unknown to the zkapp")

	// Proof errors
	ErrInvalidProof = sdkerrors.Register(ModuleName, 40, "proof could not be verified")

	// Asset errors
	ErrNotSupportAsset = sdkerrors.Register(ModuleName, 50, "asset is not supported by the zkapp")
	ErrNotAssetOwner   = sdkerrors.Register(ModuleName, 51, "asset item is not owned by the expected account")
	ErrNoEnoughAssets  = sdkerrors.Register(ModuleName, 52, "not enough assets for withdraw or move")
	ErrInvalidAssets   = sdkerrors.Register(ModuleName, 53, "invalid asset delta in batch operation")
)
