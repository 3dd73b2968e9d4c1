package keeper

import (
	"context"

	storetypes "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/verifier"
)

// Keeper of the zkrollup store. It orchestrates the zkapp registry, the
// per-app pending operation queue, the per-user asset ledger, and batch
// settlement, moving value through the module escrow account.
type Keeper struct {
	storeService storetypes.KVStoreService

	bankKeeper        types.BankKeeper
	fungibleKeeper    types.FungibleKeeper
	nonfungibleKeeper types.NonfungibleKeeper

	verifiers *verifier.Registry

	// escrowAddr is the module-derived custody account. It has no key; it is
	// bookkeeping here and real custody at the asset-primitive level.
	escrowAddr sdk.AccAddress

	authority string
}

// NewKeeper creates a new zkrollup Keeper instance.
func NewKeeper(
	storeService storetypes.KVStoreService,
	bankKeeper types.BankKeeper,
	fungibleKeeper types.FungibleKeeper,
	nonfungibleKeeper types.NonfungibleKeeper,
	authority string,
) *Keeper {
	k := &Keeper{
		storeService:      storeService,
		bankKeeper:        bankKeeper,
		fungibleKeeper:    fungibleKeeper,
		nonfungibleKeeper: nonfungibleKeeper,
		escrowAddr:        authtypes.NewModuleAddress(types.ModuleName),
		authority:         authority,
	}
	k.verifiers = verifier.NewRegistry(keeperKeyStore{k})
	return k
}

// EscrowAddress returns the module escrow account address.
func (k Keeper) EscrowAddress() sdk.AccAddress {
	return k.escrowAddr
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// keeperKeyStore adapts the keeper's verifying-key storage to the verifier
// package's KeyStore capability.
type keeperKeyStore struct {
	k *Keeper
}

func (s keeperKeyStore) VerifyingKey(ctx context.Context, programHash []byte) ([]byte, error) {
	hash, err := types.ProgramHashFromBytes(programHash)
	if err != nil {
		return nil, err
	}
	return s.k.GetVerifyingKey(ctx, hash)
}
