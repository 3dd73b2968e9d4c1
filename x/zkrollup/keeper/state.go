package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// GetZkapp returns the zkapp registered under programHash.
func (k Keeper) GetZkapp(ctx context.Context, programHash types.ProgramHash) (types.Zkapp, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.ZkappKey(programHash))
	if err != nil || bz == nil {
		return types.Zkapp{}, false
	}
	var zkapp types.Zkapp
	if err := types.UnmarshalCanonical(bz, &zkapp); err != nil {
		panic(err)
	}
	return zkapp, true
}

// SetZkapp stores the zkapp record under programHash.
func (k Keeper) SetZkapp(ctx context.Context, programHash types.ProgramHash, zkapp types.Zkapp) error {
	bz, err := types.MarshalCanonical(zkapp)
	if err != nil {
		return err
	}
	return k.storeService.OpenKVStore(ctx).Set(types.ZkappKey(programHash), bz)
}

// HasZkapp reports whether a zkapp is registered under programHash.
func (k Keeper) HasZkapp(ctx context.Context, programHash types.ProgramHash) bool {
	has, err := k.storeService.OpenKVStore(ctx).Has(types.ZkappKey(programHash))
	return err == nil && has
}

// GetAccount returns user's ledger record in the zkapp, if any.
func (k Keeper) GetAccount(ctx context.Context, programHash types.ProgramHash, user sdk.AccAddress) (types.Account, bool) {
	store := k.storeService.OpenKVStore(ctx)
	bz, err := store.Get(types.AccountKey(programHash, user))
	if err != nil || bz == nil {
		return types.Account{}, false
	}
	var account types.Account
	if err := types.UnmarshalCanonical(bz, &account); err != nil {
		panic(err)
	}
	return account, true
}

// SetAccount stores user's ledger record in the zkapp.
func (k Keeper) SetAccount(ctx context.Context, programHash types.ProgramHash, user sdk.AccAddress, account types.Account) error {
	bz, err := types.MarshalCanonical(account)
	if err != nil {
		return err
	}
	return k.storeService.OpenKVStore(ctx).Set(types.AccountKey(programHash, user), bz)
}

// HasExited reports whether user has exited the zkapp.
func (k Keeper) HasExited(ctx context.Context, programHash types.ProgramHash, user sdk.AccAddress) bool {
	has, err := k.storeService.OpenKVStore(ctx).Has(types.ExitKey(programHash, user))
	return err == nil && has
}

// SetExited flags user as having exited the zkapp.
func (k Keeper) SetExited(ctx context.Context, programHash types.ProgramHash, user sdk.AccAddress) error {
	return k.storeService.OpenKVStore(ctx).Set(types.ExitKey(programHash, user), []byte{1})
}

// GetVerifyingKey returns the verifying-key descriptor stored for programHash.
func (k Keeper) GetVerifyingKey(ctx context.Context, programHash types.ProgramHash) ([]byte, error) {
	bz, err := k.storeService.OpenKVStore(ctx).Get(types.VerifyingKeyKey(programHash))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, sdkerrors.Wrapf(types.ErrNoProgram, "no verifying key for program %s", programHash)
	}
	return bz, nil
}

// SetVerifyingKey stores the verifying-key descriptor for programHash.
func (k Keeper) SetVerifyingKey(ctx context.Context, programHash types.ProgramHash, vk []byte) error {
	return k.storeService.OpenKVStore(ctx).Set(types.VerifyingKeyKey(programHash), vk)
}

// IterateZkapps calls fn for every registered zkapp until fn returns true.
func (k Keeper) IterateZkapps(ctx context.Context, fn func(programHash types.ProgramHash, zkapp types.Zkapp) bool) error {
	store := k.storeService.OpenKVStore(ctx)
	it, err := store.Iterator(types.ZkappKeyPrefix, storetypes.PrefixEndBytes(types.ZkappKeyPrefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		programHash, err := types.ProgramHashFromBytes(it.Key()[len(types.ZkappKeyPrefix):])
		if err != nil {
			return err
		}
		var zkapp types.Zkapp
		if err := types.UnmarshalCanonical(it.Value(), &zkapp); err != nil {
			return err
		}
		if fn(programHash, zkapp) {
			break
		}
	}
	return nil
}

// IterateAccounts calls fn for every ledger record until fn returns true.
func (k Keeper) IterateAccounts(ctx context.Context, fn func(programHash types.ProgramHash, account types.Account) bool) error {
	store := k.storeService.OpenKVStore(ctx)
	it, err := store.Iterator(types.AccountKeyPrefix, storetypes.PrefixEndBytes(types.AccountKeyPrefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		programHash, err := types.ProgramHashFromBytes(it.Key()[len(types.AccountKeyPrefix) : len(types.AccountKeyPrefix)+types.HashSize])
		if err != nil {
			return err
		}
		var account types.Account
		if err := types.UnmarshalCanonical(it.Value(), &account); err != nil {
			return err
		}
		if fn(programHash, account) {
			break
		}
	}
	return nil
}

// IterateExits calls fn for every exit flag until fn returns true.
func (k Keeper) IterateExits(ctx context.Context, fn func(programHash types.ProgramHash, user sdk.AccAddress) bool) error {
	store := k.storeService.OpenKVStore(ctx)
	it, err := store.Iterator(types.ExitKeyPrefix, storetypes.PrefixEndBytes(types.ExitKeyPrefix))
	if err != nil {
		return err
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		key := it.Key()[len(types.ExitKeyPrefix):]
		programHash, err := types.ProgramHashFromBytes(key[:types.HashSize])
		if err != nil {
			return err
		}
		// Address bytes follow the program hash, length-prefixed.
		addrLen := int(key[types.HashSize])
		user := sdk.AccAddress(key[types.HashSize+1 : types.HashSize+1+addrLen])
		if fn(programHash, user) {
			break
		}
	}
	return nil
}
