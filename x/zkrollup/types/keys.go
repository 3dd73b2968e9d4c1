package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "zkrollup"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey is the message route for zkrollup
	RouterKey = ModuleName
)

var (
	// ParamsKey is the KVStore key for module parameters
	ParamsKey = []byte{0x01}

	// ZkappKeyPrefix is the KVStore key prefix for zkapp records
	ZkappKeyPrefix = []byte{0x02}

	// AccountKeyPrefix is the KVStore key prefix for per-zkapp user accounts
	AccountKeyPrefix = []byte{0x03}

	// ExitKeyPrefix is the KVStore key prefix for per-zkapp user exit flags
	ExitKeyPrefix = []byte{0x04}

	// VerifyingKeyPrefix is the KVStore key prefix for ZkVM verifying-key
	// descriptors, keyed by program hash
	VerifyingKeyPrefix = []byte{0x05}
)

// ZkappKey returns the store key for a zkapp record.
func ZkappKey(programHash ProgramHash) []byte {
	return append(ZkappKeyPrefix, programHash[:]...)
}

// AccountKey returns the store key for a user's account in a zkapp.
// The address is length-prefixed so keys cannot collide across users.
func AccountKey(programHash ProgramHash, user sdk.AccAddress) []byte {
	key := append(AccountKeyPrefix, programHash[:]...)
	return append(key, address.MustLengthPrefix(user)...)
}

// ExitKey returns the store key for a user's exit flag in a zkapp.
func ExitKey(programHash ProgramHash, user sdk.AccAddress) []byte {
	key := append(ExitKeyPrefix, programHash[:]...)
	return append(key, address.MustLengthPrefix(user)...)
}

// VerifyingKeyKey returns the store key for a program's verifying-key descriptor.
func VerifyingKeyKey(programHash ProgramHash) []byte {
	return append(VerifyingKeyPrefix, programHash[:]...)
}
