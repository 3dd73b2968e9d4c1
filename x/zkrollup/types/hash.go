package types

import (
	"encoding/hex"
	"fmt"
)

// HashSize is the byte length of program hashes and state roots.
const HashSize = 32

// ProgramHash is the 32-byte content identifier of a zkapp's off-chain program.
// It binds a proof to the execution of that specific program.
type ProgramHash [HashSize]byte

// StateRoot is the 32-byte commitment to a zkapp's off-chain state tree.
type StateRoot [HashSize]byte

// ProgramHashFromBytes converts raw bytes into a ProgramHash.
func ProgramHashFromBytes(bz []byte) (ProgramHash, error) {
	var h ProgramHash
	if len(bz) != HashSize {
		return h, fmt.Errorf("invalid program hash length: expected %d, got %d", HashSize, len(bz))
	}
	copy(h[:], bz)
	return h, nil
}

// StateRootFromBytes converts raw bytes into a StateRoot.
func StateRootFromBytes(bz []byte) (StateRoot, error) {
	var r StateRoot
	if len(bz) != HashSize {
		return r, fmt.Errorf("invalid state root length: expected %d, got %d", HashSize, len(bz))
	}
	copy(r[:], bz)
	return r, nil
}

func (h ProgramHash) Bytes() []byte { return h[:] }

func (h ProgramHash) String() string { return hex.EncodeToString(h[:]) }

// MarshalText implements encoding.TextMarshaler, used for JSON genesis.
func (h ProgramHash) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(h[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *ProgramHash) UnmarshalText(text []byte) error {
	bz, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("invalid program hash hex: %w", err)
	}
	parsed, err := ProgramHashFromBytes(bz)
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

func (r StateRoot) Bytes() []byte { return r[:] }

func (r StateRoot) String() string { return hex.EncodeToString(r[:]) }

// MarshalText implements encoding.TextMarshaler, used for JSON genesis.
func (r StateRoot) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(r[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *StateRoot) UnmarshalText(text []byte) error {
	bz, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("invalid state root hex: %w", err)
	}
	parsed, err := StateRootFromBytes(bz)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
