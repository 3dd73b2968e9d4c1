package verifier

import (
	"bytes"
	"context"
	"crypto/sha256"
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// KeyStore resolves the verifying-key descriptor registered for a program.
type KeyStore interface {
	VerifyingKey(ctx context.Context, programHash []byte) ([]byte, error)
}

// ZkVM verifies Groth16/BN254 execution proofs. The proving side commits to
// four public field elements: the two halves of the 32-byte old state root
// and the two halves of the SHA-256 digest of the canonical public outputs.
// Splitting into 16-byte halves keeps every element below the BN254 scalar
// field modulus.
type ZkVM struct {
	keys KeyStore
}

// NewZkVM returns a zk-VM verifier reading verifying keys from keys.
func NewZkVM(keys KeyStore) *ZkVM {
	return &ZkVM{keys: keys}
}

// PublicWitness builds the witness the proving side committed to.
func PublicWitness(publicInput, publicOutput []byte) (witness.Witness, error) {
	if len(publicInput) != types.HashSize {
		return nil, sdkerrors.Wrapf(ErrProofParse, "public input length %d, want %d", len(publicInput), types.HashSize)
	}
	digest := sha256.Sum256(publicOutput)

	w, err := witness.New(ecc.BN254.ScalarField())
	if err != nil {
		return nil, sdkerrors.Wrap(ErrProofParse, err.Error())
	}
	values := make(chan any, 4)
	values <- new(big.Int).SetBytes(publicInput[:16])
	values <- new(big.Int).SetBytes(publicInput[16:])
	values <- new(big.Int).SetBytes(digest[:16])
	values <- new(big.Int).SetBytes(digest[16:])
	close(values)
	if err := w.Fill(4, 0, values); err != nil {
		return nil, sdkerrors.Wrap(ErrProofParse, err.Error())
	}
	return w, nil
}

func (v *ZkVM) Verify(ctx context.Context, programHash, publicInput, proof, publicOutput []byte) error {
	vkBytes, err := v.keys.VerifyingKey(ctx, programHash)
	if err != nil {
		return sdkerrors.Wrapf(ErrProofParse, "verifying key for program %x: %s", programHash, err)
	}

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(bytes.NewReader(vkBytes)); err != nil {
		return sdkerrors.Wrapf(ErrProofParse, "verifying key: %s", err)
	}

	pf := groth16.NewProof(ecc.BN254)
	if _, err := pf.ReadFrom(bytes.NewReader(proof)); err != nil {
		return sdkerrors.Wrapf(ErrProofParse, "proof: %s", err)
	}

	pub, err := PublicWitness(publicInput, publicOutput)
	if err != nil {
		return err
	}

	if err := groth16.Verify(pf, vk, pub); err != nil {
		return sdkerrors.Wrap(ErrProofVerify, err.Error())
	}
	return nil
}
