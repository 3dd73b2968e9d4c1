package keeper_test

import (
	"bytes"
	"crypto/sha256"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"

	keepertest "github.com/zkapp-labs/zkrollup/testutil/keeper"
	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

type executionCircuit struct {
	RootHi frontend.Variable `gnark:",public"`
	RootLo frontend.Variable `gnark:",public"`
	OutHi  frontend.Variable `gnark:",public"`
	OutLo  frontend.Variable `gnark:",public"`
	Sum    frontend.Variable
}

func (c *executionCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.Sum, api.Add(api.Add(c.RootHi, c.RootLo), api.Add(c.OutHi, c.OutLo)))
	return nil
}

// proveExecution builds a Groth16 proof committing to oldRoot and the digest
// of publicOutput, plus the serialized verifying key for registration.
func proveExecution(t *testing.T, oldRoot types.StateRoot, publicOutput []byte) (proof, vk []byte) {
	t.Helper()

	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &executionCircuit{})
	require.NoError(t, err)
	pk, verifyingKey, err := groth16.Setup(ccs)
	require.NoError(t, err)

	digest := sha256.Sum256(publicOutput)
	rootHi := new(big.Int).SetBytes(oldRoot[:16])
	rootLo := new(big.Int).SetBytes(oldRoot[16:])
	outHi := new(big.Int).SetBytes(digest[:16])
	outLo := new(big.Int).SetBytes(digest[16:])

	assignment := executionCircuit{
		RootHi: rootHi,
		RootLo: rootLo,
		OutHi:  outHi,
		OutLo:  outLo,
		Sum:    new(big.Int).Add(new(big.Int).Add(rootHi, rootLo), new(big.Int).Add(outHi, outLo)),
	}
	fullWitness, err := frontend.NewWitness(&assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)
	p, err := groth16.Prove(ccs, pk, fullWitness)
	require.NoError(t, err)

	var proofBuf, vkBuf bytes.Buffer
	_, err = p.WriteTo(&proofBuf)
	require.NoError(t, err)
	_, err = verifyingKey.WriteTo(&vkBuf)
	require.NoError(t, err)
	return proofBuf.Bytes(), vkBuf.Bytes()
}

func TestSubmitBatchZkVM(t *testing.T) {
	f := keepertest.ZkrollupKeeper(t)

	program := programHash("zkvm-app")
	owner := testAddr()
	submitter := testAddr()
	user := testAddr()
	fundUser(t, f, user, 1000)

	oldRoot := stateRoot("empty")
	newRoot := stateRoot("after")
	ops := []types.Operation{types.NewDeposit(user.String(), types.CurrencyValue(250))}
	outputs, err := types.ProofOutput{
		Operations:      ops,
		NewStateRoot:    newRoot,
		L1OperationsPos: 1,
	}.Canonical()
	require.NoError(t, err)

	proof, vk := proveExecution(t, oldRoot, outputs)

	require.NoError(t, f.Keeper.RegisterZkapp(
		f.Ctx, owner, program, types.VerifierKindZkVM, submitter, oldRoot, vk,
	))
	require.NoError(t, f.Keeper.Deposit(f.Ctx, user, program, types.CurrencyValue(250)))

	// A proof for different outputs does not settle.
	err = f.Keeper.SubmitBatch(f.Ctx, submitter, program, oldRoot, stateRoot("other"), 1, ops, proof, nil)
	require.ErrorIs(t, err, types.ErrInvalidProof)

	require.NoError(t, f.Keeper.SubmitBatch(f.Ctx, submitter, program, oldRoot, newRoot, 1, ops, proof, nil))

	zkapp, _ := f.Keeper.GetZkapp(f.Ctx, program)
	require.Equal(t, newRoot, zkapp.StateRoot)
	account, found := f.Keeper.GetAccount(f.Ctx, program, user)
	require.True(t, found)
	require.Equal(t, uint64(250), account.Assets[0].Amount)
}
