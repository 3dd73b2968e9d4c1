// Package verifier implements the proof-check capability of the zkrollup
// module: a backend per registered verifier kind, dispatched by the batch
// settlement state machine.
package verifier

import (
	"context"

	sdkerrors "cosmossdk.io/errors"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// Codespace for verifier errors, distinct from the module codespace.
const codespace = types.ModuleName + "-verifier"

var (
	// ErrProofParse signals malformed proof, key, or public-data bytes.
	ErrProofParse = sdkerrors.Register(codespace, 2, "malformed proof or program bytes")
	// ErrProofVerify signals a well-formed proof that does not verify.
	ErrProofVerify = sdkerrors.Register(codespace, 3, "proof verification failed")
)

// Verifier checks that a proof attests one execution of the program behind
// programHash, with publicInput as the program's public inputs and
// publicOutput as its public outputs.
type Verifier interface {
	Verify(ctx context.Context, programHash, publicInput, proof, publicOutput []byte) error
}

// Registry holds one backend per verifier kind.
type Registry struct {
	backends map[types.VerifierKind]Verifier
}

// NewRegistry builds the closed backend set: the fake verifier and the
// zk-VM verifier reading verifying keys from keys.
func NewRegistry(keys KeyStore) *Registry {
	return &Registry{
		backends: map[types.VerifierKind]Verifier{
			types.VerifierKindFake: Fake{},
			types.VerifierKindZkVM: NewZkVM(keys),
		},
	}
}

// For returns the backend for kind.
func (r *Registry) For(kind types.VerifierKind) (Verifier, error) {
	backend, ok := r.backends[kind]
	if !ok {
		return nil, sdkerrors.Wrapf(ErrProofParse, "no verifier backend for kind %s", kind)
	}
	return backend, nil
}

// Fake is a no-op verifier accepting every proof. It exists for environments
// without real proofs and must never be used for value-bearing apps.
type Fake struct{}

func (Fake) Verify(_ context.Context, _, _, _, _ []byte) error {
	return nil
}
