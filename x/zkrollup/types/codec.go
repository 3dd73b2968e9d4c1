package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// The module stores its records and binds proofs to batch outputs using a
// canonical byte encoding. CBOR in the core deterministic profile guarantees a
// unique encoding for a given value, which is what lets the settlement state
// machine compare queued operations byte-for-byte against a batch's claimed
// prefix and reconstruct a program's expected public outputs.
var (
	canonicalEnc cbor.EncMode
	canonicalDec cbor.DecMode
)

func init() {
	var err error
	canonicalEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("zkrollup: canonical encoder init: %v", err))
	}
	canonicalDec, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("zkrollup: canonical decoder init: %v", err))
	}
}

// MarshalCanonical serializes v into canonical deterministic bytes.
func MarshalCanonical(v interface{}) ([]byte, error) {
	return canonicalEnc.Marshal(v)
}

// UnmarshalCanonical deserializes canonical bytes into v.
func UnmarshalCanonical(bz []byte, v interface{}) error {
	return canonicalDec.Unmarshal(bz, v)
}
