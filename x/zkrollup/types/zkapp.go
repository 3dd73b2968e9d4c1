package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// VerifierKind selects the proof backend a zkapp was registered with. It is
// fixed at registration and never changes.
type VerifierKind uint8

const (
	// VerifierKindFake accepts every proof. For test environments only.
	VerifierKindFake VerifierKind = iota
	// VerifierKindZkVM verifies a zk-VM execution proof (Groth16 over BN254)
	// against a verifying-key descriptor stored under the program hash.
	VerifierKindZkVM
)

func (k VerifierKind) String() string {
	switch k {
	case VerifierKindFake:
		return "fake"
	case VerifierKindZkVM:
		return "zkvm"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Validate rejects unknown verifier kinds.
func (k VerifierKind) Validate() error {
	switch k {
	case VerifierKindFake, VerifierKindZkVM:
		return nil
	default:
		return fmt.Errorf("invalid verifier kind %d", k)
	}
}

// Zkapp is one registered application's on-chain record, keyed by program
// hash. Owner and Submitter are bech32 account strings.
type Zkapp struct {
	_ struct{} `cbor:",toarray"`

	VerifierKind    VerifierKind `json:"verifier_kind"`
	Owner           string       `json:"owner"`
	Submitter       string       `json:"submitter"`
	IsInactive      bool         `json:"is_inactive"`
	StateRoot       StateRoot    `json:"state_root"`
	SupportedAssets []Asset      `json:"supported_assets"`
	L1Operations    []Operation  `json:"l1_operations"`
}

// SupportsAsset reports whether the zkapp supports the given asset.
func (z Zkapp) SupportsAsset(asset Asset) bool {
	for _, a := range z.SupportedAssets {
		if a == asset {
			return true
		}
	}
	return false
}

// Validate checks the record against the module limits.
func (z Zkapp) Validate(p Params) error {
	if err := z.VerifierKind.Validate(); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(z.Owner); err != nil {
		return fmt.Errorf("invalid owner address %q: %w", z.Owner, err)
	}
	if _, err := sdk.AccAddressFromBech32(z.Submitter); err != nil {
		return fmt.Errorf("invalid submitter address %q: %w", z.Submitter, err)
	}
	if uint32(len(z.SupportedAssets)) > p.AssetsLimit {
		return fmt.Errorf("supported assets %d exceed limit %d", len(z.SupportedAssets), p.AssetsLimit)
	}
	seen := make(map[Asset]struct{}, len(z.SupportedAssets))
	for _, a := range z.SupportedAssets {
		if err := a.Validate(); err != nil {
			return err
		}
		if _, dup := seen[a]; dup {
			return fmt.Errorf("duplicate supported asset %s", a)
		}
		seen[a] = struct{}{}
	}
	if uint32(len(z.L1Operations)) > p.L1OperationLimit {
		return fmt.Errorf("pending operations %d exceed limit %d", len(z.L1Operations), p.L1OperationLimit)
	}
	for i, op := range z.L1Operations {
		if err := op.Validate(p.NonfungibleItemLimit); err != nil {
			return fmt.Errorf("pending operation %d: %w", i, err)
		}
	}
	return nil
}
