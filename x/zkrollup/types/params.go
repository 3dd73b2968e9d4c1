package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Default module parameters. Capacities mirror the limits the settlement core
// was sized for; they are configuration, not compile-time constants.
const (
	DefaultAssetsLimit          uint32 = 10
	DefaultAssetsItemLimit      uint32 = 11
	DefaultL1OperationLimit     uint32 = 300
	DefaultNonfungibleItemLimit uint32 = 100
	DefaultNativeDenom                 = "stake"
)

// Params holds the zkrollup module parameters.
type Params struct {
	_ struct{} `cbor:",toarray"`

	// AssetsLimit caps one zkapp's supported-asset set.
	AssetsLimit uint32 `json:"assets_limit"`
	// AssetsItemLimit caps one account's asset slots.
	AssetsItemLimit uint32 `json:"assets_item_limit"`
	// L1OperationLimit caps one zkapp's pending operation queue.
	L1OperationLimit uint32 `json:"l1_operation_limit"`
	// NonfungibleItemLimit caps the item set of one non-fungible value.
	NonfungibleItemLimit uint32 `json:"nonfungible_item_limit"`
	// NativeDenom is the bank denom backing currency values.
	NativeDenom string `json:"native_denom"`
}

// DefaultParams returns the default module parameters.
func DefaultParams() Params {
	return Params{
		AssetsLimit:          DefaultAssetsLimit,
		AssetsItemLimit:      DefaultAssetsItemLimit,
		L1OperationLimit:     DefaultL1OperationLimit,
		NonfungibleItemLimit: DefaultNonfungibleItemLimit,
		NativeDenom:          DefaultNativeDenom,
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.AssetsLimit == 0 {
		return fmt.Errorf("assets limit must be positive")
	}
	if p.AssetsItemLimit == 0 {
		return fmt.Errorf("assets item limit must be positive")
	}
	if p.L1OperationLimit == 0 {
		return fmt.Errorf("l1 operation limit must be positive")
	}
	if p.NonfungibleItemLimit == 0 {
		return fmt.Errorf("nonfungible item limit must be positive")
	}
	if err := sdk.ValidateDenom(p.NativeDenom); err != nil {
		return fmt.Errorf("invalid native denom: %w", err)
	}
	return nil
}
