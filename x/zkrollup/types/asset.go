package types

import (
	"fmt"
	"math"
)

// AssetKind discriminates the asset union.
type AssetKind uint8

const (
	// AssetKindCurrency is the chain's native currency.
	AssetKindCurrency AssetKind = iota
	// AssetKindFungible is a fungible token identified by asset id.
	AssetKindFungible
	// AssetKindNonfungible is a non-fungible collection identified by collection id.
	AssetKindNonfungible
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindCurrency:
		return "currency"
	case AssetKindFungible:
		return "fungible"
	case AssetKindNonfungible:
		return "nonfungible"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Asset identifies an asset without an amount. Used for supported-asset
// membership checks and for matching ledger entries.
type Asset struct {
	_ struct{} `cbor:",toarray"`

	Kind         AssetKind `json:"kind"`
	AssetID      uint32    `json:"asset_id,omitempty"`
	CollectionID uint32    `json:"collection_id,omitempty"`
}

// CurrencyAsset returns the native currency asset identity.
func CurrencyAsset() Asset {
	return Asset{Kind: AssetKindCurrency}
}

// FungibleAsset returns the identity of a fungible token.
func FungibleAsset(assetID uint32) Asset {
	return Asset{Kind: AssetKindFungible, AssetID: assetID}
}

// NonfungibleAsset returns the identity of a non-fungible collection.
func NonfungibleAsset(collectionID uint32) Asset {
	return Asset{Kind: AssetKindNonfungible, CollectionID: collectionID}
}

func (a Asset) String() string {
	switch a.Kind {
	case AssetKindFungible:
		return fmt.Sprintf("fungible/%d", a.AssetID)
	case AssetKindNonfungible:
		return fmt.Sprintf("nonfungible/%d", a.CollectionID)
	default:
		return a.Kind.String()
	}
}

// Validate rejects malformed asset identities.
func (a Asset) Validate() error {
	switch a.Kind {
	case AssetKindCurrency, AssetKindFungible, AssetKindNonfungible:
		return nil
	default:
		return fmt.Errorf("invalid asset kind %d", a.Kind)
	}
}

// AssetValue is an amount-bearing asset: a currency or fungible amount, or a
// set of items of one non-fungible collection.
type AssetValue struct {
	_ struct{} `cbor:",toarray"`

	Kind         AssetKind `json:"kind"`
	AssetID      uint32    `json:"asset_id,omitempty"`
	CollectionID uint32    `json:"collection_id,omitempty"`
	Amount       uint64    `json:"amount,omitempty"`
	Items        []uint32  `json:"items,omitempty"`
}

// CurrencyValue returns a native currency amount.
func CurrencyValue(amount uint64) AssetValue {
	return AssetValue{Kind: AssetKindCurrency, Amount: amount}
}

// FungibleValue returns a fungible token amount.
func FungibleValue(assetID uint32, amount uint64) AssetValue {
	return AssetValue{Kind: AssetKindFungible, AssetID: assetID, Amount: amount}
}

// NonfungibleValue returns a set of items of one collection.
func NonfungibleValue(collectionID uint32, items ...uint32) AssetValue {
	copied := make([]uint32, len(items))
	copy(copied, items)
	return AssetValue{Kind: AssetKindNonfungible, CollectionID: collectionID, Items: copied}
}

// Asset projects the value onto its amount-less identity.
func (v AssetValue) Asset() Asset {
	switch v.Kind {
	case AssetKindFungible:
		return FungibleAsset(v.AssetID)
	case AssetKindNonfungible:
		return NonfungibleAsset(v.CollectionID)
	default:
		return CurrencyAsset()
	}
}

func (v AssetValue) String() string {
	switch v.Kind {
	case AssetKindFungible:
		return fmt.Sprintf("fungible/%d:%d", v.AssetID, v.Amount)
	case AssetKindNonfungible:
		return fmt.Sprintf("nonfungible/%d:%v", v.CollectionID, v.Items)
	default:
		return fmt.Sprintf("currency:%d", v.Amount)
	}
}

// Validate rejects malformed values: fields of another kind must be zero,
// since they would leak into the canonical encoding and break byte equality.
// itemLimit bounds the item set of a non-fungible value; item ids must be
// unique.
func (v AssetValue) Validate(itemLimit uint32) error {
	switch v.Kind {
	case AssetKindCurrency:
		if v.AssetID != 0 || v.CollectionID != 0 {
			return fmt.Errorf("currency value must not carry an asset or collection id")
		}
	case AssetKindFungible:
		if v.CollectionID != 0 {
			return fmt.Errorf("fungible value must not carry a collection id")
		}
	case AssetKindNonfungible:
		if v.AssetID != 0 {
			return fmt.Errorf("nonfungible value must not carry an asset id")
		}
	default:
		return fmt.Errorf("invalid asset kind %d", v.Kind)
	}
	if v.Kind != AssetKindNonfungible {
		if len(v.Items) != 0 {
			return fmt.Errorf("%s value must not carry items", v.Kind)
		}
		return nil
	}
	if v.Amount != 0 {
		return fmt.Errorf("nonfungible value must not carry an amount")
	}
	if len(v.Items) == 0 {
		return fmt.Errorf("nonfungible value must carry at least one item")
	}
	if uint32(len(v.Items)) > itemLimit {
		return fmt.Errorf("item set size %d exceeds limit %d", len(v.Items), itemLimit)
	}
	seen := make(map[uint32]struct{}, len(v.Items))
	for _, item := range v.Items {
		if _, dup := seen[item]; dup {
			return fmt.Errorf("duplicate item id %d", item)
		}
		seen[item] = struct{}{}
	}
	return nil
}

// checkedAdd adds two unsigned amounts, failing instead of wrapping.
func checkedAdd(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, fmt.Errorf("amount overflow: %d + %d", a, b)
	}
	return a + b, nil
}
