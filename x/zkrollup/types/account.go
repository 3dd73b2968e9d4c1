package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Account is one user's balance sheet inside one zkapp: at most one AssetValue
// entry per distinct asset. Created lazily on first credit and never deleted;
// entries that reach zero stay as zero-value entries.
type Account struct {
	_ struct{} `cbor:",toarray"`

	User   string       `json:"user"`
	Assets []AssetValue `json:"assets"`
}

// NewAccount returns an empty account record for user.
func NewAccount(user string) Account {
	return Account{User: user}
}

// findAsset returns the index of the entry matching the asset, or -1.
func (a *Account) findAsset(asset Asset) int {
	for i := range a.Assets {
		if a.Assets[i].Asset() == asset {
			return i
		}
	}
	return -1
}

// AddAsset credits value into the account. An existing entry is added into:
// currency and fungible amounts use checked addition, non-fungible item sets
// are unioned. A missing entry is appended. Capacity overruns and arithmetic
// overflow fail with ErrInvalidAssets, leaving the account unchanged.
func (a *Account) AddAsset(value AssetValue, p Params) error {
	idx := a.findAsset(value.Asset())
	if idx < 0 {
		if uint32(len(a.Assets))+1 > p.AssetsItemLimit {
			return sdkerrors.Wrapf(ErrInvalidAssets, "account %s has no free asset slot for %s", a.User, value.Asset())
		}
		entry := value
		entry.Items = append([]uint32(nil), value.Items...)
		a.Assets = append(a.Assets, entry)
		return nil
	}

	entry := &a.Assets[idx]
	switch value.Kind {
	case AssetKindCurrency, AssetKindFungible:
		sum, err := checkedAdd(entry.Amount, value.Amount)
		if err != nil {
			return sdkerrors.Wrap(ErrInvalidAssets, err.Error())
		}
		entry.Amount = sum
	case AssetKindNonfungible:
		items := entry.Items
		for _, item := range value.Items {
			if containsItem(items, item) {
				continue
			}
			if uint32(len(items))+1 > p.NonfungibleItemLimit {
				return sdkerrors.Wrapf(ErrInvalidAssets, "item set of %s at capacity %d", value.Asset(), p.NonfungibleItemLimit)
			}
			items = append(items, item)
		}
		entry.Items = items
	}
	return nil
}

// ReduceAsset debits value from the account. It fails with ErrInvalidAssets,
// without mutating, when no entry matches, the amount exceeds the balance, or
// a requested item id is absent. A zero resulting balance is retained.
func (a *Account) ReduceAsset(value AssetValue) error {
	idx := a.findAsset(value.Asset())
	if idx < 0 {
		return sdkerrors.Wrapf(ErrInvalidAssets, "account %s holds no %s", a.User, value.Asset())
	}

	entry := &a.Assets[idx]
	switch value.Kind {
	case AssetKindCurrency, AssetKindFungible:
		if value.Amount > entry.Amount {
			return sdkerrors.Wrapf(ErrInvalidAssets, "reduce %d exceeds balance %d of %s", value.Amount, entry.Amount, value.Asset())
		}
		entry.Amount -= value.Amount
	case AssetKindNonfungible:
		for _, item := range value.Items {
			if !containsItem(entry.Items, item) {
				return sdkerrors.Wrapf(ErrInvalidAssets, "item %d of %s not held", item, value.Asset())
			}
		}
		kept := entry.Items[:0]
		for _, item := range entry.Items {
			if !containsItem(value.Items, item) {
				kept = append(kept, item)
			}
		}
		entry.Items = kept
	}
	return nil
}

// HasEnough reports whether a ReduceAsset of value would succeed.
func (a *Account) HasEnough(value AssetValue) bool {
	idx := a.findAsset(value.Asset())
	if idx < 0 {
		return false
	}
	entry := a.Assets[idx]
	switch value.Kind {
	case AssetKindCurrency, AssetKindFungible:
		return value.Amount <= entry.Amount
	case AssetKindNonfungible:
		for _, item := range value.Items {
			if !containsItem(entry.Items, item) {
				return false
			}
		}
		return true
	}
	return false
}

// Validate checks the record against the module limits.
func (a Account) Validate(p Params) error {
	if _, err := sdk.AccAddressFromBech32(a.User); err != nil {
		return fmt.Errorf("invalid account user %q: %w", a.User, err)
	}
	if uint32(len(a.Assets)) > p.AssetsItemLimit {
		return fmt.Errorf("account %s asset slots %d exceed limit %d", a.User, len(a.Assets), p.AssetsItemLimit)
	}
	seen := make(map[Asset]struct{}, len(a.Assets))
	for _, v := range a.Assets {
		if err := v.Validate(p.NonfungibleItemLimit); err != nil {
			return fmt.Errorf("account %s: %w", a.User, err)
		}
		if _, dup := seen[v.Asset()]; dup {
			return fmt.Errorf("account %s: duplicate entry for %s", a.User, v.Asset())
		}
		seen[v.Asset()] = struct{}{}
	}
	return nil
}

func containsItem(items []uint32, item uint32) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}
