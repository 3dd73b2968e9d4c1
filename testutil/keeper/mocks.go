package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MockFungibleKeeper is an in-memory fungible-token ledger keyed by asset id.
type MockFungibleKeeper struct {
	created  map[uint32]bool
	balances map[uint32]map[string]sdkmath.Int
}

func NewMockFungibleKeeper() *MockFungibleKeeper {
	return &MockFungibleKeeper{
		created:  make(map[uint32]bool),
		balances: make(map[uint32]map[string]sdkmath.Int),
	}
}

func (m *MockFungibleKeeper) Create(_ context.Context, assetID uint32, _ sdk.AccAddress) error {
	if m.created[assetID] {
		return fmt.Errorf("asset %d already exists", assetID)
	}
	m.created[assetID] = true
	m.balances[assetID] = make(map[string]sdkmath.Int)
	return nil
}

func (m *MockFungibleKeeper) MintInto(_ context.Context, assetID uint32, to sdk.AccAddress, amount sdkmath.Int) error {
	if !m.created[assetID] {
		return fmt.Errorf("unknown asset %d", assetID)
	}
	m.balances[assetID][to.String()] = m.balanceOf(assetID, to).Add(amount)
	return nil
}

func (m *MockFungibleKeeper) Transfer(_ context.Context, assetID uint32, from, to sdk.AccAddress, amount sdkmath.Int) error {
	if !m.created[assetID] {
		return fmt.Errorf("unknown asset %d", assetID)
	}
	balance := m.balanceOf(assetID, from)
	if balance.LT(amount) {
		return fmt.Errorf("insufficient asset %d balance: %s has %s, needs %s", assetID, from, balance, amount)
	}
	m.balances[assetID][from.String()] = balance.Sub(amount)
	m.balances[assetID][to.String()] = m.balanceOf(assetID, to).Add(amount)
	return nil
}

// BalanceOf reports to's balance of assetID, for assertions.
func (m *MockFungibleKeeper) BalanceOf(assetID uint32, addr sdk.AccAddress) sdkmath.Int {
	return m.balanceOf(assetID, addr)
}

func (m *MockFungibleKeeper) balanceOf(assetID uint32, addr sdk.AccAddress) sdkmath.Int {
	balance, ok := m.balances[assetID][addr.String()]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return balance
}

type itemKey struct {
	collectionID uint32
	itemID       uint32
}

// MockNonfungibleKeeper is an in-memory item registry.
type MockNonfungibleKeeper struct {
	collections map[uint32]bool
	owners      map[itemKey]string
}

func NewMockNonfungibleKeeper() *MockNonfungibleKeeper {
	return &MockNonfungibleKeeper{
		collections: make(map[uint32]bool),
		owners:      make(map[itemKey]string),
	}
}

func (m *MockNonfungibleKeeper) CreateCollection(_ context.Context, collectionID uint32, _ sdk.AccAddress) error {
	if m.collections[collectionID] {
		return fmt.Errorf("collection %d already exists", collectionID)
	}
	m.collections[collectionID] = true
	return nil
}

func (m *MockNonfungibleKeeper) MintItem(_ context.Context, collectionID, itemID uint32, to sdk.AccAddress) error {
	if !m.collections[collectionID] {
		return fmt.Errorf("unknown collection %d", collectionID)
	}
	key := itemKey{collectionID, itemID}
	if _, exists := m.owners[key]; exists {
		return fmt.Errorf("item %d of collection %d already minted", itemID, collectionID)
	}
	m.owners[key] = to.String()
	return nil
}

func (m *MockNonfungibleKeeper) TransferItem(_ context.Context, collectionID, itemID uint32, to sdk.AccAddress) (sdk.AccAddress, error) {
	key := itemKey{collectionID, itemID}
	owner, exists := m.owners[key]
	if !exists {
		return nil, fmt.Errorf("unknown item %d of collection %d", itemID, collectionID)
	}
	m.owners[key] = to.String()
	prior, err := sdk.AccAddressFromBech32(owner)
	if err != nil {
		return nil, err
	}
	return prior, nil
}

// OwnerOf reports the current owner of an item, for assertions.
func (m *MockNonfungibleKeeper) OwnerOf(collectionID, itemID uint32) (string, bool) {
	owner, ok := m.owners[itemKey{collectionID, itemID}]
	return owner, ok
}
