package keeper

import (
	"context"
	"fmt"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// GetParams returns the current module parameters.
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz, err := k.storeService.OpenKVStore(ctx).Get(types.ParamsKey)
	if err != nil {
		return types.Params{}, fmt.Errorf("failed to read params: %w", err)
	}
	if bz == nil {
		return types.DefaultParams(), nil
	}
	var params types.Params
	if err := types.UnmarshalCanonical(bz, &params); err != nil {
		return types.Params{}, fmt.Errorf("failed to decode params: %w", err)
	}
	return params, nil
}

// SetParams validates and stores the module parameters.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := types.MarshalCanonical(params)
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}
	return k.storeService.OpenKVStore(ctx).Set(types.ParamsKey, bz)
}
