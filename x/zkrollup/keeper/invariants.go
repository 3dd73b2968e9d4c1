package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/zkapp-labs/zkrollup/x/zkrollup/types"
)

// RegisterInvariants registers all zkrollup module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "escrow-conservation",
		EscrowConservationInvariant(k))
	ir.RegisterRoute(types.ModuleName, "queue-bounds",
		QueueBoundsInvariant(k))
}

// AllInvariants runs all invariants of the zkrollup module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := EscrowConservationInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return QueueBoundsInvariant(k)(ctx)
	}
}

// EscrowConservationInvariant checks that the native currency held by the
// module escrow account covers every currency claim against it: settled
// ledger balances plus pending Deposit queue entries.
func EscrowConservationInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-conservation",
				fmt.Sprintf("error reading params: %v", err)), true
		}

		var claimed uint64
		err = k.IterateAccounts(ctx, func(_ types.ProgramHash, account types.Account) bool {
			for _, v := range account.Assets {
				if v.Kind == types.AssetKindCurrency {
					claimed += v.Amount
				}
			}
			return false
		})
		if err == nil {
			err = k.IterateZkapps(ctx, func(_ types.ProgramHash, zkapp types.Zkapp) bool {
				for _, op := range zkapp.L1Operations {
					if op.Kind == types.OpDeposit && op.Value.Kind == types.AssetKindCurrency {
						claimed += op.Value.Amount
					}
				}
				return false
			})
		}
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "escrow-conservation",
				fmt.Sprintf("error iterating state: %v", err)), true
		}

		escrowed := k.bankKeeper.GetBalance(ctx, k.escrowAddr, params.NativeDenom)
		if escrowed.Amount.Uint64() < claimed {
			return sdk.FormatInvariant(types.ModuleName, "escrow-conservation",
				fmt.Sprintf("escrow holds %s %s, claims total %d", escrowed.Amount, params.NativeDenom, claimed)), true
		}
		return sdk.FormatInvariant(types.ModuleName, "escrow-conservation",
			"escrow covers all currency claims"), false
	}
}

// QueueBoundsInvariant checks that every zkapp record respects the module
// capacity parameters.
func QueueBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "queue-bounds",
				fmt.Sprintf("error reading params: %v", err)), true
		}

		var broken bool
		var msg string
		err = k.IterateZkapps(ctx, func(programHash types.ProgramHash, zkapp types.Zkapp) bool {
			if err := zkapp.Validate(params); err != nil {
				broken = true
				msg = fmt.Sprintf("zkapp %s: %v", programHash, err)
				return true
			}
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "queue-bounds",
				fmt.Sprintf("error iterating zkapps: %v", err)), true
		}
		if broken {
			return sdk.FormatInvariant(types.ModuleName, "queue-bounds", msg), true
		}
		return sdk.FormatInvariant(types.ModuleName, "queue-bounds",
			"all zkapp records within capacity limits"), false
	}
}
