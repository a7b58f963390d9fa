package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// RegisterInvariants registers all module invariants with the invariant
// registry.
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "ledger-counters", LedgerCountersInvariant(k))
	ir.RegisterRoute(types.ModuleName, "curve-states", CurveStatesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "balances-non-negative", BalancesNonNegativeInvariant(k))
}

// AllInvariants runs all invariants of the capital module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		invariants := []sdk.Invariant{
			LedgerCountersInvariant(k),
			CurveStatesInvariant(k),
			BalancesNonNegativeInvariant(k),
		}
		for _, inv := range invariants {
			if msg, broken := inv(ctx); broken {
				return msg, broken
			}
		}
		return "", false
	}
}

// LedgerCountersInvariant checks the unit-counter relations: earned and
// offset never exceed sold, no counter is negative and the buyback
// availability derived from them is non-negative.
func LedgerCountersInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		st, err := k.GetState(ctx)
		if err != nil {
			return fmt.Sprintf("cannot load contract state: %v", err), true
		}
		if err := st.CheckLedger(); err != nil {
			return err.Error(), true
		}
		return "", false
	}
}

// CurveStatesInvariant checks that both step states are well-formed and
// that each matches the pure functions of its step index.
func CurveStatesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return fmt.Sprintf("cannot load params: %v", err), true
		}
		st, err := k.GetState(ctx)
		if err != nil {
			return fmt.Sprintf("cannot load contract state: %v", err), true
		}
		for name, curve := range map[string]types.StepState{"live": st.Live, "offset": st.Offset} {
			if err := curve.Validate(); err != nil {
				return fmt.Sprintf("%s curve: %v", name, err), true
			}
			price, err := PriceAt(params, curve.StepIndex)
			if err != nil {
				return fmt.Sprintf("%s curve: %v", name, err), true
			}
			if !curve.PricePerUnit.Equal(price) {
				return fmt.Sprintf("%s curve: price %s diverges from step %d price %s",
					name, curve.PricePerUnit, curve.StepIndex, price), true
			}
			if size := LevelSizeAt(params, curve.StepIndex); !curve.UnitsPerLevel.Equal(size) {
				return fmt.Sprintf("%s curve: level size %s diverges from step %d size %s",
					name, curve.UnitsPerLevel, curve.StepIndex, size), true
			}
		}
		return "", false
	}
}

// BalancesNonNegativeInvariant checks every internal balance bucket.
func BalancesNonNegativeInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		st, err := k.GetState(ctx)
		if err != nil {
			return fmt.Sprintf("cannot load contract state: %v", err), true
		}
		balances := map[string]sdkmath.Int{
			"launch":                    st.LaunchBalance,
			"collateral":                st.CollateralBalance,
			"unaccounted offset":        st.UnaccountedOffset,
			"unaccounted launch":        st.UnaccountedLaunchBalance,
			"unaccounted offset launch": st.UnaccountedOffsetLaunchBalance,
			"unaccounted collateral":    st.UnaccountedCollateralBalance,
			"owner profit":              st.OwnerProfitBalance,
			"royalty profit":            st.RoyaltyProfitBalance,
		}
		for name, bal := range balances {
			if bal.IsNil() || bal.IsNegative() {
				return fmt.Sprintf("negative %s balance: %s", name, bal), true
			}
		}
		return "", false
	}
}
