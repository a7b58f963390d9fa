package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// Ledger mutations operate on the in-memory aggregate and re-check the
// ledger invariants before anything is persisted. A CheckLedger failure
// aborts the call; no repair is attempted.

// applyOffsetIncrease moves pre-committed capital onto the curve: both the
// offset and the live states advance by the same units, and the units count
// into offsetUnits and soldUnits together.
func applyOffsetIncrease(p types.Params, st *types.ContractState, amount sdkmath.Int) error {
	if _, err := AdvanceUnits(p, &st.Offset, amount); err != nil {
		return err
	}
	if _, err := AdvanceUnits(p, &st.Live, amount); err != nil {
		return err
	}
	st.OffsetUnits = st.OffsetUnits.Add(amount)
	st.SoldUnits = st.SoldUnits.Add(amount)
	return st.CheckLedger()
}

// applyOffsetDecrease reclaims pre-committed units: both curves retreat and
// offsetUnits and soldUnits move back together. While soldUnits equals
// offsetUnits the two step states are identical, so retreating both by the
// same amount keeps the live curve in sync with the offset curve.
func applyOffsetDecrease(p types.Params, st *types.ContractState, amount sdkmath.Int) error {
	if _, err := RetreatUnits(p, &st.Offset, amount); err != nil {
		return err
	}
	if _, err := RetreatUnits(p, &st.Live, amount); err != nil {
		return err
	}
	st.OffsetUnits = st.OffsetUnits.Sub(amount)
	st.SoldUnits = st.SoldUnits.Sub(amount)
	return st.CheckLedger()
}

// applyOffsetValue spends collateral forward along the offset curve and
// mirrors the purchased units onto the live curve. It returns the units
// absorbed and the collateral actually spent.
func applyOffsetValue(p types.Params, st *types.ContractState, value sdkmath.Int) (units, spent sdkmath.Int, err error) {
	units, spent, err = AdvanceByValue(p, &st.Offset, value)
	if err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
	}
	if units.IsPositive() {
		if _, err := AdvanceUnits(p, &st.Live, units); err != nil {
			return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
		}
		st.OffsetUnits = st.OffsetUnits.Add(units)
		st.SoldUnits = st.SoldUnits.Add(units)
	}
	if err := st.CheckLedger(); err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
	}
	return units, spent, nil
}

// recordSale advances the live curve for a public buy and returns the cost.
func recordSale(p types.Params, st *types.ContractState, amount sdkmath.Int) (sdkmath.Int, error) {
	cost, err := AdvanceUnits(p, &st.Live, amount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	st.SoldUnits = st.SoldUnits.Add(amount)
	if err := st.CheckLedger(); err != nil {
		return sdkmath.ZeroInt(), err
	}
	return cost, nil
}

// recordBuyback retreats the live curve for a collateral-paid sell and
// returns the refund at the mirrored step prices.
func recordBuyback(p types.Params, st *types.ContractState, amount sdkmath.Int) (sdkmath.Int, error) {
	// Defensive assertion; unreachable while earned <= sold holds.
	if st.EarnedUnits.Add(amount).GT(st.SoldUnits) {
		return sdkmath.ZeroInt(), types.ErrInsufficientSoldUnits.Wrapf(
			"earned %s + %s would exceed sold %s", st.EarnedUnits, amount, st.SoldUnits)
	}
	refund, err := RetreatUnits(p, &st.Live, amount)
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	st.EarnedUnits = st.EarnedUnits.Add(amount)
	if err := st.CheckLedger(); err != nil {
		return sdkmath.ZeroInt(), err
	}
	return refund, nil
}

// netAgainstOffset absorbs a return-wallet sale into earnedUnits up to the
// issuer's unnetted pre-commitment, without collateral payment and without
// moving the live curve. It returns the netted portion.
func netAgainstOffset(st *types.ContractState, amount sdkmath.Int) (sdkmath.Int, error) {
	netted := sdkmath.MinInt(amount, st.OffsetSurplus())
	if netted.IsPositive() {
		st.EarnedUnits = st.EarnedUnits.Add(netted)
		if err := st.CheckLedger(); err != nil {
			return sdkmath.ZeroInt(), err
		}
	}
	return netted, nil
}
