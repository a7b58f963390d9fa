package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// The step curve is a pure function of the step index: PriceAt and
// LevelSizeAt recompute from the origin with truncating arithmetic applied
// in a fixed order. Advancing updates incrementally (which matches the
// recomputation exactly), retreating always recomputes, so retreat is the
// exact inverse of advance in both multiplier regimes.

// NewStepState returns the curve origin: step 0, nothing sold.
func NewStepState(p types.Params) types.StepState {
	return types.StepState{
		StepIndex:        0,
		PricePerUnit:     p.InitialPrice,
		UnitsPerLevel:    p.BaseLevelUnits,
		RemainderInLevel: p.BaseLevelUnits,
	}
}

// PriceAt returns the level price for a step index.
func PriceAt(p types.Params, step uint64) (sdkmath.LegacyDec, error) {
	if step > p.MaxStep {
		return sdkmath.LegacyDec{}, types.ErrPriceOverflow.Wrapf("step %d exceeds max step %d", step, p.MaxStep)
	}
	price := p.InitialPrice
	factor := p.PriceFactor()
	for i := uint64(0); i < step; i++ {
		price = price.MulTruncate(factor)
	}
	return price, nil
}

// LevelSizeAt returns the unit capacity of a level. Capacity grows by the
// increase multiplier up to the trend change step and shrinks by the
// decrease multiplier beyond it, floored at one unit.
func LevelSizeAt(p types.Params, step uint64) sdkmath.Int {
	size := p.BaseLevelUnits
	for i := uint64(1); i <= step; i++ {
		size = nextLevelSize(p, size, i)
	}
	return size
}

func nextLevelSize(p types.Params, prev sdkmath.Int, step uint64) sdkmath.Int {
	mult := p.LevelIncreaseBps
	if step > p.TrendChangeStep {
		mult = p.LevelDecreaseBps
	}
	size := prev.MulRaw(mult).QuoRaw(types.PercentDivisor)
	if !size.IsPositive() {
		size = sdkmath.OneInt()
	}
	return size
}

// AdvanceUnits consumes delta units moving forward through the curve and
// returns the total cost, truncated down at every level.
func AdvanceUnits(p types.Params, s *types.StepState, delta sdkmath.Int) (sdkmath.Int, error) {
	cost := sdkmath.ZeroInt()
	remaining := delta
	for remaining.IsPositive() {
		if s.RemainderInLevel.IsPositive() {
			take := sdkmath.MinInt(remaining, s.RemainderInLevel)
			cost = cost.Add(s.PricePerUnit.MulInt(take).TruncateInt())
			s.RemainderInLevel = s.RemainderInLevel.Sub(take)
			remaining = remaining.Sub(take)
			continue
		}
		if s.StepIndex >= p.MaxStep {
			return sdkmath.ZeroInt(), types.ErrPriceOverflow.Wrapf("advance past max step %d", p.MaxStep)
		}
		s.StepIndex++
		s.PricePerUnit = s.PricePerUnit.MulTruncate(p.PriceFactor())
		s.UnitsPerLevel = nextLevelSize(p, s.UnitsPerLevel, s.StepIndex)
		s.RemainderInLevel = s.UnitsPerLevel
	}
	return cost, nil
}

// RetreatUnits gives back delta units moving backward through the curve and
// returns the refund, mirroring the prices AdvanceUnits charged. Retreating
// past the origin indicates ledger corruption and fails fatally.
func RetreatUnits(p types.Params, s *types.StepState, delta sdkmath.Int) (sdkmath.Int, error) {
	refund := sdkmath.ZeroInt()
	remaining := delta
	for remaining.IsPositive() {
		outstanding := s.UnitsPerLevel.Sub(s.RemainderInLevel)
		if outstanding.IsPositive() {
			give := sdkmath.MinInt(remaining, outstanding)
			refund = refund.Add(s.PricePerUnit.MulInt(give).TruncateInt())
			s.RemainderInLevel = s.RemainderInLevel.Add(give)
			remaining = remaining.Sub(give)
			continue
		}
		if err := stepDown(p, s); err != nil {
			return sdkmath.ZeroInt(), err
		}
	}
	// Advance never rests on a fully-unsold level above the origin, so a
	// retreat that refills the current level steps down to the canonical
	// boundary representation.
	if s.StepIndex > 0 && s.RemainderInLevel.Equal(s.UnitsPerLevel) {
		if err := stepDown(p, s); err != nil {
			return sdkmath.ZeroInt(), err
		}
	}
	return refund, nil
}

func stepDown(p types.Params, s *types.StepState) error {
	if s.StepIndex == 0 {
		return types.ErrStepUnderflow.Wrap("retreat past curve origin")
	}
	s.StepIndex--
	price, err := PriceAt(p, s.StepIndex)
	if err != nil {
		return err
	}
	s.PricePerUnit = price
	s.UnitsPerLevel = LevelSizeAt(p, s.StepIndex)
	s.RemainderInLevel = sdkmath.ZeroInt()
	return nil
}

// AdvanceByValue spends up to value buying whole units forward through the
// curve. It returns the units bought and the value actually spent; the
// difference is change the curve could not absorb.
func AdvanceByValue(p types.Params, s *types.StepState, value sdkmath.Int) (units, spent sdkmath.Int, err error) {
	units = sdkmath.ZeroInt()
	spent = sdkmath.ZeroInt()
	remainingValue := value
	for remainingValue.IsPositive() {
		if !s.RemainderInLevel.IsPositive() {
			// Climb only if at least one unit is affordable at the next
			// level, so an unaffordable remainder never moves the curve.
			nextPrice := s.PricePerUnit.MulTruncate(p.PriceFactor())
			affordableNext := sdkmath.LegacyNewDecFromInt(remainingValue).
				QuoTruncate(nextPrice).TruncateInt()
			if !affordableNext.IsPositive() {
				break
			}
			if s.StepIndex >= p.MaxStep {
				return sdkmath.ZeroInt(), sdkmath.ZeroInt(),
					types.ErrPriceOverflow.Wrapf("advance past max step %d", p.MaxStep)
			}
			s.StepIndex++
			s.PricePerUnit = nextPrice
			s.UnitsPerLevel = nextLevelSize(p, s.UnitsPerLevel, s.StepIndex)
			s.RemainderInLevel = s.UnitsPerLevel
		}
		affordable := sdkmath.LegacyNewDecFromInt(remainingValue).
			QuoTruncate(s.PricePerUnit).TruncateInt()
		if !affordable.IsPositive() {
			break
		}
		take := sdkmath.MinInt(affordable, s.RemainderInLevel)
		levelCost := s.PricePerUnit.MulInt(take).TruncateInt()
		units = units.Add(take)
		spent = spent.Add(levelCost)
		remainingValue = remainingValue.Sub(levelCost)
		s.RemainderInLevel = s.RemainderInLevel.Sub(take)
	}
	return units, spent, nil
}
