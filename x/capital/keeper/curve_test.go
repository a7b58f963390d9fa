package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/proof-of-capital/capital/x/capital/keeper"
	"github.com/proof-of-capital/capital/x/capital/types"
)

func requireSameStepState(t *testing.T, want, got types.StepState) {
	t.Helper()
	require.Equal(t, want.StepIndex, got.StepIndex, "step index")
	require.True(t, want.PricePerUnit.Equal(got.PricePerUnit), "price: want %s got %s", want.PricePerUnit, got.PricePerUnit)
	require.True(t, want.UnitsPerLevel.Equal(got.UnitsPerLevel), "units per level: want %s got %s", want.UnitsPerLevel, got.UnitsPerLevel)
	require.True(t, want.RemainderInLevel.Equal(got.RemainderInLevel), "remainder: want %s got %s", want.RemainderInLevel, got.RemainderInLevel)
}

func TestLevelSizeTrendChange(t *testing.T) {
	params := testParams()

	prev := keeper.LevelSizeAt(params, 0)
	require.True(t, prev.Equal(params.BaseLevelUnits))

	for step := uint64(1); step <= params.TrendChangeStep; step++ {
		size := keeper.LevelSizeAt(params, step)
		require.True(t, size.GT(prev), "level %d should grow: %s <= %s", step, size, prev)
		prev = size
	}
	for step := params.TrendChangeStep + 1; step <= params.TrendChangeStep+3; step++ {
		size := keeper.LevelSizeAt(params, step)
		require.True(t, size.LT(prev), "level %d should shrink: %s >= %s", step, size, prev)
		prev = size
	}
}

func TestPriceAtStrictlyIncreasing(t *testing.T) {
	params := testParams()

	prev, err := keeper.PriceAt(params, 0)
	require.NoError(t, err)
	require.True(t, prev.Equal(params.InitialPrice))

	for step := uint64(1); step <= 10; step++ {
		price, err := keeper.PriceAt(params, step)
		require.NoError(t, err)
		require.True(t, price.GT(prev), "price must rise with the step index")
		prev = price
	}
}

func TestPriceAtBoundsStepGrowth(t *testing.T) {
	params := testParams()
	_, err := keeper.PriceAt(params, params.MaxStep+1)
	require.ErrorIs(t, err, types.ErrPriceOverflow)
}

func TestAdvanceMatchesPureFunctions(t *testing.T) {
	params := testParams()
	state := keeper.NewStepState(params)

	// Cross several levels.
	_, err := keeper.AdvanceUnits(params, &state, sdkmath.NewInt(3_500))
	require.NoError(t, err)
	require.Greater(t, state.StepIndex, uint64(0))

	wantPrice, err := keeper.PriceAt(params, state.StepIndex)
	require.NoError(t, err)
	require.True(t, state.PricePerUnit.Equal(wantPrice))
	require.True(t, state.UnitsPerLevel.Equal(keeper.LevelSizeAt(params, state.StepIndex)))
}

func TestAdvanceRetreatInvertiblePreTrend(t *testing.T) {
	params := testParams()
	origin := keeper.NewStepState(params)
	state := origin

	amount := sdkmath.NewInt(2_500)
	cost, err := keeper.AdvanceUnits(params, &state, amount)
	require.NoError(t, err)
	require.True(t, cost.IsPositive())

	refund, err := keeper.RetreatUnits(params, &state, amount)
	require.NoError(t, err)
	require.True(t, refund.Equal(cost), "retreat must mirror advance prices: %s != %s", refund, cost)
	requireSameStepState(t, origin, state)
}

func TestAdvanceRetreatInvertibleAcrossTrendChange(t *testing.T) {
	params := testParams()
	origin := keeper.NewStepState(params)
	state := origin

	// Enough units to pass the trend change step into the shrink regime.
	amount := sdkmath.NewInt(6_000)
	cost, err := keeper.AdvanceUnits(params, &state, amount)
	require.NoError(t, err)
	require.Greater(t, state.StepIndex, params.TrendChangeStep)

	refund, err := keeper.RetreatUnits(params, &state, amount)
	require.NoError(t, err)
	require.True(t, refund.Equal(cost))
	requireSameStepState(t, origin, state)
}

func TestPartialRetreatRestoresIntermediateState(t *testing.T) {
	params := testParams()
	state := keeper.NewStepState(params)

	_, err := keeper.AdvanceUnits(params, &state, sdkmath.NewInt(1_500))
	require.NoError(t, err)
	snapshot := state

	second := sdkmath.NewInt(2_750)
	cost, err := keeper.AdvanceUnits(params, &state, second)
	require.NoError(t, err)

	refund, err := keeper.RetreatUnits(params, &state, second)
	require.NoError(t, err)
	require.True(t, refund.Equal(cost))
	requireSameStepState(t, snapshot, state)
}

func TestExactLevelBoundaryInvertible(t *testing.T) {
	params := testParams()
	origin := keeper.NewStepState(params)
	state := origin

	// Exactly one full level.
	amount := params.BaseLevelUnits
	cost, err := keeper.AdvanceUnits(params, &state, amount)
	require.NoError(t, err)
	require.Equal(t, uint64(0), state.StepIndex)
	require.True(t, state.RemainderInLevel.IsZero())

	refund, err := keeper.RetreatUnits(params, &state, amount)
	require.NoError(t, err)
	require.True(t, refund.Equal(cost))
	requireSameStepState(t, origin, state)
}

func TestRetreatPastOriginIsFatal(t *testing.T) {
	params := testParams()
	state := keeper.NewStepState(params)

	_, err := keeper.RetreatUnits(params, &state, sdkmath.NewInt(1))
	require.ErrorIs(t, err, types.ErrStepUnderflow)
}

func TestAdvancePastMaxStepFails(t *testing.T) {
	params := testParams()
	params.MaxStep = 2
	state := keeper.NewStepState(params)

	_, err := keeper.AdvanceUnits(params, &state, sdkmath.NewInt(100_000))
	require.ErrorIs(t, err, types.ErrPriceOverflow)
}

func TestAdvanceCostSumsPerLevel(t *testing.T) {
	params := testParams()
	state := keeper.NewStepState(params)

	// 1500 units: 1000 at step 0, 500 at step 1.
	cost, err := keeper.AdvanceUnits(params, &state, sdkmath.NewInt(1_500))
	require.NoError(t, err)

	p0, err := keeper.PriceAt(params, 0)
	require.NoError(t, err)
	p1, err := keeper.PriceAt(params, 1)
	require.NoError(t, err)
	want := p0.MulInt(sdkmath.NewInt(1_000)).TruncateInt().
		Add(p1.MulInt(sdkmath.NewInt(500)).TruncateInt())
	require.True(t, cost.Equal(want), "cost %s != per-level sum %s", cost, want)
}

func TestAdvanceByValueSpendsAtMostValue(t *testing.T) {
	params := testParams()
	state := keeper.NewStepState(params)

	value := sdkmath.NewInt(2_345)
	units, spent, err := keeper.AdvanceByValue(params, &state, value)
	require.NoError(t, err)
	require.True(t, spent.LTE(value))
	require.True(t, units.IsPositive())

	// The spent value buys exactly the units the unit-based walk charges.
	check := keeper.NewStepState(params)
	cost, err := keeper.AdvanceUnits(params, &check, units)
	require.NoError(t, err)
	require.True(t, cost.Equal(spent))
	requireSameStepState(t, check, state)
}

func TestAdvanceByValueLeavesCurveWhenUnaffordable(t *testing.T) {
	params := testParams()
	origin := keeper.NewStepState(params)
	state := origin

	// Too small to buy a single unit at the initial price.
	units, spent, err := keeper.AdvanceByValue(params, &state, sdkmath.ZeroInt())
	require.NoError(t, err)
	require.True(t, units.IsZero())
	require.True(t, spent.IsZero())
	requireSameStepState(t, origin, state)
}
