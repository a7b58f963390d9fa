package keeper

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/proof-of-capital/capital/x/capital/types"
)

func ledgerParams() types.Params {
	params := types.DefaultParams()
	params.BaseLevelUnits = sdkmath.NewInt(1_000)
	params.TrendChangeStep = 3
	params.MaxStep = 50
	return params
}

func freshState(params types.Params) types.ContractState {
	return types.ContractState{
		Live:                           NewStepState(params),
		Offset:                         NewStepState(params),
		SoldUnits:                      sdkmath.ZeroInt(),
		EarnedUnits:                    sdkmath.ZeroInt(),
		OffsetUnits:                    sdkmath.ZeroInt(),
		UnaccountedOffset:              sdkmath.ZeroInt(),
		UnaccountedLaunchBalance:       sdkmath.ZeroInt(),
		UnaccountedOffsetLaunchBalance: sdkmath.ZeroInt(),
		UnaccountedCollateralBalance:   sdkmath.ZeroInt(),
		LaunchBalance:                  sdkmath.ZeroInt(),
		CollateralBalance:              sdkmath.ZeroInt(),
		OwnerProfitBalance:             sdkmath.ZeroInt(),
		RoyaltyProfitBalance:           sdkmath.ZeroInt(),
		IsActive:                       true,
	}
}

func TestApplyOffsetIncreaseMovesBothCurves(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	amount := sdkmath.NewInt(2_500)
	require.NoError(t, applyOffsetIncrease(params, &st, amount))

	require.True(t, st.OffsetUnits.Equal(amount))
	require.True(t, st.SoldUnits.Equal(amount))
	require.Equal(t, st.Offset.StepIndex, st.Live.StepIndex)
	require.True(t, st.Offset.RemainderInLevel.Equal(st.Live.RemainderInLevel))
}

func TestApplyOffsetDecreaseIsInverse(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)
	fresh := freshState(params)

	amount := sdkmath.NewInt(2_500)
	require.NoError(t, applyOffsetIncrease(params, &st, amount))
	require.NoError(t, applyOffsetDecrease(params, &st, amount))

	require.True(t, st.OffsetUnits.IsZero())
	require.True(t, st.SoldUnits.IsZero())
	require.Equal(t, fresh.Offset.StepIndex, st.Offset.StepIndex)
	require.True(t, fresh.Offset.RemainderInLevel.Equal(st.Offset.RemainderInLevel))
	require.Equal(t, fresh.Live.StepIndex, st.Live.StepIndex)
}

func TestRecordSaleAndBuybackMirror(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	amount := sdkmath.NewInt(3_000)
	cost, err := recordSale(params, &st, amount)
	require.NoError(t, err)
	require.True(t, st.SoldUnits.Equal(amount))

	refund, err := recordBuyback(params, &st, amount)
	require.NoError(t, err)
	require.True(t, refund.Equal(cost))
	require.True(t, st.EarnedUnits.Equal(amount))
	require.True(t, st.AvailableForBuyback().IsZero())
}

func TestRecordBuybackDefensiveSoldCheck(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	_, err := recordSale(params, &st, sdkmath.NewInt(100))
	require.NoError(t, err)

	_, err = recordBuyback(params, &st, sdkmath.NewInt(101))
	require.ErrorIs(t, err, types.ErrInsufficientSoldUnits)
}

func TestNetAgainstOffsetCapsAtSurplus(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	require.NoError(t, applyOffsetIncrease(params, &st, sdkmath.NewInt(1_000)))

	netted, err := netAgainstOffset(&st, sdkmath.NewInt(400))
	require.NoError(t, err)
	require.True(t, netted.Equal(sdkmath.NewInt(400)))
	require.True(t, st.EarnedUnits.Equal(sdkmath.NewInt(400)))

	// Only 600 of surplus left; the rest cannot be netted.
	netted, err = netAgainstOffset(&st, sdkmath.NewInt(900))
	require.NoError(t, err)
	require.True(t, netted.Equal(sdkmath.NewInt(600)))
	require.True(t, st.EarnedUnits.Equal(sdkmath.NewInt(1_000)))

	netted, err = netAgainstOffset(&st, sdkmath.NewInt(1))
	require.NoError(t, err)
	require.True(t, netted.IsZero())
}

func TestAvailableForBuybackNeverNegative(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	require.NoError(t, applyOffsetIncrease(params, &st, sdkmath.NewInt(10_000)))
	require.True(t, st.AvailableForBuyback().IsZero())

	_, err := recordSale(params, &st, sdkmath.NewInt(5_000))
	require.NoError(t, err)
	require.True(t, st.AvailableForBuyback().Equal(sdkmath.NewInt(5_000)))

	// Netting raises earned but availability stays sold - max(offset, earned).
	_, err = netAgainstOffset(&st, sdkmath.NewInt(1_000))
	require.NoError(t, err)
	require.True(t, st.AvailableForBuyback().Equal(sdkmath.NewInt(5_000)))
	require.False(t, st.AvailableForBuyback().IsNegative())
	require.True(t, st.AvailableForBuyback().LTE(st.SoldUnits))
}

func TestCheckLedgerRejectsEarnedAboveSold(t *testing.T) {
	st := freshState(ledgerParams())
	st.SoldUnits = sdkmath.NewInt(10)
	st.EarnedUnits = sdkmath.NewInt(11)
	require.ErrorIs(t, st.CheckLedger(), types.ErrLedgerInconsistent)
}

func TestApplyOffsetValueForwardsUnits(t *testing.T) {
	params := ledgerParams()
	st := freshState(params)

	units, spent, err := applyOffsetValue(params, &st, sdkmath.NewInt(1_500))
	require.NoError(t, err)
	require.True(t, units.IsPositive())
	require.True(t, spent.LTE(sdkmath.NewInt(1_500)))
	require.True(t, st.OffsetUnits.Equal(units))
	require.True(t, st.SoldUnits.Equal(units))
	require.Equal(t, st.Offset.StepIndex, st.Live.StepIndex)
}
