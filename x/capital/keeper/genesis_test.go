package keeper_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/proof-of-capital/capital/x/capital/types"
)

func TestInitGenesisWithPreCommitment(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	initContract(t, k, ctx, testGenesis(testParams(), sdkmath.NewInt(10_000)))

	st, err := k.GetState(ctx)
	require.NoError(t, err)
	require.True(t, st.IsActive)
	require.False(t, st.IsInitialized)
	require.True(t, st.UnaccountedOffset.Equal(sdkmath.NewInt(10_000)))
	require.True(t, st.SoldUnits.IsZero())
	require.Equal(t, uint64(0), st.Live.StepIndex)
	require.True(t, st.Live.RemainderInLevel.Equal(sdkmath.NewInt(1_000)))

	require.Equal(t, types.RoleOwner, k.ResolveRole(ctx, ownerAddr))
	require.Equal(t, types.RoleDao, k.ResolveRole(ctx, daoAddr))
	require.Equal(t, types.RoleReturnWallet, k.ResolveRole(ctx, returnWalletAddr))
	require.Equal(t, types.RoleMarketMaker, k.ResolveRole(ctx, marketMakerAddr))
	require.Equal(t, types.RolePublic, k.ResolveRole(ctx, publicAddr))
}

func TestInitGenesisWithoutPreCommitmentIsInitialized(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	initContract(t, k, ctx, testGenesis(testParams(), sdkmath.ZeroInt()))

	st, err := k.GetState(ctx)
	require.NoError(t, err)
	require.True(t, st.IsInitialized)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	k, ctx, _ := setupKeeper(t)

	gs := testGenesis(testParams(), sdkmath.ZeroInt())
	gs.Owner = "not-an-address"
	require.Error(t, k.InitGenesis(ctx, gs))

	gs = testGenesis(testParams(), sdkmath.ZeroInt())
	gs.Params.PriceIncrementBps = 0
	require.Error(t, k.InitGenesis(ctx, gs))
}

func TestExportGenesisRoundtrip(t *testing.T) {
	k, ctx, _ := setupKeeper(t)
	gs := testGenesis(testParams(), sdkmath.NewInt(500))
	gs.ProfitInTime = true
	initContract(t, k, ctx, gs)

	exported, err := k.ExportGenesis(ctx)
	require.NoError(t, err)
	require.Equal(t, gs.Owner, exported.Owner)
	require.Equal(t, gs.Dao, exported.Dao)
	require.Equal(t, gs.ReturnWallet, exported.ReturnWallet)
	require.Equal(t, gs.RoyaltyRecipient, exported.RoyaltyRecipient)
	require.ElementsMatch(t, gs.MarketMakers, exported.MarketMakers)
	require.True(t, exported.OffsetLaunch.Equal(sdkmath.NewInt(500)))
	require.True(t, exported.LaunchBalance.Equal(gs.LaunchBalance))
	require.True(t, exported.LockEndTime.Equal(gs.LockEndTime))
	require.True(t, exported.ControlDay.Equal(gs.ControlDay))
	require.True(t, exported.ProfitInTime)
	require.NoError(t, exported.Validate())
}
