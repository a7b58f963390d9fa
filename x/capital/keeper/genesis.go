package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// InitGenesis constructs the contract: curve origins, role addresses and
// the issuer pre-commitment. A positive offsetLaunch creates the
// unaccounted offset bucket and leaves the contract uninitialized until it
// is absorbed.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, gs.Params); err != nil {
		return err
	}
	if err := k.Owner.Set(ctx, gs.Owner); err != nil {
		return err
	}
	if err := k.Dao.Set(ctx, gs.Dao); err != nil {
		return err
	}
	if err := k.ReturnWallet.Set(ctx, gs.ReturnWallet); err != nil {
		return err
	}
	if err := k.Royalty.Set(ctx, gs.RoyaltyRecipient); err != nil {
		return err
	}
	for _, mm := range gs.MarketMakers {
		if err := k.MarketMakers.Set(ctx, mm); err != nil {
			return err
		}
	}

	st := types.ContractState{
		Live:   NewStepState(gs.Params),
		Offset: NewStepState(gs.Params),

		SoldUnits:   sdkmath.ZeroInt(),
		EarnedUnits: sdkmath.ZeroInt(),
		OffsetUnits: sdkmath.ZeroInt(),

		UnaccountedOffset:              gs.OffsetLaunch,
		UnaccountedLaunchBalance:       sdkmath.ZeroInt(),
		UnaccountedOffsetLaunchBalance: sdkmath.ZeroInt(),
		UnaccountedCollateralBalance:   sdkmath.ZeroInt(),

		LaunchBalance:     gs.LaunchBalance,
		CollateralBalance: sdkmath.ZeroInt(),

		OwnerProfitBalance:   sdkmath.ZeroInt(),
		RoyaltyProfitBalance: sdkmath.ZeroInt(),

		ProfitInTime:  gs.ProfitInTime,
		IsActive:      true,
		IsInitialized: gs.OffsetLaunch.IsZero(),

		LockEndTime: gs.LockEndTime,
		ControlDay:  gs.ControlDay,
	}
	return k.setState(ctx, st)
}

// ExportGenesis returns the constructor shape of the module. Mid-life curve
// positions live in the contract state item and are not re-constructable
// through genesis, matching the one-shot nature of the contract.
func (k Keeper) ExportGenesis(ctx context.Context) (types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	owner, err := k.Owner.Get(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	dao, err := k.Dao.Get(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	returnWallet, err := k.ReturnWallet.Get(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	royalty, err := k.Royalty.Get(ctx)
	if err != nil {
		return types.GenesisState{}, err
	}
	var marketMakers []string
	if err := k.MarketMakers.Walk(ctx, nil, func(addr string) (bool, error) {
		marketMakers = append(marketMakers, addr)
		return false, nil
	}); err != nil {
		return types.GenesisState{}, err
	}

	return types.GenesisState{
		Params:           params,
		Owner:            owner,
		Dao:              dao,
		ReturnWallet:     returnWallet,
		RoyaltyRecipient: royalty,
		MarketMakers:     marketMakers,
		OffsetLaunch:     st.UnaccountedOffset,
		LaunchBalance:    st.LaunchBalance,
		LockEndTime:      st.LockEndTime,
		ControlDay:       st.ControlDay,
		ProfitInTime:     st.ProfitInTime,
	}, nil
}
