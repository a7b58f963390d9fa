package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// Buy purchases launch units along the live curve. The cost is computed
// before any transfer, collateral is pulled from the buyer, launch units
// are pushed out, and the received collateral splits into reserve and
// profit per the configured shares.
func (k Keeper) Buy(ctx context.Context, buyer sdk.AccAddress, role types.Role, amount sdkmath.Int) error {
	release, err := k.guard.enter("buy")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, now := contextNow(ctx)
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if !st.IsActive {
		return types.ErrContractInactive
	}
	if err := checkTrade(accessLevel(params, st, now), role); err != nil {
		return err
	}
	if amount.GT(st.LaunchBalance) {
		return types.ErrInsufficientLaunchBalance.Wrapf(
			"requested %s, launch balance %s", amount, st.LaunchBalance)
	}

	cost, err := recordSale(params, &st, amount)
	if err != nil {
		return err
	}
	if !cost.IsPositive() {
		return types.ErrDustTrade
	}
	st.LaunchBalance = st.LaunchBalance.Sub(amount)

	profit := cost.MulRaw(params.ProfitBps).QuoRaw(types.PercentDivisor)
	royaltyShare := profit.MulRaw(params.RoyaltyBps).QuoRaw(types.PercentDivisor)
	creatorShare := profit.Sub(royaltyShare)
	st.CollateralBalance = st.CollateralBalance.Add(cost.Sub(profit))

	if err := k.collectCollateral(ctx, params, buyer, cost); err != nil {
		return err
	}
	launch := sdk.NewCoins(sdk.NewCoin(params.LaunchDenom, amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, buyer, launch); err != nil {
		return err
	}

	if st.ProfitInTime {
		st.OwnerProfitBalance = st.OwnerProfitBalance.Add(creatorShare)
		st.RoyaltyProfitBalance = st.RoyaltyProfitBalance.Add(royaltyShare)
	} else {
		if err := k.distributeProfit(ctx, params, creatorShare, royaltyShare); err != nil {
			return err
		}
	}

	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeBuy,
		sdk.NewAttribute(types.AttributeKeyCaller, buyer.String()),
		sdk.NewAttribute(types.AttributeKeyRole, string(role)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyCost, cost.String()),
		sdk.NewAttribute(types.AttributeKeyStepIndex, fmt.Sprintf("%d", st.Live.StepIndex)),
		sdk.NewAttribute(types.AttributeKeyPrice, st.Live.PricePerUnit.String()),
	))
	return nil
}

// Sell returns launch units to the contract. A return-wallet sale always
// succeeds while the contract is active: it nets against the issuer's
// unnetted pre-commitment first and only the excess is paid from
// collateral at the mirrored step prices. Any other seller is bounded by
// the buyback availability and paid entirely from collateral.
func (k Keeper) Sell(ctx context.Context, seller sdk.AccAddress, role types.Role, amount sdkmath.Int) error {
	release, err := k.guard.enter("sell")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, now := contextNow(ctx)
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}
	if !st.IsActive {
		return types.ErrContractInactive
	}

	netted := sdkmath.ZeroInt()
	refund := sdkmath.ZeroInt()
	if role == types.RoleReturnWallet {
		netted, err = netAgainstOffset(&st, amount)
		if err != nil {
			return err
		}
		if excess := amount.Sub(netted); excess.IsPositive() {
			refund, err = recordBuyback(params, &st, excess)
			if err != nil {
				return err
			}
		}
	} else {
		if err := checkTrade(accessLevel(params, st, now), role); err != nil {
			return err
		}
		available := st.AvailableForBuyback()
		if !available.IsPositive() {
			return types.ErrNoUnitsAvailableForBuyback
		}
		if amount.GT(available) {
			return types.ErrInsufficientUnitsForBuyback.Wrapf(
				"requested %s, available %s", amount, available)
		}
		refund, err = recordBuyback(params, &st, amount)
		if err != nil {
			return err
		}
	}

	if refund.GT(st.CollateralBalance) {
		return types.ErrInsufficientCollateralBalance.Wrapf(
			"refund %s exceeds collateral balance %s", refund, st.CollateralBalance)
	}
	st.CollateralBalance = st.CollateralBalance.Sub(refund)
	st.LaunchBalance = st.LaunchBalance.Add(amount)

	launch := sdk.NewCoins(sdk.NewCoin(params.LaunchDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, seller, types.ModuleName, launch); err != nil {
		return err
	}
	if err := k.payCollateral(ctx, params, seller, refund); err != nil {
		return err
	}

	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeSell,
		sdk.NewAttribute(types.AttributeKeyCaller, seller.String()),
		sdk.NewAttribute(types.AttributeKeyRole, string(role)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyNetted, netted.String()),
		sdk.NewAttribute(types.AttributeKeyRefund, refund.String()),
		sdk.NewAttribute(types.AttributeKeyStepIndex, fmt.Sprintf("%d", st.Live.StepIndex)),
	))
	return nil
}

// collectCollateral pulls a buy's cost from the buyer. When unwrap mode is
// on the buyer pays in the native denom and the receipt is wrapped into the
// collateral denom the reserve is held in.
func (k Keeper) collectCollateral(ctx context.Context, params types.Params, from sdk.AccAddress, amount sdkmath.Int) error {
	denom := params.CollateralDenom
	if params.UnwrapMode && k.wrapKeeper != nil {
		denom = params.NativeDenom
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, from, types.ModuleName, coins); err != nil {
		return err
	}
	if params.UnwrapMode && k.wrapKeeper != nil {
		return k.wrapKeeper.Wrap(ctx, types.ModuleName, sdk.NewCoin(params.NativeDenom, amount))
	}
	return nil
}

// payCollateral pays a buyback refund, unwrapping to the native denom when
// unwrap mode is on.
func (k Keeper) payCollateral(ctx context.Context, params types.Params, to sdk.AccAddress, amount sdkmath.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	denom := params.CollateralDenom
	if params.UnwrapMode && k.wrapKeeper != nil {
		if err := k.wrapKeeper.Unwrap(ctx, types.ModuleName, sdk.NewCoin(params.CollateralDenom, amount)); err != nil {
			return err
		}
		denom = params.NativeDenom
	}
	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	return k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, coins)
}

// distributeProfit transfers the profit shares immediately.
func (k Keeper) distributeProfit(ctx context.Context, params types.Params, creatorShare, royaltyShare sdkmath.Int) error {
	if creatorShare.IsPositive() {
		owner, err := k.Owner.Get(ctx)
		if err != nil {
			return fmt.Errorf("owner address not set")
		}
		ownerAddr, err := sdk.AccAddressFromBech32(owner)
		if err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.CollateralDenom, creatorShare))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, ownerAddr, coins); err != nil {
			return err
		}
	}
	if royaltyShare.IsPositive() {
		royalty, err := k.Royalty.Get(ctx)
		if err != nil {
			return fmt.Errorf("royalty recipient not set")
		}
		royaltyAddr, err := sdk.AccAddressFromBech32(royalty)
		if err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.CollateralDenom, royaltyShare))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, royaltyAddr, coins); err != nil {
			return err
		}
	}
	return nil
}
