package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// Deposit places an asset into the unaccounted buffer. A launch deposit is
// classified as offset-aligned exactly when soldUnits equals offsetUnits
// and the unnetted pre-commitment covers the amount; the classification is
// made once, at deposit time, and never corrected retroactively.
func (k Keeper) Deposit(ctx context.Context, depositor sdk.AccAddress, asset types.Asset, amount sdkmath.Int) error {
	release, err := k.guard.enter("deposit")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, _ := contextNow(ctx)
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	if !st.IsActive {
		return types.ErrContractInactive
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}

	var denom string
	var bucket types.Bucket
	switch asset {
	case types.AssetLaunch:
		denom = params.LaunchDenom
		if st.SoldUnits.Equal(st.OffsetUnits) && st.OffsetSurplus().GTE(amount) {
			bucket = types.BucketOffsetLaunch
			st.UnaccountedOffsetLaunchBalance = st.UnaccountedOffsetLaunchBalance.Add(amount)
		} else {
			bucket = types.BucketLaunch
			st.UnaccountedLaunchBalance = st.UnaccountedLaunchBalance.Add(amount)
		}
	case types.AssetCollateral:
		denom = params.CollateralDenom
		bucket = types.BucketCollateral
		st.UnaccountedCollateralBalance = st.UnaccountedCollateralBalance.Add(amount)
	default:
		return fmt.Errorf("unknown asset: %q", asset)
	}

	coins := sdk.NewCoins(sdk.NewCoin(denom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, depositor, types.ModuleName, coins); err != nil {
		return err
	}
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeDeposit,
		sdk.NewAttribute(types.AttributeKeyCaller, depositor.String()),
		sdk.NewAttribute(types.AttributeKeyAsset, string(asset)),
		sdk.NewAttribute(types.AttributeKeyBucket, string(bucket)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// CalculateOffset drains the construction-time pre-commitment into the
// curve. Once the bucket reaches zero the contract flips its one-way
// initialized flag and this path closes permanently.
func (k Keeper) CalculateOffset(ctx context.Context, caller sdk.AccAddress, role types.Role, amount sdkmath.Int) error {
	release, err := k.guard.enter("calculate_offset")
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
	if !st.IsActive {
		return types.ErrContractInactive
	}
	if st.IsInitialized {
		return types.ErrContractAlreadyInitialized
	}

	level := accessLevel(params, st, now)
	if err := checkCalculate(level, role); err != nil {
		return err
	}
	if amount.GT(st.UnaccountedOffset) {
		return types.ErrInsufficientUnaccountedOffsetBalance.Wrapf(
			"requested %s, unaccounted offset %s", amount, st.UnaccountedOffset)
	}

	if err := applyOffsetIncrease(params, &st, amount); err != nil {
		return err
	}
	st.UnaccountedOffset = st.UnaccountedOffset.Sub(amount)
	if st.UnaccountedOffset.IsZero() {
		st.IsInitialized = true
	}
	ratchetControlDay(level, &st)

	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeCalculate,
		sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		sdk.NewAttribute(types.AttributeKeyBucket, string(types.BucketOffset)),
		sdk.NewAttribute(types.AttributeKeyProcessed, amount.String()),
		sdk.NewAttribute(types.AttributeKeyStepIndex, fmt.Sprintf("%d", st.Offset.StepIndex)),
	))
	if st.IsInitialized {
		emitEventIfPossible(sdkCtx, sdk.NewEvent(types.EventTypeContractInitialized))
	}
	return nil
}

// CalculateLaunch absorbs unaccounted launch deposits. The offset-aligned
// bucket is drained first and reclaims pre-committed units through the
// offset curve; whatever the curve cannot absorb is forwarded to the DAO.
// The plain bucket tops up the contract launch balance without moving the
// curve.
func (k Keeper) CalculateLaunch(ctx context.Context, caller sdk.AccAddress, role types.Role, amount sdkmath.Int) error {
	release, err := k.guard.enter("calculate_launch")
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
	if !st.IsActive {
		return types.ErrContractInactive
	}

	level := accessLevel(params, st, now)
	if err := checkCalculate(level, role); err != nil {
		return err
	}

	available := st.UnaccountedOffsetLaunchBalance.Add(st.UnaccountedLaunchBalance)
	if amount.GT(available) {
		return types.ErrInsufficientUnaccountedLaunchBalance.Wrapf(
			"requested %s, unaccounted launch %s", amount, available)
	}

	fromOffset := sdkmath.MinInt(amount, st.UnaccountedOffsetLaunchBalance)
	change := sdkmath.ZeroInt()
	if fromOffset.IsPositive() {
		absorbable := sdkmath.MinInt(fromOffset, st.OffsetSurplus())
		if absorbable.IsPositive() {
			if err := applyOffsetDecrease(params, &st, absorbable); err != nil {
				return err
			}
			st.LaunchBalance = st.LaunchBalance.Add(absorbable)
		}
		change = fromOffset.Sub(absorbable)
		st.UnaccountedOffsetLaunchBalance = st.UnaccountedOffsetLaunchBalance.Sub(fromOffset)
	}
	fromPlain := amount.Sub(fromOffset)
	if fromPlain.IsPositive() {
		st.UnaccountedLaunchBalance = st.UnaccountedLaunchBalance.Sub(fromPlain)
		st.LaunchBalance = st.LaunchBalance.Add(fromPlain)
	}
	ratchetControlDay(level, &st)

	if change.IsPositive() {
		dao, err := k.daoAddress(ctx)
		if err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.LaunchDenom, change))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, dao, coins); err != nil {
			return err
		}
	}
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeCalculate,
		sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		sdk.NewAttribute(types.AttributeKeyBucket, string(types.BucketOffsetLaunch)),
		sdk.NewAttribute(types.AttributeKeyProcessed, amount.String()),
		sdk.NewAttribute(types.AttributeKeyChange, change.String()),
	))
	return nil
}

// CalculateCollateral spends unaccounted collateral forward along the
// offset curve; the value remainder the curve cannot absorb is forwarded to
// the DAO as change.
func (k Keeper) CalculateCollateral(ctx context.Context, caller sdk.AccAddress, role types.Role, amount sdkmath.Int) error {
	release, err := k.guard.enter("calculate_collateral")
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
	if !st.IsActive {
		return types.ErrContractInactive
	}

	level := accessLevel(params, st, now)
	if err := checkCalculate(level, role); err != nil {
		return err
	}
	if amount.GT(st.UnaccountedCollateralBalance) {
		return types.ErrInsufficientUnaccountedCollateralBalance.Wrapf(
			"requested %s, unaccounted collateral %s", amount, st.UnaccountedCollateralBalance)
	}

	units, spent, err := applyOffsetValue(params, &st, amount)
	if err != nil {
		return err
	}
	st.UnaccountedCollateralBalance = st.UnaccountedCollateralBalance.Sub(amount)
	st.CollateralBalance = st.CollateralBalance.Add(spent)
	change := amount.Sub(spent)
	ratchetControlDay(level, &st)

	if change.IsPositive() {
		dao, err := k.daoAddress(ctx)
		if err != nil {
			return err
		}
		coins := sdk.NewCoins(sdk.NewCoin(params.CollateralDenom, change))
		if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, dao, coins); err != nil {
			return err
		}
	}
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeCalculate,
		sdk.NewAttribute(types.AttributeKeyCaller, caller.String()),
		sdk.NewAttribute(types.AttributeKeyBucket, string(types.BucketCollateral)),
		sdk.NewAttribute(types.AttributeKeyProcessed, amount.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, units.String()),
		sdk.NewAttribute(types.AttributeKeyChange, change.String()),
	))
	return nil
}
