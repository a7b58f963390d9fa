package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// ScheduleWithdrawal schedules a deferred withdrawal of one asset side.
// A prior schedule for the same asset is overwritten and its timer resets
// to now. While any schedule exists the trading gate reports Public.
func (k Keeper) ScheduleWithdrawal(ctx context.Context, caller sdk.AccAddress, role types.Role, asset types.Asset, recipient string, amount sdkmath.Int) error {
	release, err := k.guard.enter("schedule_withdrawal")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, now := contextNow(ctx)
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	if !st.IsActive {
		return types.ErrContractInactive
	}
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may schedule withdrawals")
	}
	if !amount.IsPositive() {
		return types.ErrZeroAmount
	}

	schedule := &types.DeferredWithdrawal{
		Recipient:   recipient,
		Amount:      amount,
		ScheduledAt: now,
	}
	switch asset {
	case types.AssetLaunch:
		st.LaunchWithdrawal = schedule
	case types.AssetCollateral:
		st.CollateralWithdrawal = schedule
	default:
		return types.ErrInvalidParams.Wrapf("unknown asset %q", asset)
	}

	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeWithdrawalScheduled,
		sdk.NewAttribute(types.AttributeKeyAsset, string(asset)),
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyScheduledAt, now.UTC().String()),
	))
	return nil
}

// ConfirmWithdrawal executes a schedule once the 30-day delay has elapsed.
// Confirming a collateral withdrawal of the full contract balance
// deactivates the contract permanently.
func (k Keeper) ConfirmWithdrawal(ctx context.Context, caller sdk.AccAddress, role types.Role, asset types.Asset) error {
	release, err := k.guard.enter("confirm_withdrawal")
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
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may confirm withdrawals")
	}

	var schedule *types.DeferredWithdrawal
	switch asset {
	case types.AssetLaunch:
		schedule = st.LaunchWithdrawal
	case types.AssetCollateral:
		schedule = st.CollateralWithdrawal
	default:
		return types.ErrInvalidParams.Wrapf("unknown asset %q", asset)
	}
	if schedule == nil {
		return types.ErrNoWithdrawalScheduled
	}
	if now.Before(schedule.ScheduledAt.Add(types.WithdrawalDelay)) {
		return types.ErrWithdrawalNotReady.Wrapf(
			"confirmable at %s", schedule.ScheduledAt.Add(types.WithdrawalDelay).UTC())
	}

	recipient, err := sdk.AccAddressFromBech32(schedule.Recipient)
	if err != nil {
		return err
	}

	deactivated := false
	var denom string
	switch asset {
	case types.AssetLaunch:
		denom = params.LaunchDenom
		if schedule.Amount.GT(st.LaunchBalance) {
			return types.ErrInsufficientLaunchBalance.Wrapf(
				"withdrawal %s exceeds balance %s", schedule.Amount, st.LaunchBalance)
		}
		st.LaunchBalance = st.LaunchBalance.Sub(schedule.Amount)
		st.LaunchWithdrawal = nil
	case types.AssetCollateral:
		denom = params.CollateralDenom
		if schedule.Amount.GT(st.CollateralBalance) {
			return types.ErrInsufficientCollateralBalance.Wrapf(
				"withdrawal %s exceeds balance %s", schedule.Amount, st.CollateralBalance)
		}
		if schedule.Amount.Equal(st.CollateralBalance) {
			st.IsActive = false
			deactivated = true
		}
		st.CollateralBalance = st.CollateralBalance.Sub(schedule.Amount)
		st.CollateralWithdrawal = nil
	}

	coins := sdk.NewCoins(sdk.NewCoin(denom, schedule.Amount))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, recipient, coins); err != nil {
		return err
	}
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeWithdrawalConfirmed,
		sdk.NewAttribute(types.AttributeKeyAsset, string(asset)),
		sdk.NewAttribute(types.AttributeKeyRecipient, schedule.Recipient),
		sdk.NewAttribute(types.AttributeKeyAmount, schedule.Amount.String()),
	))
	if deactivated {
		emitEventIfPossible(sdkCtx, sdk.NewEvent(
			types.EventTypeContractDeactivated,
			sdk.NewAttribute(types.AttributeKeyReason, "full collateral withdrawal"),
		))
	}
	return nil
}

// CancelWithdrawal clears a schedule without moving funds.
func (k Keeper) CancelWithdrawal(ctx context.Context, caller sdk.AccAddress, role types.Role, asset types.Asset) error {
	release, err := k.guard.enter("cancel_withdrawal")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, _ := contextNow(ctx)
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may cancel withdrawals")
	}

	switch asset {
	case types.AssetLaunch:
		if st.LaunchWithdrawal == nil {
			return types.ErrNoWithdrawalScheduled
		}
		st.LaunchWithdrawal = nil
	case types.AssetCollateral:
		if st.CollateralWithdrawal == nil {
			return types.ErrNoWithdrawalScheduled
		}
		st.CollateralWithdrawal = nil
	default:
		return types.ErrInvalidParams.Wrapf("unknown asset %q", asset)
	}

	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeWithdrawalCancelled,
		sdk.NewAttribute(types.AttributeKeyAsset, string(asset)),
	))
	return nil
}
