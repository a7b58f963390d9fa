package keeper

import (
	"context"
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// SetMarketMaker grants or revokes market-maker status. Owner only.
func (k Keeper) SetMarketMaker(ctx context.Context, role types.Role, addr string, enabled bool) error {
	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may manage market makers")
	}
	if enabled {
		if err := k.MarketMakers.Set(ctx, addr); err != nil {
			return err
		}
	} else {
		if err := k.MarketMakers.Remove(ctx, addr); err != nil {
			return err
		}
	}
	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeMarketMakerSet,
		sdk.NewAttribute(types.AttributeKeyCaller, addr),
		sdk.NewAttribute(types.AttributeKeyEnabled, fmt.Sprintf("%t", enabled)),
	))
	return nil
}

// SetProfitInTime switches between accumulating and immediate profit
// distribution. The royalty collaborator is notified best-effort: a notify
// failure is captured into an event and never aborts the switch.
func (k Keeper) SetProfitInTime(ctx context.Context, role types.Role, enabled bool) error {
	release, err := k.guard.enter("set_profit_in_time")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may change the profit mode")
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	st.ProfitInTime = enabled
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	if k.royaltyHook != nil {
		if err := k.royaltyHook.Notify(ctx, enabled); err != nil {
			k.Logger().Error("royalty notification failed", "err", err)
			emitEventIfPossible(sdkCtx, sdk.NewEvent(
				types.EventTypeRoyaltyNotifyFailed,
				sdk.NewAttribute(types.AttributeKeyReason, err.Error()),
			))
		}
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeProfitModeChanged,
		sdk.NewAttribute(types.AttributeKeyProfitInTime, fmt.Sprintf("%t", enabled)),
	))
	return nil
}

// SetProfitPercent adjusts the share of every buy taken as profit.
// Owner only.
func (k Keeper) SetProfitPercent(ctx context.Context, role types.Role, profitBps int64) error {
	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may change profit shares")
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	params.ProfitBps = profitBps
	if err := k.SetParams(ctx, params); err != nil {
		return err
	}
	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypePercentChanged,
		sdk.NewAttribute(types.AttributeKeyAmount, fmt.Sprintf("%d", profitBps)),
	))
	return nil
}

// SetRoyaltyRecipient redirects the royalty share of future profit. The
// change applies to payouts from this point on; already-accumulated
// balances follow the new recipient on claim. Owner only.
func (k Keeper) SetRoyaltyRecipient(ctx context.Context, role types.Role, recipient string) error {
	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may change the royalty recipient")
	}
	if err := k.Royalty.Set(ctx, recipient); err != nil {
		return err
	}
	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeRoyaltyRecipientSet,
		sdk.NewAttribute(types.AttributeKeyRecipient, recipient),
	))
	return nil
}

// SetRoyaltyPercent adjusts the royalty share of profit. The creator share
// is always the divisor complement, so the two shares sum to the divisor
// after any sequence of changes.
func (k Keeper) SetRoyaltyPercent(ctx context.Context, role types.Role, royaltyBps int64) error {
	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner {
		return types.ErrUnauthorized.Wrap("only the owner may change profit shares")
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	params.RoyaltyBps = royaltyBps
	if err := k.SetParams(ctx, params); err != nil {
		return err
	}
	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypePercentChanged,
		sdk.NewAttribute(types.AttributeKeyAmount, fmt.Sprintf("%d", royaltyBps)),
	))
	return nil
}

// ClaimProfit pays out the profit accumulated under profit-in-time mode.
// Owner and DAO may trigger it; both buckets pay to their recipients.
func (k Keeper) ClaimProfit(ctx context.Context, role types.Role) error {
	release, err := k.guard.enter("claim_profit")
	if err != nil {
		return err
	}
	defer release()

	sdkCtx, _ := contextNow(ctx)
	if role != types.RoleOwner && role != types.RoleDao {
		return types.ErrUnauthorized.Wrap("only the owner or dao may claim accumulated profit")
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	st, err := k.GetState(ctx)
	if err != nil {
		return err
	}
	creatorShare := st.OwnerProfitBalance
	royaltyShare := st.RoyaltyProfitBalance
	if creatorShare.IsZero() && royaltyShare.IsZero() {
		return nil
	}
	st.OwnerProfitBalance = sdkmath.ZeroInt()
	st.RoyaltyProfitBalance = sdkmath.ZeroInt()

	if err := k.distributeProfit(ctx, params, creatorShare, royaltyShare); err != nil {
		return err
	}
	if err := k.setState(ctx, st); err != nil {
		return err
	}

	emitEventIfPossible(sdkCtx, sdk.NewEvent(
		types.EventTypeProfitClaimed,
		sdk.NewAttribute(types.AttributeKeyCreatorShare, creatorShare.String()),
		sdk.NewAttribute(types.AttributeKeyRoyaltyShare, royaltyShare.String()),
	))
	return nil
}
