package types

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// PercentDivisor expresses all percentages and multipliers in basis
	// points: 10000 BPS = 100%.
	PercentDivisor int64 = 10_000

	// TradingOpenWindow is how long before lock end public trading opens.
	TradingOpenWindow = 60 * 24 * time.Hour

	// WithdrawalDelay is the deferred-withdrawal timelock.
	WithdrawalDelay = 30 * 24 * time.Hour

	// ControlWindowDelay is added to the control period before unaccounted
	// absorption becomes publicly callable.
	ControlWindowDelay = 30 * 24 * time.Hour

	// ControlDayRatchet is how far the control day advances on each
	// successful control-window absorption.
	ControlDayRatchet = 30 * 24 * time.Hour

	// MinControlPeriod and MaxControlPeriod bound the configured cadence.
	MinControlPeriod = 6 * time.Hour
	MaxControlPeriod = 30 * 24 * time.Hour
)

// Params defines the curve, profit split and window configuration of the
// capital module.
type Params struct {
	// LaunchDenom is the asset sold along the curve.
	LaunchDenom string `json:"launch_denom"`

	// CollateralDenom is the asset collected for sales and paid for buybacks.
	CollateralDenom string `json:"collateral_denom"`

	// NativeDenom is the unwrapped form of the collateral asset, used only
	// when UnwrapMode is enabled.
	NativeDenom string `json:"native_denom"`

	// InitialPrice is the step-0 price as collateral base units per launch
	// base unit, at 18-decimal precision.
	InitialPrice sdkmath.LegacyDec `json:"initial_price"`

	// PriceIncrementBps raises the price by 1 + bps/10000 per level.
	PriceIncrementBps int64 `json:"price_increment_bps"`

	// LevelIncreaseBps scales the level unit capacity while the step index
	// is at or below TrendChangeStep. Must be >= 10000.
	LevelIncreaseBps int64 `json:"level_increase_bps"`

	// LevelDecreaseBps scales the level unit capacity beyond
	// TrendChangeStep. Must be in (0, 10000].
	LevelDecreaseBps int64 `json:"level_decrease_bps"`

	// BaseLevelUnits is the unit capacity of step 0.
	BaseLevelUnits sdkmath.Int `json:"base_level_units"`

	// TrendChangeStep is the last step at which level capacity still grows.
	TrendChangeStep uint64 `json:"trend_change_step"`

	// MaxStep bounds curve growth; advancing past it fails loudly.
	MaxStep uint64 `json:"max_step"`

	// ProfitBps is the share of every buy taken as profit.
	ProfitBps int64 `json:"profit_bps"`

	// RoyaltyBps is the royalty share of profit. The creator share is
	// derived as PercentDivisor - RoyaltyBps, so the two always sum to
	// the divisor.
	RoyaltyBps int64 `json:"royalty_bps"`

	// ControlPeriod is the absorption cadence, bounded [6h, 30d].
	ControlPeriod time.Duration `json:"control_period"`

	// UnwrapMode pays buybacks in NativeDenom after unwrapping.
	UnwrapMode bool `json:"unwrap_mode"`
}

// DefaultParams returns conservative curve parameters.
func DefaultParams() Params {
	return Params{
		LaunchDenom:       "ulaunch",
		CollateralDenom:   "ucollateral",
		NativeDenom:       "unative",
		InitialPrice:      sdkmath.LegacyOneDec(),
		PriceIncrementBps: 100,   // +1% per level
		LevelIncreaseBps:  11_000, // x1.10 per level before the trend change
		LevelDecreaseBps:  9_000,  // x0.90 per level after the trend change
		BaseLevelUnits:    sdkmath.NewInt(1_000_000),
		TrendChangeStep:   500,
		MaxStep:           10_000,
		ProfitBps:         1_000, // 10% of every buy
		RoyaltyBps:        2_000, // 20% of profit
		ControlPeriod:     7 * 24 * time.Hour,
		UnwrapMode:        false,
	}
}

// CreatorBps returns the creator share of profit. Together with RoyaltyBps
// it always sums to PercentDivisor.
func (p Params) CreatorBps() int64 {
	return PercentDivisor - p.RoyaltyBps
}

// PriceFactor returns the per-level price multiplier 1 + increment/divisor.
func (p Params) PriceFactor() sdkmath.LegacyDec {
	return sdkmath.LegacyNewDec(PercentDivisor + p.PriceIncrementBps).
		QuoInt64(PercentDivisor)
}

// Validate checks that the parameters are well-formed.
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.LaunchDenom); err != nil {
		return fmt.Errorf("invalid launch denom: %w", err)
	}
	if err := sdk.ValidateDenom(p.CollateralDenom); err != nil {
		return fmt.Errorf("invalid collateral denom: %w", err)
	}
	if p.LaunchDenom == p.CollateralDenom {
		return fmt.Errorf("launch and collateral denoms must differ")
	}
	if p.UnwrapMode {
		if err := sdk.ValidateDenom(p.NativeDenom); err != nil {
			return fmt.Errorf("invalid native denom: %w", err)
		}
	}
	if p.InitialPrice.IsNil() || !p.InitialPrice.IsPositive() {
		return fmt.Errorf("initial price must be positive")
	}
	if p.PriceIncrementBps <= 0 || p.PriceIncrementBps > PercentDivisor {
		return fmt.Errorf("price increment must be in (0, %d] BPS, got %d", PercentDivisor, p.PriceIncrementBps)
	}
	if p.LevelIncreaseBps < PercentDivisor {
		return fmt.Errorf("level increase must be at least %d BPS, got %d", PercentDivisor, p.LevelIncreaseBps)
	}
	if p.LevelDecreaseBps <= 0 || p.LevelDecreaseBps > PercentDivisor {
		return fmt.Errorf("level decrease must be in (0, %d] BPS, got %d", PercentDivisor, p.LevelDecreaseBps)
	}
	if p.BaseLevelUnits.IsNil() || !p.BaseLevelUnits.IsPositive() {
		return fmt.Errorf("base level units must be positive")
	}
	if p.MaxStep == 0 {
		return fmt.Errorf("max step must be positive")
	}
	if p.TrendChangeStep >= p.MaxStep {
		return fmt.Errorf("trend change step %d must be below max step %d", p.TrendChangeStep, p.MaxStep)
	}
	if p.ProfitBps < 0 || p.ProfitBps > PercentDivisor {
		return fmt.Errorf("profit share must be in [0, %d] BPS, got %d", PercentDivisor, p.ProfitBps)
	}
	if p.RoyaltyBps < 0 || p.RoyaltyBps > PercentDivisor {
		return fmt.Errorf("royalty share must be in [0, %d] BPS, got %d", PercentDivisor, p.RoyaltyBps)
	}
	if p.ControlPeriod < MinControlPeriod || p.ControlPeriod > MaxControlPeriod {
		return fmt.Errorf("control period must be in [%s, %s], got %s", MinControlPeriod, MaxControlPeriod, p.ControlPeriod)
	}
	return nil
}
