package types

import (
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
)

// Asset identifies one side of the contract's holdings.
type Asset string

const (
	AssetLaunch     Asset = "launch"
	AssetCollateral Asset = "collateral"
)

// Validate checks the asset name.
func (a Asset) Validate() error {
	switch a {
	case AssetLaunch, AssetCollateral:
		return nil
	}
	return fmt.Errorf("unknown asset: %q", a)
}

// Bucket names an unaccounted balance bucket.
type Bucket string

const (
	BucketOffset       Bucket = "offset"
	BucketLaunch       Bucket = "launch"
	BucketOffsetLaunch Bucket = "offset_launch"
	BucketCollateral   Bucket = "collateral"
)

// Role is the caller identity resolved once per call and passed into the
// decision functions.
type Role string

const (
	RoleOwner        Role = "owner"
	RoleDao          Role = "dao"
	RoleMarketMaker  Role = "market_maker"
	RoleReturnWallet Role = "return_wallet"
	RolePublic       Role = "public"
)

// StepState is one position on the step curve. The module keeps two
// instances: the live curve and the offset shadow curve.
type StepState struct {
	// StepIndex is the current level, starting at 0.
	StepIndex uint64 `json:"step_index"`

	// PricePerUnit is the level price at 18-decimal precision.
	PricePerUnit sdkmath.LegacyDec `json:"price_per_unit"`

	// UnitsPerLevel is the unit capacity of the current level.
	UnitsPerLevel sdkmath.Int `json:"units_per_level"`

	// RemainderInLevel is how many units of the current level are still
	// unsold. Always 0 <= RemainderInLevel <= UnitsPerLevel.
	RemainderInLevel sdkmath.Int `json:"remainder_in_level"`
}

// Validate checks the step-state invariant.
func (s StepState) Validate() error {
	if s.PricePerUnit.IsNil() || !s.PricePerUnit.IsPositive() {
		return fmt.Errorf("step %d: price must be positive", s.StepIndex)
	}
	if s.UnitsPerLevel.IsNil() || !s.UnitsPerLevel.IsPositive() {
		return fmt.Errorf("step %d: units per level must be positive", s.StepIndex)
	}
	if s.RemainderInLevel.IsNil() || s.RemainderInLevel.IsNegative() || s.RemainderInLevel.GT(s.UnitsPerLevel) {
		return fmt.Errorf("step %d: remainder %s out of [0, %s]", s.StepIndex, s.RemainderInLevel, s.UnitsPerLevel)
	}
	return nil
}

// DeferredWithdrawal is a scheduled asset withdrawal. Confirmation becomes
// possible WithdrawalDelay after ScheduledAt.
type DeferredWithdrawal struct {
	Recipient   string      `json:"recipient"`
	Amount      sdkmath.Int `json:"amount"`
	ScheduledAt time.Time   `json:"scheduled_at"`
}

// ContractState is the single owned aggregate holding every curve, ledger
// and timelock counter. It is loaded once at the start of each entry point
// and persisted once at the end, so a failed call commits nothing.
type ContractState struct {
	Live   StepState `json:"live"`
	Offset StepState `json:"offset"`

	SoldUnits   sdkmath.Int `json:"sold_units"`
	EarnedUnits sdkmath.Int `json:"earned_units"`
	OffsetUnits sdkmath.Int `json:"offset_units"`

	// UnaccountedOffset is the construction-time pre-commitment still
	// awaiting absorption. Draining it to zero initializes the contract.
	UnaccountedOffset              sdkmath.Int `json:"unaccounted_offset"`
	UnaccountedLaunchBalance       sdkmath.Int `json:"unaccounted_launch_balance"`
	UnaccountedOffsetLaunchBalance sdkmath.Int `json:"unaccounted_offset_launch_balance"`
	UnaccountedCollateralBalance   sdkmath.Int `json:"unaccounted_collateral_balance"`

	LaunchBalance     sdkmath.Int `json:"launch_balance"`
	CollateralBalance sdkmath.Int `json:"collateral_balance"`

	// Profit accumulated while profit-in-time mode is on.
	OwnerProfitBalance   sdkmath.Int `json:"owner_profit_balance"`
	RoyaltyProfitBalance sdkmath.Int `json:"royalty_profit_balance"`

	ProfitInTime  bool `json:"profit_in_time"`
	IsActive      bool `json:"is_active"`
	IsInitialized bool `json:"is_initialized"`

	LockEndTime time.Time `json:"lock_end_time"`
	ControlDay  time.Time `json:"control_day"`

	LaunchWithdrawal     *DeferredWithdrawal `json:"launch_withdrawal,omitempty"`
	CollateralWithdrawal *DeferredWithdrawal `json:"collateral_withdrawal,omitempty"`
}

// AvailableForBuyback is soldUnits - max(offsetUnits, earnedUnits).
func (s ContractState) AvailableForBuyback() sdkmath.Int {
	return s.SoldUnits.Sub(sdkmath.MaxInt(s.OffsetUnits, s.EarnedUnits))
}

// OffsetSurplus is the part of the issuer pre-commitment not yet netted by
// return-wallet sales, offsetUnits - earnedUnits floored at zero.
func (s ContractState) OffsetSurplus() sdkmath.Int {
	if s.OffsetUnits.GT(s.EarnedUnits) {
		return s.OffsetUnits.Sub(s.EarnedUnits)
	}
	return sdkmath.ZeroInt()
}

// WithdrawalScheduled reports whether either asset has a pending schedule.
func (s ContractState) WithdrawalScheduled() bool {
	return s.LaunchWithdrawal != nil || s.CollateralWithdrawal != nil
}

// CheckLedger asserts the ledger invariants after a mutation. A violation
// is an unrecoverable defect; the caller must abort without repair.
func (s ContractState) CheckLedger() error {
	if s.SoldUnits.IsNegative() || s.EarnedUnits.IsNegative() || s.OffsetUnits.IsNegative() {
		return fmt.Errorf("%w: negative counter sold=%s earned=%s offset=%s",
			ErrLedgerInconsistent, s.SoldUnits, s.EarnedUnits, s.OffsetUnits)
	}
	if s.EarnedUnits.GT(s.SoldUnits) {
		return fmt.Errorf("%w: earned %s exceeds sold %s", ErrLedgerInconsistent, s.EarnedUnits, s.SoldUnits)
	}
	if s.OffsetUnits.GT(s.SoldUnits) {
		return fmt.Errorf("%w: offset %s exceeds sold %s", ErrLedgerInconsistent, s.OffsetUnits, s.SoldUnits)
	}
	if s.AvailableForBuyback().IsNegative() {
		return fmt.Errorf("%w: negative buyback availability", ErrLedgerInconsistent)
	}
	return nil
}
