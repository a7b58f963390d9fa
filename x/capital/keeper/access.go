package keeper

import (
	"time"

	"github.com/proof-of-capital/capital/x/capital/types"
)

// AccessLevel is the three-way trading-access state, evaluated identically
// for trading and for every unaccounted-absorption path.
type AccessLevel int

const (
	// AccessClosed: absorption requires the owner, trading requires
	// market-maker status.
	AccessClosed AccessLevel = iota

	// AccessControlWindow: absorption is publicly callable (ratcheting the
	// control day), trading stays market-maker-only.
	AccessControlWindow

	// AccessPublic: trading and absorption are open to anyone.
	AccessPublic
)

func (a AccessLevel) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessControlWindow:
		return "control_window"
	default:
		return "closed"
	}
}

// tradingOpen reports whether public trading has opened: strictly inside
// the 60-day window before lock end, false exactly at the boundary.
func tradingOpen(now, lockEnd time.Time) bool {
	return lockEnd.Sub(now) < types.TradingOpenWindow
}

// accessLevel evaluates the gate for the current call.
func accessLevel(p types.Params, st types.ContractState, now time.Time) AccessLevel {
	if tradingOpen(now, st.LockEndTime) || st.WithdrawalScheduled() {
		return AccessPublic
	}
	controlOpen := st.ControlDay.Add(p.ControlPeriod).Add(types.ControlWindowDelay)
	if !now.Before(controlOpen) {
		return AccessControlWindow
	}
	return AccessClosed
}

// checkTrade decides whether the caller may trade at the given gate level.
func checkTrade(level AccessLevel, role types.Role) error {
	if level == AccessPublic {
		return nil
	}
	if role == types.RoleMarketMaker {
		return nil
	}
	return types.ErrTradingNotAllowedOnlyMarketMakers
}

// checkCalculate decides whether the caller may absorb unaccounted
// balances at the given gate level.
func checkCalculate(level AccessLevel, role types.Role) error {
	if level == AccessPublic || level == AccessControlWindow {
		return nil
	}
	if role == types.RoleOwner {
		return nil
	}
	return types.ErrUnauthorized.Wrap("unaccounted absorption requires the owner outside open windows")
}

// ratchetControlDay advances the control day after a successful absorption
// inside the control window. The advance is a fixed 30-day ratchet, not a
// reset to now, bounding how often control-gated absorption can widen
// public callability.
func ratchetControlDay(level AccessLevel, st *types.ContractState) {
	if level == AccessControlWindow {
		st.ControlDay = st.ControlDay.Add(types.ControlDayRatchet)
	}
}
