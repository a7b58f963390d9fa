package types

// Event type constants
const (
	EventTypeBuy                  = "capital_buy"
	EventTypeSell                 = "capital_sell"
	EventTypeDeposit              = "capital_deposit"
	EventTypeCalculate            = "capital_calculate"
	EventTypeWithdrawalScheduled  = "capital_withdrawal_scheduled"
	EventTypeWithdrawalConfirmed  = "capital_withdrawal_confirmed"
	EventTypeWithdrawalCancelled  = "capital_withdrawal_cancelled"
	EventTypeContractDeactivated  = "capital_contract_deactivated"
	EventTypeContractInitialized  = "capital_contract_initialized"
	EventTypeProfitModeChanged    = "capital_profit_mode_changed"
	EventTypeProfitClaimed        = "capital_profit_claimed"
	EventTypeRoyaltyNotifyFailed  = "capital_royalty_notify_failed"
	EventTypeMarketMakerSet       = "capital_market_maker_set"
	EventTypePercentChanged       = "capital_percent_changed"
	EventTypeRoyaltyRecipientSet  = "capital_royalty_recipient_set"

	// Attribute keys
	AttributeKeyCaller       = "caller"
	AttributeKeyRole         = "role"
	AttributeKeyAmount       = "amount"
	AttributeKeyCost         = "cost"
	AttributeKeyRefund       = "refund"
	AttributeKeyNetted       = "netted"
	AttributeKeyAsset        = "asset"
	AttributeKeyBucket       = "bucket"
	AttributeKeyProcessed    = "processed"
	AttributeKeyChange       = "change"
	AttributeKeyStepIndex    = "step_index"
	AttributeKeyPrice        = "price"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyScheduledAt  = "scheduled_at"
	AttributeKeyEnabled      = "enabled"
	AttributeKeyProfitInTime = "profit_in_time"
	AttributeKeyCreatorShare = "creator_share"
	AttributeKeyRoyaltyShare = "royalty_share"
	AttributeKeyReason       = "reason"
)
