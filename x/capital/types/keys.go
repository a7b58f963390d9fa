package types

const (
	// ModuleName defines the module name. The capital module runs the
	// step-function bonding-curve sale/buyback engine with dual-ledger
	// offset accounting.
	ModuleName = "capital"

	// StoreKey defines the primary module store key.
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key.
	RouterKey = ModuleName
)

var (
	// ParamsKey stores the module parameters.
	ParamsKey = []byte{0x01}

	// ContractStateKey stores the full curve/ledger aggregate.
	ContractStateKey = []byte{0x02}

	// OwnerKey stores the contract owner address.
	OwnerKey = []byte{0x03}

	// DaoKey stores the DAO address receiving absorption change.
	DaoKey = []byte{0x04}

	// ReturnWalletKey stores the return wallet address.
	ReturnWalletKey = []byte{0x05}

	// RoyaltyRecipientKey stores the royalty profit recipient address.
	RoyaltyRecipientKey = []byte{0x06}

	// MarketMakerKeyPrefix is the prefix for the market maker set.
	MarketMakerKeyPrefix = []byte{0x07}
)
