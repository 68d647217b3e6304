package config

// Client is the configuration of a marketplace client.
type Client struct {
	Chain     Chain
	Contracts Contracts
	Wallet    Wallet
	Gateway   Gateway
	Market    Market
	IPFS      IPFS
	Metrics   Metrics
}

// Chain describes the network the contracts are deployed on. It is offered to
// the wallet when the network is unknown to it.
type Chain struct {
	ChainID     uint64 `envconfig:"chain_id"`
	ChainName   string `envconfig:"chain_name"`
	RPCURL      string `envconfig:"rpc_url"`
	ExplorerURL string `envconfig:"explorer_url"`

	CurrencyName     string `envconfig:"currency_name"`
	CurrencySymbol   string `envconfig:"currency_symbol"`
	CurrencyDecimals int    `envconfig:"currency_decimals"`
}

type Contracts struct {
	// Marketplace is the address of the escrow marketplace contract.
	Marketplace string
	// Stablecoin is the address of the token prices are paid in.
	Stablecoin string
}

type Wallet struct {
	// KeystoreDir holds the encrypted account keys. An empty value means no
	// signing provider is available and the client is read-only.
	KeystoreDir string `envconfig:"keystore_dir"`
	// Account selects one keystore account when there are several.
	Account string
	// PassphraseEnv names an environment variable holding the keystore
	// passphrase. When unset the passphrase is prompted for.
	PassphraseEnv string `envconfig:"passphrase_env"`
}

type Gateway struct {
	// RateLimit is the number of contract reads per second, 0 for no limit.
	RateLimit        int64    `envconfig:"rate_limit"`
	RateLimitTimeout Duration `envconfig:"rate_limit_timeout"`
	// ReceiptPollInterval is how often a submitted transaction is checked.
	ReceiptPollInterval Duration `envconfig:"receipt_poll_interval"`
	// ConfirmTimeout bounds the wait for a transaction receipt.
	ConfirmTimeout Duration `envconfig:"confirm_timeout"`
}

type Market struct {
	// SettleAttempts bounds how often a new listing is polled for before
	// falling back to SettlingDelay.
	SettleAttempts     int      `envconfig:"settle_attempts"`
	SettlePollInterval Duration `envconfig:"settle_poll_interval"`
	SettlingDelay      Duration `envconfig:"settling_delay"`
}

type IPFS struct {
	APIURL       string   `envconfig:"api_url"`
	Gateways     []string
	FetchTimeout Duration `envconfig:"fetch_timeout"`
}

type Metrics struct {
	// ListenAddress serves /debug/metrics when set, e.g. "127.0.0.1:9464".
	ListenAddress string `envconfig:"listen_address"`
}
