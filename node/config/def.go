package config

import (
	"encoding"
	"time"

	"github.com/peermart/peermart-go/build"
)

// Default returns the default config
func Default() *Client {
	return &Client{
		Chain: Chain{
			ChainID:          build.TargetChainID,
			ChainName:        build.TargetChainName,
			RPCURL:           build.TargetRPCURL,
			ExplorerURL:      build.TargetExplorerURL,
			CurrencyName:     build.NativeCurrencyName,
			CurrencySymbol:   build.NativeCurrencySymbol,
			CurrencyDecimals: build.NativeCurrencyDecimals,
		},
		Contracts: Contracts{
			Marketplace: build.MarketplaceAddress,
			Stablecoin:  build.StablecoinAddress,
		},
		Wallet: Wallet{
			KeystoreDir:   "~/.peermart/keystore",
			PassphraseEnv: "PEERMART_PASSPHRASE",
		},
		Gateway: Gateway{
			RateLimit:           20,
			RateLimitTimeout:    Duration(5 * time.Second),
			ReceiptPollInterval: Duration(build.ReceiptPollInterval),
			ConfirmTimeout:      Duration(2 * time.Minute),
		},
		Market: Market{
			SettleAttempts:     build.SettleAttempts,
			SettlePollInterval: Duration(build.SettlePollInterval),
			SettlingDelay:      Duration(build.SettlingDelay),
		},
		IPFS: IPFS{
			APIURL:       build.IPFSAPIURL,
			Gateways:     append([]string{}, build.IPFSGateways...),
			FetchTimeout: Duration(20 * time.Second),
		},
	}
}

var _ encoding.TextMarshaler = (*Duration)(nil)
var _ encoding.TextUnmarshaler = (*Duration)(nil)

// Duration is a wrapper type for time.Duration
// for decoding and encoding from/to TOML
type Duration time.Duration

// UnmarshalText implements interface for TOML decoding
func (dur *Duration) UnmarshalText(text []byte) error {
	d, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*dur = Duration(d)
	return err
}

func (dur Duration) MarshalText() ([]byte, error) {
	d := time.Duration(dur)
	return []byte(d.String()), nil
}
