package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigRoundTrips(t *testing.T) {
	def := Default()

	b, err := ConfigComment(def)
	require.NoError(t, err)

	cfg, err := FromReader(strings.NewReader(string(b)), nil)
	require.NoError(t, err)
	require.Equal(t, def, cfg)
}

func TestFromReaderOverlaysDefaults(t *testing.T) {
	cfg, err := FromReader(strings.NewReader(`
[Chain]
  RPCURL = "http://127.0.0.1:7546"

[Market]
  SettlingDelay = "5s"

[IPFS]
  Gateways = ["https://mirror.example/ipfs/"]
`), Default())
	require.NoError(t, err)

	require.Equal(t, "http://127.0.0.1:7546", cfg.Chain.RPCURL)
	require.EqualValues(t, 296, cfg.Chain.ChainID)
	require.Equal(t, Duration(5*time.Second), cfg.Market.SettlingDelay)
	require.Equal(t, []string{"https://mirror.example/ipfs/"}, cfg.IPFS.Gateways)
	require.Equal(t, Default().Contracts, cfg.Contracts)
}

func TestFromFileMissing(t *testing.T) {
	def := Default()
	cfg, err := FromFile(filepath.Join(t.TempDir(), "config.toml"), def)
	require.NoError(t, err)
	require.Same(t, def, cfg)

	_, err = FromFile(filepath.Join(t.TempDir(), "config.toml"), nil)
	require.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	require.NoError(t, WriteFile(path, Default()))
	require.Error(t, WriteFile(path, Default()), "existing file is not overwritten")

	cfg, err := FromFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PEERMART_CHAIN_RPC_URL", "http://node:7546")
	t.Setenv("PEERMART_MARKET_SETTLING_DELAY", "3s")
	t.Setenv("PEERMART_IPFS_GATEWAYS", "https://a/ipfs/,https://b/ipfs/")
	t.Setenv("PEERMART_GATEWAY_RATE_LIMIT", "7")

	cfg := Default()
	require.NoError(t, ApplyEnv(cfg))

	require.Equal(t, "http://node:7546", cfg.Chain.RPCURL)
	require.Equal(t, Duration(3*time.Second), cfg.Market.SettlingDelay)
	require.Equal(t, []string{"https://a/ipfs/", "https://b/ipfs/"}, cfg.IPFS.Gateways)
	require.EqualValues(t, 7, cfg.Gateway.RateLimit)
	require.Equal(t, Default().Contracts, cfg.Contracts, "unset variables keep their values")
}

func TestDurationText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	require.Equal(t, Duration(90*time.Second), d)

	b, err := d.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "1m30s", string(b))

	require.Error(t, d.UnmarshalText([]byte("soon")))
}
