package node

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/notify"
)

func testConfig() *config.Client {
	cfg := config.Default()
	cfg.Chain.RPCURL = "http://127.0.0.1:1/rpc"
	cfg.Wallet.KeystoreDir = ""
	return cfg
}

func TestNewReadOnlyClient(t *testing.T) {
	ctx := context.Background()
	rec := &notify.Recorder{}

	var c Client
	stop, err := New(ctx,
		ClientAPI(&c),
		Config(testConfig()),
		Notifications(rec),
	)
	require.NoError(t, err)
	defer stop(ctx) //nolint:errcheck

	require.False(t, c.Wallet.Capable())
	require.Nil(t, c.Wallet.Session())
	require.Equal(t, wallet.Disconnected, c.Wallet.State())
	require.EqualValues(t, build.TargetChainID, c.Target.ChainID)
	require.Equal(t, build.MarketplaceAddress, c.Addresses.Marketplace.Hex())
	require.False(t, c.Gateway.Binding().Writable())
	require.Same(t, rec, c.Notify)

	_, err = c.Wallet.Connect(ctx)
	require.ErrorIs(t, err, wallet.ErrCapabilityMissing)
}

func TestNewRejectsBadAddresses(t *testing.T) {
	cfg := testConfig()
	cfg.Contracts.Stablecoin = "not-an-address"

	var c Client
	_, err := New(context.Background(), ClientAPI(&c), Config(cfg))
	require.Error(t, err)
}

func TestOptionOrdering(t *testing.T) {
	var c Client
	_, err := New(context.Background(), Config(testConfig()), ClientAPI(&c))
	require.ErrorContains(t, err, "before Config")

	_, err = New(context.Background(), ClientAPI(&c))
	require.ErrorContains(t, err, "no config")
}
