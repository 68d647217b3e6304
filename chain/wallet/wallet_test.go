package wallet

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/api/mocks"
)

const testPass = "correct horse"

func setupKeystore(t *testing.T, pass string) (*keystore.KeyStore, common.Address) {
	t.Helper()

	ks := keystore.NewKeyStore(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.NewAccount(pass)
	require.NoError(t, err)
	return ks, acc.Address
}

func approveWith(pass string) Approver {
	return func(ctx context.Context, addr common.Address) (string, error) {
		return pass, nil
	}
}

func TestKeystoreProviderAccounts(t *testing.T) {
	ctx := context.Background()
	ks, addr := setupKeystore(t, testPass)

	p, err := NewKeystoreProvider(ks, nil, approveWith(testPass), testTarget)
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	accs, err := p.Accounts(ctx)
	require.NoError(t, err)
	require.Empty(t, accs, "nothing is authorized before approval")

	_, err = p.Signer(ctx, addr)
	require.ErrorIs(t, err, ErrUnauthorized)

	accs, err = p.RequestAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.Address{addr}, accs)

	accs, err = p.Accounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []common.Address{addr}, accs)

	p.Revoke()
	ev := <-p.Events()
	require.Equal(t, AccountsChanged, ev.Kind)
	require.Empty(t, ev.Accounts)
}

func TestKeystoreProviderWrongPassphrase(t *testing.T) {
	ks, _ := setupKeystore(t, testPass)

	p, err := NewKeystoreProvider(ks, nil, approveWith("nope"), testTarget)
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	_, err = p.RequestAccounts(context.Background())
	require.ErrorIs(t, err, ErrUserRejected)
}

func TestKeystoreProviderSwitchChain(t *testing.T) {
	ctx := context.Background()
	ks, _ := setupKeystore(t, testPass)

	p, err := NewKeystoreProvider(ks, nil, approveWith(testPass), testTarget)
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	other := ChainParams{ChainID: 295, ChainName: "Hedera Mainnet", RPCURLs: []string{"https://mainnet.hashio.io/api"}}

	require.ErrorIs(t, p.SwitchChain(ctx, other.ChainID), ErrUnrecognizedChain)
	require.NoError(t, p.AddChain(ctx, other))
	require.NoError(t, p.SwitchChain(ctx, other.ChainID))

	ev := <-p.Events()
	require.Equal(t, ChainChanged, ev.Kind)
	require.Equal(t, other.ChainID, ev.ChainID)

	id, err := p.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, other.ChainID, id)

	require.Error(t, p.AddChain(ctx, ChainParams{ChainID: 7}))
}

func TestKeystoreSignerSignsForActiveChain(t *testing.T) {
	ctx := context.Background()
	ks, addr := setupKeystore(t, testPass)

	p, err := NewKeystoreProvider(ks, nil, approveWith(testPass), testTarget)
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	_, err = p.RequestAccounts(ctx)
	require.NoError(t, err)

	s, err := p.Signer(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, testTarget.ChainID, s.ChainID())

	to := common.HexToAddress("0xAdB02aaC89051778f505f7FC6A905E21283a62d3")
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    3,
		To:       &to,
		Gas:      100000,
		GasPrice: big.NewInt(1),
		Value:    new(big.Int),
	})

	signed, err := s.SignTx(ctx, tx)
	require.NoError(t, err)

	from, err := ethtypes.Sender(ethtypes.LatestSignerForChainID(new(big.Int).SetUint64(testTarget.ChainID)), signed)
	require.NoError(t, err)
	require.Equal(t, addr, from)
}

func TestKeystoreProviderBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ks, addr := setupKeystore(t, testPass)
	node := mocks.NewMockEthNode(ctrl)
	node.EXPECT().EthGetBalance(gomock.Any(), addr, api.BlockLatest).Return(api.NewEthBigInt(big.NewInt(5)), nil)

	p, err := NewKeystoreProvider(ks, node, approveWith(testPass), testTarget)
	require.NoError(t, err)
	defer p.Close() //nolint:errcheck

	bal, err := p.Balance(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, int64(5), bal.Int64())
}
