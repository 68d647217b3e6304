package modules

import (
	"context"
	"os"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/fx"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/node/config"
	"github.com/peermart/peermart-go/node/modules/helpers"
)

// EnvApprover unlocks accounts with the passphrase held in the configured
// environment variable.
func EnvApprover(cfg *config.Client) wallet.Approver {
	name := cfg.Wallet.PassphraseEnv
	return func(ctx context.Context, addr common.Address) (string, error) {
		pass, ok := os.LookupEnv(name)
		if !ok || name == "" {
			return "", xerrors.Errorf("no passphrase for %s in $%s: %w", addr, name, wallet.ErrUserRejected)
		}
		return pass, nil
	}
}

type WalletParams struct {
	fx.In

	fx.Lifecycle
	Config   *config.Client
	Node     api.EthNode
	Approver wallet.Approver
	Target   wallet.ChainParams
}

// WalletProvider opens the keystore. Without a keystore directory there is no
// signing provider and a nil Provider is returned.
func WalletProvider(p WalletParams) (wallet.Provider, error) {
	dir := p.Config.Wallet.KeystoreDir
	if dir == "" {
		log.Infow("no keystore configured, running read-only")
		return nil, nil
	}

	var opts []wallet.KeystoreOption
	if a := p.Config.Wallet.Account; a != "" {
		if !common.IsHexAddress(a) {
			return nil, xerrors.Errorf("invalid wallet account %q", a)
		}
		opts = append(opts, wallet.WithAccount(common.HexToAddress(a)))
	}

	ks := keystore.NewKeyStore(dir, keystore.StandardScryptN, keystore.StandardScryptP)
	kp, err := wallet.NewKeystoreProvider(ks, p.Node, p.Approver, p.Target, opts...)
	if err != nil {
		return nil, xerrors.Errorf("opening keystore %s: %w", dir, err)
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return kp.Close()
		},
	})
	return kp, nil
}

func SessionManager(p wallet.Provider, target wallet.ChainParams) *wallet.Manager {
	return wallet.NewManager(p, target)
}

// StartSession restores an already authorized session and follows provider
// events for the lifetime of the node.
func StartSession(mctx helpers.MetricsCtx, lc fx.Lifecycle, m *wallet.Manager) {
	ctx := helpers.LifecycleCtx(mctx, lc)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return m.Start(ctx)
		},
		OnStop: m.Stop,
	})
}
