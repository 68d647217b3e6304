package wallet

import (
	"context"
	"math/big"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/event"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
)

var log = logging.Logger("wallet")

const eventBuffer = 16

// Approver asks the account holder to approve access to an account and
// returns the passphrase that unlocks it. Returning ErrUserRejected declines.
type Approver func(ctx context.Context, addr common.Address) (string, error)

// KeystoreProvider is a Provider backed by an encrypted key directory. An
// account becomes authorized once it has been unlocked with its passphrase.
type KeystoreProvider struct {
	ks      *keystore.KeyStore
	node    api.EthNode
	approve Approver
	prefer  common.Address

	lk         sync.Mutex
	authorized []accounts.Account
	chains     map[uint64]ChainParams
	active     uint64

	events  chan Event
	sub     event.Subscription
	closing chan struct{}
	wg      sync.WaitGroup
}

type KeystoreOption func(*KeystoreProvider)

// WithAccount makes RequestAccounts pick addr instead of the first key in
// the directory.
func WithAccount(addr common.Address) KeystoreOption {
	return func(p *KeystoreProvider) {
		p.prefer = addr
	}
}

// WithKnownChain registers an additional network without switching to it.
func WithKnownChain(params ChainParams) KeystoreOption {
	return func(p *KeystoreProvider) {
		p.chains[params.ChainID] = params
	}
}

// NewKeystoreProvider opens ks and starts watching it for removed keys. The
// provider starts on the network described by home.
func NewKeystoreProvider(ks *keystore.KeyStore, node api.EthNode, approve Approver, home ChainParams, opts ...KeystoreOption) (*KeystoreProvider, error) {
	if err := home.Validate(); err != nil {
		return nil, xerrors.Errorf("home chain: %w", err)
	}
	if approve == nil {
		return nil, xerrors.New("an approver is required")
	}

	p := &KeystoreProvider{
		ks:      ks,
		node:    node,
		approve: approve,
		chains:  map[uint64]ChainParams{home.ChainID: home},
		active:  home.ChainID,
		events:  make(chan Event, eventBuffer),
		closing: make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}

	walletEvents := make(chan accounts.WalletEvent, eventBuffer)
	p.sub = ks.Subscribe(walletEvents)

	p.wg.Add(1)
	go p.watch(walletEvents)

	return p, nil
}

func (p *KeystoreProvider) watch(ch <-chan accounts.WalletEvent) {
	defer p.wg.Done()
	for {
		select {
		case ev := <-ch:
			if ev.Kind != accounts.WalletDropped {
				continue
			}
			p.dropped(ev.Wallet.URL())
		case err := <-p.sub.Err():
			if err != nil {
				log.Warnw("keystore subscription closed", "error", err)
			}
			return
		case <-p.closing:
			return
		}
	}
}

func (p *KeystoreProvider) dropped(url accounts.URL) {
	p.lk.Lock()
	before := len(p.authorized)
	kept := p.authorized[:0]
	for _, a := range p.authorized {
		if a.URL != url {
			kept = append(kept, a)
		}
	}
	p.authorized = kept
	changed := len(kept) != before
	addrs := p.addrsLocked()
	p.lk.Unlock()

	if changed {
		log.Infow("authorized key removed from keystore", "url", url.String())
		p.emit(Event{Kind: AccountsChanged, Accounts: addrs})
	}
}

func (p *KeystoreProvider) emit(ev Event) {
	select {
	case p.events <- ev:
	default:
		log.Warnw("dropping provider event, buffer full", "kind", ev.Kind)
	}
}

func (p *KeystoreProvider) addrsLocked() []common.Address {
	out := make([]common.Address, 0, len(p.authorized))
	for _, a := range p.authorized {
		out = append(out, a.Address)
	}
	return out
}

func (p *KeystoreProvider) Accounts(ctx context.Context) ([]common.Address, error) {
	p.lk.Lock()
	defer p.lk.Unlock()
	return p.addrsLocked(), nil
}

func (p *KeystoreProvider) pick() (accounts.Account, error) {
	if p.prefer != (common.Address{}) {
		acc, err := p.ks.Find(accounts.Account{Address: p.prefer})
		if err != nil {
			return accounts.Account{}, xerrors.Errorf("finding account %s: %w", p.prefer, err)
		}
		return acc, nil
	}

	all := p.ks.Accounts()
	if len(all) == 0 {
		return accounts.Account{}, ErrNoAccounts
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].URL.Cmp(all[j].URL) < 0
	})
	return all[0], nil
}

func (p *KeystoreProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	p.lk.Lock()
	if len(p.authorized) > 0 {
		defer p.lk.Unlock()
		return p.addrsLocked(), nil
	}
	p.lk.Unlock()

	acc, err := p.pick()
	if err != nil {
		return nil, err
	}
	if err := p.unlock(ctx, acc); err != nil {
		return nil, err
	}

	p.lk.Lock()
	p.authorized = []accounts.Account{acc}
	addrs := p.addrsLocked()
	p.lk.Unlock()

	return addrs, nil
}

func (p *KeystoreProvider) unlock(ctx context.Context, acc accounts.Account) error {
	pass, err := p.approve(ctx, acc.Address)
	if err != nil {
		return err
	}
	if err := p.ks.Unlock(acc, pass); err != nil {
		if xerrors.Is(err, keystore.ErrDecrypt) {
			return xerrors.Errorf("unlocking %s: %w", acc.Address, ErrUserRejected)
		}
		return xerrors.Errorf("unlocking %s: %w", acc.Address, err)
	}
	return nil
}

// SelectAccount switches the authorized account to addr, asking for approval
// first. Subscribers see an AccountsChanged event.
func (p *KeystoreProvider) SelectAccount(ctx context.Context, addr common.Address) error {
	acc, err := p.ks.Find(accounts.Account{Address: addr})
	if err != nil {
		return xerrors.Errorf("finding account %s: %w", addr, err)
	}
	if err := p.unlock(ctx, acc); err != nil {
		return err
	}

	p.lk.Lock()
	prev := p.authorized
	p.authorized = []accounts.Account{acc}
	addrs := p.addrsLocked()
	p.lk.Unlock()

	for _, a := range prev {
		if a.Address != addr {
			_ = p.ks.Lock(a.Address)
		}
	}

	p.emit(Event{Kind: AccountsChanged, Accounts: addrs})
	return nil
}

// Revoke forgets every authorization and locks the keys again.
func (p *KeystoreProvider) Revoke() {
	p.lk.Lock()
	prev := p.authorized
	p.authorized = nil
	p.lk.Unlock()

	for _, a := range prev {
		_ = p.ks.Lock(a.Address)
	}
	if len(prev) > 0 {
		p.emit(Event{Kind: AccountsChanged})
	}
}

func (p *KeystoreProvider) ChainID(ctx context.Context) (uint64, error) {
	p.lk.Lock()
	defer p.lk.Unlock()
	return p.active, nil
}

func (p *KeystoreProvider) SwitchChain(ctx context.Context, chainID uint64) error {
	p.lk.Lock()
	if _, ok := p.chains[chainID]; !ok {
		p.lk.Unlock()
		return xerrors.Errorf("switching to chain %d: %w", chainID, ErrUnrecognizedChain)
	}
	changed := p.active != chainID
	p.active = chainID
	p.lk.Unlock()

	if changed {
		p.emit(Event{Kind: ChainChanged, ChainID: chainID})
	}
	return nil
}

func (p *KeystoreProvider) AddChain(ctx context.Context, params ChainParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	p.lk.Lock()
	defer p.lk.Unlock()
	p.chains[params.ChainID] = params
	return nil
}

func (p *KeystoreProvider) Balance(ctx context.Context, addr common.Address) (*big.Int, error) {
	if p.node == nil {
		return nil, xerrors.New("provider has no ledger endpoint")
	}
	bal, err := p.node.EthGetBalance(ctx, addr, api.BlockLatest)
	if err != nil {
		return nil, xerrors.Errorf("getting balance of %s: %w", addr, err)
	}
	if bal.Int == nil {
		return new(big.Int), nil
	}
	return bal.Int, nil
}

func (p *KeystoreProvider) Signer(ctx context.Context, addr common.Address) (Signer, error) {
	p.lk.Lock()
	defer p.lk.Unlock()

	for _, a := range p.authorized {
		if a.Address == addr {
			return &keystoreSigner{ks: p.ks, acc: a, chainID: p.active}, nil
		}
	}
	return nil, xerrors.Errorf("signer for %s: %w", addr, ErrUnauthorized)
}

func (p *KeystoreProvider) Events() <-chan Event {
	return p.events
}

func (p *KeystoreProvider) Close() error {
	close(p.closing)
	p.sub.Unsubscribe()
	p.wg.Wait()
	return nil
}

type keystoreSigner struct {
	ks      *keystore.KeyStore
	acc     accounts.Account
	chainID uint64
}

func (s *keystoreSigner) Address() common.Address { return s.acc.Address }

func (s *keystoreSigner) ChainID() uint64 { return s.chainID }

func (s *keystoreSigner) SignTx(ctx context.Context, tx *ethtypes.Transaction) (*ethtypes.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	signed, err := s.ks.SignTx(s.acc, tx, new(big.Int).SetUint64(s.chainID))
	if err != nil {
		if xerrors.Is(err, keystore.ErrLocked) {
			return nil, xerrors.Errorf("signing with %s: %w", s.acc.Address, ErrUserRejected)
		}
		return nil, xerrors.Errorf("signing with %s: %w", s.acc.Address, err)
	}
	return signed, nil
}

var _ Provider = (*KeystoreProvider)(nil)
