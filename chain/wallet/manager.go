package wallet

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/singleflight"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/chain/types"
)

// Manager owns the session lifecycle: connect, disconnect, passive sync on
// start and reaction to provider events. Every session change bumps the
// version and is published to subscribers in order.
type Manager struct {
	provider Provider
	target   ChainParams

	sf singleflight.Group

	// publishLk serializes change delivery; it is taken before lk.
	publishLk sync.Mutex

	lk      sync.Mutex
	state   State
	session *Session
	version uint64
	subs    map[uint64]func(SessionChange)
	nextSub uint64

	closing chan struct{}
	wg      sync.WaitGroup
}

// NewManager returns a manager for provider p that keeps sessions on the
// target network. p may be nil when no signing capability is installed.
func NewManager(p Provider, target ChainParams) *Manager {
	return &Manager{
		provider: p,
		target:   target,
		subs:     map[uint64]func(SessionChange){},
		closing:  make(chan struct{}),
	}
}

func (m *Manager) Session() *Session {
	m.lk.Lock()
	defer m.lk.Unlock()
	return m.session
}

func (m *Manager) State() State {
	m.lk.Lock()
	defer m.lk.Unlock()
	return m.state
}

func (m *Manager) Version() uint64 {
	m.lk.Lock()
	defer m.lk.Unlock()
	return m.version
}

// Capable reports whether a signing provider is installed.
func (m *Manager) Capable() bool {
	return m.provider != nil
}

func (m *Manager) Target() ChainParams {
	return m.target
}

// Subscribe registers fn for session changes. Subscribers run in the order
// they subscribed. fn runs synchronously on the
// goroutine that caused the change and must not call back into Connect or
// Disconnect.
func (m *Manager) Subscribe(fn func(SessionChange)) (unsubscribe func()) {
	m.lk.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.lk.Unlock()

	return func() {
		m.lk.Lock()
		delete(m.subs, id)
		m.lk.Unlock()
	}
}

func (m *Manager) replace(sess *Session) *Session {
	m.publishLk.Lock()
	defer m.publishLk.Unlock()

	m.lk.Lock()
	m.version++
	if sess != nil {
		cp := *sess
		cp.Version = m.version
		sess = &cp
		m.state = Connected
	} else {
		m.state = Disconnected
	}
	m.session = sess
	change := SessionChange{Version: m.version, Session: sess}
	ids := make([]uint64, 0, len(m.subs))
	for id := range m.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	subs := make([]func(SessionChange), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, m.subs[id])
	}
	m.lk.Unlock()

	for _, fn := range subs {
		fn(change)
	}
	return sess
}

// Connect requests account access, moves the provider onto the target
// network and builds a new session. Concurrent calls share one request.
func (m *Manager) Connect(ctx context.Context) (*Session, error) {
	if m.provider == nil {
		return nil, ErrCapabilityMissing
	}

	v, err, shared := m.sf.Do("connect", func() (interface{}, error) {
		return m.connect(ctx)
	})
	if shared {
		log.Debugw("joined in-flight connect request")
	}
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) connect(ctx context.Context) (*Session, error) {
	m.lk.Lock()
	prev := m.state
	m.state = Connecting
	m.lk.Unlock()

	sess, err := m.establish(ctx)
	if err != nil {
		m.lk.Lock()
		if m.state == Connecting {
			m.state = prev
		}
		m.lk.Unlock()
		return nil, err
	}

	sess = m.replace(sess)
	log.Infow("wallet connected", "address", sess.Address, "chain", sess.ChainID, "version", sess.Version)
	return sess, nil
}

func (m *Manager) establish(ctx context.Context) (*Session, error) {
	accs, err := m.provider.RequestAccounts(ctx)
	if err != nil {
		return nil, xerrors.Errorf("requesting accounts: %w", err)
	}
	if len(accs) == 0 {
		return nil, ErrNoAccounts
	}

	if err := m.ensureChain(ctx); err != nil {
		return nil, err
	}

	return m.build(ctx, accs[0])
}

func (m *Manager) ensureChain(ctx context.Context) error {
	cur, err := m.provider.ChainID(ctx)
	if err != nil {
		return xerrors.Errorf("reading provider chain: %w", err)
	}
	if cur == m.target.ChainID {
		return nil
	}

	err = m.provider.SwitchChain(ctx, m.target.ChainID)
	if xerrors.Is(err, ErrUnrecognizedChain) {
		log.Infow("registering network with provider", "chain", m.target.ChainID, "name", m.target.ChainName)
		if err := m.provider.AddChain(ctx, m.target); err != nil {
			return switchError(m.target.ChainID, err)
		}
		err = m.provider.SwitchChain(ctx, m.target.ChainID)
	}
	if err != nil {
		return switchError(m.target.ChainID, err)
	}
	return nil
}

func switchError(chainID uint64, err error) error {
	if xerrors.Is(err, ErrUserRejected) {
		return xerrors.Errorf("switching to chain %d: %w", chainID, err)
	}
	return fmt.Errorf("%w: switching to chain %d: %w", ErrNetworkMismatch, chainID, err)
}

func (m *Manager) build(ctx context.Context, addr common.Address) (*Session, error) {
	signer, err := m.provider.Signer(ctx, addr)
	if err != nil {
		return nil, xerrors.Errorf("getting signer: %w", err)
	}
	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		return nil, xerrors.Errorf("reading provider chain: %w", err)
	}
	bal, err := m.provider.Balance(ctx, addr)
	if err != nil {
		return nil, xerrors.Errorf("reading balance: %w", err)
	}

	return &Session{
		Address: addr,
		Balance: types.BigFromBig(bal),
		ChainID: chainID,
		Signer:  signer,
	}, nil
}

// Disconnect drops the session locally. It does not revoke the provider's
// authorization.
func (m *Manager) Disconnect() {
	m.lk.Lock()
	had := m.session != nil
	m.lk.Unlock()

	m.replace(nil)
	if had {
		log.Infow("wallet disconnected")
	}
}

// Start performs a passive sync, then follows provider events until ctx is
// done or Stop is called. Passive sync never prompts the account holder.
func (m *Manager) Start(ctx context.Context) error {
	if m.provider == nil {
		log.Infow("no signing provider installed, wallet features disabled")
		return nil
	}

	if err := m.sync(ctx); err != nil {
		log.Warnw("passive wallet sync failed", "error", err)
	}

	m.wg.Add(1)
	go m.loop(ctx)
	return nil
}

func (m *Manager) Stop(context.Context) error {
	select {
	case <-m.closing:
	default:
		close(m.closing)
	}
	m.wg.Wait()
	return nil
}

func (m *Manager) sync(ctx context.Context) error {
	accs, err := m.provider.Accounts(ctx)
	if err != nil {
		return xerrors.Errorf("listing accounts: %w", err)
	}
	if len(accs) == 0 {
		return nil
	}

	chainID, err := m.provider.ChainID(ctx)
	if err != nil {
		return xerrors.Errorf("reading provider chain: %w", err)
	}
	if chainID != m.target.ChainID {
		log.Infow("authorized account found on another network, staying disconnected", "chain", chainID, "want", m.target.ChainID)
		return nil
	}

	sess, err := m.build(ctx, accs[0])
	if err != nil {
		return err
	}
	sess = m.replace(sess)
	log.Infow("restored wallet session", "address", sess.Address, "version", sess.Version)
	return nil
}

func (m *Manager) loop(ctx context.Context) {
	defer m.wg.Done()

	events := m.provider.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			m.handle(ctx, ev)
		case <-ctx.Done():
			return
		case <-m.closing:
			return
		}
	}
}

func (m *Manager) handle(ctx context.Context, ev Event) {
	log.Debugw("provider event", "kind", ev.Kind, "accounts", len(ev.Accounts), "chain", ev.ChainID)

	m.lk.Lock()
	state, sess := m.state, m.session
	m.lk.Unlock()

	switch ev.Kind {
	case AccountsChanged:
		if len(ev.Accounts) == 0 {
			if sess != nil {
				m.Disconnect()
			}
			return
		}
		if sess == nil || ev.Accounts[0] == sess.Address {
			return
		}
		// the previous account's signer must not outlive the switch, even
		// when the reconnect below is rejected
		m.replace(nil)
		log.Infow("account changed, session reset", "previous", sess.Address, "account", ev.Accounts[0])
		if _, err := m.Connect(ctx); err != nil {
			log.Warnw("reconnecting after account change", "error", err)
		}
	case ChainChanged:
		if state == Connecting {
			return
		}
		if sess != nil && sess.ChainID == ev.ChainID {
			return
		}
		if sess != nil {
			m.replace(nil)
			log.Infow("network changed, session reset", "chain", ev.ChainID)
		}
		if ev.ChainID == m.target.ChainID {
			if err := m.sync(ctx); err != nil {
				log.Warnw("resync after network change", "error", err)
			}
		}
	}
}
