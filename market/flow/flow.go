package flow

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/metrics"
	"github.com/peermart/peermart-go/notify"
)

var log = logging.Logger("flow")

var (
	ErrNoSession = xerrors.New("no wallet connected")
	ErrBusy      = xerrors.New("a conflicting action is in progress")
)

// ValidationError is a locally detected precondition failure. No write was
// attempted.
type ValidationError struct {
	Summary string
	Detail  string
}

func (e *ValidationError) Error() string {
	if e.Detail == "" {
		return e.Summary
	}
	return e.Summary + ": " + e.Detail
}

func invalid(summary, detail string) error {
	return &ValidationError{Summary: summary, Detail: detail}
}

type Kind string

const (
	KindPurchase Kind = "purchase"
	KindList     Kind = "list"
	KindRegister Kind = "register"
	KindConfirm  Kind = "confirm"
	KindCancel   Kind = "cancel"
	KindReport   Kind = "report"
)

type State int

const (
	Idle State = iota
	InFlight
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InFlight:
		return "in-flight"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Gateway is the part of the contract gateway the flows use.
type Gateway interface {
	market.Reader
	Write(ctx context.Context, call gateway.Call) (*api.EthTxReceipt, error)
}

type Settings struct {
	// SettleAttempts bounds how often a listing polls for its new record.
	SettleAttempts     int
	SettlePollInterval time.Duration
	// SettlingDelay is waited before the final refresh when polling gave up.
	SettlingDelay time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		SettleAttempts:     build.SettleAttempts,
		SettlePollInterval: build.SettlePollInterval,
		SettlingDelay:      build.SettlingDelay,
	}
}

// Op is one run of a flow.
type Op struct {
	ID      string
	Kind    Kind
	Session *wallet.Session
}

// Flows sequences the writes behind each user action and refreshes the
// affected aggregations afterwards. Flows never retry a failed write.
type Flows struct {
	gw       Gateway
	sessions market.SessionSource
	market   *market.Market
	sink     notify.Sink
	addrs    gateway.Addresses
	settings Settings

	tracker *Tracker

	lk sync.Mutex
	// states holds the state of every action that is not idle, by
	// in-flight key.
	states    map[string]State
	observers []func(op *Op, key string, s State)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(gw Gateway, sessions market.SessionSource, m *market.Market, sink notify.Sink, addrs gateway.Addresses, settings Settings) *Flows {
	if sink == nil {
		sink = notify.Nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Flows{
		gw:       gw,
		sessions: sessions,
		market:   m,
		sink:     sink,
		addrs:    addrs,
		settings: settings,
		tracker:  NewTracker(),
		states:   map[string]State{},
		ctx:      ctx,
		cancel:   cancel,
	}
}

// State returns the current state of the action holding key. Actions on
// different keys progress independently.
func (f *Flows) State(key string) State {
	f.lk.Lock()
	defer f.lk.Unlock()
	return f.states[key]
}

// Observe registers fn for every state transition.
func (f *Flows) Observe(fn func(op *Op, key string, s State)) {
	f.lk.Lock()
	defer f.lk.Unlock()
	f.observers = append(f.observers, fn)
}

// Busy reports whether an action holds key.
func (f *Flows) Busy(key string) bool {
	return f.tracker.Busy(key)
}

func (f *Flows) setState(op *Op, key string, s State) {
	f.lk.Lock()
	if s == Idle {
		delete(f.states, key)
	} else {
		f.states[key] = s
	}
	obs := append([]func(*Op, string, State){}, f.observers...)
	f.lk.Unlock()

	for _, fn := range obs {
		fn(op, key, s)
	}
}

func (f *Flows) show(op *Op, n notify.Notification) {
	n.OpID = op.ID
	f.sink.Show(n)
}

// run executes body as one flow. It checks for a session, claims the
// in-flight key, drives the state machine and reports the outcome once.
// Gateway failures were already reported by the gateway.
func (f *Flows) run(ctx context.Context, kind Kind, key func(*wallet.Session) string, body func(ctx context.Context, op *Op) (string, error)) error {
	op := &Op{ID: uuid.NewString(), Kind: kind}

	sess := f.sessions.Session()
	if sess == nil {
		f.show(op, notify.Warn(notify.CategoryValidation, "Connect a wallet first", string(kind)+" needs a connected wallet"))
		return ErrNoSession
	}
	op.Session = sess

	k := key(sess)
	release, ok := f.tracker.Acquire(k, op.ID)
	if !ok {
		f.show(op, notify.Warn(notify.CategoryValidation, "Please wait", "another action on "+k+" is still in progress"))
		return xerrors.Errorf("%s: %w", k, ErrBusy)
	}
	defer release()

	f.setState(op, k, InFlight)
	log.Infow("flow started", "flow", kind, "op", op.ID, "key", k, "session", sess.Version)

	summary, err := body(ctx, op)

	outcome := Success
	if err != nil {
		outcome = Failed
		f.fail(op, err)
	} else {
		f.show(op, notify.Success(summary, ""))
		log.Infow("flow succeeded", "flow", kind, "op", op.ID)
	}

	tctx := metrics.Tagged(ctx, tag.Upsert(metrics.Flow, string(kind)), tag.Upsert(metrics.Outcome, outcome.String()))
	stats.Record(tctx, metrics.FlowOutcome.M(1))

	f.setState(op, k, outcome)
	f.setState(op, k, Idle)
	return err
}

func (f *Flows) fail(op *Op, err error) {
	var verr *ValidationError
	switch {
	case xerrors.As(err, &verr):
		log.Infow("flow rejected", "flow", op.Kind, "op", op.ID, "reason", verr.Error())
		f.show(op, notify.Warn(notify.CategoryValidation, verr.Summary, verr.Detail))
	case gateway.KindOf(err) != gateway.KindUnknown:
		log.Warnw("flow failed", "flow", op.Kind, "op", op.ID, "error", err)
	default:
		log.Errorw("flow failed", "flow", op.Kind, "op", op.ID, "error", err)
		f.show(op, notify.Error(notify.CategoryNetwork, string(op.Kind)+" failed", err.Error()))
	}
}

// refresh runs the given aggregations, logging failures. The gateway has
// already reported them.
func (f *Flows) refresh(ctx context.Context, what string, fns ...func(context.Context) error) {
	for _, fn := range fns {
		if err := fn(ctx); err != nil {
			log.Warnw("refresh after write failed", "what", what, "error", err)
		}
	}
}

func (f *Flows) refreshPurchases(ctx context.Context) error {
	_, err := f.market.Purchases.Refresh(ctx)
	return err
}

func (f *Flows) refreshCatalog(ctx context.Context) error {
	_, err := f.market.Catalog.Refresh(ctx)
	return err
}

// Close cancels pending settle refreshes and waits for them.
func (f *Flows) Close() error {
	f.cancel()
	f.wg.Wait()
	return nil
}

// Tracker holds the set of entity keys with an action in flight.
type Tracker struct {
	lk   sync.Mutex
	busy map[string]string
}

func NewTracker() *Tracker {
	return &Tracker{busy: map[string]string{}}
}

// Acquire claims key for op. It fails if another op holds the key.
func (t *Tracker) Acquire(key, op string) (release func(), ok bool) {
	t.lk.Lock()
	defer t.lk.Unlock()

	if holder, busy := t.busy[key]; busy {
		log.Debugw("key busy", "key", key, "holder", holder, "op", op)
		return nil, false
	}
	t.busy[key] = op

	var once sync.Once
	return func() {
		once.Do(func() {
			t.lk.Lock()
			delete(t.busy, key)
			t.lk.Unlock()
		})
	}, true
}

func (t *Tracker) Busy(key string) bool {
	t.lk.Lock()
	defer t.lk.Unlock()
	_, ok := t.busy[key]
	return ok
}
