package flow

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/raulk/clock"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/market"
	"github.com/peermart/peermart-go/notify"
)

var (
	buyer       = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	seller      = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	marketplace = common.HexToAddress("0xAdB02aaC89051778f505f7FC6A905E21283a62d3")
	stablecoin  = common.HexToAddress("0x7fdde93c75669792002c8dbd49d0f6e869d15c96")
)

func u(v uint64) *big.Int { return new(big.Int).SetUint64(v) }

type sessions struct {
	lk   sync.Mutex
	sess *wallet.Session
}

func (s *sessions) Session() *wallet.Session {
	s.lk.Lock()
	defer s.lk.Unlock()
	return s.sess
}

func (s *sessions) Version() uint64 {
	s.lk.Lock()
	defer s.lk.Unlock()
	if s.sess == nil {
		return 0
	}
	return s.sess.Version
}

type escrow struct {
	paid, sold       bool
	canceled, report bool
}

// ledger is an in-memory marketplace. Reads answer from its records and
// writes apply their effect, failing like the real gateway when asked to.
type ledger struct {
	lk sync.Mutex

	products  uint64
	sellers   map[common.Address]string
	purchases map[uint64]*escrow

	fail   map[string]gateway.Kind
	block  map[string]chan struct{}
	// hold blocks writes on one product id
	hold   map[uint64]chan struct{}
	writes []string
	// lag is the number of productCount reads after a create that still
	// report the old count.
	lag, stale int

	sink notify.Sink
}

func newLedger(sink notify.Sink) *ledger {
	return &ledger{
		sellers:   map[common.Address]string{},
		purchases: map[uint64]*escrow{},
		fail:      map[string]gateway.Kind{},
		block:     map[string]chan struct{}{},
		hold:      map[uint64]chan struct{}{},
		sink:      sink,
	}
}

func (l *ledger) Read(ctx context.Context, call gateway.Call) (contracts.Values, error) {
	l.lk.Lock()
	defer l.lk.Unlock()

	switch call.Method {
	case contracts.MethodProductCount:
		n := l.products
		if l.stale > 0 {
			l.stale--
			n--
		}
		return contracts.Values{u(n)}, nil
	case contracts.MethodProducts:
		id := call.Args[0].(*big.Int).Uint64()
		return contracts.Values{u(id), "Lamp", "ipfs://bafylamp", u(5_000_000), seller, "Shop", "", u(1), u(0)}, nil
	case contracts.MethodPurchases:
		id := call.Args[0].(*big.Int).Uint64()
		e, ok := l.purchases[id]
		if !ok || call.Args[1].(common.Address) != buyer {
			return contracts.Values{u(0), common.Address{}, false, false}, nil
		}
		return contracts.Values{u(id), buyer, e.paid, e.sold}, nil
	case contracts.MethodSellers:
		name := l.sellers[call.Args[0].(common.Address)]
		return contracts.Values{name, "https://x.com/" + name, u(0), u(0), u(0), u(0)}, nil
	case contracts.MethodSellerContacts:
		return contracts.Values{"Lisbon", "+351000"}, nil
	case contracts.MethodIsSellerBlocked:
		return contracts.Values{false}, nil
	case contracts.MethodBuyerCanceled:
		e, ok := l.purchases[call.Args[0].(*big.Int).Uint64()]
		return contracts.Values{ok && e.canceled}, nil
	case contracts.MethodHasReported:
		e, ok := l.purchases[call.Args[0].(*big.Int).Uint64()]
		return contracts.Values{ok && e.report}, nil
	}
	return nil, xerrors.Errorf("unexpected read %s", call.Method)
}

func (l *ledger) Write(ctx context.Context, call gateway.Call) (*api.EthTxReceipt, error) {
	l.lk.Lock()
	l.writes = append(l.writes, call.Method)
	wait := l.block[call.Method]
	if id, ok := firstID(call); ok && l.hold[id] != nil {
		wait = l.hold[id]
	}
	l.lk.Unlock()

	if wait != nil {
		<-wait
	}

	l.lk.Lock()
	defer l.lk.Unlock()

	if kind, ok := l.fail[call.Method]; ok {
		err := &gateway.Error{Kind: kind, Method: call.Method}
		l.sink.Show(notify.Error(kind.Category(), call.Label+" failed", err.Detail()))
		return nil, err
	}

	switch call.Method {
	case contracts.MethodApprove:
		if call.Args[0].(common.Address) != marketplace {
			return nil, xerrors.New("approved the wrong spender")
		}
	case contracts.MethodPurchaseProduct:
		l.purchases[call.Args[0].(*big.Int).Uint64()] = &escrow{paid: true}
	case contracts.MethodCreateProduct:
		l.products++
		l.stale = l.lag
	case contracts.MethodRegisterSeller:
		l.sellers[call.Session.Address] = call.Args[0].(string)
	case contracts.MethodConfirmPayment:
		l.purchases[call.Args[0].(*big.Int).Uint64()].sold = true
	case contracts.MethodCancelPurchase:
		e := l.purchases[call.Args[0].(*big.Int).Uint64()]
		e.paid, e.canceled = false, true
	case contracts.MethodReportCanceledPurchase:
		l.purchases[call.Args[0].(*big.Int).Uint64()].report = true
	}
	return &api.EthTxReceipt{Status: 1}, nil
}

func firstID(call gateway.Call) (uint64, bool) {
	if len(call.Args) == 0 {
		return 0, false
	}
	id, ok := call.Args[0].(*big.Int)
	if !ok {
		return 0, false
	}
	return id.Uint64(), true
}

func (l *ledger) written() []string {
	l.lk.Lock()
	defer l.lk.Unlock()
	return append([]string{}, l.writes...)
}

type harness struct {
	flows    *Flows
	ledger   *ledger
	sessions *sessions
	rec      *notify.Recorder
	market   *market.Market
}

func setup(t *testing.T, addr *common.Address) *harness {
	t.Helper()

	h := &harness{sessions: &sessions{}, rec: &notify.Recorder{}}
	if addr != nil {
		h.sessions.sess = &wallet.Session{Address: *addr, ChainID: 296, Version: 1}
	}
	h.ledger = newLedger(h.rec)
	h.market = market.New(h.ledger, h.sessions, h.rec)
	h.flows = New(h.ledger, h.sessions, h.market, h.rec, gateway.Addresses{Marketplace: marketplace, Stablecoin: stablecoin}, Settings{
		SettleAttempts:     3,
		SettlePollInterval: time.Millisecond,
		SettlingDelay:      time.Millisecond,
	})
	t.Cleanup(func() {
		_ = h.flows.Close()
		_ = h.market.Close()
	})
	return h
}

func TestPurchaseApprovesThenBuys(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 7

	var states []State
	h.flows.Observe(func(op *Op, key string, s State) {
		if op.Kind == KindPurchase && key == purchaseKey(7) {
			states = append(states, s)
		}
	})

	require.NoError(t, h.flows.Purchase(context.Background(), 7, types.NewUSDC(5_000_000)))
	require.Equal(t, []string{contracts.MethodApprove, contracts.MethodPurchaseProduct}, h.ledger.written())
	require.Equal(t, []State{InFlight, Success, Idle}, states)

	require.Equal(t, 1, h.rec.Count(notify.SeveritySuccess))
	require.Equal(t, 0, h.rec.Count(notify.SeverityError))

	items := h.market.Purchases.Feed().Items()
	require.Len(t, items, 1)
	require.EqualValues(t, 7, items[0].ProductID)
	require.True(t, items[0].Pending())
}

func TestPurchaseStopsWhenApproveFails(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.fail[contracts.MethodApprove] = gateway.UserRejected

	err := h.flows.Purchase(context.Background(), 7, types.NewUSDC(5_000_000))
	require.True(t, gateway.IsKind(err, gateway.UserRejected))
	require.Equal(t, []string{contracts.MethodApprove}, h.ledger.written(), "purchase must not be submitted")

	require.Len(t, h.rec.All(), 1)
	n, _ := h.rec.Last()
	require.Equal(t, notify.CategoryWalletRejected, n.Category)
	require.Equal(t, Idle, h.flows.State(purchaseKey(7)))
}

func TestPurchaseNeedsSession(t *testing.T) {
	h := setup(t, nil)

	err := h.flows.Purchase(context.Background(), 7, types.NewUSDC(5_000_000))
	require.ErrorIs(t, err, ErrNoSession)
	require.Empty(t, h.ledger.written())

	n, ok := h.rec.Last()
	require.True(t, ok)
	require.Equal(t, notify.SeverityWarn, n.Severity)
	require.Equal(t, notify.CategoryValidation, n.Category)
}

func TestRegisterRejectsExistingSeller(t *testing.T) {
	h := setup(t, &seller)
	h.ledger.sellers[seller] = "Shop"

	err := h.flows.Register(context.Background(), RegistrationRequest{Name: "Shop 2", Handle: "@shop", Location: "Porto", PhoneNumber: "+351"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Empty(t, h.ledger.written())
	require.Equal(t, 1, h.rec.Count(notify.SeverityWarn))
}

func TestRegister(t *testing.T) {
	h := setup(t, &seller)

	require.NoError(t, h.flows.Register(context.Background(), RegistrationRequest{Name: " Shop ", Handle: "@shop", Location: "Porto", PhoneNumber: "+351"}))
	require.Equal(t, []string{contracts.MethodRegisterSeller}, h.ledger.written())

	cur := h.market.Sellers.Current()
	require.NotNil(t, cur)
	require.Equal(t, "Shop", cur.Name)
	require.Equal(t, "https://x.com/Shop", cur.ProfileURI)

	// the refreshed profile now guards a second attempt locally
	err := h.flows.Register(context.Background(), RegistrationRequest{Name: "Shop", Handle: "shop", Location: "Porto", PhoneNumber: "+351"})
	require.Error(t, err)
	require.Len(t, h.ledger.written(), 1)
}

func TestProfileURI(t *testing.T) {
	require.Equal(t, "https://x.com/shop", ProfileURI("@shop"))
	require.Equal(t, "https://x.com/shop", ProfileURI(" shop "))
	require.Equal(t, "https://x.com/other", ProfileURI("https://x.com/other"))
	require.Equal(t, "", ProfileURI("@"))
}

func TestListRequiresRegistration(t *testing.T) {
	h := setup(t, &seller)

	_, err := h.flows.List(context.Background(), ListingRequest{Name: "Lamp", ImageRef: "ipfs://bafylamp", Price: types.NewUSDC(1), Inventory: 1})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Register first", verr.Summary)
	require.Empty(t, h.ledger.written())
}

func TestListSettlesBeforeRefresh(t *testing.T) {
	h := setup(t, &seller)
	h.ledger.sellers[seller] = "Shop"
	h.ledger.products = 2
	// the first poll after the write still sees the old count
	h.ledger.lag = 1

	price, err := NormalizePrice("5")
	require.NoError(t, err)

	res, err := h.flows.List(context.Background(), ListingRequest{Name: "Lamp", ImageRef: "ipfs://bafylamp", Price: price, Inventory: 3})
	require.NoError(t, err)
	require.Equal(t, []string{contracts.MethodCreateProduct}, h.ledger.written())

	select {
	case <-res.Settled:
	case <-time.After(5 * time.Second):
		t.Fatal("listing never settled")
	}

	items := h.market.Catalog.SellerFeed().Items()
	require.Len(t, items, 3)
	require.EqualValues(t, 3, items[0].ID)
}

func TestListRefreshesAfterSettlingDelay(t *testing.T) {
	mock := clock.NewMock()
	prev := build.Clock
	build.Clock = mock
	t.Cleanup(func() { build.Clock = prev })

	h := setup(t, &seller)
	h.flows.settings.SettlingDelay = time.Hour
	h.ledger.sellers[seller] = "Shop"
	h.ledger.products = 2
	// every poll still sees the old count, so polling gives up
	h.ledger.lag = h.flows.settings.SettleAttempts

	price, err := NormalizePrice("5")
	require.NoError(t, err)

	res, err := h.flows.List(context.Background(), ListingRequest{Name: "Lamp", ImageRef: "ipfs://bafylamp", Price: price, Inventory: 3})
	require.NoError(t, err)

	polled := func() bool {
		h.ledger.lk.Lock()
		defer h.ledger.lk.Unlock()
		return h.ledger.stale == 0
	}
	require.Eventually(t, func() bool {
		mock.Add(time.Millisecond)
		return polled()
	}, 5*time.Second, time.Millisecond)

	mock.Add(59 * time.Minute)
	select {
	case <-res.Settled:
		t.Fatal("refreshed before the settling delay")
	case <-time.After(10 * time.Millisecond):
	}

	require.Eventually(t, func() bool {
		mock.Add(time.Hour)
		select {
		case <-res.Settled:
			return true
		default:
			return false
		}
	}, 5*time.Second, time.Millisecond)

	items := h.market.Catalog.SellerFeed().Items()
	require.Len(t, items, 3)
	require.EqualValues(t, 3, items[0].ID)
}

func TestListValidatesNormalizedInput(t *testing.T) {
	h := setup(t, &seller)
	h.ledger.sellers[seller] = "Shop"

	for _, req := range []ListingRequest{
		{Name: "", ImageRef: "ipfs://bafylamp", Price: types.NewUSDC(1), Inventory: 1},
		{Name: "Lamp", ImageRef: "ipfs://bafylamp", Price: types.NewUSDC(0), Inventory: 1},
		{Name: "Lamp", ImageRef: "ipfs://bafylamp", Price: types.NewUSDC(1), Inventory: 0},
		{Name: "Lamp", ImageRef: "bafylamp", Price: types.NewUSDC(1), Inventory: 1},
	} {
		_, err := h.flows.List(context.Background(), req)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
	require.Empty(t, h.ledger.written())
}

func TestNormalizePrice(t *testing.T) {
	p, err := NormalizePrice("12.5")
	require.NoError(t, err)
	require.Equal(t, "12500000", p.Minor().String())

	for _, in := range []string{"0", "-1", "abc", "1.0000001"} {
		_, err := NormalizePrice(in)
		require.Error(t, err, in)
	}
}

func TestNormalizeImage(t *testing.T) {
	const c = "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"

	got, err := NormalizeImage(c)
	require.NoError(t, err)
	require.Equal(t, "ipfs://"+c, got)

	got, err = NormalizeImage("https://ipfs.io/ipfs/" + c)
	require.NoError(t, err)
	require.Equal(t, "ipfs://"+c, got)

	got, err = NormalizeImage("https://example.com/lamp.png")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/lamp.png", got)

	_, err = NormalizeImage("lamp.png")
	require.Error(t, err)
}

func TestConfirmNeedsPendingPurchase(t *testing.T) {
	h := setup(t, &buyer)

	err := h.flows.Confirm(context.Background(), 4)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "No such purchase", verr.Summary)

	h.ledger.purchases[4] = &escrow{paid: true, sold: true}
	err = h.flows.Confirm(context.Background(), 4)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Purchase already completed", verr.Summary)

	require.Empty(t, h.ledger.written())
}

func TestConfirm(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 4
	h.ledger.purchases[4] = &escrow{paid: true}

	require.NoError(t, h.flows.Confirm(context.Background(), 4))
	require.Equal(t, []string{contracts.MethodConfirmPayment}, h.ledger.written())
	require.Equal(t, 1, h.rec.Count(notify.SeveritySuccess))

	items := h.market.Purchases.Feed().Items()
	require.Len(t, items, 1)
	require.True(t, items[0].IsSold)
}

func TestCancelWhileConfirmInFlight(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 4
	h.ledger.purchases[4] = &escrow{paid: true}

	release := make(chan struct{})
	h.ledger.block[contracts.MethodConfirmPayment] = release

	done := make(chan error, 1)
	go func() { done <- h.flows.Confirm(context.Background(), 4) }()

	require.Eventually(t, func() bool { return h.flows.Busy(escrowKey(4)) }, 5*time.Second, time.Millisecond)

	err := h.flows.Cancel(context.Background(), 4)
	require.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)
	require.False(t, h.flows.Busy(escrowKey(4)))
	require.Equal(t, []string{contracts.MethodConfirmPayment}, h.ledger.written())
}

func TestConcurrentActionsTrackStateByKey(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 5
	h.ledger.purchases[4] = &escrow{paid: true}
	h.ledger.purchases[5] = &escrow{paid: true}

	release := make(chan struct{})
	h.ledger.hold[4] = release

	done := make(chan error, 1)
	go func() { done <- h.flows.Confirm(context.Background(), 4) }()
	require.Eventually(t, func() bool { return h.flows.State(escrowKey(4)) == InFlight }, 5*time.Second, time.Millisecond)

	require.NoError(t, h.flows.Confirm(context.Background(), 5))
	require.Equal(t, Idle, h.flows.State(escrowKey(5)))
	require.Equal(t, InFlight, h.flows.State(escrowKey(4)))

	close(release)
	require.NoError(t, <-done)
	require.Equal(t, Idle, h.flows.State(escrowKey(4)))
}

func TestCancelRevertedNotifiesOnce(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 4
	h.ledger.purchases[4] = &escrow{paid: true}
	h.ledger.fail[contracts.MethodCancelPurchase] = gateway.ContractReverted

	err := h.flows.Cancel(context.Background(), 4)
	require.True(t, gateway.IsKind(err, gateway.ContractReverted))
	require.Len(t, h.rec.All(), 1)
	require.Equal(t, Idle, h.flows.State(escrowKey(4)))
}

func TestReport(t *testing.T) {
	h := setup(t, &buyer)
	h.ledger.products = 4
	h.ledger.purchases[4] = &escrow{paid: true}

	err := h.flows.Report(context.Background(), 4)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Nothing to report", verr.Summary)

	require.NoError(t, h.flows.Cancel(context.Background(), 4))
	require.NoError(t, h.flows.Report(context.Background(), 4))

	err = h.flows.Report(context.Background(), 4)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "Already reported", verr.Summary)

	require.Equal(t, []string{contracts.MethodCancelPurchase, contracts.MethodReportCanceledPurchase}, h.ledger.written())
}
