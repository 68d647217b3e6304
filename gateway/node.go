package gateway

import (
	"context"
	"fmt"
	"math/big"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	logger "github.com/ipfs/go-log/v2"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/time/rate"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/build"
	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/wallet"
	"github.com/peermart/peermart-go/metrics"
	"github.com/peermart/peermart-go/notify"
)

var log = logger.Logger("gateway")

const (
	DefaultRateLimitTimeout = time.Second * 5
	DefaultReceiptTimeout   = time.Minute * 2

	readRateLimitTokens  = 1
	writeRateLimitTokens = 3
	// MaxRateLimitTokens is the number of tokens consumed for the most expensive types of operations
	MaxRateLimitTokens = writeRateLimitTokens

	// gasMarginPct is added on top of the endpoint's gas estimate.
	gasMarginPct = 20
)

// SessionSource is the part of the session manager the gateway depends on.
type SessionSource interface {
	Session() *wallet.Session
	Version() uint64
	Capable() bool
}

// Call describes one contract method invocation.
type Call struct {
	Contract contracts.Contract
	Method   string
	Args     []interface{}

	// Session pins a write to the session the caller started with. When nil
	// the current session is used.
	Session *wallet.Session
	// Quiet suppresses the failure notification; the failure is still logged
	// and returned.
	Quiet bool
	// Label names the action in notifications, e.g. "Approve USDC".
	Label string
}

func (c Call) label() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Method
}

type Options struct {
	Addresses Addresses
	// RateLimit is the number of read tokens per second; zero disables limiting.
	RateLimit        int64
	RateLimitTimeout time.Duration
	ReceiptTimeout   time.Duration
	PollInterval     time.Duration
}

// Node is the single boundary to the deployed contracts. Every failure it
// sees is classified, logged and, unless the call is quiet, reported to the
// notification sink exactly once.
type Node struct {
	eth      api.EthNode
	sessions SessionSource
	notify   notify.Sink
	addrs    Addresses

	bind atomic.Pointer[Binding]

	rateLimiter      *rate.Limiter
	rateLimitTimeout time.Duration
	receiptTimeout   time.Duration
	pollInterval     time.Duration
}

func NewNode(eth api.EthNode, sessions SessionSource, sink notify.Sink, opts Options) *Node {
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Every(time.Second / time.Duration(opts.RateLimit))
	}
	if opts.RateLimitTimeout == 0 {
		opts.RateLimitTimeout = DefaultRateLimitTimeout
	}
	if opts.ReceiptTimeout == 0 {
		opts.ReceiptTimeout = DefaultReceiptTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = build.ReceiptPollInterval
	}
	if sink == nil {
		sink = notify.Nil
	}

	n := &Node{
		eth:              eth,
		sessions:         sessions,
		notify:           sink,
		addrs:            opts.Addresses,
		rateLimiter:      rate.NewLimiter(limit, MaxRateLimitTokens), // allow for a burst of MaxRateLimitTokens
		rateLimitTimeout: opts.RateLimitTimeout,
		receiptTimeout:   opts.ReceiptTimeout,
		pollInterval:     opts.PollInterval,
	}
	n.Rebind(wallet.SessionChange{Version: sessions.Version(), Session: sessions.Session()})
	return n
}

func (n *Node) limit(ctx context.Context, tokens int) error {
	ctx2, cancel := context.WithTimeout(ctx, n.rateLimitTimeout)
	defer cancel()

	err := n.rateLimiter.WaitN(ctx2, tokens)
	if err != nil {
		stats.Record(ctx, metrics.RateLimitCount.M(1))
		return fmt.Errorf("client busy. %w", err)
	}
	return nil
}

func (n *Node) fail(ctx context.Context, call Call, kind Kind, reason string, err error) error {
	gerr := &Error{Kind: kind, Contract: call.Contract, Method: call.Method, Reason: reason, Err: err}

	ctx = metrics.Tagged(ctx, tag.Upsert(metrics.ErrorKind, kind.String()))
	stats.Record(ctx, metrics.ContractCallFailure.M(1))

	if call.Quiet {
		log.Debugw("contract call failed", "contract", call.Contract, "method", call.Method, "kind", kind, "error", err)
		return gerr
	}

	log.Warnw("contract call failed", "contract", call.Contract, "method", call.Method, "kind", kind, "reason", reason, "error", err)
	n.notify.Show(notify.Error(kind.Category(), call.label()+" failed", gerr.Detail()))
	return gerr
}

// Read executes a view method and returns its decoded outputs. On failure the
// returned values are nil.
func (n *Node) Read(ctx context.Context, call Call) (contracts.Values, error) {
	ctx = metrics.Tagged(ctx,
		tag.Upsert(metrics.Contract, call.Contract.String()),
		tag.Upsert(metrics.Method, call.Method),
	)
	stop := metrics.Timer(ctx, metrics.ContractReadDuration)
	defer stop()

	if err := n.limit(ctx, readRateLimitTokens); err != nil {
		return nil, n.fail(ctx, call, TransientReadFailure, "", err)
	}

	a := contracts.ABI(call.Contract)
	data, err := a.Pack(call.Method, call.Args...)
	if err != nil {
		return nil, n.fail(ctx, call, DecodeError, "", xerrors.Errorf("packing arguments: %w", err))
	}

	to := n.addrs.Of(call.Contract)
	msg := api.EthCall{To: &to, Data: data}
	if b := n.Binding(); b.Writable() {
		from := b.Session.Address
		msg.From = &from
	}

	res, err := n.eth.EthCall(ctx, msg, api.BlockLatest)
	if err != nil {
		kind, reason := classify(err, TransientReadFailure)
		return nil, n.fail(ctx, call, kind, reason, err)
	}

	out, err := a.Unpack(call.Method, res)
	if err != nil {
		return nil, n.fail(ctx, call, DecodeError, "", fmt.Errorf("%w: %s", contracts.ErrDecode, err))
	}
	return out, nil
}

// writable resolves the session a write will be signed with.
func (n *Node) writable(call Call) (*wallet.Session, Kind) {
	if !n.sessions.Capable() {
		return nil, CapabilityMissing
	}
	b := n.Binding()
	if !b.Writable() {
		return nil, NoSession
	}
	if b.Version != n.sessions.Version() {
		return nil, StaleSession
	}
	if call.Session != nil && call.Session.Version != b.Version {
		return nil, StaleSession
	}
	return b.Session, KindUnknown
}

// Write signs and submits a state-changing call, then waits for its receipt.
// A receipt with a failed status is reported as ContractReverted.
func (n *Node) Write(ctx context.Context, call Call) (*api.EthTxReceipt, error) {
	ctx = metrics.Tagged(ctx,
		tag.Upsert(metrics.Contract, call.Contract.String()),
		tag.Upsert(metrics.Method, call.Method),
	)

	sess, kind := n.writable(call)
	if sess == nil {
		return nil, n.fail(ctx, call, kind, "", nil)
	}

	stop := metrics.Timer(ctx, metrics.ContractWriteDuration)
	defer stop()

	if err := n.limit(ctx, writeRateLimitTokens); err != nil {
		return nil, n.fail(ctx, call, SubmitFailure, "", err)
	}

	data, err := contracts.ABI(call.Contract).Pack(call.Method, call.Args...)
	if err != nil {
		return nil, n.fail(ctx, call, DecodeError, "", xerrors.Errorf("packing arguments: %w", err))
	}

	to := n.addrs.Of(call.Contract)
	from := sess.Address

	nonce, err := n.eth.EthGetTransactionCount(ctx, from, api.BlockPending)
	if err != nil {
		return nil, n.fail(ctx, call, SubmitFailure, "", xerrors.Errorf("getting nonce: %w", err))
	}
	gasPrice, err := n.eth.EthGasPrice(ctx)
	if err != nil {
		return nil, n.fail(ctx, call, SubmitFailure, "", xerrors.Errorf("getting gas price: %w", err))
	}
	gas, err := n.eth.EthEstimateGas(ctx, api.EthCall{From: &from, To: &to, Data: data})
	if err != nil {
		kind, reason := classify(err, SubmitFailure)
		return nil, n.fail(ctx, call, kind, reason, xerrors.Errorf("estimating gas: %w", err))
	}

	price := gasPrice.Int
	if price == nil {
		price = new(big.Int)
	}
	tx := ethtypes.NewTx(&ethtypes.LegacyTx{
		Nonce:    uint64(nonce),
		GasPrice: price,
		Gas:      uint64(gas) * (100 + gasMarginPct) / 100,
		To:       &to,
		Value:    new(big.Int),
		Data:     data,
	})

	signed, err := sess.Signer.SignTx(ctx, tx)
	if err != nil {
		kind, reason := classify(err, SubmitFailure)
		return nil, n.fail(ctx, call, kind, reason, xerrors.Errorf("signing: %w", err))
	}

	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, n.fail(ctx, call, SubmitFailure, "", xerrors.Errorf("encoding transaction: %w", err))
	}

	hash, err := n.eth.EthSendRawTransaction(ctx, raw)
	if err != nil {
		kind, reason := classify(err, SubmitFailure)
		return nil, n.fail(ctx, call, kind, reason, xerrors.Errorf("submitting: %w", err))
	}
	log.Infow("transaction submitted", "contract", call.Contract, "method", call.Method, "hash", hash, "nonce", uint64(nonce))

	receipt, err := n.waitReceipt(ctx, hash)
	if err != nil {
		return nil, n.fail(ctx, call, SubmitFailure, "", xerrors.Errorf("waiting for %s: %w", hash, err))
	}
	if !receipt.Succeeded() {
		return receipt, n.fail(ctx, call, ContractReverted, "", xerrors.Errorf("transaction %s failed in block %d", hash, uint64(receipt.BlockNumber)))
	}

	log.Infow("transaction included", "hash", hash, "block", uint64(receipt.BlockNumber), "gasUsed", uint64(receipt.GasUsed))
	return receipt, nil
}

func (n *Node) waitReceipt(ctx context.Context, hash common.Hash) (*api.EthTxReceipt, error) {
	ctx, cancel := context.WithTimeout(ctx, n.receiptTimeout)
	defer cancel()

	ticker := build.Clock.Ticker(n.pollInterval)
	defer ticker.Stop()

	for {
		r, err := n.eth.EthGetTransactionReceipt(ctx, hash)
		switch {
		case err != nil:
			log.Debugw("receipt not available", "hash", hash, "error", err)
		case r != nil:
			return r, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
