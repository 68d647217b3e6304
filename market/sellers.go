package market

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/gateway"
	"github.com/peermart/peermart-go/notify"
)

// SellerRegistry reads seller profiles and tracks the session's own one.
type SellerRegistry struct {
	r        Reader
	sessions SessionSource
	sink     notify.Sink

	self *Feed[*types.Seller]
}

func NewSellerRegistry(r Reader, sessions SessionSource, sink notify.Sink) *SellerRegistry {
	return &SellerRegistry{
		r:        r,
		sessions: sessions,
		sink:     sink,
		self:     NewFeed[*types.Seller](currentVersion(sessions)),
	}
}

// Feed publishes the session seller; an empty snapshot means not registered.
func (s *SellerRegistry) Feed() *Feed[*types.Seller] { return s.self }

// Current returns the session seller from the latest snapshot, or nil.
func (s *SellerRegistry) Current() *types.Seller {
	items := s.self.Items()
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

// Lookup reads the profile and contacts of addr in parallel. It returns
// (nil, nil) for an unregistered address.
func (s *SellerRegistry) Lookup(ctx context.Context, addr common.Address) (*types.Seller, error) {
	var profile, contacts contracts.Values
	var blocked bool

	var g errgroup.Group
	g.Go(func() (err error) {
		profile, err = s.r.Read(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodSellers,
			Args:     []interface{}{addr},
			Label:    "Load seller profile",
		})
		return err
	})
	g.Go(func() (err error) {
		contacts, err = s.r.Read(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodSellerContacts,
			Args:     []interface{}{addr},
			Label:    "Load seller contacts",
		})
		return err
	})
	g.Go(func() error {
		v, err := s.r.Read(ctx, gateway.Call{
			Contract: contracts.Marketplace,
			Method:   contracts.MethodIsSellerBlocked,
			Args:     []interface{}{addr},
			Quiet:    true,
		})
		if err != nil {
			log.Debugw("blocked status unavailable", "seller", addr, "error", err)
			return nil
		}
		blocked, _ = v.Bool(0)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seller, err := contracts.DecodeSeller(addr, profile, contacts)
	if err != nil || seller == nil {
		return nil, err
	}

	if blocked {
		seller.Blocked = s.blockedRecord(ctx, addr)
	}
	return seller, nil
}

func (s *SellerRegistry) blockedRecord(ctx context.Context, addr common.Address) *types.BlockedSeller {
	fallback := &types.BlockedSeller{Address: addr}

	v, err := s.r.Read(ctx, gateway.Call{
		Contract: contracts.Marketplace,
		Method:   contracts.MethodBlockedSellers,
		Args:     []interface{}{addr},
		Quiet:    true,
	})
	if err != nil {
		return fallback
	}
	b, err := contracts.DecodeBlockedSeller(v)
	if err != nil {
		log.Warnw("decoding blocked seller", "seller", addr, "error", err)
		return fallback
	}
	if b.Address == (common.Address{}) {
		b.Address = addr
	}
	return b
}

// RefreshSelf re-reads the session address's own seller profile. Without a
// session the record is cleared.
func (s *SellerRegistry) RefreshSelf(ctx context.Context) (*types.Seller, error) {
	sess := s.sessions.Session()
	if sess == nil {
		s.self.Clear(s.sessions.Version())
		return nil, nil
	}

	seq := s.self.Begin()
	seller, err := s.Lookup(ctx, sess.Address)
	if err != nil {
		return nil, err
	}

	var items []*types.Seller
	if seller != nil {
		items = []*types.Seller{seller}
	}
	s.self.Publish(Snapshot[*types.Seller]{Seq: seq, Version: sess.Version, Items: items})
	return seller, nil
}
