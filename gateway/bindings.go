package gateway

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/peermart/peermart-go/chain/contracts"
	"github.com/peermart/peermart-go/chain/wallet"
)

// Addresses locates the two deployed contracts.
type Addresses struct {
	Marketplace common.Address
	Stablecoin  common.Address
}

func (a Addresses) Of(c contracts.Contract) common.Address {
	if c == contracts.Stablecoin {
		return a.Stablecoin
	}
	return a.Marketplace
}

// Binding is the marketplace and stablecoin pair bound to one session
// version. A binding with a nil Session can only be used for reads.
type Binding struct {
	Version   uint64
	Session   *wallet.Session
	Addresses Addresses
}

func (b *Binding) Writable() bool {
	return b != nil && b.Session != nil
}

// Rebind replaces the current binding with one for change. Changes older
// than the current binding are ignored.
func (n *Node) Rebind(change wallet.SessionChange) {
	next := &Binding{
		Version:   change.Version,
		Session:   change.Session,
		Addresses: n.addrs,
	}
	for {
		cur := n.bind.Load()
		if cur != nil && cur.Version > change.Version {
			return
		}
		if n.bind.CompareAndSwap(cur, next) {
			break
		}
	}
	log.Debugw("contracts rebound", "version", change.Version, "writable", next.Writable())
}

// Binding returns the current binding.
func (n *Node) Binding() *Binding {
	return n.bind.Load()
}
