package wallet

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/peermart/peermart-go/chain/types"
)

// Session is the current authenticated context. A session is immutable; the
// Manager replaces it wholesale and bumps Version on every change, so holders
// of an older session can tell it is stale.
type Session struct {
	Address common.Address
	Balance types.BigInt
	ChainID uint64
	Signer  Signer
	Version uint64
}

// SessionChange is delivered to subscribers. Session is nil after a
// disconnect or reset.
type SessionChange struct {
	Version uint64
	Session *Session
}

type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "disconnected"
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "unknown"
	}
}
