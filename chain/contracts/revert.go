package contracts

import (
	"bytes"
	"regexp"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var hexData = regexp.MustCompile(`0x[0-9a-fA-F]{8,}`)

// RevertReason names the custom error, or returns the reason string, encoded in
// revert data returned by either contract.
func RevertReason(data []byte) (string, bool) {
	if len(data) < 4 {
		return "", false
	}
	if reason, err := abi.UnpackRevert(data); err == nil {
		return reason, true
	}
	for _, a := range []*abi.ABI{&marketplaceABI, &stablecoinABI} {
		for name, e := range a.Errors {
			if bytes.Equal(e.ID[:4], data[:4]) {
				return name, true
			}
		}
	}
	return "", false
}

// RevertReasonFromMessage looks for hex-encoded revert data inside an RPC error
// message, which is where most endpoints put it.
func RevertReasonFromMessage(msg string) (string, bool) {
	for _, m := range hexData.FindAllString(msg, -1) {
		b, err := hexutil.Decode(m)
		if err != nil {
			continue
		}
		if r, ok := RevertReason(b); ok {
			return r, true
		}
	}
	return "", false
}
