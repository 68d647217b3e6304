package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

// Block parameters accepted by state queries.
const (
	BlockLatest  = "latest"
	BlockPending = "pending"
)

type EthUint64 uint64

func (e EthUint64) MarshalJSON() ([]byte, error) {
	if e == 0 {
		return json.Marshal("0x0")
	}
	return json.Marshal(fmt.Sprintf("0x%x", uint64(e)))
}

func (e *EthUint64) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsedInt, err := strconv.ParseUint(strings.Replace(s, "0x", "", -1), 16, 64)
	if err != nil {
		return err
	}
	*e = EthUint64(parsedInt)
	return nil
}

type EthBigInt struct {
	*big.Int
}

func NewEthBigInt(i *big.Int) EthBigInt {
	if i == nil {
		return EthBigInt{Int: big.NewInt(0)}
	}
	return EthBigInt{Int: new(big.Int).Set(i)}
}

func (e EthBigInt) MarshalJSON() ([]byte, error) {
	if e.Int == nil {
		return json.Marshal("0x0")
	}
	return json.Marshal(fmt.Sprintf("0x%x", e.Int))
}

func (e *EthBigInt) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	replaced := strings.Replace(s, "0x", "", -1)
	if replaced == "" {
		replaced = "0"
	}

	i, ok := new(big.Int).SetString(replaced, 16)
	if !ok {
		return xerrors.Errorf("invalid hex quantity %q", s)
	}
	e.Int = i
	return nil
}

type EthBytes []byte

func (e EthBytes) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return json.Marshal("0x")
	}
	return json.Marshal("0x" + hex.EncodeToString(e))
}

func (e *EthBytes) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}

	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}

	*e = decoded
	return nil
}

// EthCall is a message as passed to eth_call and eth_estimateGas.
type EthCall struct {
	From     *common.Address `json:"from,omitempty"`
	To       *common.Address `json:"to"`
	Gas      EthUint64       `json:"gas,omitempty"`
	GasPrice *EthBigInt      `json:"gasPrice,omitempty"`
	Value    *EthBigInt      `json:"value,omitempty"`
	Data     EthBytes        `json:"data"`
}

type EthTxReceipt struct {
	TransactionHash   common.Hash     `json:"transactionHash"`
	TransactionIndex  EthUint64       `json:"transactionIndex"`
	BlockHash         common.Hash     `json:"blockHash"`
	BlockNumber       EthUint64       `json:"blockNumber"`
	From              common.Address  `json:"from"`
	To                *common.Address `json:"to"`
	Status            EthUint64       `json:"status"`
	CumulativeGasUsed EthUint64       `json:"cumulativeGasUsed"`
	GasUsed           EthUint64       `json:"gasUsed"`
	EffectiveGasPrice EthBigInt       `json:"effectiveGasPrice"`
	Logs              json.RawMessage `json:"logs,omitempty"`
}

// Succeeded reports whether the transaction executed without reverting.
func (r *EthTxReceipt) Succeeded() bool {
	return r.Status == 1
}
