package api

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

type TestCase struct {
	Input  interface{}
	Output interface{}
}

func TestEthUint64(t *testing.T) {
	testcases := []TestCase{
		{EthUint64(0), []byte("\"0x0\"")},
		{EthUint64(65), []byte("\"0x41\"")},
		{EthUint64(1024), []byte("\"0x400\"")},
	}

	for _, tc := range testcases {
		j, err := tc.Input.(EthUint64).MarshalJSON()
		require.Nil(t, err)
		require.Equal(t, j, tc.Output)
	}

	for _, tc := range testcases {
		var i EthUint64
		err := i.UnmarshalJSON(tc.Output.([]byte))
		require.Nil(t, err)
		require.Equal(t, i, tc.Input)
	}
}

func TestEthBigInt(t *testing.T) {
	huge, _ := new(big.Int).SetString("323330131220712761719252861321216", 10)

	testcases := []TestCase{
		{NewEthBigInt(big.NewInt(0)), []byte("\"0x0\"")},
		{NewEthBigInt(big.NewInt(65)), []byte("\"0x41\"")},
		{NewEthBigInt(big.NewInt(1024)), []byte("\"0x400\"")},
		{NewEthBigInt(huge), []byte("\"0xff1000000000000000000000000\"")},
	}

	for _, tc := range testcases {
		j, err := tc.Input.(EthBigInt).MarshalJSON()
		require.Nil(t, err)
		require.Equal(t, j, tc.Output)
	}

	for _, tc := range testcases {
		var i EthBigInt
		err := i.UnmarshalJSON(tc.Output.([]byte))
		require.Nil(t, err)
		require.Equal(t, 0, i.Cmp(tc.Input.(EthBigInt).Int))
	}

	j, err := EthBigInt{}.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, []byte("\"0x0\""), j)

	var bad EthBigInt
	require.Error(t, bad.UnmarshalJSON([]byte("\"0xzz\"")))
}

func TestEthBytes(t *testing.T) {
	j, err := EthBytes(nil).MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, []byte("\"0x\""), j)

	var b EthBytes
	require.NoError(t, b.UnmarshalJSON([]byte("\"0xa9059cbb\"")))
	require.Equal(t, EthBytes{0xa9, 0x05, 0x9c, 0xbb}, b)

	// odd length quantities are left padded
	require.NoError(t, b.UnmarshalJSON([]byte("\"0x1\"")))
	require.Equal(t, EthBytes{0x01}, b)
}

func TestEthCallOmitsUnsetFields(t *testing.T) {
	to := common.HexToAddress("0xAdB02aaC89051778f505f7FC6A905E21283a62d3")
	b, err := json.Marshal(EthCall{To: &to, Data: EthBytes{0x01, 0x02}})
	require.NoError(t, err)

	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &m))
	require.Equal(t, map[string]interface{}{
		"to":   "0xadb02aac89051778f505f7fc6a905e21283a62d3",
		"data": "0x0102",
	}, m)
}

func TestEthTxReceipt(t *testing.T) {
	raw := `{
		"transactionHash": "0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060",
		"transactionIndex": "0x0",
		"blockHash": "0x0b5b8a2b5b9e4b3d2c9f2b7a1f0a6a0c0e6e9f1f4d8c2b7e3f1a0b9c8d7e6f5a",
		"blockNumber": "0x1b4",
		"from": "0x1111111111111111111111111111111111111111",
		"to": "0xadb02aac89051778f505f7fc6a905e21283a62d3",
		"status": "0x1",
		"cumulativeGasUsed": "0x5208",
		"gasUsed": "0x5208",
		"effectiveGasPrice": "0x3b9aca00"
	}`

	var r EthTxReceipt
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	require.True(t, r.Succeeded())
	require.Equal(t, EthUint64(436), r.BlockNumber)
	require.Equal(t, EthUint64(21000), r.GasUsed)
	require.Equal(t, int64(1000000000), r.EffectiveGasPrice.Int64())

	r.Status = 0
	require.False(t, r.Succeeded())
}
