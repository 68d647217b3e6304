package contracts

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

var (
	seller = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	buyer  = common.HexToAddress("0x00000000000000000000000000000000000000b2")
)

func productValues(id, inventory int64) Values {
	return Values{
		big.NewInt(id), "Mug", "ipfs://bafy", big.NewInt(2_500_000), seller, "Ann", "Blue mug",
		big.NewInt(inventory), big.NewInt(3),
	}
}

func TestDecodeProduct(t *testing.T) {
	p, err := DecodeProduct(productValues(7, 4))
	require.NoError(t, err)
	require.NotNil(t, p)
	require.EqualValues(t, 7, p.ID)
	require.Equal(t, "Mug", p.Name)
	require.Equal(t, "2.5 USDC", p.Price.String())
	require.Equal(t, seller, p.Seller)
	require.EqualValues(t, 4, p.Inventory)
	require.EqualValues(t, 3, p.TotalSold)
	require.True(t, p.Available())

	t.Run("zero id is absent", func(t *testing.T) {
		p, err := DecodeProduct(productValues(0, 4))
		require.NoError(t, err)
		require.Nil(t, p)
	})

	t.Run("short tuple", func(t *testing.T) {
		_, err := DecodeProduct(productValues(1, 1)[:5])
		require.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("wrong type", func(t *testing.T) {
		v := productValues(1, 1)
		v[4] = "not an address"
		_, err := DecodeProduct(v)
		require.True(t, errors.Is(err, ErrDecode))
	})
}

func TestDecodePurchase(t *testing.T) {
	p, err := DecodePurchase(Values{big.NewInt(3), buyer, true, false})
	require.NoError(t, err)
	require.True(t, p.Pending())

	p, err = DecodePurchase(Values{big.NewInt(0), common.Address{}, false, false})
	require.NoError(t, err)
	require.Nil(t, p)

	_, err = DecodePurchase(Values{big.NewInt(3), buyer, false, true})
	require.True(t, errors.Is(err, ErrDecode))
}

func TestDecodeSeller(t *testing.T) {
	profile := Values{"Ann", "https://x.com/ann", big.NewInt(5), big.NewInt(1), big.NewInt(0), big.NewInt(4)}
	contacts := Values{"Lagos", "+234"}

	s, err := DecodeSeller(seller, profile, contacts)
	require.NoError(t, err)
	require.Equal(t, "Ann", s.Name)
	require.Equal(t, "Lagos", s.Location)
	require.EqualValues(t, 4, s.Rating)

	profile[0] = ""
	s, err = DecodeSeller(seller, profile, contacts)
	require.NoError(t, err)
	require.Nil(t, s)
}

func TestABIPackUnpack(t *testing.T) {
	data, err := ABI(Marketplace).Pack(MethodPurchases, big.NewInt(5), buyer)
	require.NoError(t, err)
	require.Len(t, data, 4+32+32)

	require.True(t, IsView(Marketplace, MethodProducts))
	require.False(t, IsView(Marketplace, MethodPurchaseProduct))
	require.True(t, IsView(Stablecoin, MethodAllowance))
	require.False(t, IsView(Stablecoin, MethodApprove))
}

func TestRevertReason(t *testing.T) {
	sel := crypto.Keccak256([]byte("SellerAlreadyRegistered()"))[:4]
	r, ok := RevertReason(sel)
	require.True(t, ok)
	require.Equal(t, "SellerAlreadyRegistered", r)

	r, ok = RevertReasonFromMessage("execution reverted: " + hexutil.Encode(sel))
	require.True(t, ok)
	require.Equal(t, "SellerAlreadyRegistered", r)

	_, ok = RevertReasonFromMessage("connection refused")
	require.False(t, ok)
}
