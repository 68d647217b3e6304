package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/peermart/peermart-go/api"
	"github.com/peermart/peermart-go/chain/types"
	"github.com/peermart/peermart-go/chain/wallet"
)

func testApp(out io.Writer) *cli.App {
	return &cli.App{
		Name:      "peermart",
		Flags:     []cli.Flag{FlagConfig, FlagLogLevel, FlagMetricsListen},
		Commands:  Commands,
		Writer:    out,
		ErrWriter: io.Discard,
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func rawCid(t *testing.T, data []byte) cid.Cid {
	t.Helper()
	mh, err := multihash.Sum(data, multihash.SHA2_256, -1)
	require.NoError(t, err)
	return cid.NewCidV1(cid.Raw, mh)
}

func TestConfigDefault(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "config", "default"}))
	require.Contains(t, out.String(), "[Contracts]")
	require.Contains(t, out.String(), "[IPFS]")
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "--config", path, "config", "init"}))
	require.FileExists(t, path)

	err := testApp(&out).Run([]string{"peermart", "--config", path, "config", "init"})
	require.ErrorContains(t, err, "already exists")
}

func TestPurchasesHelpMentionsReceiptTimeout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "purchases", "--help"}))
	require.Contains(t, out.String(), "Gateway.ConfirmTimeout")
	require.Contains(t, out.String(), "still be mined")
}

func TestImageURL(t *testing.T) {
	c := rawCid(t, []byte("photo"))
	path := writeConfig(t, `
[IPFS]
Gateways = ["https://a.example/ipfs/", "https://b.example/ipfs/"]
`)

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "--config", path, "image", "url", "ipfs://" + c.String()}))
	require.Equal(t, fmt.Sprintf("https://a.example/ipfs/%s\nhttps://b.example/ipfs/%s\n", c, c), out.String())

	err := testApp(&out).Run([]string{"peermart", "--config", path, "image", "url"})
	var phe *PrintHelpErr
	require.ErrorAs(t, err, &phe)
}

func TestImageFetch(t *testing.T) {
	data := []byte("not really a png")
	c := rawCid(t, data)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ipfs/"+c.String() {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	path := writeConfig(t, fmt.Sprintf(`
[IPFS]
Gateways = ["%s/ipfs/"]
FetchTimeout = "5s"
`, srv.URL))
	dst := filepath.Join(t.TempDir(), "image.png")

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "--config", path, "image", "fetch", "--out", dst, c.String()}))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, data, got)
	require.Contains(t, out.String(), srv.URL)
}

func TestImageUpload(t *testing.T) {
	data := []byte("upload me")
	c := rawCid(t, data)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v0/version":
			_, _ = fmt.Fprint(w, `{"Version":"0.32.1"}`)
			return
		case "/api/v0/add":
		default:
			http.NotFound(w, r)
			return
		}
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		part, err := mr.NextPart()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		body, _ := io.ReadAll(part)
		if !bytes.Equal(body, data) {
			http.Error(w, "unexpected body", http.StatusBadRequest)
			return
		}
		_, _ = fmt.Fprintf(w, `{"Name":"%s","Hash":"%s","Size":"%d"}`, c, c, len(data))
	}))
	defer srv.Close()

	path := writeConfig(t, fmt.Sprintf(`
[IPFS]
APIURL = "%s"
`, srv.URL))
	file := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(file, data, 0644))

	var out bytes.Buffer
	require.NoError(t, testApp(&out).Run([]string{"peermart", "--config", path, "image", "upload", file}))
	require.Equal(t, "ipfs://"+c.String()+"\n", out.String())
}

func TestTerminalApproverUsesEnv(t *testing.T) {
	t.Setenv("PEERMART_TEST_PASSPHRASE", "hunter2")
	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")

	pass, err := TerminalApprover("PEERMART_TEST_PASSPHRASE", io.Discard)(context.Background(), addr)
	require.NoError(t, err)
	require.Equal(t, "hunter2", pass)
}

func TestTerminalApproverWithoutTerminal(t *testing.T) {
	stdin := os.Stdin
	f, err := os.Open(os.DevNull)
	require.NoError(t, err)
	os.Stdin = f
	defer func() {
		os.Stdin = stdin
		_ = f.Close()
	}()

	addr := common.HexToAddress("0x1111111111111111111111111111111111111111")
	_, err = TerminalApprover("PEERMART_UNSET_PASSPHRASE", io.Discard)(context.Background(), addr)
	require.ErrorIs(t, err, wallet.ErrUserRejected)
}

func TestFormatting(t *testing.T) {
	bal, err := types.BigFromString("1500000000000000000")
	require.NoError(t, err)
	require.Equal(t, "1.5 HBAR", formatNative(bal))
	require.Equal(t, "0 HBAR", formatNative(types.BigInt{}))

	r := &api.EthTxReceipt{TransactionHash: common.HexToHash("0xabc")}
	require.Equal(t, "https://hashscan.io/testnet/transaction/"+r.TransactionHash.Hex(), txLink("https://hashscan.io/testnet/", r))
	require.Equal(t, r.TransactionHash.Hex(), txLink("", r))

	require.True(t, strings.Contains(purchaseStatus(&types.Purchase{IsPaid: true}), "in escrow"))
	require.True(t, strings.Contains(purchaseStatus(&types.Purchase{IsPaid: true, IsSold: true}), "completed"))
	require.True(t, strings.Contains(purchaseStatus(&types.Purchase{}), "canceled"))
}

func TestFlowErrIsReported(t *testing.T) {
	require.NoError(t, flowErr(nil))
	require.ErrorIs(t, flowErr(fmt.Errorf("boom")), errReported)
}
