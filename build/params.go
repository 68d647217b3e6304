package build

import (
	"time"
)

// /////
// Network

// Hedera testnet, the network the marketplace contracts are deployed on.
const (
	TargetChainID     = 296
	TargetChainName   = "Hedera Testnet"
	TargetRPCURL      = "https://testnet.hashio.io/api"
	TargetExplorerURL = "https://hashscan.io/testnet"

	NativeCurrencyName     = "HBAR"
	NativeCurrencySymbol   = "HBAR"
	NativeCurrencyDecimals = 18
)

// /////
// Contracts

const (
	MarketplaceAddress = "0xAdB02aaC89051778f505f7FC6A905E21283a62d3"
	StablecoinAddress  = "0x7fdde93c75669792002c8dbd49d0f6e869d15c96"
)

// StablecoinDecimals is the number of decimal places in one whole stablecoin.
const StablecoinDecimals = 6

// StablecoinPrecision is the number of minor units in one whole stablecoin.
const StablecoinPrecision = 1_000_000

// /////
// Timing

// ReceiptPollInterval is how often a pending transaction receipt is re-queried.
var ReceiptPollInterval = 2 * time.Second

// SettlingDelay is the last-resort wait before re-reading after a listing write.
var SettlingDelay = 2 * time.Second

// SettleAttempts bounds how many times the listing flow polls for its new record.
var SettleAttempts = 5

// SettlePollInterval is the first wait between settle polls; it doubles per attempt.
var SettlePollInterval = 500 * time.Millisecond

// /////
// Storage

// IPFSGateways are the public mirrors tried, in order, to fetch listing images.
var IPFSGateways = []string{
	"https://dweb.link/ipfs/",
	"https://cloudflare-ipfs.com/ipfs/",
	"https://gateway.pinata.cloud/ipfs/",
	"https://ipfs.io/ipfs/",
}

// IPFSAPIURL is the kubo RPC endpoint used for uploads.
const IPFSAPIURL = "http://127.0.0.1:5001"
