package metrics

import (
	"context"
	"net/http"
	"time"

	ocprom "contrib.go.opencensus.io/exporter/prometheus"
	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"

	rpcmetrics "github.com/filecoin-project/go-jsonrpc/metrics"

	"github.com/peermart/peermart-go/build"
)

// Distributions
var defaultMillisecondsDistribution = view.Distribution(
	1, 2, 5, 10, 20, 30, 50, 75, 100, // fast reads
	150, 200, 300, 400, 500, 750, 1000, 1500, 2000, // slow reads
	3000, 5000, 8000, 10000, 15000, 20000, 30000, 45000, 60000, 120000, // writes waiting for inclusion
)

var scanSizeDistribution = view.Distribution(0, 1, 2, 5, 10, 20, 50, 100, 200, 500, 1000, 5000)

// Tags
var (
	// common
	Version, _ = tag.NewKey("version")
	Commit, _  = tag.NewKey("commit")
	Network, _ = tag.NewKey("network")

	// gateway
	Contract, _  = tag.NewKey("contract")
	Method, _    = tag.NewKey("method")
	ErrorKind, _ = tag.NewKey("error_kind")

	// market
	Collection, _ = tag.NewKey("collection")
	Flow, _       = tag.NewKey("flow")
	Outcome, _    = tag.NewKey("outcome")

	// storage
	Gateway, _ = tag.NewKey("gateway")
)

// Measures
var (
	PeerMartInfo = stats.Int64("info", "Arbitrary counter to tag peermart info to", stats.UnitDimensionless)

	// gateway
	ContractReadDuration  = stats.Float64("contract/read_ms", "Duration of contract view calls", stats.UnitMilliseconds)
	ContractWriteDuration = stats.Float64("contract/write_ms", "Duration of contract writes until inclusion", stats.UnitMilliseconds)
	ContractCallFailure   = stats.Int64("contract/failure", "Counter for failed contract calls", stats.UnitDimensionless)
	RateLimitCount        = stats.Int64("ratelimit/limited", "rate limited calls", stats.UnitDimensionless)

	// wallet
	SessionChanges = stats.Int64("wallet/session_changes", "Counter for wallet session replacements", stats.UnitDimensionless)

	// market
	ScanDuration = stats.Float64("market/scan_ms", "Duration of id space scans", stats.UnitMilliseconds)
	ScanKept     = stats.Int64("market/scan_kept", "Records kept by a scan", stats.UnitDimensionless)
	ScanSkipped  = stats.Int64("market/scan_skipped", "Ids skipped by a scan because the read failed", stats.UnitDimensionless)
	FlowOutcome  = stats.Int64("market/flow", "Counter for finished user flows", stats.UnitDimensionless)

	// storage
	IPFSFetchDuration = stats.Float64("ipfs/fetch_ms", "Duration of content fetches", stats.UnitMilliseconds)
	IPFSFetchFailure  = stats.Int64("ipfs/fetch_failure", "Counter for failed mirror fetches", stats.UnitDimensionless)
	IPFSUploadBytes   = stats.Int64("ipfs/upload_bytes", "Bytes uploaded to the pinning node", stats.UnitBytes)
)

var (
	InfoView = &view.View{
		Name:        "info",
		Description: "PeerMart client information",
		Measure:     PeerMartInfo,
		Aggregation: view.LastValue(),
		TagKeys:     []tag.Key{Version, Commit, Network},
	}
	ContractReadDurationView = &view.View{
		Measure:     ContractReadDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Contract, Method},
	}
	ContractWriteDurationView = &view.View{
		Measure:     ContractWriteDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Contract, Method},
	}
	ContractCallFailureView = &view.View{
		Measure:     ContractCallFailure,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Contract, Method, ErrorKind},
	}
	RateLimitedView = &view.View{
		Measure:     RateLimitCount,
		Aggregation: view.Count(),
	}
	SessionChangesView = &view.View{
		Measure:     SessionChanges,
		Aggregation: view.Count(),
	}
	ScanDurationView = &view.View{
		Measure:     ScanDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Collection},
	}
	ScanKeptView = &view.View{
		Measure:     ScanKept,
		Aggregation: scanSizeDistribution,
		TagKeys:     []tag.Key{Collection},
	}
	ScanSkippedView = &view.View{
		Measure:     ScanSkipped,
		Aggregation: view.Sum(),
		TagKeys:     []tag.Key{Collection},
	}
	FlowOutcomeView = &view.View{
		Measure:     FlowOutcome,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Flow, Outcome},
	}
	IPFSFetchDurationView = &view.View{
		Measure:     IPFSFetchDuration,
		Aggregation: defaultMillisecondsDistribution,
		TagKeys:     []tag.Key{Gateway},
	}
	IPFSFetchFailureView = &view.View{
		Measure:     IPFSFetchFailure,
		Aggregation: view.Count(),
		TagKeys:     []tag.Key{Gateway},
	}
	IPFSUploadBytesView = &view.View{
		Measure:     IPFSUploadBytes,
		Aggregation: view.Sum(),
	}
)

var views = []*view.View{
	InfoView,
	ContractReadDurationView,
	ContractWriteDurationView,
	ContractCallFailureView,
	RateLimitedView,
	SessionChangesView,
	ScanDurationView,
	ScanKeptView,
	ScanSkippedView,
	FlowOutcomeView,
	IPFSFetchDurationView,
	IPFSFetchFailureView,
	IPFSUploadBytesView,
}

// DefaultViews is an array of OpenCensus views for metric gathering purposes
var DefaultViews = func() []*view.View {
	return views
}()

// RegisterViews adds views to the default list without modifying this file.
func RegisterViews(v ...*view.View) {
	views = append(views, v...)
}

func init() {
	RegisterViews(rpcmetrics.DefaultViews...)
}

// Exporter registers the default views and returns a handler serving them
// in the prometheus text format.
func Exporter(namespace string) (http.Handler, error) {
	if err := view.Register(views...); err != nil {
		return nil, err
	}

	registry, ok := promclient.DefaultRegisterer.(*promclient.Registry)
	if !ok {
		registry = promclient.NewRegistry()
	}
	exporter, err := ocprom.NewExporter(ocprom.Options{
		Registry:  registry,
		Namespace: namespace,
	})
	if err != nil {
		return nil, err
	}

	ctx, _ := tag.New(context.Background(),
		tag.Insert(Version, build.BuildVersion),
		tag.Insert(Commit, build.CurrentCommit),
		tag.Insert(Network, build.TargetChainName),
	)
	stats.Record(ctx, PeerMartInfo.M(1))

	return exporter, nil
}

// SinceInMilliseconds returns the duration of time since the provide time as a float64.
func SinceInMilliseconds(startTime time.Time) float64 {
	return float64(build.Clock.Since(startTime).Milliseconds())
}

// Timer is a function stopwatch, calling it starts the timer,
// calling the returned function will record the duration.
func Timer(ctx context.Context, m *stats.Float64Measure) func() time.Duration {
	start := build.Clock.Now()
	return func() time.Duration {
		stats.Record(ctx, m.M(SinceInMilliseconds(start)))
		return build.Clock.Since(start)
	}
}

// Tagged returns ctx with the given tags upserted, ignoring tagging errors.
func Tagged(ctx context.Context, mutators ...tag.Mutator) context.Context {
	tctx, err := tag.New(ctx, mutators...)
	if err != nil {
		return ctx
	}
	return tctx
}
