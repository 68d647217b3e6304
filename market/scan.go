package market

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.opencensus.io/stats"
	"go.opencensus.io/tag"
	"golang.org/x/xerrors"

	"github.com/peermart/peermart-go/metrics"
)

// ScanReport summarizes one pass over an id space.
type ScanReport struct {
	Total    uint64
	Kept     int
	Absent   int
	Filtered int
	Skipped  int
	// Errors holds one entry per skipped id, or nil.
	Errors error
}

// maxScanPrealloc bounds the slice preallocated from a ledger count.
const maxScanPrealloc = 1024

func (r ScanReport) String() string {
	return fmt.Sprintf("total=%d kept=%d absent=%d filtered=%d skipped=%d", r.Total, r.Kept, r.Absent, r.Filtered, r.Skipped)
}

// Scan walks src from the highest id down to 1 and returns the entities that
// exist and satisfy keep, newest first. A failed Fetch skips that id only; a
// failed Count aborts the scan.
func Scan[T any](ctx context.Context, collection string, src Source[T], keep func(*T) bool) ([]*T, ScanReport, error) {
	ctx = metrics.Tagged(ctx, tag.Upsert(metrics.Collection, collection))
	stop := metrics.Timer(ctx, metrics.ScanDuration)
	defer stop()

	n, err := src.Count(ctx)
	if err != nil {
		return nil, ScanReport{}, xerrors.Errorf("counting %s: %w", collection, err)
	}

	rep := ScanReport{Total: n}
	var merr *multierror.Error
	out := make([]*T, 0, min(n, maxScanPrealloc))

	for id := n; id >= 1; id-- {
		if err := ctx.Err(); err != nil {
			return nil, rep, err
		}

		item, err := src.Fetch(ctx, id)
		if err != nil {
			rep.Skipped++
			merr = multierror.Append(merr, xerrors.Errorf("%s %d: %w", collection, id, err))
			log.Warnw("skipping record", "collection", collection, "id", id, "error", err)
			continue
		}
		if item == nil {
			rep.Absent++
			continue
		}
		if keep != nil && !keep(item) {
			rep.Filtered++
			continue
		}
		out = append(out, item)
	}

	rep.Kept = len(out)
	rep.Errors = merr.ErrorOrNil()
	stats.Record(ctx, metrics.ScanKept.M(int64(rep.Kept)), metrics.ScanSkipped.M(int64(rep.Skipped)))
	log.Debugw("scan done", "collection", collection, "report", rep.String())

	return out, rep, nil
}
