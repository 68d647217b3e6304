package retry

import (
	"context"
	"errors"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"github.com/jpillora/backoff"

	"github.com/peermart/peermart-go/build"
)

var log = logging.Logger("retry")

const maxSleepFactor = 64

// ErrNotYet is returned by a polled function whose condition does not hold yet.
var ErrNotYet = errors.New("condition not met yet")

// On returns a predicate matching any of the given errors.
func On(errs ...error) func(error) bool {
	return func(err error) bool {
		for _, e := range errs {
			if errors.Is(err, e) {
				return true
			}
		}
		return false
	}
}

// Retry calls f up to attempts times while the error it returns satisfies
// retryable. The wait between attempts starts at sleep and doubles, up to
// maxSleepFactor times sleep.
func Retry[T any](ctx context.Context, attempts int, sleep time.Duration, retryable func(error) bool, f func(context.Context) (T, error)) (result T, err error) {
	b := &backoff.Backoff{
		Min:    sleep,
		Max:    sleep * maxSleepFactor,
		Factor: 2,
	}
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := b.Duration()
			log.Debugw("retrying after error", "attempt", i+1, "wait", wait, "error", err)
			select {
			case <-build.Clock.After(wait):
			case <-ctx.Done():
				return result, ctx.Err()
			}
		}
		result, err = f(ctx)
		if err == nil || !retryable(err) {
			return result, err
		}
	}
	log.Debugw("giving up", "attempts", attempts, "error", err)
	return result, err
}
