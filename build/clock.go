package build

import "github.com/raulk/clock"

// Clock is the global clock for the client, settable for testing.
var Clock = clock.New()
