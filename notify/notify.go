package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	logging "github.com/ipfs/go-log/v2"

	"github.com/peermart/peermart-go/build"
)

var log = logging.Logger("notify")

type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Category is the stable, user-facing classification of a failure.
type Category string

const (
	CategoryNone             Category = ""
	CategoryValidation       Category = "validation"
	CategoryWalletRejected   Category = "wallet-rejected"
	CategoryNetwork          Category = "network"
	CategoryContractReverted Category = "contract-reverted"
)

type Notification struct {
	Severity Severity
	Category Category
	Summary  string
	Detail   string

	// OpID correlates the notification with the flow that raised it, if any.
	OpID string
	Time time.Time
}

func (n Notification) String() string {
	s := n.Summary
	if n.Detail != "" {
		s += ": " + n.Detail
	}
	if n.Category != CategoryNone {
		s = fmt.Sprintf("[%s] %s", n.Category, s)
	}
	return s
}

// Sink is the single surface every component reports outcomes through.
type Sink interface {
	Show(n Notification)
}

type SinkFunc func(n Notification)

func (f SinkFunc) Show(n Notification) { f(n) }

// Nil discards notifications.
var Nil Sink = SinkFunc(func(Notification) {})

func Success(summary, detail string) Notification {
	return Notification{Severity: SeveritySuccess, Summary: summary, Detail: detail, Time: build.Clock.Now()}
}

func Warn(cat Category, summary, detail string) Notification {
	return Notification{Severity: SeverityWarn, Category: cat, Summary: summary, Detail: detail, Time: build.Clock.Now()}
}

func Error(cat Category, summary, detail string) Notification {
	return Notification{Severity: SeverityError, Category: cat, Summary: summary, Detail: detail, Time: build.Clock.Now()}
}

// Multi fans a notification out to every sink, in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(n Notification) {
		for _, s := range sinks {
			if s != nil {
				s.Show(n)
			}
		}
	})
}

// LogSink writes notifications to the notify logger.
func LogSink() Sink {
	return SinkFunc(func(n Notification) {
		kv := []interface{}{"severity", n.Severity.String(), "category", string(n.Category), "detail", n.Detail}
		if n.OpID != "" {
			kv = append(kv, "op", n.OpID)
		}
		switch n.Severity {
		case SeverityError:
			log.Errorw(n.Summary, kv...)
		case SeverityWarn:
			log.Warnw(n.Summary, kv...)
		default:
			log.Infow(n.Summary, kv...)
		}
	})
}

// Console prints notifications to w, one colored line each.
type Console struct {
	lk sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

func (c *Console) Show(n Notification) {
	c.lk.Lock()
	defer c.lk.Unlock()

	var paint func(format string, a ...interface{}) string
	switch n.Severity {
	case SeveritySuccess:
		paint = color.GreenString
	case SeverityWarn:
		paint = color.YellowString
	case SeverityError:
		paint = color.RedString
	default:
		paint = color.CyanString
	}
	_, _ = fmt.Fprintln(c.w, paint("%-7s", n.Severity), n.String())
}

// Recorder keeps every notification it is shown.
type Recorder struct {
	lk    sync.Mutex
	shown []Notification
}

func (r *Recorder) Show(n Notification) {
	r.lk.Lock()
	defer r.lk.Unlock()
	r.shown = append(r.shown, n)
}

func (r *Recorder) All() []Notification {
	r.lk.Lock()
	defer r.lk.Unlock()
	return append([]Notification(nil), r.shown...)
}

// Count returns how many recorded notifications have the given severity.
func (r *Recorder) Count(sev Severity) int {
	r.lk.Lock()
	defer r.lk.Unlock()
	var n int
	for _, s := range r.shown {
		if s.Severity == sev {
			n++
		}
	}
	return n
}

func (r *Recorder) Last() (Notification, bool) {
	r.lk.Lock()
	defer r.lk.Unlock()
	if len(r.shown) == 0 {
		return Notification{}, false
	}
	return r.shown[len(r.shown)-1], true
}

func (r *Recorder) Reset() {
	r.lk.Lock()
	defer r.lk.Unlock()
	r.shown = nil
}
