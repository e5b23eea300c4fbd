package api

import (
	"context"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"unifiedlist/internal/infra/logx"
)

// RequestIDHeader correlates client log lines with server logs.
const RequestIDHeader = "X-Request-ID"

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Limit defines a simple rate limit: RPS with a burst capacity.
type Limit struct {
	RPS   float64
	Burst int
}

// TransportOptions configures the limiting transport.
type TransportOptions struct {
	Limit   Limit
	Clock   Clock
	Metrics *Metrics
}

// DefaultTransportOptions allows bursts of key repeats without flooding the API.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		Limit:   Limit{RPS: 10, Burst: 10},
		Clock:   realClock{},
		Metrics: NewMetrics(),
	}
}

// tokenBucket is a simple rate limiter with fractional tokens.
type tokenBucket struct {
	mu     sync.Mutex
	rps    float64
	burst  float64
	tokens float64
	last   time.Time
	clock  Clock
}

func newTokenBucket(lim Limit, clock Clock) *tokenBucket {
	if lim.RPS <= 0 {
		lim.RPS = 10
	}
	burst := float64(max(1, lim.Burst))
	return &tokenBucket{
		rps:    lim.RPS,
		burst:  burst,
		tokens: burst,
		last:   clock.Now(),
		clock:  clock,
	}
}

func (tb *tokenBucket) refillLocked(now time.Time) {
	delta := now.Sub(tb.last).Seconds() * tb.rps
	if delta > 0 {
		tb.tokens = math.Min(tb.burst, tb.tokens+delta)
		tb.last = now
	}
}

func (tb *tokenBucket) Wait(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tb.mu.Lock()
		tb.refillLocked(tb.clock.Now())
		if tb.tokens >= 1 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}
		need := 1 - tb.tokens
		wait := time.Duration((need / tb.rps) * float64(time.Second))
		tb.mu.Unlock()
		// sleep in 5ms slices so a cancelled context is noticed
		if wait <= 0 {
			wait = 5 * time.Millisecond
		}
		deadline := tb.clock.Now().Add(wait)
		for tb.clock.Now().Before(deadline) {
			if err := ctx.Err(); err != nil {
				return err
			}
			tb.clock.Sleep(5 * time.Millisecond)
		}
	}
}

// LimiterTransport paces requests, stamps a request id, counts traffic and
// logs every exchange. It never retries: a failed call is reported as is.
type LimiterTransport struct {
	Base http.RoundTripper
	Opts TransportOptions

	once sync.Once
	lim  *tokenBucket
}

func NewLimiterTransport(opts TransportOptions) *LimiterTransport {
	return &LimiterTransport{Opts: opts}
}

func (t *LimiterTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *LimiterTransport) clock() Clock {
	if t.Opts.Clock != nil {
		return t.Opts.Clock
	}
	return realClock{}
}

func (t *LimiterTransport) limiter() *tokenBucket {
	t.once.Do(func() { t.lim = newTokenBucket(t.Opts.Limit, t.clock()) })
	return t.lim
}

func (t *LimiterTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter().Wait(req.Context()); err != nil {
		return nil, err
	}

	// RoundTrippers must not modify the caller's request
	req = req.Clone(req.Context())
	rid := req.Header.Get(RequestIDHeader)
	if rid == "" {
		rid = uuid.NewString()
		req.Header.Set(RequestIDHeader, rid)
	}
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncRequest(req.Method)
	}

	start := t.clock().Now()
	resp, err := t.base().RoundTrip(req)
	elapsed := t.clock().Now().Sub(start)
	if err != nil {
		if t.Opts.Metrics != nil {
			t.Opts.Metrics.IncTransportError()
		}
		logx.Errorw("http request failed", logx.Fields{
			"method": req.Method, "url": req.URL.String(), "request_id": rid,
			"duration_ms": elapsed.Milliseconds(), "error": err.Error(),
		})
		return nil, err
	}
	if t.Opts.Metrics != nil {
		t.Opts.Metrics.IncStatus(resp.StatusCode)
	}
	logx.Infow("http request", logx.Fields{
		"method": req.Method, "url": req.URL.String(), "request_id": rid,
		"status": resp.StatusCode, "duration_ms": elapsed.Milliseconds(),
	})
	return resp, nil
}
