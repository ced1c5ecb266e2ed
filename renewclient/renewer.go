package renewclient

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"
)

// DefaultFallbackInterval is the due time used to re-arm the renewal timer
// when a renewal cycle fails.
const DefaultFallbackInterval = time.Minute

// renewFactor is the fraction of the observed TTL after which the credential
// is renewed. Renewing at 90% of the remaining life leaves a safety margin
// for clock skew, the latency of the renewal call itself, and store-side TTL
// rounding.
const renewFactor = 0.9

// Logger is an interface for optional logging in Renewer.
// Implementations can log renewal events if desired.
type Logger interface {
	Printf(format string, args ...any)
}

// Option is a functional option for configuring Renewer.
type Option func(*Renewer)

// WithLogger sets a custom logger for renewal events.
// If not set, no logging will occur.
func WithLogger(logger Logger) Option {
	return func(r *Renewer) {
		r.logger = logger
	}
}

// WithLoggingEnabled enables logging using the default Go log package.
// This is a convenience option that sets the logger to log.Default().
func WithLoggingEnabled() Option {
	return func(r *Renewer) {
		r.logger = log.Default()
	}
}

// WithFallbackInterval sets the due time used when a renewal cycle fails.
// Default is one minute.
func WithFallbackInterval(d time.Duration) Option {
	return func(r *Renewer) {
		r.fallback = d
	}
}

// Renewer decorates a credential Client and keeps its credential
// continuously valid. A private one-shot timer inspects the credential's
// remaining TTL, invalidates it shortly before expiry, and re-arms itself
// from the freshly observed lifetime. Callers use the embedded Client
// exactly like the underlying one; the Renewer adds no behavior to those
// calls and never serializes them against the renewal loop.
//
// Renewal failures are logged and retried at the fallback interval; they are
// never surfaced to callers. Errors from foreground calls on the embedded
// Client propagate unchanged.
type Renewer struct {
	// Client is the wrapped credential client. All of its operations remain
	// available on the Renewer unchanged.
	Client

	ctx      context.Context // detached context driving background cycles
	fallback time.Duration
	logger   Logger // optional logger

	// mu guards the timer handle, the disposed flag, and the due time.
	mu       sync.Mutex
	timer    *time.Timer
	disposed bool
	due      time.Duration
}

// New creates a Renewer around client and synchronously runs the first
// renewal cycle, so the returned Renewer is always in a defined state: its
// timer is armed, or renewal is permanently disabled because the credential
// never expires, or the first cycle failed and a retry is scheduled at the
// fallback interval.
//
// The initial cycle inspects the credential without invalidating it. A store
// failure during the cycle is logged and converted into fallback scheduling,
// not returned; New fails only on invalid arguments.
//
// The context is used for the background renewal calls with its cancellation
// stripped: shutting the Renewer down is the job of Shutdown, not of a
// caller's request context.
func New(ctx context.Context, client Client, opts ...Option) (*Renewer, error) {
	if client == nil {
		return nil, errors.New("renewclient: credential client is required")
	}

	if ctx == nil {
		ctx = context.Background()
	} else {
		ctx = context.WithoutCancel(ctx)
	}

	r := &Renewer{
		Client:   client,
		ctx:      ctx,
		fallback: DefaultFallbackInterval,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.fallback <= 0 {
		return nil, errors.New("renewclient: fallback interval must be positive")
	}

	r.renewCycle(true)

	return r, nil
}

// Shutdown stops the renewal loop and releases the timer. It is idempotent
// and safe to call concurrently with a timer firing: once Shutdown returns,
// no further renewal cycle will be scheduled. A cycle already mid-flight may
// still complete its store calls but will observe disposal and skip
// re-arming.
func (r *Renewer) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.disposed = true
}

// NextDue reports the due time computed by the last renewal cycle and
// whether a renewal timer is currently armed.
func (r *Renewer) NextDue() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.due, r.timer != nil
}

// renewCycle runs one renewal cycle: invalidate (unless this is the initial
// call at construction), inspect the possibly fresh credential, and arm the
// next one-shot timer from the observed TTL. Each firing runs exactly one
// cycle and arms the next only after the current one completes, so cycles
// never overlap.
func (r *Renewer) renewCycle(initial bool) {
	info, err := r.observe(initial)
	if err != nil {
		r.logf("renewclient: renewal cycle failed, retrying in %s: %v", r.fallback, err)
		r.arm(r.fallback, "unknown")
		return
	}

	if info.CreationTTL == 0 {
		// Never-expires sentinel: the credential is treated as permanent for
		// the rest of the process lifetime. A later re-authentication that
		// yields an expiring credential is not detected; the initial
		// sentinel means "never renew".
		r.logf("renewclient: credential %q never expires, renewal disabled", info.ID)
		r.disarm()
		return
	}

	due := renewalDue(info.TTL)
	r.logf("renewclient: credential %q renews in %s (ttl %s)", info.ID, due, info.TTL)
	r.arm(due, info.ID)
}

// observe performs the store calls of a single cycle.
func (r *Renewer) observe(initial bool) (*CredentialInfo, error) {
	if !initial {
		if err := r.Client.Invalidate(r.ctx); err != nil {
			return nil, fmt.Errorf("invalidate credential: %w", err)
		}
	}

	info, err := r.Client.InspectSelf(r.ctx)
	if err != nil {
		return nil, fmt.Errorf("inspect credential: %w", err)
	}
	if info == nil {
		return nil, errors.New("inspect returned no credential info")
	}

	return info, nil
}

// arm replaces the current timer with a one-shot timer for due, unless the
// Renewer has been shut down. The credential ID is captured for diagnostic
// logging when the timer fires. A non-positive due time fires immediately.
func (r *Renewer) arm(due time.Duration, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}

	if r.timer != nil {
		r.timer.Stop()
	}

	r.due = due
	r.timer = time.AfterFunc(due, func() {
		r.logf("renewclient: renewing credential %q", id)
		r.renewCycle(false)
	})
}

// disarm releases the current timer handle, if any, so NextDue reports no
// armed timer. Called when a cycle decides renewal must not continue.
func (r *Renewer) disarm() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.due = 0
}

func (r *Renewer) logf(format string, args ...any) {
	if r.logger != nil {
		r.logger.Printf(format, args...)
	}
}

// renewalDue computes the next due time from a remaining TTL: the floor of
// 90% of the TTL, in whole seconds. The result is deliberately not clamped
// to a minimum positive value; a pathological TTL is allowed to fire
// immediately.
func renewalDue(ttl time.Duration) time.Duration {
	return time.Duration(math.Floor(ttl.Seconds()*renewFactor)) * time.Second
}
