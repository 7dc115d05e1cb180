package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/aph138/residence/pkg/clock"
)

// Outcome is the result of verifying a candidate code.
type Outcome int

const (
	NotFound Outcome = iota
	Mismatch
	Expired
	Verified
)

func (o Outcome) String() string {
	switch o {
	case NotFound:
		return "not_found"
	case Mismatch:
		return "mismatch"
	case Expired:
		return "expired"
	case Verified:
		return "verified"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

const (
	codeMin   = 100000
	codeRange = 900000 // codes are in [100000, 999999]
)

// GenerateCode returns a uniformly distributed 6 digits code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("err when generating random OTP %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeMin), nil
}

type Code struct {
	code      string
	expiresAt time.Time
}

// OTP keeps single-use codes in memory, keyed by a caller chosen string.
// Keys should be namespaced by the caller (otp:email:, token: and so on).
// If horizontal scaling is necessary, use the redis store in internal/cache instead.
type OTP struct {
	data  map[string]Code
	clock clock.Clock
	mu    sync.Mutex
}

func NewOTP(c clock.Clock) *OTP {
	if c == nil {
		c = clock.Real{}
	}
	return &OTP{
		data:  make(map[string]Code),
		clock: c,
	}
}

// StartCleanup removes expired codes every interval until ctx is done.
// It is optional, Verify already drops expired codes it sees.
func (o *OTP) StartCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				o.Sweep()
			}
		}
	}()
}

// Sweep deletes every expired code and returns how many were removed.
func (o *OTP) Sweep() int {
	now := o.clock.Now()
	o.mu.Lock()
	defer o.mu.Unlock()
	removed := 0
	for key, code := range o.data {
		if now.After(code.expiresAt) {
			delete(o.data, key)
			removed++
		}
	}
	return removed
}

// Generate creates a new code for key, replacing any previous one.
func (o *OTP) Generate(_ context.Context, key string, ttl time.Duration) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	o.mu.Lock()
	o.data[key] = Code{
		code:      code,
		expiresAt: o.clock.Now().Add(ttl),
	}
	o.mu.Unlock()
	return code, nil
}

// Verify checks candidate against the code stored for key.
// A wrong code leaves the record in place; expired and verified records are removed.
// The error is always nil, it exists to satisfy networked stores.
func (o *OTP) Verify(_ context.Context, key, candidate string) (Outcome, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	stored, exist := o.data[key]
	if !exist {
		return NotFound, nil
	}
	if stored.code != candidate {
		return Mismatch, nil
	}
	delete(o.data, key)
	if o.clock.Now().After(stored.expiresAt) {
		return Expired, nil
	}
	return Verified, nil
}

// Len returns the number of stored codes, expired ones included.
func (o *OTP) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.data)
}

func (o *OTP) Close(context.Context) error {
	return nil
}
