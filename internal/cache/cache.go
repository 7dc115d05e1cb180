package cache

import (
	"context"
	"time"

	"github.com/aph138/residence/pkg/otp"
)

// Both the in-memory store and MyRedis satisfy SecretStore.
var (
	_ SecretStore = (*otp.OTP)(nil)
	_ SecretStore = (*MyRedis)(nil)
)

type SecretStore interface {
	// Close closes all connections and releases resources, if any exists.
	// It uses context if it is possible.
	Close(context.Context) error

	// Generate takes a key and a ttl and stores a fresh code for that key,
	// replacing any code the key already had. It returns the code.
	Generate(ctx context.Context, key string, ttl time.Duration) (string, error)

	// Verify checks a candidate code for a key. Normal results are reported
	// through otp.Outcome; the error is only for failures of the store itself.
	// At most one call can get otp.Verified for a generated code.
	Verify(ctx context.Context, key, candidate string) (otp.Outcome, error)
}
