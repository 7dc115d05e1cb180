package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/aph138/residence/pkg/clock"
	"github.com/aph138/residence/pkg/otp"
	"github.com/redis/go-redis/v9"
)

// expiryGrace keeps a record around after its expiry so Verify can still
// tell an expired code apart from a missing one.
const expiryGrace = time.Minute

// verifyScript compares and consumes a code in one step.
// Return values: 0 not found, 1 mismatch, 2 expired, 3 verified.
var verifyScript = redis.NewScript(`
local code = redis.call('HGET', KEYS[1], 'code')
if not code then
	return 0
end
if code ~= ARGV[1] then
	return 1
end
local exp = tonumber(redis.call('HGET', KEYS[1], 'exp'))
redis.call('DEL', KEYS[1])
if tonumber(ARGV[2]) > exp then
	return 2
end
return 3
`)

// MyRedis implement SecretStore interface
type MyRedis struct {
	client *redis.Client
	clock  clock.Clock
}

func NewRedis(opts *redis.Options, c clock.Clock) (*MyRedis, error) {
	client := redis.NewClient(opts)
	if cmd := client.Ping(context.Background()); cmd.Err() != nil {
		return nil, fmt.Errorf("err when connecting to redis %w", cmd.Err())
	}
	if c == nil {
		c = clock.Real{}
	}
	return &MyRedis{
		client: client,
		clock:  c,
	}, nil
}

func (r *MyRedis) Generate(ctx context.Context, key string, ttl time.Duration) (string, error) {
	code, err := otp.GenerateCode()
	if err != nil {
		return "", err
	}
	exp := r.clock.Now().Add(ttl).UnixMilli()

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, "code", code, "exp", exp)
		pipe.PExpire(ctx, key, ttl+expiryGrace)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("err when saving otp code %w", err)
	}
	return code, nil
}

func (r *MyRedis) Verify(ctx context.Context, key, candidate string) (otp.Outcome, error) {
	now := r.clock.Now().UnixMilli()
	result, err := verifyScript.Run(ctx, r.client, []string{key}, candidate, now).Int()
	if err != nil {
		return otp.NotFound, fmt.Errorf("err when verifying otp code %w", err)
	}
	switch result {
	case 1:
		return otp.Mismatch, nil
	case 2:
		return otp.Expired, nil
	case 3:
		return otp.Verified, nil
	default:
		return otp.NotFound, nil
	}
}

func (r *MyRedis) Close(ctx context.Context) error {
	return r.client.Close()
}
