package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	OTPLength      = 6
	OTPTTL         = 5 * time.Minute
	OTPMaxAttempts = 5
	otpKeyPrefix   = "otp:"
)

var (
	ErrOTPNotFound        = errors.New("OTP not found or expired")
	ErrOTPMismatch        = errors.New("OTP does not match")
	ErrOTPTooManyAttempts = errors.New("too many OTP attempts")
)

// GenerateNumericOTP returns a random code of the given number of digits.
func GenerateNumericOTP(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// SendSMS hands a message to the SMS gateway. There is no gateway wired yet
// so the message is only logged.
func SendSMS(mobile, message string) error {
	GetLogger().Info("Sending SMS", zap.String("mobile", mobile), zap.String("message", message))
	return nil
}

// RedisOTPStore keeps bcrypt hashes of pending codes keyed by mobile number.
type RedisOTPStore struct {
	client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{client: client}
}

// Issue generates a code for the mobile number, replacing any pending one.
func (s *RedisOTPStore) Issue(ctx context.Context, mobile string) (string, error) {
	code, err := GenerateNumericOTP(OTPLength)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash OTP: %w", err)
	}

	key := otpKeyPrefix + mobile
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, "hash", string(hash), "attempts", 0)
	pipe.Expire(ctx, key, OTPTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("failed to cache OTP: %w", err)
	}
	return code, nil
}

// otpAttemptScript counts one attempt against a pending code and returns
// {hash, attempts}. A missing key yields nil so an expired code is never
// recreated without its TTL. The key is dropped once attempts exceed ARGV[1].
var otpAttemptScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return false
	end
	local attempts = redis.call('HINCRBY', KEYS[1], 'attempts', 1)
	local hash = redis.call('HGET', KEYS[1], 'hash')
	if attempts > tonumber(ARGV[1]) then
		redis.call('DEL', KEYS[1])
	end
	return {hash, attempts}
`)

// Verify checks the code and consumes it on success.
func (s *RedisOTPStore) Verify(ctx context.Context, mobile, code string) error {
	key := otpKeyPrefix + mobile
	res, err := otpAttemptScript.Run(ctx, s.client, []string{key}, OTPMaxAttempts).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to record OTP attempt: %w", err)
	}
	hash, err := checkOTPAttempt(res)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) != nil {
		return ErrOTPMismatch
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		GetLogger().Error("Failed to delete OTP after verification", zap.String("mobile", mobile), zap.Error(err))
	}
	return nil
}

// checkOTPAttempt interprets the reply of otpAttemptScript.
func checkOTPAttempt(res interface{}) (string, error) {
	if res == nil {
		return "", ErrOTPNotFound
	}
	reply, ok := res.([]interface{})
	if !ok || len(reply) != 2 {
		return "", fmt.Errorf("unexpected OTP attempt reply %v", res)
	}
	attempts, ok := reply[1].(int64)
	if !ok {
		return "", fmt.Errorf("unexpected OTP attempt count %v", reply[1])
	}
	if attempts > OTPMaxAttempts {
		return "", ErrOTPTooManyAttempts
	}
	hash, ok := reply[0].(string)
	if !ok || hash == "" {
		return "", ErrOTPNotFound
	}
	return hash, nil
}
