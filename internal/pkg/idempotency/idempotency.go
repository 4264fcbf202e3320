// Package idempotency guards side effects behind a caller supplied key stored
// in Redis, so a retried request does not repeat work that already finished.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"        // caller holds the lock and may proceed
	StateInProgress State = "in_progress" // another caller holds the lock
	StateCompleted  State = "completed"   // the operation already succeeded
)

func (s State) String() string {
	return string(s)
}

// Idempotency runs fn at most once to success per key.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error) error
}

// Options tune lock and record lifetimes.
type Options struct {
	// LockDuration bounds how long an in-flight key blocks duplicates.
	LockDuration time.Duration
	// CompletedTTL is how long a finished key is remembered.
	CompletedTTL time.Duration
	Prefix       string
}

const (
	defaultLockDuration = time.Minute
	defaultCompletedTTL = 24 * time.Hour
	defaultPrefix       = "idempotency:"
)

// StateTracker implements Idempotency with Redis SETNX.
type StateTracker struct {
	client redis.UniversalClient
	opts   Options
}

func New(client redis.UniversalClient, opts Options) *StateTracker {
	if opts.LockDuration <= 0 {
		opts.LockDuration = defaultLockDuration
	}
	if opts.CompletedTTL <= 0 {
		opts.CompletedTTL = defaultCompletedTTL
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	return &StateTracker{client: client, opts: opts}
}

// Acquire takes the lock for key, or reports who holds it.
func (s *StateTracker) Acquire(ctx context.Context, key string) (State, error) {
	fk := s.opts.Prefix + key

	for range 2 {
		acquired, err := s.client.SetNX(ctx, fk, StateInProgress.String(), s.opts.LockDuration).Result()
		if err != nil {
			return "", err
		}
		if acquired {
			return StateNone, nil
		}

		current, err := s.client.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			// expired between SETNX and GET
			continue
		}
		if err != nil {
			return "", err
		}

		switch State(current) {
		case StateInProgress, StateCompleted:
			return State(current), nil
		default:
			return "", ErrInvalidState
		}
	}

	return "", ErrInvalidState
}

func (s *StateTracker) MarkCompleted(ctx context.Context, key string) error {
	return s.client.Set(ctx, s.opts.Prefix+key, StateCompleted.String(), s.opts.CompletedTTL).Err()
}

// Release forgets key so a later call may try again.
func (s *StateTracker) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.opts.Prefix+key).Err()
}

// Exec runs fn under the lock for key. A failed fn releases the key and its
// error is returned unchanged; a release failure is joined to it.
func (s *StateTracker) Exec(ctx context.Context, key string, fn func(context.Context) error) error {
	state, err := s.Acquire(ctx, key)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	}

	if err := fn(ctx); err != nil {
		if relErr := s.Release(context.WithoutCancel(ctx), key); relErr != nil {
			return errors.Join(err, relErr)
		}
		return err
	}

	return s.MarkCompleted(context.WithoutCancel(ctx), key)
}
