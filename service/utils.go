package service

import (
	"context"
	"time"
)

// Retriable calls f up to nbTries times, waiting delay between two attempts.
// It gives up early on a fatal error or when the context is done.
func Retriable(ctx context.Context, f func() error, delay time.Duration, nbTries int) error {
	var err error
	for i := 0; i < nbTries; i++ {
		if err = f(); err == nil || Fatal(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return MergeErrors(true, err, ctx.Err())
		case <-time.After(delay):
		}
	}
	return err
}
