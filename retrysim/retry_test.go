package retrysim_test

import (
	"context"
	"errors"
	"testing"

	retry "github.com/avast/retry-go"

	"github.com/metasim/metasim.go/retrysim"
)

func TestDoDefaultSingleAttempt(t *testing.T) {
	var calls int
	err := retrysim.Do(context.Background(), func() error {
		calls++
		return errors.New("nope")
	})
	if err == nil {
		t.Error("Expected an error, got nil")
	}
	if calls != 1 {
		t.Errorf("Expected a single attempt by default, got %d", calls)
	}
}

func TestDoAttemptsFromDefaults(t *testing.T) {
	const attempts = 3
	var calls int
	err := retrysim.Do(
		context.Background(),
		func() error {
			calls++
			return errors.New("nope")
		},
		retry.Attempts(attempts),
	)
	if err == nil {
		t.Error("Expected an error, got nil")
	}
	if calls != attempts {
		t.Errorf("Expected %d attempts, got %d", attempts, calls)
	}
}

func TestDoOptionsFromContext(t *testing.T) {
	const attempts = 2
	ctx := retrysim.WithOptions(context.Background(), retry.Attempts(attempts))
	var calls int
	retrysim.Do(ctx, func() error {
		calls++
		return errors.New("nope")
	})
	if calls != attempts {
		t.Errorf("Expected %d attempts, got %d", attempts, calls)
	}
}

func TestDoSuccess(t *testing.T) {
	var calls int
	err := retrysim.Do(
		context.Background(),
		func() error {
			calls++
			if calls < 2 {
				return errors.New("transient")
			}
			return nil
		},
		retry.Attempts(5),
	)
	if err != nil {
		t.Errorf("Expected success after retries, got %v", err)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}
