package asyncengine

import (
	"context"
	"errors"
	"testing"
)

func TestGlobal_doesntPanic(t *testing.T) {
	Get()
}

func TestGetBeforeSet(t *testing.T) {
	var logged int
	Logger = func(_ context.Context, msg string) {
		logged++
	}
	t.Cleanup(func() {
		Logger = nil
	})

	impl := Get()
	if impl == nil {
		t.Fatal("Get returned nil before Set")
	}
	if err := impl.WaitForTasks(); !errors.Is(err, ErrNotRegistered) {
		t.Errorf("Expected ErrNotRegistered, got %v", err)
	}
	if logged != 1 {
		t.Errorf("Expected Logger to be called once on Get before Set, got %d", logged)
	}
}

func TestSetGet(t *testing.T) {
	mock := new(Mock)
	Set(mock)
	if err := Get().WaitForTasks(); err != nil {
		t.Errorf("WaitForTasks returned %v", err)
	}
	if mock.Calls != 1 {
		t.Errorf("Expected 1 call on the registered mock, got %d", mock.Calls)
	}
}
