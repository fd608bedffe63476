package batchcloser_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/metasim/metasim.go/batchcloser"
	"github.com/metasim/metasim.go/errorsim"
)

type recordingCloser struct {
	closed int
	err    error
}

func (c *recordingCloser) Close() error {
	c.closed++
	return c.err
}

func TestCloseAll(t *testing.T) {
	first := &recordingCloser{}
	second := &recordingCloser{}

	bc := batchcloser.New(first)
	bc.Add(second)

	if err := bc.Close(); err != nil {
		t.Errorf("Close returned %v, want nil", err)
	}
	if first.closed != 1 || second.closed != 1 {
		t.Errorf(
			"closed counts got first=%d second=%d, want 1 each",
			first.closed, second.closed,
		)
	}
}

func TestCloseBatchesErrors(t *testing.T) {
	errFirst := errors.New("first failed")
	errSecond := errors.New("second failed")
	first := &recordingCloser{err: errFirst}
	healthy := &recordingCloser{}
	second := &recordingCloser{err: errSecond}

	err := batchcloser.New(first, healthy, second).Close()
	if err == nil {
		t.Fatal("expected a non-nil error")
	}

	// A failure in one closer must not prevent the others from closing.
	if healthy.closed != 1 {
		t.Errorf("healthy closer closed %d times, want 1", healthy.closed)
	}

	var batch errorsim.Batch
	if !errors.As(err, &batch) {
		t.Fatalf("expected an errorsim.Batch, got %v", err)
	}
	if batch.Len() != 2 {
		t.Errorf("batch length got %d, want 2", batch.Len())
	}
	if !errors.Is(err, errFirst) || !errors.Is(err, errSecond) {
		t.Errorf("expected both causes to be retrievable from %v", err)
	}

	var closeErr *batchcloser.CloseError
	if !errors.As(err, &closeErr) {
		t.Errorf("expected a CloseError to be retrievable from %v", err)
	}
}

func TestWrap(t *testing.T) {
	var calls int
	closer := batchcloser.Wrap(func() error {
		calls++
		return nil
	})
	if err := closer.Close(); err != nil {
		t.Errorf("Close returned %v, want nil", err)
	}
	if calls != 1 {
		t.Errorf("wrapped func called %d times, want 1", calls)
	}
}

func TestWrapCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var closer io.Closer = batchcloser.WrapCancel(cancel)
	if err := closer.Close(); err != nil {
		t.Errorf("Close returned %v, want nil", err)
	}
	select {
	case <-ctx.Done():
	default:
		t.Error("expected the context to be canceled after Close")
	}
}
