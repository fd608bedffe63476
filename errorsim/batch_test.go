package errorsim_test

import (
	"errors"
	"testing"

	"github.com/metasim/metasim.go/errorsim"
)

func TestAdd(t *testing.T) {
	var err errorsim.Batch
	if len(err.GetErrors()) != 0 {
		t.Errorf("A new Batch should contain zero errors: %#v", err.GetErrors())
	}

	err.Add(nil)
	if len(err.GetErrors()) != 0 {
		t.Errorf("Nil errors should be skipped: %#v", err.GetErrors())
	}

	err0 := errors.New("foo")
	err.Add(err0)
	if len(err.GetErrors()) != 1 {
		t.Errorf("Non-nil errors should be added to the batch: %#v", err.GetErrors())
	}
	actual := err.GetErrors()[0]
	if actual != err0 {
		t.Errorf("Expected %v, got %v", err0, actual)
	}

	var another errorsim.Batch
	err.Add(another)
	if len(err.GetErrors()) != 1 {
		t.Errorf("Empty batch should be skipped: %#v", err.GetErrors())
	}
	err1 := errors.New("bar")
	another.Add(err1)
	err2 := errors.New("foobar")
	another.Add(err2)
	err.Add(another)
	if len(err.GetErrors()) != 3 {
		t.Errorf(
			"The underlying errors should be added instead of the batch: %#v",
			err.GetErrors(),
		)
	}

	err.Clear()
	if len(err.GetErrors()) != 0 {
		t.Errorf(
			"A cleared Batch should contain zero errors: %#v",
			err.GetErrors(),
		)
	}
}

func TestCompile(t *testing.T) {
	var batch errorsim.Batch
	if err := batch.Compile(); err != nil {
		t.Errorf("Empty batch should compile to nil, got %v", err)
	}

	err0 := errors.New("foo")
	batch.Add(err0)
	if err := batch.Compile(); err != err0 {
		t.Errorf(
			"Single error batch should compile to the error itself, got %v",
			err,
		)
	}

	batch.Add(errors.New("bar"))
	err := batch.Compile()
	var compiled errorsim.Batch
	if !errors.As(err, &compiled) {
		t.Errorf("Expected compiled error to be a Batch, got %v", err)
	}
	if compiled.Len() != 2 {
		t.Errorf("Expected 2 errors in compiled batch, got %d", compiled.Len())
	}
}

func TestIsAs(t *testing.T) {
	sentinel := errors.New("sentinel")

	var batch errorsim.Batch
	batch.Add(errors.New("other"))
	batch.Add(sentinel)

	if !errors.Is(batch.Compile(), sentinel) {
		t.Error("errors.Is failed to find sentinel inside the batch")
	}
}

func TestAddPrefix(t *testing.T) {
	const prefix = "cam1"

	var batch errorsim.Batch
	batch.AddPrefix(prefix, nil)
	if batch.Len() != 0 {
		t.Errorf("Nil errors should be skipped: %#v", batch.GetErrors())
	}

	inner := errors.New("sensor update failed")
	batch.AddPrefix(prefix, inner)
	if batch.Len() != 1 {
		t.Fatalf("Expected 1 error, got %#v", batch.GetErrors())
	}
	err := batch.GetErrors()[0]
	if want := prefix + ": " + inner.Error(); err.Error() != want {
		t.Errorf("Expected message %q, got %q", want, err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("Prefixed error should unwrap to the original error")
	}
}
