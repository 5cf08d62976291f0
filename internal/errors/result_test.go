package errors

import (
	"strings"
	"testing"

	"github.com/relcore/hofexpr/internal/source"
	"github.com/relcore/hofexpr/types"
)

func TestSuccessIsOK(t *testing.T) {
	if !Success.OK() {
		t.Error("Success.OK() = false, want true")
	}
	if Success.Message() != "" {
		t.Errorf("Success.Message() = %q, want empty", Success.Message())
	}
}

func TestFailureIsNotOKAndFormats(t *testing.T) {
	f := Failure("bad thing: %d", 7)
	if f.OK() {
		t.Error("Failure(...).OK() = true, want false")
	}
	if !strings.Contains(f.Message(), "7") {
		t.Errorf("Message() = %q, want to contain 7", f.Message())
	}
}

func TestAggregateAccumulatorTypeMismatchMessage(t *testing.T) {
	r := AggregateAccumulatorTypeMismatch(source.NoLocation, types.NewAtomic(types.Long, false), types.NewAtomic(types.String, false))
	if r.OK() {
		t.Fatal("AggregateAccumulatorTypeMismatch().OK() = true, want false")
	}
	if !strings.Contains(r.Message(), "long") || !strings.Contains(r.Message(), "string") {
		t.Errorf("Message() = %q, want to mention both types", r.Message())
	}
}

func TestMapZipSizeExceededIsARuntimeError(t *testing.T) {
	var err error = &MapZipSizeExceeded{Attempted: 10, Max: 5}
	var _ RuntimeError = err.(RuntimeError)
	if !strings.Contains(err.Error(), "10") || !strings.Contains(err.Error(), "5") {
		t.Errorf("Error() = %q, want to mention both counts", err.Error())
	}
}
