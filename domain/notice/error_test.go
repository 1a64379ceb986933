package notice

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNormalize_PreservesChainLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCauses int
	}{
		{
			name:       "two links",
			err:        fmt.Errorf("opening config: %w", errors.New("permission denied")),
			wantCauses: 2,
		},
		{
			name: "three links",
			err: fmt.Errorf("handling request: %w",
				fmt.Errorf("querying store: %w", errors.New("connection reset"))),
			wantCauses: 3,
		},
		{
			name: "five links",
			err: fmt.Errorf("a: %w", fmt.Errorf("b: %w", fmt.Errorf("c: %w",
				fmt.Errorf("d: %w", errors.New("e"))))),
			wantCauses: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			record := Normalize(tt.err)
			if len(record.Causes) != tt.wantCauses {
				t.Errorf("len(Causes) = %d, want %d", len(record.Causes), tt.wantCauses)
			}
		})
	}
}

func TestNormalize_ChainedErrorShape(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := fmt.Errorf("opening config: %w", inner)

	record := Normalize(err)

	if record.Class != "opening config: permission denied" {
		t.Errorf("Class = %q, want head display string", record.Class)
	}
	if record.Message == nil {
		t.Fatal("Message = nil, want rendered chain")
	}
	if !strings.Contains(*record.Message, "Caused by: permission denied") {
		t.Errorf("Message = %q, missing cause line", *record.Message)
	}

	// Each chain link nests its own remaining chain as a one-element
	// cause list.
	head := record.Causes[0]
	if head.Class != err.Error() {
		t.Errorf("head link Class = %q, want %q", head.Class, err.Error())
	}
	if len(head.Causes) != 1 {
		t.Fatalf("head link nests %d causes, want 1", len(head.Causes))
	}
	if head.Causes[0].Class != "permission denied" {
		t.Errorf("nested cause Class = %q, want %q", head.Causes[0].Class, "permission denied")
	}
	if head.Message != nil {
		t.Errorf("link Message = %q, want nil", *head.Message)
	}

	tail := record.Causes[len(record.Causes)-1]
	if tail.Causes != nil {
		t.Errorf("tail link Causes = %v, want nil", tail.Causes)
	}
}

func TestNormalize_AggregateErrorShape(t *testing.T) {
	t.Parallel()

	err := errors.Join(
		errors.New("primary region unreachable"),
		errors.New("fallback region unreachable"),
		errors.New("cache write refused"),
	)

	record := Normalize(err)

	if len(record.Causes) != 3 {
		t.Fatalf("len(Causes) = %d, want 3", len(record.Causes))
	}
	for i, cause := range record.Causes {
		if cause.Message == nil {
			t.Errorf("cause %d Message = nil, want populated", i)
		}
		if cause.Causes != nil {
			t.Errorf("cause %d Causes = %v, want nil", i, cause.Causes)
		}
	}
	if record.Causes[0].Class != "primary region unreachable" {
		t.Errorf("first cause Class = %q, want first sub-error", record.Causes[0].Class)
	}
}

func TestNormalize_OpaqueErrorShape(t *testing.T) {
	t.Parallel()

	err := errors.New("disk quota exhausted")

	record := Normalize(err)

	if record.Class != "disk quota exhausted" {
		t.Errorf("Class = %q, want display string", record.Class)
	}
	if record.Message == nil || *record.Message == "" {
		t.Error("Message is empty, want populated on the opaque path")
	}
	if record.Causes != nil {
		t.Errorf("Causes = %v, want nil for an error without a chain", record.Causes)
	}
}

func TestNormalize_NilError(t *testing.T) {
	t.Parallel()

	record := Normalize(nil)
	if record.Class != "" || record.Causes != nil || record.Backtrace != nil {
		t.Errorf("Normalize(nil) = %+v, want zero record", record)
	}
}

func TestNormalize_StackWrapperIsTransparent(t *testing.T) {
	t.Parallel()

	inner := errors.New("permission denied")
	err := WithStack(fmt.Errorf("opening config: %w", inner))

	record := Normalize(err)

	// The wrapper must not count as a chain link of its own.
	if len(record.Causes) != 2 {
		t.Errorf("len(Causes) = %d, want 2", len(record.Causes))
	}
	if record.Class != "opening config: permission denied" {
		t.Errorf("Class = %q, want wrapped display string", record.Class)
	}
	if len(record.Backtrace) == 0 {
		t.Error("Backtrace is empty, want captured frames")
	}
}

func TestNormalize_OpaqueWithStack(t *testing.T) {
	t.Parallel()

	record := Normalize(WithStack(errors.New("disk quota exhausted")))

	if record.Causes != nil {
		t.Errorf("Causes = %v, want nil", record.Causes)
	}
	if len(record.Backtrace) == 0 {
		t.Error("Backtrace is empty, want captured frames")
	}
}
