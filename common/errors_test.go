package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"message only", NewError(KindQuotaExceeded, "used %d of %d", 10, 10), "quota-exceeded: used 10 of 10"},
		{"wrapped", WrapError(KindAllModelsFailed, io.ErrUnexpectedEOF, "tier %s", "fast"), "all-models-failed: tier fast: unexpected EOF"},
		{"cause only", &Error{Kind: KindTimeout, Err: context.DeadlineExceeded}, "timeout: context deadline exceeded"},
		{"bare", &Error{Kind: KindInternalError}, "internal-error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(KindAllModelsFailed, cause, "no providers left")
	if !errors.Is(err, cause) {
		t.Error("errors.Is() lost the cause")
	}
	var ge *Error
	if !errors.As(fmt.Errorf("pipeline: %w", err), &ge) {
		t.Fatal("errors.As() failed through wrapping")
	}
	if ge.Kind != KindAllModelsFailed {
		t.Errorf("Kind = %v, want %v", ge.Kind, KindAllModelsFailed)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"classified", NewError(KindBriefRejected, "bad json"), KindBriefRejected},
		{"classified wrapped", fmt.Errorf("stage: %w", NewError(KindRateLimited, "slow down")), KindRateLimited},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"canceled", context.Canceled, KindTimeout},
		{"plain", errors.New("boom"), KindInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRateLimited(t *testing.T) {
	err := RateLimited(42*time.Second, "caller %s over limit", "acme")
	if err.Kind != KindRateLimited {
		t.Errorf("Kind = %v, want %v", err.Kind, KindRateLimited)
	}
	if err.RetryAfter != 42*time.Second {
		t.Errorf("RetryAfter = %v, want %v", err.RetryAfter, 42*time.Second)
	}
}

func TestWarnings(t *testing.T) {
	var w Warnings
	if w.Strings() != nil {
		t.Error("empty Warnings should flatten to nil")
	}
	w.Add(WarnTextOverflow, "block %q text does not fit at %dpt", "core", 10)
	w.Add(WarnRefPruned, "connection to unknown entity %q dropped", "ghost")
	if len(w) != 2 {
		t.Fatalf("len = %d, want 2", len(w))
	}
	want := `text-overflow: block "core" text does not fit at 10pt`
	if got := w[0].String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := w.Strings(); len(got) != 2 {
		t.Errorf("Strings() len = %d, want 2", len(got))
	}
}
