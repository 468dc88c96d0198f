package services

import (
	"os"
	"sync"
	"testing"
	"time"

	"localbookr-server/config"
)

func TestMain(m *testing.M) {
	config.Load()
	os.Exit(m.Run())
}

func TestDerivePinDeterministic(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	first := DerivePinForBooking(42, createdAt)
	for i := 0; i < 100; i++ {
		if got := DerivePinForBooking(42, createdAt); got != first {
			t.Fatalf("derivation %d produced %q, want %q", i, got, first)
		}
	}
}

func TestDerivePinFormat(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for id := uint(1); id <= 500; id++ {
		pin := DerivePinForBooking(id, base.Add(time.Duration(id)*time.Minute))
		if len(pin) != 6 {
			t.Fatalf("booking %d: pin %q is not 6 characters", id, pin)
		}
		for _, r := range pin {
			if r < '0' || r > '9' {
				t.Fatalf("booking %d: pin %q contains non-digit %q", id, pin, r)
			}
		}
	}
}

func TestDerivePinConcurrent(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	want := DerivePinForBooking(42, createdAt)

	const goroutines = 32
	errCh := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := DerivePinForBooking(42, createdAt); got != want {
				errCh <- got
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for got := range errCh {
		t.Errorf("concurrent derivation produced %q, want %q", got, want)
	}
}

func TestDerivePinInputSensitivity(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	base := DerivePinForBooking(7, createdAt)
	if other := DerivePinForBooking(8, createdAt); other == base {
		t.Errorf("different booking ids produced the same pin %q", base)
	}
	if other := DerivePinForBooking(7, createdAt.Add(time.Second)); other == base {
		t.Errorf("different timestamps produced the same pin %q", base)
	}
}

func TestDerivePinIncompleteIdentity(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := DerivePinForBooking(0, createdAt); got != PinSentinel {
		t.Errorf("zero booking id: got %q, want sentinel", got)
	}
	if got := DerivePinForBooking(9, time.Time{}); got != PinSentinel {
		t.Errorf("zero timestamp: got %q, want sentinel", got)
	}
	if got := DerivePin("", "2025-06-01T12:00:00Z"); got != PinSentinel {
		t.Errorf("empty booking id: got %q, want sentinel", got)
	}
}

func TestVerifyPin(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	pin := DerivePinForBooking(21, createdAt)

	if !VerifyPinForBooking(21, createdAt, pin) {
		t.Error("correct pin did not verify")
	}
	if VerifyPinForBooking(21, createdAt, "000000") && pin != "000000" {
		t.Error("wrong pin verified")
	}
	if VerifyPinForBooking(22, createdAt, pin) && DerivePinForBooking(22, createdAt) != pin {
		t.Error("pin verified against a different booking")
	}
}

func TestSentinelNeverVerifies(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if VerifyPinForBooking(21, createdAt, PinSentinel) {
		t.Error("sentinel verified against a real booking")
	}
	if VerifyPinForBooking(0, time.Time{}, PinSentinel) {
		t.Error("sentinel verified against an incomplete identity")
	}
}
