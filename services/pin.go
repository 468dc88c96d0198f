package services

import (
	"fmt"
	"strconv"
	"time"

	"localbookr-server/config"
)

// PinSentinel is returned when the booking identity is incomplete. It is six
// characters wide so it renders like a PIN, but it never verifies.
const PinSentinel = "------"

// pinCreatedAtLayout fixes the timestamp encoding so the PIN stays stable
// for the lifetime of the booking regardless of driver or timezone settings.
const pinCreatedAtLayout = time.RFC3339

// DerivePin produces a reproducible 6-digit completion PIN from the booking
// identity and its creation timestamp. Nothing is persisted: the PIN is
// re-derived on demand and compared. It is an operational deterrent against
// premature self-completion, not a cryptographic access control.
func DerivePin(bookingID, createdAt string) string {
	if bookingID == "" || createdAt == "" {
		return PinSentinel
	}

	input := bookingID + createdAt + config.AppConfig.Pin.Secret

	// Classic 31-multiplier string hash, wrapped to 32-bit signed at every step.
	var hash int32
	for _, r := range input {
		hash = (hash << 5) - hash + r
	}

	code := int64(hash)
	if code < 0 {
		code = -code
	}
	return fmt.Sprintf("%06d", code%1_000_000)
}

// DerivePinForBooking derives the PIN for a stored booking row.
func DerivePinForBooking(bookingID uint, createdAt time.Time) string {
	if bookingID == 0 || createdAt.IsZero() {
		return PinSentinel
	}
	return DerivePin(strconv.FormatUint(uint64(bookingID), 10), createdAt.UTC().Format(pinCreatedAtLayout))
}

// VerifyPin re-derives the expected PIN and compares for exact equality.
// The sentinel never verifies, even against itself.
func VerifyPin(bookingID, createdAt, candidate string) bool {
	expected := DerivePin(bookingID, createdAt)
	if expected == PinSentinel {
		return false
	}
	return candidate == expected
}

// VerifyPinForBooking verifies a candidate PIN against a stored booking row.
func VerifyPinForBooking(bookingID uint, createdAt time.Time, candidate string) bool {
	if bookingID == 0 || createdAt.IsZero() {
		return false
	}
	return VerifyPin(strconv.FormatUint(uint64(bookingID), 10), createdAt.UTC().Format(pinCreatedAtLayout), candidate)
}
