package services

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"localbookr-server/database"
	"localbookr-server/models"
)

// transitions is the booking lifecycle table. A booking may only move along
// these edges; COMPLETED and CANCELLED are terminal.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:    {models.BookingStatusWaiting, models.BookingStatusConfirmed, models.BookingStatusAssigned, models.BookingStatusCancelled},
	models.BookingStatusWaiting:    {models.BookingStatusAssigned, models.BookingStatusCancelled},
	models.BookingStatusConfirmed:  {models.BookingStatusAssigned, models.BookingStatusCancelled},
	models.BookingStatusAssigned:   {models.BookingStatusInProgress, models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusInProgress: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCompleted:  {},
	models.BookingStatusCancelled:  {},
}

// CanTransition reports whether a booking in state from may move to state to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// assignableStatuses are the states from which a provider may be attached.
var assignableStatuses = []models.BookingStatus{
	models.BookingStatusPending,
	models.BookingStatusWaiting,
	models.BookingStatusConfirmed,
}

// Assignable reports whether a booking can still receive a provider. This is
// the same predicate the guarded assignment UPDATE enforces in SQL: an
// assignable status and no provider attached yet.
func Assignable(status models.BookingStatus, providerID *uint) bool {
	if providerID != nil {
		return false
	}
	for _, s := range assignableStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GetBooking loads a booking with its customer, service and provider.
func GetBooking(bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.
		Preload("Customer").
		Preload("Service").
		Preload("Provider").
		Preload("Provider.User").
		First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED. A concurrent state
// change makes the guarded update match zero rows and the caller gets
// ErrConflict.
func ConfirmBooking(bookingID uint) (*models.Booking, error) {
	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, models.BookingStatusPending).
		Update("status", models.BookingStatusConfirmed)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	Notify(booking.CustomerID, fmt.Sprintf("Your %s booking has been confirmed.", booking.Service.Name), models.NotificationSuccess)
	return booking, nil
}

// MarkWaiting parks a PENDING booking that no provider could serve. Idempotent
// from the scheduler's point of view: a booking already past PENDING simply
// reports ErrConflict and the caller moves on.
func MarkWaiting(bookingID uint) error {
	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, models.BookingStatusPending).
		Update("status", models.BookingStatusWaiting)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return conflictOrNotFound(bookingID)
	}
	return nil
}

// AssignProvider attaches a provider to a booking and moves it to ASSIGNED.
// The update is guarded on both status and provider_id IS NULL, so when two
// assignment attempts race exactly one wins and the other gets ErrConflict.
func AssignProvider(bookingID, providerID uint) (*models.Booking, error) {
	var provider models.Provider
	err := database.DB.Preload("User").First(&provider, providerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Same gates as automatic matching: an inactive, unapproved or deleted
	// provider cannot receive jobs through any path.
	if !provider.IsActive || provider.IsDeleted || !provider.Approved() {
		return nil, ErrNoEligibleProvider
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status IN ? AND provider_id IS NULL", bookingID, assignableStatuses).
		Updates(map[string]interface{}{
			"provider_id": providerID,
			"status":      models.BookingStatusAssigned,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	providerName := provider.Skill + " provider"
	if provider.User.Name != "" {
		providerName = provider.User.Name
	}
	Notify(booking.CustomerID, fmt.Sprintf("%s has been assigned to your %s booking.", providerName, booking.Service.Name), models.NotificationSuccess)
	Notify(provider.UserID, fmt.Sprintf("You have a new %s job on %s at %s.", booking.Service.Name, booking.Date, booking.Time), models.NotificationInfo)
	go SendAssignmentEmail(&provider.User, &booking.Customer, booking, booking.Service.Name)

	return booking, nil
}

// AutoAssign matches the highest rated eligible provider to a booking and
// assigns them. Bookings with no eligible provider are parked as WAITING.
func AutoAssign(bookingID uint) (*models.Booking, error) {
	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}

	provider, err := MatchProvider(booking.Service.Name, booking.Area)
	if errors.Is(err, ErrNoEligibleProvider) {
		if waitErr := MarkWaiting(bookingID); waitErr != nil && !errors.Is(waitErr, ErrConflict) {
			return nil, waitErr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	return AssignProvider(bookingID, provider.ID)
}

// StartJob moves an ASSIGNED booking to IN_PROGRESS. Only the assigned
// provider can start the job.
func StartJob(bookingID, providerID uint) (*models.Booking, error) {
	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND provider_id = ? AND status = ?", bookingID, providerID, models.BookingStatusAssigned).
		Update("status", models.BookingStatusInProgress)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	Notify(booking.CustomerID, fmt.Sprintf("Work on your %s booking has started.", booking.Service.Name), models.NotificationInfo)
	return booking, nil
}

// CompleteWithPin completes a booking after verifying the customer's PIN.
// The assigned provider reads the PIN off the customer's device; a wrong or
// placeholder PIN fails with ErrPinMismatch and changes nothing.
func CompleteWithPin(bookingID, providerID uint, pin string) (*models.Booking, error) {
	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID == nil || *booking.ProviderID != providerID {
		return nil, ErrConflict
	}
	if !VerifyPinForBooking(booking.ID, booking.CreatedAt, pin) {
		return nil, ErrPinMismatch
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND provider_id = ? AND status IN ?", bookingID, providerID,
			[]models.BookingStatus{models.BookingStatusAssigned, models.BookingStatusInProgress}).
		Update("status", models.BookingStatusCompleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	completed, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	Notify(completed.CustomerID, fmt.Sprintf("Your %s booking is complete. Tap to rate your experience.", completed.Service.Name), models.NotificationSuccess)
	return completed, nil
}

// CompleteBooking completes a booking on the assigned provider's behalf.
// Admin only; gated on the same derived PIN the provider would enter, so an
// admin still needs the customer's code to close out a job.
func CompleteBooking(bookingID uint, pin string) (*models.Booking, error) {
	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ProviderID == nil {
		return nil, ErrConflict
	}
	if !VerifyPinForBooking(booking.ID, booking.CreatedAt, pin) {
		return nil, ErrPinMismatch
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status IN ?", bookingID,
			[]models.BookingStatus{models.BookingStatusAssigned, models.BookingStatusInProgress}).
		Update("status", models.BookingStatusCompleted)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	completed, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	Notify(completed.CustomerID, fmt.Sprintf("Your %s booking has been marked complete.", completed.Service.Name), models.NotificationSuccess)
	return completed, nil
}

// CancelBooking cancels a booking from any non-terminal state.
func CancelBooking(bookingID uint) (*models.Booking, error) {
	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND status NOT IN ?", bookingID,
			[]models.BookingStatus{models.BookingStatusCompleted, models.BookingStatusCancelled}).
		Update("status", models.BookingStatusCancelled)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, conflictOrNotFound(bookingID)
	}

	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	Notify(booking.CustomerID, fmt.Sprintf("Your %s booking has been cancelled.", booking.Service.Name), models.NotificationWarning)
	if booking.ProviderID != nil {
		var provider models.Provider
		if err := database.DB.First(&provider, *booking.ProviderID).Error; err == nil {
			Notify(provider.UserID, fmt.Sprintf("The %s job on %s was cancelled.", booking.Service.Name, booking.Date), models.NotificationWarning)
		}
	}
	return booking, nil
}

// CandidatesForBooking lists providers an admin can pick from when assigning
// manually. Same activity, approval and deletion gates as automatic matching;
// only the area filter is relaxed, so an admin can override it when they know
// a provider covers the location anyway.
func CandidatesForBooking(bookingID uint) ([]models.Provider, error) {
	booking, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	if !Assignable(booking.Status, booking.ProviderID) {
		return nil, ErrConflict
	}
	return loadMatchableProviders(booking.Service.Name)
}

// conflictOrNotFound disambiguates a zero-row guarded update: the booking is
// either gone or in a state the guard rejected.
func conflictOrNotFound(bookingID uint) error {
	var count int64
	if err := database.DB.Model(&models.Booking{}).Where("id = ?", bookingID).Count(&count).Error; err != nil {
		log.Printf("⚠️ Failed to check booking %d existence: %v", bookingID, err)
		return ErrConflict
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
