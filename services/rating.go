package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"gorm.io/gorm"

	"localbookr-server/database"
	"localbookr-server/models"
)

// MeanRating returns the average of the given ratings rounded to one decimal
// place. Zero for an empty slice.
func MeanRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return RoundRating(float64(sum) / float64(len(ratings)))
}

// RoundRating rounds a rating to one decimal place, half away from zero.
func RoundRating(value float64) float64 {
	return math.Round(value*10) / 10
}

// RateBooking attaches a one-time rating to a completed booking and refreshes
// the provider's aggregate. Only the booking's customer may rate, only once,
// and only after completion. The rating write is guarded on rating IS NULL so
// a duplicate submission, concurrent or not, gets ErrConflict.
func RateBooking(bookingID, customerID uint, rating int, review string) (*models.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	var booking models.Booking
	err := database.DB.First(&booking, bookingID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != customerID {
		return nil, ErrNotFound
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, ErrInvalidTransition
	}

	result := database.DB.Model(&models.Booking{}).
		Where("id = ? AND rating IS NULL", bookingID).
		Updates(map[string]interface{}{
			"rating": rating,
			"review": review,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConflict
	}

	if booking.ProviderID != nil {
		RefreshProviderRating(*booking.ProviderID)
	}

	rated, err := GetBooking(bookingID)
	if err != nil {
		return nil, err
	}
	return rated, nil
}

// RefreshProviderRating recomputes a provider's aggregate rating from their
// rated bookings. Best-effort: the customer's rating already landed, so a
// failed recompute is logged and picked up by the next rating.
func RefreshProviderRating(providerID uint) {
	var ratings []int
	err := database.DB.Model(&models.Booking{}).
		Where("provider_id = ? AND rating IS NOT NULL", providerID).
		Pluck("rating", &ratings).Error
	if err != nil {
		log.Printf("⚠️ Failed to load ratings for provider %d: %v", providerID, err)
		return
	}
	if len(ratings) == 0 {
		return
	}

	average := MeanRating(ratings)
	if err := database.DB.Model(&models.Provider{}).
		Where("id = ?", providerID).
		Update("rating", average).Error; err != nil {
		log.Printf("⚠️ Failed to update rating for provider %d: %v", providerID, err)
		return
	}

	var provider models.Provider
	if err := database.DB.First(&provider, providerID).Error; err == nil {
		Notify(provider.UserID, fmt.Sprintf("You received a new rating. Your average is now %.1f.", average), models.NotificationInfo)
	}
}
