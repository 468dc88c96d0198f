package services

import (
	"fmt"
	"strings"

	"localbookr-server/database"
	"localbookr-server/models"
)

// EligibleProvider reports whether a provider can be matched to a booking
// for the given service name and area. The same predicate backs both the
// auto-assignment matcher and customer-facing search: skill equals the
// service name, the provider's area contains the booking area
// (case-insensitive), the provider is active, approved, and not deleted.
// A provider row written before the approval_status column existed counts
// as approved.
func EligibleProvider(p *models.Provider, serviceName, area string) bool {
	if p.Skill != serviceName {
		return false
	}
	if !strings.Contains(strings.ToLower(p.Area), strings.ToLower(area)) {
		return false
	}
	if !p.IsActive || p.IsDeleted {
		return false
	}
	return p.Approved()
}

// SelectProvider picks the best eligible provider from a candidate set:
// highest rating wins, lowest id breaks ties. Returns nil when no candidate
// is eligible.
func SelectProvider(candidates []models.Provider, serviceName, area string) *models.Provider {
	var best *models.Provider
	for i := range candidates {
		p := &candidates[i]
		if !EligibleProvider(p, serviceName, area) {
			continue
		}
		if best == nil || p.Rating > best.Rating || (p.Rating == best.Rating && p.ID < best.ID) {
			best = p
		}
	}
	return best
}

// MatchProvider finds the best eligible provider for a booking's service and
// area, or ErrNoEligibleProvider.
func MatchProvider(serviceName, area string) (*models.Provider, error) {
	candidates, err := loadMatchableProviders(serviceName)
	if err != nil {
		return nil, fmt.Errorf("load matching candidates: %w", err)
	}

	best := SelectProvider(candidates, serviceName, area)
	if best == nil {
		return nil, ErrNoEligibleProvider
	}
	return best, nil
}

// SearchProviders is the customer-facing search over the shared eligibility
// predicate, with user data attached for display.
func SearchProviders(serviceName, area string) ([]models.Provider, error) {
	candidates, err := loadMatchableProviders(serviceName)
	if err != nil {
		return nil, fmt.Errorf("search providers: %w", err)
	}

	results := make([]models.Provider, 0, len(candidates))
	for i := range candidates {
		if EligibleProvider(&candidates[i], serviceName, area) {
			results = append(results, candidates[i])
		}
	}
	return results, nil
}

// loadMatchableProviders pulls active skill-matched providers, applying the
// approval and soft-delete gates only when the deployment has those columns.
func loadMatchableProviders(serviceName string) ([]models.Provider, error) {
	query := database.DB.
		Preload("User").
		Where("skill = ? AND is_active = ?", serviceName, true)

	if database.Schema.ProviderApprovalStatus {
		query = query.Where("approval_status IN ?", []string{string(models.ApprovalActive), ""})
	}
	if database.Schema.ProviderSoftDelete {
		query = query.Where("is_deleted = ?", false)
	}

	var providers []models.Provider
	if err := query.Order("rating DESC, id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}
