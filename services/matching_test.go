package services

import (
	"testing"

	"localbookr-server/models"
)

func activeProvider(id uint, skill, area string, rating float64) models.Provider {
	return models.Provider{
		ID:             id,
		UserID:         id + 100,
		Skill:          skill,
		Area:           area,
		Rating:         rating,
		IsActive:       true,
		ApprovalStatus: models.ApprovalActive,
	}
}

func TestEligibleProvider(t *testing.T) {
	base := activeProvider(1, "Plumber", "Cidco Colony", 4.5)

	tests := []struct {
		name    string
		mutate  func(p *models.Provider)
		service string
		area    string
		want    bool
	}{
		{"exact match", func(p *models.Provider) {}, "Plumber", "Cidco Colony", true},
		{"area substring", func(p *models.Provider) {}, "Plumber", "Cidco", true},
		{"area case insensitive", func(p *models.Provider) {}, "Plumber", "cidco colony", true},
		{"skill mismatch", func(p *models.Provider) {}, "Electrician", "Cidco", false},
		{"skill is case sensitive", func(p *models.Provider) {}, "plumber", "Cidco", false},
		{"area not contained", func(p *models.Provider) {}, "Plumber", "Andheri", false},
		{"inactive", func(p *models.Provider) { p.IsActive = false }, "Plumber", "Cidco", false},
		{"deleted", func(p *models.Provider) { p.IsDeleted = true }, "Plumber", "Cidco", false},
		{"unapproved", func(p *models.Provider) { p.ApprovalStatus = models.ApprovalPending }, "Plumber", "Cidco", false},
		{"rejected", func(p *models.Provider) { p.ApprovalStatus = models.ApprovalRejected }, "Plumber", "Cidco", false},
		{"legacy row without approval counts as approved", func(p *models.Provider) { p.ApprovalStatus = "" }, "Plumber", "Cidco", true},
		{"empty area matches everyone", func(p *models.Provider) {}, "Plumber", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			if got := EligibleProvider(&p, tt.service, tt.area); got != tt.want {
				t.Errorf("EligibleProvider() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectProviderHighestRating(t *testing.T) {
	candidates := []models.Provider{
		activeProvider(1, "Plumber", "Cidco Colony", 3.5),
		activeProvider(2, "Plumber", "Cidco Colony", 4.8),
		activeProvider(3, "Plumber", "Cidco Colony", 4.2),
	}

	best := SelectProvider(candidates, "Plumber", "Cidco")
	if best == nil {
		t.Fatal("expected a provider, got nil")
	}
	if best.ID != 2 {
		t.Errorf("selected provider %d, want 2 (highest rating)", best.ID)
	}
}

func TestSelectProviderTieBreaksOnLowestID(t *testing.T) {
	candidates := []models.Provider{
		activeProvider(9, "Plumber", "Cidco Colony", 4.5),
		activeProvider(3, "Plumber", "Cidco Colony", 4.5),
		activeProvider(6, "Plumber", "Cidco Colony", 4.5),
	}

	// Result must not depend on candidate order.
	for i := 0; i < len(candidates); i++ {
		rotated := append(candidates[i:], candidates[:i]...)
		best := SelectProvider(rotated, "Plumber", "Cidco")
		if best == nil || best.ID != 3 {
			t.Fatalf("rotation %d: selected %v, want provider 3", i, best)
		}
	}
}

func TestSelectProviderSkipsIneligible(t *testing.T) {
	inactive := activeProvider(1, "Plumber", "Cidco Colony", 5.0)
	inactive.IsActive = false
	deleted := activeProvider(2, "Plumber", "Cidco Colony", 5.0)
	deleted.IsDeleted = true
	unapproved := activeProvider(3, "Plumber", "Cidco Colony", 5.0)
	unapproved.ApprovalStatus = models.ApprovalPending

	candidates := []models.Provider{
		inactive,
		deleted,
		unapproved,
		activeProvider(4, "Plumber", "Cidco Colony", 2.0),
	}

	best := SelectProvider(candidates, "Plumber", "Cidco")
	if best == nil {
		t.Fatal("expected a provider, got nil")
	}
	if best.ID != 4 {
		t.Errorf("selected provider %d, want 4 (only eligible candidate)", best.ID)
	}
}

func TestSelectProviderNoCandidates(t *testing.T) {
	if best := SelectProvider(nil, "Plumber", "Cidco"); best != nil {
		t.Errorf("expected nil for empty candidate set, got provider %d", best.ID)
	}

	candidates := []models.Provider{
		activeProvider(1, "Electrician", "Cidco Colony", 4.0),
	}
	if best := SelectProvider(candidates, "Plumber", "Cidco"); best != nil {
		t.Errorf("expected nil when no skill matches, got provider %d", best.ID)
	}
}
