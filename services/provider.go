package services

// ProviderDeleteAction is the outcome of the provider deletion policy.
type ProviderDeleteAction int

const (
	// ProviderDeleteBlocked means the provider still has live jobs and
	// cannot be removed through any path.
	ProviderDeleteBlocked ProviderDeleteAction = iota
	// ProviderDeleteUnsupported means booking history references the
	// provider but the schema has no soft-delete column, so the row
	// must stay to keep that history intact.
	ProviderDeleteUnsupported
	// ProviderDeleteSoft preserves the row with is_deleted set.
	ProviderDeleteSoft
	// ProviderDeleteHard removes the row outright.
	ProviderDeleteHard
)

// ProviderDeletePolicy decides how a provider may be removed based on its
// referential state. A provider with live jobs is never removable; one
// referenced by booking history may only be soft deleted, and only when the
// schema supports it; an unreferenced provider is hard deleted.
func ProviderDeletePolicy(liveJobs, historyJobs int64, canSoftDelete bool) ProviderDeleteAction {
	switch {
	case liveJobs > 0:
		return ProviderDeleteBlocked
	case historyJobs == 0:
		return ProviderDeleteHard
	case canSoftDelete:
		return ProviderDeleteSoft
	default:
		return ProviderDeleteUnsupported
	}
}
