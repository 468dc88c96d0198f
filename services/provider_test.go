package services

import "testing"

func TestProviderDeletePolicy(t *testing.T) {
	tests := []struct {
		name          string
		liveJobs      int64
		historyJobs   int64
		canSoftDelete bool
		want          ProviderDeleteAction
	}{
		{"live jobs block removal", 2, 5, true, ProviderDeleteBlocked},
		{"live jobs block even without soft delete", 1, 1, false, ProviderDeleteBlocked},
		{"no references hard deletes", 0, 0, true, ProviderDeleteHard},
		{"no references hard deletes without soft delete", 0, 0, false, ProviderDeleteHard},
		{"history soft deletes", 0, 3, true, ProviderDeleteSoft},
		{"history without soft delete keeps the row", 0, 3, false, ProviderDeleteUnsupported},
		{"single completed booking keeps the row", 0, 1, false, ProviderDeleteUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProviderDeletePolicy(tt.liveJobs, tt.historyJobs, tt.canSoftDelete)
			if got != tt.want {
				t.Errorf("ProviderDeletePolicy(%d, %d, %v) = %v, want %v",
					tt.liveJobs, tt.historyJobs, tt.canSoftDelete, got, tt.want)
			}
		})
	}
}
