package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	analyticsdomain "agrireport/internal/analytics/domain"
)

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidProfiles(t *testing.T) {
	path := writeProfiles(t, `
profiles:
  - name: standard
    days: 365
  - name: premium
    days: 90
    min_orders: 3
    min_basket: 500
    min_revenue: 1000
    price_split_cutoff: 1200
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(cfg.Profiles))
	}

	// Les seuils omis retombent sur les valeurs historiques
	standard, err := cfg.Profile("standard")
	if err != nil {
		t.Fatal(err)
	}
	rc := standard.ReportConfig()
	want := analyticsdomain.DefaultReportConfig()
	if rc != want {
		t.Errorf("standard profile config = %+v, want defaults %+v", rc, want)
	}

	premium, err := cfg.Profile("premium")
	if err != nil {
		t.Fatal(err)
	}
	prc := premium.ReportConfig()
	if prc.MinOrders != 3 || prc.MinBasket != 500 || prc.MinRevenue != 1000 || prc.PriceSplitCutoff != 1200 {
		t.Errorf("premium profile config = %+v", prc)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"empty profiles", "profiles: []", ErrNoProfiles},
		{"missing name", "profiles:\n  - days: 30", ErrProfileNoName},
		{"duplicate name", "profiles:\n  - name: a\n    days: 30\n  - name: a\n    days: 60", ErrDuplicateProfile},
		{"zero days", "profiles:\n  - name: a\n    days: 0", ErrInvalidDays},
		{"negative threshold", "profiles:\n  - name: a\n    days: 30\n    min_basket: -1", analyticsdomain.ErrNegativeMinBasket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfiles(t, tt.content))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProfile_Unknown(t *testing.T) {
	cfg := &Config{Profiles: []ProfileConfig{{Name: "standard", Days: 365}}}
	if _, err := cfg.Profile("inconnu"); !errors.Is(err, ErrUnknownProfile) {
		t.Errorf("expected ErrUnknownProfile, got %v", err)
	}
}
