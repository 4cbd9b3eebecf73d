package domain

import "testing"

func TestResolve_EscalatesToMostSpecificLevel(t *testing.T) {
	tests := []struct {
		name      string
		info      ProductFamilyInfo
		wantLabel string
		wantURL   string
		wantOK    bool
	}{
		{
			name:      "family4 wins when present",
			info:      ProductFamilyInfo{Family1: "Outils", Family2: "Jardin", Family3: "Tondeuses", Family4: "Tondeuses thermiques", URL1: "/outils", URL4: "/outils/tondeuses-thermiques"},
			wantLabel: "Tondeuses thermiques",
			wantURL:   "/outils/tondeuses-thermiques",
			wantOK:    true,
		},
		{
			name:      "falls back to family3",
			info:      ProductFamilyInfo{Family1: "Outils", Family3: "Tondeuses", URL3: "/outils/tondeuses"},
			wantLabel: "Tondeuses",
			wantURL:   "/outils/tondeuses",
			wantOK:    true,
		},
		{
			name:      "falls back to family1",
			info:      ProductFamilyInfo{Family1: "Outils", URL1: "/outils"},
			wantLabel: "Outils",
			wantURL:   "/outils",
			wantOK:    true,
		},
		{
			name:      "url escalates independently of label",
			info:      ProductFamilyInfo{Family1: "Outils", Family4: "Tondeuses thermiques", URL1: "/outils"},
			wantLabel: "Tondeuses thermiques",
			wantURL:   "/outils",
			wantOK:    true,
		},
		{
			name:      "whitespace-only levels count as empty",
			info:      ProductFamilyInfo{Family1: "Outils", Family4: "   "},
			wantLabel: "Outils",
			wantOK:    true,
		},
		{
			name:   "all four levels empty: unresolved",
			info:   ProductFamilyInfo{ProductCode: "P1"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.info.Resolve()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.URL != tt.wantURL {
				t.Errorf("url = %q, want %q", got.URL, tt.wantURL)
			}
		})
	}
}
