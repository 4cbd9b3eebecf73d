package application

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	analyticsdomain "agrireport/internal/analytics/domain"
	contactsdomain "agrireport/internal/contacts/domain"
)

func newTestService(t *testing.T) *ExportService {
	t.Helper()
	s := NewExportService()
	t.Cleanup(s.Cleanup)
	return s
}

func TestContactsCSV_HeadersAndRows(t *testing.T) {
	s := newTestService(t)

	data, err := s.ContactsCSV([]contactsdomain.CleanedContact{
		{
			Email:       "a@x.com",
			FirstName:   "Jean",
			LastName:    "Dupont",
			CountryCode: "FR",
			Zip:         "75001",
			Mobile:      "+33612345678",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	wantHeader := "Email,First Name,Last Name,Country,Zip,N° de mobile"
	if got := strings.Join(records[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	wantRow := "a@x.com,Jean,Dupont,FR,75001,+33612345678"
	if got := strings.Join(records[1], ","); got != wantRow {
		t.Errorf("row = %q, want %q", got, wantRow)
	}
}

func TestFamiliesCSV_UndefinedMarginPctIsEmptyCell(t *testing.T) {
	s := newTestService(t)

	pct := 60.0
	data, err := s.FamiliesCSV([]analyticsdomain.FamilyAggregate{
		{Family: "Outils", URL: "/outils", Revenue: 300, Margin: 180, MarginPct: &pct},
		{Family: "Divers", Revenue: 0, Margin: -12.5, MarginPct: nil},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[1][4] != "60.00" {
		t.Errorf("margin pct cell = %q, want 60.00", records[1][4])
	}
	if records[2][4] != "" {
		t.Errorf("undefined margin pct must be empty, got %q", records[2][4])
	}
	if records[2][3] != "-12.50" {
		t.Errorf("negative margin cell = %q, want -12.50", records[2][3])
	}
}

func TestProductsCSV_ColumnOrder(t *testing.T) {
	s := newTestService(t)

	data, err := s.ProductsCSV([]analyticsdomain.ProductAggregate{
		{ProductCode: "P1", OrderCount: 2, QuantitySold: 2, Revenue: 300, AverageBasket: 150, CatalogPrice: 120},
	})
	if err != nil {
		t.Fatal(err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"P1", "2", "2", "300.00", "150.00", "120.00"}
	for i, cell := range want {
		if records[1][i] != cell {
			t.Errorf("cell %d = %q, want %q", i, records[1][i], cell)
		}
	}
}

func TestProductsParquet_RoundTripsRowCount(t *testing.T) {
	s := newTestService(t)

	products := make([]analyticsdomain.ProductAggregate, 0, 2500)
	for i := 0; i < 2500; i++ {
		products = append(products, analyticsdomain.ProductAggregate{
			ProductCode:   "P" + string(rune('A'+i%26)),
			OrderCount:    i%5 + 1,
			QuantitySold:  i % 11,
			Revenue:       float64(i) * 1.5,
			AverageBasket: float64(i),
			CatalogPrice:  float64(i % 900),
		})
	}

	data, err := s.ProductsParquet(products)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty parquet output")
	}
	// Magic bytes PAR1 en tête et en queue du fichier
	if !bytes.HasPrefix(data, []byte("PAR1")) || !bytes.HasSuffix(data, []byte("PAR1")) {
		t.Error("output does not look like a parquet file")
	}
}
