package domain

import (
	"errors"
	"strconv"

	analyticsdomain "agrireport/internal/analytics/domain"
	contactsdomain "agrireport/internal/contacts/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ExportType représente le jeu de données exporté
type ExportType string

const (
	ExportTypeContacts ExportType = "contacts"
	ExportTypeProducts ExportType = "produits"
	ExportTypeFamilies ExportType = "familles"
)

// ErrInvalidExportFormat format d'export inconnu
var ErrInvalidExportFormat = errors.New("invalid export format")

// ErrInvalidExportType type d'export inconnu
var ErrInvalidExportType = errors.New("invalid export type")

// ValidateJob vérifie le couple format/type demandé par l'appelant
func ValidateJob(format ExportFormat, exportType ExportType) error {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return ErrInvalidExportFormat
	}
	switch exportType {
	case ExportTypeContacts, ExportTypeProducts, ExportTypeFamilies:
		return nil
	}
	return ErrInvalidExportType
}

// ContactCSVHeaders en-têtes du fichier contacts, noms et ordre historiques
func ContactCSVHeaders() []string {
	return []string{"Email", "First Name", "Last Name", "Country", "Zip", "N° de mobile"}
}

// ContactCSVRow convertit un contact canonique en ligne CSV
func ContactCSVRow(c contactsdomain.CleanedContact) []string {
	return c.Fields()
}

// ProductCSVHeaders en-têtes du rapport produits
func ProductCSVHeaders() []string {
	return []string{"code_produit", "nb_commandes", "quantite_vendue", "ca_net", "panier_moyen", "prix_catalogue"}
}

// ProductCSVRow convertit un agrégat produit en ligne CSV
func ProductCSVRow(p analyticsdomain.ProductAggregate) []string {
	return []string{
		p.ProductCode,
		strconv.Itoa(p.OrderCount),
		strconv.Itoa(p.QuantitySold),
		strconv.FormatFloat(p.Revenue, 'f', 2, 64),
		strconv.FormatFloat(p.AverageBasket, 'f', 2, 64),
		strconv.FormatFloat(p.CatalogPrice, 'f', 2, 64),
	}
}

// FamilyCSVHeaders en-têtes du rapport familles
func FamilyCSVHeaders() []string {
	return []string{"famille", "url", "ca_net", "marge", "marge_pct"}
}

// FamilyCSVRow convertit un agrégat famille en ligne CSV.
// Une marge pct indéfinie (CA nul) sort en cellule vide, pas en zéro
func FamilyCSVRow(f analyticsdomain.FamilyAggregate) []string {
	marginPct := ""
	if f.MarginPct != nil {
		marginPct = strconv.FormatFloat(*f.MarginPct, 'f', 2, 64)
	}
	return []string{
		f.Family,
		f.URL,
		strconv.FormatFloat(f.Revenue, 'f', 2, 64),
		strconv.FormatFloat(f.Margin, 'f', 2, 64),
		marginPct,
	}
}

// ProductParquet structure d'export Parquet du rapport produits
type ProductParquet struct {
	ProductCode   string  `parquet:"name=code_produit, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderCount    int32   `parquet:"name=nb_commandes, type=INT32"`
	QuantitySold  int32   `parquet:"name=quantite_vendue, type=INT32"`
	Revenue       float64 `parquet:"name=ca_net, type=DOUBLE"`
	AverageBasket float64 `parquet:"name=panier_moyen, type=DOUBLE"`
	CatalogPrice  float64 `parquet:"name=prix_catalogue, type=DOUBLE"`
}

// ToProductParquet convertit un agrégat produit en ligne Parquet
func ToProductParquet(p analyticsdomain.ProductAggregate) ProductParquet {
	return ProductParquet{
		ProductCode:   p.ProductCode,
		OrderCount:    int32(p.OrderCount),
		QuantitySold:  int32(p.QuantitySold),
		Revenue:       p.Revenue,
		AverageBasket: p.AverageBasket,
		CatalogPrice:  p.CatalogPrice,
	}
}
