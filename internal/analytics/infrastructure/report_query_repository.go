package infrastructure

import (
	"context"
	"database/sql"

	"agrireport/internal/analytics/domain"
	catalogdomain "agrireport/internal/catalog/domain"
	shareddomain "agrireport/internal/shared/domain"
	"agrireport/internal/shared/infrastructure"
)

// ReportQueryRepository repository de lecture des lignes de commande jointes
// au catalogue pour l'agrégateur
type ReportQueryRepository struct {
	infrastructure.BaseRepository
}

// NewReportQueryRepository crée un nouveau repository de rapport
func NewReportQueryRepository(db *sql.DB) *ReportQueryRepository {
	return &ReportQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FetchOrderLines récupère les lignes de commande validées sur la période,
// jointes LEFT au catalogue: une ligne dont le produit est inconnu est
// conservée (Product nil) pour la réconciliation du CA, pas écartée
func (r *ReportQueryRepository) FetchOrderLines(ctx context.Context, dateRange shareddomain.DateRange) ([]domain.JoinedLine, error) {
	query := `
		SELECT lc.commande_id, lc.code_produit, lc.quantite, lc.ca_net,
		       lc.cout_achat, c.date_validation,
		       p.code_produit,
		       COALESCE(p.famille1, ''), COALESCE(p.famille2, ''),
		       COALESCE(p.famille3, ''), COALESCE(p.famille4, ''),
		       COALESCE(p.url_famille1, ''), COALESCE(p.url_famille2, ''),
		       COALESCE(p.url_famille3, ''), COALESCE(p.url_famille4, ''),
		       COALESCE(p.prix_catalogue, 0)
		FROM lignes_commande lc
		INNER JOIN commandes c ON lc.commande_id = c.id
		LEFT JOIN produits p ON lc.code_produit = p.code_produit
		WHERE c.date_validation >= $1 AND c.date_validation <= $2
		ORDER BY lc.commande_id, lc.code_produit
	`

	rows, err := r.WithContext(ctx).Query(query, dateRange.Start(), dateRange.End())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []domain.JoinedLine
	for rows.Next() {
		var (
			jl          domain.JoinedLine
			productCode sql.NullString
			info        catalogdomain.ProductFamilyInfo
		)

		if err := rows.Scan(
			&jl.Line.OrderID, &jl.Line.ProductCode, &jl.Line.Quantity,
			&jl.Line.NetRevenue, &jl.Line.PurchaseCost, &jl.Line.ValidationDate,
			&productCode,
			&info.Family1, &info.Family2, &info.Family3, &info.Family4,
			&info.URL1, &info.URL2, &info.URL3, &info.URL4,
			&info.CatalogPrice,
		); err != nil {
			return nil, err
		}

		if productCode.Valid {
			info.ProductCode = productCode.String
			jl.Product = &info
		}
		lines = append(lines, jl)
	}

	return lines, rows.Err()
}
