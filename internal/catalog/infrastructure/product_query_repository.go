package infrastructure

import (
	"context"
	"database/sql"

	"agrireport/internal/catalog/domain"
	"agrireport/internal/shared/infrastructure"
)

// ProductQueryRepository repository de lecture du catalogue produits
type ProductQueryRepository struct {
	infrastructure.BaseRepository
}

// NewProductQueryRepository crée un nouveau repository catalogue
func NewProductQueryRepository(db *sql.DB) *ProductQueryRepository {
	return &ProductQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FindByCode retourne la hiérarchie de familles d'un produit
func (r *ProductQueryRepository) FindByCode(ctx context.Context, code string) (*domain.ProductFamilyInfo, error) {
	query := `
		SELECT code_produit,
		       COALESCE(famille1, ''), COALESCE(famille2, ''),
		       COALESCE(famille3, ''), COALESCE(famille4, ''),
		       COALESCE(url_famille1, ''), COALESCE(url_famille2, ''),
		       COALESCE(url_famille3, ''), COALESCE(url_famille4, ''),
		       COALESCE(prix_catalogue, 0)
		FROM produits
		WHERE code_produit = $1
	`

	var info domain.ProductFamilyInfo
	err := r.WithContext(ctx).QueryRow(query, code).Scan(
		&info.ProductCode,
		&info.Family1, &info.Family2, &info.Family3, &info.Family4,
		&info.URL1, &info.URL2, &info.URL3, &info.URL4,
		&info.CatalogPrice,
	)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// FindAll retourne la hiérarchie de familles de tout le catalogue
func (r *ProductQueryRepository) FindAll(ctx context.Context) ([]domain.ProductFamilyInfo, error) {
	query := `
		SELECT code_produit,
		       COALESCE(famille1, ''), COALESCE(famille2, ''),
		       COALESCE(famille3, ''), COALESCE(famille4, ''),
		       COALESCE(url_famille1, ''), COALESCE(url_famille2, ''),
		       COALESCE(url_famille3, ''), COALESCE(url_famille4, ''),
		       COALESCE(prix_catalogue, 0)
		FROM produits
		ORDER BY code_produit
	`

	rows, err := r.WithContext(ctx).Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []domain.ProductFamilyInfo
	for rows.Next() {
		var info domain.ProductFamilyInfo
		if err := rows.Scan(
			&info.ProductCode,
			&info.Family1, &info.Family2, &info.Family3, &info.Family4,
			&info.URL1, &info.URL2, &info.URL3, &info.URL4,
			&info.CatalogPrice,
		); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}
