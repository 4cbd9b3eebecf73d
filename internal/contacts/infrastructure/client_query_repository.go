package infrastructure

import (
	"context"
	"database/sql"

	shareddomain "agrireport/internal/shared/domain"
	"agrireport/internal/shared/infrastructure"
)

// ClientQueryRepository repository de lecture de la table clients web
type ClientQueryRepository struct {
	infrastructure.BaseRepository
}

// NewClientQueryRepository crée un nouveau repository clients
func NewClientQueryRepository(db *sql.DB) *ClientQueryRepository {
	return &ClientQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// FetchRawClients récupère le batch clients brut tel quel (SELECT *).
// Le résultat est rendu sous forme tabulaire: c'est le normaliseur qui lie
// les colonnes par nom et signale un schéma d'entrepôt incompatible.
// rowLimit <= 0 signifie pas de limite
func (r *ClientQueryRepository) FetchRawClients(ctx context.Context, rowLimit int) (*shareddomain.Table, error) {
	query := `SELECT * FROM clients_web`
	var args []interface{}
	if rowLimit > 0 {
		query += ` LIMIT $1`
		args = append(args, rowLimit)
	}

	rows, err := r.WithContext(ctx).Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	table := shareddomain.NewTable(columns)
	for rows.Next() {
		cells := make([]sql.NullString, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		values := make([]*string, len(columns))
		for i, c := range cells {
			if c.Valid {
				v := c.String
				values[i] = &v
			}
		}
		if err := table.AppendRow(values); err != nil {
			return nil, err
		}
	}

	return table, rows.Err()
}
