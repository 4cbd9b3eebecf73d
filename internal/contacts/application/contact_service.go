package application

import (
	"context"

	"agrireport/internal/contacts/domain"
	"agrireport/internal/contacts/infrastructure"
)

// ContactService charge le batch clients brut depuis l'entrepôt et le
// normalise. L'I/O reste ici, le nettoyage lui-même est pur
type ContactService struct {
	clientRepo *infrastructure.ClientQueryRepository
	normalizer *Normalizer
}

// NewContactService crée un nouveau service contacts
func NewContactService(clientRepo *infrastructure.ClientQueryRepository) *ContactService {
	return &ContactService{
		clientRepo: clientRepo,
		normalizer: NewNormalizer(),
	}
}

// CleanedContacts retourne les contacts canoniques de la base clients.
// rowLimit <= 0 signifie pas de limite
func (s *ContactService) CleanedContacts(ctx context.Context, rowLimit int) ([]domain.CleanedContact, NormalizeStats, error) {
	table, err := s.clientRepo.FetchRawClients(ctx, rowLimit)
	if err != nil {
		return nil, NormalizeStats{}, err
	}
	return s.normalizer.NormalizeTable(table)
}
