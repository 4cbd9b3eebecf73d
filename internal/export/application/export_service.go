package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sync"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	analyticsdomain "agrireport/internal/analytics/domain"
	contactsdomain "agrireport/internal/contacts/domain"
	"agrireport/internal/export/domain"
	sharedinfra "agrireport/internal/shared/infrastructure"
)

// ExportService génère les fichiers d'export en mémoire à partir des
// résultats déjà calculés. Le service ne décide ni du contenu ni des seuils:
// il ne fait que sérialiser les trois formes de sortie du coeur
type ExportService struct {
	workerPool *sharedinfra.WorkerPool
	batchSize  int
}

// NewExportService crée un nouveau service d'export
func NewExportService() *ExportService {
	wp := sharedinfra.NewWorkerPool(4)
	wp.Start()

	return &ExportService{
		workerPool: wp,
		batchSize:  1000,
	}
}

// ContactsCSV sérialise les contacts nettoyés en CSV
func (s *ExportService) ContactsCSV(contacts []contactsdomain.CleanedContact) ([]byte, error) {
	return s.writeCSV(domain.ContactCSVHeaders(), len(contacts), func(i int) []string {
		return domain.ContactCSVRow(contacts[i])
	})
}

// ProductsCSV sérialise le rapport produits en CSV
func (s *ExportService) ProductsCSV(products []analyticsdomain.ProductAggregate) ([]byte, error) {
	return s.writeCSV(domain.ProductCSVHeaders(), len(products), func(i int) []string {
		return domain.ProductCSVRow(products[i])
	})
}

// FamiliesCSV sérialise le rapport familles en CSV
func (s *ExportService) FamiliesCSV(families []analyticsdomain.FamilyAggregate) ([]byte, error) {
	return s.writeCSV(domain.FamilyCSVHeaders(), len(families), func(i int) []string {
		return domain.FamilyCSVRow(families[i])
	})
}

// writeCSV écrit en-têtes puis lignes dans un buffer mémoire, flush par
// batch pour limiter la pression mémoire sur les gros exports
func (s *ExportService) writeCSV(headers []string, count int, row func(int) []string) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	w := csv.NewWriter(buf)

	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		if err := w.Write(row(i)); err != nil {
			return nil, err
		}
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ProductsParquet sérialise le rapport produits en Parquet (en mémoire).
// La conversion des lignes est répartie sur le worker pool par batches,
// chaque batch écrivant sa propre tranche pré-allouée; l'écriture Parquet
// elle-même reste séquentielle
func (s *ExportService) ProductsParquet(products []analyticsdomain.ProductAggregate) ([]byte, error) {
	converted := make([]domain.ProductParquet, len(products))

	numBatches := (len(products) + s.batchSize - 1) / s.batchSize
	var wg sync.WaitGroup
	for b := 0; b < numBatches; b++ {
		start := b * s.batchSize
		end := start + s.batchSize
		if end > len(products) {
			end = len(products)
		}

		wg.Add(1)
		batch := products[start:end]
		offset := start
		task := func() error {
			defer wg.Done()
			for i, p := range batch {
				converted[offset+i] = domain.ToProductParquet(p)
			}
			return nil
		}
		if err := s.workerPool.Submit(task); err != nil {
			wg.Done()
			return nil, err
		}
	}
	wg.Wait()

	fw, err := buffer.NewBufferFile(nil)
	if err != nil {
		return nil, fmt.Errorf("parquet buffer init: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(domain.ProductParquet), 2)
	if err != nil {
		return nil, fmt.Errorf("parquet writer init: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range converted {
		if err := pw.Write(converted[i]); err != nil {
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	return fw.(buffer.BufferFile).Bytes(), nil
}

// Cleanup libère le worker pool
func (s *ExportService) Cleanup() {
	if s.workerPool != nil {
		s.workerPool.Stop()
	}
}
