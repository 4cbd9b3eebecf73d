package application

import (
	"context"
	"time"

	"agrireport/internal/analytics/domain"
	"agrireport/internal/analytics/infrastructure"
	shareddomain "agrireport/internal/shared/domain"
	sharedinfra "agrireport/internal/shared/infrastructure"
)

// ReportService calcule les rapports commandes/familles avec cache.
// L'agrégation étant pure, un rapport servi depuis le cache est identique
// au rapport recalculé sur les mêmes paramètres
type ReportService struct {
	reportRepo *infrastructure.ReportQueryRepository
	aggregator *Aggregator
	cache      sharedinfra.Cache
	cacheTTL   time.Duration
}

// NewReportService crée un nouveau service de rapport
func NewReportService(
	reportRepo *infrastructure.ReportQueryRepository,
	cache sharedinfra.Cache,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		aggregator: NewAggregator(),
		cache:      cache,
		cacheTTL:   5 * time.Minute,
	}
}

// GetReport calcule le rapport des N derniers jours avec les seuils donnés.
// Vérifie d'abord le cache; un miss déclenche la requête entrepôt puis
// l'agrégation
func (s *ReportService) GetReport(ctx context.Context, days int, cfg domain.ReportConfig) (*domain.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.buildCacheKey(days, cfg)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*domain.Report), nil
	}

	dateRange, err := shareddomain.NewDateRangeFromDays(days)
	if err != nil {
		return nil, err
	}

	lines, err := s.reportRepo.FetchOrderLines(ctx, dateRange)
	if err != nil {
		return nil, err
	}

	report, err := s.aggregator.Aggregate(lines, cfg)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, report, s.cacheTTL)
	return report, nil
}

// GetReportSplit calcule le rapport puis découpe les produits survivants par
// prix catalogue (commodité appelant, pas un invariant du coeur)
func (s *ReportService) GetReportSplit(ctx context.Context, days int, cfg domain.ReportConfig) (*domain.Report, []domain.ProductAggregate, []domain.ProductAggregate, error) {
	report, err := s.GetReport(ctx, days, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	above, below := domain.SplitByCatalogPrice(report.Products, cfg.PriceSplitCutoff)
	return report, above, below, nil
}

func (s *ReportService) buildCacheKey(days int, cfg domain.ReportConfig) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("report").
		AddInt(days).
		AddInt(cfg.MinOrders).
		AddFloat(cfg.MinBasket).
		AddFloat(cfg.MinRevenue).
		AddFloat(cfg.PriceSplitCutoff).
		Build()
}

// InvalidateCache invalide le rapport en cache pour ces paramètres
func (s *ReportService) InvalidateCache(days int, cfg domain.ReportConfig) {
	s.cache.Delete(s.buildCacheKey(days, cfg))
}

// ClearCache vide tout le cache de rapports
func (s *ReportService) ClearCache() {
	s.cache.Clear()
}
