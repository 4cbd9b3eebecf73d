package application

import (
	"fmt"
	"sort"

	"agrireport/internal/analytics/domain"
	catalogdomain "agrireport/internal/catalog/domain"
	shareddomain "agrireport/internal/shared/domain"
)

// Aggregator calcule les agrégats produits et familles d'un batch de lignes
// de commande jointes au catalogue. Transformation pure et déterministe:
// deux appels sur le même batch produisent le même rapport
type Aggregator struct{}

// NewAggregator crée un nouvel agrégateur
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

type productAcc struct {
	orders       map[int64]struct{}
	quantity     int
	revenue      float64
	catalogPrice float64
}

type familyAcc struct {
	revenue float64
	margin  float64
}

type familyKey struct {
	label string
	url   string
}

// Aggregate applique le pipeline: résolution de famille par escalade,
// partition avec/sans famille, agrégats par produit et par (famille, URL),
// filtre de seuils, réconciliation du CA.
// Seule une configuration invalide produit une erreur; les lignes orphelines
// alimentent la partition "sans famille", jamais une erreur
func (a *Aggregator) Aggregate(lines []domain.JoinedLine, cfg domain.ReportConfig) (*domain.Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	products := make(map[string]*productAcc)
	families := make(map[familyKey]*familyAcc)

	recon := domain.Reconciliation{}

	for _, jl := range lines {
		recon.TotalRevenue += jl.Line.NetRevenue

		resolved, ok := resolveFamily(jl.Product)
		if !ok {
			// Produit inconnu du catalogue ou 4 niveaux de famille vides:
			// la ligne sort des statistiques mais son CA reste comptabilisé
			recon.OrphanRevenue += jl.Line.NetRevenue
			recon.OrphanLines++
			continue
		}
		recon.FamilyRevenue += jl.Line.NetRevenue

		acc, exists := products[jl.Line.ProductCode]
		if !exists {
			acc = &productAcc{
				orders:       make(map[int64]struct{}),
				catalogPrice: jl.Product.CatalogPrice,
			}
			products[jl.Line.ProductCode] = acc
		}
		acc.orders[jl.Line.OrderID] = struct{}{}
		acc.quantity += jl.Line.Quantity
		acc.revenue += jl.Line.NetRevenue

		key := familyKey{label: resolved.Label, url: resolved.URL}
		fam, exists := families[key]
		if !exists {
			fam = &familyAcc{}
			families[key] = fam
		}
		// Marge sommée ligne à ligne (coût unitaire × quantité), jamais
		// reconstruite après agrégation
		fam.revenue += jl.Line.NetRevenue
		fam.margin += jl.Line.Margin()
	}

	report := &domain.Report{
		Products:       buildProductAggregates(products, cfg),
		Families:       buildFamilyAggregates(families),
		Reconciliation: recon,
	}

	if !recon.Balanced() {
		report.Warnings = append(report.Warnings, fmt.Sprintf(
			"réconciliation CA hors tolérance: familles %.2f + sans famille %.2f ≠ total %.2f (écart %.2f)",
			recon.FamilyRevenue, recon.OrphanRevenue, recon.TotalRevenue, recon.Gap()))
	}

	return report, nil
}

// resolveFamily applique l'escalade sur une jointure LEFT: un produit absent
// du catalogue est non résolu par définition
func resolveFamily(info *catalogdomain.ProductFamilyInfo) (catalogdomain.ResolvedFamily, bool) {
	if info == nil {
		return catalogdomain.ResolvedFamily{}, false
	}
	return info.Resolve()
}

func buildProductAggregates(accs map[string]*productAcc, cfg domain.ReportConfig) []domain.ProductAggregate {
	aggregates := make([]domain.ProductAggregate, 0, len(accs))
	for code, acc := range accs {
		basket, _ := shareddomain.DivRound2(acc.revenue, float64(len(acc.orders)))
		agg := domain.ProductAggregate{
			ProductCode:   code,
			OrderCount:    len(acc.orders),
			QuantitySold:  acc.quantity,
			Revenue:       acc.revenue,
			AverageBasket: basket,
			CatalogPrice:  acc.catalogPrice,
		}
		// Filtre AND inclusif: nb commandes, panier moyen et CA doivent tous
		// atteindre leur seuil
		if cfg.Passes(agg) {
			aggregates = append(aggregates, agg)
		}
	}

	// Tri déterministe: CA décroissant, code produit en départage
	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Revenue != aggregates[j].Revenue {
			return aggregates[i].Revenue > aggregates[j].Revenue
		}
		return aggregates[i].ProductCode < aggregates[j].ProductCode
	})
	return aggregates
}

func buildFamilyAggregates(accs map[familyKey]*familyAcc) []domain.FamilyAggregate {
	aggregates := make([]domain.FamilyAggregate, 0, len(accs))
	for key, acc := range accs {
		agg := domain.FamilyAggregate{
			Family:  key.label,
			URL:     key.url,
			Revenue: acc.revenue,
			Margin:  acc.margin,
		}
		if pct, ok := shareddomain.PctRound2(acc.margin, acc.revenue); ok {
			agg.MarginPct = &pct
		}
		aggregates = append(aggregates, agg)
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].Revenue != aggregates[j].Revenue {
			return aggregates[i].Revenue > aggregates[j].Revenue
		}
		if aggregates[i].Family != aggregates[j].Family {
			return aggregates[i].Family < aggregates[j].Family
		}
		return aggregates[i].URL < aggregates[j].URL
	})
	return aggregates
}
