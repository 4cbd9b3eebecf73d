package domain

import (
	"errors"
	"fmt"

	catalogdomain "agrireport/internal/catalog/domain"
	ordersdomain "agrireport/internal/orders/domain"
)

// Seuils par défaut observés dans les tableaux de bord historiques
const (
	DefaultMinOrders        = 2
	DefaultMinBasket        = 250.0
	DefaultMinRevenue       = 180.0
	DefaultPriceSplitCutoff = 800.0
)

// ReconciliationTolerance écart de CA toléré entre les partitions et le total
// (arrondis flottants), en EUR
const ReconciliationTolerance = 1.0

// Erreurs de validation de la configuration de rapport
var (
	ErrNegativeMinOrders  = errors.New("min_orders cannot be negative")
	ErrNegativeMinBasket  = errors.New("min_basket cannot be negative")
	ErrNegativeMinRevenue = errors.New("min_revenue cannot be negative")
	ErrNegativeCutoff     = errors.New("price_split_cutoff cannot be negative")
)

// JoinedLine ligne de commande jointe au catalogue (LEFT JOIN).
// Product est nil quand le code produit est inconnu du catalogue: la ligne
// est conservée pour la réconciliation du CA, pas écartée
type JoinedLine struct {
	Line    ordersdomain.OrderLine
	Product *catalogdomain.ProductFamilyInfo
}

// ProductAggregate métriques commerciales groupées par code produit
type ProductAggregate struct {
	ProductCode   string  `json:"code_produit"`
	OrderCount    int     `json:"nb_commandes"`
	QuantitySold  int     `json:"quantite_vendue"`
	Revenue       float64 `json:"ca_net"`
	AverageBasket float64 `json:"panier_moyen"`
	CatalogPrice  float64 `json:"prix_catalogue"`
}

// FamilyAggregate métriques commerciales groupées par famille résolue.
// MarginPct est nil quand le CA est nul: le ratio est indéfini, ni une
// erreur ni zéro
type FamilyAggregate struct {
	Family    string   `json:"famille"`
	URL       string   `json:"url"`
	Revenue   float64  `json:"ca_net"`
	Margin    float64  `json:"marge"`
	MarginPct *float64 `json:"marge_pct"`
}

// Reconciliation bilan de la partition du CA entre lignes avec famille
// résolue et lignes "sans famille" (produit inconnu ou 4 niveaux vides)
type Reconciliation struct {
	TotalRevenue  float64 `json:"ca_total"`
	FamilyRevenue float64 `json:"ca_familles"`
	OrphanRevenue float64 `json:"ca_sans_famille"`
	OrphanLines   int     `json:"lignes_sans_famille"`
}

// Gap retourne l'écart entre la somme des partitions et le CA total
func (r Reconciliation) Gap() float64 {
	gap := r.FamilyRevenue + r.OrphanRevenue - r.TotalRevenue
	if gap < 0 {
		return -gap
	}
	return gap
}

// Balanced vérifie l'invariant de réconciliation à la tolérance près
func (r Reconciliation) Balanced() bool {
	return r.Gap() <= ReconciliationTolerance
}

// Report résultat complet d'une agrégation commandes/familles.
// Warnings porte les alertes qualité de données (réconciliation hors
// tolérance): le rapport reste retourné au mieux, jamais d'erreur fatale
type Report struct {
	Products       []ProductAggregate `json:"produits"`
	Families       []FamilyAggregate  `json:"familles"`
	Reconciliation Reconciliation     `json:"reconciliation"`
	Warnings       []string           `json:"warnings,omitempty"`
}

// ReportConfig paramètres explicites d'un rapport: les ~12 variantes
// historiques ne différaient que par ces valeurs
type ReportConfig struct {
	MinOrders        int
	MinBasket        float64
	MinRevenue       float64
	PriceSplitCutoff float64
}

// DefaultReportConfig retourne la configuration aux seuils historiques
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		MinOrders:        DefaultMinOrders,
		MinBasket:        DefaultMinBasket,
		MinRevenue:       DefaultMinRevenue,
		PriceSplitCutoff: DefaultPriceSplitCutoff,
	}
}

// Validate rejette les seuils malformés avant tout traitement
func (c ReportConfig) Validate() error {
	if c.MinOrders < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeMinOrders, c.MinOrders)
	}
	if c.MinBasket < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeMinBasket, c.MinBasket)
	}
	if c.MinRevenue < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeMinRevenue, c.MinRevenue)
	}
	if c.PriceSplitCutoff < 0 {
		return fmt.Errorf("%w: %g", ErrNegativeCutoff, c.PriceSplitCutoff)
	}
	return nil
}

// Passes applique le filtre de seuils: les trois conditions doivent tenir
// simultanément, bornes incluses
func (c ReportConfig) Passes(p ProductAggregate) bool {
	return p.OrderCount >= c.MinOrders &&
		p.AverageBasket >= c.MinBasket &&
		p.Revenue >= c.MinRevenue
}

// SplitByCatalogPrice découpe les agrégats produits en deux sous-ensembles
// disjoints: prix catalogue strictement supérieur au seuil, et inférieur ou
// égal
func SplitByCatalogPrice(products []ProductAggregate, cutoff float64) (above, below []ProductAggregate) {
	for _, p := range products {
		if p.CatalogPrice > cutoff {
			above = append(above, p)
		} else {
			below = append(below, p)
		}
	}
	return above, below
}
