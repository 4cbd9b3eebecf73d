package domain

import "strings"

// ProductFamilyInfo représente la hiérarchie de familles d'un produit du
// catalogue: jusqu'à 4 niveaux de plus en plus spécifiques, chacun avec une
// URL facultative, plus le prix catalogue
type ProductFamilyInfo struct {
	ProductCode  string
	Family1      string
	Family2      string
	Family3      string
	Family4      string
	URL1         string
	URL2         string
	URL3         string
	URL4         string
	CatalogPrice float64
}

// ResolvedFamily famille retenue par escalade: le niveau non vide le plus
// spécifique. L'URL est escaladée indépendamment des libellés
type ResolvedFamily struct {
	Label string
	URL   string
}

// Resolve applique la règle d'escalade famille4 → famille3 → famille2 →
// famille1. Retourne false uniquement quand les 4 niveaux sont vides:
// la ligne de commande correspondante sort des statistiques par famille
func (p ProductFamilyInfo) Resolve() (ResolvedFamily, bool) {
	label := firstNonEmpty(p.Family4, p.Family3, p.Family2, p.Family1)
	if label == "" {
		return ResolvedFamily{}, false
	}
	return ResolvedFamily{
		Label: label,
		URL:   firstNonEmpty(p.URL4, p.URL3, p.URL2, p.URL1),
	}, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
