package domain

import "time"

// OrderLine représente une ligne de commande brute de l'entrepôt.
// CA net = prix × quantité hors taxes; le coût d'achat est unitaire
type OrderLine struct {
	OrderID        int64
	ProductCode    string
	Quantity       int
	NetRevenue     float64
	PurchaseCost   float64
	ValidationDate time.Time
}

// CostBasis retourne le coût de revient de la ligne (coût unitaire × quantité).
// Toujours calculé au niveau ligne avant agrégation, jamais reconstruit après
// coup depuis des coûts unitaires moyennés
func (l OrderLine) CostBasis() float64 {
	return l.PurchaseCost * float64(l.Quantity)
}

// Margin retourne la marge de la ligne (CA net − coût de revient)
func (l OrderLine) Margin() float64 {
	return l.NetRevenue - l.CostBasis()
}
