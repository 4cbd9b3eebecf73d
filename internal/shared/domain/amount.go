package domain

import "math"

// Les métriques commerciales (CA net, marge, panier moyen) circulent en
// float64 EUR hors taxes. Une marge peut être négative, on ne passe donc pas
// par un value object interdisant les montants négatifs.

// Round2 arrondit un montant à 2 décimales
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DivRound2 divise et arrondit à 2 décimales (panier moyen = CA / commandes)
// Retourne false si le diviseur est nul: le ratio est indéfini, pas zéro
func DivRound2(numerator, denominator float64) (float64, bool) {
	if denominator == 0 {
		return 0, false
	}
	return Round2(numerator / denominator), true
}

// PctRound2 calcule un pourcentage arrondi à 2 décimales (marge / CA × 100)
// Retourne false si la base est nulle
func PctRound2(part, base float64) (float64, bool) {
	if base == 0 {
		return 0, false
	}
	return Round2(part / base * 100), true
}
