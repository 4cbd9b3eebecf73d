package database

import "time"

// ============================================================================
// MODÈLES DE DONNÉES - Schéma entrepôt
// ============================================================================

// ClientWeb - Ligne brute de la table clients (texte libre nullable, le
// nettoyage appartient au normaliseur, pas au schéma)
type ClientWeb struct {
	ID         int64     `json:"id"`
	Email      *string   `json:"email_client,omitempty"`
	FirstName  *string   `json:"prenom_client,omitempty"`
	LastName   *string   `json:"nom_client,omitempty"`
	Country    *string   `json:"libelle_lg_pays,omitempty"`
	PostalCode *string   `json:"code_postal_adr_client,omitempty"`
	Mobile     *string   `json:"portable_client,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Produit - Produit du catalogue avec hiérarchie de familles à 4 niveaux
type Produit struct {
	Code         string    `json:"code_produit"`
	Label        string    `json:"libelle"`
	Family1      *string   `json:"famille1,omitempty"`
	Family2      *string   `json:"famille2,omitempty"`
	Family3      *string   `json:"famille3,omitempty"`
	Family4      *string   `json:"famille4,omitempty"`
	URL1         *string   `json:"url_famille1,omitempty"`
	URL2         *string   `json:"url_famille2,omitempty"`
	URL3         *string   `json:"url_famille3,omitempty"`
	URL4         *string   `json:"url_famille4,omitempty"`
	CatalogPrice float64   `json:"prix_catalogue"`
	CreatedAt    time.Time `json:"created_at"`
}

// Commande - Commande validée (header)
type Commande struct {
	ID             int64     `json:"id"`
	ValidationDate time.Time `json:"date_validation"`
	CreatedAt      time.Time `json:"created_at"`
}

// LigneCommande - Ligne de commande (détail): CA net hors taxes, coût
// d'achat unitaire
type LigneCommande struct {
	ID          int64   `json:"id"`
	CommandeID  int64   `json:"commande_id"`
	ProductCode string  `json:"code_produit"`
	Quantity    int     `json:"quantite"`
	NetRevenue  float64 `json:"ca_net"`
	UnitCost    float64 `json:"cout_achat"`
}
