package database

import (
	"fmt"
	"math/rand"
	"time"
)

// SeedDatabase crée le schéma entrepôt et le peuple avec des données
// volontairement sales: emails dupliqués, mobiles malformés, codes postaux
// fantaisistes, familles partiellement vides, codes produits orphelins.
// Le pipeline de nettoyage doit être exercé sur du réaliste, pas du propre
func SeedDatabase(days int) error {
	fmt.Println("🌱 Création du schéma entrepôt...")
	if err := createSchema(); err != nil {
		return fmt.Errorf("erreur création schéma: %w", err)
	}

	fmt.Println("🌱 Génération du catalogue produits...")
	codes, err := seedProduits(120)
	if err != nil {
		return fmt.Errorf("erreur génération produits: %w", err)
	}

	fmt.Println("🌱 Génération des clients web...")
	if err := seedClients(2000); err != nil {
		return fmt.Errorf("erreur génération clients: %w", err)
	}

	fmt.Println("🌱 Génération des commandes et lignes...")
	if err := seedCommandes(days, codes); err != nil {
		return fmt.Errorf("erreur génération commandes: %w", err)
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

func createSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS clients_web (
			id BIGSERIAL PRIMARY KEY,
			email_client TEXT,
			prenom_client TEXT,
			nom_client TEXT,
			libelle_lg_pays TEXT,
			code_postal_adr_client TEXT,
			portable_client TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS produits (
			code_produit TEXT PRIMARY KEY,
			libelle TEXT NOT NULL,
			famille1 TEXT, famille2 TEXT, famille3 TEXT, famille4 TEXT,
			url_famille1 TEXT, url_famille2 TEXT, url_famille3 TEXT, url_famille4 TEXT,
			prix_catalogue NUMERIC(10,2),
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS commandes (
			id BIGSERIAL PRIMARY KEY,
			date_validation TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS lignes_commande (
			id BIGSERIAL PRIMARY KEY,
			commande_id BIGINT NOT NULL REFERENCES commandes(id),
			code_produit TEXT NOT NULL,
			quantite INT NOT NULL,
			ca_net NUMERIC(12,2) NOT NULL,
			cout_achat NUMERIC(12,2) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commandes_date ON commandes(date_validation)`,
		`CREATE INDEX IF NOT EXISTS idx_lignes_commande_produit ON lignes_commande(code_produit)`,
	}

	for _, stmt := range schema {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

var familles = []struct {
	f1, f2, f3, f4 string
}{
	{"Outils", "Motoculture", "Tondeuses", "Tondeuses thermiques"},
	{"Outils", "Motoculture", "Tondeuses", ""},
	{"Outils", "Motoculture", "", ""},
	{"Elevage", "Clôtures", "Electrificateurs", "Electrificateurs secteur"},
	{"Elevage", "Clôtures", "", ""},
	{"Jardin", "Arrosage", "Pompes", ""},
	{"Jardin", "", "", ""},
	{"", "", "", ""}, // 4 niveaux vides: produit sans famille
}

func seedProduits(count int) ([]string, error) {
	fmt.Printf("   📦 Génération de %d produits...\n", count)

	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		fam := familles[rand.Intn(len(familles))]
		p := Produit{
			Code:         fmt.Sprintf("AGZ-%05d", i+1),
			Label:        fmt.Sprintf("Produit %d", i+1),
			Family1:      optional(fam.f1),
			Family2:      optional(fam.f2),
			Family3:      optional(fam.f3),
			Family4:      optional(fam.f4),
			URL1:         optional(slug(fam.f1)),
			URL2:         optional(slug(fam.f2)),
			URL3:         optional(slug(fam.f3)),
			URL4:         optional(slug(fam.f4)),
			CatalogPrice: 20 + rand.Float64()*1500,
		}

		_, err := DB.Exec(`
			INSERT INTO produits (code_produit, libelle,
				famille1, famille2, famille3, famille4,
				url_famille1, url_famille2, url_famille3, url_famille4,
				prix_catalogue)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (code_produit) DO NOTHING`,
			p.Code, p.Label,
			p.Family1, p.Family2, p.Family3, p.Family4,
			p.URL1, p.URL2, p.URL3, p.URL4,
			p.CatalogPrice,
		)
		if err != nil {
			return nil, err
		}
		codes = append(codes, p.Code)
	}
	return codes, nil
}

// optional convertit une chaîne vide en NULL
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func slug(label string) string {
	if label == "" {
		return ""
	}
	out := make([]rune, 0, len(label)+1)
	out = append(out, '/')
	for _, r := range label {
		switch {
		case r == ' ':
			out = append(out, '-')
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}

var prenoms = []string{"jean", "MARIE", " luc ", "sophie", "pierre-louis", "anne"}
var noms = []string{"dupont", "MARTIN", " petit ", "durand", "de la tour", "bernard"}
var pays = []string{"France", "france métropolitaine", "Belgique", "  Suisse", "Luxembourg", ""}
var codesPostaux = []string{"75001", "75.001", "69 001", "310", "ABCDE", "06130", ""}
var mobiles = []string{
	"06 12 34 56 78", "+33 6 98 76 54 32", "0033612345678",
	"06.11.22.33.44", "12 34", "", "portable inconnu",
}

func seedClients(count int) error {
	fmt.Printf("   👥 Génération de %d clients...\n", count)

	for i := 0; i < count; i++ {
		email := fmt.Sprintf("client%d@exemple.fr", i+1)
		switch rand.Intn(20) {
		case 0:
			// Doublon volontaire sur un email existant
			email = fmt.Sprintf("client%d@exemple.fr", rand.Intn(i+1)+1)
		case 1:
			email = ""
		}

		c := ClientWeb{
			Email:      optional(email),
			FirstName:  optional(prenoms[rand.Intn(len(prenoms))]),
			LastName:   optional(noms[rand.Intn(len(noms))]),
			Country:    optional(pays[rand.Intn(len(pays))]),
			PostalCode: optional(codesPostaux[rand.Intn(len(codesPostaux))]),
			Mobile:     optional(mobiles[rand.Intn(len(mobiles))]),
		}

		_, err := DB.Exec(`
			INSERT INTO clients_web (email_client, prenom_client, nom_client,
				libelle_lg_pays, code_postal_adr_client, portable_client)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			c.Email, c.FirstName, c.LastName, c.Country, c.PostalCode, c.Mobile,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func seedCommandes(days int, codes []string) error {
	if days < 1 {
		days = 365
	}
	count := days * 12
	fmt.Printf("   🛒 Génération de %d commandes sur %d jours...\n", count, days)

	now := time.Now()
	for i := 0; i < count; i++ {
		cmd := Commande{ValidationDate: now.AddDate(0, 0, -rand.Intn(days))}

		err := DB.QueryRow(`
			INSERT INTO commandes (date_validation) VALUES ($1) RETURNING id`,
			cmd.ValidationDate,
		).Scan(&cmd.ID)
		if err != nil {
			return err
		}

		for l := 0; l < 1+rand.Intn(4); l++ {
			code := codes[rand.Intn(len(codes))]
			if rand.Intn(30) == 0 {
				// Code produit orphelin: absent du catalogue, doit rester
				// comptabilisé dans la partition sans famille
				code = fmt.Sprintf("OLD-%04d", rand.Intn(500))
			}

			qty := 1 + rand.Intn(5)
			unitPrice := 15 + rand.Float64()*600
			line := LigneCommande{
				CommandeID:  cmd.ID,
				ProductCode: code,
				Quantity:    qty,
				NetRevenue:  float64(qty) * unitPrice,
				UnitCost:    unitPrice * (0.4 + rand.Float64()*0.4),
			}

			_, err := DB.Exec(`
				INSERT INTO lignes_commande (commande_id, code_produit, quantite, ca_net, cout_achat)
				VALUES ($1, $2, $3, $4, $5)`,
				line.CommandeID, line.ProductCode, line.Quantity,
				line.NetRevenue, line.UnitCost,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
