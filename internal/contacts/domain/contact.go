package domain

// Noms des colonnes sources dans la table clients de l'entrepôt
const (
	ColEmail      = "email_client"
	ColFirstName  = "prenom_client"
	ColLastName   = "nom_client"
	ColCountry    = "libelle_lg_pays"
	ColPostalCode = "code_postal_adr_client"
	ColMobile     = "portable_client"
)

// RawClientRecord représente une ligne client brute telle que fournie par
// l'entrepôt: texte libre, potentiellement null, vide ou malformé
type RawClientRecord struct {
	Email       *string
	FirstName   *string
	LastName    *string
	CountryName *string
	PostalCode  *string
	MobileRaw   *string
}

// CleanedContact représente un contact canonique dérivé d'une ligne brute.
// Invariant: tous les champs d'un CleanedContact produit sont non vides;
// une ligne qui échoue à une étape de dérivation est exclue, jamais émise
// partiellement. Au plus un contact par email distinct
type CleanedContact struct {
	Email       string
	FirstName   string
	LastName    string
	CountryCode string
	Zip         string
	Mobile      string
}

// Fields retourne les 6 champs canoniques dans l'ordre d'export
func (c CleanedContact) Fields() []string {
	return []string{c.Email, c.FirstName, c.LastName, c.CountryCode, c.Zip, c.Mobile}
}
