package application

import (
	"regexp"
	"strings"
	"unicode"

	"agrireport/internal/contacts/domain"
	shareddomain "agrireport/internal/shared/domain"
)

// Normalizer transforme les lignes clients brutes de l'entrepôt en contacts
// canoniques. Transformation pure: pas d'I/O, pas d'état caché, un même batch
// d'entrée produit toujours le même batch de sortie.
//
// Les lignes inexploitables sont exclues silencieusement (jamais d'erreur pour
// une mauvaise donnée); les compteurs de NormalizeStats rendent cette perte
// visible sans changer l'ensemble produit
type Normalizer struct {
	nonDigit   *regexp.Regexp
	zipNoise   *regexp.Regexp
	fiveDigits *regexp.Regexp
}

// NormalizeStats compte les exclusions par motif
type NormalizeStats struct {
	Input           int
	MissingEmail    int
	DuplicateEmail  int
	InvalidMobile   int
	IncompleteField int
	Output          int
}

// NewNormalizer crée un nouveau normaliseur
func NewNormalizer() *Normalizer {
	return &Normalizer{
		nonDigit:   regexp.MustCompile(`\D`),
		zipNoise:   regexp.MustCompile(`[\s.]`),
		fiveDigits: regexp.MustCompile(`^[0-9]{5}$`),
	}
}

// Normalize applique le pipeline de nettoyage dans l'ordre historique:
//  1. rejet des emails null puis déduplication par email (première occurrence)
//  2. dérivation des 6 champs canoniques (trim, title-case, code pays,
//     code postal 5 chiffres, mobile +33)
//  3. filtre dur sur le mobile (longueur +33XXXXXXXXX exacte)
//  4. projection finale: tout champ vide, "nan" ou "None" est null et une
//     ligne avec un champ null est rejetée entièrement
func (n *Normalizer) Normalize(records []domain.RawClientRecord) ([]domain.CleanedContact, NormalizeStats) {
	stats := NormalizeStats{Input: len(records)}

	// Déduplication par valeur brute de l'email, ordre d'insertion conservé
	seen := make(map[string]struct{}, len(records))
	contacts := make([]domain.CleanedContact, 0, len(records))

	for _, rec := range records {
		if rec.Email == nil {
			stats.MissingEmail++
			continue
		}
		if _, dup := seen[*rec.Email]; dup {
			stats.DuplicateEmail++
			continue
		}
		seen[*rec.Email] = struct{}{}

		contact, ok := n.derive(rec, &stats)
		if !ok {
			continue
		}
		contacts = append(contacts, contact)
	}

	stats.Output = len(contacts)
	return contacts, stats
}

// NormalizeTable lie un batch tabulaire brut (ordre de colonnes arbitraire)
// puis le normalise. Une colonne requise absente est une violation de contrat
// du collaborateur amont: c'est la seule erreur fatale du composant
func (n *Normalizer) NormalizeTable(t *shareddomain.Table) ([]domain.CleanedContact, NormalizeStats, error) {
	records, err := BindClientRecords(t)
	if err != nil {
		return nil, NormalizeStats{}, err
	}
	contacts, stats := n.Normalize(records)
	return contacts, stats, nil
}

// BindClientRecords projette un batch tabulaire sur les champs clients.
// Les colonnes excédentaires sont ignorées (l'entrepôt fait SELECT *)
func BindClientRecords(t *shareddomain.Table) ([]domain.RawClientRecord, error) {
	email, err := t.Column(domain.ColEmail)
	if err != nil {
		return nil, err
	}
	first, err := t.Column(domain.ColFirstName)
	if err != nil {
		return nil, err
	}
	last, err := t.Column(domain.ColLastName)
	if err != nil {
		return nil, err
	}
	country, err := t.Column(domain.ColCountry)
	if err != nil {
		return nil, err
	}
	postal, err := t.Column(domain.ColPostalCode)
	if err != nil {
		return nil, err
	}
	mobile, err := t.Column(domain.ColMobile)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RawClientRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		records = append(records, domain.RawClientRecord{
			Email:       t.Cell(i, email),
			FirstName:   t.Cell(i, first),
			LastName:    t.Cell(i, last),
			CountryName: t.Cell(i, country),
			PostalCode:  t.Cell(i, postal),
			MobileRaw:   t.Cell(i, mobile),
		})
	}
	return records, nil
}

// derive construit le contact canonique d'une ligne, ou rejette la ligne
func (n *Normalizer) derive(rec domain.RawClientRecord, stats *NormalizeStats) (domain.CleanedContact, bool) {
	// Filtre dur sur le mobile: +33 suivi des 9 derniers chiffres, longueur
	// exacte requise sinon la ligne entière est rejetée
	mobile := n.deriveMobile(rec.MobileRaw)
	if len(mobile) != 12 {
		stats.InvalidMobile++
		return domain.CleanedContact{}, false
	}

	contact := domain.CleanedContact{
		Email:       strings.TrimSpace(deref(rec.Email)),
		FirstName:   titleCase(deref(rec.FirstName)),
		LastName:    titleCase(deref(rec.LastName)),
		CountryCode: deriveCountryCode(deref(rec.CountryName)),
		Zip:         n.deriveZip(deref(rec.PostalCode)),
		Mobile:      mobile,
	}

	// Projection finale: re-trim, normalisation des vides, rejet tout-ou-rien.
	// Un code postal malformé ne rejette pas la ligne à la dérivation mais la
	// condamne ici (champ Zip vide)
	for _, f := range contact.Fields() {
		f = strings.TrimSpace(f)
		if f == "" || f == "nan" || f == "None" {
			stats.IncompleteField++
			return domain.CleanedContact{}, false
		}
	}
	return contact, true
}

// deriveMobile garde les chiffres du numéro brut, prend les 9 derniers et
// préfixe +33
func (n *Normalizer) deriveMobile(raw *string) string {
	digits := n.nonDigit.ReplaceAllString(deref(raw), "")
	if len(digits) > 9 {
		digits = digits[len(digits)-9:]
	}
	return "+33" + digits
}

// deriveZip retire espaces et points, tronque à 5 caractères; un résultat qui
// n'est pas exactement 5 chiffres ASCII est indéfini (champ vide)
func (n *Normalizer) deriveZip(raw string) string {
	zip := strings.TrimSpace(n.zipNoise.ReplaceAllString(raw, ""))
	if len(zip) > 5 {
		zip = zip[:5]
	}
	if !n.fiveDigits.MatchString(zip) {
		return ""
	}
	return zip
}

// deriveCountryCode prend les 2 premiers caractères du libellé pays en
// majuscules. Aucune validation de locale: entrée fantaisiste, code
// fantaisiste
func deriveCountryCode(label string) string {
	runes := []rune(strings.TrimSpace(label))
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// titleCase met en capitale la première lettre de chaque mot séparé par des
// espaces, le reste en minuscules
func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
