package api

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	analyticsapp "agrireport/internal/analytics/application"
	analyticsdomain "agrireport/internal/analytics/domain"
	catalogdomain "agrireport/internal/catalog/domain"
	cataloginfra "agrireport/internal/catalog/infrastructure"
	"agrireport/internal/config"
	contactsapp "agrireport/internal/contacts/application"
	exportapp "agrireport/internal/export/application"
	exportdomain "agrireport/internal/export/domain"
)

// Handlers contient tous les handlers de l'API de reporting.
// Les anciennes variantes de tableaux de bord sont servies par la même
// implémentation, paramétrée par profil ou par overrides de requête
type Handlers struct {
	contactService *contactsapp.ContactService
	reportService  *analyticsapp.ReportService
	exportService  *exportapp.ExportService
	productRepo    *cataloginfra.ProductQueryRepository
	profiles       *config.Config
}

// NewHandlers crée une nouvelle instance des handlers
func NewHandlers(
	contactService *contactsapp.ContactService,
	reportService *analyticsapp.ReportService,
	exportService *exportapp.ExportService,
	productRepo *cataloginfra.ProductQueryRepository,
	profiles *config.Config,
) *Handlers {
	return &Handlers{
		contactService: contactService,
		reportService:  reportService,
		exportService:  exportService,
		productRepo:    productRepo,
		profiles:       profiles,
	}
}

// Register attache les routes sur le mux donné
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", h.Health)
	mux.HandleFunc("/api/contacts/export/csv", h.ExportContactsCSV)
	mux.HandleFunc("/api/reports/products", h.GetProductReport)
	mux.HandleFunc("/api/reports/families", h.GetFamilyReport)
	mux.HandleFunc("/api/reports/export/csv", h.ExportReportCSV)
	mux.HandleFunc("/api/reports/export/parquet", h.ExportReportParquet)
	mux.HandleFunc("/api/catalog/families", h.GetCatalogFamilies)
}

// Health handler pour GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ExportContactsCSV handler pour GET /api/contacts/export/csv
// Paramètre optionnel limit pour borner le nombre de lignes sources
func (h *Handlers) ExportContactsCSV(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		v, err := strconv.Atoi(limitStr)
		if err != nil || v < 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = v
	}

	contacts, stats, err := h.contactService.CleanedContacts(r.Context(), limit)
	if err != nil {
		log.Printf("Error cleaning contacts: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	log.Printf("Contacts export: %d in, %d out (%d sans email, %d doublons, %d mobiles invalides, %d incomplets)",
		stats.Input, stats.Output, stats.MissingEmail, stats.DuplicateEmail, stats.InvalidMobile, stats.IncompleteField)

	csvData, err := h.exportService.ContactsCSV(contacts)
	if err != nil {
		log.Printf("Error exporting contacts CSV: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=contacts.csv")
	w.Write(csvData)
}

// GetProductReport handler pour GET /api/reports/products
// Paramètres: profile OU days + overrides de seuils; split=true pour la
// partition par prix catalogue
func (h *Handlers) GetProductReport(w http.ResponseWriter, r *http.Request) {
	days, cfg, err := h.parseReportParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("split") == "true" {
		report, above, below, err := h.reportService.GetReportSplit(r.Context(), days, cfg)
		if err != nil {
			log.Printf("Error getting split report: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, map[string]interface{}{
			"days":           days,
			"premium":        above,
			"standard":       below,
			"cutoff":         cfg.PriceSplitCutoff,
			"reconciliation": report.Reconciliation,
			"warnings":       report.Warnings,
		})
		return
	}

	report, err := h.reportService.GetReport(r.Context(), days, cfg)
	if err != nil {
		log.Printf("Error getting product report: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]interface{}{
		"days":           days,
		"products":       report.Products,
		"reconciliation": report.Reconciliation,
		"warnings":       report.Warnings,
	})
}

// GetFamilyReport handler pour GET /api/reports/families
func (h *Handlers) GetFamilyReport(w http.ResponseWriter, r *http.Request) {
	days, cfg, err := h.parseReportParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reportService.GetReport(r.Context(), days, cfg)
	if err != nil {
		log.Printf("Error getting family report: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, map[string]interface{}{
		"days":           days,
		"families":       report.Families,
		"reconciliation": report.Reconciliation,
		"warnings":       report.Warnings,
	})
}

// ExportReportCSV handler pour GET /api/reports/export/csv
// Paramètre type: produits (défaut) ou familles
func (h *Handlers) ExportReportCSV(w http.ResponseWriter, r *http.Request) {
	days, cfg, err := h.parseReportParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exportType := exportdomain.ExportType(r.URL.Query().Get("type"))
	if exportType == "" {
		exportType = exportdomain.ExportTypeProducts
	}
	if err := exportdomain.ValidateJob(exportdomain.ExportFormatCSV, exportType); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reportService.GetReport(r.Context(), days, cfg)
	if err != nil {
		log.Printf("Error getting report for CSV export: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var csvData []byte
	var filename string
	switch exportType {
	case exportdomain.ExportTypeProducts:
		csvData, err = h.exportService.ProductsCSV(report.Products)
		filename = "report_products.csv"
	case exportdomain.ExportTypeFamilies:
		csvData, err = h.exportService.FamiliesCSV(report.Families)
		filename = "report_families.csv"
	case exportdomain.ExportTypeContacts:
		http.Error(w, "contacts are exported via /api/contacts/export/csv", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Printf("Error exporting report CSV: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Write(csvData)
}

// ExportReportParquet handler pour GET /api/reports/export/parquet
func (h *Handlers) ExportReportParquet(w http.ResponseWriter, r *http.Request) {
	days, cfg, err := h.parseReportParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.reportService.GetReport(r.Context(), days, cfg)
	if err != nil {
		log.Printf("Error getting report for Parquet export: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	parquetData, err := h.exportService.ProductsParquet(report.Products)
	if err != nil {
		log.Printf("Error exporting report Parquet: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=report_products.parquet")
	w.Write(parquetData)
}

// GetCatalogFamilies handler pour GET /api/catalog/families
// Retourne la famille résolue (escalade niveau 4 vers 1) de chaque produit.
// Le paramètre ?code=X restreint la réponse à un seul produit
func (h *Handlers) GetCatalogFamilies(w http.ResponseWriter, r *http.Request) {
	var products []catalogdomain.ProductFamilyInfo
	if code := r.URL.Query().Get("code"); code != "" {
		info, err := h.productRepo.FindByCode(r.Context(), code)
		if err == sql.ErrNoRows {
			http.Error(w, "Unknown product code", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Error looking up product %s: %v", code, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		products = []catalogdomain.ProductFamilyInfo{*info}
	} else {
		var err error
		products, err = h.productRepo.FindAll(r.Context())
		if err != nil {
			log.Printf("Error listing catalog: %v", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
	}

	type resolvedEntry struct {
		ProductCode string `json:"code_produit"`
		Family      string `json:"famille"`
		URL         string `json:"url_famille"`
		Resolved    bool   `json:"resolue"`
	}
	entries := make([]resolvedEntry, 0, len(products))
	for _, p := range products {
		fam, ok := p.Resolve()
		entries = append(entries, resolvedEntry{
			ProductCode: p.ProductCode,
			Family:      fam.Label,
			URL:         fam.URL,
			Resolved:    ok,
		})
	}
	h.writeJSON(w, map[string]interface{}{"families": entries})
}

// parseReportParams résout la période et les seuils d'une requête de rapport.
// Un profil nommé fournit la base; des paramètres individuels peuvent la
// surcharger. Toute valeur invalide est une erreur client
func (h *Handlers) parseReportParams(r *http.Request) (int, analyticsdomain.ReportConfig, error) {
	q := r.URL.Query()

	days := 365
	cfg := analyticsdomain.DefaultReportConfig()

	if name := q.Get("profile"); name != "" {
		profile, err := h.profiles.Profile(name)
		if err != nil {
			return 0, cfg, err
		}
		days = profile.Days
		cfg = profile.ReportConfig()
	}

	if daysStr := q.Get("days"); daysStr != "" {
		v, err := strconv.Atoi(daysStr)
		if err != nil || v < 1 {
			return 0, cfg, fmt.Errorf("invalid days parameter: %q", daysStr)
		}
		days = v
	}
	if s := q.Get("min_orders"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, cfg, fmt.Errorf("invalid min_orders parameter: %q", s)
		}
		cfg.MinOrders = v
	}
	if s := q.Get("min_basket"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, cfg, fmt.Errorf("invalid min_basket parameter: %q", s)
		}
		cfg.MinBasket = v
	}
	if s := q.Get("min_revenue"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, cfg, fmt.Errorf("invalid min_revenue parameter: %q", s)
		}
		cfg.MinRevenue = v
	}
	if s := q.Get("cutoff"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, cfg, fmt.Errorf("invalid cutoff parameter: %q", s)
		}
		cfg.PriceSplitCutoff = v
	}

	if err := cfg.Validate(); err != nil {
		return 0, cfg, err
	}
	return days, cfg, nil
}

func (h *Handlers) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}
