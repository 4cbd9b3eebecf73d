package main

import (
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/joho/godotenv"

	"agrireport/api"
	"agrireport/database"
	analyticsapp "agrireport/internal/analytics/application"
	analyticsinfra "agrireport/internal/analytics/infrastructure"
	cataloginfra "agrireport/internal/catalog/infrastructure"
	"agrireport/internal/config"
	contactsapp "agrireport/internal/contacts/application"
	contactsinfra "agrireport/internal/contacts/infrastructure"
	exportapp "agrireport/internal/export/application"
	sharedinfra "agrireport/internal/shared/infrastructure"
)

func main() {
	// Charge .env
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	// Connexion PostgreSQL
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "agriuser"),
		getEnv("DB_PASSWORD", "agripass"),
		getEnv("DB_NAME", "agridb"),
		getEnv("DB_SSLMODE", "disable"),
	)
	if err := database.Init(connStr); err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer database.Close()

	// Profils de rapport (les anciennes variantes de dashboards)
	profiles, err := config.Load(getEnv("PROFILES_PATH", "profiles.yaml"))
	if err != nil {
		log.Fatal("❌ Erreur chargement profils:", err)
	}

	// Infrastructure partagée
	cache := sharedinfra.NewShardedCache(16)

	// Repositories
	clientRepo := contactsinfra.NewClientQueryRepository(database.DB)
	productRepo := cataloginfra.NewProductQueryRepository(database.DB)
	reportRepo := analyticsinfra.NewReportQueryRepository(database.DB)

	// Services
	contactService := contactsapp.NewContactService(clientRepo)
	reportService := analyticsapp.NewReportService(reportRepo, cache)
	exportService := exportapp.NewExportService()
	defer exportService.Cleanup()

	// Routes (mux par défaut pour garder les endpoints pprof)
	handlers := api.NewHandlers(contactService, reportService, exportService, productRepo, profiles)
	handlers.Register(http.DefaultServeMux)

	addr := ":" + getEnv("PORT", "8080")
	log.Println("🚀 Serveur de reporting démarré sur", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
