// Package database gère la connexion à l'entrepôt PostgreSQL et son schéma.
// La connexion est un singleton partagé par les repositories de lecture et le
// seeder
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB connexion partagée à l'entrepôt
var DB *sql.DB

// Init ouvre la connexion et configure le pool. Les rapports déclenchent des
// agrégations larges mais peu nombreuses: peu de connexions longues plutôt
// que beaucoup de courtes
func Init(connStr string) error {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("ouverture entrepôt: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping entrepôt: %w", err)
	}

	DB = db
	return nil
}

// Close ferme la connexion à l'entrepôt
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
