package main

import (
	"database/sql"
	"log"
	"os"
	"strings"

	"lane-strategy-service/internal/config"
	"lane-strategy-service/internal/platform/db"
)

// dbtool initializes the strategy cache schema in Postgres (DATABASE_URL) or,
// when DATABASE_URL is unset, in the SQLite file at DB_PATH.
func main() {
	config.Load()

	var (
		conn *sql.DB
		err  error
	)

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) != "" {
		conn, err = db.Open(databaseURL)
	} else {
		conn, err = db.OpenSQLite(config.Get("DB_PATH", "data/app.db"))
	}
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing database schema...")
	if err := db.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
