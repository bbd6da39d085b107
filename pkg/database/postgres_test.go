package database

import (
	"testing"

	"event-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestConnStringEscapesCredentials(t *testing.T) {
	connStr := ConnString(utils.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5433",
		Name:     "events",
		User:     "booker",
		Password: "p@ss w/rd",
	})

	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("ParseConfig(%q): %v", connStr, err)
	}

	conn := cfg.ConnConfig
	if conn.Host != "db.internal" || conn.Port != 5433 || conn.Database != "events" {
		t.Fatalf("parsed %s:%d/%s", conn.Host, conn.Port, conn.Database)
	}
	if conn.User != "booker" || conn.Password != "p@ss w/rd" {
		t.Fatalf("credentials = %q / %q", conn.User, conn.Password)
	}
}
