package db

import (
	"strings"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormlogger "gorm.io/gorm/logger"

	"beatwave/config"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBUser:     "beat",
		DBPassword: "p@ss:word",
		DBHost:     "db.local",
		DBPort:     "3307",
		DBName:     "beatwave",
	}
	dsn := DSN(cfg)
	if !strings.HasPrefix(dsn, "beat:p@ss:word@tcp(db.local:3307)/beatwave?") {
		t.Fatalf("dsn = %s", dsn)
	}

	parsed, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN: %v", err)
	}
	if parsed.Passwd != cfg.DBPassword || parsed.Addr != "db.local:3307" || !parsed.ParseTime {
		t.Fatalf("parsed = %+v", parsed)
	}
	if parsed.Collation != "utf8mb4_unicode_ci" {
		t.Fatalf("collation = %q", parsed.Collation)
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"debug": gormlogger.Info,
		"info":  gormlogger.Warn,
		"":      gormlogger.Warn,
		"error": gormlogger.Error,
	}
	for in, want := range tests {
		if got := gormLogLevel(in); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAutoMigrateWithoutConnection(t *testing.T) {
	GormDB = nil
	if err := AutoMigrate(); err == nil {
		t.Fatal("expected an error without a connection")
	}
	if err := CloseGormDB(); err != nil {
		t.Fatalf("CloseGormDB on nil = %v", err)
	}
}
