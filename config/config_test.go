package config

import "testing"

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.CatalogSource != CatalogSourceFixtures {
		t.Errorf("CatalogSource = %q, want %q", cfg.CatalogSource, CatalogSourceFixtures)
	}
	if cfg.PlayerTickMS != 16 {
		t.Errorf("PlayerTickMS = %d, want 16", cfg.PlayerTickMS)
	}
	if cfg.PlayerRateMode != RateModeFixed {
		t.Errorf("PlayerRateMode = %q, want %q", cfg.PlayerRateMode, RateModeFixed)
	}
	if cfg.TopChartsLimit != 5 {
		t.Errorf("TopChartsLimit = %d, want 5", cfg.TopChartsLimit)
	}
	if cfg.RedisEnabled || cfg.MinioEnabled {
		t.Error("redis and minio should be disabled by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("CATALOG_SOURCE", "MySQL")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PLAYER_RATE_MODE", "duration")
	t.Setenv("PLAYER_CMD_RATE", "12.5")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9999" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.CatalogSource != CatalogSourceMySQL {
		t.Errorf("CatalogSource = %q, want mysql", cfg.CatalogSource)
	}
	if !cfg.RedisEnabled || cfg.RedisDB != 3 {
		t.Errorf("redis config = %v/%d", cfg.RedisEnabled, cfg.RedisDB)
	}
	if cfg.PlayerRateMode != RateModeDuration {
		t.Errorf("PlayerRateMode = %q", cfg.PlayerRateMode)
	}
	if cfg.PlayerCmdRate != 12.5 {
		t.Errorf("PlayerCmdRate = %v", cfg.PlayerCmdRate)
	}
}

func TestFromEnvInvalidValuesFallBack(t *testing.T) {
	t.Setenv("CATALOG_SOURCE", "postgres")
	t.Setenv("PLAYER_TICK_MS", "-4")
	t.Setenv("TOP_CHARTS_LIMIT", "abc")
	t.Setenv("PLAYER_RATE_MODE", "bogus")

	cfg := FromEnv()
	if cfg.CatalogSource != CatalogSourceFixtures {
		t.Errorf("CatalogSource = %q, want fixtures", cfg.CatalogSource)
	}
	if cfg.PlayerTickMS != 16 {
		t.Errorf("PlayerTickMS = %d, want 16", cfg.PlayerTickMS)
	}
	if cfg.TopChartsLimit != 5 {
		t.Errorf("TopChartsLimit = %d, want 5", cfg.TopChartsLimit)
	}
	if cfg.PlayerRateMode != RateModeFixed {
		t.Errorf("PlayerRateMode = %q, want fixed", cfg.PlayerRateMode)
	}
}
