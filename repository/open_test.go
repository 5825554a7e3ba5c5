package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"beatwave/config"
)

func TestOpenCatalogFixtures(t *testing.T) {
	repo, err := OpenCatalog(&config.Config{CatalogSource: config.CatalogSourceFixtures})
	if err != nil {
		t.Fatal(err)
	}
	beats, _ := repo.ListBeats(context.Background())
	if len(beats) != 7 {
		t.Fatalf("fixtures = %d beats", len(beats))
	}
}

func TestOpenCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	repo, err := OpenCatalog(&config.Config{CatalogSource: config.CatalogSourceFile, CatalogFile: path})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := repo.(*FileCatalog); !ok {
		t.Fatalf("file source returned %T", repo)
	}

	if _, err := OpenCatalog(&config.Config{CatalogSource: config.CatalogSourceFile, CatalogFile: path + ".missing"}); err == nil {
		t.Fatal("missing catalog file should fail")
	}
}
