package repository

import (
	"context"
	"errors"
	"testing"

	"beatwave/model"
)

func TestFixtureCatalog(t *testing.T) {
	c := FixtureCatalog()
	if len(c.Beats) != 7 || len(c.Playlists) != 4 || len(c.Kits) != 4 || len(c.Services) != 2 {
		t.Fatalf("fixture sizes: %d beats %d playlists %d kits %d services",
			len(c.Beats), len(c.Playlists), len(c.Kits), len(c.Services))
	}
	for i, b := range c.Beats {
		if b.Position != i {
			t.Errorf("beat %s position = %d", b.ID, b.Position)
		}
		if len(b.Waveform) != WaveformBars {
			t.Errorf("beat %s has %d bars", b.ID, len(b.Waveform))
		}
		for _, h := range b.Waveform {
			if h < 0.2 || h >= 1.0 {
				t.Fatalf("beat %s bar %v out of range", b.ID, h)
			}
		}
	}
	if c.Kits[0].PreviewTrack.Title != "Cyber Drums Vol. 1 (Demo)" || c.Beats[0].Title != "Neon Nights" {
		t.Fatal("kit preview must be a retitled copy")
	}
}

func TestWaveformDeterministic(t *testing.T) {
	a, b := Waveform("1"), Waveform("1")
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same id must give the same waveform")
		}
	}
	if Waveform("2")[0] == a[0] && Waveform("2")[1] == a[1] {
		t.Fatal("different ids should differ")
	}
}

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCatalog(FixtureCatalog())

	beats, err := repo.ListBeats(ctx)
	if err != nil || len(beats) != 7 || beats[0].ID != "1" || beats[6].ID != "7" {
		t.Fatalf("ListBeats = %d beats, %v", len(beats), err)
	}
	beats[0].Title = "changed"
	again, _ := repo.ListBeats(ctx)
	if again[0].Title != "Neon Nights" {
		t.Fatal("ListBeats must return a copy")
	}

	b, err := repo.GetBeat(ctx, "4")
	if err != nil || b.Title != "Drill Sergeant" {
		t.Fatalf("GetBeat(4) = %+v, %v", b, err)
	}
	if _, err := repo.GetBeat(ctx, "99"); !errors.Is(err, ErrBeatNotFound) {
		t.Fatalf("GetBeat(99) error = %v", err)
	}

	playlists, _ := repo.ListPlaylists(ctx)
	p1 := playlists[0]
	if len(p1.Beats) != 3 || p1.Beats[0].ID != "1" || p1.Beats[1].ID != "3" || p1.Beats[2].ID != "5" {
		t.Fatalf("p1 beats = %+v", p1.Beats)
	}

	if err := repo.RecordPlay(ctx, "2"); err != nil {
		t.Fatal(err)
	}
	b, _ = repo.GetBeat(ctx, "2")
	if b.Plays != 8901 {
		t.Fatalf("plays = %d", b.Plays)
	}
	if beats[1].Plays != 8900 {
		t.Fatal("earlier snapshots must not change")
	}
	if err := repo.RecordPlay(ctx, "nope"); !errors.Is(err, ErrBeatNotFound) {
		t.Fatalf("RecordPlay(nope) = %v", err)
	}
}

type stubBeats struct{ beats []model.Beat }

func (s stubBeats) ListBeats(context.Context) ([]model.Beat, error) { return s.beats, nil }

func (s stubBeats) GetBeat(_ context.Context, id string) (*model.Beat, error) {
	return findBeat(s.beats, id)
}

func TestNewCatalogResolvesAgainstBeatSource(t *testing.T) {
	ctx := context.Background()
	extras := FixtureCatalog()
	repo := NewCatalog(stubBeats{beats: extras.Beats[:3]}, extras)

	playlists, err := repo.ListPlaylists(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// p1 = 1,3,5 but the source only knows 1..3
	if got := len(playlists[0].Beats); got != 2 {
		t.Fatalf("p1 resolved %d beats, want 2", got)
	}
	if err := repo.RecordPlay(ctx, "1"); err != nil {
		t.Fatalf("RecordPlay without a recorder should be a no-op, got %v", err)
	}
	kits, _ := repo.ListKits(ctx)
	services, _ := repo.ListServices(ctx)
	if len(kits) != 4 || len(services) != 2 {
		t.Fatalf("kits=%d services=%d", len(kits), len(services))
	}
}
