package catalog

import (
	"reflect"
	"testing"

	"beatwave/model"
)

func TestTopCharts(t *testing.T) {
	beats := testBeats()
	got := TopCharts(beats, DefaultChartSize)
	if len(got) != DefaultChartSize {
		t.Fatalf("expected %d entries, got %d", DefaultChartSize, len(got))
	}
	// chart scores: 3=15900 4=9820 1=8000 7=5720 2=5510 6=4830 5=3240
	want := []string{"3", "4", "1", "7", "2"}
	if !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
	for i := 1; i < len(got); i++ {
		if ChartScore(got[i-1]) < ChartScore(got[i]) {
			t.Errorf("entry %d out of order", i)
		}
	}
	if beats[0].ID != "1" {
		t.Fatal("TopCharts must not reorder its input")
	}
}

func TestTopChartsShortAndEmpty(t *testing.T) {
	beats := testBeats()[:2]
	if got := TopCharts(beats, 5); len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got := TopCharts(beats, 0); len(got) != 0 {
		t.Fatalf("limit 0 should yield nothing, got %v", ids(got))
	}
	if got := TopCharts(nil, 5); len(got) != 0 {
		t.Fatalf("nil input should yield nothing, got %v", ids(got))
	}
}

func TestTopChartsTiesKeepOrder(t *testing.T) {
	beats := []model.Beat{
		{ID: "x", Purchases: 1},
		{ID: "y", Likes: 5},
		{ID: "z", Plays: 20},
	}
	got := ids(TopCharts(beats, 3))
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCollectionFilters(t *testing.T) {
	playlists := []model.Playlist{
		{ID: "p1", Tags: model.StringList{PlaylistBest}},
		{ID: "p2", Tags: model.StringList{PlaylistExclusive}},
		{ID: "p3", Tags: model.StringList{PlaylistBest}},
	}
	if got := FilterPlaylists(playlists, PlaylistBest); len(got) != 2 || got[1].ID != "p3" {
		t.Errorf("Best playlists = %v", got)
	}
	if got := FilterPlaylists(playlists, AllOption); len(got) != 3 {
		t.Errorf("All playlists = %d", len(got))
	}

	kits := []model.SoundKit{{ID: "k1", Type: model.KitDrum}, {ID: "k2", Type: model.KitPresets}}
	if got := FilterKits(kits, string(model.KitPresets)); len(got) != 1 || got[0].ID != "k2" {
		t.Errorf("Presets kits = %v", got)
	}
	if got := FilterKits(kits, ""); len(got) != 2 {
		t.Errorf("unfiltered kits = %d", len(got))
	}

	fav := Favorites(testBeats(), []string{"6", "2", "missing"})
	if !reflect.DeepEqual(ids(fav), []string{"2", "6"}) {
		t.Errorf("favorites = %v", ids(fav))
	}
}
