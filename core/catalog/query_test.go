package catalog

import (
	"net/url"
	"reflect"
	"testing"

	"beatwave/model"
)

func testBeats() []model.Beat {
	return []model.Beat{
		{ID: "1", Title: "Neon Nights", BPM: 140, Key: "C Min", Price: 29.99, Tags: model.StringList{"Trap", "Dark"}, Plays: 12500, Likes: 450, Purchases: 85},
		{ID: "2", Title: "Glitch Protocol", BPM: 128, Key: "F# Maj", Price: 34.99, Tags: model.StringList{"Cyberpunk", "Electronic"}, Plays: 8900, Likes: 320, Purchases: 42},
		{ID: "3", Title: "Midnight Rain", BPM: 85, Key: "A Min", Price: 19.99, Tags: model.StringList{"Lo-Fi", "Chill"}, Plays: 24000, Likes: 1200, Purchases: 150},
		{ID: "4", Title: "Drill Sergeant", BPM: 142, Key: "G Min", Price: 49.99, Tags: model.StringList{"Drill", "Hard"}, Plays: 15600, Likes: 560, Purchases: 90},
		{ID: "5", Title: "Synthetic Soul", BPM: 105, Key: "E Maj", Price: 24.99, Tags: model.StringList{"Synthwave", "Pop"}, Plays: 5400, Likes: 210, Purchases: 12},
		{ID: "6", Title: "Concrete Jungle", BPM: 95, Key: "D Min", Price: 29.99, Tags: model.StringList{"Hip Hop", "Old School"}, Plays: 7800, Likes: 340, Purchases: 25},
		{ID: "7", Title: "Future Bass X", BPM: 150, Key: "F Min", Price: 39.99, Tags: model.StringList{"Future Bass", "EDM", "Trap"}, Plays: 9200, Likes: 410, Purchases: 30},
	}
}

func ids(beats []model.Beat) []string {
	out := make([]string, len(beats))
	for i, b := range beats {
		out[i] = b.ID
	}
	return out
}

func TestApplyZeroQueryIsIdentity(t *testing.T) {
	beats := testBeats()
	got := Apply(beats, Query{})
	if !reflect.DeepEqual(got, beats) {
		t.Fatalf("expected identity, got %v", ids(got))
	}

	got[0].Title = "mutated"
	if beats[0].Title == "mutated" {
		t.Fatal("Apply must return a fresh copy")
	}
}

func TestApplyAllSelectorIsUnset(t *testing.T) {
	beats := testBeats()
	got := Apply(beats, Query{Genre: AllOption, Key: AllOption})
	if len(got) != len(beats) {
		t.Fatalf("expected %d beats, got %d", len(beats), len(got))
	}
}

func TestApplyEmptyInput(t *testing.T) {
	if got := Apply(nil, Query{Genre: "Trap", Ranking: RankBestFirst}); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", ids(got))
	}
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{"genre", Query{Genre: "Trap"}, []string{"1", "7"}},
		{"genre is case-sensitive", Query{Genre: "trap"}, []string{}},
		{"key is case-insensitive", Query{Key: "c min"}, []string{"1"}},
		{"tempo window inclusive", Query{}.WithTempo(130), []string{"1", "2"}},
		// [122,142] admits 140, 128 and 142, in catalog order
		{"tempo upper edge", Query{}.WithTempo(132), []string{"1", "2", "4"}},
		{"genre and tempo", Query{Genre: "Trap"}.WithTempo(145), []string{"1", "7"}},
		{"no matches", Query{Genre: "R&B"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(testBeats(), tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply(%s) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestApplyTempoPropertyExcludesOutOfWindow(t *testing.T) {
	beats := testBeats()
	for target := MinTempo; target <= 160; target += 7 {
		q := Query{}.WithTempo(target)
		got := Apply(beats, q)
		in := make(map[string]bool, len(got))
		for _, b := range got {
			if b.BPM < target-TempoWindow || b.BPM > target+TempoWindow {
				t.Errorf("target %d: beat %s with bpm %d leaked", target, b.ID, b.BPM)
			}
			in[b.ID] = true
		}
		for _, b := range beats {
			inside := b.BPM >= target-TempoWindow && b.BPM <= target+TempoWindow
			if inside != in[b.ID] {
				t.Errorf("target %d: beat %s membership = %v, want %v", target, b.ID, in[b.ID], inside)
			}
		}
	}
}

func TestApplyRanking(t *testing.T) {
	tests := []struct {
		name    string
		ranking Ranking
		want    []string
	}{
		// scores: 1=575 2=409 3=1440 4=716 5=264 6=418 7=502
		{"best first", RankBestFirst, []string{"3", "4", "1", "7", "6", "2", "5"}},
		// 1 and 6 share 29.99 and keep catalog order
		{"price ascending", RankPriceAsc, []string{"3", "5", "1", "6", "2", "7", "4"}},
		{"price descending", RankPriceDesc, []string{"4", "7", "2", "1", "6", "5", "3"}},
		{"none", RankNone, []string{"1", "2", "3", "4", "5", "6", "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(testBeats(), Query{Ranking: tt.ranking}))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBestFirstIsStable(t *testing.T) {
	beats := []model.Beat{
		{ID: "a", Likes: 100, Plays: 0},
		{ID: "b", Likes: 99, Plays: 100},
		{ID: "c", Likes: 50, Plays: 5000},
		{ID: "d", Likes: 200},
	}
	got := ids(Apply(beats, Query{Ranking: RankBestFirst}))
	want := []string{"d", "a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestApplyNeverInventsOrDuplicates(t *testing.T) {
	beats := testBeats()
	queries := []Query{
		{Genre: "Trap", Ranking: RankPriceDesc},
		{Key: "F Min", Ranking: RankBestFirst},
		Query{Ranking: RankPriceAsc}.WithTempo(100),
	}
	known := make(map[string]bool)
	for _, b := range beats {
		known[b.ID] = true
	}
	for _, q := range queries {
		seen := make(map[string]bool)
		for _, b := range Apply(beats, q) {
			if !known[b.ID] {
				t.Errorf("%s: invented beat %s", q, b.ID)
			}
			if seen[b.ID] {
				t.Errorf("%s: duplicate beat %s", q, b.ID)
			}
			seen[b.ID] = true
		}
	}
}

func TestApplyEndToEndScenario(t *testing.T) {
	beats := []model.Beat{
		{ID: "1", BPM: 140, Price: 29.99},
		{ID: "2", BPM: 128, Price: 34.99},
		{ID: "3", BPM: 85, Price: 19.99},
	}
	tempo := 135
	got := Apply(beats, Query{Tempo: &tempo, Ranking: RankPriceAsc})
	if len(got) != 2 {
		t.Fatalf("expected both 140 and 128 inside [125,145], got %v", ids(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Fatalf("expected price ascending [1 2], got %v", ids(got))
	}
}

func TestQueryRankingHelpers(t *testing.T) {
	var q Query
	q.CyclePriceSort()
	if q.Ranking != RankPriceDesc {
		t.Fatalf("first cycle = %v, want price_desc", q.Ranking)
	}
	q.CyclePriceSort()
	if q.Ranking != RankPriceAsc {
		t.Fatalf("second cycle = %v, want price_asc", q.Ranking)
	}
	q.ToggleBestFirst()
	if q.Ranking != RankBestFirst {
		t.Fatalf("best toggle = %v, want best", q.Ranking)
	}
	q.CyclePriceSort()
	if q.Ranking != RankPriceDesc {
		t.Fatalf("price sort after best = %v, want price_desc", q.Ranking)
	}
	q.CyclePriceSort()
	q.CyclePriceSort()
	if q.Ranking != RankNone {
		t.Fatalf("third cycle = %v, want none", q.Ranking)
	}
	q.ToggleBestFirst()
	q.ToggleBestFirst()
	if q.Ranking != RankNone {
		t.Fatalf("double toggle = %v, want none", q.Ranking)
	}

	q = Query{Genre: "Trap", Key: "C Min", Ranking: RankBestFirst}.WithTempo(90)
	q.Reset()
	if !q.IsZero() {
		t.Fatalf("Reset left %s", q)
	}
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{
		"genre": {"Trap"},
		"key":   {"C Min"},
		"bpm":   {"400"},
		"sort":  {"best"},
	})
	if q.Genre != "Trap" || q.Key != "C Min" || q.Ranking != RankBestFirst {
		t.Fatalf("unexpected query %s", q)
	}
	if q.Tempo == nil || *q.Tempo != MaxTempo {
		t.Fatalf("bpm should clamp to %d, got %v", MaxTempo, q.Tempo)
	}

	q = ParseQuery(url.Values{"bpm": {"fast"}, "sort": {"random"}})
	if q.Tempo != nil || q.Ranking != RankNone {
		t.Fatalf("invalid params should be ignored, got %s", q)
	}
}

func TestRankingTextRoundTrip(t *testing.T) {
	for _, r := range []Ranking{RankNone, RankPriceAsc, RankPriceDesc, RankBestFirst} {
		text, _ := r.MarshalText()
		var back Ranking
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != r {
			t.Errorf("%v -> %s -> %v", r, text, back)
		}
	}
}
