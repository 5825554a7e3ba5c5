// Package catalog implements the storefront listing pipeline: filtering a beat
// collection by genre, key and tempo, then ranking it by price or popularity.
// Every function here is pure: inputs are never mutated and the result is a
// fresh slice.
package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"beatwave/model"
)

// AllOption is the selector value the filter bar uses for "no filter".
const AllOption = "All"

// TempoWindow is the half-width of the BPM window around a tempo target.
const TempoWindow = 10

// Tempo slider bounds; targets outside are clamped.
const (
	MinTempo = 50
	MaxTempo = 300
)

// Ranking selects the single comparator applied after filtering. Price sorts
// and best-first share one field, so they cannot both be active.
type Ranking int

const (
	RankNone Ranking = iota
	RankPriceAsc
	RankPriceDesc
	RankBestFirst
)

func (r Ranking) String() string {
	switch r {
	case RankPriceAsc:
		return "price_asc"
	case RankPriceDesc:
		return "price_desc"
	case RankBestFirst:
		return "best"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Ranking) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Ranking) UnmarshalText(b []byte) error {
	*r = ParseRanking(string(b))
	return nil
}

// ParseRanking maps a sort parameter to a Ranking. Unknown values are
// treated as RankNone.
func ParseRanking(s string) Ranking {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price_asc", "price-asc", "asc":
		return RankPriceAsc
	case "price_desc", "price-desc", "desc":
		return RankPriceDesc
	case "best", "best_first", "best-first":
		return RankBestFirst
	default:
		return RankNone
	}
}

// Query is the filter/sort configuration owned by a filter bar.
type Query struct {
	Genre   string  `json:"genre,omitempty"`
	Key     string  `json:"key,omitempty"`
	Tempo   *int    `json:"bpm,omitempty"`
	Ranking Ranking `json:"sort"`
}

// WithTempo returns a copy of q with the tempo target set (clamped to the
// slider range).
func (q Query) WithTempo(bpm int) Query {
	t := ClampTempo(bpm)
	q.Tempo = &t
	return q
}

// CyclePriceSort advances the price sort none -> desc -> asc -> none.
// Selecting a price sort clears best-first.
func (q *Query) CyclePriceSort() {
	switch q.Ranking {
	case RankPriceDesc:
		q.Ranking = RankPriceAsc
	case RankPriceAsc:
		q.Ranking = RankNone
	default:
		q.Ranking = RankPriceDesc
	}
}

// ToggleBestFirst switches best-first ranking on or off. Turning it on clears
// any price sort.
func (q *Query) ToggleBestFirst() {
	if q.Ranking == RankBestFirst {
		q.Ranking = RankNone
		return
	}
	q.Ranking = RankBestFirst
}

// Reset clears every filter and the ranking.
func (q *Query) Reset() {
	*q = Query{}
}

// IsZero reports whether no filter and no ranking is active.
func (q Query) IsZero() bool {
	return !selectorSet(q.Genre) && !selectorSet(q.Key) && q.Tempo == nil && q.Ranking == RankNone
}

func (q Query) String() string {
	tempo := AllOption
	if q.Tempo != nil {
		tempo = strconv.Itoa(*q.Tempo)
	}
	return fmt.Sprintf("genre=%s key=%s bpm=%s sort=%s", orAll(q.Genre), orAll(q.Key), tempo, q.Ranking)
}

// ParseQuery reads genre, key, bpm and sort from URL values. A bpm that does
// not parse is ignored.
func ParseQuery(v url.Values) Query {
	q := Query{
		Genre:   strings.TrimSpace(v.Get("genre")),
		Key:     strings.TrimSpace(v.Get("key")),
		Ranking: ParseRanking(v.Get("sort")),
	}
	if raw := strings.TrimSpace(v.Get("bpm")); raw != "" && !strings.EqualFold(raw, AllOption) {
		if bpm, err := strconv.Atoi(raw); err == nil {
			q = q.WithTempo(bpm)
		}
	}
	return q
}

// ClampTempo bounds a tempo target to [MinTempo, MaxTempo].
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

func selectorSet(s string) bool {
	return s != "" && s != AllOption
}

func orAll(s string) string {
	if !selectorSet(s) {
		return AllOption
	}
	return s
}

// Matches reports whether b passes every active filter in q.
func (q Query) Matches(b model.Beat) bool {
	if selectorSet(q.Genre) && !b.Tags.Contains(q.Genre) {
		return false
	}
	if selectorSet(q.Key) && !strings.EqualFold(b.Key, q.Key) {
		return false
	}
	if q.Tempo != nil {
		t := *q.Tempo
		if b.BPM < t-TempoWindow || b.BPM > t+TempoWindow {
			return false
		}
	}
	return true
}

// BestScore is the popularity score used by best-first ranking.
func BestScore(b model.Beat) float64 {
	return float64(b.Likes) + float64(b.Plays)/100
}

// Apply filters beats by q and ranks the survivors. The input slice is left
// untouched; ties keep their catalog order.
func Apply(beats []model.Beat, q Query) []model.Beat {
	out := make([]model.Beat, 0, len(beats))
	for _, b := range beats {
		if q.Matches(b) {
			out = append(out, b)
		}
	}

	switch q.Ranking {
	case RankBestFirst:
		sort.SliceStable(out, func(i, j int) bool {
			return BestScore(out[i]) > BestScore(out[j])
		})
	case RankPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case RankPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	}
	return out
}
