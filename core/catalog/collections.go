package catalog

import "beatwave/model"

// Playlist tabs
const (
	PlaylistBest      = "Best"
	PlaylistExclusive = "Exclusive"
)

// FilterPlaylists keeps playlists carrying tag. "All" or "" keeps everything.
func FilterPlaylists(playlists []model.Playlist, tag string) []model.Playlist {
	out := make([]model.Playlist, 0, len(playlists))
	for _, p := range playlists {
		if !selectorSet(tag) || p.Tags.Contains(tag) {
			out = append(out, p)
		}
	}
	return out
}

// FilterKits keeps sound kits of the given type. "All" or "" keeps everything.
func FilterKits(kits []model.SoundKit, kitType string) []model.SoundKit {
	out := make([]model.SoundKit, 0, len(kits))
	for _, k := range kits {
		if !selectorSet(kitType) || string(k.Type) == kitType {
			out = append(out, k)
		}
	}
	return out
}

// Favorites returns the beats whose ids appear in liked, in catalog order.
func Favorites(beats []model.Beat, liked []string) []model.Beat {
	set := make(map[string]struct{}, len(liked))
	for _, id := range liked {
		set[id] = struct{}{}
	}
	out := make([]model.Beat, 0, len(liked))
	for _, b := range beats {
		if _, ok := set[b.ID]; ok {
			out = append(out, b)
		}
	}
	return out
}
