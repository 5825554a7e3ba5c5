package repository

import (
	"hash/fnv"
	"math/rand"

	"beatwave/model"
)

// WaveformBars is the number of bars in a waveform preview.
const WaveformBars = 48

// Waveform returns deterministic bar heights in [0.2, 1.0) seeded by id.
func Waveform(id string) model.FloatList {
	h := fnv.New64a()
	h.Write([]byte(id))
	r := rand.New(rand.NewSource(int64(h.Sum64())))
	bars := make(model.FloatList, WaveformBars)
	for i := range bars {
		bars[i] = r.Float64()*0.8 + 0.2
	}
	return bars
}

func fixtureBeat(id, title, producer, seed string, bpm int, key string, price float64, tags []string, duration string, plays, likes, purchases int) model.Beat {
	return model.Beat{
		ID:        id,
		Title:     title,
		Producer:  producer,
		Cover:     "https://picsum.photos/seed/" + seed + "/200/200",
		BPM:       bpm,
		Key:       key,
		Price:     price,
		Tags:      tags,
		Duration:  duration,
		Waveform:  Waveform(id),
		Plays:     plays,
		Likes:     likes,
		Purchases: purchases,
	}
}

// FixtureBeats returns the seven demo beats in catalog order.
func FixtureBeats() []model.Beat {
	beats := []model.Beat{
		fixtureBeat("1", "Neon Nights", "CyberSound", "neon1", 140, "C Min", 29.99, []string{"Trap", "Dark"}, "2:45", 12500, 450, 85),
		fixtureBeat("2", "Glitch Protocol", "NullPointer", "glitch2", 128, "F# Maj", 34.99, []string{"Cyberpunk", "Electronic"}, "3:10", 8900, 320, 42),
		fixtureBeat("3", "Midnight Rain", "LoFi Dreamer", "rain3", 85, "A Min", 19.99, []string{"Lo-Fi", "Chill"}, "2:15", 24000, 1200, 150),
		fixtureBeat("4", "Drill Sergeant", "HeavyHitter", "drill4", 142, "G Min", 49.99, []string{"Drill", "Hard"}, "2:55", 15600, 560, 90),
		fixtureBeat("5", "Synthetic Soul", "RetroWave", "synth5", 105, "E Maj", 24.99, []string{"Synthwave", "Pop"}, "3:30", 5400, 210, 12),
		fixtureBeat("6", "Concrete Jungle", "CityBeats", "city6", 95, "D Min", 29.99, []string{"Hip Hop", "Old School"}, "3:05", 7800, 340, 25),
		fixtureBeat("7", "Future Bass X", "BassDrop", "bass7", 150, "F Min", 39.99, []string{"Future Bass", "EDM"}, "3:15", 9200, 410, 30),
	}
	for i := range beats {
		beats[i].Position = i
	}
	return beats
}

// Genres and Keys are the selector options offered by the storefront.
var (
	Genres = []string{"All", "Trap", "Drill", "Lo-Fi", "R&B", "Cyberpunk", "Synthwave"}
	Keys   = []string{
		"All",
		"C Maj", "C Min", "C# Maj", "C# Min",
		"D Maj", "D Min", "D# Maj", "D# Min",
		"E Maj", "E Min", "F Maj", "F Min",
		"F# Maj", "F# Min", "G Maj", "G Min",
		"G# Maj", "G# Min", "A Maj", "A Min",
		"A# Maj", "A# Min", "B Maj", "B Min",
	}
)

func retitled(b model.Beat, title string) model.Beat {
	b.Title = title
	return b
}

// FixtureCatalog returns the demo catalog: beats, playlists, kits and services.
func FixtureCatalog() Catalog {
	beats := FixtureBeats()
	return Catalog{
		Beats: beats,
		Playlists: []model.Playlist{
			{ID: "p1", Title: "RnB Beats", Author: "CyberSound", Cover: "https://picsum.photos/seed/rnb_playlist/300/300", BeatIDs: []string{"1", "3", "5"}, Tags: model.StringList{"Best"}},
			{ID: "p2", Title: "Hard Hitting Drill", Author: "HeavyHitter", Cover: "https://picsum.photos/seed/drill_playlist/300/300", BeatIDs: []string{"4", "6"}, Tags: model.StringList{"Exclusive"}},
			{ID: "p3", Title: "Late Night Lo-Fi", Author: "LoFi Dreamer", Cover: "https://picsum.photos/seed/lofi_playlist/300/300", BeatIDs: []string{"3", "6", "1"}, Tags: model.StringList{"Best"}},
			{ID: "p4", Title: "Exclusive Gems", Author: "NullPointer", Cover: "https://picsum.photos/seed/gems/300/300", BeatIDs: []string{"2", "7"}, Tags: model.StringList{"Exclusive"}},
		},
		Kits: []model.SoundKit{
			{ID: "k1", Title: "Cyber Drums Vol. 1", Producer: "CyberSound", Cover: "https://picsum.photos/seed/kit1/300/300", Price: 19.99,
				Description: "100+ Hard hitting drum samples for Trap and Cyberpunk.", PreviewTrack: retitled(beats[0], "Cyber Drums Vol. 1 (Demo)"), Type: model.KitDrum},
			{ID: "k2", Title: "Analog Textures", Producer: "NullPointer", Cover: "https://picsum.photos/seed/kit2/300/300", Price: 24.99,
				Description: "Organic textures and foley sounds for ambience.", PreviewTrack: retitled(beats[2], "Analog Textures (Preview)"), Type: model.KitPresets},
			{ID: "k3", Title: "Drill Loops 2024", Producer: "HeavyHitter", Cover: "https://picsum.photos/seed/kit3/300/300", Price: 29.99,
				Description: "Dark and heavy drill melodies ready to chop.", PreviewTrack: retitled(beats[3], "Drill Loops Demo"), Type: model.KitLoop},
			{ID: "k4", Title: "Synth One-Shots", Producer: "RetroWave", Cover: "https://picsum.photos/seed/kit4/300/300", Price: 14.99,
				Description: "Classic analog synth stabs and plucks.", PreviewTrack: retitled(beats[4], "Synth Showcase"), Type: model.KitOneShots},
		},
		Services: []model.Service{
			{ID: "s1", Title: "Mixing & Mastering", Provider: "AudioLab", Cover: "https://picsum.photos/seed/service1/300/300", PriceFrom: 99.99,
				Description: "Professional mixing to make your track radio ready.", ExampleTrack: retitled(beats[4], "Mixing Example (Before/After)")},
			{ID: "s2", Title: "Custom Beat Production", Provider: "CyberSound", Cover: "https://picsum.photos/seed/service2/300/300", PriceFrom: 299.99,
				Description: "I will create a custom exclusive beat just for you.", ExampleTrack: retitled(beats[1], "Custom Work Showcase")},
		},
	}
}

// FixtureRequests returns the pending producer verification requests.
func FixtureRequests() []model.VerificationRequest {
	return []model.VerificationRequest{
		{ID: "v1", ProducerName: "CyberSound", Email: "cyber@sound.com", SocialLink: "instagram.com/cybersound", Status: model.VerificationPending, Date: "2023-10-26"},
		{ID: "v2", ProducerName: "NewBeatMaker", Email: "maker@beats.com", SocialLink: "twitter.com/newbeat", Status: model.VerificationPending, Date: "2023-10-25"},
	}
}

// FixtureUsers returns the admin user list.
func FixtureUsers() []model.AdminUser {
	return []model.AdminUser{
		{ID: "u1", Name: "Metro Boomin", Email: "metro@boomin.com", Role: "producer", Status: "active", Joined: "2023-01-15", Earnings: "$124,000"},
		{ID: "u2", Name: "Lil Sky", Email: "sky@gmail.com", Role: "artist", Status: "active", Joined: "2023-03-10", Spent: "$450"},
		{ID: "u3", Name: "Drake Fan", Email: "drake@fan.com", Role: "artist", Status: "banned", Joined: "2023-05-22", Spent: "$0"},
		{ID: "u4", Name: "CyberSound", Email: "cyber@sound.com", Role: "producer", Status: "active", Joined: "2023-02-01", Earnings: "$5,200"},
		{ID: "u5", Name: "LoFi Girl", Email: "lofi@study.com", Role: "artist", Status: "active", Joined: "2023-06-12", Spent: "$1,200"},
	}
}

// FixtureChats returns the conversation list.
func FixtureChats() []model.Chat {
	return []model.Chat{
		{ID: 1, User: "CyberSound", Avatar: "https://picsum.photos/seed/producer_avatar/100/100", LastMessage: "Yo, just sent over the stems for Neon Nights.", Time: "2m ago", Unread: 2, Online: true, Role: "Producer"},
		{ID: 2, User: "Drake Fan 22", Avatar: "https://picsum.photos/seed/artist2/100/100", LastMessage: "Can you do a custom deal for 3 beats?", Time: "1h ago", Role: "Artist"},
		{ID: 3, User: "HeavyHitter", Avatar: "https://picsum.photos/seed/producer2/100/100", LastMessage: "Collab on the next pack?", Time: "1d ago", Online: true, Role: "Producer"},
	}
}

// FixtureMessages returns message threads keyed by chat id. Each thread ends
// with the chat's preview message.
func FixtureMessages() map[int][]model.ChatMessage {
	return map[int][]model.ChatMessage{
		1: {
			{ID: "m1", ChatID: 1, Sender: "them", Text: "Hey, I really dig your latest upload.", Time: "10:30 AM"},
			{ID: "m2", ChatID: 1, Sender: "me", Text: "Appreciate that! Which one specifically?", Time: "10:32 AM"},
			{ID: "m3", ChatID: 1, Sender: "them", Text: "Neon Nights. The bassline is crazy.", Time: "10:33 AM"},
			{ID: "m4", ChatID: 1, Sender: "them", Text: "Yo, just sent over the stems for Neon Nights.", Time: "10:35 AM"},
		},
		2: {{ID: "m5", ChatID: 2, Sender: "them", Text: "Can you do a custom deal for 3 beats?", Time: "09:12 AM"}},
		3: {{ID: "m6", ChatID: 3, Sender: "them", Text: "Collab on the next pack?", Time: "06:40 PM"}},
	}
}
