package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"beatwave/model"
)

// ErrBeatNotFound 曲目不存在
var ErrBeatNotFound = errors.New("beat not found")

// BeatRepository is the catalog source for beats. ListBeats returns beats in
// catalog (insertion) order.
type BeatRepository interface {
	ListBeats(ctx context.Context) ([]model.Beat, error)
	GetBeat(ctx context.Context, id string) (*model.Beat, error)
}

// PlayRecorder counts plays.
type PlayRecorder interface {
	RecordPlay(ctx context.Context, id string) error
}

// CatalogRepository extends BeatRepository with the storefront collections.
// Playlists come back with their Beats resolved.
type CatalogRepository interface {
	BeatRepository
	ListPlaylists(ctx context.Context) ([]model.Playlist, error)
	ListKits(ctx context.Context) ([]model.SoundKit, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	PlayRecorder
}

// Catalog is a complete catalog snapshot.
type Catalog struct {
	Beats     []model.Beat
	Playlists []model.Playlist
	Kits      []model.SoundKit
	Services  []model.Service
}

// memoryCatalog serves a Catalog snapshot that can be swapped atomically.
type memoryCatalog struct {
	mu      sync.RWMutex
	catalog Catalog
}

// NewMemoryCatalog creates an in-memory CatalogRepository over c.
func NewMemoryCatalog(c Catalog) CatalogRepository {
	m := &memoryCatalog{}
	m.replace(c)
	return m
}

func (m *memoryCatalog) replace(c Catalog) {
	c.Playlists = resolvePlaylists(c.Playlists, c.Beats)
	m.mu.Lock()
	m.catalog = c
	m.mu.Unlock()
}

func (m *memoryCatalog) snapshot() Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// ListBeats 返回全部曲目（副本）
func (m *memoryCatalog) ListBeats(ctx context.Context) ([]model.Beat, error) {
	return cloneBeats(m.snapshot().Beats), nil
}

// GetBeat 根据ID获取曲目
func (m *memoryCatalog) GetBeat(ctx context.Context, id string) (*model.Beat, error) {
	return findBeat(m.snapshot().Beats, id)
}

// RecordPlay 播放计数加一
func (m *memoryCatalog) RecordPlay(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	beats := cloneBeats(m.catalog.Beats)
	for i := range beats {
		if beats[i].ID == id {
			beats[i].Plays++
			m.catalog.Beats = beats
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBeatNotFound, id)
}

func (m *memoryCatalog) ListPlaylists(ctx context.Context) ([]model.Playlist, error) {
	src := m.snapshot().Playlists
	out := make([]model.Playlist, len(src))
	for i, p := range src {
		out[i] = p
		out[i].Beats = cloneBeats(p.Beats)
	}
	return out, nil
}

func (m *memoryCatalog) ListKits(ctx context.Context) ([]model.SoundKit, error) {
	return append([]model.SoundKit(nil), m.snapshot().Kits...), nil
}

func (m *memoryCatalog) ListServices(ctx context.Context) ([]model.Service, error) {
	return append([]model.Service(nil), m.snapshot().Services...), nil
}

// withBeats serves beats from a BeatRepository and the remaining collections
// from a static snapshot.
type withBeats struct {
	BeatRepository
	extras Catalog
}

// NewCatalog combines a beat source with static playlists, kits and services.
// Playlist beats are resolved against the beat source on every call.
func NewCatalog(beats BeatRepository, extras Catalog) CatalogRepository {
	return &withBeats{BeatRepository: beats, extras: extras}
}

func (w *withBeats) ListPlaylists(ctx context.Context) ([]model.Playlist, error) {
	beats, err := w.ListBeats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list beats for playlists: %w", err)
	}
	return resolvePlaylists(w.extras.Playlists, beats), nil
}

// RecordPlay delegates to the beat source when it counts plays.
func (w *withBeats) RecordPlay(ctx context.Context, id string) error {
	if rec, ok := w.BeatRepository.(PlayRecorder); ok {
		return rec.RecordPlay(ctx, id)
	}
	return nil
}

func (w *withBeats) ListKits(ctx context.Context) ([]model.SoundKit, error) {
	return append([]model.SoundKit(nil), w.extras.Kits...), nil
}

func (w *withBeats) ListServices(ctx context.Context) ([]model.Service, error) {
	return append([]model.Service(nil), w.extras.Services...), nil
}

// resolvePlaylists fills Playlist.Beats from BeatIDs; unknown ids are skipped.
// Playlists without BeatIDs keep whatever Beats they carry.
func resolvePlaylists(playlists []model.Playlist, beats []model.Beat) []model.Playlist {
	byID := make(map[string]model.Beat, len(beats))
	for _, b := range beats {
		byID[b.ID] = b
	}
	out := make([]model.Playlist, len(playlists))
	for i, p := range playlists {
		out[i] = p
		if len(p.BeatIDs) == 0 {
			continue
		}
		out[i].Beats = make([]model.Beat, 0, len(p.BeatIDs))
		for _, id := range p.BeatIDs {
			if b, ok := byID[id]; ok {
				out[i].Beats = append(out[i].Beats, b)
			}
		}
	}
	return out
}

func findBeat(beats []model.Beat, id string) (*model.Beat, error) {
	for _, b := range beats {
		if b.ID == id {
			beat := b
			return &beat, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrBeatNotFound, id)
}

func cloneBeats(beats []model.Beat) []model.Beat {
	return append([]model.Beat(nil), beats...)
}
