package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"beatwave/logger"
	"beatwave/model"
)

// catalogDoc is the on-disk TOML layout. Kits and services reference beats by
// id instead of embedding them.
type catalogDoc struct {
	Beats     []model.Beat     `toml:"beats"`
	Playlists []model.Playlist `toml:"playlists"`
	Kits      []kitDoc         `toml:"kits"`
	Services  []serviceDoc     `toml:"services"`
}

type kitDoc struct {
	ID           string  `toml:"id"`
	Title        string  `toml:"title"`
	Producer     string  `toml:"producer"`
	Cover        string  `toml:"cover"`
	Price        float64 `toml:"price"`
	Description  string  `toml:"description"`
	Type         string  `toml:"type"`
	Preview      string  `toml:"preview"`
	PreviewTitle string  `toml:"preview_title,omitempty"`
}

type serviceDoc struct {
	ID           string  `toml:"id"`
	Title        string  `toml:"title"`
	Provider     string  `toml:"provider"`
	Cover        string  `toml:"cover"`
	PriceFrom    float64 `toml:"price_from"`
	Description  string  `toml:"description"`
	Example      string  `toml:"example"`
	ExampleTitle string  `toml:"example_title,omitempty"`
}

// ParseCatalog decodes a TOML catalog. Beats without waveform data get a
// generated one; kit previews and service examples are resolved by beat id.
func ParseCatalog(data []byte) (Catalog, error) {
	var doc catalogDoc
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Beats))
	for i := range doc.Beats {
		b := &doc.Beats[i]
		if b.ID == "" {
			return Catalog{}, fmt.Errorf("parse catalog: beat #%d has no id", i+1)
		}
		if seen[b.ID] {
			return Catalog{}, fmt.Errorf("parse catalog: duplicate beat id %q", b.ID)
		}
		seen[b.ID] = true
		if len(b.Waveform) == 0 {
			b.Waveform = Waveform(b.ID)
		}
		b.Position = i
	}

	c := Catalog{Beats: doc.Beats, Playlists: doc.Playlists}
	for _, k := range doc.Kits {
		preview, err := findBeat(doc.Beats, k.Preview)
		if err != nil {
			return Catalog{}, fmt.Errorf("parse catalog: kit %s preview: %w", k.ID, err)
		}
		if k.PreviewTitle != "" {
			preview.Title = k.PreviewTitle
		}
		c.Kits = append(c.Kits, model.SoundKit{
			ID: k.ID, Title: k.Title, Producer: k.Producer, Cover: k.Cover, Price: k.Price,
			Description: k.Description, PreviewTrack: *preview, Type: model.SoundKitType(k.Type),
		})
	}
	for _, s := range doc.Services {
		example, err := findBeat(doc.Beats, s.Example)
		if err != nil {
			return Catalog{}, fmt.Errorf("parse catalog: service %s example: %w", s.ID, err)
		}
		if s.ExampleTitle != "" {
			example.Title = s.ExampleTitle
		}
		c.Services = append(c.Services, model.Service{
			ID: s.ID, Title: s.Title, Provider: s.Provider, Cover: s.Cover, PriceFrom: s.PriceFrom,
			Description: s.Description, ExampleTrack: *example,
		})
	}
	return c, nil
}

// MarshalCatalog encodes c in the layout ParseCatalog reads. Playlists must
// carry BeatIDs.
func MarshalCatalog(c Catalog) ([]byte, error) {
	doc := catalogDoc{Beats: c.Beats, Playlists: c.Playlists}
	for _, k := range c.Kits {
		doc.Kits = append(doc.Kits, kitDoc{
			ID: k.ID, Title: k.Title, Producer: k.Producer, Cover: k.Cover, Price: k.Price,
			Description: k.Description, Type: string(k.Type),
			Preview: k.PreviewTrack.ID, PreviewTitle: k.PreviewTrack.Title,
		})
	}
	for _, s := range c.Services {
		doc.Services = append(doc.Services, serviceDoc{
			ID: s.ID, Title: s.Title, Provider: s.Provider, Cover: s.Cover, PriceFrom: s.PriceFrom,
			Description: s.Description, Example: s.ExampleTrack.ID, ExampleTitle: s.ExampleTrack.Title,
		})
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return data, nil
}

// FileCatalog is a CatalogRepository backed by a TOML file. Watch keeps it in
// sync with the file; a broken edit leaves the previous catalog in place.
type FileCatalog struct {
	*memoryCatalog
	path string
}

// OpenFileCatalog loads path and returns a FileCatalog over it.
func OpenFileCatalog(path string) (*FileCatalog, error) {
	fc := &FileCatalog{memoryCatalog: &memoryCatalog{}, path: path}
	if err := fc.Reload(); err != nil {
		return nil, err
	}
	return fc, nil
}

// Path returns the backing file.
func (fc *FileCatalog) Path() string { return fc.path }

// Reload re-reads the backing file.
func (fc *FileCatalog) Reload() error {
	data, err := os.ReadFile(fc.path)
	if err != nil {
		return fmt.Errorf("read catalog %s: %w", fc.path, err)
	}
	c, err := ParseCatalog(data)
	if err != nil {
		return err
	}
	fc.replace(c)
	return nil
}

// reloadDelay lets an editor finish writing before the file is re-read.
const reloadDelay = 100 * time.Millisecond

// Watch reloads the catalog whenever its file changes, until ctx is done.
// The parent directory is watched so that editors replacing the file by
// rename are picked up too. onReload, if non-nil, is called after each
// attempt.
func (fc *FileCatalog) Watch(ctx context.Context, onReload func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(fc.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("监听目录失败: %w", err)
	}
	target := filepath.Clean(fc.path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				pending = time.After(reloadDelay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", logger.ErrorField(err))
		case <-pending:
			pending = nil
			err := fc.Reload()
			if err != nil {
				logger.Warn("catalog reload failed, keeping previous catalog",
					logger.String("path", fc.path), logger.ErrorField(err))
			} else {
				logger.Info("catalog reloaded", logger.String("path", fc.path))
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}
}
