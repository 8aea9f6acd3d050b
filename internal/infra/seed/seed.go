// Package seed loads the site content collections from a YAML file into the data directory.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"aura-inn/internal/infra/repository"

	"gopkg.in/yaml.v3"
)

// Collections lists the keys a seed file may define, in the order they are applied.
var Collections = []string{
	repository.CollectionGeneralData,
	repository.CollectionRoomTypes,
	repository.CollectionFloors,
	repository.CollectionReviews,
	repository.CollectionHomeData,
	repository.CollectionAboutData,
}

type Seeder interface {
	Seed(ctx context.Context, name string, doc any) (bool, error)
}

type Document map[string]any

func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return doc, nil
}

// Apply writes each collection the data directory does not have yet. Existing data always wins.
func Apply(ctx context.Context, seeder Seeder, doc Document, logger *slog.Logger) error {
	known := make(map[string]bool, len(Collections))
	for _, name := range Collections {
		known[name] = true
		value, ok := doc[name]
		if !ok {
			continue
		}
		wrote, err := seeder.Seed(ctx, name, value)
		if err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
		if wrote {
			logger.Info("Seeded collection", "collection", name)
		} else {
			logger.Debug("Collection already present, seed skipped", "collection", name)
		}
	}
	for name := range doc {
		if !known[name] {
			logger.Warn("Ignoring unknown seed collection", "collection", name)
		}
	}
	return nil
}
