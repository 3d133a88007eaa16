package catalog

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for menu documents on the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based menu loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "menu-loader").Logger(),
	}
}

// Load reads a menu document. Paths ending in .gz are gunzipped.
func (l *fileLoader) Load(ctx context.Context, path string) (Document, error) {
	l.logger.Info().Str("file", path).Msg("loading menu file")

	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open menu file")
		return Document{}, fmt.Errorf("failed to open menu file %s: %w", path, err)
	}
	defer file.Close()

	doc, err := decode(file, path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read menu file")
		return Document{}, err
	}

	l.logger.Info().
		Str("file", path).
		Str("restaurant", doc.Restaurant.Name).
		Int("categories", len(doc.Restaurant.Categories)).
		Msg("menu file loaded successfully")

	return doc, nil
}

// decode parses r, gunzipping first when name carries a .gz suffix.
func decode(r io.Reader, name string) (Document, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return Document{}, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}
	return Parse(r)
}
