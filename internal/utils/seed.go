package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/FlagBrew/local-teambuilder/internal/models"
	"github.com/FlagBrew/local-teambuilder/internal/teambuilder"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSeedBatch = 100
	seedWorkers      = 4
)

func openSeed(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d downloading seed catalog", resp.StatusCode)
	}

	return resp.Body, nil
}

// SeedCatalog imports the JSON array of catalog entries found at source (a file path or an
// http(s) URL) when the catalog is empty. Entries missing a required field are skipped. Batches
// are inserted concurrently, so the order across batches is not preserved.
func SeedCatalog(ctx context.Context, store teambuilder.Store, source string, batch int) error {
	logger := log.FromContext(ctx).WithField("source", source)

	existing, err := store.ListCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}

	if len(existing) > 0 {
		logger.WithField("entries", len(existing)).Info("catalog already populated, skipping seed import")
		return nil
	}

	logger.Info("importing seed catalog, please wait...")

	r, err := openSeed(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to open seed catalog: %w", err)
	}
	defer r.Close()

	var raw []models.CatalogEntry
	if err = json.NewDecoder(r).Decode(&raw); err != nil {
		return fmt.Errorf("failed to decode seed catalog: %w", err)
	}

	entries := make([]models.CatalogEntry, 0, len(raw))
	for i, entry := range raw {
		if err = validate.Struct(entry); err != nil {
			logger.WithError(err).WithField("index", i).Warn("skipping invalid seed entry")
			continue
		}
		entries = append(entries, entry)
	}

	if batch <= 0 {
		batch = defaultSeedBatch
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(seedWorkers)

	for start := 0; start < len(entries); start += batch {
		chunk := entries[start:min(start+batch, len(entries))]
		g.Go(func() error {
			return store.InsertCatalog(gctx, chunk...)
		})
	}

	if err = g.Wait(); err != nil {
		return fmt.Errorf("failed to import seed catalog: %w", err)
	}

	logger.WithField("entries", len(entries)).Info("finished importing seed catalog")
	return nil
}
