package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strlab/strmatch"
	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/epg"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/refdb"
	"github.com/strlab/strmatch/tandem"
)

// loadQuery builds the query profile from whichever input the caller
// provided: a one-row profile file, or a raw sequence to type against
// the catalog.
func loadQuery(ctx context.Context, cat *catalog.Catalog, queryPath, sequencePath string) (profile.Profile, error) {
	if queryPath != "" {
		db, err := refdb.Load(ctx, cat, queryPath, nil)
		if err != nil {
			return profile.Profile{}, err
		}
		if len(db.Profiles) != 1 {
			return profile.Profile{}, fmt.Errorf("query file %s carries %d profiles, expected exactly 1", queryPath, len(db.Profiles))
		}
		return db.Profiles[0], nil
	}

	raw, err := strmatch.Fetch(ctx, sequencePath, nil)
	if err != nil {
		return profile.Profile{}, err
	}

	// Sequence files are often wrapped at a fixed column width.
	seq := strings.Join(strings.Fields(string(raw)), "")

	base := filepath.Base(sequencePath)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	return tandem.ProfileFromSequence(cat, id, seq)
}

func writeEPG(path string, cat *catalog.Catalog, p profile.Profile, info epg.CaseInfo) error {
	f, err := os.Create(strmatch.ExpandHome(path))
	if err != nil {
		return err
	}
	defer f.Close()

	return epg.WritePNG(f, cat, p, info)
}
