package refdb

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"

	"github.com/strlab/strmatch"
)

// loadDelimited reads a wide-layout text database. The delimiter is
// auto-detected and compressed sources are unpacked transparently.
func loadDelimited(ctx context.Context, path string, client *storage.Client) (*DB, error) {
	raw, err := strmatch.Fetch(ctx, path, client)
	if err != nil {
		return nil, err
	}

	sum, err := checksum(raw)
	if err != nil {
		return nil, err
	}

	rc, err := strmatch.MaybeDecompress(bytes.NewReader(raw))
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rc.Close()

	contents, err := io.ReadAll(rc)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(bytes.NewReader(contents))
	r.Comma = strmatch.DetermineDelimiter(bytes.NewReader(contents))
	r.TrimLeadingSpace = true
	// Ragged rows are legal; short rows mean untyped trailing markers.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}

	profiles, err := profilesFromTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	return &DB{Source: path, Checksum: sum, Profiles: profiles}, nil
}
