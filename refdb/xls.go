package refdb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/extrame/xls"

	"github.com/strlab/strmatch"
)

// loadXLS reads the first sheet of an XLS workbook laid out like the wide
// text format. Compressed workbooks are unpacked transparently.
func loadXLS(ctx context.Context, path string, client *storage.Client) (*DB, error) {
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

	workbook, err := xls.OpenReader(bytes.NewReader(contents), "utf-8")
	if err != nil {
		return nil, pfx.Err(err)
	}

	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("%s: sheet 0 was nil", path)
	}

	var rows [][]string
	for rowID := 0; rowID <= int(sheet.MaxRow); rowID++ {
		row := sheet.Row(rowID)
		if row == nil {
			continue
		}

		cells := make([]string, 0, row.LastCol()+1)
		empty := true
		for colID := 0; colID <= row.LastCol(); colID++ {
			cell := strings.TrimSpace(row.Col(colID))
			if cell != "" {
				empty = false
			}
			cells = append(cells, cell)
		}
		if empty {
			continue
		}

		rows = append(rows, cells)
	}

	profiles, err := profilesFromTable(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %v", path, err)
	}

	return &DB{Source: path, Checksum: sum, Profiles: profiles}, nil
}
