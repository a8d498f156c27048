package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/strlab/strmatch"
)

// Load reads a catalog from path, choosing the parser by extension:
// .yaml/.yml files parse as YAML, anything else as delimited text. An empty
// path yields the built-in default panel.
func Load(ctx context.Context, path string, client *storage.Client) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(path)
	}

	return LoadCSV(ctx, path, client)
}

// LoadCSV reads a delimited catalog file (columns name, kind, motif,
// probability) from a local, gs://, or http(s) path, decompressing if
// needed.
func LoadCSV(ctx context.Context, path string, client *storage.Client) (*Catalog, error) {
	raw, err := strmatch.Fetch(ctx, path, client)
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

	markers, err := ReadCSV(contents)
	if err != nil {
		return nil, err
	}

	return New(markers...)
}

// ReadCSV parses catalog markers from delimited text. The delimiter is
// auto-detected.
func ReadCSV(contents []byte) ([]Marker, error) {
	delim := strmatch.DetermineDelimiter(bytes.NewReader(contents))

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.TrimLeadingSpace = true
		return r
	})

	var markers []Marker
	if err := gocsv.UnmarshalBytes(contents, &markers); err != nil {
		return nil, pfx.Err(err)
	}

	return markers, nil
}

type yamlConfig struct {
	Markers []Marker `koanf:"markers"`
}

// LoadYAML reads a catalog from a YAML file with a top-level markers list.
func LoadYAML(path string) (*Catalog, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(strmatch.ExpandHome(path)), kyaml.Parser()); err != nil {
		return nil, pfx.Err(err)
	}

	var cfg yamlConfig
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, pfx.Err(err)
	}

	return New(cfg.Markers...)
}
