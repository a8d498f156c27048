package main

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/strlab/strmatch"
	"github.com/strlab/strmatch/match"
)

// config carries the settings that tend to stay fixed across cases, so
// they can live in a file or the environment instead of being retyped
// per run. Flags override whatever the file and environment provide.
type config struct {
	Catalog   string `koanf:"catalog"`
	Database  string `koanf:"database"`
	Lab       string `koanf:"lab"`
	Tolerance int    `koanf:"tolerance"`
	TopN      int    `koanf:"top_n"`
	Workers   int    `koanf:"workers"`
}

func defaultConfig() config {
	return config{
		Tolerance: match.DefaultTolerance,
		TopN:      5,
	}
}

// loadConfig layers three sources, later ones winning: built-in
// defaults, the optional YAML file named by STRMATCH_CONFIG, and
// STRMATCH_-prefixed environment variables (STRMATCH_DATABASE,
// STRMATCH_TOP_N, and so on).
func loadConfig() (config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("STRMATCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(strmatch.ExpandHome(path)), yaml.Parser()); err != nil {
			return cfg, err
		}
	}

	envProvider := env.Provider("STRMATCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "strmatch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return cfg, err
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return cfg, err
	}

	return cfg, nil
}
