// strcount types short tandem repeats in a raw DNA sequence, read from
// --sequence or piped on stdin. By default it prints one line per
// catalog marker with the longest consecutive repeat count. With --db it
// instead matches the typed profile against a reference database using
// exact counts and prints the matching name, or "No match".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"

	"github.com/strlab/strmatch"
	"github.com/strlab/strmatch/catalog"
	_ "github.com/strlab/strmatch/compileinfoprint"
	"github.com/strlab/strmatch/match"
	"github.com/strlab/strmatch/refdb"
	"github.com/strlab/strmatch/tandem"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		sequencePath string
		catalogPath  string
		dbPath       string
	)

	flag.StringVar(&sequencePath, "sequence", "", "Path to the raw DNA sequence to type. May be a gs:// or http(s) URL. Empty reads the sequence from stdin")
	flag.StringVar(&catalogPath, "catalog", "", "Optional marker catalog (.yaml/.yml or delimited). Empty uses the basic three-marker panel")
	flag.StringVar(&dbPath, "db", "", "Optional reference database. When set, the typed profile must match a reference on every shared marker with exact counts")
	flag.Parse()

	ctx := context.Background()

	var (
		cat *catalog.Catalog
		err error
	)
	if catalogPath == "" {
		cat = catalog.Basic3()
	} else {
		cat, err = catalog.Load(ctx, catalogPath, nil)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	var raw []byte
	id := "stdin"
	if sequencePath == "" {
		info, err := os.Stdin.Stat()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			flag.PrintDefaults()
			log.Fatalln("Please provide --sequence or pipe a sequence on stdin")
		}
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
	} else {
		raw, err = strmatch.Fetch(ctx, sequencePath, nil)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}

		base := filepath.Base(sequencePath)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	// Sequence files are often wrapped at a fixed column width.
	seq := strings.Join(strings.Fields(string(raw)), "")

	query, err := tandem.ProfileFromSequence(cat, id, seq)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if dbPath == "" {
		for _, name := range query.Markers() {
			v, _ := query.Get(name)
			fmt.Fprintf(STDOUT, "%s\t%s\n", name, v)
		}
		return
	}

	db, err := refdb.Load(ctx, cat, dbPath, nil)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	results, err := match.Rank(cat, query, db.Profiles, match.Options{Tolerance: 0})
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	best, ok := match.Best(results)
	if !ok || best.Matched != best.Compared {
		fmt.Fprintln(STDOUT, "No match")
		return
	}

	fmt.Fprintln(STDOUT, best.Ref.ID())
}
