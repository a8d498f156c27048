// strplot renders a simulated electropherogram PNG for an STR profile,
// one Gaussian peak per typed marker with height proportional to the
// repeat count.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/carbocation/pfx"

	"github.com/strlab/strmatch"
	"github.com/strlab/strmatch/catalog"
	_ "github.com/strlab/strmatch/compileinfoprint"
	"github.com/strlab/strmatch/epg"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/refdb"
	"github.com/strlab/strmatch/report"
	"github.com/strlab/strmatch/tandem"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	var (
		queryPath    string
		sequencePath string
		catalogPath  string
		outPath      string
		caseID       string
		caseDate     string
		labName      string
	)

	flag.StringVar(&queryPath, "query", "", "Path to the profile to plot: a wide-format delimited file with one data row")
	flag.StringVar(&sequencePath, "sequence", "", "Path to a raw DNA sequence to type against the catalog instead of --query")
	flag.StringVar(&catalogPath, "catalog", "", "Optional marker catalog (.yaml/.yml or delimited). Empty uses the built-in CODIS-style panel")
	flag.StringVar(&outPath, "out", "", "Output PNG path")
	flag.StringVar(&caseID, "case", "", "Case identifier for the image footer")
	flag.StringVar(&caseDate, "date", "", "Examination date in any common format. Empty means today")
	flag.StringVar(&labName, "lab", "", "Laboratory name for the image footer")
	flag.Parse()

	if (queryPath == "") == (sequencePath == "") {
		flag.PrintDefaults()
		log.Fatalln("Please provide exactly one of --query or --sequence")
	}
	if outPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --out")
	}

	ctx := context.Background()

	cat, err := catalog.Load(ctx, catalogPath, nil)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	p, err := loadProfile(ctx, cat, queryPath, sequencePath)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	date := time.Now()
	if caseDate != "" {
		date, err = report.ParseDate(caseDate)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
	}

	f, err := os.Create(strmatch.ExpandHome(outPath))
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	defer f.Close()

	info := epg.CaseInfo{ID: caseID, Date: date, Lab: labName}
	if err := epg.WritePNG(f, cat, p, info); err != nil {
		log.Fatalln(pfx.Err(err))
	}

	log.Printf("Wrote electropherogram for %s to %s\n", p.ID(), outPath)
}

func loadProfile(ctx context.Context, cat *catalog.Catalog, queryPath, sequencePath string) (profile.Profile, error) {
	if queryPath != "" {
		db, err := refdb.Load(ctx, cat, queryPath, nil)
		if err != nil {
			return profile.Profile{}, err
		}
		if len(db.Profiles) != 1 {
			return profile.Profile{}, fmt.Errorf("profile file %s carries %d profiles, expected exactly 1", queryPath, len(db.Profiles))
		}
		return db.Profiles[0], nil
	}

	raw, err := strmatch.Fetch(ctx, sequencePath, nil)
	if err != nil {
		return profile.Profile{}, err
	}

	seq := strings.Join(strings.Fields(string(raw)), "")

	base := filepath.Base(sequencePath)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	return tandem.ProfileFromSequence(cat, id, seq)
}
