// strmatch identifies a query STR profile against a reference database:
// it ranks every reference by matched markers, attaches the combined
// random match probability of the best candidate, and calls chromosomal
// sex from amelogenin.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/carbocation/pfx"

	"github.com/strlab/strmatch/catalog"
	_ "github.com/strlab/strmatch/compileinfoprint"
	"github.com/strlab/strmatch/epg"
	"github.com/strlab/strmatch/identify"
	"github.com/strlab/strmatch/match"
	"github.com/strlab/strmatch/refdb"
	"github.com/strlab/strmatch/report"
)

var (
	BufferSize = 4096
	STDOUT     = bufio.NewWriterSize(os.Stdout, BufferSize)
)

func main() {
	defer STDOUT.Flush()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	var (
		queryPath    string
		sequencePath string
		dbPath       string
		catalogPath  string
		caseID       string
		caseDate     string
		labName      string
		tolerance    int
		topN         int
		workers      int
		showReport   bool
		epgPath      string
	)

	flag.StringVar(&queryPath, "query", "", "Path to the query profile: a wide-format delimited file with one data row")
	flag.StringVar(&sequencePath, "sequence", "", "Path to a raw DNA sequence to type against the catalog instead of --query")
	flag.StringVar(&dbPath, "db", cfg.Database, "Path to the reference database: delimited text (optionally gzip/zip/xz/bzip2), .xls, or .db/.sqlite/.sqlite3. Delimited and .xls sources may also be gs:// or http(s) URLs")
	flag.StringVar(&catalogPath, "catalog", cfg.Catalog, "Optional marker catalog (.yaml/.yml or delimited). Empty uses the built-in CODIS-style panel")
	flag.StringVar(&caseID, "case", "", "Case identifier for the report header")
	flag.StringVar(&caseDate, "date", "", "Examination date in any common format. Empty means today")
	flag.StringVar(&labName, "lab", cfg.Lab, "Laboratory name for the report header")
	flag.IntVar(&tolerance, "tolerance", cfg.Tolerance, "Numeric match window in repeat units")
	flag.IntVar(&topN, "top", cfg.TopN, "Number of ranked candidates to display")
	flag.IntVar(&workers, "workers", cfg.Workers, "Scoring goroutines. 0 means one per CPU")
	flag.BoolVar(&showReport, "report", false, "Print the full report instead of the one-line verdict")
	flag.StringVar(&epgPath, "epg", "", "Optional output path for the query electropherogram PNG")
	flag.Parse()

	if (queryPath == "") == (sequencePath == "") {
		flag.PrintDefaults()
		log.Fatalln("Please provide exactly one of --query or --sequence")
	}
	if dbPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please provide --db (or set STRMATCH_DATABASE)")
	}

	ctx := context.Background()

	cat, err := catalog.Load(ctx, catalogPath, nil)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	db, err := refdb.Load(ctx, cat, dbPath, nil)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	log.Printf("Loaded %d reference profiles from %s\n", len(db.Profiles), db.Source)

	query, err := loadQuery(ctx, cat, queryPath, sequencePath)
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

	opts := identify.Options{
		Match: match.Options{Tolerance: tolerance, Workers: workers},
		TopN:  topN,
	}

	verdict, err := identify.Identify(cat, db.Profiles, query, opts)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	if epgPath != "" {
		if err := writeEPG(epgPath, cat, query, epg.CaseInfo{ID: caseID, Date: date, Lab: labName}); err != nil {
			log.Fatalln(pfx.Err(err))
		}
		log.Printf("Wrote electropherogram to %s\n", epgPath)
	}

	if showReport {
		h := report.Header{CaseID: caseID, Date: date, Lab: labName}
		if err := report.Write(STDOUT, h, db, query, verdict); err != nil {
			log.Fatalln(pfx.Err(err))
		}
		return
	}

	if !verdict.Found {
		fmt.Fprintf(STDOUT, "%s: no match against %d references (sex %s)\n", query.ID(), len(db.Profiles), verdict.Sex)
		return
	}

	fmt.Fprintf(STDOUT, "%s: %s (%d of %d markers, %s, sex %s)\n",
		query.ID(), verdict.Best.Ref.ID(), verdict.Best.Matched, verdict.Best.Compared, verdict.Rarity, verdict.Sex)
}
