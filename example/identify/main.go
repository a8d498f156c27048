package main

import (
	"log"
	"os"
	"time"

	"github.com/strlab/strmatch/catalog"
	"github.com/strlab/strmatch/identify"
	"github.com/strlab/strmatch/profile"
	"github.com/strlab/strmatch/report"
)

// Matches a small in-memory reference set against a typed crime-scene
// profile and prints the full report to stdout.
func main() {
	cat := catalog.Default()

	refs := []profile.Profile{
		mustProfile("Alice", map[string]string{
			"TH01": "7", "FGA": "21", "D8S1179": "12", "AMEL": "X,X",
		}),
		mustProfile("Bob", map[string]string{
			"TH01": "9", "FGA": "22", "D8S1179": "13", "AMEL": "X,Y",
		}),
	}

	query := mustProfile("scene-1", map[string]string{
		"TH01": "9", "FGA": "23", "D8S1179": "13", "AMEL": "X,Y",
	})

	verdict, err := identify.Identify(cat, refs, query, identify.DefaultOptions())
	if err != nil {
		log.Fatalln(err)
	}

	h := report.Header{CaseID: "demo-001", Date: time.Now(), Lab: "Example Lab"}
	if err := report.Write(os.Stdout, h, nil, query, verdict); err != nil {
		log.Fatalln(err)
	}
}

func mustProfile(id string, raw map[string]string) profile.Profile {
	values := make(map[string]profile.Value, len(raw))
	for marker, s := range raw {
		v, err := profile.Parse(s)
		if err != nil {
			log.Fatalln(err)
		}
		values[marker] = v
	}

	return profile.New(id, values)
}
