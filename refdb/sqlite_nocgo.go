//go:build !cgo
// +build !cgo

package refdb

import "fmt"

func loadSQLite(path string) (*DB, error) {
	return nil, fmt.Errorf("%s: sqlite databases require a cgo-enabled build", path)
}
