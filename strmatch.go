// Package strmatch holds the shared plumbing for the STR identification
// toolkit: transparent opening of local, Google Storage, and http paths,
// compression sniffing, and delimiter detection for tabular inputs. The
// domain packages (catalog, profile, match, rmp, identify, ...) sit on top.
package strmatch

import (
	"context"
	"io"
	"log"
	"net/http"
	"os/user"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// ExpandHome expands ~ to its proper path, where appropriate.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		path = filepath.Join(usr.HomeDir, (path)[2:])
	}

	return path
}

// Fetch slurps the full contents at path, which may name a local file, a
// gs:// object, or an http(s) URL. A nil client is permitted and will be
// populated on demand for gs:// paths.
func Fetch(ctx context.Context, path string, client *storage.Client) ([]byte, error) {
	var rc io.ReadCloser
	var err error

	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		resp, err := http.Get(path)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rc = resp.Body
	} else {
		rc, err = MaybeOpenFromGoogleStorage(ctx, path, client)
		if err != nil {
			return nil, err
		}
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
