// Package media maps stored image references to displayable locations and
// names uploaded files.
package media

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const refPrefix = "drawable/"

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Resolver turns "drawable/<name>" into "<URLPrefix>/<name>.png" when the file
// is present in Dir, and into the placeholder otherwise.
type Resolver struct {
	Dir         string
	URLPrefix   string
	Placeholder string
}

func NewResolver(dir string) *Resolver {
	return &Resolver{Dir: dir, URLPrefix: "/static/images", Placeholder: "placeholder.png"}
}

func (r *Resolver) placeholder() string { return r.URLPrefix + "/" + r.Placeholder }

// Resolve never fails; anything it cannot find becomes the placeholder.
func (r *Resolver) Resolve(ref string) string {
	name := filepath.Base(strings.TrimPrefix(strings.TrimSpace(ref), refPrefix))
	if name == "" || name == "." || name == ".." || name == "/" {
		return r.placeholder()
	}
	file := name + ".png"
	if fi, err := os.Stat(filepath.Join(r.Dir, file)); err != nil || fi.IsDir() {
		return r.placeholder()
	}
	return r.URLPrefix + "/" + file
}

// BaseName sanitizes an uploaded file name into the stem used on disk. A name
// with nothing usable left gets a random stem.
func BaseName(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	stem = strings.Trim(reUnsafe.ReplaceAllString(stem, "_"), "_")
	if stem == "" {
		return uuid.NewString()
	}
	if len(stem) > 100 {
		stem = stem[:100]
	}
	return stem
}

// Ref is the value recorded in the tree for an image stored as <stem>.png.
func Ref(stem string) string { return refPrefix + stem }

// FilePath is where an image with the given stem lives under Dir.
func (r *Resolver) FilePath(stem string) string { return filepath.Join(r.Dir, stem+".png") }
