// Package template extracts per-DN blocks from LDIF template files and
// substitutes %(key)s placeholders.  Placeholders with no value render as a
// deletable marker so that optional attribute lines disappear from the
// output instead of leaking empty values.
package template

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/config"
)

// ErrNotFound indicates that no searched template file contains the
// requested entry.
var ErrNotFound = errors.New("template not found")

// DeleteMarker flags a line for removal during rendering.  Upstream
// providers pre-fill optional template values with it.
const DeleteMarker = "__GIP_DELETEME"

var placeholder = regexp.MustCompile(`%\(([^)]+)\)s`)

// Get returns the template block starting at "dn: <name>" from the named
// template file.  Directories from [gip] local_template_dirs are searched
// before the install template directory; the first readable file wins.
func Get(ctx context.Context, fs afs.Service, site *config.Site, templateFile, name string) (string, error) {
	dirs := site.GetList("gip", "local_template_dirs", nil)
	dirs = append(dirs, config.GipDir("$GIP_LOCATION/templates", "/usr/share/gip/templates"))

	var tried []string
	for _, dir := range dirs {
		path := filepath.Join(os.ExpandEnv(dir), templateFile)
		data, err := fs.DownloadWithURL(ctx, path)
		if err != nil {
			tried = append(tried, path)
			continue
		}
		block, ok := extract(string(data), name)
		if !ok {
			return "", fmt.Errorf("%w: no entry %q in %s", ErrNotFound, name, path)
		}
		return block, nil
	}
	return "", fmt.Errorf("%w: searched %s", ErrNotFound, strings.Join(tried, ", "))
}

// extract records from the line starting "dn: <name>" up to the next blank
// line.
func extract(contents, name string) (string, bool) {
	start := "dn: " + name
	var buf strings.Builder
	recording := false
	for _, line := range strings.SplitAfter(contents, "\n") {
		if strings.HasPrefix(line, start) {
			recording = true
		}
		if recording {
			buf.WriteString(line)
			if line == "\n" {
				break
			}
		}
	}
	if !recording {
		return "", false
	}
	return strings.TrimSuffix(buf.String(), "\n"), true
}

// Render substitutes %(key)s placeholders from info and drops every line
// that still carries the delete marker.  Unknown keys become the marker,
// so a template line depending on absent data vanishes as a whole.
func Render(tmpl string, info map[string]string) string {
	filled := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		key := placeholder.FindStringSubmatch(m)[1]
		if val, ok := info[key]; ok {
			return val
		}
		return DeleteMarker
	})
	var out []string
	for _, line := range strings.Split(filled, "\n") {
		if strings.Contains(line, DeleteMarker) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
