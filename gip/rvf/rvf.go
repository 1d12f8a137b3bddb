// Package rvf parses Globus GRAM Resource Value Fields files: repeated
// "Key: Value" lines grouped into blocks, each block introduced by an
// Attribute key.  Install defaults may be overridden by files of the same
// name under /etc/globus/gram.
package rvf

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/config"
)

var log = logrus.WithField("component", "gip.rvf")

var pairPattern = regexp.MustCompile(`(?m)^(.+?): (.*?)$`)

// DefaultDirs returns the RVF search path in overlay order: the GRAM job
// manager defaults directory first, then the host-level override directory.
func DefaultDirs() []string {
	var base string
	if loc, ok := os.LookupEnv("GLOBUS_LOCATION"); ok {
		base = filepath.Join(loc, "share/globus_gram_job_manager")
	} else {
		base = os.ExpandEnv(config.VdtDir(
			"$VDT_LOCATION/globus/share/globus_gram_job_manager",
			"/usr/share/globus/globus_gram_job_manager"))
	}
	return []string{base, "/etc/globus/gram"}
}

// Parse reads the named RVF file from each directory in order, later
// attribute definitions overriding earlier ones.  Unreadable files are a
// soft condition: a name with no readable file yields an empty map.
func Parse(ctx context.Context, fs afs.Service, name string, dirs ...string) map[string]map[string]string {
	if len(dirs) == 0 {
		dirs = DefaultDirs()
	}
	results := make(map[string]map[string]string)
	for _, dir := range dirs {
		path := filepath.Join(dir, name)
		log.Debugf("looking for RVF %s", path)
		data, err := fs.DownloadWithURL(ctx, path)
		if err != nil {
			continue
		}
		for attr, fields := range ParseData(data) {
			results[attr] = fields
		}
	}
	return results
}

// ParseData parses RVF file contents into attribute blocks.  Keys seen
// before the first Attribute line are discarded.
func ParseData(data []byte) map[string]map[string]string {
	results := make(map[string]map[string]string)
	var current map[string]string
	for _, pair := range pairPattern.FindAllStringSubmatch(string(data), -1) {
		key, val := pair[1], pair[2]
		if key == "Attribute" {
			current = make(map[string]string)
			results[val] = current
		} else if current != nil {
			current[key] = val
		}
	}
	return results
}
