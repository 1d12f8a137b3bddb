package config

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"gopkg.in/ini.v1"
)

var log = logrus.WithField("component", "gip.config")

// Load merges the given configuration files in order; options from later
// files override earlier ones.  Unreadable files are logged and skipped so
// that a partially provisioned site still produces a usable configuration.
func Load(ctx context.Context, fs afs.Service, paths ...string) (*Site, error) {
	var sources []interface{}
	for _, path := range paths {
		path = os.ExpandEnv(path)
		data, err := fs.DownloadWithURL(ctx, path)
		if err != nil {
			log.Warnf("skipping config file %s: %v", path, err)
			continue
		}
		log.Infof("using config file: %s", path)
		sources = append(sources, data)
	}
	if len(sources) == 0 {
		return New(), nil
	}
	file, err := ini.Load(sources[0], sources[1:]...)
	if err != nil {
		return nil, err
	}
	return &Site{file: file}, nil
}

// DefaultPaths resolves the configuration files to read, in load order:
// the explicitly requested files first, then the install default, then
// $GIP_CONFIG so that it can override everything (later files win).
func DefaultPaths(explicit ...string) []string {
	paths := append([]string(nil), explicit...)
	paths = append(paths, GipDir("$GIP_LOCATION/etc/gip.conf", "/etc/gip/gip.conf"))
	if cfg := os.Getenv("GIP_CONFIG"); cfg != "" {
		paths = append(paths, cfg)
	}
	return paths
}

// PickDir returns dir when envVar is present in the environment and the
// fallback directory otherwise.  It distinguishes tarball installs, which
// anchor everything on a location variable, from RPM installs with fixed
// paths.
func PickDir(dir, fallback, envVar string) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return dir
	}
	return fallback
}

// GipDir selects tarDir on GIP_LOCATION installs and rpmDir otherwise.
func GipDir(tarDir, rpmDir string) string {
	return PickDir(tarDir, rpmDir, "GIP_LOCATION")
}

// VdtDir selects tarDir on VDT_LOCATION installs and rpmDir otherwise.
func VdtDir(tarDir, rpmDir string) string {
	return PickDir(tarDir, rpmDir, "VDT_LOCATION")
}
