// Package wrapper runs the site's provider and plugin modules, caches
// their output and combines it with the static LDIF of the install into
// the final information stream.  Providers replace whole entries, plugins
// overlay attributes onto existing entries, and the add/alter/remove
// attribute files apply site-local fixups last.
package wrapper

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/osgrid/gip/gip/config"
)

var log = logrus.WithField("component", "gip.wrapper")

// Dirs holds the directory layout of a collection run.
type Dirs struct {
	Temp     string
	Plugin   string
	Provider string
	Static   string
}

// DirsFromConfig resolves the collection directories from [gip] options
// with install-dependent defaults.
func DirsFromConfig(site *config.Site) Dirs {
	return Dirs{
		Temp: os.ExpandEnv(site.Get("gip", "temp_dir",
			config.GipDir("$GIP_LOCATION/var/tmp", "/var/cache/gip"))),
		Plugin: os.ExpandEnv(site.Get("gip", "plugin_dir",
			config.GipDir("$GIP_LOCATION/plugins", "/usr/libexec/gip/plugins"))),
		Provider: os.ExpandEnv(site.Get("gip", "provider_dir",
			config.GipDir("$GIP_LOCATION/providers", "/usr/libexec/gip/providers"))),
		Static: os.ExpandEnv(site.Get("gip", "static_dir",
			config.GipDir("$GIP_LOCATION/var/ldif", "/etc/gip/ldif.d"))),
	}
}

// Collect runs the full pipeline and writes the resulting LDIF to w.
func Collect(ctx context.Context, fs afs.Service, site *config.Site, w io.Writer) error {
	dirs := DirsFromConfig(site)
	for _, dir := range []string{dirs.Temp, dirs.Plugin, dirs.Provider, dirs.Static} {
		if ok, _ := fs.Exists(ctx, dir); ok {
			continue
		}
		log.Infof("creating directory %s because it doesn't exist", dir)
		if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	if site.GetBoolean("gip", "flush_cache", false) {
		log.Info("flushing cache upon request")
		flushCache(ctx, fs, dirs.Temp)
	}

	freshness := time.Duration(site.GetInt("gip", "freshness", 300)) * time.Second
	cacheTTL := time.Duration(site.GetInt("gip", "cache_ttl", 600)) * time.Second
	response := time.Duration(site.GetInt("gip", "response", 240)) * time.Second
	timeout := time.Duration(site.GetInt("gip", "timeout", 240)) * time.Second

	staticInfo, err := readStatic(ctx, fs, dirs.Static)
	if err != nil {
		return err
	}

	providers, err := listModules(ctx, fs, dirs.Provider)
	if err != nil {
		return err
	}
	plugins, err := listModules(ctx, fs, dirs.Plugin)
	if err != nil {
		return err
	}

	// Recent cached output short-circuits a module run; whatever is still
	// missing gets launched and re-read under the longer cache TTL.
	checkCache(ctx, fs, providers, dirs.Temp, freshness)
	checkCache(ctx, fs, plugins, dirs.Temp, freshness)

	launchModules(ctx, fs, append(append([]*module(nil), providers...), plugins...),
		dirs.Temp, timeout, response)

	checkCache(ctx, fs, providers, dirs.Temp, cacheTTL)
	checkCache(ctx, fs, plugins, dirs.Temp, cacheTTL)

	entries := parseEntries(staticInfo)
	entries = applyProviders(entries, moduleEntries(providers))
	entries = applyPlugins(entries, moduleEntries(plugins))

	entries = applyAttributeFile(ctx, fs, site, entries, "add_attributes",
		config.GipDir("$GIP_LOCATION/etc/add-attributes.conf", "/etc/gip/add-attributes.conf"),
		applyProviders)
	entries = applyAttributeFile(ctx, fs, site, entries, "alter_attributes",
		config.GipDir("$GIP_LOCATION/etc/alter-attributes.conf", "/etc/gip/alter-attributes.conf"),
		applyPlugins)
	entries = removeAttributeFile(ctx, fs, site, entries)

	_, err = io.WriteString(w, serialize(entries))
	return err
}

func moduleEntries(modules []*module) []entry {
	var entries []entry
	for _, m := range modules {
		if m.cached {
			entries = append(entries, parseEntries(m.output)...)
		}
	}
	return entries
}

// applyAttributeFile treats the contents of a site-local attribute file as
// the output of one more provider or plugin.  A missing file is normal.
func applyAttributeFile(ctx context.Context, fs afs.Service, site *config.Site, entries []entry,
	option, fallback string, apply func(entries, incoming []entry) []entry) []entry {
	path := os.ExpandEnv(site.Get("gip", option, fallback))
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		log.Debugf("no %s file at %s", option, path)
		return entries
	}
	return apply(entries, parseEntries(string(data)))
}

func removeAttributeFile(ctx context.Context, fs afs.Service, site *config.Site, entries []entry) []entry {
	path := os.ExpandEnv(site.Get("gip", "remove_attributes",
		config.GipDir("$GIP_LOCATION/etc/remove-attributes.conf", "/etc/gip/remove-attributes.conf")))
	data, err := fs.DownloadWithURL(ctx, path)
	if err != nil {
		log.Debugf("no remove_attributes file at %s", path)
		return entries
	}
	return applyRemovals(entries, string(data))
}

// readStatic concatenates every .ldif file in the static directory,
// normalizing each to end with a blank line so that blocks never fuse.
func readStatic(ctx context.Context, fs afs.Service, staticDir string) (string, error) {
	objects, err := fs.List(ctx, staticDir)
	if err != nil {
		return "", fmt.Errorf("list static dir %s: %w", staticDir, err)
	}
	var names []string
	for _, obj := range objects {
		if obj.IsDir() || !strings.HasSuffix(obj.Name(), ".ldif") {
			continue
		}
		names = append(names, obj.Name())
	}
	sort.Strings(names)

	var sb strings.Builder
	for _, name := range names {
		log.Debugf("reading static file %s", name)
		data, err := fs.DownloadWithURL(ctx, filepath.Join(staticDir, name))
		if err != nil {
			log.Errorf("unable to read %s: %v", name, err)
			continue
		}
		info := string(data)
		if info == "" {
			continue
		}
		if !strings.HasSuffix(info, "\n") {
			info += "\n"
		}
		if !strings.HasSuffix(info, "\n\n") {
			info += "\n"
		}
		sb.WriteString(info)
	}
	return sb.String(), nil
}
