package wrapper

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// module is one provider or plugin executable discovered on disk.  The
// checksum of its contents keys the cache file so that edits to a module
// invalidate stale output automatically.
type module struct {
	name   string
	dir    string
	cksum  string
	output string
	cached bool
}

func (m *module) cacheFile(tempDir string) string {
	return filepath.Join(tempDir, fmt.Sprintf("%s.ldif.%s", m.name, m.cksum))
}

// listModules discovers the executables in a directory, skipping dotfiles,
// editor backups (name~) and autosave files (#name#).
func listModules(ctx context.Context, fs afs.Service, dir string) ([]*module, error) {
	objects, err := fs.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list modules in %s: %w", dir, err)
	}
	var modules []*module
	for _, obj := range objects {
		name := obj.Name()
		if obj.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if strings.HasSuffix(name, "~") ||
			(strings.HasPrefix(name, "#") && strings.HasSuffix(name, "#")) {
			continue
		}
		data, err := fs.DownloadWithURL(ctx, filepath.Join(dir, name))
		if err != nil {
			log.Warnf("unable to read module %s: %v", name, err)
			continue
		}
		sum := md5.Sum(data)
		modules = append(modules, &module{
			name:  name,
			dir:   dir,
			cksum: hex.EncodeToString(sum[:]),
		})
		log.Debugf("found module %s in directory %s", name, dir)
	}
	return modules, nil
}

// checkCache loads output for every module whose cache file is younger
// than the freshness window.
func checkCache(ctx context.Context, fs afs.Service, modules []*module, tempDir string, freshness time.Duration) {
	for _, m := range modules {
		if m.cached {
			continue
		}
		path := m.cacheFile(tempDir)
		obj, err := fs.Object(ctx, path)
		if err != nil || obj == nil {
			continue
		}
		if time.Since(obj.ModTime()) > freshness {
			log.Debugf("cache file %s is too old", path)
			continue
		}
		data, err := fs.DownloadWithURL(ctx, path)
		if err != nil {
			log.Warnf("unable to read cache file %s: %v", path, err)
			continue
		}
		m.output = string(data)
		m.cached = true
	}
}

// launchModules runs every module without cached output concurrently, each
// bounded by its own timeout, and writes successful output into the cache.
// The call returns when all modules finish or the response window closes,
// whichever comes first; stragglers keep running and may still populate
// the cache for the next collection.
func launchModules(ctx context.Context, fs afs.Service, modules []*module, tempDir string, timeout, response time.Duration) {
	var wg sync.WaitGroup
	for _, m := range modules {
		if m.cached {
			continue
		}
		wg.Add(1)
		go func(m *module) {
			defer wg.Done()
			runModule(ctx, fs, m, tempDir, timeout)
		}(m)
	}
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(response):
		log.Warn("response window closed before all modules finished")
	case <-ctx.Done():
	}
}

func runModule(ctx context.Context, fs afs.Service, m *module, tempDir string, timeout time.Duration) {
	executable := filepath.Join(m.dir, m.name)
	log.Infof("running module %s", executable)

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, executable)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Warnf("module %s: %s", m.name, msg)
	}
	if err != nil {
		log.Errorf("module %s failed: %v", m.name, err)
		return
	}
	if err := fs.Upload(ctx, m.cacheFile(tempDir), file.DefaultFileOsMode, strings.NewReader(string(out))); err != nil {
		log.Errorf("unable to cache output of %s: %v", m.name, err)
	}
}

// flushCache removes every non-hidden file from the cache directory.
func flushCache(ctx context.Context, fs afs.Service, tempDir string) {
	objects, err := fs.List(ctx, tempDir)
	if err != nil {
		log.Warnf("unable to list cache dir %s: %v", tempDir, err)
		return
	}
	for _, obj := range objects {
		if obj.IsDir() || strings.HasPrefix(obj.Name(), ".") {
			continue
		}
		if err := fs.Delete(ctx, filepath.Join(tempDir, obj.Name())); err != nil {
			log.Warnf("unable to flush cache file %s: %v", obj.Name(), err)
		}
	}
}
