// Package batch answers "which queues does this site offer" for the five
// batch systems a compute element may front: PBS, LSF, Condor, SLURM and
// SGE.  Implementations shell out to the scheduler's own query tool through
// a Runner seam; per-system environment bootstrap is expressed as explicit
// child-process PATH additions taken from the site configuration.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/osgrid/gip/gip/config"
	"github.com/osgrid/gip/internal/registry"
)

var log = logrus.WithField("component", "gip.batch")

// ErrUnknownJobManager indicates a configured job manager that no System
// implementation claims.  This is a fatal site misconfiguration.
var ErrUnknownJobManager = errors.New("unknown job manager")

// System is one batch-system kind capable of listing its queues.
type System interface {
	Name() string
	QueueList(ctx context.Context) ([]string, error)
}

// Registry holds the known systems keyed by canonical (lowercase) name.
type Registry struct {
	systems *registry.Map[System]
}

// NewRegistry builds a registry pre-populated with the builtin systems for
// the given site.
func NewRegistry(site *config.Site, r Runner) *Registry {
	reg := &Registry{systems: registry.New[System]()}
	for _, sys := range Builtins(site, r) {
		reg.Register(sys)
	}
	return reg
}

// Register adds or replaces a system.
func (r *Registry) Register(sys System) {
	r.systems.Set(strings.ToLower(sys.Name()), sys)
}

// Lookup resolves a job-manager name (case-insensitive, trimmed) to a
// registered system.  The error for an unknown name lists what the
// registry does know; the usual cause is a typo in [ce] job_manager.
func (r *Registry) Lookup(jobManager string) (System, error) {
	name := strings.ToLower(strings.TrimSpace(jobManager))
	sys, ok := r.systems.Lookup(name)
	if !ok {
		known := r.systems.Names()
		sort.Strings(known)
		return nil, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownJobManager, jobManager, strings.Join(known, ", "))
	}
	return sys, nil
}

// Builtins constructs the five stock systems wired to the site
// configuration.
func Builtins(site *config.Site, r Runner) []System {
	return []System{
		&pbsSystem{runner: r},
		&lsfSystem{site: site, runner: r},
		&condorSystem{runner: r},
		&slurmSystem{runner: r},
		&sgeSystem{site: site, runner: r},
	}
}

// uniqueNonEmpty trims entries, drops blanks and removes duplicates while
// preserving first occurrence order.
func uniqueNonEmpty(entries []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
