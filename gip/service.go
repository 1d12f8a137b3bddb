package gip

import (
	"context"
	"sync"

	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/batch"
	"github.com/osgrid/gip/gip/cese"
	"github.com/osgrid/gip/gip/config"
	"github.com/osgrid/gip/gip/vomap"
)

// Service bundles the site configuration, file access and the batch-system
// registry behind one handle.  All heavy lifting during instantiation lives
// in bootstrap.go to keep this file focused on the public surface.
type Service struct {
	site     *config.Site
	fs       afs.Service
	runner   batch.Runner
	registry *batch.Registry

	configPaths []string
	extraSys    []batch.System

	// guards the lazily constructed user→VO mapper.
	mu     sync.Mutex
	mapper *vomap.Mapper
}

// Option modifies a service instance before it is initialised. Users can
// pass an arbitrary number of options to New.
type Option func(*Service)

// WithConfig sets a pre-built site configuration, bypassing file loading.
func WithConfig(site *config.Site) Option {
	return func(s *Service) {
		s.site = site
	}
}

// WithConfigPaths names configuration files to load before the install
// defaults. Later files override earlier ones.
func WithConfigPaths(paths ...string) Option {
	return func(s *Service) {
		s.configPaths = append(s.configPaths, paths...)
	}
}

// WithFileSystem overrides the default local file service.
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithRunner overrides how external batch-system commands are executed.
func WithRunner(r batch.Runner) Option {
	return func(s *Service) {
		s.runner = r
	}
}

// WithBatchSystem registers additional batch systems on top of the
// builtins.
func WithBatchSystem(sys ...batch.System) Option {
	return func(s *Service) {
		s.extraSys = append(s.extraSys, sys...)
	}
}

// New constructs a new service instance. The actual bootstrap is handled by
// init() in bootstrap.go so that callers do not need to care about the
// internal initialisation sequence.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// Site returns the effective site configuration. Callers must treat the
// returned object as read-only.
func (s *Service) Site() *config.Site { return s.site }

// FileSystem returns the file service the instance was built with.
func (s *Service) FileSystem() afs.Service { return s.fs }

// Runner returns the command runner the instance was built with.
func (s *Service) Runner() batch.Runner { return s.runner }

// System resolves the site's configured job manager ([ce] job_manager) to
// a batch system. It returns batch.ErrUnknownJobManager for schedulers the
// registry does not know.
func (s *Service) System(ctx context.Context) (batch.System, error) {
	return s.registry.Lookup(s.site.Get("ce", "job_manager", ""))
}

// QueueList returns the queue names of the site's batch system.
func (s *Service) QueueList(ctx context.Context) ([]string, error) {
	sys, err := s.System(ctx)
	if err != nil {
		return nil, err
	}
	return sys.QueueList(ctx)
}

// VOMapper returns the user→VO mapper, reading the map file on first use.
func (s *Service) VOMapper(ctx context.Context) (*vomap.Mapper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mapper != nil {
		return s.mapper, nil
	}
	mapper, err := vomap.New(ctx, s.fs, s.site)
	if err != nil {
		return nil, err
	}
	s.mapper = mapper
	return mapper, nil
}

// VOList returns the VOs the site supports, after whitelist and blacklist
// filtering.
func (s *Service) VOList(ctx context.Context) ([]string, error) {
	mapper, err := s.VOMapper(ctx)
	if err != nil {
		return nil, err
	}
	return vomap.VOList(s.site, mapper), nil
}

// CEList returns the GlueCEUniqueIDs the site advertises.
func (s *Service) CEList(ctx context.Context) ([]string, error) {
	sys, err := s.System(ctx)
	if err != nil {
		return nil, err
	}
	return cese.CEList(ctx, s.site, sys, s.runner)
}

// SEList returns the storage element unique IDs, classic SEs included.
func (s *Service) SEList(ctx context.Context) []string {
	return cese.SEList(s.site, true)
}

// ClassicSEList returns the classic (GridFTP-only) SE IDs, when enabled.
func (s *Service) ClassicSEList() []string {
	return cese.ClassicSEList(s.site)
}

// BindInfo returns the CE×SE bind cross-product.
func (s *Service) BindInfo(ctx context.Context) ([]cese.Bind, error) {
	sys, err := s.System(ctx)
	if err != nil {
		return nil, err
	}
	return cese.BindInfo(ctx, s.site, sys, s.runner)
}
