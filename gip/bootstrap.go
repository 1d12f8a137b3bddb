package gip

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/batch"
	"github.com/osgrid/gip/gip/config"
)

// init is the main bootstrap routine invoked by New once all options have
// been applied. It orchestrates the individual preparation steps so that
// the logic stays easy to read and to maintain.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	if s.site == nil {
		site, err := config.Load(ctx, s.fs, config.DefaultPaths(s.configPaths...)...)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		s.site = site
	}

	if os.Getenv("GIP_DUMP_CONFIG") != "" {
		if err := s.site.Dump(os.Stderr); err != nil {
			return fmt.Errorf("dump configuration: %w", err)
		}
	}

	if err := s.initLogging(); err != nil {
		return err
	}

	s.registry = batch.NewRegistry(s.site, s.runner)
	for _, sys := range s.extraSys {
		s.registry.Register(sys)
	}
	return nil
}

// initDefaults applies fall-back values for optional dependencies that
// were not supplied through options.
func (s *Service) initDefaults() {
	if s.fs == nil {
		s.fs = afs.New()
	}
	if s.runner == nil {
		if dir := os.Getenv("GIP_TESTING"); dir != "" {
			s.runner = batch.FileRunner{Dir: dir, FS: s.fs}
		} else {
			s.runner = batch.ExecRunner{}
		}
	}
}

// initLogging configures the process-wide logrus defaults from the [gip]
// section: level, and an optional append-mode log file in addition to
// stderr.
func (s *Service) initLogging() error {
	level, err := logrus.ParseLevel(s.site.Get("gip", "log_level", "info"))
	if err != nil {
		return fmt.Errorf("parse [gip] log_level: %w", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)

	if path := os.ExpandEnv(s.site.Get("gip", "log_file", "")); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", path, err)
		}
		logrus.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	return nil
}
