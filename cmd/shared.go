package cmd

import (
	"context"
	"sync"

	"github.com/osgrid/gip/gip"
)

var (
	cfgPath string

	svcOnce sync.Once
	svcInst *gip.Service
	svcErr  error
)

// setConfigPath remembers the CLI-level -c/--config parameter so that the
// service singleton can be created lazily by whichever sub-command is
// executed first.
func setConfigPath(p string) { cfgPath = p }

// serviceSingleton initialises a gip.Service only once and reuses the
// instance across sub-commands within the same CLI invocation.
func serviceSingleton() (*gip.Service, error) {
	svcOnce.Do(func() {
		var opts []gip.Option
		if cfgPath != "" {
			opts = append(opts, gip.WithConfigPaths(cfgPath))
		}
		svcInst, svcErr = gip.New(context.Background(), opts...)
	})
	return svcInst, svcErr
}
