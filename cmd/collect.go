package cmd

import (
	"context"
	"os"

	"github.com/osgrid/gip/gip/wrapper"
)

// CollectCmd runs the site's providers and plugins, merges their output
// with the static LDIF and prints the result on stdout.
type CollectCmd struct{}

func (c *CollectCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	return wrapper.Collect(context.Background(), svc.FileSystem(), svc.Site(), os.Stdout)
}
