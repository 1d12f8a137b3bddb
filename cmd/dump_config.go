package cmd

import (
	"os"
)

// DumpConfigCmd prints the effective merged configuration as YAML, sections
// and options in file order.
type DumpConfigCmd struct{}

func (c *DumpConfigCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	return svc.Site().Dump(os.Stdout)
}
