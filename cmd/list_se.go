package cmd

import (
	"fmt"

	"github.com/osgrid/gip/gip/cese"
)

// ListSECmd prints one SE unique ID per line.
type ListSECmd struct {
	NoClassic bool `long:"no-classic" description:"omit classic (GridFTP-only) storage elements"`
}

func (c *ListSECmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	for _, se := range cese.SEList(svc.Site(), !c.NoClassic) {
		fmt.Println(se)
	}
	return nil
}
