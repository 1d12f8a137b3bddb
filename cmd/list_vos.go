package cmd

import (
	"context"
	"fmt"
)

// ListVOsCmd prints the site's supported VOs, whitelist and blacklist
// applied, one per line.
type ListVOsCmd struct{}

func (c *ListVOsCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	vos, err := svc.VOList(context.Background())
	if err != nil {
		return err
	}
	for _, vo := range vos {
		fmt.Println(vo)
	}
	return nil
}
