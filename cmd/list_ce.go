package cmd

import (
	"context"
	"fmt"
)

// ListCECmd prints one CE unique ID per line.
type ListCECmd struct{}

func (c *ListCECmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ces, err := svc.CEList(context.Background())
	if err != nil {
		return err
	}
	for _, ce := range ces {
		fmt.Println(ce)
	}
	return nil
}
