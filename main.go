package main

import (
	"os"

	"github.com/osgrid/gip/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
