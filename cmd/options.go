package cmd

// Options is the root for the CLI.  Struct tags are interpreted by
// github.com/jessevdk/go-flags.
type Options struct {
	Config string `short:"c" long:"config" description:"site configuration INI path (loaded before the install defaults)"`

	Bind       *BindCmd       `command:"bind"        description:"Emit GLUE CESEBind records for every CE/SE pair"`
	ListCE     *ListCECmd     `command:"list-ce"     description:"List the compute element unique IDs"`
	ListSE     *ListSECmd     `command:"list-se"     description:"List the storage element unique IDs"`
	ListVOs    *ListVOsCmd    `command:"list-vos"    description:"List the VOs supported by this site"`
	DumpConfig *DumpConfigCmd `command:"dump-config" description:"Dump the effective merged configuration as YAML"`
	Collect    *CollectCmd    `command:"collect"     description:"Run providers and plugins and print the merged LDIF"`
}

// Init instantiates the sub-command referenced by the first positional
// argument so that go-flags can populate its fields.
func (o *Options) Init(firstArg string) {
	switch firstArg {
	case "bind":
		o.Bind = &BindCmd{}
	case "list-ce":
		o.ListCE = &ListCECmd{}
	case "list-se":
		o.ListSE = &ListSECmd{}
	case "list-vos":
		o.ListVOs = &ListVOsCmd{}
	case "dump-config":
		o.DumpConfig = &DumpConfigCmd{}
	case "collect":
		o.Collect = &CollectCmd{}
	}
}
