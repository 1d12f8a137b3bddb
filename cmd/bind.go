package cmd

import (
	"context"
	"fmt"

	"github.com/osgrid/gip/gip/template"
)

// defaultBindTemplate renders one CESEBind record per CE/SE pair when the
// site carries no template file of its own.  The mount_point value is
// either empty or a full attribute line, so it rides on the end of the
// MountInfo line.
const defaultBindTemplate = `dn: GlueCESEBindSEUniqueID=%(seUniqueID)s, GlueCESEBindGroupCEUniqueID=%(ceUniqueID)s, mds-vo-name=local, o=grid
objectClass: GlueCESEBind
GlueCESEBindCEAccesspoint: %(access_point)s
GlueCESEBindCEUniqueID: %(ceUniqueID)s
GlueCESEBindMountInfo: %(access_point)s%(mount_point)s
GlueCESEBindWeight: 0
GlueCESEBindSEUniqueID: %(seUniqueID)s
`

// BindCmd prints the GLUE CESEBind LDIF for every CE/SE pair of the site.
type BindCmd struct {
	Template string `short:"t" long:"template" description:"LDIF template file holding a GlueCESEBindSEUniqueID block"`
}

func (c *BindCmd) Execute(_ []string) error {
	svc, err := serviceSingleton()
	if err != nil {
		return err
	}
	ctx := context.Background()

	tmpl := defaultBindTemplate
	if c.Template != "" {
		tmpl, err = template.Get(ctx, svc.FileSystem(), svc.Site(), c.Template, "GlueCESEBindSEUniqueID")
		if err != nil {
			return err
		}
	}

	binds, err := svc.BindInfo(ctx)
	if err != nil {
		return err
	}
	for _, b := range binds {
		block := template.Render(tmpl, map[string]string{
			"ceUniqueID":   b.CEUniqueID,
			"seUniqueID":   b.SEUniqueID,
			"access_point": b.AccessPoint,
			"mount_point":  b.MountPoint,
		})
		fmt.Println(block)
	}
	return nil
}
