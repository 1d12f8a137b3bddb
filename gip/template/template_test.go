package template

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/config"
)

const bindTemplate = `dn: GlueCESEBindGroupCEUniqueID=%(ceUniqueID)s,mds-vo-name=local,o=grid
objectClass: GlueCESEBindGroup
GlueCESEBindGroupCEUniqueID: %(ceUniqueID)s

dn: GlueCESEBindSEUniqueID=%(seUniqueID)s,mds-vo-name=local,o=grid
objectClass: GlueCESEBind
GlueCESEBindSEUniqueID: %(seUniqueID)s
GlueCESEBindCEAccessPoint: %(access_point)s%(mount_point)s
GlueCESEBindCEUniqueID: %(ceUniqueID)s

`

func writeTemplate(t *testing.T) *config.Site {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "GlueCESEBind.template"), []byte(bindTemplate), 0644))
	site := config.New()
	site.Set("gip", "local_template_dirs", dir)
	return site
}

func TestGetExtractsBlock(t *testing.T) {
	site := writeTemplate(t)
	tmpl, err := Get(context.Background(), afs.New(), site,
		"GlueCESEBind.template", "GlueCESEBindSEUniqueID=%(seUniqueID)s")
	require.NoError(t, err)

	assert.Contains(t, tmpl, "objectClass: GlueCESEBind")
	assert.Contains(t, tmpl, "GlueCESEBindCEUniqueID: %(ceUniqueID)s")
	assert.NotContains(t, tmpl, "GlueCESEBindGroup\n", "only the requested block is returned")
}

func TestGetUnknownEntry(t *testing.T) {
	site := writeTemplate(t)
	_, err := Get(context.Background(), afs.New(), site, "GlueCESEBind.template", "GlueNoSuchEntry")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMissingFile(t *testing.T) {
	site := config.New()
	site.Set("gip", "local_template_dirs", t.TempDir())
	_, err := Get(context.Background(), afs.New(), site, "nope.template", "dn")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRender(t *testing.T) {
	out := Render("name: %(name)s\nextra: %(extra)s\nport: %(port)s",
		map[string]string{"name": "red.unl.edu", "port": "2119"})

	assert.Equal(t, "name: red.unl.edu\nport: 2119", out,
		"lines with unresolved placeholders are dropped")
}

func TestRenderDeleteMarker(t *testing.T) {
	out := Render("keep: 1\ndrop: %(gone)s", map[string]string{"gone": DeleteMarker})
	assert.Equal(t, "keep: 1", out)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "TRUE", LDAPBoolean(true))
	assert.Equal(t, "FALSE", LDAPBoolean(false))

	min, err := HMSToMin("02:30:45")
	require.NoError(t, err)
	assert.Equal(t, 151, min)

	_, err = HMSToMin("90m")
	assert.Error(t, err)

	assert.Equal(t, "/data", PathFormatter("/data///", false))
	assert.Equal(t, "/data/", PathFormatter("/data", true))

	assert.True(t, NotDefined("unknown"))
	assert.False(t, IsDefined("UNAVAILABLE"))
	assert.False(t, IsDefined("DEFAULT"))
	assert.True(t, IsDefined("/store"))
}
