package wrapper

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/config"
)

func testSite(t *testing.T) (*config.Site, Dirs) {
	t.Helper()
	root := t.TempDir()
	dirs := Dirs{
		Temp:     filepath.Join(root, "tmp"),
		Plugin:   filepath.Join(root, "plugins"),
		Provider: filepath.Join(root, "providers"),
		Static:   filepath.Join(root, "ldif"),
	}
	site := config.New()
	site.Set("gip", "temp_dir", dirs.Temp)
	site.Set("gip", "plugin_dir", dirs.Plugin)
	site.Set("gip", "provider_dir", dirs.Provider)
	site.Set("gip", "static_dir", dirs.Static)
	site.Set("gip", "add_attributes", filepath.Join(root, "add-attributes.conf"))
	site.Set("gip", "alter_attributes", filepath.Join(root, "alter-attributes.conf"))
	site.Set("gip", "remove_attributes", filepath.Join(root, "remove-attributes.conf"))
	return site, dirs
}

func writeScript(t *testing.T, dir, name, ldif string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	script := "#!/bin/sh\ncat <<'EOF'\n" + ldif + "EOF\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func writeStatic(t *testing.T, dir, name, ldif string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(ldif), 0o644))
}

func TestCollectMergesProvidersAndPlugins(t *testing.T) {
	site, dirs := testSite(t)
	fs := afs.New()

	writeStatic(t, dirs.Static, "ce.ldif", `dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-cms, mds-vo-name=local, o=grid
GlueCEName: cms
GlueCEStateStatus: Production
GlueCEStateFreeCPUs: 0
`)
	writeScript(t, dirs.Provider, "se_provider", `dn: GlueSEUniqueID=srm.unl.edu, mds-vo-name=local, o=grid
GlueSEName: T2_Nebraska
`)
	writeScript(t, dirs.Plugin, "pbs_plugin", `dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-cms, mds-vo-name=local, o=grid
GlueCEStateFreeCPUs: 34
`)

	var buf bytes.Buffer
	require.NoError(t, Collect(context.Background(), fs, site, &buf))
	out := buf.String()

	assert.Contains(t, out, "GlueSEName: T2_Nebraska")
	assert.Contains(t, out, "GlueCEStateFreeCPUs: 34")
	assert.NotContains(t, out, "GlueCEStateFreeCPUs: 0")
	// the plugin only touched one attribute, the rest of the entry survives
	assert.Contains(t, out, "GlueCEStateStatus: Production")
}

func TestCollectUsesCache(t *testing.T) {
	site, dirs := testSite(t)
	fs := afs.New()

	writeScript(t, dirs.Provider, "se_provider", `dn: GlueSEUniqueID=srm.unl.edu, mds-vo-name=local, o=grid
GlueSEName: first_run
`)

	var buf bytes.Buffer
	require.NoError(t, Collect(context.Background(), fs, site, &buf))
	assert.Contains(t, buf.String(), "GlueSEName: first_run")

	// same checksum, so the cached output wins over a new run
	modules, err := listModules(context.Background(), fs, dirs.Provider)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	modules[0].output = ""
	modules[0].cached = false
	checkCache(context.Background(), fs, modules, dirs.Temp, 5*time.Minute)
	assert.True(t, modules[0].cached)
	assert.Contains(t, modules[0].output, "first_run")
}

func TestCollectAttributeFiles(t *testing.T) {
	site, dirs := testSite(t)
	fs := afs.New()

	writeStatic(t, dirs.Static, "ce.ldif", `dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-cms, mds-vo-name=local, o=grid
GlueCEName: cms
GlueCEStateStatus: Production

dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-old, mds-vo-name=local, o=grid
GlueCEName: old
`)
	require.NoError(t, os.WriteFile(site.Get("gip", "alter_attributes", ""), []byte(`dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-cms, mds-vo-name=local, o=grid
GlueCEStateStatus: Draining
`), 0o644))
	require.NoError(t, os.WriteFile(site.Get("gip", "remove_attributes", ""), []byte(`dn: GlueCEUniqueID=red.unl.edu:2119/jobmanager-pbs-old, mds-vo-name=local, o=grid
`), 0o644))

	var buf bytes.Buffer
	require.NoError(t, Collect(context.Background(), fs, site, &buf))
	out := buf.String()

	assert.Contains(t, out, "GlueCEStateStatus: Draining")
	assert.NotContains(t, out, "GlueCEName: old")
}

func TestFlushCache(t *testing.T) {
	_, dirs := testSite(t)
	fs := afs.New()
	require.NoError(t, os.MkdirAll(dirs.Temp, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Temp, "stale.ldif.abc"), []byte("x"), 0o644))

	flushCache(context.Background(), fs, dirs.Temp)

	_, err := os.Stat(filepath.Join(dirs.Temp, "stale.ldif.abc"))
	assert.True(t, os.IsNotExist(err))
}

func TestDirsFromConfigDefaults(t *testing.T) {
	t.Setenv("GIP_LOCATION", "/opt/gip")
	dirs := DirsFromConfig(config.New())
	assert.Equal(t, "/opt/gip/var/tmp", dirs.Temp)
	assert.Equal(t, "/opt/gip/providers", dirs.Provider)
}
