package gip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osgrid/gip/gip/batch"
	"github.com/osgrid/gip/gip/config"
)

func TestNewWithConfigAndTestingRunner(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "qstat"), []byte(
		"Queue              Max    Tot   Ena   Str   Que   Run   Hld   Wat   Trn   Ext T\n"+
			"----------------ataa\n"+
			"cms                  0     12   yes   yes     2    10     0     0     0     0 E\n"+
			"atlas                0      3   yes   yes     1     2     0     0     0     0 E\n"), 0o644))

	site := config.New()
	site.Set("ce", "job_manager", "pbs")
	site.Set("ce", "name", "red.unl.edu")

	t.Setenv("GIP_TESTING", dir)
	svc, err := New(context.Background(), WithConfig(site))
	require.NoError(t, err)

	_, isFile := svc.Runner().(batch.FileRunner)
	assert.True(t, isFile, "GIP_TESTING selects the file-backed runner")

	queues, err := svc.QueueList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cms", "atlas"}, queues)

	ces, err := svc.CEList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"red.unl.edu:2119/jobmanager-pbs-cms",
		"red.unl.edu:2119/jobmanager-pbs-atlas",
	}, ces)
}

func TestNewUnknownJobManager(t *testing.T) {
	site := config.New()
	site.Set("ce", "job_manager", "crays")

	svc, err := New(context.Background(), WithConfig(site), WithRunner(batch.ExecRunner{}))
	require.NoError(t, err)

	_, err = svc.System(context.Background())
	assert.True(t, errors.Is(err, batch.ErrUnknownJobManager))
}

func TestNewBadLogLevel(t *testing.T) {
	site := config.New()
	site.Set("gip", "log_level", "chatty")

	_, err := New(context.Background(), WithConfig(site))
	assert.Error(t, err)
}

func TestVOListThroughService(t *testing.T) {
	mapFile := filepath.Join(t.TempDir(), "user-vo-map.txt")
	require.NoError(t, os.WriteFile(mapFile, []byte(
		"#voi cms atlas\n#VOc CMS ATLAS\nuscms01 uscms\nusatlas1 usatlas\n"), 0o644))

	site := config.New()
	site.Set("vo", "user_vo_map", mapFile)
	site.Set("vo", "vo_whitelist", "ops")
	site.Set("vo", "vo_blacklist", "atlas")

	svc, err := New(context.Background(), WithConfig(site))
	require.NoError(t, err)

	vos, err := svc.VOList(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cms", "ops"}, vos)
}
