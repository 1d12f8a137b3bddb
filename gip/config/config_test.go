package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestGetDefaults(t *testing.T) {
	site := New()
	site.Set("site", "name", "RED")

	assert.Equal(t, "RED", site.Get("site", "name", "fallback"))
	assert.Equal(t, "fallback", site.Get("site", "missing", "fallback"))
	assert.Equal(t, "fallback", site.Get("nosection", "name", "fallback"))
	assert.Equal(t, "fallback", site.Get("", "name", "fallback"))
	assert.Equal(t, "fallback", site.Get("site", "", "fallback"))
}

func TestGetBoolean(t *testing.T) {
	cases := []struct {
		value string
		def   bool
		want  bool
	}{
		{"True", false, true},
		{"yes", false, true},
		{"1", false, true},
		{"Y", false, true},
		{"False", true, false},
		{"no", true, false},
		{"0", true, false},
		{"perhaps", true, true},
		{"perhaps", false, false},
	}
	for _, tc := range cases {
		site := New()
		site.Set("ce", "enabled", tc.value)
		assert.Equalf(t, tc.want, site.GetBoolean("ce", "enabled", tc.def),
			"value %q default %v", tc.value, tc.def)
	}

	site := New()
	assert.True(t, site.GetBoolean("ce", "enabled", true))
	assert.False(t, site.GetBoolean("ce", "enabled", false))
}

func TestGetInt(t *testing.T) {
	site := New()
	site.Set("gip", "freshness", " 300 ")
	site.Set("gip", "bogus", "three hundred")

	assert.Equal(t, 300, site.GetInt("gip", "freshness", 42))
	assert.Equal(t, 42, site.GetInt("gip", "bogus", 42))
	assert.Equal(t, 42, site.GetInt("gip", "missing", 42))
}

func TestSplitList(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"cms", []string{"cms"}},
		{"cms, atlas,dzero ops", []string{"cms", "atlas", "dzero", "ops"}},
		{" cms , atlas, ", []string{"cms", "atlas"}},
		{"group_cms, group_atlas", []string{"group_cms", "group_atlas"}},
		{"", nil},
	}
	for _, tc := range cases {
		got := SplitList(tc.in)
		if tc.want == nil {
			assert.Empty(t, got, "input %q", tc.in)
			continue
		}
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestGetList(t *testing.T) {
	site := New()
	site.Set("vo", "vo_blacklist", "cms, atlas,dzero ops")

	assert.Equal(t, []string{"cms", "atlas", "dzero", "ops"},
		site.GetList("vo", "vo_blacklist", nil))

	def := []string{"a", "b"}
	got := site.GetList("vo", "missing", def)
	assert.Equal(t, def, got)
	got[0] = "mutated"
	assert.Equal(t, "a", def[0], "default must be copied")
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "10-base.ini")
	over := filepath.Join(dir, "20-local.ini")
	require.NoError(t, os.WriteFile(base, []byte("[site]\nname = RED\ncity = Lincoln\n"), 0644))
	require.NoError(t, os.WriteFile(over, []byte("[site]\nname = RED-ITB\n"), 0644))

	site, err := Load(context.Background(), afs.New(), base, over, filepath.Join(dir, "missing.ini"))
	require.NoError(t, err)

	assert.Equal(t, "RED-ITB", site.Get("site", "name", ""))
	assert.Equal(t, "Lincoln", site.Get("site", "city", ""))
}

func TestDump(t *testing.T) {
	site := New()
	site.Set("site", "name", "RED")
	site.Set("ce", "job_manager", "pbs")

	var sb strings.Builder
	require.NoError(t, site.Dump(&sb))
	out := sb.String()
	assert.Contains(t, out, "site:")
	assert.Contains(t, out, "name: RED")
	assert.Contains(t, out, "job_manager: pbs")
}

func TestPickDir(t *testing.T) {
	t.Setenv("GIP_LOCATION", "/opt/gip")
	assert.Equal(t, "$GIP_LOCATION/etc", GipDir("$GIP_LOCATION/etc", "/etc/gip"))

	os.Unsetenv("GIP_LOCATION")
	assert.Equal(t, "/etc/gip", GipDir("$GIP_LOCATION/etc", "/etc/gip"))
}
