package batch

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Command describes one external query invocation.  ExtraPath entries are
// prepended to the PATH of the child process only; the parent environment is
// never mutated.
type Command struct {
	Name      string
	Args      []string
	ExtraPath []string
}

// Runner executes external batch-system commands and captures their
// standard output.  The indirection keeps every queue lister testable and
// lets GIP_TESTING installs replay canned output instead of touching a real
// scheduler.
type Runner interface {
	Output(ctx context.Context, cmd Command) ([]byte, error)
}

// ExecRunner runs commands on the local host.
type ExecRunner struct{}

// Output runs the command and returns its stdout.  Stderr is logged at
// warning level, except for the condor "Not defined:" probe responses which
// are an expected part of config-val lookups.
func (ExecRunner) Output(ctx context.Context, cmd Command) ([]byte, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	if len(cmd.ExtraPath) > 0 {
		c.Env = envWithPath(os.Environ(), cmd.ExtraPath)
	}
	var stderr strings.Builder
	c.Stderr = &stderr
	out, err := c.Output()
	if msg := strings.TrimSpace(stderr.String()); msg != "" && !strings.HasPrefix(msg, "Not defined:") {
		log.Warnf("%s reported: %s", cmd.Name, msg)
	}
	return out, err
}

// envWithPath rewrites the PATH entry of env, prepending the extra
// directories it does not already carry.  Existing entries keep their
// order; duplicates are dropped.
func envWithPath(env, extra []string) []string {
	var base string
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			base = strings.TrimPrefix(kv, "PATH=")
		}
	}
	existing := filepath.SplitList(base)
	onPath := make(map[string]bool, len(existing))
	for _, e := range existing {
		onPath[e] = true
	}
	seen := make(map[string]bool)
	var unique []string
	add := func(e string) {
		if e == "" || seen[e] {
			return
		}
		seen[e] = true
		unique = append(unique, e)
	}
	for _, e := range extra {
		if !onPath[e] {
			add(e)
		}
	}
	for _, e := range existing {
		add(e)
	}
	newPath := "PATH=" + strings.Join(unique, string(os.PathListSeparator))
	out := make([]string, 0, len(env)+1)
	replaced := false
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			out = append(out, newPath)
			replaced = true
			continue
		}
		out = append(out, kv)
	}
	if !replaced {
		out = append(out, newPath)
	}
	return out
}

// FileRunner replays command output from files named after the command
// base name.  It backs the GIP_TESTING mode, which lets a laptop without
// any scheduler installed exercise the full provider pipeline.
type FileRunner struct {
	Dir string
	FS  afs.Service
}

func (r FileRunner) Output(ctx context.Context, cmd Command) ([]byte, error) {
	fs := r.FS
	if fs == nil {
		fs = afs.New()
	}
	return fs.DownloadWithURL(ctx, filepath.Join(r.Dir, filepath.Base(cmd.Name)))
}
