package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/osgrid/gip/gip/config"
)

// pbsSystem lists queues via `qstat -Q`; the first column of every
// non-header row is a queue name.
type pbsSystem struct {
	runner Runner
}

func (s *pbsSystem) Name() string { return "pbs" }

func (s *pbsSystem) QueueList(ctx context.Context) ([]string, error) {
	out, err := s.runner.Output(ctx, Command{Name: "qstat", Args: []string{"-Q"}})
	if err != nil {
		return nil, fmt.Errorf("pbs queue query: %w", err)
	}
	var queues []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "Queue" || strings.HasPrefix(fields[0], "---") {
			continue
		}
		queues = append(queues, fields[0])
	}
	return uniqueNonEmpty(queues), nil
}

// lsfSystem lists queues via `bqueues -w`.  LSF installs keep their tools
// outside the default PATH; the profile directory from [lsf] lsf_location
// is handed to the child process instead of mutating our own environment.
type lsfSystem struct {
	site   *config.Site
	runner Runner
}

func (s *lsfSystem) Name() string { return "lsf" }

func (s *lsfSystem) QueueList(ctx context.Context) ([]string, error) {
	cmd := Command{Name: "bqueues", Args: []string{"-w"}, ExtraPath: s.extraPath()}
	out, err := s.runner.Output(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("lsf queue query: %w", err)
	}
	var queues []string
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "QUEUE_NAME" {
			continue
		}
		queues = append(queues, fields[0])
	}
	return uniqueNonEmpty(queues), nil
}

func (s *lsfSystem) extraPath() []string {
	location := s.site.Get("lsf", "lsf_location", "")
	if location == "" {
		return nil
	}
	return []string{filepath.Join(os.ExpandEnv(location), "bin")}
}

// condorSystem treats accounting groups as queues.  Sites without group
// quotas advertise the single "default" queue.
type condorSystem struct {
	runner Runner
}

func (s *condorSystem) Name() string { return "condor" }

func (s *condorSystem) QueueList(ctx context.Context) ([]string, error) {
	queues := []string{"default"}
	cmd := Command{Name: "condor_config_val", Args: []string{"-expand", "GROUP_NAMES"}}
	out, err := s.runner.Output(ctx, cmd)
	if err != nil {
		// Groups are optional; a condor pool without GROUP_NAMES still has
		// its default queue.
		return queues, nil
	}
	queues = append(queues, config.SplitList(strings.TrimSpace(string(out)))...)
	return uniqueNonEmpty(queues), nil
}

// slurmSystem lists partitions via `sinfo -h -o %P`; the default partition
// carries a trailing asterisk which is not part of its name.
type slurmSystem struct {
	runner Runner
}

func (s *slurmSystem) Name() string { return "slurm" }

func (s *slurmSystem) QueueList(ctx context.Context) ([]string, error) {
	cmd := Command{Name: "sinfo", Args: []string{"-h", "-o", "%P"}}
	out, err := s.runner.Output(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("slurm partition query: %w", err)
	}
	var queues []string
	for _, line := range strings.Split(string(out), "\n") {
		queues = append(queues, strings.TrimSuffix(strings.TrimSpace(line), "*"))
	}
	return uniqueNonEmpty(queues), nil
}

// sgeSystem lists queues via `qconf -sql`, one name per line.  SGE needs
// both its cell binaries and any site-specific tool directory on the
// child's PATH ([sge] sge_root, [sge] sge_path).
type sgeSystem struct {
	site   *config.Site
	runner Runner
}

func (s *sgeSystem) Name() string { return "sge" }

func (s *sgeSystem) QueueList(ctx context.Context) ([]string, error) {
	cmd := Command{Name: "qconf", Args: []string{"-sql"}, ExtraPath: s.extraPath()}
	out, err := s.runner.Output(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("sge queue query: %w", err)
	}
	return uniqueNonEmpty(strings.Split(string(out), "\n")), nil
}

func (s *sgeSystem) extraPath() []string {
	var extra []string
	if root := s.site.Get("sge", "sge_root", ""); root != "" {
		extra = append(extra, filepath.Join(os.ExpandEnv(root), "bin"))
	}
	if path := s.site.Get("sge", "sge_path", ""); path != "" {
		extra = append(extra, os.ExpandEnv(path))
	}
	return extra
}
