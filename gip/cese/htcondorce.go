package cese

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/osgrid/gip/gip/batch"
)

const defaultHTCondorCEPort = 9619

var (
	bracketedPort = regexp.MustCompile(`\]:(\d+)$`)
	trailingPort  = regexp.MustCompile(`:(\d+)$`)
)

// condorCEConfigVal returns the expanded value of an HTCondor-CE
// configuration variable, or ok=false when the variable is undefined or the
// probe fails.  A failed probe is "value unavailable", never an error.
func condorCEConfigVal(ctx context.Context, r batch.Runner, variable string) (string, bool) {
	out, err := r.Output(ctx, batch.Command{
		Name: "condor_ce_config_val",
		Args: []string{"-expand", variable},
	})
	if err != nil {
		log.Debugf("condor_ce_config_val %s unavailable: %v", variable, err)
		return "", false
	}
	return strings.TrimSpace(string(out)), true
}

// htcondorCEPort determines the port condor-ce listens on from its own
// configuration: a port suffix on COLLECTOR_HOST wins, then COLLECTOR_PORT,
// then the stock 9619.
func htcondorCEPort(ctx context.Context, r batch.Runner) int {
	if host, ok := condorCEConfigVal(ctx, r, "COLLECTOR_HOST"); ok && host != "" {
		var match []string
		if strings.Count(host, ":") > 1 {
			// ipv6 address; a port is only unambiguous on the bracketed
			// form [ADDR]:PORT
			match = bracketedPort.FindStringSubmatch(host)
		} else {
			match = trailingPort.FindStringSubmatch(host)
		}
		if match != nil {
			if port, err := strconv.Atoi(match[1]); err == nil {
				return port
			}
		}
	}
	if val, ok := condorCEConfigVal(ctx, r, "COLLECTOR_PORT"); ok {
		if port, err := strconv.Atoi(val); err == nil {
			return port
		}
	}
	return defaultHTCondorCEPort
}
