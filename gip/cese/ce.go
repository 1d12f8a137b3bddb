// Package cese derives the compute-element and storage-element identifiers
// a site advertises and cross-joins them into CESE bind records.  All lists
// are built fresh per invocation from the site configuration; nothing here
// holds state.
package cese

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/osgrid/gip/gip/batch"
	"github.com/osgrid/gip/gip/config"
)

var log = logrus.WithField("component", "gip.cese")

// CEList returns the CE unique IDs of the site, one per (hostname, queue)
// pair in the form hostname:port/prefix-jobmanager-queue.  Hostnames are
// the configured [ce] name plus any extras; queues come from the site's
// batch system.  Prefix and port follow the enabled CE flavor: jobmanager
// on 2119 for plain GRAM, cream on 8443, htcondorce on its collector port.
func CEList(ctx context.Context, site *config.Site, sys batch.System, r batch.Runner, extraCEs ...string) ([]string, error) {
	jobManager := sys.Name()

	var hostnames []string
	if name := site.Get("ce", "name", ""); name != "" {
		hostnames = append(hostnames, name)
	}
	hostnames = append(hostnames, extraCEs...)

	prefix := "jobmanager"
	port := 2119
	if site.GetBoolean("cream", "enabled", false) {
		prefix = "cream"
		port = 8443
	}
	if site.GetBoolean("htcondorce", "enabled", false) {
		prefix = "htcondorce"
		port = htcondorCEPort(ctx, r)
	}

	queues, err := sys.QueueList(ctx)
	if err != nil {
		return nil, fmt.Errorf("queue list for %s: %w", jobManager, err)
	}

	var ceList []string
	for _, queue := range queues {
		for _, hostname := range hostnames {
			ceList = append(ceList, fmt.Sprintf("%s:%d/%s-%s-%s",
				hostname, port, prefix, jobManager, queue))
		}
	}
	return ceList, nil
}
