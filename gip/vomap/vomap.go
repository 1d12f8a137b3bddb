// Package vomap loads the flat-text username-to-VO mapping maintained by
// the site authorization tooling and answers VO lookups for local users.
package vomap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/osgrid/gip/gip/config"
)

var log = logrus.WithField("component", "gip.vomap")

// ErrEmptyMap indicates the map file produced no usable entries.
var ErrEmptyMap = errors.New("no users mapped")

// ErrUnknownUser indicates a lookup for a username absent from the map.
var ErrUnknownUser = errors.New("unable to map user")

// Mapper maps local usernames to VO names.  The map file location comes
// from [vo] user_vo_map and falls back to the install-dependent default.
type Mapper struct {
	location string
	voi      []string
	voc      []string
	users    map[string]string
	order    []string
}

// New loads the user-to-VO map for the given site.  Construction fails when
// the file yields no mappings at all; an empty map means every downstream
// record would be unattributable.
func New(ctx context.Context, fs afs.Service, site *config.Site) (*Mapper, error) {
	location := site.Get("vo", "user_vo_map",
		config.VdtDir("$VDT_LOCATION/monitoring/osg-user-vo-map.txt", "/var/lib/osg/user-vo-map"))
	location = os.ExpandEnv(location)
	log.Infof("using user-to-VO map location %s", location)

	m := &Mapper{location: location}
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("read user-vo map %s: %w", location, err)
	}
	m.parse(string(data))
	if len(m.users) == 0 {
		return nil, fmt.Errorf("%w: is %s empty?", ErrEmptyMap, location)
	}
	return m, nil
}

// parse resets the user map from the file contents.  The format is one
// "username vo" pair per line; #voi and #VOc header lines carry ordered VO
// label lists and every other comment or malformed line is skipped.
func (m *Mapper) parse(contents string) {
	m.users = make(map[string]string)
	m.order = nil
	for _, line := range strings.Split(contents, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "#voi"):
			m.voi = strings.Fields(line)[1:]
		case strings.HasPrefix(line, "#VOc"):
			m.voc = strings.Fields(line)[1:]
		case strings.HasPrefix(line, "#"), line == "":
			continue
		default:
			fields := strings.Fields(line)
			if len(fields) != 2 {
				continue
			}
			user, vo := fields[0], fields[1]
			// Historical US naming: uscms/usatlas are the same VOs as
			// cms/atlas on the wire.
			if strings.HasPrefix(vo, "uscms") || strings.HasPrefix(vo, "usatlas") {
				vo = vo[2:]
			}
			if _, ok := m.users[user]; !ok {
				m.order = append(m.order, user)
			}
			m.users[user] = vo
		}
	}
}

// Location returns the resolved map file path.
func (m *Mapper) Location() string { return m.location }

// Lookup returns the VO for a username.
func (m *Mapper) Lookup(username string) (string, error) {
	vo, ok := m.users[username]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownUser, username)
	}
	return vo, nil
}

// Users returns the username-to-VO map.  Callers must treat the returned
// map as read-only.
func (m *Mapper) Users() map[string]string { return m.users }

// VOList derives the distinct VO names known to the mapper, extends them
// with the configured whitelist and removes the configured blacklist.
func VOList(site *config.Site, m *Mapper) []string {
	var vos []string
	seen := make(map[string]bool)
	for _, user := range m.order {
		vo := m.users[user]
		if !seen[vo] {
			seen[vo] = true
			vos = append(vos, vo)
		}
	}
	for _, vo := range site.GetList("vo", "vo_whitelist", nil) {
		if !seen[vo] {
			seen[vo] = true
			vos = append(vos, vo)
		}
	}
	for _, vo := range site.GetList("vo", "vo_blacklist", nil) {
		if seen[vo] {
			delete(seen, vo)
			for i, existing := range vos {
				if existing == vo {
					vos = append(vos[:i], vos[i+1:]...)
					break
				}
			}
		}
	}
	return vos
}
