package cese

import (
	"context"
	"fmt"

	"github.com/osgrid/gip/gip/batch"
	"github.com/osgrid/gip/gip/config"
)

// Bind associates one CE with one SE together with the access metadata a
// GLUE CESEBind entry needs.  MountPoint is either empty or a complete,
// newline-prefixed LDIF attribute line ready for template substitution.
type Bind struct {
	CEUniqueID  string
	SEUniqueID  string
	AccessPoint string
	MountPoint  string
}

// BindInfo cross-joins every SE (classic ones included) with every CE and
// returns one bind record per pair; len(result) is always |SEs| * |CEs|.
// Classic SEs use the [osg_dirs] data path as their access point, every
// other SE the site's default storage path.
func BindInfo(ctx context.Context, site *config.Site, sys batch.System, r batch.Runner) ([]Bind, error) {
	ceList, err := CEList(ctx, site, sys, r)
	if err != nil {
		return nil, err
	}
	seList := SEList(site, false)
	classicList := ClassicSEList(site)
	seList = append(seList, classicList...)

	classic := make(map[string]bool, len(classicList))
	for _, se := range classicList {
		classic[se] = true
	}
	sectionMap := SESections(site)

	accessPoint := site.Get("storage", "default_path", "")
	if accessPoint == "" {
		accessPoint = "/"
	}
	classicAccessPoint := site.Get("osg_dirs", "data", "/")

	var binds []Bind
	for _, se := range seList {
		mountPoint := ""
		if sect, ok := sectionMap[se]; ok {
			if mp := site.Get(sect, "mount_point", ""); mp != "" {
				// The leading newline keeps the attribute off the previous
				// template line.
				mountPoint = fmt.Sprintf("\nGlueCESEBindMountInfo: %s", mp)
			}
		}
		ap := accessPoint
		if classic[se] {
			ap = classicAccessPoint
		}
		for _, ce := range ceList {
			binds = append(binds, Bind{
				CEUniqueID:  ce,
				SEUniqueID:  se,
				AccessPoint: ap,
				MountPoint:  mountPoint,
			})
		}
	}
	return binds, nil
}
