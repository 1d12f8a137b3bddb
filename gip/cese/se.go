package cese

import (
	"strings"

	"github.com/osgrid/gip/gip/config"
)

// ClassicSEList returns the site's classic (legacy GridFTP) SE as a
// singleton list, or an empty list when [classic_se] advertise_se is off.
// Without an explicit unique_name the ID is synthesized from the site
// identity.
func ClassicSEList(site *config.Site) []string {
	if !site.GetBoolean("classic_se", "advertise_se", true) {
		return nil
	}
	if name := site.Get("classic_se", "unique_name", ""); name != "" {
		return []string{name}
	}
	siteID := site.Get("site", "unique_name", "UNKNOWN")
	return []string{siteID + "_classicSE"}
}

// SEList returns the SE unique IDs of the site.  [cesebind] simple selects
// between scanning the se* config sections and reading the explicit
// [cesebind] se_list value; a missing explicit list falls back to the scan.
// Duplicates collapse and the result order is unspecified.
func SEList(site *config.Site, includeClassic bool) []string {
	var seList []string
	if site.GetBoolean("cesebind", "simple", true) {
		seList = simpleSEList(site)
	} else if site.HasOption("cesebind", "se_list") {
		seList = site.GetList("cesebind", "se_list", nil)
	} else {
		seList = simpleSEList(site)
	}
	if includeClassic {
		seList = append(seList, ClassicSEList(site)...)
	}
	return dedup(seList)
}

// simpleSEList collects unique_name from every advertised SE section.  The
// literal [se] section is handled on its own before the se* scan, which
// skips it; this mirrors how site configs historically declared a primary
// SE plus numbered se_* sections.
func simpleSEList(site *config.Site) []string {
	var seList []string
	if site.GetBoolean("se", "advertise_se", true) {
		if name := site.Get("se", "unique_name", ""); name != "" {
			seList = append(seList, name)
		}
	}
	for _, sect := range site.Sections() {
		if !isSESection(sect) {
			continue
		}
		if !site.GetBoolean(sect, "advertise_se", true) {
			continue
		}
		if name := site.Get(sect, "unique_name", ""); name != "" {
			seList = append(seList, name)
		}
	}
	return seList
}

// SESections maps each non-classic SE unique ID back to the config section
// declaring it, under the same filter as the simple SE scan.
func SESections(site *config.Site) map[string]string {
	seMap := make(map[string]string)
	for _, sect := range site.Sections() {
		if !isSESection(sect) {
			continue
		}
		if !site.GetBoolean(sect, "advertise_se", true) {
			continue
		}
		if name := site.Get(sect, "unique_name", ""); name != "" {
			seMap[name] = sect
		}
	}
	return seMap
}

func isSESection(sect string) bool {
	lower := strings.ToLower(sect)
	return strings.HasPrefix(lower, "se") && lower != "se"
}

func dedup(list []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range list {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
