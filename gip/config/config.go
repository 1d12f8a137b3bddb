package config

import (
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

// Site wraps the merged INI configuration of a grid site with accessors that
// never fail on missing sections or options; callers supply the default that
// is returned instead.  The underlying ini.File keeps standard INI semantics:
// last write wins per section/option.
type Site struct {
	file *ini.File
}

// New returns an empty site configuration, mostly useful for tests and for
// programmatic construction.
func New() *Site {
	return &Site{file: ini.Empty()}
}

// A separator is a comma with optional surrounding whitespace, or bare
// whitespace.  The pattern must never match the empty string: regexp.Split
// splits on empty matches at every character boundary.
var listSplit = regexp.MustCompile(`\s*,\s*|\s+`)

// Get returns the value stored under section/option, or def when either is
// absent.  Empty section or option names short-circuit to the default.
func (s *Site) Get(section, option, def string) string {
	if s == nil || s.file == nil || section == "" || option == "" {
		return def
	}
	sec, err := s.file.GetSection(section)
	if err != nil || !sec.HasKey(option) {
		return def
	}
	return sec.Key(option).String()
}

// GetBoolean interprets the stored value leniently: any value containing
// 't', 'y' or '1' (case-insensitive) counts as true, any containing 'f',
// 'n' or '0' as false.  Ambiguous or missing values yield the default.
func (s *Site) GetBoolean(section, option string, def bool) bool {
	val := strings.ToLower(s.Get(section, option, ""))
	if val == "" {
		return def
	}
	if strings.ContainsAny(val, "ty1") {
		return true
	}
	if strings.ContainsAny(val, "fn0") {
		return false
	}
	return def
}

// GetInt parses the stored value as an integer after trimming whitespace;
// any parse failure yields the default.
func (s *Site) GetInt(section, option string, def int) int {
	val := s.Get(section, option, "")
	if val == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return def
	}
	return n
}

// GetList splits the stored value on commas and/or whitespace.  A missing
// option returns a copy of the default so callers may append freely.
func (s *Site) GetList(section, option string, def []string) []string {
	val := s.Get(section, option, "")
	if val == "" {
		return append([]string(nil), def...)
	}
	return SplitList(val)
}

// SplitList splits a comma/whitespace separated value, dropping empty
// elements produced by leading or trailing separators.
func SplitList(val string) []string {
	parts := listSplit.Split(val, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// HasOption reports whether section/option is present.
func (s *Site) HasOption(section, option string) bool {
	if s == nil || s.file == nil {
		return false
	}
	sec, err := s.file.GetSection(section)
	return err == nil && sec.HasKey(option)
}

// Set stores a value, creating the section when necessary.
func (s *Site) Set(section, option, value string) {
	s.file.Section(section).Key(option).SetValue(value)
}

// Sections returns all section names, excluding the implicit INI default
// section.
func (s *Site) Sections() []string {
	if s == nil || s.file == nil {
		return nil
	}
	names := make([]string, 0, len(s.file.Sections()))
	for _, sec := range s.file.Sections() {
		if sec.Name() == ini.DefaultSection {
			continue
		}
		names = append(names, sec.Name())
	}
	return names
}

// Options returns the option names of a section, or nil when the section
// does not exist.
func (s *Site) Options(section string) []string {
	if s == nil || s.file == nil {
		return nil
	}
	sec, err := s.file.GetSection(section)
	if err != nil {
		return nil
	}
	return sec.KeyStrings()
}
