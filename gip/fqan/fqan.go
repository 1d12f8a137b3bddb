// Package fqan normalizes and matches VOMS Fully Qualified Attribute Names.
// FQANs arrive in several spellings (VOMS:<fqan>, VO:<vo>, bare <vo>); the
// canonical form used throughout is /<VO>[/<group>...]/Role=<role>.
package fqan

import "strings"

// Normalize returns the canonical form of an FQAN: optional VOMS:/VO:
// prefixes stripped, a leading slash enforced and /Role=* appended when no
// role is specified.
func Normalize(fqan string) string {
	fqan = strings.TrimPrefix(fqan, "VOMS:")
	fqan = strings.TrimPrefix(fqan, "VO:")
	if !strings.HasPrefix(fqan, "/") {
		fqan = "/" + fqan
	}
	if !strings.Contains(fqan, "Role=") {
		fqan += "/Role=*"
	}
	return fqan
}

// Match reports whether fqan matches the pattern.  The fqan may be more
// specific than the pattern: /cms/blah matches the pattern /cms.  A pattern
// role of * matches any role.
func Match(fqan, pattern string) bool {
	group1, role1 := split(Normalize(fqan))
	group2, role2 := split(Normalize(pattern))
	roleMatches := role2 == "*" || role2 == role1
	groupMatches := strings.HasPrefix(group1, group2)
	return groupMatches && roleMatches
}

func split(fqan string) (group, role string) {
	idx := strings.Index(fqan, "/Role=")
	if idx < 0 {
		return fqan, ""
	}
	return fqan[:idx], fqan[idx+len("/Role="):]
}
