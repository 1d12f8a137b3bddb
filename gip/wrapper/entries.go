package wrapper

import (
	"strings"
)

// entry is one LDIF block: a dn line plus its attribute lines.  The merge
// steps below work on this textual representation; interpreting GLUE
// attributes is left to the BDII side.
type entry struct {
	dn    string
	attrs []attr
}

type attr struct {
	name  string
	value string
}

// normalizeDN canonicalizes a dn value for comparison: components trimmed
// and lowercased.
func normalizeDN(dn string) string {
	parts := strings.Split(dn, ",")
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, ",")
}

// parseEntries splits LDIF text into entries.  Blocks are separated by
// blank lines; a block without a dn line is dropped.  Comment lines are
// skipped.
func parseEntries(data string) []entry {
	var entries []entry
	var cur *entry
	flush := func() {
		if cur != nil && cur.dn != "" {
			entries = append(entries, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(data, "\n") {
		trimmed := strings.TrimRight(line, "\r")
		if strings.TrimSpace(trimmed) == "" {
			flush()
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "dn:") {
			flush()
			cur = &entry{dn: strings.TrimSpace(trimmed[len("dn:"):])}
			continue
		}
		if cur == nil {
			continue
		}
		name, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		cur.attrs = append(cur.attrs, attr{name: strings.TrimSpace(name), value: strings.TrimSpace(value)})
	}
	flush()
	return entries
}

// serialize renders entries back to LDIF, one blank line between blocks.
func serialize(entries []entry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("dn: ")
		sb.WriteString(e.dn)
		sb.WriteString("\n")
		for _, a := range e.attrs {
			sb.WriteString(a.name)
			sb.WriteString(": ")
			sb.WriteString(a.value)
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// applyProviders implements provider semantics: an incoming entry replaces
// every existing entry with the same DN, new DNs are appended.
func applyProviders(entries, incoming []entry) []entry {
	replaced := make(map[string]bool, len(incoming))
	for _, e := range incoming {
		replaced[normalizeDN(e.dn)] = true
	}
	var out []entry
	for _, e := range entries {
		if replaced[normalizeDN(e.dn)] {
			log.Debugf("removing entry %s", e.dn)
			continue
		}
		out = append(out, e)
	}
	return append(out, incoming...)
}

// applyPlugins implements plugin semantics: attributes of an incoming entry
// overwrite (or extend) the attributes of the existing entry with the same
// DN; entries for unknown DNs are ignored.
func applyPlugins(entries, incoming []entry) []entry {
	byDN := make(map[string][]attr, len(incoming))
	for _, e := range incoming {
		byDN[normalizeDN(e.dn)] = e.attrs
	}
	for i, e := range entries {
		overlay, ok := byDN[normalizeDN(e.dn)]
		if !ok {
			continue
		}
		overridden := make(map[string]bool, len(overlay))
		for _, a := range overlay {
			overridden[a.name] = true
		}
		var kept []attr
		for _, a := range e.attrs {
			if !overridden[a.name] {
				kept = append(kept, a)
			}
		}
		entries[i].attrs = append(kept, overlay...)
	}
	return entries
}

// applyRemovals drops every entry whose DN appears on a non-comment line
// of the remove-attributes file.
func applyRemovals(entries []entry, removals string) []entry {
	remove := make(map[string]bool)
	for _, line := range strings.Split(removals, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		remove[normalizeDN(strings.TrimPrefix(line, "dn:"))] = true
	}
	if len(remove) == 0 {
		return entries
	}
	var out []entry
	for _, e := range entries {
		if remove[normalizeDN(e.dn)] {
			continue
		}
		out = append(out, e)
	}
	return out
}
