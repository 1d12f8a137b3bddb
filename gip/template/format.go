package template

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LDAPBoolean renders a boolean the way LDIF wants it.
func LDAPBoolean(val bool) string {
	if val {
		return "TRUE"
	}
	return "FALSE"
}

// HMSToMin converts a HH:MM:SS duration to whole minutes, rounding the
// seconds.
func HMSToMin(hms string) (int, error) {
	parts := strings.Split(hms, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("not a HH:MM:SS duration: %q", hms)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	return h*60 + m + int(math.Round(float64(s)/60.0)), nil
}

// PathFormatter right-strips slashes from a path; with slash=true it
// instead guarantees exactly the trailing slash some GLUE attributes
// require.
func PathFormatter(path string, slash bool) string {
	if slash {
		if !strings.HasSuffix(path, "/") {
			path += "/"
		}
		return path
	}
	return strings.TrimRight(path, "/")
}

// NotDefined reports whether a value is one of the conventional "no data"
// markers used throughout GLUE attribute sources.
func NotDefined(val string) bool {
	switch strings.ToUpper(val) {
	case "UNAVAILABLE", "UNDEFINED", "UNKNOWN":
		return true
	}
	return false
}

// IsDefined reports whether a value carries real data: non-empty, not
// DEFAULT and not one of the NotDefined markers.
func IsDefined(val string) bool {
	return val != "" && val != "DEFAULT" && !NotDefined(val)
}
