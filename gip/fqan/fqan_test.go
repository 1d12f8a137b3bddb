package fqan

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in  string
		out string
	}{
		{"VOMS:/cms", "/cms/Role=*"},
		{"VO:cms/Role=production", "/cms/Role=production"},
		{"cms", "/cms/Role=*"},
		{"/cms/uscms", "/cms/uscms/Role=*"},
		{"/cms/Role=pilot", "/cms/Role=pilot"},
	}
	for i, tc := range cases {
		if got := Normalize(tc.in); got != tc.out {
			t.Fatalf("case %d: Normalize(%q) = %q, want %q", i, tc.in, got, tc.out)
		}
	}
}

func TestMatch(t *testing.T) {
	cases := []struct {
		fqan    string
		pattern string
		want    bool
	}{
		{"/cms/production/Role=pilot", "/cms/Role=*", true},
		{"/cms/Role=pilot", "/cms/Role=production", false},
		{"/cms/Role=production", "/cms/Role=production", true},
		{"/cms", "/cms/production", false},
		{"VOMS:/atlas/usatlas", "VO:atlas", true},
		{"/dzero", "/cms", false},
	}
	for i, tc := range cases {
		if got := Match(tc.fqan, tc.pattern); got != tc.want {
			t.Fatalf("case %d: Match(%q, %q) = %v, want %v", i, tc.fqan, tc.pattern, got, tc.want)
		}
	}
}
