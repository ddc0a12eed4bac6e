package id

import (
	"regexp"
	"testing"
)

var rePolicy = regexp.MustCompile(`^POL-[0-9A-F]{32}$`)

func TestNew_Format(t *testing.T) {
	got := New(PrefixPolicy)
	if !rePolicy.MatchString(got) {
		t.Fatalf("unexpected id shape: %q", got)
	}
	if c := New(PrefixClaim); c[:4] != "CLM-" {
		t.Fatalf("claim id prefix: %q", c)
	}
}

func TestNew_Uniqueness(t *testing.T) {
	const n = 200
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		v := New(PrefixClaim)
		if _, ok := seen[v]; ok {
			t.Fatalf("duplicate id after %d iterations: %q", i, v)
		}
		seen[v] = struct{}{}
	}
}
