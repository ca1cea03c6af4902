package version

import (
	"fmt"
	"strings"
	"testing"
)

func TestFull(t *testing.T) {
	full := Full()

	for _, part := range []string{Version, Commit, BuildDate} {
		if !strings.Contains(full, part) {
			t.Errorf("Full() = %q, want to contain %q", full, part)
		}
	}
}

func TestFullFormat(t *testing.T) {
	orig := [3]string{Version, Commit, BuildDate}
	defer func() { Version, Commit, BuildDate = orig[0], orig[1], orig[2] }()

	Version, Commit, BuildDate = "1.2.0", "abc1234", "2024-05-01"

	expected := fmt.Sprintf("%s (commit: %s, built: %s)", "1.2.0", "abc1234", "2024-05-01")
	if got := Full(); got != expected {
		t.Errorf("Full() = %q, want %q", got, expected)
	}
}
