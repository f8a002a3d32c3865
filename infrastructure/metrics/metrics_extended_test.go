package metrics

import (
	"os"
	"testing"
)

func TestEnabled(t *testing.T) {
	saved := os.Getenv("METRICS_ENABLED")
	defer func() {
		if saved != "" {
			os.Setenv("METRICS_ENABLED", saved)
		} else {
			os.Unsetenv("METRICS_ENABLED")
		}
	}()

	cases := []struct {
		name string
		val  string
		want bool
	}{
		{"unset defaults enabled", "", true},
		{"explicit true", "true", true},
		{"explicit 1", "1", true},
		{"explicit yes", "yes", true},
		{"explicit on", "on", true},
		{"explicit false", "false", false},
		{"explicit 0", "0", false},
		{"explicit no", "no", false},
		{"explicit off", "off", false},
		{"case insensitive", "TRUE", true},
		{"whitespace trimmed", "  true  ", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.val == "" {
				os.Unsetenv("METRICS_ENABLED")
			} else {
				os.Setenv("METRICS_ENABLED", c.val)
			}
			if got := Enabled(); got != c.want {
				t.Errorf("Enabled() with METRICS_ENABLED=%q = %v, want %v", c.val, got, c.want)
			}
		})
	}
}
