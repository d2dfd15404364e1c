package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list", "--variant", "2048_mini")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	for _, id := range []string{"2048", "2048_mini", "2048_large", "2048_huge"} {
		if !strings.Contains(out, id) {
			t.Errorf("list output missing %q:\n%s", id, out)
		}
	}
	if !strings.Contains(out, "2048 Mini (3x3) (default)") {
		t.Errorf("--variant should mark the default:\n%s", out)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	if _, err := execute(t, "list", "--seed", "42", "--auto-reset=false", "--log-level", "debug"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if appConfig.Game.Seed != 42 {
		t.Errorf("seed = %d, want 42", appConfig.Game.Seed)
	}
	if appConfig.Game.AutoReset {
		t.Error("auto reset should be off")
	}
	if appConfig.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", appConfig.Log.Level)
	}

	r := rules(80, 24)
	if r.Seed != 42 || r.AutoReset || r.Spawn4 != 0.10 {
		t.Errorf("rules = %+v", r)
	}
	if r := rules(0, 0); r.ScreenW != 80 || r.ScreenH != 24 || r.Seed != 42 {
		t.Errorf("rules without a terminal size = %+v, want the 80x24 default", r)
	}
}

func TestPlayUnknownVariant(t *testing.T) {
	_, err := execute(t, "play", "2048_tiny", "--log-level", "info")
	if err == nil || !strings.Contains(err.Error(), "unknown variant") {
		t.Errorf("got %v, want unknown variant error", err)
	}
}

// Runs last: cobra keeps flag values between executions.
func TestInvalidLogLevel(t *testing.T) {
	if _, err := execute(t, "list", "--log-level", "loud"); err == nil {
		t.Error("unknown log level should fail")
	}
}
