package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "stationkit" {
		t.Errorf("CLIName() = %q, want %q", got, "stationkit")
	}
	if got := EnvPrefix(); got != "STATIONKIT" {
		t.Errorf("EnvPrefix() = %q, want %q", got, "STATIONKIT")
	}
	if got := ConfigFile(); got != ".stationkit.yaml" {
		t.Errorf("ConfigFile() = %q, want %q", got, ".stationkit.yaml")
	}
}

func TestEnvVar(t *testing.T) {
	tests := []struct {
		suffix string
		want   string
	}{
		{"root", "STATIONKIT_ROOT"},
		{"ASSETS_DIR", "STATIONKIT_ASSETS_DIR"},
		{"log_level", "STATIONKIT_LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.suffix, func(t *testing.T) {
			if got := EnvVar(tt.suffix); got != tt.want {
				t.Errorf("EnvVar(%q) = %q, want %q", tt.suffix, got, tt.want)
			}
		})
	}
}
