package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rupor-github/gencfg"

	"bbld/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}

	if cfg.Bulletin.Postprocess.Profile != common.ProfileEmail {
		t.Errorf("Default profile = %v, want email", cfg.Bulletin.Postprocess.Profile)
	}

	if cfg.Bulletin.Theme.Primary != "#103040" {
		t.Errorf("Default primary color = %q, want #103040", cfg.Bulletin.Theme.Primary)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
bulletin:
  title: "LACC Weekly"
  theme:
    primary: "#204060"
    on_primary: "#f0f0f0"
  postprocess:
    profile: frontsteps
    side_padding: 24
    convert_avif: false
    minify: true
  images:
    optimize: false
    max_width: 800
    jpeg_quality_level: 90
    resize: stretch
logging:
  console:
    level: normal
  file:
    level: debug
    destination: /tmp/test.log
    mode: append
reporting:
  destination: /tmp/test-report.zip
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}

	if cfg.Bulletin.Title != "LACC Weekly" {
		t.Errorf("Title = %q, want LACC Weekly", cfg.Bulletin.Title)
	}

	if cfg.Bulletin.Theme.Primary != "#204060" {
		t.Errorf("Primary = %q, want #204060", cfg.Bulletin.Theme.Primary)
	}

	if cfg.Bulletin.Postprocess.Profile != common.ProfileFrontsteps {
		t.Errorf("Profile = %v, want frontsteps", cfg.Bulletin.Postprocess.Profile)
	}

	if cfg.Bulletin.Postprocess.SidePadding != 24 {
		t.Errorf("SidePadding = %d, want 24", cfg.Bulletin.Postprocess.SidePadding)
	}

	if cfg.Bulletin.Postprocess.ConvertAVIF {
		t.Error("Expected ConvertAVIF to be false")
	}

	if !cfg.Bulletin.Postprocess.Minify {
		t.Error("Expected Minify to be true")
	}

	if cfg.Bulletin.Images.MaxWidth != 800 {
		t.Errorf("MaxWidth = %d, want 800", cfg.Bulletin.Images.MaxWidth)
	}

	if cfg.Bulletin.Images.Resize != common.ImageResizeModeStretch {
		t.Errorf("Resize = %v, want stretch", cfg.Bulletin.Images.Resize)
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
bulletin:
  title: test
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
bulletin:
  title: test
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid version", "version: 2\n"},
		{"bad primary color", `version: 1
bulletin:
  theme:
    primary: "not-a-color"
`},
		{"side padding out of range", `version: 1
bulletin:
  postprocess:
    side_padding: 500
`},
		{"jpeg quality too low", `version: 1
bulletin:
  images:
    jpeg_quality_level: 10
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg := &Config{
		Version: 1,
		Bulletin: BulletinConfig{
			Title: "Test Bulletin",
			Theme: ThemeConfig{
				Primary:   "#103040",
				OnPrimary: "#ffffff",
			},
			Postprocess: PostprocessConfig{
				Profile:     common.ProfileWeb,
				SidePadding: 16,
				ConvertAVIF: true,
			},
			Images: ImagesConfig{
				Optimize:    true,
				MaxWidth:    600,
				JPEGQuality: 85,
				Resize:      common.ImageResizeModeKeepAR,
			},
		},
	}

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Errorf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}

	if cfg2.Bulletin.Postprocess.Profile != common.ProfileWeb {
		t.Errorf("Profile mismatch after dump/load: got %v, want web", cfg2.Bulletin.Postprocess.Profile)
	}
}

func TestLoadConfiguration_MergeWithDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	// Partial config that only overrides some values
	partialConfig := `version: 1
bulletin:
  title: "Partial Override"
`

	if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	// Check that explicitly set value is used
	if cfg.Bulletin.Title != "Partial Override" {
		t.Errorf("Title = %q, want Partial Override", cfg.Bulletin.Title)
	}

	// Check that default values are still present for unspecified fields
	if cfg.Bulletin.Theme.Primary != "#103040" {
		t.Errorf("Primary should keep default, got %q", cfg.Bulletin.Theme.Primary)
	}

	if cfg.Bulletin.Images.MaxWidth != 600 {
		t.Errorf("MaxWidth should keep default, got %d", cfg.Bulletin.Images.MaxWidth)
	}
}

func TestProfile_String(t *testing.T) {
	tests := []struct {
		profile  common.Profile
		expected string
	}{
		{common.ProfileEmail, "email"},
		{common.ProfileFrontsteps, "frontsteps"},
		{common.ProfileWeb, "web"},
		{common.Profile(99), "Profile(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := tt.profile.String()
			if got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  common.Profile
		shouldErr bool
	}{
		{"email lowercase", "email", common.ProfileEmail, false},
		{"frontsteps", "frontsteps", common.ProfileFrontsteps, false},
		{"web", "web", common.ProfileWeb, false},
		{"invalid", "invalid", common.Profile(0), true},
		{"empty", "", common.Profile(0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := common.ParseProfile(tt.input)
			if tt.shouldErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if got != tt.expected {
					t.Errorf("common.ParseProfile(%q) = %v, want %v", tt.input, got, tt.expected)
				}
			}
		})
	}
}

func TestProfileNames(t *testing.T) {
	names := common.ProfileNames()
	expected := []string{"email", "frontsteps", "web"}

	if len(names) != len(expected) {
		t.Fatalf("common.ProfileNames() length = %d, want %d", len(names), len(expected))
	}

	for i, name := range expected {
		if names[i] != name {
			t.Errorf("common.ProfileNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestProfile_BodyOnly(t *testing.T) {
	tests := []struct {
		profile  common.Profile
		expected bool
	}{
		{common.ProfileEmail, true},
		{common.ProfileFrontsteps, true},
		{common.ProfileWeb, false},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			if got := tt.profile.BodyOnly(); got != tt.expected {
				t.Errorf("BodyOnly() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestProfile_StripsAnchors(t *testing.T) {
	tests := []struct {
		profile  common.Profile
		expected bool
	}{
		{common.ProfileEmail, false},
		{common.ProfileFrontsteps, true},
		{common.ProfileWeb, false},
	}

	for _, tt := range tests {
		t.Run(tt.profile.String(), func(t *testing.T) {
			if got := tt.profile.StripsAnchors(); got != tt.expected {
				t.Errorf("StripsAnchors() = %v, want %v", got, tt.expected)
			}
		})
	}
}
