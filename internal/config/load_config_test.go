package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const autopkgPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>JSS_URL</key>
	<string>https://jamf.example.com:8443/</string>
	<key>API_USERNAME</key>
	<string>autopkg</string>
	<key>API_PASSWORD</key>
	<string>secret</string>
	<key>JSS_VERIFY_SSL</key>
	<false/>
</dict>
</plist>
`

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("JSS_URL", "")
	t.Setenv("JSS_USER", "")
	t.Setenv("JSS_PASSWORD", "")
	return home
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadYAML(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".jss-helper.yaml")
	writeFile(t, path, "url: https://jamf.example.com/\nusername: api\npassword: pw\ntimeout: 5s\nretries: 3\n")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://jamf.example.com" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Username != "api" || cfg.Password != "pw" {
		t.Errorf("credentials = %q/%q", cfg.Username, cfg.Password)
	}
	if !cfg.VerifySSL {
		t.Error("VerifySSL should default to true")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.Retries != 3 {
		t.Errorf("Retries = %d", cfg.Retries)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q", cfg.Source)
	}
}

func TestLoadFallsBackToAutoPkgPlist(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "Library/Preferences/com.github.autopkg.plist"), autopkgPlist)

	cfg, err := Load(filepath.Join(home, ".jss-helper.yaml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://jamf.example.com:8443" {
		t.Errorf("URL = %q", cfg.URL)
	}
	if cfg.Username != "autopkg" || cfg.Password != "secret" {
		t.Errorf("credentials = %q/%q", cfg.Username, cfg.Password)
	}
	if cfg.VerifySSL {
		t.Error("VerifySSL should come from JSS_VERIFY_SSL=false")
	}
	if cfg.Retries != DefaultRetries || cfg.Timeout != DefaultTimeout {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "cfg.yaml")
	writeFile(t, path, "url: https://a.example.com\nusername: a\n")
	t.Setenv("JSS_URL", "https://b.example.com/")
	t.Setenv("JSS_USER", "b")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.URL != "https://b.example.com" || cfg.Username != "b" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		explicit bool
		want     error
	}{
		{name: "no sources", want: ErrNoConfig},
		{name: "explicit missing", explicit: true, want: os.ErrNotExist},
		{name: "no url", content: "username: a\n"},
		{name: "bad scheme", content: "url: jamf.example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			path := filepath.Join(home, ".jss-helper.yaml")
			if tt.content != "" {
				writeFile(t, path, tt.content)
			}
			_, err := Load(path, tt.explicit)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
