package config

import "time"

// Default connection settings applied before any preference source is read.
const (
	DefaultTimeout = 60 * time.Second
	DefaultRetries = 1
)

// Config holds everything needed to open a connection to the Jamf Pro server.
// - URL: server base URL, e.g. https://jamf.example.com:8443 (trailing slash trimmed).
// - Username/Password: API account credentials used for HTTP basic auth.
// - VerifySSL: verify the server TLS certificate.
// - Timeout: per-request timeout.
// - Retries: attempts for idempotent reads. 1 means a failed read is not retried.
// - MinServerVersion: optional lower bound checked on every connection.
type Config struct {
	URL              string        `yaml:"url"`
	Username         string        `yaml:"username"`
	Password         string        `yaml:"password"`
	VerifySSL        bool          `yaml:"verify_ssl"`
	Timeout          time.Duration `yaml:"timeout"`
	Retries          int           `yaml:"retries"`
	MinServerVersion string        `yaml:"min_server_version"`

	// Source is the path of the preference file the values came from.
	Source string `yaml:"-"`
}

// autopkgPrefs maps the JSSImporter keys found in the AutoPkg preferences plist.
type autopkgPrefs struct {
	URL       string `plist:"JSS_URL"`
	User      string `plist:"API_USERNAME"`
	Password  string `plist:"API_PASSWORD"`
	VerifySSL *bool  `plist:"JSS_VERIFY_SSL"`
}

// pythonJSSPrefs maps the keys of the python-jss preferences plist.
type pythonJSSPrefs struct {
	URL      string `plist:"jss_url"`
	User     string `plist:"jss_user"`
	Password string `plist:"jss_pass"`
	Verify   *bool  `plist:"verify"`
}
