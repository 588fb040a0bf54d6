package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	CookieFile string
	Timeout    time.Duration
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("SESSIONFLOW_SERVER", "http://localhost:8080"),
		CookieFile: getEnvOrDefault("SESSIONFLOW_COOKIE_FILE", defaultCookieFile()),
		Timeout:    30 * time.Second,
		Output:     "text",
		Verbose:    false,
	}
}

// savedCookie is the on-disk form of a session cookie
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadCookies reads cookies saved by a previous run
func (c *Config) LoadCookies() ([]*http.Cookie, error) {
	data, err := os.ReadFile(c.CookieFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // No cookie file is fine
		}
		return nil, err
	}

	var saved []savedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}

	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value})
	}
	return cookies, nil
}

// SaveCookies writes the cookies to the cookie file. No cookies removes it.
func (c *Config) SaveCookies(cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		if err := os.Remove(c.CookieFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	saved := make([]savedCookie, 0, len(cookies))
	for _, ck := range cookies {
		saved = append(saved, savedCookie{Name: ck.Name, Value: ck.Value})
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.CookieFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.CookieFile, data, 0600)
}

func defaultCookieFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sessionflow/cookies.json"
	}
	return filepath.Join(home, ".sessionflow", "cookies.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
