package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	errConfigIsDir   = errors.New("config file is dir")
	errNoBaseURL     = errors.New("api.base_url is required")
	errNoSignupPath  = errors.New("guard.signup_path must be an absolute path")
	errNegativeValue = errors.New("timeouts must not be negative")
)

// Load reads a yaml file over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	c := Default()

	filename, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	finfo, err := os.Stat(filename)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if finfo.IsDir() {
		return nil, errConfigIsDir
	}

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, c); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.BaseURL == "" {
		return errNoBaseURL
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if !strings.HasPrefix(c.Guard.SignupPath, "/") {
		return errNoSignupPath
	}
	if c.API.Timeout < 0 || c.Guard.CheckTimeout < 0 {
		return errNegativeValue
	}
	return nil
}

// Addr is the listen address of the storefront server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
