package config

import "time"

type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Guard   Guard   `yaml:"guard"`
	Log     Log     `yaml:"log"`
}

type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// API describes the remote REST backend.
type API struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`

	// CredentialCookies are the browser cookies forwarded to the backend
	// on every call. Their values are never inspected.
	CredentialCookies []string `yaml:"credential_cookies"`
}

type Session struct {
	Lifetime   time.Duration `yaml:"lifetime"`
	CookieName string        `yaml:"cookie_name"`
}

type Guard struct {
	// CheckTimeout bounds a single "who am I" check. Zero means no bound.
	CheckTimeout time.Duration `yaml:"check_timeout"`
	SignupPath   string        `yaml:"signup_path"`
}

type Log struct {
	Production bool `yaml:"production"`
}

// Path is the location of the yaml config file. An empty path means defaults.
type Path string

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "localhost",
			Port: 8123,
		},
		API: API{
			BaseURL:           "http://localhost:8000",
			Timeout:           10 * time.Second,
			CredentialCookies: []string{"token"},
		},
		Session: Session{
			Lifetime:   24 * time.Hour,
			CookieName: "storefront_session",
		},
		Guard: Guard{
			CheckTimeout: 5 * time.Second,
			SignupPath:   "/signup",
		},
	}
}

func New(path Path) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(string(path))
}
