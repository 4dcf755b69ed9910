// Package registryconfig stores the opaque remote-registry URL and
// bearer token an app's commands need to talk to a remote registry,
// adapted directly from the teacher's registry_config.go. Login/auth
// flows themselves remain out of scope (spec.md §1 Non-goals); this
// package only persists the two values a prior out-of-band login
// produced.
package registryconfig

import (
	"os"

	"github.com/pelletier/go-toml"

	"github.com/saravenpi/knot/internal/model"
)

// FileName is the on-disk name of the registry config file, stored at
// a project's root next to knot.yml.
const FileName = "knot.reg"

// Config holds a remote registry's base URL and bearer token.
type Config struct {
	URL   string
	Token string
}

type rawConfig struct {
	Registry rawRegistry `toml:"registry"`
}

type rawRegistry struct {
	URL   string `toml:"url"`
	Token string `toml:"token"`
}

// Read loads path, returning (nil, nil) if it does not exist — a
// project with no remote registry configured is the common case, not
// an error.
func Read(path string) (*Config, *model.Error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, model.IOError("read", path, err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, model.ConfigurationError(FileName, "failed to parse "+path+": "+err.Error(), "[registry]\nurl = \"https://registry.example.com\"")
	}

	return &Config{URL: raw.Registry.URL, Token: raw.Registry.Token}, nil
}

// Write persists cfg to path in TOML form.
func Write(path string, cfg Config) *model.Error {
	raw := rawConfig{Registry: rawRegistry{URL: cfg.URL, Token: cfg.Token}}
	out, err := toml.Marshal(raw)
	if err != nil {
		return model.InternalError("failed to serialize "+FileName, err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return model.IOError("write", path, err)
	}
	return nil
}
