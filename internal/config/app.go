package config

import (
	"os"

	"github.com/saravenpi/knot/internal/model"
)

// App is an `apps/<name>/app.yml` document (§4.2 App-only fields).
type App struct {
	Name        string               `yaml:"name"`
	Description *string              `yaml:"description,omitempty"`
	TsAlias     *TsAlias             `yaml:"tsAlias,omitempty"`
	Packages    []string             `yaml:"packages,omitempty"`
	Scripts     map[string]string    `yaml:"scripts,omitempty"`
	Variables   map[string]Variable  `yaml:"variables,omitempty"`
}

// LoadApp reads and validates an app.yml/app.yaml file.
func LoadApp(path string) (*App, *model.Error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, model.IOError("read", path, err)
	}
	var a App
	if cfgErr := decodeStrict(content, &a); cfgErr != nil {
		return nil, cfgErr
	}
	if cfgErr := a.Validate(); cfgErr != nil {
		return nil, cfgErr
	}
	return &a, nil
}

func (a *App) Validate() *model.Error {
	if err := validateSafeName("name", a.Name); err != nil {
		return err
	}
	if err := validateDescription("description", a.Description); err != nil {
		return err
	}
	if err := validateScripts(a.Scripts); err != nil {
		return err
	}
	for _, pkg := range a.Packages {
		if err := validatePackageName("packages", pkg); err != nil {
			return err
		}
	}
	return nil
}
