package dispatch

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Supported receiver transports
const (
	TransportExec   = "exec"
	TransportSocket = "socket"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Manifest describes a receiver able to handle one or more actions.
// Manifests come from YAML files in the receivers directory or from the
// receivers list of the config file.
type Manifest struct {
	Name      string   `yaml:"name" mapstructure:"name" validate:"required"`
	Actions   []string `yaml:"actions" mapstructure:"actions" validate:"required,min=1,dive,required"`
	Priority  int      `yaml:"priority" mapstructure:"priority"`
	Transport string   `yaml:"transport" mapstructure:"transport" validate:"required,oneof=exec socket"`

	// exec
	Command []string `yaml:"command" mapstructure:"command"`

	// socket
	Network string `yaml:"network" mapstructure:"network" validate:"omitempty,oneof=unix unixgram tcp"`
	Address string `yaml:"address" mapstructure:"address"`

	// Source is the file the manifest was read from, or "config".
	Source string `yaml:"-" mapstructure:"-"`
}

// Handles reports whether the receiver declares action
func (m Manifest) Handles(action string) bool {
	for _, a := range m.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Validate checks the manifest fields for its transport
func (m Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	switch m.Transport {
	case TransportExec:
		if len(m.Command) == 0 || m.Command[0] == "" {
			return fmt.Errorf("%w: exec receiver %s has no command", ErrInvalidManifest, m.Name)
		}
	case TransportSocket:
		if m.Address == "" {
			return fmt.Errorf("%w: socket receiver %s has no address", ErrInvalidManifest, m.Name)
		}
	}
	return nil
}

// ReadManifest decodes and validates a manifest file
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, &ManifestError{Source: path, Err: err}
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return Manifest{}, &ManifestError{Source: path, Err: fmt.Errorf("%w: %v", ErrInvalidManifest, err)}
	}
	m.Source = path

	if err := m.Validate(); err != nil {
		return Manifest{}, &ManifestError{Source: path, Err: err}
	}
	return m, nil
}
