package pipeline

import (
	"fmt"
	"strings"
)

// Role binds a processing slot to its input file.
type Role struct {
	Name      string
	InputPath string
}

type Config struct {
	OutputRoot    string
	Roles         []Role
	WriteManifest bool
}

// DefaultConfig is the fixed batch: three photographs under fotos/ and
// results under resultados/.
func DefaultConfig() Config {
	return Config{
		OutputRoot: "resultados",
		Roles: []Role{
			{Name: "pessoa", InputPath: "fotos/pessoavelha.jpg"},
			{Name: "objeto", InputPath: "fotos/fotoobjeto.jpg"},
			{Name: "documento", InputPath: "fotos/rgfoto.jpg"},
		},
		WriteManifest: true,
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.OutputRoot) == "" {
		return fmt.Errorf("output root is empty")
	}

	if len(c.Roles) == 0 {
		return fmt.Errorf("no roles configured")
	}

	seen := make(map[string]bool, len(c.Roles))
	for i, r := range c.Roles {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("role %d has an empty name", i)
		}
		if strings.ContainsAny(r.Name, `/\`) {
			return fmt.Errorf("role %q must not contain path separators", r.Name)
		}
		if seen[r.Name] {
			return fmt.Errorf("duplicate role %q", r.Name)
		}
		if strings.TrimSpace(r.InputPath) == "" {
			return fmt.Errorf("role %q has an empty input path", r.Name)
		}
		seen[r.Name] = true
	}

	return nil
}
