package driver

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the optional TOML configuration file cmd/netlistc accepts
// (spec §6): a default dialect and whether recovered (comment-rewritten)
// lines should be treated as a hard failure instead of a diagnostic.
type Config struct {
	DefaultDialect string `toml:"default_dialect"`
	FailOnRecover  bool   `toml:"fail_on_recover"`
}

// LoadConfig reads and decodes a TOML config file at path.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
