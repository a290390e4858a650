package engine

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables an operator can set without recompiling: hash
// table size, the repetition rule to enforce, and the cancellation poll
// interval. Zero-value Config is not directly usable; use DefaultConfig.
type Config struct {
	HashSizeMiB      int `toml:"hash_size_mib"`
	RepetitionCount  int `toml:"repetition_count"`
	NodePollInterval int `toml:"node_poll_interval"`
}

// DefaultConfig matches §5: 64 MiB of hash, twofold repetition, polling the
// clock every 20,000 nodes.
func DefaultConfig() Config {
	return Config{
		HashSizeMiB:      64,
		RepetitionCount:  2,
		NodePollInterval: defaultNodePollInterval,
	}
}

// LoadConfig reads a TOML config file, starting from DefaultConfig and
// overriding whichever fields the file sets. A missing file is not an
// error; it just yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
