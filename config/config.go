package config

import (
	"os"
	"path/filepath"

	coretypes "github.com/projecteru2/core/types"
)

// Backend names accepted in Config.Backend.
const (
	BackendIfconfig = "ifconfig"
	BackendNetlink  = "netlink"
)

// Config holds global macshift configuration.
type Config struct {
	// StateFile is the JSON file recording each interface's original MAC.
	// Env: MACSHIFT_STATE_FILE. Default: ~/.macshift.json.
	StateFile string `json:"state_file" mapstructure:"state_file"`
	// Backend selects how interface state is manipulated: "ifconfig"
	// shells out to the system tool, "netlink" talks to the kernel
	// directly (Linux only). Env: MACSHIFT_BACKEND. Default: ifconfig.
	Backend string `json:"backend" mapstructure:"backend"`
	// IfconfigBinary is the path or name of the ifconfig executable.
	// Default: "ifconfig".
	IfconfigBinary string `json:"ifconfig_binary" mapstructure:"ifconfig_binary"`
	// Netns is an optional named network namespace (under /var/run/netns)
	// the netlink backend operates in. Empty means the current namespace.
	Netns string `json:"netns" mapstructure:"netns"`
	// Log configuration, uses eru core's ServerLogConfig.
	Log coretypes.ServerLogConfig `json:"log" mapstructure:"log"`
}

// DefaultConfig returns the built-in defaults before any config file,
// environment, or flag overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		StateFile:      DefaultStateFile(),
		Backend:        BackendIfconfig,
		IfconfigBinary: "ifconfig",
		Log: coretypes.ServerLogConfig{
			Level: "info",
		},
	}
}

// DefaultStateFile is the per-user record file path. Falls back to the
// working directory if the home directory cannot be resolved.
func DefaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".macshift.json"
	}
	return filepath.Join(home, ".macshift.json")
}

// LockFile is the flock path guarding StateFile.
func (c *Config) LockFile() string {
	return c.StateFile + ".lock"
}
