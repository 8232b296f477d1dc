// Package ifconfig drives network interfaces through the system's
// ifconfig tool. The tool is treated as a black box: porting to another
// platform means changing the invocation verbs and the extraction
// pattern, nothing else.
package ifconfig

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"regexp"
	"strings"

	"github.com/macshift/macshift/netcfg"
)

var etherRe = regexp.MustCompile(`ether\s+([0-9a-fA-F:]{17})`)

// compile-time interface check.
var _ netcfg.Configurer = (*Ifconfig)(nil)

// Ifconfig implements netcfg.Configurer by shelling out.
type Ifconfig struct {
	binary string
}

// New creates an Ifconfig configurer using the given executable,
// defaulting to "ifconfig" when empty.
func New(binary string) *Ifconfig {
	if binary == "" {
		binary = "ifconfig"
	}
	return &Ifconfig{binary: binary}
}

// QueryMAC runs `ifconfig IFACE` and extracts the `ether` address from
// its output.
func (c *Ifconfig) QueryMAC(ctx context.Context, iface string) (net.HardwareAddr, error) {
	cmd := exec.CommandContext(ctx, c.binary, iface) //nolint:gosec
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w (output: %s)", c.binary, iface, err, strings.TrimSpace(string(out)))
	}
	mac, err := ExtractMAC(out)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.binary, iface, err)
	}
	return mac, nil
}

// SetAdminState runs `ifconfig IFACE up|down`.
func (c *Ifconfig) SetAdminState(ctx context.Context, iface string, up bool) error {
	state := "down"
	if up {
		state = "up"
	}
	return c.run(ctx, iface, state)
}

// SetHardwareAddr runs `ifconfig IFACE hw ether MAC`.
func (c *Ifconfig) SetHardwareAddr(ctx context.Context, iface string, mac net.HardwareAddr) error {
	return c.run(ctx, iface, "hw", "ether", mac.String())
}

func (c *Ifconfig) run(ctx context.Context, iface string, args ...string) error {
	cmd := exec.CommandContext(ctx, c.binary, append([]string{iface}, args...)...) //nolint:gosec
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s %s %s: %w (output: %s)",
			c.binary, iface, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// ExtractMAC pulls the first `ether xx:xx:xx:xx:xx:xx` group out of
// ifconfig-style output.
func ExtractMAC(out []byte) (net.HardwareAddr, error) {
	m := etherRe.FindSubmatch(out)
	if m == nil {
		return nil, errors.New("no hardware address in output")
	}
	mac, err := net.ParseMAC(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("parse hardware address %q: %w", m[1], err)
	}
	return mac, nil
}
