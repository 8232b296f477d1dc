// Package netcfg defines the narrow port to the OS interface-configuration
// machinery. Production implementations mutate real interfaces; tests
// substitute an in-memory fake so no privileged commands run.
package netcfg

import (
	"context"
	"net"
)

type Configurer interface {
	// QueryMAC returns the interface's current hardware address.
	QueryMAC(ctx context.Context, iface string) (net.HardwareAddr, error)
	// SetAdminState brings the interface up (true) or down (false).
	SetAdminState(ctx context.Context, iface string, up bool) error
	// SetHardwareAddr sets the interface's hardware address.
	SetHardwareAddr(ctx context.Context, iface string, mac net.HardwareAddr) error
}
