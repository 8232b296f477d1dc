// Package nl drives network interfaces natively through netlink instead
// of an external tool. Only available on Linux.
package nl

import (
	"context"
	"fmt"
	"net"
	"path/filepath"

	cns "github.com/containernetworking/plugins/pkg/ns"
	"github.com/vishvananda/netlink"

	"github.com/macshift/macshift/netcfg"
)

const netnsDir = "/var/run/netns"

// compile-time interface check.
var _ netcfg.Configurer = (*Netlink)(nil)

// Netlink implements netcfg.Configurer via vishvananda/netlink, optionally
// inside a named network namespace.
type Netlink struct {
	netns string
}

// New creates a Netlink configurer. netnsName may be empty, in which case
// all operations run in the current namespace.
func New(netnsName string) (netcfg.Configurer, error) {
	return &Netlink{netns: netnsName}, nil
}

func (c *Netlink) QueryMAC(_ context.Context, iface string) (net.HardwareAddr, error) {
	var mac net.HardwareAddr
	err := c.inNamespace(func() error {
		link, err := netlink.LinkByName(iface)
		if err != nil {
			return fmt.Errorf("find %s: %w", iface, err)
		}
		mac = link.Attrs().HardwareAddr
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(mac) == 0 {
		return nil, fmt.Errorf("no hardware address on %s", iface)
	}
	return mac, nil
}

func (c *Netlink) SetAdminState(_ context.Context, iface string, up bool) error {
	return c.inNamespace(func() error {
		link, err := netlink.LinkByName(iface)
		if err != nil {
			return fmt.Errorf("find %s: %w", iface, err)
		}
		if up {
			if err := netlink.LinkSetUp(link); err != nil {
				return fmt.Errorf("set %s up: %w", iface, err)
			}
			return nil
		}
		if err := netlink.LinkSetDown(link); err != nil {
			return fmt.Errorf("set %s down: %w", iface, err)
		}
		return nil
	})
}

func (c *Netlink) SetHardwareAddr(_ context.Context, iface string, mac net.HardwareAddr) error {
	return c.inNamespace(func() error {
		link, err := netlink.LinkByName(iface)
		if err != nil {
			return fmt.Errorf("find %s: %w", iface, err)
		}
		if err := netlink.LinkSetHardwareAddr(link, mac); err != nil {
			return fmt.Errorf("set hardware address on %s: %w", iface, err)
		}
		return nil
	})
}

// inNamespace runs fn inside the configured netns via the CNI
// plugins/pkg/ns closure, which handles LockOSThread, setns, and restore.
// With no netns configured, fn runs directly.
func (c *Netlink) inNamespace(fn func() error) error {
	if c.netns == "" {
		return fn()
	}
	nsPath := filepath.Join(netnsDir, c.netns)
	return cns.WithNetNSPath(nsPath, func(_ cns.NetNS) error {
		return fn()
	})
}
