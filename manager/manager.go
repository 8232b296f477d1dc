// Package manager implements the user-visible flows: capture an
// interface's original MAC on first contact, then show, change, or
// restore its hardware address.
package manager

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/projecteru2/core/log"

	"github.com/macshift/macshift/netcfg"
	"github.com/macshift/macshift/store"
	"github.com/macshift/macshift/utils"
)

// Manager ties the interface configurer and the original-MAC store
// together.
type Manager struct {
	store *store.Store
	cfg   netcfg.Configurer
	out   io.Writer
}

// New creates a Manager writing operator-facing messages to out.
func New(st *store.Store, cfg netcfg.Configurer, out io.Writer) *Manager {
	return &Manager{store: st, cfg: cfg, out: out}
}

// Show prints the interface's current and original MAC without mutating
// anything (beyond the first-contact record capture).
func (m *Manager) Show(ctx context.Context, iface string) error {
	current, original, err := m.prepare(ctx, iface)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Current MAC for %s:  %s\n", iface, current)
	fmt.Fprintf(m.out, "Original MAC for %s: %s\n", iface, original)
	return nil
}

// Restore sets the interface back to its recorded original MAC.
func (m *Manager) Restore(ctx context.Context, iface string) error {
	_, original, err := m.prepare(ctx, iface)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Restoring original MAC address for %s\n", iface)
	return m.set(ctx, iface, original)
}

// Change sets the interface's MAC to target, or to a fresh random
// locally-administered unicast address when target is empty.
func (m *Manager) Change(ctx context.Context, iface, target string) error {
	if _, _, err := m.prepare(ctx, iface); err != nil {
		return err
	}
	if target == "" {
		mac, err := utils.GenerateMAC()
		if err != nil {
			return err
		}
		target = mac.String()
	}
	return m.set(ctx, iface, target)
}

// prepare reads the interface's current MAC and makes sure an original is
// on record, capturing the current value on first contact. An unreadable
// interface aborts the run before any mutation.
func (m *Manager) prepare(ctx context.Context, iface string) (string, string, error) {
	mac, err := m.cfg.QueryMAC(ctx, iface)
	if err != nil {
		return "", "", fmt.Errorf("read MAC address of %s: %w", iface, err)
	}
	current := mac.String()

	original, ok, err := m.store.Get(ctx, iface)
	if err != nil {
		return "", "", err
	}
	if !ok {
		if err := m.store.Save(ctx, iface, current); err != nil {
			return "", "", err
		}
		fmt.Fprintf(m.out, "Original MAC address for %s saved: %s\n", iface, current)
		original = current
	}
	return current, original, nil
}

// set performs the down / set / up sequence and decides success solely by
// re-reading the interface. Errors from the three mutation steps are
// logged and otherwise ignored: the verification read is the single
// source of truth, which also covers tools that fail without a non-zero
// exit status. Do not change this into per-step error propagation.
func (m *Manager) set(ctx context.Context, iface, target string) error {
	logger := log.WithFunc("manager.set")

	mac, err := net.ParseMAC(target)
	if err != nil {
		return fmt.Errorf("bad MAC address %q: %w", target, err)
	}

	fmt.Fprintf(m.out, "Changing MAC address for %s to %s\n", iface, mac)

	if err := m.cfg.SetAdminState(ctx, iface, false); err != nil {
		logger.Warnf(ctx, "bring %s down: %v", iface, err)
	}
	if err := m.cfg.SetHardwareAddr(ctx, iface, mac); err != nil {
		logger.Warnf(ctx, "set hardware address on %s: %v", iface, err)
	}
	if err := m.cfg.SetAdminState(ctx, iface, true); err != nil {
		logger.Warnf(ctx, "bring %s up: %v", iface, err)
	}

	readBack, err := m.cfg.QueryMAC(ctx, iface)
	if err != nil {
		return fmt.Errorf("verify MAC address of %s: %w", iface, err)
	}
	if readBack.String() != mac.String() {
		return fmt.Errorf("MAC address of %s is %s, wanted %s", iface, readBack, mac)
	}

	fmt.Fprintf(m.out, "MAC address of %s changed to %s\n", iface, mac)
	return nil
}
