//go:build !linux

package nl

import (
	"errors"

	"github.com/macshift/macshift/netcfg"
)

// New always fails off Linux.
func New(_ string) (netcfg.Configurer, error) {
	return nil, errors.New("netlink backend is only supported on linux")
}
