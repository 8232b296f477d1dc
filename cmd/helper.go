package cmd

import (
	"fmt"
	"os"

	"github.com/macshift/macshift/config"
	"github.com/macshift/macshift/manager"
	"github.com/macshift/macshift/netcfg"
	"github.com/macshift/macshift/netcfg/ifconfig"
	"github.com/macshift/macshift/netcfg/nl"
	"github.com/macshift/macshift/store"
)

// initManager wires the record store and the selected backend together.
func initManager() (*manager.Manager, error) {
	cfger, err := initConfigurer()
	if err != nil {
		return nil, err
	}
	st := store.New(conf.StateFile, conf.LockFile())
	return manager.New(st, cfger, os.Stdout), nil
}

func initConfigurer() (netcfg.Configurer, error) {
	switch conf.Backend {
	case config.BackendIfconfig:
		return ifconfig.New(conf.IfconfigBinary), nil
	case config.BackendNetlink:
		return nl.New(conf.Netns)
	default:
		return nil, fmt.Errorf("unknown backend %q", conf.Backend)
	}
}
