package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/projecteru2/core/log"

	"github.com/macshift/macshift/config"
)

var (
	cfgFile string
	conf    *config.Config
)

var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macshift INTERFACE",
		Short: "Macshift - change, show, and restore interface MAC addresses",
		Args:  cobra.ExactArgs(1),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return initConfig()
		},
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	cmd.PersistentFlags().String("state-file", "", "original-MAC record file")
	cmd.PersistentFlags().String("backend", "", "interface backend: ifconfig or netlink")
	cmd.PersistentFlags().String("netns", "", "named network namespace (netlink backend only)")
	cmd.PersistentFlags().String("ifconfig-binary", "", "ifconfig executable")

	_ = viper.BindPFlag("state_file", cmd.PersistentFlags().Lookup("state-file"))
	_ = viper.BindPFlag("backend", cmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("netns", cmd.PersistentFlags().Lookup("netns"))
	_ = viper.BindPFlag("ifconfig_binary", cmd.PersistentFlags().Lookup("ifconfig-binary"))

	viper.SetEnvPrefix("MACSHIFT")
	viper.AutomaticEnv()

	cmd.Flags().String("mac", "", "new MAC address (random when omitted)")
	cmd.Flags().Bool("restore", false, "restore the original MAC address")
	cmd.Flags().Bool("show", false, "show current and original MAC address")
	cmd.MarkFlagsMutuallyExclusive("show", "restore")

	cmd.AddCommand(versionCmd)

	return cmd
}()

func initConfig() error {
	conf = config.DefaultConfig()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
	_ = viper.ReadInConfig() // optional; missing file is OK

	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if conf.StateFile == "" {
		conf.StateFile = config.DefaultStateFile()
	}
	if conf.Backend == "" {
		conf.Backend = config.BackendIfconfig
	}
	if conf.IfconfigBinary == "" {
		conf.IfconfigBinary = "ifconfig"
	}

	return log.SetupLog(context.Background(), &conf.Log, "")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	iface := args[0]

	mgr, err := initManager()
	if err != nil {
		return err
	}

	show, _ := cmd.Flags().GetBool("show")
	restore, _ := cmd.Flags().GetBool("restore")

	switch {
	case show:
		return mgr.Show(ctx, iface)
	case restore:
		return mgr.Restore(ctx, iface)
	default:
		target, _ := cmd.Flags().GetString("mac")
		return mgr.Change(ctx, iface, target)
	}
}

// Execute is the main entry point called from main.go.
func Execute() error {
	ctx, stop := newCommandContext()
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}
