package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/owire/cmd/encode"
	"github.com/ValentinKolb/owire/cmd/probe"
	"github.com/ValentinKolb/owire/cmd/serve"
	"github.com/ValentinKolb/owire/cmd/util"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "owctl",
		Short: "OpenWire client toolkit",
		Long: fmt.Sprintf(`owctl (v%s)

Encode, decode and exchange OpenWire commands with an ActiveMQ
compatible broker over TCP.`, Version),
		PersistentPreRunE:  setupLogging,
		PersistentPostRunE: dumpMetrics,
		SilenceUsage:       true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of owctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("owctl v%s\n", Version)
		},
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitClientConfig)

	// Add Commands
	RootCmd.AddCommand(encode.EncodeCmd)
	RootCmd.AddCommand(probe.ProbeCmd)
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "log-level"
	RootCmd.PersistentFlags().String(key, "info", util.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
	key = "metrics"
	RootCmd.PersistentFlags().Bool(key, false, util.WrapString("Print the codec metrics in Prometheus text format on exit"))
}

// setupLogging installs the loggers before any command runs
func setupLogging(cmd *cobra.Command, _ []string) error {
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}
	return common.InitLoggers(viper.GetString("log-level"))
}

// dumpMetrics prints the codec metrics if --metrics is set
func dumpMetrics(_ *cobra.Command, _ []string) error {
	if viper.GetBool("metrics") {
		fmt.Fprintln(os.Stderr)
		format.WritePrometheus(os.Stderr)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
