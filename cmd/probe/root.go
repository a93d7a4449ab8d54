package probe

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ValentinKolb/owire/cmd/util"
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/transport"
	"github.com/ValentinKolb/owire/wire/transport/base"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	plog = logger.GetLogger("owctl")

	client *base.ResponseCorrelator

	// ProbeCmd represents the probe command group
	ProbeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Send keep-alive requests to a broker and print the round trip times",
		Long: `Connect to the broker, send --count KeepAliveInfo commands with ResponseRequired
set and wait for each response. The socket statistics are printed at the end.`,
		PreRunE:  setupClient,
		RunE:     runProbe,
		PostRunE: closeClient,
	}
)

func init() {
	// Add common client flags to the probe command
	util.SetupClientFlags(ProbeCmd)

	key := "count"
	ProbeCmd.Flags().Int(key, 3, util.WrapString("Number of requests to send"))
	key = "interval"
	ProbeCmd.Flags().Duration(key, 200*time.Millisecond, util.WrapString("Pause between two requests"))

	// Add subcommands
	ProbeCmd.AddCommand(perfTestCmd)
}

// setupClient dials the broker and starts the transport chain
func setupClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	config := util.GetClientConfig()

	var err error
	client, err = base.Dial(*config)
	if err != nil {
		return err
	}
	client.SetListener(transport.ListenerFuncs{
		Command: func(ds commands.DataStructure) {
			fmt.Fprintf(cmd.OutOrStdout(), "received %s\n", commands.Describe(ds))
		},
		Error: func(err error) {
			plog.Errorf("connection failed: %v", err)
		},
	})
	if err := client.Start(); err != nil {
		return fmt.Errorf("failed to connect to %s: %w", config.Transport.Address(), err)
	}
	plog.Infof("connected to %s", config.Transport.Address())
	return nil
}

func closeClient(_ *cobra.Command, _ []string) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

func runProbe(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	count := viper.GetInt("count")
	interval := viper.GetDuration("interval")

	var failed int
	for i := 0; i < count; i++ {
		if i > 0 {
			time.Sleep(interval)
		}

		req := &commands.KeepAliveInfo{}
		start := time.Now()
		resp, err := client.Request(context.Background(), req)
		if err != nil {
			failed++
			fmt.Fprintf(out, "request %d failed: %v\n", req.CommandID, err)
			continue
		}
		fmt.Fprintf(out, "request %d answered by %s in %s\n",
			req.CommandID, commands.Describe(resp), time.Since(start))
	}

	printStats(out)
	if failed > 0 {
		return fmt.Errorf("%d of %d requests failed", failed, count)
	}
	return nil
}

// printStats prints the statistics of the current socket
func printStats(out io.Writer) {
	iot, ok := client.Next().(*base.IOTransport)
	if !ok || iot.Socket() == nil {
		return
	}
	stats := iot.Socket().Stats()
	fmt.Fprintf(out, "\nsocket %s -> %s: %d bytes sent, %d bytes received, connected in %s\n",
		iot.Socket().LocalAddress(), iot.Socket().RemoteAddress(),
		stats.BytesWritten(), stats.BytesRead(), stats.ConnectTime())
	if viper.GetString("log-level") == "debug" {
		metrics.WriteOnce(stats.Registry(), out)
	}
}
