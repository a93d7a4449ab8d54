package serve

import (
	"os"
	"os/signal"
	"syscall"

	cmdUtil "github.com/ValentinKolb/owire/cmd/util"
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/transport/base"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	plog = logger.GetLogger("owctl")

	ServeCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run a minimal OpenWire peer for testing",
		Long: `Run a minimal OpenWire peer that decodes every frame it receives and answers each
command with ResponseRequired set. MessagePull requests are answered with a DataResponse
carrying the pulled destination. The configuration can be set via command line flags or
environment variables. The format of the environment variables is OWIRE_<flag>
(e.g. OWIRE_LISTEN_PORT=61617)`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return cmdUtil.BindCommandFlags(cmd)
		},
		RunE: run,
	}
)

func init() {
	// add flags
	key := "listen-address"
	ServeCmd.Flags().String(key, "127.0.0.1", cmdUtil.WrapString("The address to listen on"))

	key = "listen-port"
	ServeCmd.Flags().Int(key, 61616, cmdUtil.WrapString("The port to listen on (0 picks a free port)"))

	cmdUtil.SetupWireFormatFlags(ServeCmd)
}

// run starts the server and blocks until SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	server, err := base.NewServer(
		viper.GetString("listen-address"),
		viper.GetInt("listen-port"),
		cmdUtil.GetWireFormatConfig(),
		Respond,
	)
	if err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		plog.Infof("shutting down")
		server.Close()
	}()

	return server.Serve()
}

// Respond answers every command that requires a response
func Respond(conn *base.IOTransport, ds commands.DataStructure) {
	plog.Debugf("received %s", commands.Describe(ds))

	cmd, ok := ds.(commands.Command)
	if !ok || !cmd.Base().ResponseRequired {
		return
	}

	var resp commands.DataStructure
	switch c := cmd.(type) {
	case *commands.MessagePull:
		resp = &commands.DataResponse{
			Response: commands.Response{CorrelationID: c.CommandID},
			Data:     c.Destination,
		}
	case *commands.ProducerAck:
		resp = &commands.IntegerResponse{
			Response: commands.Response{CorrelationID: c.CommandID},
			Result:   c.Size,
		}
	default:
		resp = &commands.Response{CorrelationID: cmd.Base().CommandID}
	}

	if err := conn.Oneway(resp); err != nil {
		plog.Warningf("failed to answer command %d: %v", cmd.Base().CommandID, err)
	}
}
