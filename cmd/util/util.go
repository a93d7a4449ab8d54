package util

import (
	"strings"

	"github.com/ValentinKolb/owire/wire/common"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupWireFormatFlags adds the wire format flags to a command
func SetupWireFormatFlags(cmd *cobra.Command) {
	defaults := common.DefaultWireFormatConfig()

	key := "wire-version"
	cmd.PersistentFlags().Int(key, defaults.Version, WrapString("The OpenWire protocol version"))

	key = "wire-loose"
	cmd.PersistentFlags().Bool(key, !defaults.TightEncoding, WrapString("Use the loose encoding instead of the tight (bit packed) encoding"))

	key = "wire-cache"
	cmd.PersistentFlags().Bool(key, defaults.CacheEnabled, WrapString("Whether to enable the object reference cache (tight encoding only)"))

	key = "wire-cache-size"
	cmd.PersistentFlags().Int(key, defaults.CacheSize, WrapString("The number of slots of the object reference cache, must match the peer"))

	key = "wire-max-frame-size"
	cmd.PersistentFlags().Int(key, defaults.MaxFrameSize/1024, WrapString("The largest accepted inbound frame (in KB)"))
}

// SetupClientFlags adds the connection and wire format flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	defaults := common.DefaultClientConfig()

	key := "timeout"
	cmd.PersistentFlags().Int(key, defaults.RequestTimeoutSecond, WrapString("The timeout in seconds of a request/response round trip"))

	key = "host"
	cmd.PersistentFlags().String(key, defaults.Transport.Host, WrapString("The host of the broker"))

	key = "port"
	cmd.PersistentFlags().Int(key, defaults.Transport.Port, WrapString("The OpenWire port of the broker"))

	key = "connect-timeout"
	cmd.PersistentFlags().Int(key, defaults.Transport.ConnectTimeoutMs, WrapString("The connect timeout (in ms, 0 waits for the operating system)"))

	key = "transport-so-timeout"
	cmd.PersistentFlags().Int(key, defaults.Transport.SoTimeoutMs, WrapString("Timeout of every blocking socket read and write (in ms, 0 blocks forever)"))

	key = "transport-write-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket write buffer (in KB, 0 keeps the system default)"))

	key = "transport-read-buffer"
	cmd.PersistentFlags().Int(key, 0, WrapString("The size of the socket read buffer (in KB, 0 keeps the system default)"))

	key = "transport-tcp-nodelay"
	cmd.PersistentFlags().Bool(key, defaults.Transport.TCPConf.TCPNoDelay, WrapString("Whether to enable TCP_NODELAY"))

	key = "transport-tcp-keepalive"
	cmd.PersistentFlags().Int(key, defaults.Transport.TCPConf.TCPKeepAliveSec, WrapString("The keepalive interval (in seconds, 0 disables keepalive)"))

	key = "transport-tcp-linger"
	cmd.PersistentFlags().Int(key, defaults.Transport.TCPConf.TCPLingerSec, WrapString("The linger time (in seconds, -1 keeps the system default)"))

	key = "transport-reuse-address"
	cmd.PersistentFlags().Bool(key, defaults.Transport.ReuseAddress, WrapString("Whether to set SO_REUSEADDR"))

	SetupWireFormatFlags(cmd)
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("owire")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetWireFormatConfig reads the wire format configuration from viper
func GetWireFormatConfig() common.WireFormatConfig {
	return common.WireFormatConfig{
		Version:       viper.GetInt("wire-version"),
		TightEncoding: !viper.GetBool("wire-loose"),
		CacheEnabled:  viper.GetBool("wire-cache") && !viper.GetBool("wire-loose"),
		CacheSize:     viper.GetInt("wire-cache-size"),
		MaxFrameSize:  viper.GetInt("wire-max-frame-size") * 1024,
	}
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		RequestTimeoutSecond: viper.GetInt("timeout"),
		LogLevel:             viper.GetString("log-level"),
		Transport: common.TransportConfig{
			Host:             viper.GetString("host"),
			Port:             viper.GetInt("port"),
			ConnectTimeoutMs: viper.GetInt("connect-timeout"),
			SoTimeoutMs:      viper.GetInt("transport-so-timeout"),
			ReuseAddress:     viper.GetBool("transport-reuse-address"),
			SocketConf: common.SocketConf{
				WriteBufferSize: viper.GetInt("transport-write-buffer") * 1024,
				ReadBufferSize:  viper.GetInt("transport-read-buffer") * 1024,
			},
			TCPConf: common.TCPConf{
				TCPKeepAliveSec: viper.GetInt("transport-tcp-keepalive"),
				TCPLingerSec:    viper.GetInt("transport-tcp-linger"),
				TCPNoDelay:      viper.GetBool("transport-tcp-nodelay"),
			},
		},
		WireFormat: GetWireFormatConfig(),
	}

	return conf
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
