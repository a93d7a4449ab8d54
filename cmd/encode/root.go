package encode

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/ValentinKolb/owire/cmd/util"
	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	plog = logger.GetLogger("owctl")

	// EncodeCmd represents the encode command
	EncodeCmd = &cobra.Command{
		Use:   "encode",
		Short: "Encode a TOML command script into OpenWire frames",
		Long: `Encode the commands of a TOML script in order through one wire format, print every
frame as hex and decode the frames again with a second wire format. The command fails if
a decoded command differs from the script. Reference fields that repeat across commands
show up as cache hits with the tight encoding.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return util.BindCommandFlags(cmd)
		},
		RunE: run,
	}
)

func init() {
	util.SetupWireFormatFlags(EncodeCmd)

	key := "file"
	EncodeCmd.Flags().String(key, "-", util.WrapString("Path of the TOML script, - reads from stdin"))
	key = "json"
	EncodeCmd.Flags().Bool(key, false, util.WrapString("Print the frames as JSON instead of text"))
}

// Frame is the report for one encoded command
type Frame struct {
	Index   int                    `json:"index"`
	Type    string                 `json:"type"`
	Size    int                    `json:"size"`
	Hex     string                 `json:"hex"`
	Decoded commands.DataStructure `json:"decoded"`
}

func run(cmd *cobra.Command, _ []string) error {
	var in io.Reader = os.Stdin
	if path := viper.GetString("file"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	script, err := ReadScript(in)
	if err != nil {
		return err
	}
	cmds, err := script.Build()
	if err != nil {
		return err
	}

	frames, err := Encode(util.GetWireFormatConfig(), cmds)
	if err != nil {
		return err
	}
	return Print(cmd.OutOrStdout(), frames, viper.GetBool("json"))
}

// Encode marshals cmds in order through one wire format and decodes the
// resulting stream with a second one, as a peer would
func Encode(config common.WireFormatConfig, cmds []commands.DataStructure) ([]Frame, error) {
	sender, err := format.NewWireFormat(config)
	if err != nil {
		return nil, err
	}
	receiver, err := format.NewWireFormat(config)
	if err != nil {
		return nil, err
	}

	var stream bytes.Buffer
	frames := make([]Frame, 0, len(cmds))
	for i, ds := range cmds {
		frame, err := sender.Marshal(ds)
		if err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
		stream.Write(frame)
		frames = append(frames, Frame{
			Index: i + 1,
			Type:  typeName(ds),
			Size:  len(frame),
			Hex:   hex.EncodeToString(frame),
		})
	}
	plog.Debugf("encoded %d commands into %d bytes, %d objects cached", len(cmds), stream.Len(), sender.CachedObjects())

	for i := range frames {
		decoded, err := receiver.UnmarshalFrom(&stream)
		if err != nil {
			return nil, fmt.Errorf("decoding frame %d: %w", i+1, err)
		}
		if !reflect.DeepEqual(decoded, cmds[i]) {
			return nil, fmt.Errorf("frame %d does not round trip: sent %s, decoded %s",
				i+1, commands.Describe(cmds[i]), commands.Describe(decoded))
		}
		frames[i].Decoded = decoded
	}
	return frames, nil
}

// Print writes the frames as text or JSON
func Print(w io.Writer, frames []Frame, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(frames)
	}

	total := 0
	for _, f := range frames {
		fmt.Fprintf(w, "#%-3d %-30s %5d bytes  %s\n", f.Index, f.Type, f.Size, f.Hex)
		total += f.Size
	}
	fmt.Fprintf(w, "%d frames, %d bytes, round trip ok\n", len(frames), total)
	return nil
}

func typeName(ds commands.DataStructure) string {
	if ds == nil {
		return commands.TypeName(commands.NullType)
	}
	return commands.TypeName(ds.DataStructureType())
}
