package encode

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/ValentinKolb/owire/wire/commands"
	"github.com/ValentinKolb/owire/wire/common"
)

const testScript = `
[[command]]
type = "message-pull"
command-id = 1
response-required = true
consumer = "ID:host-1:1:7"
destination = "queue://orders"
timeout = 1000

[[command]]
type = "message-pull"
command-id = 2
consumer = "ID:host-1:1:7"
destination = "queue://orders"

[[command]]
type = "consumer-control"
command-id = 3
consumer = "ID:host-1:1:7"
prefetch = 100
start = true

[[command]]
type = "data-response"
correlation-id = 2
broker = "broker-a"

[[command]]
type = "partial"
command-id = 4
data = "00ff10"

[[command]]
type = "null"
`

// TestReadScript tests decoding a script into commands
func TestReadScript(t *testing.T) {
	script, err := ReadScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}
	cmds, err := script.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(cmds) != 6 {
		t.Fatalf("expected 6 commands, got %d", len(cmds))
	}

	expected := &commands.MessagePull{
		BaseCommand: commands.BaseCommand{CommandID: 1, ResponseRequired: true},
		ConsumerID:  &commands.ConsumerID{ConnectionID: "ID:host-1", SessionID: 1, Value: 7},
		Destination: &commands.ActiveMQQueue{ActiveMQDestination: commands.ActiveMQDestination{PhysicalName: "orders"}},
		Timeout:     1000,
	}
	if !reflect.DeepEqual(cmds[0], expected) {
		t.Errorf("expected %v, got %v", expected, cmds[0])
	}

	partial, ok := cmds[4].(*commands.PartialCommand)
	if !ok {
		t.Fatalf("expected PartialCommand, got %s", commands.Describe(cmds[4]))
	}
	if !reflect.DeepEqual(partial.Data, []byte{0x00, 0xFF, 0x10}) {
		t.Errorf("unexpected partial data %x", partial.Data)
	}
	if cmds[5] != nil {
		t.Errorf("expected nil for the null type, got %v", cmds[5])
	}
}

// TestScriptErrors tests invalid scripts
func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"UnknownType", "[[command]]\ntype = \"nope\"\n"},
		{"UnknownKey", "[[command]]\ntype = \"flush\"\ncolour = \"red\"\n"},
		{"BadConsumer", "[[command]]\ntype = \"message-pull\"\nconsumer = \"not-an-id\"\n"},
		{"BadDestination", "[[command]]\ntype = \"message-pull\"\ndestination = \"mailbox://x\"\n"},
		{"BadHex", "[[command]]\ntype = \"partial\"\ndata = \"zz\"\n"},
		{"MissingID", "[[command]]\ntype = \"consumer-id\"\n"},
		{"Syntax", "[[command]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script, err := ReadScript(strings.NewReader(tt.script))
			if err == nil {
				_, err = script.Build()
			}
			if err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

// TestEncode tests encoding with every encoding mode
func TestEncode(t *testing.T) {
	script, err := ReadScript(strings.NewReader(testScript))
	if err != nil {
		t.Fatalf("ReadScript failed: %v", err)
	}
	cmds, err := script.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	cached := common.DefaultWireFormatConfig()
	uncached := cached
	uncached.CacheEnabled = false
	loose := uncached
	loose.TightEncoding = false

	sizes := map[string]int{}
	for name, config := range map[string]common.WireFormatConfig{"cached": cached, "uncached": uncached, "loose": loose} {
		t.Run(name, func(t *testing.T) {
			frames, err := Encode(config, cmds)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			if len(frames) != len(cmds) {
				t.Fatalf("expected %d frames, got %d", len(cmds), len(frames))
			}
			sizes[name] = frames[1].Size
		})
	}

	// the second pull only references the cached consumer and destination
	if sizes["cached"] >= sizes["uncached"] {
		t.Errorf("expected the cached frame to be smaller: %d >= %d", sizes["cached"], sizes["uncached"])
	}
}

// TestPrint tests the text and JSON output
func TestPrint(t *testing.T) {
	frames, err := Encode(common.DefaultWireFormatConfig(), []commands.DataStructure{
		&commands.KeepAliveInfo{BaseCommand: commands.BaseCommand{CommandID: 42, ResponseRequired: true}},
	})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	var text bytes.Buffer
	if err := Print(&text, frames, false); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	if !strings.Contains(text.String(), "000000070a01010000002a") {
		t.Errorf("unexpected text output: %s", text.String())
	}
	if !strings.Contains(text.String(), "1 frames") {
		t.Errorf("missing summary line: %s", text.String())
	}

	var out bytes.Buffer
	if err := Print(&out, frames, true); err != nil {
		t.Fatalf("Print failed: %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(out.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["type"] != "keep-alive" {
		t.Errorf("unexpected JSON output: %s", out.String())
	}
}
