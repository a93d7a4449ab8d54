package base

import (
	"testing"

	"github.com/ValentinKolb/owire/wire/common"
	"github.com/ValentinKolb/owire/wire/format"
)

func mustWireFormat(t *testing.T, config common.WireFormatConfig) *format.WireFormat {
	t.Helper()
	wf, err := format.NewWireFormat(config)
	if err != nil {
		t.Fatalf("NewWireFormat failed: %v", err)
	}
	return wf
}
