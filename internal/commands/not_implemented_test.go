package commands_test

import (
	"bytes"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/spf13/cobra"

	"github.com/debmagic/debmagic/internal/commands"
	"github.com/debmagic/debmagic/internal/logging"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestNotImplementedCommands(t *testing.T) {
	spec.Run(t, "Commands", testNotImplementedCommands, spec.Report(report.Terminal{}))
}

func testNotImplementedCommands(t *testing.T, when spec.G, it spec.S) {
	var outBuf bytes.Buffer

	it.Before(func() {
		outBuf.Reset()
	})

	for name, newCommand := range map[string]func(logging.Logger) *cobra.Command{
		"test":  commands.Test,
		"check": commands.Check,
	} {
		name, newCommand := name, newCommand

		when("#"+name, func() {
			it("reports that it is not implemented", func() {
				command := newCommand(logging.NewLogWithWriters(&outBuf, &outBuf))
				command.SetArgs([]string{})
				h.AssertNil(t, command.Execute())
				h.AssertEq(t, outBuf.String(), name+": not implemented\n")
			})
		})
	}
}
