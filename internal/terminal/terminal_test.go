package terminal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"

	"github.com/debmagic/debmagic/internal/terminal"
	h "github.com/debmagic/debmagic/testhelpers"
)

func TestTerminal(t *testing.T) {
	spec.Run(t, "Terminal", testTerminal, spec.Report(report.Terminal{}))
}

func testTerminal(t *testing.T, when spec.G, it spec.S) {
	when("the streams are regular files", func() {
		var term terminal.Terminal

		it.Before(func() {
			f, err := os.Create(filepath.Join(t.TempDir(), "stream"))
			h.AssertNil(t, err)
			t.Cleanup(func() { f.Close() })
			term = terminal.New(f, f, f)
		})

		it("is not interactive", func() {
			h.AssertFalse(t, term.IsInteractive())
		})

		it("cannot be put into raw mode", func() {
			_, err := term.MakeRaw()
			h.AssertError(t, err, "raw mode")
		})

		it("has no size", func() {
			_, _, err := term.Size()
			h.AssertNotNil(t, err)
		})

		it("writes to the files", func() {
			_, err := term.Stdout().Write([]byte("hello"))
			h.AssertNil(t, err)
		})
	})
}
