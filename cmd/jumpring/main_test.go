package main

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"xdao.co/jumpring/contract"
	"xdao.co/jumpring/model"
)

type harness struct {
	t    *testing.T
	dir  string
	args []string
}

func newCLI(t *testing.T) *harness {
	dir := t.TempDir()
	return &harness{t: t, dir: dir, args: []string{"--backend", "leveldb", "--leveldb-dir", filepath.Join(dir, "state"), "--log-level", "error"}}
}

func (c *harness) run(args ...string) (int, string, string) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	code := run(append(append([]string(nil), c.args...), args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func (c *harness) mustRun(args ...string) string {
	c.t.Helper()
	code, out, errOut := c.run(args...)
	require.Equal(c.t, 0, code, "stderr: %s", errOut)
	return out
}

func TestCLI_RegistrationFlow(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", "--sender", "wasm1owner", "--dna-length", "8", "--dna-modulus", "10")

	code, _, errOut := c.run("init", "--sender", "wasm1owner")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "AlreadyInitialized")

	// No authority peer is configured, so the notification fails after the
	// registration has been committed.
	code, out, errOut := c.run("imbibe", "--sender", "wasm1hugh", "--name", "Hugh", "--species", "Borg", "--sapience", "High")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "DownstreamRejected")
	require.Contains(t, out, `"swigs_remaining"`)

	var swigs struct{ Swigs int }
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("swigs")), &swigs))
	require.Equal(t, 2, swigs.Swigs)

	var rec struct {
		Address   string `json:"address"`
		CyborgDNA []byte `json:"cyborg_dna"`
		Species   struct {
			SapienceLevel string `json:"sapience_level"`
		} `json:"species"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("imbiber", "wasm1hugh")), &rec))
	require.Equal(t, "wasm1hugh", rec.Address)
	require.Equal(t, "High", rec.Species.SapienceLevel)
	require.Len(t, rec.CyborgDNA, 8)

	code, _, errOut = c.run("imbiber", "wasm1nobody")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "NotRegistered")
}

func TestCLI_StepWithoutPortalPeerIsQueryError(t *testing.T) {
	c := newCLI(t)
	c.mustRun("init", "--sender", "wasm1owner")
	_, _, _ = c.run("imbibe", "--sender", "wasm1hugh", "--name", "Hugh", "--sapience", "High")

	code, _, errOut := c.run("step", "--sender", "wasm1hugh", "--portal", "wasm1portal", "--destination", "wasm1elsewhen", "--cyberdized", "--funds", "1PORT")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "Query")

	code, _, errOut = c.run("step", "--sender", "wasm1hugh", "--portal", "wasm1portal", "--destination", "wasm1elsewhen", "--funds", "one")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "InvalidRequest")
}

func TestCLI_StepCarriesTravelerSpecies(t *testing.T) {
	var (
		info contract.MessageInfo
		msg  contract.ExecuteMsg
	)
	cmd := stepCmd()
	cmd.Action = func(cctx *cli.Context) error {
		var err error
		info, msg, err = stepMsg(cctx)
		return err
	}
	app := &cli.App{Commands: []*cli.Command{cmd}, Writer: io.Discard, ErrWriter: io.Discard, ExitErrHandler: func(*cli.Context, error) {}}
	require.NoError(t, app.Run([]string{"jumpring", "step",
		"--sender", "wasm1hugh", "--portal", "wasm1portal", "--destination", "wasm1elsewhen",
		"--traveler", "Hugh", "--traveler-species", "Borg", "--traveler-sapience", "High",
		"--cyberdized", "--funds", "1PORT"}))

	require.Equal(t, model.Identity("wasm1hugh"), info.Sender)
	require.Len(t, info.Funds, 1)
	require.Equal(t, "1PORT", info.Funds[0].String())
	tr := msg.StepThroughJumpRing.Traveler
	require.Equal(t, model.Species{Name: "Borg", SapienceLevel: model.SapienceHigh}, tr.Species)
	require.True(t, tr.Cyberdized)

	c := newCLI(t)
	code, _, errOut := c.run("step", "--sender", "wasm1hugh", "--portal", "wasm1portal", "--destination", "wasm1elsewhen", "--traveler-sapience", "Godlike")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "InvalidRequest")
}

func TestCLI_DNA(t *testing.T) {
	c := newCLI(t)
	var got []int
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("dna", "--length", "8", "--modulus", "10", "hello")), &got))
	require.Equal(t, []int{8, 8, 5, 9, 6, 3, 4, 7}, got)

	code, _, errOut := c.run("dna", "--length", "33", "hello")
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "OutOfRange")
}

func TestCLI_ExportImport(t *testing.T) {
	src := newCLI(t)
	src.mustRun("init", "--sender", "wasm1owner")
	_, _, _ = src.run("imbibe", "--sender", "wasm1hugh", "--name", "Hugh")

	archive := filepath.Join(t.TempDir(), "state.tar")
	root := strings.TrimSpace(src.mustRun("export", archive))
	require.Equal(t, root, strings.TrimSpace(src.mustRun("root")))

	dst := newCLI(t)
	imported := strings.TrimSpace(dst.mustRun("import", "--expect-root", root, archive))
	require.Equal(t, root, imported)
	require.Equal(t, root, strings.TrimSpace(dst.mustRun("root")))

	code, _, _ := dst.run("import", archive)
	require.Equal(t, 1, code, "import into a non-empty backend must fail")
}

func TestCLI_Backends(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("backends")
	require.Contains(t, out, "leveldb")
	require.Contains(t, out, "badger")
	require.NotContains(t, out, "memory")
}
