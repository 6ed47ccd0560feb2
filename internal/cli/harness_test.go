package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/namanrajpal/openchamber/internal/testutil"
)

// harness runs the CLI against a temporary opencode config root and an
// isolated occfg config file.
type harness struct {
	*testutil.ConfigRoot

	t       *testing.T
	root    string
	work    string
	cfgPath string
	stderr  bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cr := testutil.NewConfigRoot(t)
	dir := filepath.Dir(cr.Path)
	h := &harness{
		ConfigRoot: cr,
		t:          t,
		root:       cr.Path,
		work:       filepath.Join(dir, "work"),
		cfgPath:    filepath.Join(dir, "occfg.toml"),
	}
	if err := os.MkdirAll(h.work, 0o755); err != nil {
		t.Fatal(err)
	}
	return h
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	full := append([]string{"--config", h.cfgPath, "--config-root", h.root}, args...)

	var out bytes.Buffer
	h.stderr.Reset()
	app := New()
	rootCmd := app.createRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&h.stderr)
	rootCmd.SetArgs(full)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) runJSON(args ...string) (Response, error) {
	h.t.Helper()
	out, err := h.run(append([]string{"--json"}, args...)...)
	var resp Response
	if jerr := json.Unmarshal([]byte(out), &resp); jerr != nil {
		h.t.Fatalf("output is not a JSON envelope: %v\n%s", jerr, out)
	}
	return resp, err
}

// dataOf re-decodes resp.Data into a generic map.
func dataOf(t *testing.T, resp Response) map[string]any {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("data is not an object: %s", raw)
	}
	return m
}
