package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/namanrajpal/openchamber/internal/reconcile"
	"github.com/namanrajpal/openchamber/internal/value"
)

// fieldFlags collects field values from --set, --unset, --body,
// --body-file and --from-json.
type fieldFlags struct {
	sets     []string
	unsets   []string
	body     string
	bodyFile string
	fromJSON string
}

func (f *fieldFlags) register(fl *pflag.FlagSet, bodyField string, allowUnset bool) {
	fl.StringArrayVar(&f.sets, "set", nil, "set a field: key=value (value is parsed as YAML; null deletes)")
	fl.StringVar(&f.body, "body", "", fmt.Sprintf("set %s (the markdown body)", bodyField))
	fl.StringVar(&f.bodyFile, "body-file", "", fmt.Sprintf("read %s from a file (- for stdin)", bodyField))
	fl.StringVar(&f.fromJSON, "from-json", "", "read a JSON object of fields from a file (- for stdin)")
	if allowUnset {
		fl.StringArrayVar(&f.unsets, "unset", nil, "delete a field from every store")
	}
}

// updates returns the requested changes in application order: --from-json
// (key order), --set, --unset, then the body.
func (f *fieldFlags) updates(cmd *cobra.Command, bodyField string) ([]reconcile.Update, error) {
	var out []reconcile.Update

	if f.fromJSON != "" {
		data, err := readInput(cmd.InOrStdin(), f.fromJSON)
		if err != nil {
			return nil, err
		}
		fields, err := parseJSONFields(data)
		if err != nil {
			return nil, err
		}
		out = append(out, reconcile.UpdatesFromMap(fields)...)
	}

	for _, arg := range f.sets {
		key, raw, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field format: %s (use key=value)", arg)
		}
		out = append(out, reconcile.Update{Field: key, Value: parseFieldValue(raw)})
	}

	for _, key := range f.unsets {
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("--unset needs a field name")
		}
		out = append(out, reconcile.Update{Field: key, Value: value.Null()})
	}

	bodySet := cmd.Flags().Changed("body")
	if bodySet && f.bodyFile != "" {
		return nil, fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if bodySet {
		out = append(out, reconcile.Update{Field: bodyField, Value: value.String(f.body)})
	}
	if f.bodyFile != "" {
		data, err := readInput(cmd.InOrStdin(), f.bodyFile)
		if err != nil {
			return nil, err
		}
		out = append(out, reconcile.Update{Field: bodyField, Value: value.String(string(data))})
	}

	return out, nil
}

// fieldsFromUpdates folds updates into a field map; later updates win.
func fieldsFromUpdates(updates []reconcile.Update) value.Fields {
	out := value.Fields{}
	for _, u := range updates {
		out[u.Field] = u.Value
	}
	return out
}

// parseFieldValue decodes a --set value as a YAML scalar or flow value so
// numbers, booleans, lists and null keep their type. An empty value or one
// that is not valid YAML is taken as a literal string.
func parseFieldValue(raw string) value.Value {
	if strings.TrimSpace(raw) == "" {
		return value.String(raw)
	}
	var decoded interface{}
	if err := yaml.Unmarshal([]byte(raw), &decoded); err != nil {
		return value.String(raw)
	}
	return value.FromAny(decoded)
}

func parseJSONFields(data []byte) (map[string]value.Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	fields, ok := value.FieldsFromAny(raw)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object of fields")
	}
	return fields, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
