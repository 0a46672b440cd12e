package actionopts

import (
	"bytes"
	"errors"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/actionopts/i18n"
	"github.com/reoring/actionopts/internal/engine"
)

// FromJSON decodes raw options from JSON. Numbers are kept as json.Number.
// A JSON null yields a nil map, which leaves every field at its default.
func FromJSON(data []byte) (map[string]any, error) {
	dec := gojson.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, singleIssue(CodeParseError, i18n.T(CodeParseError, nil), err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, singleIssue(CodeParseError, i18n.T(CodeParseError, nil), err)
	}
	return rawObject(v)
}

// FromJSONStrict is FromJSON but rejects a document in which an object
// repeats a key. The issue path points at the repeated key.
func FromJSONStrict(data []byte) (map[string]any, error) {
	raw, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	ptr, err := engine.DuplicateKey(data)
	if err != nil {
		return nil, singleIssue(CodeParseError, i18n.T(CodeParseError, nil), err)
	}
	if ptr != "" {
		return nil, Issues{Issue{
			Path:    ptr,
			Code:    CodeDuplicateKey,
			Message: i18n.T(CodeDuplicateKey, map[string]string{"path": ptr}),
		}}
	}
	return raw, nil
}

// FromYAML decodes raw options from a YAML document. An empty document or a
// null yields a nil map.
func FromYAML(data []byte) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, singleIssue(CodeParseError, i18n.T(CodeParseError, nil), err)
	}
	return rawObject(yamlNormalizeValue(v))
}

func rawObject(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t, nil
	default:
		actual := describeActual(v)
		return nil, Issues{Issue{
			Path:    "/",
			Code:    CodeInvalidInput,
			Message: i18n.T(CodeInvalidInput, map[string]string{"actual": actual}),
			Params:  map[string]any{"actual": actual},
		}}
	}
}

func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
