package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chtz/miniscript/internal/runtime"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// loadDataFile reads --data into a JSON document, patches it with any
// --set key=value overrides (gjson/sjson, no full unmarshal), and
// converts the result into the data store shape evaluate expects.
// A .yaml/.yml file is decoded once into a map[string]any first and
// re-encoded to JSON so the same gjson-based conversion path handles
// both formats.
func loadDataFile(path string, sets []string) (map[string]runtime.Value, error) {
	doc := "{}"

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading data file: %w", err)
		}
		if isYAMLFile(path) {
			var generic map[string]any
			if err := yaml.Unmarshal(raw, &generic); err != nil {
				return nil, fmt.Errorf("parsing YAML data file: %w", err)
			}
			encoded, err := yamlMapToJSON(generic)
			if err != nil {
				return nil, err
			}
			doc = encoded
		} else {
			if !gjson.ValidBytes(raw) {
				return nil, fmt.Errorf("data file %s is not valid JSON", path)
			}
			doc = string(raw)
		}
	}

	for _, kv := range sets {
		key, rawValue, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q must be in key=value form", kv)
		}
		patched, err := sjson.SetRaw(doc, key, jsonLiteral(rawValue))
		if err != nil {
			return nil, fmt.Errorf("applying --set %q: %w", kv, err)
		}
		doc = patched
	}

	data := make(map[string]runtime.Value)
	gjson.Parse(doc).ForEach(func(key, value gjson.Result) bool {
		data[key.String()] = gjsonToValue(value)
		return true
	})
	return data, nil
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// jsonLiteral treats a --set value as JSON when it parses as such
// (numbers, booleans, null, quoted strings, objects, arrays), and
// falls back to a quoted JSON string otherwise, so `--set name=Ada`
// does not need to be written as `--set name='"Ada"'`.
func jsonLiteral(raw string) string {
	if gjson.Valid(raw) {
		return raw
	}
	return strconv.Quote(raw)
}

func yamlMapToJSON(m map[string]any) (string, error) {
	doc := "{}"
	for key, val := range m {
		raw, err := anyToJSONLiteral(val)
		if err != nil {
			return "", err
		}
		patched, err := sjson.SetRaw(doc, key, raw)
		if err != nil {
			return "", fmt.Errorf("converting YAML key %q: %w", key, err)
		}
		doc = patched
	}
	return doc, nil
}

func anyToJSONLiteral(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(val), nil
	case string:
		return strconv.Quote(val), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case uint64:
		return strconv.FormatUint(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case []any:
		doc := "[]"
		for i, elem := range val {
			raw, err := anyToJSONLiteral(elem)
			if err != nil {
				return "", err
			}
			patched, err := sjson.SetRaw(doc, strconv.Itoa(i), raw)
			if err != nil {
				return "", err
			}
			doc = patched
		}
		return doc, nil
	case map[string]any:
		return yamlMapToJSON(val)
	default:
		return "", fmt.Errorf("unsupported YAML value type %T", v)
	}
}

func gjsonToValue(r gjson.Result) runtime.Value {
	switch r.Type {
	case gjson.Null:
		return runtime.Null{}
	case gjson.True, gjson.False:
		return runtime.Bool(r.Bool())
	case gjson.Number:
		return runtime.Number(r.Float())
	case gjson.String:
		return runtime.String(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []runtime.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, gjsonToValue(v))
				return true
			})
			return &runtime.Array{Elements: elems}
		}
		rec := runtime.NewRecord()
		r.ForEach(func(k, v gjson.Result) bool {
			rec.Set(k.String(), gjsonToValue(v))
			return true
		})
		return rec
	default:
		return runtime.Null{}
	}
}

// dumpDataStore renders the post-evaluation data store as a JSON
// document, built incrementally with sjson so the conversion stays on
// the same raw-JSON-text path as loadDataFile.
func dumpDataStore(data map[string]runtime.Value) (string, error) {
	doc := "{}"
	for key, val := range data {
		patched, err := sjson.SetRaw(doc, key, valueToJSONLiteral(val))
		if err != nil {
			return "", fmt.Errorf("encoding data store key %q: %w", key, err)
		}
		doc = patched
	}
	return doc, nil
}

func valueToJSONLiteral(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.Null:
		return "null"
	case runtime.Bool:
		return strconv.FormatBool(bool(val))
	case runtime.Number:
		return strconv.FormatFloat(float64(val), 'g', -1, 64)
	case runtime.String:
		return strconv.Quote(string(val))
	case *runtime.Array:
		doc := "[]"
		for i, elem := range val.Elements {
			patched, _ := sjson.SetRaw(doc, strconv.Itoa(i), valueToJSONLiteral(elem))
			doc = patched
		}
		return doc
	case *runtime.Record:
		doc := "{}"
		for _, key := range val.Keys {
			fieldVal, _ := val.Get(key)
			patched, _ := sjson.SetRaw(doc, key, valueToJSONLiteral(fieldVal))
			doc = patched
		}
		return doc
	default:
		return strconv.Quote(runtime.Stringify(v))
	}
}
