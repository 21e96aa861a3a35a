package snipeit

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// FlatRecord maps flattened field keys to scalar string values.
type FlatRecord map[string]string

// SortedKeys returns the record's keys in lexical order for stable output.
func (r FlatRecord) SortedKeys() []string {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FlattenOptions controls key composition during flattening.
type FlattenOptions struct {
	// Separator joins parent and child keys. Defaults to "_".
	Separator string
	// IndexedLists inserts the element index into list keys. When false,
	// list elements collapse into the parent key and later elements
	// overwrite colliding keys, matching the templates this tool has
	// always produced.
	IndexedLists bool
}

// Flatten converts a decoded JSON object into a single-level record.
//
// Nested objects contribute parent-joined keys. Null and empty-string values
// are dropped entirely rather than rendered as "". Every surviving scalar is
// stringified. Numbers must be decoded with json.Decoder.UseNumber to
// round-trip without float formatting artifacts; Fetch does this.
func Flatten(root map[string]any, opts FlattenOptions) FlatRecord {
	if opts.Separator == "" {
		opts.Separator = "_"
	}
	record := make(FlatRecord)
	flattenObject("", root, record, opts)
	return record
}

func flattenObject(prefix string, obj map[string]any, record FlatRecord, opts FlattenOptions) {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		flattenValue(joinKey(prefix, key, opts.Separator), obj[key], record, opts)
	}
}

func flattenValue(key string, node any, record FlatRecord, opts FlattenOptions) {
	switch v := node.(type) {
	case nil:
		// dropped, never an empty string
	case map[string]any:
		flattenObject(key, v, record, opts)
	case []any:
		for i, element := range v {
			elementKey := key
			if opts.IndexedLists {
				elementKey = joinKey(key, strconv.Itoa(i), opts.Separator)
			}
			flattenValue(elementKey, element, record, opts)
		}
	case string:
		if v != "" && key != "" {
			record[key] = v
		}
	case json.Number:
		if key != "" {
			record[key] = v.String()
		}
	case bool:
		if key != "" {
			record[key] = strconv.FormatBool(v)
		}
	case float64:
		if key != "" {
			record[key] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	default:
		if key != "" {
			record[key] = fmt.Sprint(v)
		}
	}
}

func joinKey(prefix, key, sep string) string {
	if prefix == "" {
		return key
	}
	return prefix + sep + key
}
