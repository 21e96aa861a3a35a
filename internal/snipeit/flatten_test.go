package snipeit_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"snipelabel/internal/snipeit"
)

func decodeObject(t *testing.T, raw string) map[string]any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var obj map[string]any
	if err := decoder.Decode(&obj); err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return obj
}

func TestFlattenNestedObjectsAndNulls(t *testing.T) {
	obj := decodeObject(t, `{"x": {"y": 1}, "z": null}`)

	got := snipeit.Flatten(obj, snipeit.FlattenOptions{})

	want := snipeit.FlatRecord{"x_y": "1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlattenDropsEmptyStringsAndStringifiesScalars(t *testing.T) {
	obj := decodeObject(t, `{"name": "", "count": 42, "ratio": 0.5, "spare": false}`)

	got := snipeit.Flatten(obj, snipeit.FlattenOptions{})

	want := snipeit.FlatRecord{
		"count": "42",
		"ratio": "0.5",
		"spare": "false",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlattenCollapsesListsByDefault(t *testing.T) {
	obj := decodeObject(t, `{"custom_fields": [{"value": "first"}, {"value": "second"}]}`)

	got := snipeit.Flatten(obj, snipeit.FlattenOptions{})

	// Colliding element keys overwrite silently; the last element wins.
	want := snipeit.FlatRecord{"custom_fields_value": "second"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlattenIndexedListsPreserveEveryElement(t *testing.T) {
	obj := decodeObject(t, `{"custom_fields": [{"value": "first"}, {"value": "second"}]}`)

	got := snipeit.Flatten(obj, snipeit.FlattenOptions{IndexedLists: true})

	want := snipeit.FlatRecord{
		"custom_fields_0_value": "first",
		"custom_fields_1_value": "second",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestFlattenDeepNesting(t *testing.T) {
	obj := decodeObject(t, `{"model": {"manufacturer": {"name": "Cisco", "id": 7}}, "status_label": {"name": "Deployed"}}`)

	got := snipeit.Flatten(obj, snipeit.FlattenOptions{})

	want := snipeit.FlatRecord{
		"model_manufacturer_name": "Cisco",
		"model_manufacturer_id":   "7",
		"status_label_name":       "Deployed",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Flatten = %v, want %v", got, want)
	}
}

func TestSortedKeys(t *testing.T) {
	record := snipeit.FlatRecord{"b": "2", "a": "1", "c": "3"}
	if got := record.SortedKeys(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("SortedKeys = %v", got)
	}
}
