package registry

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	got, ok := Normalize(TypeTitle, map[string]any{"text": "Welkom"})
	if !ok {
		t.Fatal("title is a registered type")
	}
	want := map[string]any{"text": "Welkom", "size": 24.0, "color": "#000000", "align": "left"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalizeNilBag(t *testing.T) {
	got, ok := Normalize(TypeDivider, nil)
	if !ok {
		t.Fatal("divider is a registered type")
	}
	if got["thickness"] != 1.0 || got["color"] != "#cccccc" {
		t.Errorf("nil bag should yield pure defaults, got %v", got)
	}
}

func TestNormalizeUnknownType(t *testing.T) {
	if _, ok := Normalize("carousel", map[string]any{}); ok {
		t.Fatal("expected ok=false for an unregistered type tag")
	}
}

func TestNormalizeStringifiedValues(t *testing.T) {
	got, _ := Normalize(TypeVideo, map[string]any{
		"autoplay": "true",
		"controls": "false",
	})
	if got["autoplay"] != true {
		t.Errorf(`autoplay "true" should coerce to bool true, got %v`, got["autoplay"])
	}
	if got["controls"] != false {
		t.Errorf(`controls "false" should coerce to bool false, got %v`, got["controls"])
	}

	got, _ = Normalize(TypeTitle, map[string]any{"size": "32"})
	if got["size"] != 32.0 {
		t.Errorf(`size "32" should coerce to float64 32, got %v (%T)`, got["size"], got["size"])
	}
}

func TestNormalizeExtendedJSONWrappers(t *testing.T) {
	got, _ := Normalize(TypeGrid, map[string]any{
		"columns": map[string]any{"$numberInt": "3"},
		"gap":     primitive.M{"$numberDouble": "12.5"},
	})
	if got["columns"] != 3.0 {
		t.Errorf("$numberInt wrapper should unbox to 3, got %v (%T)", got["columns"], got["columns"])
	}
	if got["gap"] != 12.5 {
		t.Errorf("$numberDouble wrapper should unbox to 12.5, got %v (%T)", got["gap"], got["gap"])
	}
}

func TestNormalizeBsonContainers(t *testing.T) {
	got, _ := Normalize(TypeDropdown, map[string]any{
		"options": primitive.A{"Optie 1", "Optie 2"},
	})
	options, isSlice := got["options"].([]any)
	if !isSlice {
		t.Fatalf("options should become []any, got %T", got["options"])
	}
	if len(options) != 2 || options[0] != "Optie 1" || options[1] != "Optie 2" {
		t.Errorf("options = %v", options)
	}
}

func TestNormalizeIntegerWidths(t *testing.T) {
	got, _ := Normalize(TypeTextarea, map[string]any{"rows": int32(6)})
	if got["rows"] != 6.0 {
		t.Errorf("int32 should normalize to float64, got %v (%T)", got["rows"], got["rows"])
	}
	got, _ = Normalize(TypeTextarea, map[string]any{"rows": int64(8)})
	if got["rows"] != 8.0 {
		t.Errorf("int64 should normalize to float64, got %v (%T)", got["rows"], got["rows"])
	}
}

func TestNormalizeBadValueFallsBackToDefault(t *testing.T) {
	got, _ := Normalize(TypeTitle, map[string]any{"size": "big"})
	if got["size"] != 24.0 {
		t.Errorf("unparseable number should fall back to the default, got %v", got["size"])
	}
	got, _ = Normalize(TypeVideo, map[string]any{"autoplay": "yes"})
	if got["autoplay"] != false {
		t.Errorf("unparseable bool should fall back to the default, got %v", got["autoplay"])
	}
}

func TestNormalizeKeepsUndeclaredExtras(t *testing.T) {
	got, _ := Normalize(TypeParagraph, map[string]any{
		"text":   "hallo",
		"legacy": map[string]any{"$numberLong": "7"},
	})
	if got["legacy"] != 7.0 {
		t.Errorf("extras should be unboxed but kept, got %v", got["legacy"])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"text":  "Welkom",
		"size":  map[string]any{"$numberInt": "30"},
		"align": "center",
	}
	once, _ := Normalize(TypeTitle, raw)
	twice, _ := Normalize(TypeTitle, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Normalize is not idempotent:\n once: %v\ntwice: %v", once, twice)
	}
}

func TestNormalizeJSONRoundTrip(t *testing.T) {
	raw := map[string]any{
		"text":    "Welkom",
		"size":    map[string]any{"$numberInt": "30"},
		"rounded": "true",
	}
	normalized, _ := Normalize(TypeImage, raw)

	data, err := json.Marshal(normalized)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	again, _ := Normalize(TypeImage, decoded)
	if !reflect.DeepEqual(normalized, again) {
		t.Errorf("json round trip changed typed values:\nbefore: %v\n after: %v", normalized, again)
	}
	if again["rounded"] != true {
		t.Errorf("rounded = %v (%T), want bool true", again["rounded"], again["rounded"])
	}
	if again["width"] != 100.0 {
		t.Errorf("width = %v (%T), want float64 100", again["width"], again["width"])
	}
}

func TestNormalizeBSONRoundTrip(t *testing.T) {
	normalized, _ := Normalize(TypeDropdown, map[string]any{
		"label":    "Vervoer",
		"options":  []any{"Optie 1", "Optie 2"},
		"required": true,
	})

	data, err := bson.Marshal(bson.M(normalized))
	if err != nil {
		t.Fatal(err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}

	// The driver hands back primitive.A arrays and narrow integer widths;
	// one pass over the decoded bag restores the canonical types.
	again, _ := Normalize(TypeDropdown, map[string]any(decoded))
	if !reflect.DeepEqual(normalized, again) {
		t.Errorf("bson round trip changed typed values:\nbefore: %v\n after: %v", normalized, again)
	}
	options, isSlice := again["options"].([]any)
	if !isSlice || len(options) != 2 || options[1] != "Optie 2" {
		t.Errorf("options = %v (%T)", again["options"], again["options"])
	}
	if again["required"] != true {
		t.Errorf("required = %v (%T), want bool true", again["required"], again["required"])
	}
}

func TestNormalizeComponentPropsUnknownPassthrough(t *testing.T) {
	raw := map[string]any{"anything": "goes"}
	got := NormalizeComponentProps("carousel", raw)
	if !reflect.DeepEqual(got, raw) {
		t.Errorf("unknown tag should pass through unchanged, got %v", got)
	}
}
