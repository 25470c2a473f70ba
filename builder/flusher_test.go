package builder

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFlushFilterAssertsComponentPresence(t *testing.T) {
	filter := flushFilter("t1", "during", 2, "c9")

	if filter["tourid"] != "t1" {
		t.Errorf("tourid = %v", filter["tourid"])
	}
	// A flush for a component deleted mid-edit must not match on the tour
	// document alone.
	if got := filter["fases.during.2.components.componentid"]; got != "c9" {
		t.Errorf("component assertion = %v, want c9", got)
	}
	deleted, isM := filter["deleted"].(bson.M)
	if !isM || deleted["$ne"] != true {
		t.Errorf("deleted guard = %v", filter["deleted"])
	}
}

func TestFlushUpdateTargetsSelectionPath(t *testing.T) {
	props := map[string]any{"label": "Naam"}
	update := flushUpdate("during", 2, props)

	set, isM := update["$set"].(bson.M)
	if !isM {
		t.Fatalf("update = %v", update)
	}
	got, isBag := set["fases.during.2.components.$[c].props"].(map[string]any)
	if !isBag {
		t.Fatalf("$set = %v", set)
	}
	if got["label"] != "Naam" {
		t.Errorf("props = %v", got)
	}
}
