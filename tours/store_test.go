package tours

import (
	"errors"
	"testing"

	"tourbase/models"
	"tourbase/registry"
)

func TestNewTourSeedsEveryFase(t *testing.T) {
	tour := NewTour("Museum X", "u123")

	if len(tour.Fases) != len(models.FaseOrder) {
		t.Fatalf("expected %d fases, got %d", len(models.FaseOrder), len(tour.Fases))
	}
	for _, fase := range models.FaseOrder {
		sections := tour.Fases[fase]
		if len(sections) != 1 {
			t.Errorf("fase %s: expected 1 seeded section, got %d", fase, len(sections))
			continue
		}
		if sections[0].Title != models.DefaultSectionTitle {
			t.Errorf("fase %s: seeded title = %q", fase, sections[0].Title)
		}
		if sections[0].Components == nil {
			t.Errorf("fase %s: components slice should be empty, not nil", fase)
		}
	}
}

func TestAddSection(t *testing.T) {
	tour := NewTour("Museum X", "u123")

	section, err := AddSection(tour, models.FaseDuring)
	if err != nil {
		t.Fatal(err)
	}
	if section.Title != models.DefaultSectionTitle {
		t.Errorf("new section title = %q", section.Title)
	}
	if len(tour.Fases[models.FaseDuring]) != 2 {
		t.Errorf("expected 2 sections in during, got %d", len(tour.Fases[models.FaseDuring]))
	}

	if _, err := AddSection(tour, "aftermath"); !errors.Is(err, ErrInvalidFase) {
		t.Errorf("unknown fase: err = %v, want ErrInvalidFase", err)
	}
}

func TestRenameSection(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseBefore][0].SectionID

	if err := RenameSection(tour, models.FaseBefore, sectionID, "Praktische info"); err != nil {
		t.Fatal(err)
	}
	if got := tour.Fases[models.FaseBefore][0].Title; got != "Praktische info" {
		t.Errorf("title = %q", got)
	}

	if err := RenameSection(tour, models.FaseBefore, sectionID, "   "); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("whitespace title: err = %v, want ErrEmptyTitle", err)
	}
	if got := tour.Fases[models.FaseBefore][0].Title; got != "Praktische info" {
		t.Errorf("rejected rename must not touch state, title = %q", got)
	}

	if err := RenameSection(tour, models.FaseBefore, "nope", "X"); !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("missing section: err = %v, want ErrSectionNotFound", err)
	}
}

func TestDeleteSectionKeepsLastOne(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	only := tour.Fases[models.FaseArrival][0].SectionID

	if err := DeleteSection(tour, models.FaseArrival, only); !errors.Is(err, ErrLastSection) {
		t.Fatalf("deleting the only section: err = %v, want ErrLastSection", err)
	}
	if len(tour.Fases[models.FaseArrival]) != 1 {
		t.Fatal("refused delete must leave the section in place")
	}

	added, _ := AddSection(tour, models.FaseArrival)
	if err := DeleteSection(tour, models.FaseArrival, added.SectionID); err != nil {
		t.Fatal(err)
	}
	if len(tour.Fases[models.FaseArrival]) != 1 {
		t.Errorf("expected 1 section after delete, got %d", len(tour.Fases[models.FaseArrival]))
	}
}

func TestAddComponentSeedsDefaults(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseDuring][0].SectionID

	component, err := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeTitle)
	if err != nil {
		t.Fatal(err)
	}
	if component.Props["size"] != 24.0 || component.Props["align"] != "left" {
		t.Errorf("title defaults not seeded: %v", component.Props)
	}

	if _, err := AddComponent(tour, models.FaseDuring, sectionID, "carousel"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type: err = %v, want ErrUnknownType", err)
	}
}

func TestUpdateComponentMerges(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseDuring][0].SectionID
	component, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeTextInput)

	updated, err := UpdateComponent(tour, models.FaseDuring, sectionID, component.ComponentID,
		map[string]any{"label": "Naam"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Props["label"] != "Naam" {
		t.Errorf("label = %v", updated.Props["label"])
	}
	if updated.Props["required"] != false {
		t.Errorf("partial update must keep unmentioned fields, required = %v", updated.Props["required"])
	}

	if _, err := UpdateComponent(tour, models.FaseDuring, sectionID, "ghost", nil); !errors.Is(err, ErrComponentMissing) {
		t.Errorf("missing component: err = %v, want ErrComponentMissing", err)
	}
}

func TestDeleteComponent(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseAfter][0].SectionID
	component, _ := AddComponent(tour, models.FaseAfter, sectionID, registry.TypeParagraph)

	if err := DeleteComponent(tour, models.FaseAfter, sectionID, component.ComponentID); err != nil {
		t.Fatal(err)
	}
	if got := len(tour.Fases[models.FaseAfter][0].Components); got != 0 {
		t.Errorf("expected 0 components, got %d", got)
	}
	if err := DeleteComponent(tour, models.FaseAfter, sectionID, component.ComponentID); !errors.Is(err, ErrComponentMissing) {
		t.Errorf("second delete: err = %v, want ErrComponentMissing", err)
	}
}

func TestReorderComponents(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseDuring][0].SectionID
	a, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeTitle)
	b, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeParagraph)
	c, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeImage)
	idA, idB, idC := a.ComponentID, b.ComponentID, c.ComponentID

	if err := ReorderComponents(tour, models.FaseDuring, sectionID, []string{idC, idA, idB}); err != nil {
		t.Fatal(err)
	}
	got := tour.Fases[models.FaseDuring][0].Components
	if got[0].ComponentID != idC || got[1].ComponentID != idA || got[2].ComponentID != idB {
		t.Errorf("order after reorder: %s %s %s", got[0].ComponentID, got[1].ComponentID, got[2].ComponentID)
	}
}

func TestReorderRejectsNonPermutations(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseDuring][0].SectionID
	a, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeTitle)
	b, _ := AddComponent(tour, models.FaseDuring, sectionID, registry.TypeParagraph)
	idA, idB := a.ComponentID, b.ComponentID

	cases := map[string][]string{
		"too short":  {idA},
		"too long":   {idA, idB, idB},
		"duplicate":  {idA, idA},
		"foreign id": {idA, "ghost"},
	}
	for name, order := range cases {
		if err := ReorderComponents(tour, models.FaseDuring, sectionID, order); !errors.Is(err, ErrNotAPermutation) {
			t.Errorf("%s: err = %v, want ErrNotAPermutation", name, err)
		}
		got := tour.Fases[models.FaseDuring][0].Components
		if got[0].ComponentID != idA || got[1].ComponentID != idB {
			t.Fatalf("%s: rejected reorder must not touch state", name)
		}
	}
}

func TestNormalizeTour(t *testing.T) {
	tour := NewTour("Museum X", "u123")
	sectionID := tour.Fases[models.FaseBefore][0].SectionID
	tour.Fases[models.FaseBefore][0].Components = []models.Component{{
		ComponentID: "c1",
		Type:        registry.TypeTitle,
		Props: map[string]any{
			"text": "Welkom",
			"size": map[string]any{"$numberInt": "30"},
		},
	}}

	NormalizeTour(tour)

	section, err := findSection(tour, models.FaseBefore, sectionID)
	if err != nil {
		t.Fatal(err)
	}
	props := section.Components[0].Props
	if props["size"] != 30.0 {
		t.Errorf("size = %v (%T), want 30.0", props["size"], props["size"])
	}
	if props["align"] != "left" {
		t.Errorf("defaults should be filled in, align = %v", props["align"])
	}
}
