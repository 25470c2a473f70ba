package tours

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tourbase/models"
	"tourbase/registry"
	"tourbase/utils"
)

var (
	ErrEmptyTitle       = errors.New("section title must not be empty")
	ErrLastSection      = errors.New("cannot delete the last section of a fase")
	ErrSectionNotFound  = errors.New("section not found")
	ErrInvalidFase      = errors.New("unknown fase")
	ErrUnknownType      = errors.New("unknown component type")
	ErrComponentMissing = errors.New("component not found")
	ErrNotAPermutation  = errors.New("order is not a permutation of the section's components")
)

// NewTour seeds one default-titled, empty section into every fase.
func NewTour(name, userID string) *models.Tour {
	fases := make(map[string][]models.Section, len(models.FaseOrder))
	for _, fase := range models.FaseOrder {
		fases[fase] = []models.Section{{
			SectionID:  utils.GenerateID(14),
			Title:      models.DefaultSectionTitle,
			Components: []models.Component{},
		}}
	}
	return &models.Tour{
		TourID:    utils.GenerateID(14),
		Name:      name,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
		Fases:     fases,
	}
}

// AddSection appends a default-titled section to a fase.
func AddSection(t *models.Tour, fase string) (*models.Section, error) {
	if !models.IsValidFase(fase) {
		return nil, ErrInvalidFase
	}
	section := models.Section{
		SectionID:  utils.GenerateID(14),
		Title:      models.DefaultSectionTitle,
		Components: []models.Component{},
	}
	t.Fases[fase] = append(t.Fases[fase], section)
	return &t.Fases[fase][len(t.Fases[fase])-1], nil
}

// RenameSection rejects empty or whitespace-only titles before touching state.
func RenameSection(t *models.Tour, fase, sectionID, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	section, err := findSection(t, fase, sectionID)
	if err != nil {
		return err
	}
	section.Title = title
	return nil
}

// DeleteSection refuses to remove the only section of a fase.
func DeleteSection(t *models.Tour, fase, sectionID string) error {
	if !models.IsValidFase(fase) {
		return ErrInvalidFase
	}
	sections := t.Fases[fase]
	idx := -1
	for i := range sections {
		if sections[i].SectionID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrSectionNotFound
	}
	if len(sections) <= 1 {
		return ErrLastSection
	}
	t.Fases[fase] = append(sections[:idx], sections[idx+1:]...)
	return nil
}

// AddComponent appends a component seeded with the registry defaults.
func AddComponent(t *models.Tour, fase, sectionID, typeTag string) (*models.Component, error) {
	defaults, ok := registry.Defaults(typeTag)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typeTag)
	}
	section, err := findSection(t, fase, sectionID)
	if err != nil {
		return nil, err
	}
	component := models.Component{
		ComponentID: utils.GenerateID(14),
		Type:        typeTag,
		Props:       defaults,
	}
	section.Components = append(section.Components, component)
	return &section.Components[len(section.Components)-1], nil
}

// UpdateComponent merges newProps over the stored props, never replacing the
// bag wholesale, so the defaults invariant survives partial writes.
func UpdateComponent(t *models.Tour, fase, sectionID, componentID string, newProps map[string]any) (*models.Component, error) {
	section, err := findSection(t, fase, sectionID)
	if err != nil {
		return nil, err
	}
	for i := range section.Components {
		c := &section.Components[i]
		if c.ComponentID != componentID {
			continue
		}
		if c.Props == nil {
			c.Props = map[string]any{}
		}
		for k, v := range newProps {
			c.Props[k] = v
		}
		c.Props = registry.NormalizeComponentProps(c.Type, c.Props)
		return c, nil
	}
	return nil, ErrComponentMissing
}

// DeleteComponent removes a component from its owning section.
func DeleteComponent(t *models.Tour, fase, sectionID, componentID string) error {
	section, err := findSection(t, fase, sectionID)
	if err != nil {
		return err
	}
	for i := range section.Components {
		if section.Components[i].ComponentID == componentID {
			section.Components = append(section.Components[:i], section.Components[i+1:]...)
			return nil
		}
	}
	return ErrComponentMissing
}

// ReorderComponents applies a new ordering, given as the full list of
// component ids. The list must be an exact permutation of what is stored;
// anything else is rejected without touching state.
func ReorderComponents(t *models.Tour, fase, sectionID string, order []string) error {
	section, err := findSection(t, fase, sectionID)
	if err != nil {
		return err
	}
	if len(order) != len(section.Components) {
		return ErrNotAPermutation
	}
	byID := make(map[string]*models.Component, len(section.Components))
	for i := range section.Components {
		byID[section.Components[i].ComponentID] = &section.Components[i]
	}
	reordered := make([]models.Component, 0, len(order))
	for _, id := range order {
		c, ok := byID[id]
		if !ok {
			return ErrNotAPermutation
		}
		reordered = append(reordered, *c)
		delete(byID, id)
	}
	section.Components = reordered
	return nil
}

// NormalizeTour canonicalizes every component props bag in place. Called once
// where a tour document leaves MongoDB.
func NormalizeTour(t *models.Tour) {
	for fase, sections := range t.Fases {
		for i := range sections {
			for j := range sections[i].Components {
				c := &sections[i].Components[j]
				c.Props = registry.NormalizeComponentProps(c.Type, c.Props)
			}
		}
		t.Fases[fase] = sections
	}
}

func findSection(t *models.Tour, fase, sectionID string) (*models.Section, error) {
	if !models.IsValidFase(fase) {
		return nil, ErrInvalidFase
	}
	sections := t.Fases[fase]
	for i := range sections {
		if sections[i].SectionID == sectionID {
			return &sections[i], nil
		}
	}
	return nil, ErrSectionNotFound
}
