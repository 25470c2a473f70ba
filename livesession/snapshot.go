package livesession

import (
	"time"

	"tourbase/models"
	"tourbase/utils"
)

// BuildSnapshot copies the chosen sections' current component definitions
// into a frozen fases tree. Sections not in sectionIDs are left out entirely;
// fases that end up empty are dropped. Later edits to the tour never reach
// the returned tree because every component bag is deep-copied.
func BuildSnapshot(tour *models.Tour, sectionIDs []string) map[string][]models.Section {
	chosen := make(map[string]bool, len(sectionIDs))
	for _, id := range sectionIDs {
		chosen[id] = true
	}

	snapshot := make(map[string][]models.Section)
	for _, fase := range models.FaseOrder {
		var sections []models.Section
		for _, section := range tour.Fases[fase] {
			if !chosen[section.SectionID] {
				continue
			}
			sections = append(sections, copySection(section))
		}
		if len(sections) > 0 {
			snapshot[fase] = sections
		}
	}
	return snapshot
}

func copySection(s models.Section) models.Section {
	out := models.Section{
		SectionID:  s.SectionID,
		Title:      s.Title,
		Components: make([]models.Component, len(s.Components)),
	}
	for i, c := range s.Components {
		out.Components[i] = models.Component{
			ComponentID: c.ComponentID,
			Type:        c.Type,
			Props:       copyBag(c.Props),
		}
	}
	return out
}

func copyBag(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = copyBag(tv)
		case []any:
			arr := make([]any, len(tv))
			for i, e := range tv {
				if m, ok := e.(map[string]any); ok {
					arr[i] = copyBag(m)
				} else {
					arr[i] = e
				}
			}
			out[k] = arr
		default:
			out[k] = v
		}
	}
	return out
}

// newSession assembles a LiveSession document from a tour and the chosen
// section ids.
func newSession(tour *models.Tour, sectionIDs []string, groupName, contact, userID string) *models.LiveSession {
	return &models.LiveSession{
		SessionID: utils.GenerateID(14),
		TourID:    tour.TourID,
		TourName:  tour.Name,
		GroupName: groupName,
		Contact:   contact,
		Active:    true,
		CreatedBy: userID,
		CreatedAt: time.Now().UTC(),
		Fases:     BuildSnapshot(tour, sectionIDs),
		Responses: map[string]map[string]any{},
	}
}
