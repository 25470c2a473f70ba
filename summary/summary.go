package summary

import (
	"fmt"
	"sort"

	"tourbase/models"
	"tourbase/registry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Line is one rendered answer: the visitor's value set against the label of
// the component, form field, or inventory item that asked for it.
type Line struct {
	Fase         string `json:"fase"`
	SectionTitle string `json:"section_title"`
	Label        string `json:"label"`
	Answer       any    `json:"answer,omitempty"`
	// Pending marks answers whose referenced form or inventory template has
	// not been resolved yet; render a loading placeholder, not an error.
	Pending bool `json:"pending,omitempty"`
}

// Build reconstructs a human-readable view of a completed session's
// responses against the original component definitions. Forms and inventory
// templates are passed in pre-fetched, keyed by id; a missing reference
// yields a Pending line.
func Build(session *models.LiveSession, forms map[string]models.FormDefinition, templates map[string]models.InventoryTemplate) []Line {
	var lines []Line

	for _, fase := range models.FaseOrder {
		for _, section := range session.Fases[fase] {
			responses := session.Responses[section.SectionID]
			for _, component := range section.Components {
				if !registry.AcceptsInput(component.Type) {
					continue
				}
				answer, answered := responses[component.ComponentID]
				if !answered {
					continue
				}
				lines = append(lines, renderComponent(fase, section.Title, component, answer, forms, templates)...)
			}
		}
	}
	return lines
}

func renderComponent(fase, sectionTitle string, component models.Component, answer any, forms map[string]models.FormDefinition, templates map[string]models.InventoryTemplate) []Line {
	switch component.Type {
	case registry.TypeForm:
		formID, _ := component.Props["formId"].(string)
		form, ok := forms[formID]
		if !ok {
			return []Line{{Fase: fase, SectionTitle: sectionTitle, Label: labelOf(component), Pending: true}}
		}
		return renderFormAnswers(fase, sectionTitle, form, answer)
	case registry.TypeInventory:
		templateID, _ := component.Props["templateId"].(string)
		template, ok := templates[templateID]
		if !ok {
			return []Line{{Fase: fase, SectionTitle: sectionTitle, Label: labelOf(component), Pending: true}}
		}
		return renderInventoryAnswers(fase, sectionTitle, template, answer)
	default:
		return []Line{{Fase: fase, SectionTitle: sectionTitle, Label: labelOf(component), Answer: answer}}
	}
}

// renderFormAnswers walks the form's fields in their explicit order number,
// not list position.
func renderFormAnswers(fase, sectionTitle string, form models.FormDefinition, answer any) []Line {
	byField := asBag(answer)

	fields := make([]models.FormField, len(form.Fields))
	copy(fields, form.Fields)
	sort.SliceStable(fields, func(i, j int) bool { return fields[i].Order < fields[j].Order })

	var lines []Line
	for _, field := range fields {
		value, ok := byField[field.FieldID]
		if !ok {
			continue
		}
		lines = append(lines, Line{Fase: fase, SectionTitle: sectionTitle, Label: field.Label, Answer: value})
	}
	return lines
}

// renderInventoryAnswers maps item answers keyed "room/subsection/item" back
// onto the template tree.
func renderInventoryAnswers(fase, sectionTitle string, template models.InventoryTemplate, answer any) []Line {
	byItem := asBag(answer)

	var lines []Line
	for _, room := range template.Rooms {
		for _, sub := range room.Subsections {
			for _, item := range sub.Items {
				key := fmt.Sprintf("%s/%s/%s", room.Name, sub.Name, item.Name)
				value, ok := byItem[key]
				if !ok {
					continue
				}
				label := fmt.Sprintf("%s – %s – %s (gewenst: %d)", room.Name, sub.Name, item.Name, item.DesiredQuantity)
				lines = append(lines, Line{Fase: fase, SectionTitle: sectionTitle, Label: label, Answer: value})
			}
		}
	}
	return lines
}

// asBag tolerates both JSON- and BSON-decoded maps.
func asBag(v any) map[string]any {
	switch tv := v.(type) {
	case map[string]any:
		return tv
	case primitive.M:
		return map[string]any(tv)
	default:
		return nil
	}
}

func labelOf(component models.Component) string {
	if label, ok := component.Props["label"].(string); ok && label != "" {
		return label
	}
	if title, ok := component.Props["title"].(string); ok && title != "" {
		return title
	}
	return component.Type
}

// ReferencedIDs collects the distinct form and template ids a session's
// snapshot refers to, so callers fetch each definition once.
func ReferencedIDs(session *models.LiveSession) (formIDs, templateIDs []string) {
	seenForms := map[string]bool{}
	seenTemplates := map[string]bool{}
	for _, sections := range session.Fases {
		for _, section := range sections {
			for _, component := range section.Components {
				switch component.Type {
				case registry.TypeForm:
					if id, _ := component.Props["formId"].(string); id != "" && !seenForms[id] {
						seenForms[id] = true
						formIDs = append(formIDs, id)
					}
				case registry.TypeInventory:
					if id, _ := component.Props["templateId"].(string); id != "" && !seenTemplates[id] {
						seenTemplates[id] = true
						templateIDs = append(templateIDs, id)
					}
				}
			}
		}
	}
	return formIDs, templateIDs
}
