package registry

// The component type set is closed. Every builder block carries one of these
// tags plus a props bag; the registry is the single place that knows the
// declared shape of each bag.
const (
	TypeTitle         = "title"
	TypeSubheading    = "subheading"
	TypeParagraph     = "paragraph"
	TypeQuote         = "quote"
	TypeImage         = "image"
	TypeVideo         = "video"
	TypeFile          = "file"
	TypeButton        = "button"
	TypeChecklist     = "checklist"
	TypeCheckboxList  = "checkbox-list"
	TypeDivider       = "divider"
	TypeGrid          = "grid"
	TypeUploadZone    = "upload-zone"
	TypeTextInput     = "text-input"
	TypeTextarea      = "textarea"
	TypeDropdown      = "dropdown"
	TypeRadioGroup    = "radio-group"
	TypeCheckboxGroup = "checkbox-group"
	TypeForm          = "form"
	TypeInventory     = "inventory"
)

// Types lists every registered component type tag.
var Types = []string{
	TypeTitle, TypeSubheading, TypeParagraph, TypeQuote, TypeImage,
	TypeVideo, TypeFile, TypeButton, TypeChecklist, TypeCheckboxList,
	TypeDivider, TypeGrid, TypeUploadZone, TypeTextInput, TypeTextarea,
	TypeDropdown, TypeRadioGroup, TypeCheckboxGroup, TypeForm, TypeInventory,
}

// Spec describes one component type: its default props bag (which also
// declares the canonical type of every field) and whether visitors can
// enter a value into it during a live session.
type Spec struct {
	Defaults     map[string]any
	AcceptsInput bool
}

var specs = map[string]Spec{
	TypeTitle:      {Defaults: map[string]any{"text": "", "size": 24.0, "color": "#000000", "align": "left"}},
	TypeSubheading: {Defaults: map[string]any{"text": "", "size": 18.0, "color": "#000000"}},
	TypeParagraph:  {Defaults: map[string]any{"text": ""}},
	TypeQuote:      {Defaults: map[string]any{"text": "", "author": ""}},
	TypeImage:      {Defaults: map[string]any{"url": "", "alt": "", "width": 100.0, "rounded": false, "images": []any{}}},
	TypeVideo:      {Defaults: map[string]any{"url": "", "autoplay": false, "controls": true}},
	TypeFile:       {Defaults: map[string]any{"url": "", "filename": ""}},
	TypeButton:     {Defaults: map[string]any{"label": "", "link": "", "color": "#1a73e8", "fullWidth": false}},
	TypeChecklist:  {Defaults: map[string]any{"title": "", "items": []any{}}},
	TypeCheckboxList: {
		Defaults: map[string]any{"title": "", "items": []any{}},
	},
	TypeDivider: {Defaults: map[string]any{"thickness": 1.0, "color": "#cccccc"}},
	TypeGrid:    {Defaults: map[string]any{"columns": 2.0, "gap": 8.0, "images": []any{}}},
	TypeUploadZone: {
		Defaults:     map[string]any{"label": "", "multiple": false, "accept": "image/*"},
		AcceptsInput: true,
	},
	TypeTextInput: {
		Defaults:     map[string]any{"label": "", "placeholder": "", "required": false},
		AcceptsInput: true,
	},
	TypeTextarea: {
		Defaults:     map[string]any{"label": "", "placeholder": "", "rows": 4.0, "required": false},
		AcceptsInput: true,
	},
	TypeDropdown: {
		Defaults:     map[string]any{"label": "", "options": []any{}, "required": false},
		AcceptsInput: true,
	},
	TypeRadioGroup: {
		Defaults:     map[string]any{"label": "", "options": []any{}, "required": false},
		AcceptsInput: true,
	},
	TypeCheckboxGroup: {
		Defaults:     map[string]any{"label": "", "options": []any{}, "required": false},
		AcceptsInput: true,
	},
	TypeForm: {
		Defaults:     map[string]any{"formId": "", "title": ""},
		AcceptsInput: true,
	},
	TypeInventory: {
		Defaults:     map[string]any{"templateId": "", "title": ""},
		AcceptsInput: true,
	},
}

// Lookup returns the spec for a type tag. Unregistered tags report ok=false;
// callers render a diagnostic placeholder instead of failing.
func Lookup(typeTag string) (Spec, bool) {
	s, ok := specs[typeTag]
	return s, ok
}

// Defaults returns a fresh copy of the default props for a type tag, so a
// caller can never mutate the registry through the returned bag.
func Defaults(typeTag string) (map[string]any, bool) {
	s, ok := specs[typeTag]
	if !ok {
		return nil, false
	}
	return cloneBag(s.Defaults), true
}

// AcceptsInput reports whether visitors can enter a value into this type
// during a live session.
func AcceptsInput(typeTag string) bool {
	return specs[typeTag].AcceptsInput
}

func cloneBag(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return cloneBag(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
