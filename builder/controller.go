package builder

import (
	"context"
	"errors"

	"tourbase/registry"
)

var ErrNothingSelected = errors.New("no component selected")

// Flusher persists the batched props of one component.
type Flusher interface {
	FlushComponent(ctx context.Context, tourID, fase string, sectionIndex int, componentID string, props map[string]any) error
}

// Selection carries the full owning path of the selected component, so a
// flush never has to scan the tree to find the owner.
type Selection struct {
	Fase         string
	SectionIndex int
	ComponentID  string
	Type         string
}

// Controller batches keystroke-level edits of the selected component and
// flushes them as one write when the editor navigates away: to another
// component, another fase or section, or to nothing at all. Property edits
// only touch memory; the network is hit exactly once per component per
// editing stint.
//
// A Controller belongs to a single editor connection and is not safe for
// concurrent use.
type Controller struct {
	tourID  string
	flusher Flusher

	sel   *Selection
	props map[string]any
	dirty bool

	activeFase    string
	activeSection int
}

func NewController(tourID string, flusher Flusher) *Controller {
	return &Controller{tourID: tourID, flusher: flusher}
}

// Select makes a component current, flushing the previous one first if it
// has unsaved edits. On flush failure the old selection and its dirty props
// stay in place so the next navigation retries the same payload.
func (c *Controller) Select(ctx context.Context, sel Selection, props map[string]any) error {
	if err := c.flushIfDirty(ctx); err != nil {
		return err
	}
	bag := registry.NormalizeComponentProps(sel.Type, props)
	c.sel = &sel
	c.props = bag
	c.dirty = false
	return nil
}

// Edit merges a partial props update into the selected component. Memory
// only; the UI stays responsive and no network call is scheduled.
func (c *Controller) Edit(props map[string]any) error {
	if c.sel == nil {
		return ErrNothingSelected
	}
	if c.props == nil {
		c.props = map[string]any{}
	}
	for k, v := range props {
		c.props[k] = v
	}
	c.dirty = true
	return nil
}

// Deselect clears the selection, flushing unsaved edits first.
func (c *Controller) Deselect(ctx context.Context) error {
	if err := c.flushIfDirty(ctx); err != nil {
		return err
	}
	c.sel = nil
	c.props = nil
	c.dirty = false
	return nil
}

// Focus moves the active fase/section. A dirty selection is flushed before
// the focus changes; the selection is then cleared because the component is
// no longer on screen.
func (c *Controller) Focus(ctx context.Context, fase string, sectionIndex int) error {
	if err := c.flushIfDirty(ctx); err != nil {
		return err
	}
	c.activeFase = fase
	c.activeSection = sectionIndex
	c.sel = nil
	c.props = nil
	c.dirty = false
	return nil
}

// Flush forces the pending write out, keeping the selection.
func (c *Controller) Flush(ctx context.Context) error {
	return c.flushIfDirty(ctx)
}

func (c *Controller) Selected() *Selection {
	return c.sel
}

func (c *Controller) Dirty() bool {
	return c.dirty
}

// Props returns the in-memory bag of the selected component.
func (c *Controller) Props() map[string]any {
	return c.props
}

func (c *Controller) ActiveFocus() (string, int) {
	return c.activeFase, c.activeSection
}

func (c *Controller) flushIfDirty(ctx context.Context) error {
	if !c.dirty || c.sel == nil {
		return nil
	}
	err := c.flusher.FlushComponent(ctx, c.tourID, c.sel.Fase, c.sel.SectionIndex, c.sel.ComponentID, c.props)
	if err != nil {
		// Stay dirty; the next navigation retries with the same payload.
		return err
	}
	c.dirty = false
	return nil
}
