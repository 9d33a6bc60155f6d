package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// SubmitEntry is a MultiLineEntry that submits on Enter and inserts a
// newline on Shift+Enter. Used for the comment composer.
type SubmitEntry struct {
	widget.Entry
	OnSubmit func(string)
}

func NewSubmitEntry() *SubmitEntry {
	e := &SubmitEntry{}
	e.ExtendBaseWidget(e)
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	return e
}

// TypedKey traps Enter/Return to submit instead of inserting a newline.
func (e *SubmitEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyReturn || key.Name == fyne.KeyEnter {
		shiftHeld := false
		if drv, ok := fyne.CurrentApp().Driver().(desktop.Driver); ok {
			if drv.CurrentKeyModifiers()&fyne.KeyModifierShift != 0 {
				shiftHeld = true
			}
		}
		if shiftHeld {
			e.Entry.TypedKey(key)
			return
		}
		if e.OnSubmit != nil && e.Text != "" {
			e.OnSubmit(e.Text)
		}
		return
	}
	e.Entry.TypedKey(key)
}
