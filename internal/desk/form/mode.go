// Package form holds the desk CRUD pages: the Add/Edit/Delete state machine,
// client side validation, confirmations and inline messages.
package form

import "fmt"

// Mode the toolbar mode of a CRUD page.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	case ModeDelete:
		return "delete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Op is the verb used in messages.
func (m Mode) Op() Op {
	switch m {
	case ModeAdd:
		return OpCreate
	case ModeEdit:
		return OpUpdate
	case ModeDelete:
		return OpDelete
	}
	panic("form: unknown mode " + m.String())
}

// Field names shared by the pages.
const (
	FieldCode   = "code"
	FieldPrefix = "prefix"
	FieldName   = "name"
	FieldGroup  = "group"
	FieldSubmit = "submit"
)

// ReadOnly reports whether field is locked in this mode. Codes come from the
// server and are never typed; Delete locks everything.
func (m Mode) ReadOnly(field string) bool {
	switch m {
	case ModeAdd:
		return field == FieldCode
	case ModeEdit:
		return field == FieldCode || field == FieldPrefix
	case ModeDelete:
		return true
	}
	panic("form: unknown mode " + m.String())
}

// Confirmation the dialog shown before the request of this mode is sent.
func (m Mode) Confirmation(label, name string) Confirmation {
	switch m {
	case ModeAdd:
		return Confirmation{Kind: ConfirmNormal, Title: "Create " + label, Text: fmt.Sprintf("Create %s %q?", label, name)}
	case ModeEdit:
		return Confirmation{Kind: ConfirmNormal, Title: "Update " + label, Text: fmt.Sprintf("Save changes to %s %q?", label, name)}
	case ModeDelete:
		return Confirmation{Kind: ConfirmDanger, Title: "Delete " + label, Text: fmt.Sprintf("Delete %s %q? This cannot be undone.", label, name)}
	}
	panic("form: unknown mode " + m.String())
}
