package form

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// MessageType the style of an inline message.
type MessageType string

const (
	MessageError   MessageType = "error"
	MessageSuccess MessageType = "success"
	MessageWarning MessageType = "warning"
)

// Message the inline status line of a page. The zero value shows nothing.
type Message struct {
	Type MessageType
	Text string
}

// IsZero reports an empty message.
func (m Message) IsZero() bool { return m.Text == "" }

// ConfirmKind the style of a confirmation dialog.
type ConfirmKind string

const (
	ConfirmNormal ConfirmKind = "confirm"
	ConfirmDanger ConfirmKind = "danger"
)

// Confirmation a pending yes/no dialog.
type Confirmation struct {
	Kind  ConfirmKind
	Title string
	Text  string
}

// Op the request a message talks about.
type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// InUseMarker is the server phrase for foreign key failures.
const InUseMarker = "used in related tables"

// Notifier shows toasts.
type Notifier interface {
	Notify(Message)
}

// NopNotifier drops every toast.
type NopNotifier struct{}

func (NopNotifier) Notify(Message) {}

// MessageForError turns a failed request into the inline message.
func MessageForError(label string, op Op, err error) Message {
	var ae *apiclient.APIError
	if !errors.As(err, &ae) {
		return Message{Type: MessageError, Text: fmt.Sprintf("Failed to %s %s: %v", op, strings.ToLower(label), err)}
	}
	lower := strings.ToLower(label)
	switch {
	case ae.NoResponse:
		return Message{Type: MessageError, Text: "No response received from server."}
	case strings.Contains(strings.ToLower(ae.Message), InUseMarker),
		ae.Status == http.StatusConflict && op == OpDelete:
		return Message{Type: MessageError, Text: fmt.Sprintf("Cannot delete this %s: it is used in related tables.", lower)}
	case ae.Status == http.StatusConflict:
		return Message{Type: MessageError, Text: ae.Message}
	case ae.Status == http.StatusBadRequest:
		return Message{Type: MessageError, Text: "Validation error: " + ae.Message}
	case ae.Status == http.StatusNotFound:
		return Message{Type: MessageError, Text: "Resource not found."}
	case ae.Status == http.StatusUnauthorized:
		return Message{Type: MessageError, Text: "Your session has expired. Please log in again."}
	case ae.Status == http.StatusForbidden:
		return Message{Type: MessageError, Text: fmt.Sprintf("You are not allowed to %s this %s.", op, lower)}
	case ae.Status >= http.StatusInternalServerError:
		return Message{Type: MessageError, Text: fmt.Sprintf("Server error while trying to %s the %s. Please try again later.", op, lower)}
	}
	return Message{Type: MessageError, Text: fmt.Sprintf("Failed to %s %s: %s", op, lower, ae.Message)}
}
