package form

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
)

// page is the state every CRUD page shares: mode, message, pending dialog,
// focused field and the loading flag that blocks double submits.
type page struct {
	label    string
	notifier Notifier
	log      zerolog.Logger

	Mode    Mode
	Message Message
	Pending *Confirmation
	Focus   string

	busy atomic.Bool
}

func (p *page) init(label string, n Notifier, log zerolog.Logger) {
	if n == nil {
		n = NopNotifier{}
	}
	p.label, p.notifier = label, n
	p.log = log.With().Str("page", strings.ToLower(label)).Logger()
}

// Loading reports a request in flight.
func (p *page) Loading() bool { return p.busy.Load() }

// Cancel drops the pending confirmation.
func (p *page) Cancel() { p.Pending = nil }

func (p *page) begin() bool { return p.busy.CompareAndSwap(false, true) }

func (p *page) end() { p.busy.Store(false) }

// invalid reports a client side validation failure on field; always false.
func (p *page) invalid(field, format string, args ...any) bool {
	p.Message = Message{Type: MessageError, Text: fmt.Sprintf(format, args...)}
	p.Focus = field
	p.Pending = nil
	return false
}

func (p *page) ask(name string) {
	c := p.Mode.Confirmation(p.label, name)
	p.Pending = &c
	p.Message = Message{}
}

// take pops the pending confirmation and claims the loading flag.
func (p *page) take() bool {
	if p.Pending == nil || !p.begin() {
		return false
	}
	p.Pending = nil
	return true
}

func (p *page) succeed(name string) {
	var verb string
	switch p.Mode {
	case ModeAdd:
		verb = "created"
	case ModeEdit:
		verb = "updated"
	case ModeDelete:
		verb = "deleted"
	}
	p.Message = Message{Type: MessageSuccess, Text: fmt.Sprintf("%s %q %s successfully.", p.label, name, verb)}
	p.notifier.Notify(p.Message)
}

func (p *page) failed(op Op, err error) {
	p.log.Error().Err(err).Str("op", string(op)).Msg("request failed")
	p.Message = MessageForError(p.label, op, err)
}

// collect walks pages until a short one.
func collect[T any](ctx context.Context, fetch func(ctx context.Context, page int) ([]T, error)) ([]T, error) {
	var all []T
	for n := 1; ; n++ {
		batch, err := fetch(ctx, n)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < apiclient.PageSize {
			return all, nil
		}
	}
}
