package form

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form/focus"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/selector"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
)

// MasterPage is the code+name CRUD page (brand, category, salesman, ...).
type MasterPage struct {
	page
	client *apiclient.Client
	ep     apiclient.Endpoints
	chain  focus.Chain

	Code    string
	Name    string
	Records []apiclient.Record
	Picker  *selector.Popup[apiclient.Record]

	nextCode string
}

// NewMasterPage builds a page in Add mode. Call Load before use.
func NewMasterPage(client *apiclient.Client, ep apiclient.Endpoints, n Notifier, log zerolog.Logger) *MasterPage {
	p := &MasterPage{client: client, ep: ep}
	p.init(ep.Label, n, log)
	p.chain = focus.NewChain(focus.F(FieldCode), focus.F(FieldName), focus.F(FieldSubmit))
	p.Picker = selector.NewPopup(func(ctx context.Context, page int, term string) ([]apiclient.Record, error) {
		return client.ListRecords(ctx, ep, term, page)
	}, p.fill, p.log)
	p.Focus = FieldName
	return p
}

// Load fetches the list and the next code.
func (p *MasterPage) Load(ctx context.Context) bool {
	if err := p.reload(ctx); err != nil {
		p.failed(OpLoad, err)
		return false
	}
	if p.Mode == ModeAdd {
		p.Code = p.nextCode
	}
	return true
}

func (p *MasterPage) reload(ctx context.Context) error {
	var (
		records []apiclient.Record
		next    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = p.client.ListAllRecords(gctx, p.ep)
		return err
	})
	g.Go(func() error {
		var err error
		next, err = p.client.NextCode(gctx, p.ep)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	p.Records, p.nextCode = records, next
	return nil
}

// SetMode switches the toolbar mode. Edit and Delete open the picker.
func (p *MasterPage) SetMode(ctx context.Context, m Mode) {
	p.Mode = m
	p.Pending = nil
	p.Message = Message{}
	p.Name = ""
	switch m {
	case ModeAdd:
		p.Code = p.nextCode
	case ModeEdit, ModeDelete:
		p.Code = ""
		p.Picker.Open(ctx)
	}
	p.Focus = FieldName
}

// SetName types into the name field; ignored where read-only.
func (p *MasterPage) SetName(name string) {
	if !p.Mode.ReadOnly(FieldName) {
		p.Name = name
	}
}

// Pick loads a listed record into the form, as a click on its row does.
// In Add mode it switches to Edit.
func (p *MasterPage) Pick(code string) bool {
	rec := p.find(code)
	if rec == nil {
		return p.invalid(FieldCode, "%s %s not found.", p.label, code)
	}
	p.fill(*rec)
	return true
}

func (p *MasterPage) fill(rec apiclient.Record) {
	if p.Mode == ModeAdd {
		p.Mode = ModeEdit
	}
	p.Code, p.Name = rec.Code, rec.Name
	p.Message = Message{}
	p.Focus = FieldName
}

func (p *MasterPage) find(code string) *apiclient.Record {
	for i := range p.Records {
		if p.Records[i].Code == code {
			return &p.Records[i]
		}
	}
	return nil
}

// Submit validates against the loaded list and raises the confirmation.
// Nothing is sent until Confirm.
func (p *MasterPage) Submit() bool {
	if p.Loading() {
		return false
	}
	code, name := strings.TrimSpace(p.Code), strings.TrimSpace(p.Name)
	switch p.Mode {
	case ModeAdd:
		if code == "" {
			return p.invalid(FieldCode, "%s code is required.", p.label)
		}
		if name == "" {
			return p.invalid(FieldName, "%s name is required.", p.label)
		}
		if p.find(code) != nil {
			return p.invalid(FieldCode, "%s code %q already exists.", p.label, code)
		}
		if dup := p.sameName(name, ""); dup != nil {
			return p.invalid(FieldName, "%s name %q already exists. Please use a different name.", p.label, dup.Name)
		}
	case ModeEdit:
		if code == "" || p.find(code) == nil {
			return p.invalid(FieldCode, "Select a %s to edit.", strings.ToLower(p.label))
		}
		if name == "" {
			return p.invalid(FieldName, "%s name is required.", p.label)
		}
		if dup := p.sameName(name, code); dup != nil {
			return p.invalid(FieldName, "%s name %q already exists. Please use a different name.", p.label, dup.Name)
		}
	case ModeDelete:
		if code == "" || p.find(code) == nil {
			return p.invalid(FieldCode, "Select a %s to delete.", strings.ToLower(p.label))
		}
	}
	p.Code, p.Name = code, name
	p.ask(name)
	return true
}

func (p *MasterPage) sameName(name, except string) *apiclient.Record {
	for i := range p.Records {
		if p.Records[i].Code != except && codes.SameName(p.Records[i].Name, name) {
			return &p.Records[i]
		}
	}
	return nil
}

// Confirm sends the pending request. On success the list and next code are
// reloaded and the name is cleared.
func (p *MasterPage) Confirm(ctx context.Context) bool {
	if !p.take() {
		return false
	}
	defer p.end()

	rec := apiclient.Record{Code: p.Code, Name: p.Name}
	var err error
	switch p.Mode {
	case ModeAdd:
		err = p.client.CreateRecord(ctx, p.ep, rec)
	case ModeEdit:
		err = p.client.UpdateRecord(ctx, p.ep, rec)
	case ModeDelete:
		err = p.client.DeleteByCode(ctx, p.ep, rec.Code)
	}
	if err != nil {
		p.failed(p.Mode.Op(), err)
		return false
	}
	p.succeed(rec.Name)

	if err := p.reload(ctx); err != nil {
		p.failed(OpLoad, err)
	}
	p.Code, p.Name = p.nextCode, ""
	p.Focus = FieldName
	return true
}

// KeyEnter moves focus along code -> name; Enter on the name submits.
func (p *MasterPage) KeyEnter(field string) {
	next, ok := p.chain.Next(field)
	if !ok || next == FieldSubmit {
		p.Submit()
		return
	}
	p.Focus = next
}
