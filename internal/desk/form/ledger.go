package form

import (
	"context"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form/focus"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/selector"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// Ledger page fields beyond the shared ones.
const (
	FieldAddress1       = "address1"
	FieldCity           = "city"
	FieldPincode        = "pincode"
	FieldEmail          = "email"
	FieldGSTIN          = "gstin"
	FieldPAN            = "pan"
	FieldSalesman       = "salesman"
	FieldDueDays        = "due_days"
	FieldOpeningBalance = "opening_balance"
	FieldBalanceType    = "balance_type"
	FieldActive         = "active"
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// maxDueDays matches the server limit.
const maxDueDays = 365

// LedgerPage creates, edits and deletes ledgers.
type LedgerPage struct {
	page
	client *apiclient.Client
	chain  focus.Chain
	now    func() time.Time

	Code     string
	Name     string
	Group    GroupField
	Address1 string
	Address2 string
	Address3 string
	City     string
	State    string
	Pincode  string
	Phone    string
	Mobile   string
	Email    string
	GSTIN    string
	PAN      string
	CIN      string
	Route    string
	Salesman apiclient.Record

	DueDays        string
	OpeningBalance string
	BalanceType    string // Dr | Cr
	Active         bool

	Ledgers        []apiclient.LedgerRecord
	SalesmanPicker *selector.Popup[apiclient.Record]
	// Picker chooses the ledger to edit or delete.
	Picker *selector.Popup[apiclient.LedgerRecord]

	nextCode string
	pickCtx  context.Context // context the record picker was opened with
}

// NewLedgerPage builds the page in Add mode.
func NewLedgerPage(client *apiclient.Client, n Notifier, log zerolog.Logger) *LedgerPage {
	p := &LedgerPage{client: client, now: time.Now}
	p.init(apiclient.Ledgers.Label, n, log)
	p.chain = focus.NewChain(
		focus.F(FieldCode), focus.F(FieldName), focus.F(FieldGroup),
		focus.F(FieldAddress1), focus.F(FieldCity), focus.F(FieldPincode), focus.F(FieldEmail),
		focus.F(FieldGSTIN), focus.F(FieldPAN), focus.F(FieldSalesman), focus.F(FieldDueDays),
		focus.F(FieldOpeningBalance), focus.F(FieldBalanceType), focus.F(FieldActive), focus.F(FieldSubmit),
	)
	p.SalesmanPicker = selector.NewPopup(func(ctx context.Context, page int, term string) ([]apiclient.Record, error) {
		return client.ListRecords(ctx, apiclient.Salesman, term, page)
	}, func(r apiclient.Record) {
		p.Salesman = r
		p.advance(FieldSalesman)
	}, p.log)
	p.Picker = selector.NewPopup(func(ctx context.Context, page int, term string) ([]apiclient.LedgerRecord, error) {
		return client.ListLedgers(ctx, term, page)
	}, func(l apiclient.LedgerRecord) {
		ctx := p.pickCtx
		if ctx == nil {
			ctx = context.Background()
		}
		p.Pick(ctx, l.Code)
	}, p.log)
	p.resetFields()
	p.Focus = FieldName
	return p
}

// SetClock replaces the clock used for the due date.
func (p *LedgerPage) SetClock(now func() time.Time) { p.now = now }

// Load fetches ledgers, next code and the group tree.
func (p *LedgerPage) Load(ctx context.Context) bool {
	var groups []apiclient.GroupNode
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.reload(gctx) })
	g.Go(func() error {
		var err error
		groups, err = p.client.GroupTree(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.failed(OpLoad, err)
		return false
	}
	p.Group.build(groups, func() { p.advance(FieldGroup) })
	if p.Mode == ModeAdd {
		p.Code = p.nextCode
	}
	return true
}

func (p *LedgerPage) reload(ctx context.Context) error {
	var (
		ledgers []apiclient.LedgerRecord
		next    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ledgers, err = collect(gctx, func(ctx context.Context, n int) ([]apiclient.LedgerRecord, error) {
			return p.client.ListLedgers(ctx, "", n)
		})
		return err
	})
	g.Go(func() error {
		var err error
		next, err = p.client.NextCode(gctx, apiclient.Ledgers.Endpoints)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	p.Ledgers, p.nextCode = ledgers, next
	return nil
}

func (p *LedgerPage) resetFields() {
	p.Code, p.Name = "", ""
	p.Group.clear()
	p.Address1, p.Address2, p.Address3 = "", "", ""
	p.City, p.State, p.Pincode, p.Phone, p.Mobile, p.Email = "", "", "", "", "", ""
	p.GSTIN, p.PAN, p.CIN, p.Route = "", "", "", ""
	p.Salesman = apiclient.Record{}
	p.DueDays, p.OpeningBalance = "", ""
	p.BalanceType, p.Active = entity.BalanceDebit, true
}

func (p *LedgerPage) advance(from string) {
	if next, ok := p.chain.Next(from); ok {
		p.Focus = next
	}
}

// SetMode switches the toolbar mode and resets the form. Edit and Delete open
// the record picker.
func (p *LedgerPage) SetMode(ctx context.Context, m Mode) {
	p.Mode = m
	p.Pending = nil
	p.Message = Message{}
	p.resetFields()
	switch m {
	case ModeAdd:
		p.Code = p.nextCode
	case ModeEdit, ModeDelete:
		p.pickCtx = ctx
		p.Picker.Open(ctx)
	}
	p.Focus = FieldName
}

// DueDate the date DueDays from today as DD-MM-YYYY; empty when DueDays is blank or invalid.
func (p *LedgerPage) DueDate() string {
	days, err := strconv.Atoi(strings.TrimSpace(p.DueDays))
	if err != nil || days < 0 {
		return ""
	}
	l := entity.Ledger{DueDays: days}
	return l.DueDate(p.now()).Format("02-01-2006")
}

// Pick loads a listed ledger into the form.
func (p *LedgerPage) Pick(ctx context.Context, code string) bool {
	l := p.findLedger(code)
	if l == nil {
		return p.invalid(FieldCode, "Ledger %s not found.", code)
	}
	if p.Mode == ModeAdd {
		p.Mode = ModeEdit
	}
	p.resetFields()
	p.Code, p.Name = l.Code, l.Name
	p.Group.set(l.GroupCode)
	p.Address1, p.Address2, p.Address3 = l.Address1, l.Address2, l.Address3
	p.City, p.State, p.Pincode = l.City, l.State, l.Pincode
	p.Phone, p.Mobile, p.Email = l.Phone, l.Mobile, l.Email
	p.GSTIN, p.PAN, p.CIN, p.Route = l.GSTIN, l.PAN, l.CIN, l.Route
	p.DueDays = strconv.Itoa(l.DueDays)
	p.OpeningBalance = amountText(l.OpeningBalance)
	if l.BalanceType != "" {
		p.BalanceType = l.BalanceType
	}
	p.Active = l.Active
	sm, err := resolve(ctx, p.client, apiclient.Salesman, l.SalesmanCode)
	if err != nil {
		p.log.Warn().Err(err).Str("ledger", code).Msg("salesman name unavailable")
	}
	p.Salesman = sm
	p.Message = Message{}
	p.Focus = FieldName
	return true
}

func (p *LedgerPage) findLedger(code string) *apiclient.LedgerRecord {
	for i := range p.Ledgers {
		if p.Ledgers[i].Code == code {
			return &p.Ledgers[i]
		}
	}
	return nil
}

// Submit validates the form and raises the confirmation.
func (p *LedgerPage) Submit() bool {
	if p.Loading() {
		return false
	}
	code := strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	switch p.Mode {
	case ModeDelete:
		if code == "" || p.findLedger(code) == nil {
			return p.invalid(FieldCode, "Select a ledger to delete.")
		}
		p.ask(p.Name)
		return true
	case ModeEdit:
		if code == "" || p.findLedger(code) == nil {
			return p.invalid(FieldCode, "Select a ledger to edit.")
		}
	case ModeAdd:
		if code == "" {
			return p.invalid(FieldCode, "Ledger code is required.")
		}
		if p.findLedger(code) != nil {
			return p.invalid(FieldCode, "Ledger code %q already exists.", code)
		}
	}
	if !p.validFields() {
		return false
	}
	for _, l := range p.Ledgers {
		if l.Code != code && codes.SameName(l.Name, p.Name) {
			return p.invalid(FieldName, "Ledger name %q already exists. Please use a different name.", l.Name)
		}
	}
	p.ask(p.Name)
	return true
}

func (p *LedgerPage) validFields() bool {
	p.GSTIN = strings.ToUpper(strings.TrimSpace(p.GSTIN))
	p.PAN = strings.ToUpper(strings.TrimSpace(p.PAN))
	if p.Name == "" {
		return p.invalid(FieldName, "Ledger name is required.")
	}
	if p.Group.Code == "" {
		return p.invalid(FieldGroup, "Group name is required.")
	}
	if pin := strings.TrimSpace(p.Pincode); pin != "" && !pincodePattern.MatchString(pin) {
		return p.invalid(FieldPincode, "Pincode must be 6 digits.")
	}
	if email := strings.TrimSpace(p.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return p.invalid(FieldEmail, "Enter a valid email address.")
		}
	}
	if p.GSTIN != "" && !entity.GSTINPattern.MatchString(p.GSTIN) {
		return p.invalid(FieldGSTIN, "GSTIN %q is not valid.", p.GSTIN)
	}
	if p.PAN != "" && !entity.PANPattern.MatchString(p.PAN) {
		return p.invalid(FieldPAN, "PAN %q is not valid.", p.PAN)
	}
	if days := strings.TrimSpace(p.DueDays); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 || n > maxDueDays {
			return p.invalid(FieldDueDays, "Due days must be a whole number from 0 to %d.", maxDueDays)
		}
	}
	if !amountPattern.MatchString(strings.TrimSpace(p.OpeningBalance)) {
		return p.invalid(FieldOpeningBalance, "Opening balance must be a number with up to 2 decimals.")
	}
	if p.BalanceType != entity.BalanceDebit && p.BalanceType != entity.BalanceCredit {
		return p.invalid(FieldBalanceType, "Balance type must be Dr or Cr.")
	}
	return true
}

func (p *LedgerPage) record() apiclient.LedgerRecord {
	days, _ := strconv.Atoi(strings.TrimSpace(p.DueDays))
	return apiclient.LedgerRecord{
		Code:           strings.TrimSpace(p.Code),
		Name:           p.Name,
		GroupCode:      p.Group.Code,
		Address1:       strings.TrimSpace(p.Address1),
		Address2:       strings.TrimSpace(p.Address2),
		Address3:       strings.TrimSpace(p.Address3),
		City:           strings.TrimSpace(p.City),
		State:          strings.TrimSpace(p.State),
		Pincode:        strings.TrimSpace(p.Pincode),
		Phone:          strings.TrimSpace(p.Phone),
		Mobile:         strings.TrimSpace(p.Mobile),
		Email:          strings.TrimSpace(p.Email),
		GSTIN:          p.GSTIN,
		PAN:            p.PAN,
		CIN:            strings.ToUpper(strings.TrimSpace(p.CIN)),
		Route:          strings.TrimSpace(p.Route),
		SalesmanCode:   p.Salesman.Code,
		DueDays:        days,
		OpeningBalance: amount(p.OpeningBalance),
		BalanceType:    p.BalanceType,
		Active:         p.Active,
	}
}

// Confirm sends the pending request and reloads on success.
func (p *LedgerPage) Confirm(ctx context.Context) bool {
	if !p.take() {
		return false
	}
	defer p.end()

	l := p.record()
	var err error
	switch p.Mode {
	case ModeAdd:
		_, err = p.client.CreateLedger(ctx, l)
	case ModeEdit:
		_, err = p.client.UpdateLedger(ctx, l)
	case ModeDelete:
		err = p.client.DeleteByCode(ctx, apiclient.Ledgers.Endpoints, l.Code)
	}
	if err != nil {
		p.failed(p.Mode.Op(), err)
		return false
	}
	p.succeed(l.Name)
	if err := p.reload(ctx); err != nil {
		p.failed(OpLoad, err)
	}
	p.resetFields()
	p.Code = p.nextCode
	p.Focus = FieldName
	return true
}

// KeyEnter advances focus; Enter on the last field submits.
func (p *LedgerPage) KeyEnter(field string) {
	next, ok := p.chain.Next(field)
	if !ok || next == FieldSubmit {
		p.Submit()
		return
	}
	p.Focus = next
}
