package form

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rsankarapandian/stores-backoffice/internal/desk/apiclient"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/form/focus"
	"github.com/rsankarapandian/stores-backoffice/internal/desk/selector"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
)

// Item page fields beyond the shared ones.
const (
	FieldBrand          = "brand"
	FieldCategory       = "category"
	FieldProduct        = "product"
	FieldModel          = "model"
	FieldSize           = "size"
	FieldUnit           = "unit"
	FieldGST            = "gst"
	FieldHSN            = "hsn"
	FieldType           = "type"
	FieldCost           = "cost"
	FieldSellingPrice   = "selling_price"
	FieldMRP            = "mrp"
	FieldWholesalePrice = "wholesale_price"
)

var (
	hsnPattern    = regexp.MustCompile(`^\d{0,8}$`)
	prefixPattern = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
)

// refEndpoints the single select reference pickers, in focus order.
var refEndpoints = []struct {
	field string
	ep    apiclient.Endpoints
}{
	{FieldBrand, apiclient.Brand},
	{FieldCategory, apiclient.Category},
	{FieldProduct, apiclient.Product},
	{FieldModel, apiclient.Model},
	{FieldUnit, apiclient.Unit},
}

// ItemPage creates, edits and deletes items.
type ItemPage struct {
	page
	client        *apiclient.Client
	chain         focus.Chain
	defaultPrefix string

	Code         string
	ManualPrefix bool
	Prefix       string
	Name         string
	Group        GroupField
	Refs         map[string]apiclient.Record // brand, category, product, model, unit
	Sizes        []apiclient.Record
	GST          string
	HSN          string
	Type         string // SC | FG

	Cost           string
	SellingPrice   string
	MRP            string
	WholesalePrice string

	Items      []apiclient.ItemRecord
	GSTRates   []string
	Pickers    map[string]*selector.Popup[apiclient.Record]
	SizePicker *selector.CheckboxPopup[apiclient.Record]
	// Picker chooses the item to edit or delete.
	Picker *selector.Popup[apiclient.ItemRecord]

	nextCode string
	pickCtx  context.Context // context the record picker was opened with
}

// NewItemPage builds the page; defaultPrefix is used when no prefix can be suggested.
func NewItemPage(client *apiclient.Client, defaultPrefix string, n Notifier, log zerolog.Logger) *ItemPage {
	p := &ItemPage{client: client, defaultPrefix: defaultPrefix, Refs: map[string]apiclient.Record{}}
	p.init(apiclient.Items.Label, n, log)
	p.chain = focus.NewChain(
		focus.F(FieldCode),
		focus.When(FieldPrefix, func() bool { return !p.ManualPrefix }),
		focus.F(FieldName),
		focus.F(FieldGroup),
		focus.F(FieldBrand),
		focus.F(FieldCategory),
		focus.F(FieldProduct),
		focus.F(FieldModel),
		focus.F(FieldSize),
		focus.F(FieldUnit),
		focus.F(FieldGST),
		focus.F(FieldHSN),
		focus.F(FieldType),
		focus.F(FieldCost),
		focus.F(FieldSellingPrice),
		focus.F(FieldMRP),
		focus.F(FieldWholesalePrice),
		focus.F(FieldSubmit),
	)

	p.Pickers = map[string]*selector.Popup[apiclient.Record]{}
	for _, ref := range refEndpoints {
		field, ep := ref.field, ref.ep
		p.Pickers[field] = selector.NewPopup(func(ctx context.Context, page int, term string) ([]apiclient.Record, error) {
			return client.ListRecords(ctx, ep, term, page)
		}, func(r apiclient.Record) {
			p.Refs[field] = r
			p.advance(field)
		}, p.log)
	}
	p.SizePicker = selector.NewCheckboxPopup(func(ctx context.Context, page int, term string) ([]apiclient.Record, error) {
		return client.ListRecords(ctx, apiclient.Size, term, page)
	}, func(r apiclient.Record) string { return r.Code }, func(rs []apiclient.Record) {
		p.Sizes = rs
	}, p.log)
	p.Picker = selector.NewPopup(func(ctx context.Context, page int, term string) ([]apiclient.ItemRecord, error) {
		return client.ListItems(ctx, term, page)
	}, func(it apiclient.ItemRecord) {
		p.Pick(p.pickContext(), it.Code)
	}, p.log)
	p.Focus = FieldName
	return p
}

func (p *ItemPage) pickContext() context.Context {
	if p.pickCtx == nil {
		return context.Background()
	}
	return p.pickCtx
}

// Load fetches items, next code, group tree and GST list in parallel.
func (p *ItemPage) Load(ctx context.Context) bool {
	var (
		groups []apiclient.GroupNode
		rates  []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.reload(gctx) })
	g.Go(func() error {
		var err error
		groups, err = p.client.GroupTree(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		rates, err = p.client.GSTRates(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		p.failed(OpLoad, err)
		return false
	}
	p.GSTRates = rates
	p.Group.build(groups, func() { p.advance(FieldGroup) })
	if p.Mode == ModeAdd {
		p.Code = p.nextCode
	}
	return true
}

func (p *ItemPage) reload(ctx context.Context) error {
	var (
		items []apiclient.ItemRecord
		next  string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = collect(gctx, func(ctx context.Context, n int) ([]apiclient.ItemRecord, error) {
			return p.client.ListItems(ctx, "", n)
		})
		return err
	})
	g.Go(func() error {
		var err error
		next, err = p.client.NextCode(gctx, apiclient.Items.Endpoints)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	p.Items, p.nextCode = items, next
	return nil
}

// SetMode switches the toolbar mode and resets the form. Edit and Delete open
// the record picker.
func (p *ItemPage) SetMode(ctx context.Context, m Mode) {
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

func (p *ItemPage) resetFields() {
	p.Code, p.Name = "", ""
	p.ManualPrefix, p.Prefix = false, ""
	p.Group.clear()
	p.Refs = map[string]apiclient.Record{}
	p.Sizes = nil
	p.GST, p.HSN, p.Type = "", "", ""
	p.Cost, p.SellingPrice, p.MRP, p.WholesalePrice = "", "", "", ""
}

func (p *ItemPage) advance(from string) {
	if next, ok := p.chain.Next(from); ok {
		p.Focus = next
	}
}

// OpenPicker opens the popup behind a reference field.
func (p *ItemPage) OpenPicker(ctx context.Context, field string) bool {
	if p.Mode.ReadOnly(field) {
		return false
	}
	if field == FieldSize {
		p.SizePicker.InitialSelected = append([]apiclient.Record(nil), p.Sizes...)
		p.SizePicker.Open(ctx)
		return true
	}
	picker, ok := p.Pickers[field]
	if !ok {
		return false
	}
	picker.Open(ctx)
	return true
}

// SetManualPrefix toggles the prefix field. Turning it on asks the server for a
// suggestion and falls back to the default prefix.
func (p *ItemPage) SetManualPrefix(ctx context.Context, on bool) {
	if !on {
		p.ManualPrefix, p.Prefix = false, ""
		return
	}
	p.ManualPrefix = true
	prefix, err := p.client.SuggestPrefix(ctx)
	if err != nil || prefix == "" {
		p.log.Warn().Err(err).Msg("prefix suggestion unavailable, using default")
		prefix = p.defaultPrefix
	}
	p.Prefix = prefix
	p.Focus = FieldPrefix
}

// DerivedNames the item names Add will create: one per selected size, each the
// base name followed by brand, category, product, model and size names.
func (p *ItemPage) DerivedNames() []string {
	base := []string{p.Name, p.Refs[FieldBrand].Name, p.Refs[FieldCategory].Name, p.Refs[FieldProduct].Name, p.Refs[FieldModel].Name}
	if len(p.Sizes) == 0 {
		return []string{joinNonEmpty(base...)}
	}
	out := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		parts := append(append([]string(nil), base...), s.Name)
		out = append(out, joinNonEmpty(parts...))
	}
	return out
}

// Pick loads a listed item into the form and resolves its reference names.
func (p *ItemPage) Pick(ctx context.Context, code string) bool {
	var it *apiclient.ItemRecord
	for i := range p.Items {
		if p.Items[i].Code == code {
			it = &p.Items[i]
			break
		}
	}
	if it == nil {
		return p.invalid(FieldCode, "Item %s not found.", code)
	}
	if p.Mode == ModeAdd {
		p.Mode = ModeEdit
	}
	p.resetFields()
	p.Code, p.Name, p.Type, p.HSN = it.Code, it.Name, it.Type, it.HSNCode
	if it.Prefix != "" {
		p.ManualPrefix, p.Prefix = true, it.Prefix
	}
	p.Group.set(it.GroupCode)
	if it.GSTRate.Valid {
		p.GST = it.GSTRate.Decimal.String()
	}
	p.Cost, p.SellingPrice = amountText(it.Cost), amountText(it.SellingPrice)
	p.MRP, p.WholesalePrice = amountText(it.MRP), amountText(it.WholesalePrice)

	codesByField := map[string]string{
		FieldBrand: it.BrandCode, FieldCategory: it.CategoryCode, FieldProduct: it.ProductCode,
		FieldModel: it.ModelCode, FieldUnit: it.UnitCode,
	}
	refs := make([]apiclient.Record, len(refEndpoints))
	sizes := make([]apiclient.Record, len(it.SizeCodes))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refEndpoints {
		i, ep, code := i, ref.ep, codesByField[ref.field]
		g.Go(func() error {
			var err error
			refs[i], err = resolve(gctx, p.client, ep, code)
			return err
		})
	}
	for i, code := range it.SizeCodes {
		i, code := i, code
		g.Go(func() error {
			var err error
			sizes[i], err = resolve(gctx, p.client, apiclient.Size, code)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		p.log.Warn().Err(err).Str("item", code).Msg("reference names unavailable")
	}
	for i, ref := range refEndpoints {
		if refs[i].Code == "" {
			refs[i].Code = codesByField[ref.field]
		}
		if refs[i].Code != "" {
			p.Refs[ref.field] = refs[i]
		}
	}
	for i, c := range it.SizeCodes {
		if sizes[i].Code == "" {
			sizes[i].Code = c
		}
	}
	p.Sizes = sizes
	p.Message = Message{}
	p.Focus = FieldName
	return true
}

func amountText(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func (p *ItemPage) findItem(code string) *apiclient.ItemRecord {
	for i := range p.Items {
		if p.Items[i].Code == code {
			return &p.Items[i]
		}
	}
	return nil
}

// Submit validates the form and raises the confirmation.
func (p *ItemPage) Submit() bool {
	if p.Loading() {
		return false
	}
	code := strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	switch p.Mode {
	case ModeDelete:
		if code == "" || p.findItem(code) == nil {
			return p.invalid(FieldCode, "Select an item to delete.")
		}
		p.ask(p.Name)
		return true
	case ModeEdit:
		if code == "" || p.findItem(code) == nil {
			return p.invalid(FieldCode, "Select an item to edit.")
		}
	case ModeAdd:
		if code == "" {
			return p.invalid(FieldCode, "Item code is required.")
		}
		if p.findItem(code) != nil {
			return p.invalid(FieldCode, "Item code %q already exists.", code)
		}
	}
	if !p.validFields() {
		return false
	}

	names := []string{p.Name}
	if p.Mode == ModeAdd {
		names = p.DerivedNames()
	}
	for _, name := range names {
		for _, it := range p.Items {
			if it.Code != code && codes.SameName(it.Name, name) {
				return p.invalid(FieldName, "Item name %q already exists. Please use a different name.", it.Name)
			}
		}
	}
	p.ask(strings.Join(names, ", "))
	return true
}

func (p *ItemPage) validFields() bool {
	if p.ManualPrefix && !prefixPattern.MatchString(strings.TrimSpace(p.Prefix)) {
		return p.invalid(FieldPrefix, "Prefix must be 1 to 10 letters or digits.")
	}
	if p.Name == "" {
		return p.invalid(FieldName, "Item name is required.")
	}
	if p.Group.Code == "" {
		return p.invalid(FieldGroup, "Group name is required.")
	}
	if p.Refs[FieldUnit].Code == "" {
		return p.invalid(FieldUnit, "Unit is required.")
	}
	switch p.Type {
	case "":
		return p.invalid(FieldType, "Item type is required.")
	case "SC", "FG":
	default:
		return p.invalid(FieldType, "Item type must be SC or FG.")
	}
	if gst := strings.TrimSpace(p.GST); gst != "" {
		if !amountPattern.MatchString(gst) || !p.allowedGST(gst) {
			return p.invalid(FieldGST, "GST rate must be one of %s.", strings.Join(p.GSTRates, ", "))
		}
	}
	if !hsnPattern.MatchString(strings.TrimSpace(p.HSN)) {
		return p.invalid(FieldHSN, "HSN code must be up to 8 digits.")
	}
	for _, f := range []struct{ field, label, value string }{
		{FieldCost, "Cost", p.Cost},
		{FieldSellingPrice, "Selling price", p.SellingPrice},
		{FieldMRP, "MRP", p.MRP},
		{FieldWholesalePrice, "Wholesale price", p.WholesalePrice},
	} {
		if !amountPattern.MatchString(strings.TrimSpace(f.value)) {
			return p.invalid(f.field, "%s must be a number with up to 2 decimals.", f.label)
		}
	}
	return true
}

func (p *ItemPage) allowedGST(gst string) bool {
	d := amount(gst)
	for _, r := range p.GSTRates {
		if amount(r).Equal(d) {
			return true
		}
	}
	return false
}

func (p *ItemPage) record() apiclient.ItemRecord {
	it := apiclient.ItemRecord{
		Code:           strings.TrimSpace(p.Code),
		Name:           p.Name,
		GroupCode:      p.Group.Code,
		BrandCode:      p.Refs[FieldBrand].Code,
		CategoryCode:   p.Refs[FieldCategory].Code,
		ProductCode:    p.Refs[FieldProduct].Code,
		ModelCode:      p.Refs[FieldModel].Code,
		UnitCode:       p.Refs[FieldUnit].Code,
		HSNCode:        strings.TrimSpace(p.HSN),
		Type:           p.Type,
		Cost:           amount(p.Cost),
		SellingPrice:   amount(p.SellingPrice),
		MRP:            amount(p.MRP),
		WholesalePrice: amount(p.WholesalePrice),
	}
	if p.ManualPrefix {
		it.Prefix = strings.ToUpper(strings.TrimSpace(p.Prefix))
	}
	if gst := strings.TrimSpace(p.GST); gst != "" {
		it.GSTRate = decimal.NewNullDecimal(amount(gst))
	}
	for _, s := range p.Sizes {
		it.SizeCodes = append(it.SizeCodes, s.Code)
	}
	return it
}

// Confirm sends the pending request. Add creates one item per selected size;
// the first takes the displayed code and the server numbers the rest.
func (p *ItemPage) Confirm(ctx context.Context) bool {
	if !p.take() {
		return false
	}
	defer p.end()

	base := p.record()
	var err error
	switch p.Mode {
	case ModeAdd:
		var done []string
		for i, name := range p.DerivedNames() {
			it := base
			it.Name = name
			if i > 0 {
				it.Code = ""
			}
			if len(p.Sizes) > 0 {
				it.SizeCodes = []string{p.Sizes[i].Code}
			}
			if _, err = p.client.CreateItem(ctx, it); err != nil {
				break
			}
			done = append(done, name)
		}
		if err != nil {
			p.failed(OpCreate, err)
			if len(done) > 0 {
				p.Message.Text += " Created before the failure: " + strings.Join(done, ", ") + "."
				p.Message.Type = MessageWarning
				p.refresh(ctx)
			}
			return false
		}
		p.succeed(strings.Join(done, ", "))
	case ModeEdit:
		if _, err = p.client.UpdateItem(ctx, base); err != nil {
			p.failed(OpUpdate, err)
			return false
		}
		p.succeed(base.Name)
	case ModeDelete:
		if err = p.client.DeleteByCode(ctx, apiclient.Items.Endpoints, base.Code); err != nil {
			p.failed(OpDelete, err)
			return false
		}
		p.succeed(base.Name)
	}
	p.refresh(ctx)
	return true
}

// refresh reloads after a mutation and clears the form.
func (p *ItemPage) refresh(ctx context.Context) {
	if err := p.reload(ctx); err != nil {
		p.failed(OpLoad, err)
	}
	p.resetFields()
	p.Code = p.nextCode
	p.Focus = FieldName
}

// KeyEnter advances focus; Enter on the last field submits.
func (p *ItemPage) KeyEnter(field string) {
	next, ok := p.chain.Next(field)
	if !ok || next == FieldSubmit {
		p.Submit()
		return
	}
	p.Focus = next
}
