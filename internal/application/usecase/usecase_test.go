package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/application/usecase"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/cache"
	"github.com/rsankarapandian/stores-backoffice/internal/infrastructure/memory"
)

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	s.SeedSamples(time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))
	return s
}

func TestMasterUseCase_CreateIssuesSequentialCodes(t *testing.T) {
	uc := usecase.NewMasterUseCase(memory.New().Masters())
	ctx := context.Background()

	first, err := uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "0001", first.Code)

	next, err := uc.NextCode(ctx, entity.KindBrand)
	require.NoError(t, err)
	assert.Equal(t, "0002", next)

	// codes are per kind
	cat, err := uc.Create(ctx, entity.KindCategory, dto.MasterRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "0001", cat.Code)
}

func TestMasterUseCase_RejectsDuplicates(t *testing.T) {
	uc := usecase.NewMasterUseCase(memory.New().Masters())
	ctx := context.Background()
	_, err := uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Code: "0001", Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: "  aCME "})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, `Brand name "Acme" already exists`, err.Error())

	_, err = uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Code: "0001", Name: "Other"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMasterUseCase_UpdateAndGet(t *testing.T) {
	uc := usecase.NewMasterUseCase(memory.New().Masters())
	ctx := context.Background()
	_, err := uc.Create(ctx, entity.KindUnit, dto.MasterRequest{Name: "Nos"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, entity.KindUnit, dto.MasterRequest{Name: "Kg"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, entity.KindUnit, "0002", dto.MasterRequest{Name: "NOS"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// renaming to its own name in another case is allowed
	upd, err := uc.Update(ctx, entity.KindUnit, "0001", dto.MasterRequest{Name: "NOS"})
	require.NoError(t, err)
	assert.Equal(t, "NOS", upd.Name)

	_, err = uc.Update(ctx, entity.KindUnit, "0099", dto.MasterRequest{Name: "Box"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, entity.KindUnit, "0099")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMasterUseCase_ListSearchAndPaging(t *testing.T) {
	uc := usecase.NewMasterUseCase(memory.New().Masters())
	ctx := context.Background()
	for _, n := range []string{"Acme", "Bolt", "Acorn", "Crest"} {
		_, err := uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: n})
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, entity.KindBrand, dto.PageRequest{Search: "ac"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page.Total)
	assert.Equal(t, 20, res.Page.Limit)

	res, err = uc.List(ctx, entity.KindBrand, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "0003", res.Data[0].Code)
	assert.Equal(t, 4, res.Page.Total)
}

func newItemFixture(t *testing.T) (*memory.Store, *usecase.MasterUseCase, *usecase.ItemUseCase) {
	t.Helper()
	s := seededStore(t)
	masters := usecase.NewMasterUseCase(s.Masters())
	ctx := context.Background()
	for kind, name := range map[entity.MasterKind]string{
		entity.KindBrand: "Acme", entity.KindCategory: "Steel", entity.KindUnit: "Nos",
	} {
		_, err := masters.Create(ctx, kind, dto.MasterRequest{Name: name})
		require.NoError(t, err)
	}
	for _, n := range []string{"Small", "Large"} {
		_, err := masters.Create(ctx, entity.KindSize, dto.MasterRequest{Name: n})
		require.NoError(t, err)
	}
	return s, masters, usecase.NewItemUseCase(s.Items(), s.Masters(), s.Groups(), "RSP")
}

func itemRequest() dto.ItemRequest {
	gst := decimal.NewFromInt(18)
	return dto.ItemRequest{
		Name:         "Acme Steel Tumbler",
		GroupCode:    "020301",
		BrandCode:    "0001",
		CategoryCode: "0001",
		SizeCodes:    []string{"0001", "0002"},
		UnitCode:     "0001",
		GSTRate:      &gst,
		Type:         entity.ItemTypeFinished,
		SellingPrice: decimal.RequireFromString("120.50"),
	}
}

func TestItemUseCase_Create(t *testing.T) {
	_, _, uc := newItemFixture(t)
	ctx := context.Background()

	it, err := uc.Create(ctx, itemRequest())
	require.NoError(t, err)
	assert.Equal(t, "0001", it.Code)
	assert.Equal(t, []string{"0001", "0002"}, it.SizeCodes)
	assert.True(t, it.GSTRate.Equal(decimal.NewFromInt(18)))

	_, err = uc.Create(ctx, itemRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestItemUseCase_Validation(t *testing.T) {
	_, _, uc := newItemFixture(t)
	ctx := context.Background()

	badGST := itemRequest()
	rate := decimal.NewFromInt(7)
	badGST.GSTRate = &rate
	_, err := uc.Create(ctx, badGST)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	unknownBrand := itemRequest()
	unknownBrand.BrandCode = "0042"
	_, err = uc.Create(ctx, unknownBrand)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "Brand")

	noUnit := itemRequest()
	noUnit.UnitCode = ""
	_, err = uc.Create(ctx, noUnit)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	tooPrecise := itemRequest()
	tooPrecise.MRP = decimal.RequireFromString("10.555")
	_, err = uc.Create(ctx, tooPrecise)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	badGroup := itemRequest()
	badGroup.GroupCode = "99"
	_, err = uc.Create(ctx, badGroup)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemUseCase_ReferencedMastersCannotBeDeleted(t *testing.T) {
	_, masters, uc := newItemFixture(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, itemRequest())
	require.NoError(t, err)

	err = masters.Delete(ctx, entity.KindSize, "0002")
	require.ErrorIs(t, err, domain.ErrInUse)
	assert.Contains(t, err.Error(), "used in related tables")

	require.NoError(t, uc.Delete(ctx, "0001"))
	assert.NoError(t, masters.Delete(ctx, entity.KindSize, "0002"))
}

func TestItemUseCase_SuggestPrefix(t *testing.T) {
	_, _, uc := newItemFixture(t)
	ctx := context.Background()

	p, err := uc.SuggestPrefix(ctx)
	require.NoError(t, err)
	assert.Equal(t, "RSP", p)

	req := itemRequest()
	req.Prefix = "tm"
	_, err = uc.Create(ctx, req)
	require.NoError(t, err)

	p, err = uc.SuggestPrefix(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TM", p)
}

func TestItemUseCase_GSTRates(t *testing.T) {
	_, _, uc := newItemFixture(t)
	rates := uc.GSTRates()
	require.Len(t, rates, 5)
	assert.True(t, usecase.AllowedGST(decimal.NewFromInt(28)))
	assert.False(t, usecase.AllowedGST(decimal.NewFromInt(3)))
}

func TestLedgerUseCase_CreateAndRead(t *testing.T) {
	s := seededStore(t)
	uc := usecase.NewLedgerUseCase(s.Ledgers(), s.Masters(), s.Groups())
	ctx := context.Background()

	l, err := uc.Create(ctx, dto.LedgerRequest{
		Name:           "Murugan Traders",
		GroupCode:      "0202",
		GSTIN:          "33aaacm1234f1z5",
		PAN:            "AAACM1234F",
		DueDays:        30,
		OpeningBalance: decimal.NewFromInt(-500),
	})
	require.NoError(t, err)
	assert.Equal(t, "0001", l.Code)
	assert.True(t, l.Active)
	assert.Equal(t, "33AAACM1234F1Z5", l.GSTIN)
	assert.Equal(t, entity.BalanceCredit, l.BalanceType)
	assert.True(t, l.OpeningBalance.Equal(decimal.NewFromInt(500)))
	assert.NotEmpty(t, l.DueDate)

	_, err = uc.Create(ctx, dto.LedgerRequest{Name: "MURUGAN traders", GroupCode: "0202"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLedgerUseCase_Validation(t *testing.T) {
	s := seededStore(t)
	uc := usecase.NewLedgerUseCase(s.Ledgers(), s.Masters(), s.Groups())
	ctx := context.Background()

	cases := map[string]dto.LedgerRequest{
		"missing name":     {GroupCode: "0202"},
		"missing group":    {Name: "A"},
		"unknown group":    {Name: "A", GroupCode: "77"},
		"bad gstin":        {Name: "A", GroupCode: "0202", GSTIN: "33ABC"},
		"bad pan":          {Name: "A", GroupCode: "0202", PAN: "1234567890"},
		"unknown salesman": {Name: "A", GroupCode: "0202", SalesmanCode: "0001"},
		"bad balance type": {Name: "A", GroupCode: "0202", BalanceType: "Xx"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestLedgerUseCase_SalesmanInUse(t *testing.T) {
	s := seededStore(t)
	masters := usecase.NewMasterUseCase(s.Masters())
	uc := usecase.NewLedgerUseCase(s.Ledgers(), s.Masters(), s.Groups())
	ctx := context.Background()

	_, err := masters.Create(ctx, entity.KindSalesman, dto.MasterRequest{Name: "Raman"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.LedgerRequest{Name: "Lakshmi Agencies", GroupCode: "0202", SalesmanCode: "0001"})
	require.NoError(t, err)

	assert.ErrorIs(t, masters.Delete(ctx, entity.KindSalesman, "0001"), domain.ErrInUse)

	inactive := false
	upd, err := uc.Update(ctx, "0001", dto.LedgerRequest{Name: "Lakshmi Agencies", GroupCode: "0202", Active: &inactive})
	require.NoError(t, err)
	assert.False(t, upd.Active)
}

func TestMasterUseCase_NameCheckUsesFoldedName(t *testing.T) {
	uc := usecase.NewMasterUseCase(memory.New().Masters())
	ctx := context.Background()

	_, err := uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: "Acme Co"})
	require.NoError(t, err)
	other, err := uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: "Zenith"})
	require.NoError(t, err)

	for _, name := range []string{"acme  co", "ACME CO", " Acme\tCo "} {
		_, err = uc.Create(ctx, entity.KindBrand, dto.MasterRequest{Name: name})
		require.ErrorIs(t, err, domain.ErrDuplicate, name)
		assert.Contains(t, err.Error(), `Brand name "Acme Co" already exists`, name)
	}

	_, err = uc.Update(ctx, entity.KindBrand, other.Code, dto.MasterRequest{Name: "Acme   CO"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), `Brand name "Acme Co" already exists`)
}

func TestLedgerUseCase_NameCheckUsesFoldedName(t *testing.T) {
	s := seededStore(t)
	uc := usecase.NewLedgerUseCase(s.Ledgers(), s.Masters(), s.Groups())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.LedgerRequest{Name: "Murugan Traders", GroupCode: "0202"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.LedgerRequest{Name: "murugan   TRADERS", GroupCode: "0202"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), `Ledger name "Murugan Traders" already exists`)
}

type countingCache struct {
	tree        []*entity.GroupTree
	hits, sets  int
	invalidated int
}

func (c *countingCache) Get(context.Context) ([]*entity.GroupTree, bool, error) {
	if c.tree == nil {
		return nil, false, nil
	}
	c.hits++
	return c.tree, true, nil
}

func (c *countingCache) Set(_ context.Context, tree []*entity.GroupTree, _ time.Duration) error {
	c.sets++
	c.tree = tree
	return nil
}

func (c *countingCache) Invalidate(context.Context) error {
	c.invalidated++
	c.tree = nil
	return nil
}

func TestGroupUseCase_TreeIsCachedUntilMutation(t *testing.T) {
	s := seededStore(t)
	c := &countingCache{}
	uc := usecase.NewGroupUseCase(s.Groups(), c, time.Minute, zerolog.Nop())
	ctx := context.Background()

	tree, err := uc.Tree(ctx)
	require.NoError(t, err)
	require.Len(t, tree, 6)
	assert.Equal(t, "Current Assets", tree[1].Name)
	require.Len(t, tree[1].Children, 3)
	assert.Len(t, tree[1].Children[2].Children, 2)
	assert.Equal(t, 1, c.sets)

	_, err = uc.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)

	_, err = uc.Create(ctx, dto.GroupRequest{Code: "0601", Name: "Rent", ParentCode: "06"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.invalidated)

	tree, err = uc.Tree(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rent", tree[5].Children[0].Name)
	assert.Equal(t, 2, c.sets)
}

func TestGroupUseCase_CreateAndDeleteRules(t *testing.T) {
	s := seededStore(t)
	uc := usecase.NewGroupUseCase(s.Groups(), cache.NoopGroupTreeCache{}, time.Minute, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.GroupRequest{Code: "02", Name: "Again"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.GroupRequest{Code: "0901", Name: "Orphan", ParentCode: "09"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.Delete(ctx, "02")
	require.ErrorIs(t, err, domain.ErrInUse)
	assert.Contains(t, err.Error(), "used in related tables")

	assert.NoError(t, uc.Delete(ctx, "020302"))
	assert.ErrorIs(t, uc.Delete(ctx, "020302"), domain.ErrNotFound)
}

func TestGroupUseCase_EnsureStarterTree(t *testing.T) {
	s := memory.New()
	c := &countingCache{}
	uc := usecase.NewGroupUseCase(s.Groups(), c, time.Minute, zerolog.Nop())
	ctx := context.Background()

	created, err := uc.EnsureStarterTree(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, c.invalidated)

	tree, err := uc.Tree(ctx)
	require.NoError(t, err)
	assert.Len(t, tree, 6)

	created, err = uc.EnsureStarterTree(ctx)
	require.NoError(t, err)
	assert.False(t, created, "existing groups are left alone")
}

// pausedGroups holds the first ListAll after its read until release is closed.
type pausedGroups struct {
	repository.GroupRepository
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newPausedGroups(inner repository.GroupRepository) *pausedGroups {
	return &pausedGroups{GroupRepository: inner, entered: make(chan struct{}), release: make(chan struct{})}
}

func (p *pausedGroups) ListAll(ctx context.Context) ([]*entity.Group, error) {
	groups, err := p.GroupRepository.ListAll(ctx)
	paused := false
	p.once.Do(func() { paused = true })
	if paused {
		close(p.entered)
		<-p.release
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return groups, err
}

func hasChild(tree []dto.GroupNode, code string) bool {
	for _, n := range tree {
		if n.Code == code || hasChild(n.Children, code) {
			return true
		}
	}
	return false
}

func TestGroupUseCase_MutationDuringRebuildIsNotCachedStale(t *testing.T) {
	repo := newPausedGroups(seededStore(t).Groups())
	c := &countingCache{}
	uc := usecase.NewGroupUseCase(repo, c, time.Minute, zerolog.Nop())
	ctx := context.Background()

	type result struct {
		tree []dto.GroupNode
		err  error
	}
	done := make(chan result, 1)
	go func() {
		tree, err := uc.Tree(ctx)
		done <- result{tree, err}
	}()
	<-repo.entered

	_, err := uc.Create(ctx, dto.GroupRequest{Code: "0601", Name: "Rent", ParentCode: "06"})
	require.NoError(t, err)
	close(repo.release)

	stale := <-done
	require.NoError(t, stale.err)
	assert.False(t, hasChild(stale.tree, "0601"))
	assert.Zero(t, c.sets, "tree read before the change is not cached")

	fresh, err := uc.Tree(ctx)
	require.NoError(t, err)
	assert.True(t, hasChild(fresh, "0601"))
	assert.Equal(t, 1, c.sets)
}

func TestGroupUseCase_CancelledCallerDoesNotFailOthers(t *testing.T) {
	repo := newPausedGroups(seededStore(t).Groups())
	uc := usecase.NewGroupUseCase(repo, &countingCache{}, time.Minute, zerolog.Nop())

	cctx, cancel := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := uc.Tree(cctx)
		first <- err
	}()
	<-repo.entered
	cancel()
	assert.ErrorIs(t, <-first, context.Canceled)

	second := make(chan error, 1)
	var tree []dto.GroupNode
	go func() {
		var err error
		tree, err = uc.Tree(context.Background())
		second <- err
	}()
	close(repo.release)
	require.NoError(t, <-second)
	assert.Len(t, tree, 6)
}

type fakePDF struct{ got *entity.RegisterReport }

func (f *fakePDF) GenerateRegisterPDF(_ context.Context, r *entity.RegisterReport) ([]byte, error) {
	f.got = r
	return []byte("%PDF-fake"), nil
}

func TestReportUseCase_Register(t *testing.T) {
	s := seededStore(t)
	pdf := &fakePDF{}
	uc := usecase.NewReportUseCase(s.Registers(), pdf)
	ctx := context.Background()

	sales, err := uc.Register(ctx, entity.RegisterSales, "", "")
	require.NoError(t, err)
	require.Len(t, sales.Data, 3)
	assert.Equal(t, "Sales Register", sales.Title)
	assert.Equal(t, "04-04-2026", sales.Data[0].Date)
	assert.True(t, sales.Totals.Amount.Equal(decimal.RequireFromString("21730")))

	ranged, err := uc.Register(ctx, entity.RegisterSales, "2026-04-05", "2026-04-09")
	require.NoError(t, err)
	require.Len(t, ranged.Data, 2)
	assert.Equal(t, "S-0002", ranged.Data[0].BillNo)

	book, err := uc.Register(ctx, entity.RegisterDayBook, "", "")
	require.NoError(t, err)
	assert.Len(t, book.Data, 7)

	_, err = uc.Register(ctx, entity.RegisterSales, "10-04-2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(ctx, entity.RegisterSales, "2026-04-09", "2026-04-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	doc, err := uc.RegisterPDF(ctx, entity.RegisterPurchase, "", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), doc)
	require.NotNil(t, pdf.got)
	assert.Len(t, pdf.got.Rows, 2)
}
