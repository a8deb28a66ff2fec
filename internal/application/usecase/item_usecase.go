package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

// GSTRates the GST slabs an item may carry, in percent.
var GSTRates = []decimal.Decimal{
	decimal.NewFromInt(0),
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

// ItemUseCase CRUD for items plus the lookups the item form needs.
type ItemUseCase struct {
	items         repository.ItemRepository
	masters       repository.MasterRepository
	groups        repository.GroupRepository
	defaultPrefix string
}

// NewItemUseCase builds the use case. defaultPrefix is suggested when no item carries a prefix yet.
func NewItemUseCase(items repository.ItemRepository, masters repository.MasterRepository, groups repository.GroupRepository, defaultPrefix string) *ItemUseCase {
	return &ItemUseCase{items: items, masters: masters, groups: groups, defaultPrefix: defaultPrefix}
}

// GSTRates returns the allowed GST list.
func (uc *ItemUseCase) GSTRates() []decimal.Decimal {
	out := make([]decimal.Decimal, len(GSTRates))
	copy(out, GSTRates)
	return out
}

// SuggestPrefix returns the prefix of the most recent prefixed item, or the configured default.
func (uc *ItemUseCase) SuggestPrefix(ctx context.Context) (string, error) {
	list, _, err := uc.items.List(ctx, repository.MasterFilter{})
	if err != nil {
		return "", err
	}
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].Prefix != "" {
			return list[i].Prefix, nil
		}
	}
	return uc.defaultPrefix, nil
}

func (uc *ItemUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.ItemResponse], error) {
	p.DefaultPage()
	list, total, err := uc.items.List(ctx, repository.MasterFilter{Search: p.Search, Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	data := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		data = append(data, toItemResponse(it))
	}
	return &dto.ListResponse[dto.ItemResponse]{
		Data: data,
		Page: dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}, nil
}

// Get returns nil, nil when the code does not exist.
func (uc *ItemUseCase) Get(ctx context.Context, code string) (*dto.ItemResponse, error) {
	it, err := uc.items.GetByCode(ctx, code)
	if err != nil || it == nil {
		return nil, err
	}
	out := toItemResponse(it)
	return &out, nil
}

func (uc *ItemUseCase) NextCode(ctx context.Context) (string, error) {
	existing, err := uc.items.Codes(ctx)
	if err != nil {
		return "", err
	}
	return codes.Next(existing, codes.DefaultWidth), nil
}

func (uc *ItemUseCase) Create(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	it, err := uc.buildItem(ctx, in)
	if err != nil {
		return nil, err
	}
	if it.Code == "" {
		if it.Code, err = uc.NextCode(ctx); err != nil {
			return nil, err
		}
	} else if existing, err := uc.items.GetByCode(ctx, it.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Detailf(domain.ErrDuplicate, "Item code %q already exists", it.Code)
	}
	if err := uc.checkName(ctx, "", it.Name); err != nil {
		return nil, err
	}
	now := time.Now()
	it.CreatedAt, it.UpdatedAt = now, now
	if err := uc.items.Create(ctx, it); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Detailf(domain.ErrDuplicate, "Item %q already exists", it.Name)
		}
		return nil, err
	}
	out := toItemResponse(it)
	return &out, nil
}

func (uc *ItemUseCase) Update(ctx context.Context, code string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	current, err := uc.items.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	it, err := uc.buildItem(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, code, it.Name); err != nil {
		return nil, err
	}
	it.Code = code
	it.CreatedAt = current.CreatedAt
	it.UpdatedAt = time.Now()
	if err := uc.items.Update(ctx, it); err != nil {
		return nil, err
	}
	out := toItemResponse(it)
	return &out, nil
}

func (uc *ItemUseCase) Delete(ctx context.Context, code string) error {
	err := uc.items.Delete(ctx, code)
	if errors.Is(err, domain.ErrInUse) {
		return domain.Detailf(domain.ErrInUse, "Item %s is used in related tables and cannot be deleted", code)
	}
	return err
}

// buildItem validates the request and resolves its references.
func (uc *ItemUseCase) buildItem(ctx context.Context, in dto.ItemRequest) (*entity.Item, error) {
	it := &entity.Item{
		Code:           strings.TrimSpace(in.Code),
		Prefix:         strings.ToUpper(strings.TrimSpace(in.Prefix)),
		Name:           strings.TrimSpace(in.Name),
		GroupCode:      in.GroupCode,
		BrandCode:      in.BrandCode,
		CategoryCode:   in.CategoryCode,
		ProductCode:    in.ProductCode,
		ModelCode:      in.ModelCode,
		SizeCodes:      in.SizeCodes,
		UnitCode:       in.UnitCode,
		GSTRate:        decimal.Zero,
		HSNCode:        strings.TrimSpace(in.HSNCode),
		Type:           in.Type,
		Cost:           in.Cost,
		SellingPrice:   in.SellingPrice,
		MRP:            in.MRP,
		WholesalePrice: in.WholesalePrice,
	}
	switch {
	case it.Name == "":
		return nil, domain.Detailf(domain.ErrInvalidInput, "Item name is required")
	case it.GroupCode == "":
		return nil, domain.Detailf(domain.ErrInvalidInput, "Group is required")
	case it.UnitCode == "":
		return nil, domain.Detailf(domain.ErrInvalidInput, "Unit is required")
	case it.Type != entity.ItemTypeScrap && it.Type != entity.ItemTypeFinished:
		return nil, domain.Detailf(domain.ErrInvalidInput, "Item type must be SC or FG")
	}
	if in.GSTRate != nil {
		if !AllowedGST(*in.GSTRate) {
			return nil, domain.Detailf(domain.ErrInvalidInput, "GST rate %s is not allowed", in.GSTRate.String())
		}
		it.GSTRate = *in.GSTRate
	}
	prices := []struct {
		label string
		value decimal.Decimal
	}{
		{"Cost", it.Cost}, {"Selling price", it.SellingPrice}, {"MRP", it.MRP}, {"Wholesale price", it.WholesalePrice},
	}
	for _, p := range prices {
		if p.value.IsNegative() || !p.value.Equal(p.value.Round(2)) {
			return nil, domain.Detailf(domain.ErrInvalidInput, "%s must be a positive amount with at most 2 decimals", p.label)
		}
	}

	g, err := uc.groups.GetByCode(ctx, it.GroupCode)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.Detailf(domain.ErrInvalidInput, "Unknown group %q", it.GroupCode)
	}
	for kind, refs := range it.References() {
		for _, code := range refs {
			rec, err := uc.masters.GetByCode(ctx, kind, code)
			if err != nil {
				return nil, err
			}
			if rec == nil {
				return nil, domain.Detailf(domain.ErrInvalidInput, "Unknown %s %q", kind.Label(), code)
			}
		}
	}
	return it, nil
}

func (uc *ItemUseCase) checkName(ctx context.Context, selfCode, name string) error {
	candidates, _, err := uc.items.List(ctx, repository.MasterFilter{})
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.Code != selfCode && codes.SameName(c.Name, name) {
			return domain.Detailf(domain.ErrDuplicate, "Item name %q already exists", c.Name)
		}
	}
	return nil
}

// AllowedGST reports whether rate is one of GSTRates.
func AllowedGST(rate decimal.Decimal) bool {
	for _, r := range GSTRates {
		if r.Equal(rate) {
			return true
		}
	}
	return false
}

func toItemResponse(it *entity.Item) dto.ItemResponse {
	sizes := it.SizeCodes
	if sizes == nil {
		sizes = []string{}
	}
	return dto.ItemResponse{
		Code:           it.Code,
		Prefix:         it.Prefix,
		Name:           it.Name,
		GroupCode:      it.GroupCode,
		BrandCode:      it.BrandCode,
		CategoryCode:   it.CategoryCode,
		ProductCode:    it.ProductCode,
		ModelCode:      it.ModelCode,
		SizeCodes:      sizes,
		UnitCode:       it.UnitCode,
		GSTRate:        it.GSTRate,
		HSNCode:        it.HSNCode,
		Type:           it.Type,
		Cost:           it.Cost,
		SellingPrice:   it.SellingPrice,
		MRP:            it.MRP,
		WholesalePrice: it.WholesalePrice,
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}
