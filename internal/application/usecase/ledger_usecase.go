package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/codes"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

// LedgerUseCase CRUD for ledgers.
type LedgerUseCase struct {
	ledgers repository.LedgerRepository
	masters repository.MasterRepository
	groups  repository.GroupRepository
	now     func() time.Time
}

// NewLedgerUseCase builds the use case.
func NewLedgerUseCase(ledgers repository.LedgerRepository, masters repository.MasterRepository, groups repository.GroupRepository) *LedgerUseCase {
	return &LedgerUseCase{ledgers: ledgers, masters: masters, groups: groups, now: time.Now}
}

func (uc *LedgerUseCase) List(ctx context.Context, p dto.PageRequest) (*dto.ListResponse[dto.LedgerResponse], error) {
	p.DefaultPage()
	list, total, err := uc.ledgers.List(ctx, repository.MasterFilter{Search: p.Search, Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	today := uc.now()
	data := make([]dto.LedgerResponse, 0, len(list))
	for _, l := range list {
		data = append(data, toLedgerResponse(l, today))
	}
	return &dto.ListResponse[dto.LedgerResponse]{
		Data: data,
		Page: dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}, nil
}

// Get returns nil, nil when the code does not exist.
func (uc *LedgerUseCase) Get(ctx context.Context, code string) (*dto.LedgerResponse, error) {
	l, err := uc.ledgers.GetByCode(ctx, code)
	if err != nil || l == nil {
		return nil, err
	}
	out := toLedgerResponse(l, uc.now())
	return &out, nil
}

func (uc *LedgerUseCase) NextCode(ctx context.Context) (string, error) {
	existing, err := uc.ledgers.Codes(ctx)
	if err != nil {
		return "", err
	}
	return codes.Next(existing, codes.DefaultWidth), nil
}

func (uc *LedgerUseCase) Create(ctx context.Context, in dto.LedgerRequest) (*dto.LedgerResponse, error) {
	l, err := uc.buildLedger(ctx, in)
	if err != nil {
		return nil, err
	}
	if l.Code == "" {
		if l.Code, err = uc.NextCode(ctx); err != nil {
			return nil, err
		}
	} else if existing, err := uc.ledgers.GetByCode(ctx, l.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.Detailf(domain.ErrDuplicate, "Ledger code %q already exists", l.Code)
	}
	if err := uc.checkName(ctx, "", l.Name); err != nil {
		return nil, err
	}
	if in.Active == nil {
		l.Active = true
	}
	now := uc.now()
	l.CreatedAt, l.UpdatedAt = now, now
	if err := uc.ledgers.Create(ctx, l); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Detailf(domain.ErrDuplicate, "Ledger %q already exists", l.Name)
		}
		return nil, err
	}
	out := toLedgerResponse(l, now)
	return &out, nil
}

func (uc *LedgerUseCase) Update(ctx context.Context, code string, in dto.LedgerRequest) (*dto.LedgerResponse, error) {
	current, err := uc.ledgers.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	l, err := uc.buildLedger(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := uc.checkName(ctx, code, l.Name); err != nil {
		return nil, err
	}
	if in.Active == nil {
		l.Active = current.Active
	}
	l.Code = code
	l.CreatedAt = current.CreatedAt
	l.UpdatedAt = uc.now()
	if err := uc.ledgers.Update(ctx, l); err != nil {
		return nil, err
	}
	out := toLedgerResponse(l, l.UpdatedAt)
	return &out, nil
}

func (uc *LedgerUseCase) Delete(ctx context.Context, code string) error {
	err := uc.ledgers.Delete(ctx, code)
	if errors.Is(err, domain.ErrInUse) {
		return domain.Detailf(domain.ErrInUse, "Ledger %s is used in related tables and cannot be deleted", code)
	}
	return err
}

func (uc *LedgerUseCase) buildLedger(ctx context.Context, in dto.LedgerRequest) (*entity.Ledger, error) {
	l := &entity.Ledger{
		Code:           strings.TrimSpace(in.Code),
		Name:           strings.TrimSpace(in.Name),
		GroupCode:      in.GroupCode,
		Address1:       in.Address1,
		Address2:       in.Address2,
		Address3:       in.Address3,
		City:           in.City,
		State:          in.State,
		Pincode:        in.Pincode,
		Phone:          in.Phone,
		Mobile:         in.Mobile,
		Email:          in.Email,
		GSTIN:          strings.ToUpper(strings.TrimSpace(in.GSTIN)),
		PAN:            strings.ToUpper(strings.TrimSpace(in.PAN)),
		CIN:            strings.ToUpper(strings.TrimSpace(in.CIN)),
		Route:          in.Route,
		SalesmanCode:   in.SalesmanCode,
		DueDays:        in.DueDays,
		OpeningBalance: in.OpeningBalance,
		BalanceType:    in.BalanceType,
	}
	if in.Active != nil {
		l.Active = *in.Active
	}
	if l.BalanceType == "" {
		l.BalanceType = entity.BalanceDebit
	}
	switch {
	case l.Name == "":
		return nil, domain.Detailf(domain.ErrInvalidInput, "Ledger name is required")
	case l.GroupCode == "":
		return nil, domain.Detailf(domain.ErrInvalidInput, "Group is required")
	case l.DueDays < 0:
		return nil, domain.Detailf(domain.ErrInvalidInput, "Due days cannot be negative")
	case l.GSTIN != "" && !entity.GSTINPattern.MatchString(l.GSTIN):
		return nil, domain.Detailf(domain.ErrInvalidInput, "GSTIN %q is not valid", l.GSTIN)
	case l.PAN != "" && !entity.PANPattern.MatchString(l.PAN):
		return nil, domain.Detailf(domain.ErrInvalidInput, "PAN %q is not valid", l.PAN)
	case l.BalanceType != entity.BalanceDebit && l.BalanceType != entity.BalanceCredit:
		return nil, domain.Detailf(domain.ErrInvalidInput, "Balance type must be Dr or Cr")
	case !l.OpeningBalance.Equal(l.OpeningBalance.Round(2)):
		return nil, domain.Detailf(domain.ErrInvalidInput, "Opening balance allows at most 2 decimals")
	}
	if l.OpeningBalance.IsNegative() {
		l.OpeningBalance = l.OpeningBalance.Abs()
		l.BalanceType = flipBalance(l.BalanceType)
	}

	g, err := uc.groups.GetByCode(ctx, l.GroupCode)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, domain.Detailf(domain.ErrInvalidInput, "Unknown group %q", l.GroupCode)
	}
	if l.SalesmanCode != "" {
		s, err := uc.masters.GetByCode(ctx, entity.KindSalesman, l.SalesmanCode)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.Detailf(domain.ErrInvalidInput, "Unknown salesman %q", l.SalesmanCode)
		}
	}
	return l, nil
}

func (uc *LedgerUseCase) checkName(ctx context.Context, selfCode, name string) error {
	candidates, _, err := uc.ledgers.List(ctx, repository.MasterFilter{})
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.Code != selfCode && codes.SameName(c.Name, name) {
			return domain.Detailf(domain.ErrDuplicate, "Ledger name %q already exists", c.Name)
		}
	}
	return nil
}

func flipBalance(side string) string {
	if side == entity.BalanceCredit {
		return entity.BalanceDebit
	}
	return entity.BalanceCredit
}

func toLedgerResponse(l *entity.Ledger, today time.Time) dto.LedgerResponse {
	return dto.LedgerResponse{
		Code:           l.Code,
		Name:           l.Name,
		GroupCode:      l.GroupCode,
		Address1:       l.Address1,
		Address2:       l.Address2,
		Address3:       l.Address3,
		City:           l.City,
		State:          l.State,
		Pincode:        l.Pincode,
		Phone:          l.Phone,
		Mobile:         l.Mobile,
		Email:          l.Email,
		GSTIN:          l.GSTIN,
		PAN:            l.PAN,
		CIN:            l.CIN,
		Route:          l.Route,
		SalesmanCode:   l.SalesmanCode,
		DueDays:        l.DueDays,
		DueDate:        l.DueDate(today).Format(time.DateOnly),
		OpeningBalance: l.OpeningBalance,
		BalanceType:    l.BalanceType,
		Active:         l.Active,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
