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

// MasterUseCase CRUD for the code+name masters (brand, category, salesman...).
type MasterUseCase struct {
	repo repository.MasterRepository
}

// NewMasterUseCase builds the use case.
func NewMasterUseCase(repo repository.MasterRepository) *MasterUseCase {
	return &MasterUseCase{repo: repo}
}

// List returns one page of records of the given kind.
func (uc *MasterUseCase) List(ctx context.Context, kind entity.MasterKind, p dto.PageRequest) (*dto.ListResponse[dto.MasterResponse], error) {
	p.DefaultPage()
	list, total, err := uc.repo.List(ctx, kind, repository.MasterFilter{Search: p.Search, Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return nil, err
	}
	data := make([]dto.MasterResponse, 0, len(list))
	for _, rec := range list {
		data = append(data, toMasterResponse(rec))
	}
	return &dto.ListResponse[dto.MasterResponse]{
		Data: data,
		Page: dto.PageResponse{Limit: p.Limit, Offset: p.Offset, Total: total},
	}, nil
}

// Get returns nil, nil when the code does not exist.
func (uc *MasterUseCase) Get(ctx context.Context, kind entity.MasterKind, code string) (*dto.MasterResponse, error) {
	rec, err := uc.repo.GetByCode(ctx, kind, code)
	if err != nil || rec == nil {
		return nil, err
	}
	out := toMasterResponse(rec)
	return &out, nil
}

// NextCode issues the next sequential code for kind.
func (uc *MasterUseCase) NextCode(ctx context.Context, kind entity.MasterKind) (string, error) {
	existing, err := uc.repo.Codes(ctx, kind)
	if err != nil {
		return "", err
	}
	return codes.Next(existing, codes.DefaultWidth), nil
}

// Create stores a new record. An empty code takes the next free one.
func (uc *MasterUseCase) Create(ctx context.Context, kind entity.MasterKind, in dto.MasterRequest) (*dto.MasterResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Detailf(domain.ErrInvalidInput, "%s name is required", kind.Label())
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		next, err := uc.NextCode(ctx, kind)
		if err != nil {
			return nil, err
		}
		code = next
	} else {
		existing, err := uc.repo.GetByCode(ctx, kind, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.Detailf(domain.ErrDuplicate, "%s code %q already exists", kind.Label(), code)
		}
	}
	if err := uc.checkName(ctx, kind, "", name); err != nil {
		return nil, err
	}

	now := time.Now()
	rec := &entity.MasterRecord{Kind: kind, Code: code, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Detailf(domain.ErrDuplicate, "%s %q already exists", kind.Label(), name)
		}
		return nil, err
	}
	out := toMasterResponse(rec)
	return &out, nil
}

// Update renames the record identified by code.
func (uc *MasterUseCase) Update(ctx context.Context, kind entity.MasterKind, code string, in dto.MasterRequest) (*dto.MasterResponse, error) {
	rec, err := uc.repo.GetByCode(ctx, kind, code)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Detailf(domain.ErrInvalidInput, "%s name is required", kind.Label())
	}
	if err := uc.checkName(ctx, kind, code, name); err != nil {
		return nil, err
	}
	rec.Name = name
	rec.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	out := toMasterResponse(rec)
	return &out, nil
}

// Delete removes the record; referenced records report domain.ErrInUse.
func (uc *MasterUseCase) Delete(ctx context.Context, kind entity.MasterKind, code string) error {
	err := uc.repo.Delete(ctx, kind, code)
	if errors.Is(err, domain.ErrInUse) {
		return domain.Detailf(domain.ErrInUse, "%s %s is used in related tables and cannot be deleted", kind.Label(), code)
	}
	return err
}

// checkName rejects a name whose folded form is already held by another code.
func (uc *MasterUseCase) checkName(ctx context.Context, kind entity.MasterKind, selfCode, name string) error {
	candidates, _, err := uc.repo.List(ctx, kind, repository.MasterFilter{})
	if err != nil {
		return err
	}
	for _, c := range candidates {
		if c.Code != selfCode && codes.SameName(c.Name, name) {
			return domain.Detailf(domain.ErrDuplicate, "%s name %q already exists", kind.Label(), c.Name)
		}
	}
	return nil
}

func toMasterResponse(rec *entity.MasterRecord) dto.MasterResponse {
	return dto.MasterResponse{
		Kind:      string(rec.Kind),
		Code:      rec.Code,
		Name:      rec.Name,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
