package usecase

import (
	"context"
	"time"

	"github.com/rsankarapandian/stores-backoffice/internal/application/dto"
	"github.com/rsankarapandian/stores-backoffice/internal/domain"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
	"github.com/rsankarapandian/stores-backoffice/internal/domain/repository"
)

// RegisterPDFGenerator renders a register (maroto adapter).
type RegisterPDFGenerator interface {
	GenerateRegisterPDF(ctx context.Context, r *entity.RegisterReport) ([]byte, error)
}

// ReportUseCase serves the report registers.
type ReportUseCase struct {
	repo repository.RegisterRepository
	pdf  RegisterPDFGenerator
}

// NewReportUseCase builds the use case.
func NewReportUseCase(repo repository.RegisterRepository, pdf RegisterPDFGenerator) *ReportUseCase {
	return &ReportUseCase{repo: repo, pdf: pdf}
}

// Register returns the rows of reg between from and to (YYYY-MM-DD, either may be empty).
func (uc *ReportUseCase) Register(ctx context.Context, reg entity.Register, from, to string) (*dto.RegisterResponse, error) {
	r, err := uc.load(ctx, reg, from, to)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.RegisterRow, 0, len(r.Rows))
	for _, e := range r.Rows {
		rows = append(rows, dto.RegisterRow{
			ID:       e.ID,
			Date:     e.Date.Format("02-01-2006"),
			BillNo:   e.BillNo,
			Party:    e.Party,
			Quantity: e.Quantity,
			Amount:   e.Amount,
			Tax:      e.Tax,
		})
	}
	return &dto.RegisterResponse{
		Register: string(reg),
		Title:    reg.Title(),
		From:     from,
		To:       to,
		Data:     rows,
		Totals: dto.RegisterTotals{
			Quantity: r.Totals.Quantity,
			Amount:   r.Totals.Amount,
			Tax:      r.Totals.Tax,
		},
	}, nil
}

// RegisterPDF renders the same register as a PDF document.
func (uc *ReportUseCase) RegisterPDF(ctx context.Context, reg entity.Register, from, to string) ([]byte, error) {
	r, err := uc.load(ctx, reg, from, to)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateRegisterPDF(ctx, r)
}

func (uc *ReportUseCase) load(ctx context.Context, reg entity.Register, from, to string) (*entity.RegisterReport, error) {
	fromDate, err := parseDay(from)
	if err != nil {
		return nil, domain.Detailf(domain.ErrInvalidInput, "from must be YYYY-MM-DD")
	}
	toDate, err := parseDay(to)
	if err != nil {
		return nil, domain.Detailf(domain.ErrInvalidInput, "to must be YYYY-MM-DD")
	}
	if !fromDate.IsZero() && !toDate.IsZero() && toDate.Before(fromDate) {
		return nil, domain.Detailf(domain.ErrInvalidInput, "from date is after to date")
	}
	rows, err := uc.repo.List(ctx, reg, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &entity.RegisterReport{
		Register: reg,
		From:     fromDate,
		To:       toDate,
		Rows:     rows,
		Totals:   entity.SumRegister(rows),
	}, nil
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}
