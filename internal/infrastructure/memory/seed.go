package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rsankarapandian/stores-backoffice/internal/domain/entity"
)

// SeedSamples loads the starter group tree and sample register rows shown by the
// report screens in development.
func (s *Store) SeedSamples(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups = append(s.groups, entity.StarterGroups()...)

	day := func(back int) time.Time {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -back)
	}
	row := func(reg entity.Register, back int, bill, party string, qty, amount, tax string) entity.RegisterEntry {
		return entity.RegisterEntry{
			ID:       uuid.NewString(),
			Register: reg,
			Date:     day(back),
			BillNo:   bill,
			Party:    party,
			Quantity: decimal.RequireFromString(qty),
			Amount:   decimal.RequireFromString(amount),
			Tax:      decimal.RequireFromString(tax),
		}
	}
	s.registers = append(s.registers,
		row(entity.RegisterSales, 6, "S-0001", "Murugan Traders", "12", "14500.00", "2610.00"),
		row(entity.RegisterSales, 4, "S-0002", "Lakshmi Agencies", "5", "6250.00", "1125.00"),
		row(entity.RegisterSales, 1, "S-0003", "Cash Sales", "2", "980.00", "176.40"),
		row(entity.RegisterPurchase, 7, "P-0101", "Sri Balaji Steels", "40", "52000.00", "9360.00"),
		row(entity.RegisterPurchase, 3, "P-0102", "Kaveri Plastics", "150", "18750.00", "2250.00"),
		row(entity.RegisterSalesReturn, 2, "SR-0001", "Lakshmi Agencies", "1", "1250.00", "225.00"),
		row(entity.RegisterPurchaseReturn, 2, "PR-0001", "Kaveri Plastics", "10", "1250.00", "150.00"),
	)
}
