package roster

import (
	"context"
	"errors"
	"log/slog"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/payroll"
)

// DatabaseLoader reads units and employees, both in stored position order,
// from the roster tables.
type DatabaseLoader struct {
	repo   RepositoryAPI
	source string
}

func NewDatabaseLoader(repo RepositoryAPI, source string) *DatabaseLoader {
	return &DatabaseLoader{repo: repo, source: source}
}

func (l *DatabaseLoader) Load(ctx context.Context) *payroll.LoadResult {
	result := &payroll.LoadResult{Source: l.source}

	ok, err := l.repo.HasSchema(ctx)
	if err != nil {
		result.Status = payroll.StatusMalformed
		result.Err = internal.ErrSourceMalformed.WithCause(err)
		return result
	}
	if !ok {
		result.Status = payroll.StatusNotFound
		result.Err = internal.ErrSourceNotFound.WithCause(errors.New("roster tables do not exist, run migrate first"))
		return result
	}

	units, err := l.repo.GetUnits(ctx)
	if err != nil {
		result.Status = payroll.StatusMalformed
		result.Err = internal.ErrSourceMalformed.WithCause(err)
		return result
	}

	ds := payroll.Dataset{Units: make([]payroll.Unit, 0, len(units))}
	for _, m := range units {
		u, err := FromDataModel(m)
		if err != nil {
			result.Status = payroll.StatusInvalidRecord
			result.Err = err
			return result
		}
		ds.Units = append(ds.Units, u)
	}

	result.Status = payroll.StatusSuccess
	result.Dataset = ds
	return result
}

type SeedSummary struct {
	Created int
	Skipped int
}

// Seeder imports a dataset into the roster tables.
type Seeder struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewSeeder(repo RepositoryAPI, logger *slog.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Seed appends every unit of ds after the stored ones. Units that already
// exist are left untouched unless clear is set, in which case every stored
// unit is removed first.
func (s *Seeder) Seed(ctx context.Context, ds payroll.Dataset, clear bool) (SeedSummary, error) {
	var summary SeedSummary

	if clear {
		if err := s.repo.Clear(ctx); err != nil {
			s.logger.Error("failed to clear roster", "error", err)
			return summary, err
		}
		s.logger.Info("roster cleared")
	}

	count, err := s.repo.CountUnits(ctx)
	if err != nil {
		return summary, err
	}
	position := int(count)

	for _, unit := range ds.Units {
		existing, err := s.repo.GetUnitByName(ctx, unit.Name)
		if err != nil {
			return summary, err
		}
		if existing != nil {
			s.logger.Info("unit already exists, skipping", "unit", unit.Name)
			summary.Skipped++
			continue
		}

		if err := s.repo.CreateUnit(ctx, ToDataModel(unit, position)); err != nil {
			s.logger.Error("failed to seed unit", "unit", unit.Name, "error", err)
			return summary, err
		}
		position++
		summary.Created++
		s.logger.Info("seeded unit", "unit", unit.Name, "employees", len(unit.Employees))
	}

	return summary, nil
}
