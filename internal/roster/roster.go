package roster

import (
	"context"
	"fmt"
	"math"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/core/common/validation"
	rosterDatamodel "github.com/frahmantamala/payroll-report/internal/core/datamodel/roster"
	"github.com/frahmantamala/payroll-report/internal/payroll"
)

type RepositoryAPI interface {
	HasSchema(ctx context.Context) (bool, error)
	GetUnits(ctx context.Context) ([]*rosterDatamodel.Unit, error)
	GetUnitByName(ctx context.Context, name string) (*rosterDatamodel.Unit, error)
	CountUnits(ctx context.Context) (int64, error)
	CreateUnit(ctx context.Context, unit *rosterDatamodel.Unit) error
	Clear(ctx context.Context) error
}

// record is an employee as decoded from any source, before required fields
// are checked.
type record struct {
	Name              *string  `json:"name" yaml:"name"`
	Job               *string  `json:"job" yaml:"job"`
	HourlyRate        *float64 `json:"hourly_rate" yaml:"hourly_rate"`
	WeeklyHoursWorked *float64 `json:"weekly_hours_worked" yaml:"weekly_hours_worked"`
	ContractHours     *float64 `json:"contract_hours" yaml:"contract_hours"`
}

func (r record) validate(unit string, index int) []internal.ValidationError {
	prefix := fmt.Sprintf("%s[%d]", unit, index)
	v := validation.NewValidator()
	v.Field(prefix+".name", r.Name).Required()
	v.Field(prefix+".job", r.Job).Required()
	v.Field(prefix+".hourly_rate", r.HourlyRate).Required().Custom(finite)
	v.Field(prefix+".weekly_hours_worked", r.WeeklyHoursWorked).Required().Custom(finite)
	v.Field(prefix+".contract_hours", r.ContractHours).Required().Custom(finite)
	return v.Errors()
}

// finite rejects NaN and infinities, which YAML can express as .nan and .inf.
func finite(value interface{}) *internal.AppError {
	f, ok := value.(*float64)
	if !ok || f == nil {
		return nil
	}
	if math.IsNaN(*f) || math.IsInf(*f, 0) {
		return internal.NewRecordError(fmt.Sprintf("must be a finite number, got %g", *f), internal.ErrCodeInvalidRecord)
	}
	return nil
}

func (r record) toEmployee() payroll.Employee {
	return payroll.Employee{
		Name:              *r.Name,
		Job:               *r.Job,
		HourlyRate:        *r.HourlyRate,
		WeeklyHoursWorked: *r.WeeklyHoursWorked,
		ContractHours:     *r.ContractHours,
	}
}

// toEmployees validates every record of a unit and converts them.
func toEmployees(unit string, records []record) ([]payroll.Employee, []internal.ValidationError) {
	var fieldErrors []internal.ValidationError
	employees := make([]payroll.Employee, 0, len(records))
	for i, r := range records {
		if errs := r.validate(unit, i); len(errs) > 0 {
			fieldErrors = append(fieldErrors, errs...)
			continue
		}
		employees = append(employees, r.toEmployee())
	}
	return employees, fieldErrors
}

func invalidRecord(fieldErrors []internal.ValidationError) error {
	return internal.ErrInvalidRecord.WithDetails(internal.ValidationErrors{Errors: fieldErrors})
}

func invalidRecordf(field, format string, args ...any) error {
	return invalidRecord([]internal.ValidationError{{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
		Code:    string(internal.ErrCodeInvalidRecord),
	}})
}

func ToDataModel(unit payroll.Unit, position int) *rosterDatamodel.Unit {
	m := &rosterDatamodel.Unit{
		Name:      unit.Name,
		Position:  position,
		Employees: make([]rosterDatamodel.Employee, 0, len(unit.Employees)),
	}
	for i, e := range unit.Employees {
		e := e
		m.Employees = append(m.Employees, rosterDatamodel.Employee{
			Position:          i,
			Name:              &e.Name,
			Job:               &e.Job,
			HourlyRate:        &e.HourlyRate,
			WeeklyHoursWorked: &e.WeeklyHoursWorked,
			ContractHours:     &e.ContractHours,
		})
	}
	return m
}

// FromDataModel converts stored rows, rejecting rows with NULL fields.
func FromDataModel(m *rosterDatamodel.Unit) (payroll.Unit, error) {
	records := make([]record, len(m.Employees))
	for i, e := range m.Employees {
		records[i] = record{
			Name:              e.Name,
			Job:               e.Job,
			HourlyRate:        e.HourlyRate,
			WeeklyHoursWorked: e.WeeklyHoursWorked,
			ContractHours:     e.ContractHours,
		}
	}
	employees, fieldErrors := toEmployees(m.Name, records)
	if len(fieldErrors) > 0 {
		return payroll.Unit{}, invalidRecord(fieldErrors)
	}
	return payroll.Unit{Name: m.Name, Employees: employees}, nil
}
