package payroll

import (
	"fmt"

	"github.com/frahmantamala/payroll-report/internal"
	"github.com/frahmantamala/payroll-report/internal/core/common/validation"
)

// ValidateNonNegative returns ErrNegativeValue listing every negative numeric
// field in the dataset, or nil.
func ValidateNonNegative(d Dataset) error {
	var fieldErrors []internal.ValidationError

	for _, unit := range d.Units {
		for i, e := range unit.Employees {
			prefix := fmt.Sprintf("%s[%d]", unit.Name, i)
			v := validation.NewValidator()
			v.Field(prefix+".hourly_rate", e.HourlyRate).NonNegative(internal.ErrCodeNegativeValue)
			v.Field(prefix+".weekly_hours_worked", e.WeeklyHoursWorked).NonNegative(internal.ErrCodeNegativeValue)
			v.Field(prefix+".contract_hours", e.ContractHours).NonNegative(internal.ErrCodeNegativeValue)
			fieldErrors = append(fieldErrors, v.Errors()...)
		}
	}

	if len(fieldErrors) == 0 {
		return nil
	}
	return internal.ErrNegativeValue.WithDetails(internal.ValidationErrors{Errors: fieldErrors})
}
