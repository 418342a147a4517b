package payroll

import (
	"sort"

	"github.com/frahmantamala/payroll-report/internal"
)

// Filter narrows the employees of a unit. Nil bounds default to the unit's
// own min/max salary and an empty Job keeps every job.
type Filter struct {
	MinSalary *float64
	MaxSalary *float64
	Job       string
}

// Bounds is the salary range of a whole unit, used to seed range selectors.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilteredView is what a presentation layer shows for one unit.
type FilteredView struct {
	Unit      string           `json:"unit"`
	Employees []EmployeeSalary `json:"employees"`
	Stats     Stats            `json:"stats"`
	Visible   int              `json:"visible"`
	Total     int              `json:"total"`
	Jobs      []string         `json:"jobs"`
	Bounds    Bounds           `json:"bounds"`
}

func (f Filter) Validate() error {
	if f.MinSalary != nil && f.MaxSalary != nil && *f.MinSalary > *f.MaxSalary {
		return internal.ErrInvalidFilter.WithDetails(internal.ValidationErrors{
			Errors: []internal.ValidationError{{
				Field:   "min_salary",
				Message: "min_salary must not exceed max_salary",
				Code:    string(internal.ErrCodeInvalidFilter),
			}},
		})
	}
	return nil
}

// ApplyFilter keeps the employees of u whose salary lies in the filter range
// and whose job matches, in source order, and derives statistics from the
// visible subset only.
func ApplyFilter(u UnitReport, f Filter) (*FilteredView, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	bounds := Bounds{Min: u.Stats.Min, Max: u.Stats.Max}
	lo, hi := bounds.Min, bounds.Max
	if f.MinSalary != nil {
		lo = *f.MinSalary
	}
	if f.MaxSalary != nil {
		hi = *f.MaxSalary
	}

	view := &FilteredView{
		Unit:      u.Name,
		Employees: make([]EmployeeSalary, 0, len(u.Employees)),
		Total:     len(u.Employees),
		Jobs:      distinctJobs(u.Employees),
		Bounds:    bounds,
	}

	var acc statsAccumulator
	for _, e := range u.Employees {
		if e.MonthlySalary < lo || e.MonthlySalary > hi {
			continue
		}
		if f.Job != "" && e.Job != f.Job {
			continue
		}
		view.Employees = append(view.Employees, e)
		acc.add(e.MonthlySalary)
	}

	view.Stats = acc.stats()
	view.Visible = len(view.Employees)
	return view, nil
}

func distinctJobs(employees []EmployeeSalary) []string {
	seen := make(map[string]struct{}, len(employees))
	jobs := make([]string, 0, len(employees))
	for _, e := range employees {
		if _, ok := seen[e.Job]; ok {
			continue
		}
		seen[e.Job] = struct{}{}
		jobs = append(jobs, e.Job)
	}
	sort.Strings(jobs)
	return jobs
}
