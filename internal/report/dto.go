package report

import (
	"math"

	"github.com/frahmantamala/payroll-report/internal/payroll"
)

// Amounts in responses are rounded to cents; the report itself keeps full
// precision.

type StatsResponse struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

type UnitSummary struct {
	Name      string        `json:"name"`
	Employees int           `json:"employees"`
	Stats     StatsResponse `json:"stats"`
}

type UnitsResponse struct {
	Units       []UnitSummary `json:"units"`
	Status      string        `json:"status"`
	Fingerprint string        `json:"fingerprint"`
}

type CompanyResponse struct {
	Stats     StatsResponse `json:"stats"`
	Employees int           `json:"employees"`
	Units     int           `json:"units"`
	Status    string        `json:"status"`
}

type EmployeeResponse struct {
	Name              string  `json:"name"`
	Job               string  `json:"job"`
	HourlyRate        float64 `json:"hourly_rate"`
	WeeklyHoursWorked float64 `json:"weekly_hours_worked"`
	ContractHours     float64 `json:"contract_hours"`
	OvertimeHours     float64 `json:"overtime_hours"`
	MonthlySalary     float64 `json:"monthly_salary"`
}

type UnitViewResponse struct {
	Unit      string             `json:"unit"`
	Employees []EmployeeResponse `json:"employees"`
	Stats     StatsResponse      `json:"stats"`
	Visible   int                `json:"visible"`
	Total     int                `json:"total"`
	Jobs      []string           `json:"jobs"`
	Bounds    BoundsResponse     `json:"bounds"`
}

type BoundsResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func toStatsResponse(s payroll.Stats) StatsResponse {
	return StatsResponse{Min: round2(s.Min), Max: round2(s.Max), Average: round2(s.Average)}
}

func toUnitsResponse(res *payroll.Result) UnitsResponse {
	units := make([]UnitSummary, 0, len(res.Report.Units))
	for _, u := range res.Report.Units {
		units = append(units, UnitSummary{
			Name:      u.Name,
			Employees: len(u.Employees),
			Stats:     toStatsResponse(u.Stats),
		})
	}
	return UnitsResponse{
		Units:       units,
		Status:      string(res.Status),
		Fingerprint: res.Fingerprint,
	}
}

func toCompanyResponse(res *payroll.Result) CompanyResponse {
	return CompanyResponse{
		Stats:     toStatsResponse(res.Report.Company),
		Employees: res.Report.EmployeeCount,
		Units:     len(res.Report.Units),
		Status:    string(res.Status),
	}
}

func toUnitViewResponse(v *payroll.FilteredView) UnitViewResponse {
	employees := make([]EmployeeResponse, 0, len(v.Employees))
	for _, e := range v.Employees {
		employees = append(employees, EmployeeResponse{
			Name:              e.Name,
			Job:               e.Job,
			HourlyRate:        e.HourlyRate,
			WeeklyHoursWorked: e.WeeklyHoursWorked,
			ContractHours:     e.ContractHours,
			OvertimeHours:     e.OvertimeHours,
			MonthlySalary:     round2(e.MonthlySalary),
		})
	}
	return UnitViewResponse{
		Unit:      v.Unit,
		Employees: employees,
		Stats:     toStatsResponse(v.Stats),
		Visible:   v.Visible,
		Total:     v.Total,
		Jobs:      v.Jobs,
		Bounds:    BoundsResponse{Min: round2(v.Bounds.Min), Max: round2(v.Bounds.Max)},
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
