package payroll

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// Employee is one payroll record as read from the source.
type Employee struct {
	Name              string  `json:"name" yaml:"name"`
	Job               string  `json:"job" yaml:"job"`
	HourlyRate        float64 `json:"hourly_rate" yaml:"hourly_rate"`
	WeeklyHoursWorked float64 `json:"weekly_hours_worked" yaml:"weekly_hours_worked"`
	ContractHours     float64 `json:"contract_hours" yaml:"contract_hours"`
}

// Unit is an organizational unit (branch, subsidiary) and its employees in
// source order.
type Unit struct {
	Name      string     `json:"name"`
	Employees []Employee `json:"employees"`
}

// Dataset is the immutable value handed from the loader to the aggregator.
// Unit order is the order of the source.
type Dataset struct {
	Units []Unit `json:"units"`
}

func (d Dataset) IsEmpty() bool {
	return len(d.Units) == 0
}

func (d Dataset) EmployeeCount() int {
	n := 0
	for _, u := range d.Units {
		n += len(u.Employees)
	}
	return n
}

// Fingerprint identifies the dataset content. Two datasets with the same
// units, employees and order share a fingerprint regardless of the source
// they were read from.
func (d Dataset) Fingerprint() string {
	h := sha256.New()
	for _, u := range d.Units {
		fmt.Fprintf(h, "unit %q %d\n", u.Name, len(u.Employees))
		for _, e := range u.Employees {
			fmt.Fprintf(h, "employee %q %q %s %s %s\n", e.Name, e.Job,
				strconv.FormatFloat(e.HourlyRate, 'g', -1, 64),
				strconv.FormatFloat(e.WeeklyHoursWorked, 'g', -1, 64),
				strconv.FormatFloat(e.ContractHours, 'g', -1, 64))
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// SalaryResult is the computed pay of one employee.
type SalaryResult struct {
	OvertimeHours float64 `json:"overtime_hours"`
	BasePay       float64 `json:"base_pay"`
	OvertimeBonus float64 `json:"overtime_bonus"`
	MonthlySalary float64 `json:"monthly_salary"`
}

// EmployeeSalary pairs a record with its computed pay.
type EmployeeSalary struct {
	Employee
	SalaryResult
}

// Stats holds min/max/average monthly salary. All fields are zero when no
// salary contributed.
type Stats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
}

type UnitReport struct {
	Name      string           `json:"name"`
	Employees []EmployeeSalary `json:"employees"`
	Stats     Stats            `json:"stats"`
}

// ExportRow is one employee line of the export file.
type ExportRow struct {
	Unit          string
	Name          string
	Job           string
	MonthlySalary float64
	OvertimeHours float64
}

// UnitStatRow is one unit line of the statistics section of the export file.
type UnitStatRow struct {
	Unit  string
	Stats Stats
}

// Report is the aggregator output.
type Report struct {
	Units         []UnitReport
	Company       Stats
	EmployeeCount int
	Rows          []ExportRow
	UnitRows      []UnitStatRow
}

// Unit returns the report of the named unit.
func (r *Report) Unit(name string) (UnitReport, bool) {
	for _, u := range r.Units {
		if u.Name == name {
			return u, true
		}
	}
	return UnitReport{}, false
}

type LoadStatus string

const (
	StatusSuccess       LoadStatus = "success"
	StatusNotFound      LoadStatus = "not_found"
	StatusMalformed     LoadStatus = "malformed"
	StatusInvalidRecord LoadStatus = "invalid_record"
)

// LoadResult tells callers whether the source was read. On NotFound and
// Malformed the dataset is empty and Err explains why.
type LoadResult struct {
	Status  LoadStatus
	Dataset Dataset
	Source  string
	Err     error
}

func (r *LoadResult) OK() bool {
	return r.Status == StatusSuccess
}

// Degraded reports whether the result should be treated as an empty dataset
// rather than a failure.
func (r *LoadResult) Degraded() bool {
	return r.Status == StatusNotFound || r.Status == StatusMalformed
}
