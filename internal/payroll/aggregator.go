package payroll

// Aggregate computes every salary of the dataset and folds them into unit
// and company statistics. Units and employees keep source order and no
// rounding is applied.
func Aggregate(d Dataset) *Report {
	report := &Report{
		Units:    make([]UnitReport, 0, len(d.Units)),
		Rows:     make([]ExportRow, 0, d.EmployeeCount()),
		UnitRows: make([]UnitStatRow, 0, len(d.Units)),
	}

	var company statsAccumulator
	for _, unit := range d.Units {
		var acc statsAccumulator
		ur := UnitReport{
			Name:      unit.Name,
			Employees: make([]EmployeeSalary, 0, len(unit.Employees)),
		}

		for _, e := range unit.Employees {
			res := Calculate(e)
			ur.Employees = append(ur.Employees, EmployeeSalary{Employee: e, SalaryResult: res})
			acc.add(res.MonthlySalary)
			company.add(res.MonthlySalary)

			report.Rows = append(report.Rows, ExportRow{
				Unit:          unit.Name,
				Name:          e.Name,
				Job:           e.Job,
				MonthlySalary: res.MonthlySalary,
				OvertimeHours: res.OvertimeHours,
			})
		}

		ur.Stats = acc.stats()
		report.Units = append(report.Units, ur)
		report.UnitRows = append(report.UnitRows, UnitStatRow{Unit: unit.Name, Stats: ur.Stats})
	}

	report.Company = company.stats()
	report.EmployeeCount = company.count
	return report
}

// ComputeStats returns the statistics of a list of salaries.
func ComputeStats(salaries []float64) Stats {
	var acc statsAccumulator
	for _, s := range salaries {
		acc.add(s)
	}
	return acc.stats()
}

type statsAccumulator struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (a *statsAccumulator) add(v float64) {
	if a.count == 0 || v < a.min {
		a.min = v
	}
	if a.count == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.count++
}

func (a *statsAccumulator) stats() Stats {
	if a.count == 0 {
		return Stats{}
	}
	return Stats{
		Min:     a.min,
		Max:     a.max,
		Average: a.sum / float64(a.count),
	}
}
