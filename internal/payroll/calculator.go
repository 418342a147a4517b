package payroll

const (
	// WeeksPerMonth approximates a month as four weeks.
	WeeksPerMonth = 4
	// OvertimeMultiplier is the premium applied to the hourly rate for
	// hours worked beyond the contract.
	OvertimeMultiplier = 1.5
)

// Calculate computes the monthly gross salary of one employee. Base pay uses
// the contract hours, so undertime never lowers it; only positive overtime
// adds a bonus. Inputs are not validated.
func Calculate(e Employee) SalaryResult {
	overtime := e.WeeklyHoursWorked - e.ContractHours
	base := e.ContractHours * e.HourlyRate * WeeksPerMonth

	var bonus float64
	if overtime > 0 {
		bonus = overtime * e.HourlyRate * OvertimeMultiplier * WeeksPerMonth
	}

	return SalaryResult{
		OvertimeHours: overtime,
		BasePay:       base,
		OvertimeBonus: bonus,
		MonthlySalary: base + bonus,
	}
}
