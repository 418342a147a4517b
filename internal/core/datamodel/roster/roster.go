package roster

import "time"

type Unit struct {
	ID        int64      `gorm:"primaryKey"`
	Name      string     `gorm:"column:name;uniqueIndex;not null"`
	Position  int        `gorm:"column:position;not null"`
	Employees []Employee `gorm:"foreignKey:UnitID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}

func (Unit) TableName() string {
	return "units"
}

// Employee numeric columns are nullable: a NULL is a missing field and makes
// the record invalid for a payroll run.
type Employee struct {
	ID                int64    `gorm:"primaryKey"`
	UnitID            int64    `gorm:"column:unit_id;index;not null"`
	Position          int      `gorm:"column:position;not null"`
	Name              *string  `gorm:"column:name"`
	Job               *string  `gorm:"column:job"`
	HourlyRate        *float64 `gorm:"column:hourly_rate"`
	WeeklyHoursWorked *float64 `gorm:"column:weekly_hours_worked"`
	ContractHours     *float64 `gorm:"column:contract_hours"`
}

func (Employee) TableName() string {
	return "employees"
}
