package postgres

import (
	"context"

	rosterDatamodel "github.com/frahmantamala/payroll-report/internal/core/datamodel/roster"
	"github.com/frahmantamala/payroll-report/internal/roster"
	"gorm.io/gorm"
)

type RosterRepository struct {
	db *gorm.DB
}

func NewRosterRepository(db *gorm.DB) roster.RepositoryAPI {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) HasSchema(ctx context.Context) (bool, error) {
	m := r.db.WithContext(ctx).Migrator()
	return m.HasTable(&rosterDatamodel.Unit{}) && m.HasTable(&rosterDatamodel.Employee{}), nil
}

func (r *RosterRepository) GetUnits(ctx context.Context) ([]*rosterDatamodel.Unit, error) {
	var units []*rosterDatamodel.Unit
	err := r.db.WithContext(ctx).
		Preload("Employees", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Order("position ASC, id ASC").
		Find(&units).Error
	return units, err
}

func (r *RosterRepository) GetUnitByName(ctx context.Context, name string) (*rosterDatamodel.Unit, error) {
	var unit rosterDatamodel.Unit
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&unit).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &unit, nil
}

func (r *RosterRepository) CountUnits(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&rosterDatamodel.Unit{}).Count(&count).Error
	return count, err
}

// CreateUnit inserts the unit and its employees in one transaction.
func (r *RosterRepository) CreateUnit(ctx context.Context, unit *rosterDatamodel.Unit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(unit).Error
	})
}

func (r *RosterRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&rosterDatamodel.Employee{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&rosterDatamodel.Unit{}).Error
	})
}
