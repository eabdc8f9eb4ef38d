package database

import (
	"fmt"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

// Models lists every persisted type. Join tables come first so gorm does not
// create its own version of them while migrating the many2many owners.
func Models() []interface{} {
	return []interface{}{
		&entity.DoctorNurse{},
		&entity.PatientDoctor{},
		&entity.PatientNurse{},
		&entity.DoctorReportNurse{},
		&entity.NurseReportDoctor{},
		&entity.RayNurse{},
		&entity.MedicineNurse{},
		&entity.User{},
		&entity.AdminProfile{},
		&entity.DoctorProfile{},
		&entity.NurseProfile{},
		&entity.Patient{},
		&entity.DoctorReport{},
		&entity.NurseReport{},
		&entity.Ray{},
		&entity.MedicineCatalogItem{},
		&entity.Medicine{},
		&entity.AuditLog{},
	}
}

// AutoMigrate builds the schema from the entity definitions. Production databases
// use the SQL migrations instead. Models are migrated one at a time, in order,
// so the join models own their tables.
func AutoMigrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}
