package database_test

import (
	"testing"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAutoMigrate_JoinTablesKeepTheirColumns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, database.AutoMigrate(db))

	for _, model := range []interface{}{&entity.PatientDoctor{}, &entity.PatientNurse{}, &entity.DoctorNurse{}} {
		assert.True(t, db.Migrator().HasColumn(model, "created_at"), "%T", model)
	}

	link := &entity.PatientDoctor{PatientID: uuid.New(), DoctorID: uuid.New()}
	require.NoError(t, db.Create(link).Error)
	assert.False(t, link.CreatedAt.IsZero())

	// Running it again is a no-op.
	assert.NoError(t, database.AutoMigrate(db))
}
