package service

import (
	"testing"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/repository"
	"hospital-management-api/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_WritesInsideTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)
	actor := uuid.New()

	tx := db.Begin()
	require.NoError(t, svc.LogCreate(tx, &actor, entity.AuditActionPatientCreate, "patient", "p-1", map[string]string{"name": "P"}))
	tx.Rollback()

	logs, err := repo.FindAll(db, entity.AuditLogFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs, "rolled back with the transaction")

	tx = db.Begin()
	require.NoError(t, svc.LogDelete(tx, &actor, entity.AuditActionPatientDelete, "patient", "p-1", map[string]string{"name": "P"}))
	require.NoError(t, tx.Commit().Error)

	logs, err = repo.FindAll(db, entity.AuditLogFilter{Action: entity.AuditActionPatientDelete})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "p-1", logs[0].Metadata["entity_id"])
	assert.Nil(t, logs[0].Metadata["new_value"])
	assert.Equal(t, actor, *logs[0].UserID)
}
