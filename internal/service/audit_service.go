package service

import (
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService appends audit entries inside the caller's transaction, so an entry
// exists exactly when its mutation commits.
type AuditService interface {
	LogEvent(tx *gorm.DB, actorID *uuid.UUID, action string, details entity.JSON) error
	LogCreate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogEvent(tx *gorm.DB, actorID *uuid.UUID, action string, details entity.JSON) error {
	return s.write(tx, actorID, action, details)
}

func (s *auditService) LogCreate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(tx, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(tx, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

func (s *auditService) LogDelete(tx *gorm.DB, actorID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(tx, actorID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) write(tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
