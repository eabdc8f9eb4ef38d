package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("resource already exists")
	ErrForbidden    = errors.New("you don't have permission to perform this action")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is not active")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrTooManyOTPAttempts = errors.New("too many OTP attempts, request a new code")

	ErrUserNotFound       = errors.New("user not found")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminAlreadyActive = errors.New("admin is already active")
	ErrAdminOwnsPatients  = errors.New("admin still owns patients")
	ErrProfileNotFound    = errors.New("profile not found")

	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientMismatch      = errors.New("patient in body does not match patient in path")
	ErrNotAssignedToPatient = errors.New("you are not assigned to this patient")
	ErrAssignmentNotFound   = errors.New("assignment not found")

	ErrRecordNotFound      = errors.New("record not found")
	ErrCatalogItemNotFound = errors.New("medicine not found in catalog")
	ErrAuditLogNotFound    = errors.New("audit log not found")
)

// FieldErrors carries per-field messages. Kind is ErrInvalidInput or ErrConflict.
type FieldErrors struct {
	Kind   error
	Fields map[string]string
}

func (e *FieldErrors) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = e.Fields[k]
	}
	return e.Kind.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FieldErrors) Unwrap() error {
	return e.Kind
}

func invalidField(field, message string) error {
	return &FieldErrors{Kind: ErrInvalidInput, Fields: map[string]string{field: message}}
}

func conflictField(field, message string) error {
	return &FieldErrors{Kind: ErrConflict, Fields: map[string]string{field: message}}
}

// uniqueField is one value that must not already be taken by another row.
type uniqueField struct {
	column string
	field  string
	value  interface{}
}

// checkUnique runs the friendly pre-check for every field and collects conflicts.
// Unique indexes remain the authority; see duplicateKeyError.
func checkUnique(tx *gorm.DB, exists func(db *gorm.DB, column string, value interface{}, excludeID uuid.UUID) (bool, error), excludeID uuid.UUID, fields ...uniqueField) error {
	conflicts := make(map[string]string)
	for _, f := range fields {
		taken, err := exists(tx, f.column, f.value, excludeID)
		if err != nil {
			return err
		}
		if taken {
			conflicts[f.field] = f.field + " already exists"
		}
	}
	if len(conflicts) > 0 {
		return &FieldErrors{Kind: ErrConflict, Fields: conflicts}
	}
	return nil
}

// duplicateKeyError maps a unique violation raised by the store to a conflict on the
// first matching field, or returns nil when err is not a unique violation.
func duplicateKeyError(err error, fields ...string) error {
	for _, field := range fields {
		if isDuplicateKeyError(err, field) {
			return conflictField(field, field+" already exists")
		}
	}
	if isDuplicateKeyError(err, "") {
		return ErrConflict
	}
	return nil
}

// isDuplicateKeyError checks if the error is a unique constraint violation
// containing the specified constraint or column name
func isDuplicateKeyError(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	name := strings.ToLower(constraintName)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		return pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), name)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return name == ""
	}
	// SQLite reports "UNIQUE constraint failed: table.column".
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, name)
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == uuid.Nil {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// missingIDs returns the ids of want that are not in found.
func missingIDs(want, found []uuid.UUID) []string {
	present := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		present[id] = struct{}{}
	}
	var missing []string
	for _, id := range want {
		if _, ok := present[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	return missing
}
