package repository

import (
	"errors"
	"fmt"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// careRecordSchema describes where one record kind and its recipients live.
type careRecordSchema struct {
	table        string
	authorColumn string

	recipientTable        string
	recipientRecordColumn string
	recipientColumn       string

	// assignmentTable links the patient to caregivers of the recipient role and
	// uses recipientColumn for the caregiver id.
	assignmentTable string

	preloads []string
	links    func(recordID uuid.UUID, recipientIDs []uuid.UUID) interface{}
}

var doctorReportSchema = careRecordSchema{
	table:                 "doctor_reports",
	authorColumn:          "doctor_id",
	recipientTable:        "doctor_report_nurses",
	recipientRecordColumn: "report_id",
	recipientColumn:       "nurse_id",
	assignmentTable:       "patient_nurses",
	preloads:              []string{"Doctor.User", "Patient", "Nurses.User"},
	links: func(recordID uuid.UUID, ids []uuid.UUID) interface{} {
		rows := make([]entity.DoctorReportNurse, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, entity.DoctorReportNurse{ReportID: recordID, NurseID: id})
		}
		return &rows
	},
}

var nurseReportSchema = careRecordSchema{
	table:                 "nurse_reports",
	authorColumn:          "nurse_id",
	recipientTable:        "nurse_report_doctors",
	recipientRecordColumn: "report_id",
	recipientColumn:       "doctor_id",
	assignmentTable:       "patient_doctors",
	preloads:              []string{"Nurse.User", "Patient", "Doctors.User"},
	links: func(recordID uuid.UUID, ids []uuid.UUID) interface{} {
		rows := make([]entity.NurseReportDoctor, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, entity.NurseReportDoctor{ReportID: recordID, DoctorID: id})
		}
		return &rows
	},
}

var raySchema = careRecordSchema{
	table:                 "rays",
	authorColumn:          "doctor_id",
	recipientTable:        "ray_nurses",
	recipientRecordColumn: "ray_id",
	recipientColumn:       "nurse_id",
	assignmentTable:       "patient_nurses",
	preloads:              []string{"Doctor.User", "Patient", "Nurses.User"},
	links: func(recordID uuid.UUID, ids []uuid.UUID) interface{} {
		rows := make([]entity.RayNurse, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, entity.RayNurse{RayID: recordID, NurseID: id})
		}
		return &rows
	},
}

var medicineSchema = careRecordSchema{
	table:                 "medicines",
	authorColumn:          "doctor_id",
	recipientTable:        "medicine_nurses",
	recipientRecordColumn: "medicine_id",
	recipientColumn:       "nurse_id",
	assignmentTable:       "patient_nurses",
	preloads:              []string{"Doctor.User", "Patient", "Nurses.User"},
	links: func(recordID uuid.UUID, ids []uuid.UUID) interface{} {
		rows := make([]entity.MedicineNurse, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, entity.MedicineNurse{MedicineID: recordID, NurseID: id})
		}
		return &rows
	},
}

type careRecordRepository[T any, PT interface {
	*T
	entity.CareRecord
}] struct {
	schema careRecordSchema
}

func NewDoctorReportRepository() domainRepo.CareRecordRepository[entity.DoctorReport] {
	return &careRecordRepository[entity.DoctorReport, *entity.DoctorReport]{schema: doctorReportSchema}
}

func NewNurseReportRepository() domainRepo.CareRecordRepository[entity.NurseReport] {
	return &careRecordRepository[entity.NurseReport, *entity.NurseReport]{schema: nurseReportSchema}
}

func NewRayRepository() domainRepo.CareRecordRepository[entity.Ray] {
	return &careRecordRepository[entity.Ray, *entity.Ray]{schema: raySchema}
}

func NewMedicineRepository() domainRepo.CareRecordRepository[entity.Medicine] {
	return &careRecordRepository[entity.Medicine, *entity.Medicine]{schema: medicineSchema}
}

func (r *careRecordRepository[T, PT]) Create(db *gorm.DB, record *T, recipientIDs []uuid.UUID) error {
	if err := db.Omit(clause.Associations).Create(record).Error; err != nil {
		return err
	}
	if len(recipientIDs) == 0 {
		return nil
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(r.schema.links(PT(record).GetID(), recipientIDs)).Error
}

func (r *careRecordRepository[T, PT]) FindByID(db *gorm.DB, id uuid.UUID) (*T, error) {
	var record T
	err := r.preload(db).Where(r.column("id")+" = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *careRecordRepository[T, PT]) FindByAuthor(db *gorm.DB, authorID uuid.UUID, patientID *uuid.UUID) ([]T, error) {
	query := r.preload(db).Where(r.column(r.schema.authorColumn)+" = ?", authorID)
	return r.find(r.forPatient(query, patientID))
}

func (r *careRecordRepository[T, PT]) FindReceived(db *gorm.DB, userID uuid.UUID, patientID *uuid.UUID) ([]T, error) {
	s := r.schema
	cond := fmt.Sprintf(
		"(%[1]s.id IN (SELECT %[3]s FROM %[2]s WHERE %[4]s = ?) OR "+
			"(%[1]s.unfiltered = ? AND "+
			"%[1]s.patient_id IN (SELECT patient_id FROM %[5]s WHERE %[4]s = ?)))",
		s.table, s.recipientTable, s.recipientRecordColumn, s.recipientColumn, s.assignmentTable,
	)
	query := r.preload(db).Where(cond, userID, true, userID)
	return r.find(r.forPatient(query, patientID))
}

func (r *careRecordRepository[T, PT]) FindByPatient(db *gorm.DB, patientID uuid.UUID) ([]T, error) {
	return r.find(r.forPatient(r.preload(db), &patientID))
}

func (r *careRecordRepository[T, PT]) Update(db *gorm.DB, record *T) error {
	return db.Omit(clause.Associations).Save(record).Error
}

func (r *careRecordRepository[T, PT]) Delete(db *gorm.DB, id uuid.UUID) (bool, error) {
	s := r.schema
	if err := db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.recipientTable, s.recipientRecordColumn), id).Error; err != nil {
		return false, err
	}
	result := db.Where("id = ?", id).Delete(new(T))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *careRecordRepository[T, PT]) DeleteByAuthor(db *gorm.DB, authorID uuid.UUID) error {
	return r.deleteWhere(db, r.schema.authorColumn, authorID)
}

func (r *careRecordRepository[T, PT]) DeleteByPatient(db *gorm.DB, patientID uuid.UUID) error {
	return r.deleteWhere(db, "patient_id", patientID)
}

func (r *careRecordRepository[T, PT]) RemoveRecipient(db *gorm.DB, userID uuid.UUID) error {
	s := r.schema
	return db.Exec(fmt.Sprintf("DELETE FROM %s WHERE %s = ?", s.recipientTable, s.recipientColumn), userID).Error
}

func (r *careRecordRepository[T, PT]) deleteWhere(db *gorm.DB, column string, value uuid.UUID) error {
	s := r.schema
	err := db.Exec(fmt.Sprintf(
		"DELETE FROM %s WHERE %s IN (SELECT id FROM %s WHERE %s = ?)",
		s.recipientTable, s.recipientRecordColumn, s.table, column,
	), value).Error
	if err != nil {
		return err
	}
	return db.Where(column+" = ?", value).Delete(new(T)).Error
}

func (r *careRecordRepository[T, PT]) preload(db *gorm.DB) *gorm.DB {
	query := db.Model(new(T))
	for _, p := range r.schema.preloads {
		query = query.Preload(p)
	}
	return query
}

func (r *careRecordRepository[T, PT]) forPatient(query *gorm.DB, patientID *uuid.UUID) *gorm.DB {
	if patientID == nil {
		return query
	}
	return query.Where(r.column("patient_id")+" = ?", *patientID)
}

func (r *careRecordRepository[T, PT]) find(query *gorm.DB) ([]T, error) {
	var records []T
	if err := query.Order(r.column("created_at") + " DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *careRecordRepository[T, PT]) column(name string) string {
	return r.schema.table + "." + name
}
