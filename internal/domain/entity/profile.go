package entity

import "github.com/google/uuid"

// AdminProfile marks an admin-role user; admins own the patients they register.
type AdminProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Patients []Patient `gorm:"foreignKey:CreatedByID;references:UserID" json:"patients,omitempty"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization string    `gorm:"type:varchar(100);index" json:"specialization,omitempty"`

	// Relationships
	User     User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Nurses   []NurseProfile `gorm:"many2many:doctor_nurses;joinForeignKey:DoctorID;joinReferences:NurseID" json:"nurses,omitempty"`
	Patients []Patient      `gorm:"many2many:patient_doctors;joinForeignKey:DoctorID;joinReferences:PatientID" json:"patients,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// NurseProfile represents nurse-specific profile data
type NurseProfile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`

	// Relationships
	User     User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctors  []DoctorProfile `gorm:"many2many:doctor_nurses;joinForeignKey:NurseID;joinReferences:DoctorID" json:"doctors,omitempty"`
	Patients []Patient       `gorm:"many2many:patient_nurses;joinForeignKey:NurseID;joinReferences:PatientID" json:"patients,omitempty"`
}

func (NurseProfile) TableName() string {
	return "nurse_profiles"
}
