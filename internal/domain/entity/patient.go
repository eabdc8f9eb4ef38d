package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Patient is registered by an admin and treated by any number of doctors and nurses.
type Patient struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	DiseaseType string    `gorm:"type:varchar(255);index" json:"disease_type,omitempty"`
	RoomNumber  string    `gorm:"type:varchar(20);index" json:"room_number,omitempty"`
	Address     string    `gorm:"type:text" json:"address,omitempty"`
	NationalID  string    `gorm:"column:national_id;type:varchar(32);uniqueIndex;not null" json:"national_id"`
	Phone       string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Gender      string    `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Age         int       `json:"age,omitempty"`
	Status      string    `gorm:"type:varchar(50)" json:"status,omitempty"`
	CreatedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctors []DoctorProfile `gorm:"many2many:patient_doctors;joinForeignKey:PatientID;joinReferences:DoctorID" json:"doctors,omitempty"`
	Nurses  []NurseProfile  `gorm:"many2many:patient_nurses;joinForeignKey:PatientID;joinReferences:NurseID" json:"nurses,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// HasDoctor reports whether doctorID is in the loaded doctor set.
func (p *Patient) HasDoctor(doctorID uuid.UUID) bool {
	for _, d := range p.Doctors {
		if d.UserID == doctorID {
			return true
		}
	}
	return false
}

// HasNurse reports whether nurseID is in the loaded nurse set.
func (p *Patient) HasNurse(nurseID uuid.UUID) bool {
	for _, n := range p.Nurses {
		if n.UserID == nurseID {
			return true
		}
	}
	return false
}

// HasCaregiver reports whether userID treats the patient in the given role.
func (p *Patient) HasCaregiver(userID uuid.UUID, role Role) bool {
	switch role {
	case RoleDoctor:
		return p.HasDoctor(userID)
	case RoleNurse:
		return p.HasNurse(userID)
	}
	return false
}

// CaregiverIDs returns the ids of the currently assigned caregivers of role.
func (p *Patient) CaregiverIDs(role Role) []uuid.UUID {
	var ids []uuid.UUID
	switch role {
	case RoleDoctor:
		for _, d := range p.Doctors {
			ids = append(ids, d.UserID)
		}
	case RoleNurse:
		for _, n := range p.Nurses {
			ids = append(ids, n.UserID)
		}
	}
	return ids
}
