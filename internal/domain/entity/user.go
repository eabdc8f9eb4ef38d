package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the centralized authentication table
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Name         string     `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string     `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	NationalID   *string    `gorm:"column:national_id;type:varchar(32);uniqueIndex" json:"national_id,omitempty"`
	Gender       string     `gorm:"type:varchar(10)" json:"gender,omitempty"`
	Age          int        `json:"age,omitempty"`
	Password     string     `gorm:"type:text;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(16);not null;index" json:"role"`
	IsActive     bool       `gorm:"not null;index" json:"is_active"`
	IsSuperUser  bool       `gorm:"column:is_superuser;not null" json:"is_superuser"`
	OTPHash      *string    `gorm:"column:otp_hash;type:text" json:"-"`
	OTPExpiresAt *time.Time `gorm:"column:otp_expires_at" json:"-"`
	CreatedByID  *uuid.UUID `gorm:"type:uuid;index" json:"created_by_id,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	AdminProfile  *AdminProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"admin_profile,omitempty"`
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"doctor_profile,omitempty"`
	NurseProfile  *NurseProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"nurse_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// HasPendingOTP reports whether a password-reset code was issued and has not expired at now.
func (u *User) HasPendingOTP(now time.Time) bool {
	return u.OTPHash != nil && u.OTPExpiresAt != nil && now.Before(*u.OTPExpiresAt)
}

// ClearOTP consumes the current password-reset code.
func (u *User) ClearOTP() {
	u.OTPHash = nil
	u.OTPExpiresAt = nil
}
