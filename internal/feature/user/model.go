package user

import (
	"time"

	"personnel-api/internal/domain"
)

// UserModel 是 users 表的行结构；合同字段平铺成 contract_* 列
type UserModel struct {
	ID           string `gorm:"primaryKey;type:varchar(24)"`
	Name         string `gorm:"size:128;not null"`
	Surname      string `gorm:"size:128;not null"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:100;not null"`
	PhoneNumber  string `gorm:"size:32"`
	BirthDate    string `gorm:"size:40"`
	Notes        string `gorm:"type:text"`
	IsAdmin      bool   `gorm:"not null"`
	IsActivated  bool   `gorm:"not null"`

	HasContract       bool
	ContractType      string   `gorm:"size:16"`
	ContractSalary    *float64 `gorm:"column:contract_salary"`
	ContractPosition  string   `gorm:"size:16"`
	ContractStartTime string   `gorm:"size:40"`
	ContractEndTime   string   `gorm:"size:40"`

	LastUpdated time.Time `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

func FromDomain(u *domain.User) UserModel {
	m := UserModel{
		ID:           u.ID,
		Name:         u.Name,
		Surname:      u.Surname,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		PhoneNumber:  u.PhoneNumber,
		BirthDate:    u.BirthDate,
		Notes:        u.Notes,
		IsAdmin:      u.IsAdmin,
		IsActivated:  u.IsActivated,
		LastUpdated:  u.LastUpdated,
	}
	if c := u.Contract; c != nil {
		m.HasContract = true
		m.ContractType = c.Type
		m.ContractSalary = c.Salary
		m.ContractPosition = c.Position
		m.ContractStartTime = c.StartTime
		m.ContractEndTime = c.EndTime
	}
	return m
}

func (m UserModel) ToDomain() domain.User {
	u := domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Surname:      m.Surname,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		PhoneNumber:  m.PhoneNumber,
		BirthDate:    m.BirthDate,
		Notes:        m.Notes,
		IsAdmin:      m.IsAdmin,
		IsActivated:  m.IsActivated,
		LastUpdated:  m.LastUpdated.UTC(),
	}
	if m.HasContract {
		u.Contract = &domain.Contract{
			Type:      m.ContractType,
			Salary:    m.ContractSalary,
			Position:  m.ContractPosition,
			StartTime: m.ContractStartTime,
			EndTime:   m.ContractEndTime,
		}
	}
	return u
}
