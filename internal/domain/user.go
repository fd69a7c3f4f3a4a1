package domain

import (
	"context"
	"time"
)

// 合同类型 / 岗位枚举
const (
	ContractEmployment = "Employment"
	ContractMandate    = "Mandate"
	ContractIT         = "IT"

	PositionStorekeeper = "Storekeeper"
	PositionAccountant  = "Accountant"
	PositionIT          = "IT"
)

var (
	ContractTypes = []string{ContractEmployment, ContractMandate, ContractIT}
	Positions     = []string{PositionStorekeeper, PositionAccountant, PositionIT}
)

// Contract 嵌入在 User 中，没有独立身份
type Contract struct {
	Type      string   `bson:"type,omitempty" json:"type,omitempty"`
	Salary    *float64 `bson:"salary,omitempty" json:"salary,omitempty"`
	Position  string   `bson:"position,omitempty" json:"position,omitempty"`
	StartTime string   `bson:"startTime,omitempty" json:"startTime,omitempty"`
	EndTime   string   `bson:"endTime,omitempty" json:"endTime,omitempty"`
}

type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	BirthDate    string    `json:"birthDate,omitempty"`
	Contract     *Contract `json:"contract,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	IsActivated  bool      `json:"isActivated"`
	LastUpdated  time.Time `json:"lastUpdated"`
}

// Clone 返回深拷贝（Contract 不共享）
func (u User) Clone() User {
	if u.Contract != nil {
		c := *u.Contract
		u.Contract = &c
	}
	return u
}

// UserInput 是 create/update 的请求体；nil 表示客户端未传。
// lastUpdated 不在这里声明，客户端传了也会被 JSON 解码直接丢弃。
type UserInput struct {
	Name        *string        `json:"name"`
	Surname     *string        `json:"surname"`
	Email       *string        `json:"email"`
	Password    *string        `json:"password"`
	PhoneNumber *string        `json:"phoneNumber"`
	BirthDate   *string        `json:"birthDate"`
	Contract    *ContractInput `json:"contract"`
	Notes       *string        `json:"notes"`
	IsAdmin     *bool          `json:"isAdmin"`
	IsActivated *bool          `json:"isActivated"`
}

type ContractInput struct {
	Type      *string  `json:"type"`
	Salary    *float64 `json:"salary"`
	Position  *string  `json:"position"`
	StartTime *string  `json:"startTime"`
	EndTime   *string  `json:"endTime"`
}

// ApplyTo 把已传字段合并到 u 上。密码不在这里处理。
func (in *UserInput) ApplyTo(u *User) {
	set(&u.Name, in.Name)
	set(&u.Surname, in.Surname)
	set(&u.Email, in.Email)
	set(&u.PhoneNumber, in.PhoneNumber)
	set(&u.BirthDate, in.BirthDate)
	set(&u.Notes, in.Notes)
	if in.IsAdmin != nil {
		u.IsAdmin = *in.IsAdmin
	}
	if in.IsActivated != nil {
		u.IsActivated = *in.IsActivated
	}
	if in.Contract != nil {
		var c Contract
		if u.Contract != nil {
			c = *u.Contract
		}
		set(&c.Type, in.Contract.Type)
		set(&c.Position, in.Contract.Position)
		set(&c.StartTime, in.Contract.StartTime)
		set(&c.EndTime, in.Contract.EndTime)
		if in.Contract.Salary != nil {
			s := *in.Contract.Salary
			c.Salary = &s
		}
		u.Contract = &c
	}
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// UserRepository 由存储层实现。按 id 的操作先校验 id 形状（ErrInvalidID），
// 再判断是否存在（ErrNotFound）；email 冲突返回 ErrDuplicateEmail。
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByEmail 查不到时返回 (nil, nil)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
