// file: models/admin.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleSuper AdminRole = "super_admin"
)

type Admin struct {
	ID        uint32    `gorm:"primarykey" json:"id"`
	Username  string    `gorm:"size:50;unique;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      AdminRole `gorm:"type:enum('admin','super_admin');default:'admin';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Admin) TableName() string {
	return "hunt_admin"
}

// BeforeSave GORM Hook，保存前自动哈希密码
func (a *Admin) BeforeSave(tx *gorm.DB) (err error) {
	if a.ID == 0 || tx.Statement.Changed("Password") {
		hashed, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		a.Password = string(hashed)
	}
	return
}

// VerifyPassword 校验管理员密码
func (a *Admin) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}
