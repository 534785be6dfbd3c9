package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role user (set tertutup)
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// Status kehadiran user saat ini (set tertutup)
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusOnLeave = "on-leave"
)

type User struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	LoginID       string             `json:"login_id" bson:"login_id,omitempty"`
	Name          string             `json:"name" bson:"name,omitempty"`
	Email         string             `json:"email" bson:"email,omitempty"`
	Password      string             `json:"-" bson:"password,omitempty"`
	Role          string             `json:"role" bson:"role,omitempty"`
	Position      string             `json:"position" bson:"position,omitempty"`
	Department    string             `json:"department" bson:"department,omitempty"`
	BaseSalary    float64            `json:"base_salary" bson:"base_salary,omitempty"`
	Address       string             `json:"address" bson:"address,omitempty"`
	Photo         string             `json:"photo" bson:"photo,omitempty"`
	IsFirstLogin  bool               `json:"is_first_login" bson:"is_first_login"`
	CurrentStatus string             `json:"current_status" bson:"current_status,omitempty"`
	LastCheckIn   *time.Time         `json:"last_check_in" bson:"last_check_in,omitempty"`
	LastCheckOut  *time.Time         `json:"last_check_out" bson:"last_check_out,omitempty"`
	JoinYear      int                `json:"join_year" bson:"join_year,omitempty"`
	SerialNumber  int                `json:"serial_number" bson:"serial_number,omitempty"`
	CompanyName   string             `json:"company_name" bson:"company_name,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type UserRegisterPayload struct {
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"omitempty,min=8,max=50,hasuppercase"`
	Role        string  `json:"role" validate:"required,oneof=admin employee"`
	Position    string  `json:"position"`
	Department  string  `json:"department"`
	BaseSalary  float64 `json:"base_salary" validate:"min=0"`
	Address     string  `json:"address" validate:"omitempty,min=5,max=255"`
	Photo       string  `json:"photo" validate:"omitempty,url"`
	CompanyName string  `json:"company_name" validate:"required,min=2,max=100"`
}

type UserLoginPayload struct {
	// Email atau Login ID, salah satu wajib diisi
	Email    string `json:"email" validate:"omitempty,email"`
	LoginID  string `json:"login_id"`
	Password string `json:"password" validate:"required"`
}

type UserUpdatePayload struct {
	Name       string   `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email      string   `json:"email,omitempty" validate:"omitempty,email"`
	Position   string   `json:"position,omitempty"`
	Department string   `json:"department,omitempty"`
	BaseSalary *float64 `json:"base_salary,omitempty" validate:"omitempty,min=0"`
	Address    string   `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	Photo      string   `json:"photo,omitempty" validate:"omitempty,url"`
}

type ChangePasswordPayload struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=50,hasuppercase"`
}

type DepartmentCount struct {
	Department string `bson:"_id" json:"department"`
	Count      int64  `bson:"count" json:"count"`
}

type DashboardStats struct {
	TotalKaryawan             int64             `json:"total_karyawan"`
	KaryawanHadir             int64             `json:"karyawan_hadir"`
	KaryawanCuti              int64             `json:"karyawan_cuti"`
	PendingLeaveRequestsCount int64             `json:"pending_leave_requests_count"`
	DistribusiDepartemen      []DepartmentCount `json:"distribusi_departemen"`
}
