package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PayrollPaid   = "paid"
	PayrollUnpaid = "unpaid"
)

// Payroll dibuat oleh proses penggajian admin dan bersifat read-only
// bagi inti pelacak kehadiran.
type Payroll struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	PeriodStart string             `json:"period_start" bson:"period_start,omitempty"`
	PeriodEnd   string             `json:"period_end" bson:"period_end,omitempty"`
	BaseSalary  float64            `json:"base_salary" bson:"base_salary,omitempty"`
	Bonus       float64            `json:"bonus" bson:"bonus,omitempty"`
	Deduction   float64            `json:"deduction" bson:"deduction,omitempty"`
	NetPay      float64            `json:"net_pay" bson:"net_pay,omitempty"`
	Status      string             `json:"status" bson:"status,omitempty"`
	PaidAt      *time.Time         `json:"paid_at" bson:"paid_at,omitempty"`
	Notes       string             `json:"notes" bson:"notes,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type PayrollCreatePayload struct {
	UserID      string  `json:"user_id" validate:"required"`
	PeriodStart string  `json:"period_start" validate:"required,datetime=2006-01-02"`
	PeriodEnd   string  `json:"period_end" validate:"required,datetime=2006-01-02,gtefield=PeriodStart"`
	BaseSalary  float64 `json:"base_salary" validate:"required,min=0"`
	Bonus       float64 `json:"bonus" validate:"min=0"`
	Deduction   float64 `json:"deduction" validate:"min=0"`
	Notes       string  `json:"notes"`
}
