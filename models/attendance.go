package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status harian pada catatan absensi (set tertutup)
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceHalfDay = "half-day"
	AttendanceLeave   = "leave"
)

// Attendance adalah satu catatan absensi per user per tanggal.
// Sesi dianggap masih terbuka selama CheckIn terisi dan CheckOut kosong.
type Attendance struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	Date        string             `json:"date" bson:"date,omitempty"`
	CheckIn     *time.Time         `json:"check_in" bson:"check_in,omitempty"`
	CheckOut    *time.Time         `json:"check_out" bson:"check_out,omitempty"`
	Status      string             `json:"status" bson:"status,omitempty"`
	WorkMinutes int                `json:"work_minutes" bson:"work_minutes"`
	Note        string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// IsOpen menandakan sesi check-in yang belum ditutup dengan check-out.
func (a *Attendance) IsOpen() bool {
	return a != nil && a.CheckIn != nil && a.CheckOut == nil
}

type AttendanceUpdatePayload struct {
	Status string `json:"status,omitempty" validate:"omitempty,oneof=present absent half-day leave"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=255"`
}

type AttendanceWithUser struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	UserID         primitive.ObjectID `json:"user_id" bson:"user_id"`
	Date           string             `json:"date" bson:"date"`
	CheckIn        *time.Time         `json:"check_in" bson:"check_in,omitempty"`
	CheckOut       *time.Time         `json:"check_out,omitempty" bson:"check_out,omitempty"`
	Status         string             `json:"status" bson:"status"`
	WorkMinutes    int                `json:"work_minutes" bson:"work_minutes"`
	UserName       string             `json:"user_name" bson:"user_name"`
	UserEmail      string             `json:"user_email" bson:"user_email"`
	UserPhoto      string             `json:"user_photo,omitempty" bson:"user_photo,omitempty"`
	UserPosition   string             `json:"user_position,omitempty" bson:"user_position,omitempty"`
	UserDepartment string             `json:"user_department,omitempty" bson:"user_department,omitempty"`
}

// QRCode adalah kode absensi harian yang ditampilkan admin di kiosk.
type QRCode struct {
	ID        primitive.ObjectID   `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string               `json:"code" bson:"code"`
	Date      string               `json:"date" bson:"date"`
	ExpiresAt time.Time            `json:"expires_at" bson:"expires_at"`
	UsedBy    []primitive.ObjectID `json:"used_by" bson:"used_by"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at,omitempty"`
}

type QRCodeScanPayload struct {
	QRCodeValue string `json:"qr_code_value" validate:"required"`
}
