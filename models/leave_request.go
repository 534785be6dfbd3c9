package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Siklus hidup pengajuan cuti: pending -> approved/rejected, satu arah.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

type LeaveRequest struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id,omitempty"`
	RequestType   string             `json:"request_type" bson:"request_type,omitempty"`
	StartDate     string             `json:"start_date" bson:"start_date,omitempty"`
	EndDate       string             `json:"end_date" bson:"end_date,omitempty"`
	Days          int                `json:"days" bson:"days,omitempty"`
	Reason        string             `json:"reason" bson:"reason,omitempty"`
	Status        string             `json:"status" bson:"status,omitempty"`
	Note          string             `json:"note" bson:"note,omitempty"`
	AttachmentURL string             `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

// CoversDate melaporkan apakah tanggal (format 2006-01-02) berada di
// rentang [StartDate, EndDate] inklusif.
func (lr *LeaveRequest) CoversDate(date string) bool {
	return lr.StartDate <= date && date <= lr.EndDate
}

type LeaveRequestCreatePayload struct {
	RequestType string `json:"request_type" validate:"required,oneof=sick casual annual unpaid"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason      string `json:"reason" validate:"required,min=10,max=500"`
}

type LeaveRequestUpdatePayload struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Note   string `json:"note,omitempty" validate:"omitempty,max=255"`
}

type LeaveRequestWithUser struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	UserID        primitive.ObjectID `json:"user_id" bson:"user_id"`
	RequestType   string             `json:"request_type" bson:"request_type"`
	StartDate     string             `json:"start_date" bson:"start_date"`
	EndDate       string             `json:"end_date" bson:"end_date"`
	Days          int                `json:"days" bson:"days"`
	Reason        string             `json:"reason" bson:"reason"`
	Status        string             `json:"status" bson:"status"`
	Note          string             `json:"note,omitempty" bson:"note,omitempty"`
	AttachmentURL string             `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
	UserName      string             `json:"user_name" bson:"user_name"`
	UserEmail     string             `json:"user_email" bson:"user_email"`
	UserPhoto     string             `json:"user_photo,omitempty" bson:"user_photo,omitempty"`
}
