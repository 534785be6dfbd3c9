package models

type RegisterSuccessResponse struct {
	Message      string `json:"message" example:"User berhasil didaftarkan (oleh admin)"`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	LoginID      string `json:"login_id" example:"DAADUS20260001"`
	TempPassword string `json:"temp_password,omitempty" example:"Temp4821!"`
}

type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login berhasil"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role         string `json:"role" example:"employee"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

type CheckSuccessResponse struct {
	Message    string     `json:"message" example:"Check-in berhasil"`
	Status     string     `json:"status" example:"present"`
	Attendance Attendance `json:"attendance"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Token tidak valid atau tidak ada"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Akses ditolak. Hak akses admin diperlukan"`
}

type NotFoundErrorResponse struct {
	Error string `json:"error" example:"User tidak ditemukan"`
}
