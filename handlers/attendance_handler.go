package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/pkg/paseto"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
	"dayflow-backend/service"
)

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	attendanceSvc  *service.AttendanceService
}

func NewAttendanceHandler(attendanceRepo repository.AttendanceRepository, attendanceSvc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		attendanceSvc:  attendanceSvc,
	}
}

func mapAttendanceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyCheckedIn),
		errors.Is(err, service.ErrNoCheckInFound),
		errors.Is(err, service.ErrAlreadyCheckedOut):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses absensi", "details": err.Error()})
	}
}

// CheckIn godoc
// @Summary Check-in absensi
// @Description Membuka sesi absensi hari ini untuk user yang login dan mengubah status menjadi present
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CheckSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/check-in [post]
func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, attendance, err := h.attendanceSvc.CheckIn(ctx, claims.UserID)
	if err != nil {
		return mapAttendanceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Check-in berhasil",
		"status":     user.CurrentStatus,
		"attendance": attendance,
	})
}

// CheckOut godoc
// @Summary Check-out absensi
// @Description Menutup sesi absensi hari ini, menghitung menit kerja, dan mengubah status menjadi absent
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CheckSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/check-out [post]
func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	user, attendance, err := h.attendanceSvc.CheckOut(ctx, claims.UserID)
	if err != nil {
		return mapAttendanceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":      "Check-out berhasil",
		"status":       user.CurrentStatus,
		"attendance":   attendance,
		"work_minutes": attendance.WorkMinutes,
	})
}

// GetMyAttendanceHistory godoc
// @Summary Riwayat absensi user yang login
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Attendance
// @Router /attendance/my-history [get]
func (h *AttendanceHandler) GetMyAttendanceHistory(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	attendances, err := h.attendanceRepo.FindAttendanceByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil riwayat absensi"})
	}

	return c.Status(fiber.StatusOK).JSON(attendances)
}

// GetTodayAttendance mengembalikan record absensi hari ini milik user
// yang login, atau null bila belum check-in.
func (h *AttendanceHandler) GetTodayAttendance(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	attendance, err := h.attendanceRepo.FindAttendanceByUserAndDate(ctx, claims.UserID, h.attendanceSvc.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil absensi hari ini"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"date":       h.attendanceSvc.Today(),
		"attendance": attendance,
	})
}

// GetAllAttendances godoc
// @Summary Semua absensi (admin) dengan pagination
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Param page query int false "Halaman" default(1)
// @Param limit query int false "Jumlah per halaman" default(20)
// @Param user_id query string false "Filter berdasarkan user"
// @Success 200 {array} models.AttendanceWithUser
// @Router /attendance [get]
func (h *AttendanceHandler) GetAllAttendances(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	var userFilter *primitive.ObjectID
	if raw := c.Query("user_id"); raw != "" {
		userID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
		}
		userFilter = &userID
	}

	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	attendances, total, err := h.attendanceRepo.GetAllAttendancesWithUserDetails(ctx, userFilter, int64(page), int64(limit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  attendances,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetAttendancesByDate mengembalikan semua absensi pada tanggal tertentu
// beserta detail user (admin).
func (h *AttendanceHandler) GetAttendancesByDate(c *fiber.Ctx) error {
	date := c.Params("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal harus YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	attendances, err := h.attendanceRepo.GetAttendanceByDateWithUserDetails(ctx, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data absensi"})
	}

	return c.Status(fiber.StatusOK).JSON(attendances)
}

// GenerateQRCode godoc
// @Summary Generate QR code absensi harian (admin)
// @Description Membuat QR code sekali pakai untuk kiosk absensi, berlaku sampai akhir hari
// @Tags Attendance
// @Produce json
// @Security BearerAuth
// @Success 201 {object} object{qr_image=string,code=string,expires_at=string}
// @Router /attendance/generate-qr [post]
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	today := h.attendanceSvc.Today()

	// Pakai ulang QR aktif bila sudah ada supaya kiosk tidak perlu refresh.
	existing, err := h.attendanceRepo.FindActiveQRCodeByDate(ctx, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR code aktif"})
	}

	qr := existing
	if qr == nil {
		now := h.attendanceSvc.Now()
		endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		qr = &models.QRCode{
			Code:      uuid.New().String(),
			Date:      today,
			ExpiresAt: endOfDay,
			CreatedAt: now,
		}
		if err := h.attendanceRepo.CreateQRCode(ctx, qr); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan QR code"})
		}
	}

	png, err := qrcode.Encode(qr.Code, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat gambar QR code"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"qr_image":   "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"code":       qr.Code,
		"expires_at": qr.ExpiresAt,
	})
}

// ScanQRCode godoc
// @Summary Scan QR code untuk check-in/check-out
// @Description Memvalidasi QR code harian lalu melakukan check-in, atau check-out bila sesi hari ini sudah terbuka
// @Tags Attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.QRCodeScanPayload true "Nilai QR code hasil scan"
// @Success 200 {object} models.CheckSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /attendance/scan [post]
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	qr, err := h.attendanceRepo.FindQRCodeByValue(ctx, payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa QR code"})
	}
	if qr == nil || qr.Date != h.attendanceSvc.Today() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code tidak valid"})
	}
	if h.attendanceSvc.Now().After(qr.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code sudah kedaluwarsa"})
	}

	// Scan bersifat toggle: sesi terbuka berarti check-out, selain itu check-in.
	attendance, err := h.attendanceRepo.FindAttendanceByUserAndDate(ctx, claims.UserID, h.attendanceSvc.Today())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memeriksa absensi hari ini"})
	}

	var user *models.User
	var result *models.Attendance
	action := "check-in"
	if attendance.IsOpen() {
		action = "check-out"
		user, result, err = h.attendanceSvc.CheckOut(ctx, claims.UserID)
	} else {
		user, result, err = h.attendanceSvc.CheckIn(ctx, claims.UserID)
	}
	if err != nil {
		return mapAttendanceError(c, err)
	}

	if err := h.attendanceRepo.MarkQRCodeAsUsed(ctx, qr.ID, claims.UserID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menandai QR code"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Scan berhasil: " + action,
		"action":     action,
		"status":     user.CurrentStatus,
		"attendance": result,
	})
}

// UpdateAttendance memungkinkan admin mengoreksi record absensi yang
// sudah tersimpan.
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	attendanceID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID absensi tidak valid"})
	}

	var payload models.AttendanceUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.attendanceRepo.UpdateAttendance(ctx, attendanceID, &payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengupdate absensi"})
	}

	attendance, err := h.attendanceRepo.FindAttendanceByID(ctx, attendanceID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil absensi"})
	}
	if attendance == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Absensi tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Absensi berhasil diupdate",
		"attendance": attendance,
	})
}
