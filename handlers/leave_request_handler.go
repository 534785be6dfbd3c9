package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/pkg/paseto"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
	"dayflow-backend/service"
)

type LeaveRequestHandler struct {
	leaveRepo     repository.LeaveRequestRepository
	attendanceSvc *service.AttendanceService
}

func NewLeaveRequestHandler(leaveRepo repository.LeaveRequestRepository, attendanceSvc *service.AttendanceService) *LeaveRequestHandler {
	return &LeaveRequestHandler{
		leaveRepo:     leaveRepo,
		attendanceSvc: attendanceSvc,
	}
}

// CreateLeaveRequest godoc
// @Summary Ajukan cuti
// @Description Membuat pengajuan cuti baru dengan status pending
// @Tags LeaveRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.LeaveRequestCreatePayload true "Data pengajuan cuti"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.ErrorResponse
// @Router /leave-requests [post]
func (h *LeaveRequestHandler) CreateLeaveRequest(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	var payload models.LeaveRequestCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	startDate, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal mulai harus YYYY-MM-DD"})
	}
	endDate, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format tanggal selesai harus YYYY-MM-DD"})
	}
	days := int(endDate.Sub(startDate).Hours()/24) + 1

	leave := &models.LeaveRequest{
		UserID:      claims.UserID,
		RequestType: payload.RequestType,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Days:        days,
		Reason:      payload.Reason,
		Status:      models.LeavePending,
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.leaveRepo.CreateLeaveRequest(ctx, leave); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat pengajuan cuti: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Pengajuan cuti berhasil dibuat",
		"leave_request": leave,
	})
}

// GetMyLeaveRequests godoc
// @Summary Pengajuan cuti milik user yang login
// @Tags LeaveRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequest
// @Router /leave-requests/my [get]
func (h *LeaveRequestHandler) GetMyLeaveRequests(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.FindLeaveRequestsByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil pengajuan cuti"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// GetAllLeaveRequests godoc
// @Summary Semua pengajuan cuti beserta detail user (admin)
// @Tags LeaveRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.LeaveRequestWithUser
// @Router /leave-requests [get]
func (h *LeaveRequestHandler) GetAllLeaveRequests(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	requests, err := h.leaveRepo.FindAllLeaveRequests(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil pengajuan cuti"})
	}

	return c.Status(fiber.StatusOK).JSON(requests)
}

// UpdateLeaveRequestStatus godoc
// @Summary Setujui atau tolak pengajuan cuti (admin)
// @Description Keputusan hanya bisa diambil pada pengajuan berstatus pending. Persetujuan langsung mengubah status karyawan menjadi on-leave.
// @Tags LeaveRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Leave Request ID"
// @Param payload body models.LeaveRequestUpdatePayload true "Keputusan"
// @Success 200 {object} models.LeaveRequest
// @Failure 400 {object} models.ErrorResponse
// @Router /leave-requests/{id}/status [patch]
func (h *LeaveRequestHandler) UpdateLeaveRequestStatus(c *fiber.Ctx) error {
	leaveID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	var payload models.LeaveRequestUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errs := util.ValidateStruct(payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	leave, err := h.attendanceSvc.ApplyLeaveDecision(ctx, leaveID, payload.Status, payload.Note)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLeaveNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrLeaveAlreadyDecided):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal memproses keputusan cuti", "details": err.Error()})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Status pengajuan cuti berhasil diupdate",
		"leave_request": leave,
	})
}

// UploadAttachment menyimpan lampiran (surat dokter dsb.) untuk sebuah
// pengajuan cuti.
func (h *LeaveRequestHandler) UploadAttachment(c *fiber.Ctx) error {
	leaveID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID pengajuan tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	leave, err := h.leaveRepo.FindLeaveRequestByID(ctx, leaveID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil pengajuan cuti"})
	}
	if leave == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pengajuan cuti tidak ditemukan"})
	}

	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}
	if leave.UserID != claims.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Anda tidak punya akses ke pengajuan ini"})
	}

	file, err := c.FormFile("attachment")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File lampiran tidak ditemukan di request"})
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".pdf" && ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format file harus pdf, jpg, jpeg, atau png"})
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join("uploads", "attachments", filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
	}

	fileURL := "/" + filepath.ToSlash(savePath)
	if err := h.leaveRepo.UpdateAttachmentURL(ctx, leaveID, fileURL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengupdate lampiran"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "Lampiran berhasil diupload",
		"attachment_url": fileURL,
	})
}
