package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/pkg/paseto"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
)

type PayrollHandler struct {
	payrollRepo repository.PayrollRepository
	userRepo    repository.UserRepository
}

func NewPayrollHandler(payrollRepo repository.PayrollRepository, userRepo repository.UserRepository) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo: payrollRepo,
		userRepo:    userRepo,
	}
}

// CreatePayroll godoc
// @Summary Buat record gaji (admin)
// @Description Membuat record gaji untuk satu periode. Net pay dihitung dari base salary + bonus - potongan.
// @Tags Payrolls
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.PayrollCreatePayload true "Data penggajian"
// @Success 201 {object} models.Payroll
// @Failure 400 {object} models.ErrorResponse
// @Router /payrolls [post]
func (h *PayrollHandler) CreatePayroll(c *fiber.Ctx) error {
	var payload models.PayrollCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	userID, err := primitive.ObjectIDFromHex(payload.UserID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data user"})
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	payroll := &models.Payroll{
		UserID:      userID,
		PeriodStart: payload.PeriodStart,
		PeriodEnd:   payload.PeriodEnd,
		BaseSalary:  payload.BaseSalary,
		Bonus:       payload.Bonus,
		Deduction:   payload.Deduction,
		NetPay:      payload.BaseSalary + payload.Bonus - payload.Deduction,
		Status:      models.PayrollUnpaid,
		Notes:       payload.Notes,
	}

	if err := h.payrollRepo.CreatePayroll(ctx, payroll); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal membuat payroll: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Record gaji berhasil dibuat",
		"payroll": payroll,
	})
}

// GetMyPayrolls godoc
// @Summary Riwayat gaji user yang login
// @Tags Payrolls
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payroll
// @Router /payrolls/my [get]
func (h *PayrollHandler) GetMyPayrolls(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	payrolls, err := h.payrollRepo.FindPayrollsByUserID(ctx, claims.UserID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data gaji"})
	}

	return c.Status(fiber.StatusOK).JSON(payrolls)
}

// GetAllPayrolls godoc
// @Summary Semua record gaji (admin)
// @Tags Payrolls
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Payroll
// @Router /payrolls [get]
func (h *PayrollHandler) GetAllPayrolls(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
	defer cancel()

	payrolls, err := h.payrollRepo.FindAllPayrolls(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data gaji"})
	}

	return c.Status(fiber.StatusOK).JSON(payrolls)
}

// MarkPayrollPaid godoc
// @Summary Tandai gaji sudah dibayar (admin)
// @Tags Payrolls
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payroll ID"
// @Success 200 {object} models.Payroll
// @Router /payrolls/{id}/pay [patch]
func (h *PayrollHandler) MarkPayrollPaid(c *fiber.Ctx) error {
	payrollID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID payroll tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	payroll, err := h.payrollRepo.FindPayrollByID(ctx, payrollID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data gaji"})
	}
	if payroll == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Record gaji tidak ditemukan"})
	}
	if payroll.Status == models.PayrollPaid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Record gaji sudah dibayar"})
	}

	paidAt := time.Now()
	if err := h.payrollRepo.MarkPayrollPaid(ctx, payrollID, paidAt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menandai gaji sebagai dibayar"})
	}

	payroll.Status = models.PayrollPaid
	payroll.PaidAt = &paidAt

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Gaji berhasil ditandai sebagai dibayar",
		"payroll": payroll,
	})
}
