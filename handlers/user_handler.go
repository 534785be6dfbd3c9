package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/pkg/authz"
	"dayflow-backend/pkg/paseto"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
)

type UserHandler struct {
	userRepo  repository.UserRepository
	leaveRepo repository.LeaveRequestRepository
}

func NewUserHandler(userRepo repository.UserRepository, leaveRepo repository.LeaveRequestRepository) *UserHandler {
	return &UserHandler{
		userRepo:  userRepo,
		leaveRepo: leaveRepo,
	}
}

// GetAllUsers godoc
// @Summary Ambil semua user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Router /admin/users [get]
func (h *UserHandler) GetAllUsers(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	users, err := h.userRepo.FindAllUsers(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data user"})
	}

	return c.Status(fiber.StatusOK).JSON(users)
}

// GetUserByID godoc
// @Summary Ambil user berdasarkan ID
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUserByID(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	if !authz.CanAccessUser(claims.Role, claims.UserID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Anda tidak punya akses ke data user ini"})
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

	return c.Status(fiber.StatusOK).JSON(user)
}

// UpdateUser godoc
// @Summary Update profil user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param payload body models.UserUpdatePayload true "Field yang diupdate"
// @Success 200 {object} models.User
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	if !authz.CanAccessUser(claims.Role, claims.UserID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Anda tidak punya akses ke data user ini"})
	}

	var payload models.UserUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	// Gaji hanya boleh diubah oleh admin.
	if payload.BaseSalary != nil && !authz.IsAdmin(claims.Role) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Hanya admin yang boleh mengubah gaji"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateUserProfile(ctx, userID, &payload); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal update user: %v", err)})
	}

	updatedUser, err := h.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data user"})
	}
	if updatedUser == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profil berhasil diupdate",
		"user":    updatedUser,
	})
}

// UploadProfilePhoto menyimpan file foto ke ./uploads/photos dan
// mengupdate field photo milik user.
func (h *UserHandler) UploadProfilePhoto(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	if !authz.CanAccessUser(claims.Role, claims.UserID, userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Anda tidak punya akses ke data user ini"})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File foto tidak ditemukan di request"})
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Format file harus jpg, jpeg, atau png"})
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	savePath := filepath.Join("uploads", "photos", filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menyimpan file"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	photoURL := "/" + filepath.ToSlash(savePath)
	if err := h.userRepo.UpdateUserPhoto(ctx, userID, photoURL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengupdate foto user"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Foto profil berhasil diupload",
		"photo":   photoURL,
	})
}

// DeleteUser godoc
// @Summary Hapus user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} object{message=string}
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID user tidak valid"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.DeleteUser(ctx, userID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghapus user"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "User berhasil dihapus"})
}

// GetDashboardStats godoc
// @Summary Statistik dashboard admin
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardStats
// @Router /admin/dashboard-stats [get]
func (h *UserHandler) GetDashboardStats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	users, err := h.userRepo.FindAllUsers(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengambil data user"})
	}

	hadir, err := h.userRepo.CountUsersByStatus(ctx, models.StatusPresent)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung karyawan hadir"})
	}

	cuti, err := h.userRepo.CountUsersByStatus(ctx, models.StatusOnLeave)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung karyawan cuti"})
	}

	pending, err := h.leaveRepo.CountPendingRequests(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung pengajuan cuti pending"})
	}

	distribusi, err := h.userRepo.DepartmentDistribution(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal menghitung distribusi departemen"})
	}

	stats := models.DashboardStats{
		TotalKaryawan:             int64(len(users)),
		KaryawanHadir:             hadir,
		KaryawanCuti:              cuti,
		PendingLeaveRequestsCount: pending,
		DistribusiDepartemen:      distribusi,
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
