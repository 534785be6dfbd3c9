package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"dayflow-backend/models"
	"dayflow-backend/pkg/paseto"
	"dayflow-backend/pkg/password"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
)

type AuthHandler struct {
	userRepo repository.UserRepository
	maker    *paseto.Maker
}

func NewAuthHandler(userRepo repository.UserRepository, maker *paseto.Maker) *AuthHandler {
	return &AuthHandler{
		userRepo: userRepo,
		maker:    maker,
	}
}

// Register godoc
// @Summary Register User
// @Description Mendaftarkan karyawan baru (admin only). Login ID dibuat otomatis; bila password kosong, password sementara dibuat dan dikembalikan sekali di response.
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body models.UserRegisterPayload true "Data registrasi user"
// @Success 201 {object} models.RegisterSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var payload models.UserRegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	year := time.Now().Year()
	serial, err := h.userRepo.NextSerialNumber(ctx, year, payload.CompanyName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal membuat serial number"})
	}

	firstName, lastName := util.ParseFullName(payload.Name)
	loginID := util.GenerateLoginID(payload.CompanyName, firstName, lastName, year, serial)

	// Tanpa password dari admin, karyawan mendapat password sementara
	// dan wajib menggantinya saat login pertama.
	tempPassword := ""
	plainPassword := payload.Password
	if plainPassword == "" {
		tempPassword = util.GenerateTempPassword()
		plainPassword = tempPassword
	}

	hashedPassword, err := password.HashPassword(plainPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
	}

	newUser := &models.User{
		LoginID:       loginID,
		Name:          payload.Name,
		Email:         payload.Email,
		Password:      hashedPassword,
		Role:          payload.Role,
		Position:      payload.Position,
		Department:    payload.Department,
		BaseSalary:    payload.BaseSalary,
		Address:       payload.Address,
		Photo:         payload.Photo,
		IsFirstLogin:  true,
		CurrentStatus: models.StatusAbsent,
		JoinYear:      year,
		SerialNumber:  serial,
		CompanyName:   payload.CompanyName,
	}

	if err := h.userRepo.CreateUser(ctx, newUser); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("gagal mendaftarkan user: %v", err)})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "User berhasil didaftarkan (oleh admin)",
		"user_id":       newUser.ID.Hex(),
		"login_id":      loginID,
		"temp_password": tempPassword,
	})
}

// Login godoc
// @Summary Login User
// @Description Login dengan email atau login ID, mengembalikan token PASETO
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body models.UserLoginPayload true "Kredensial untuk Login"
// @Success 200 {object} models.LoginSuccessResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var payload models.UserLoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}
	if payload.Email == "" && payload.LoginID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email atau login ID wajib diisi"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	var user *models.User
	var err error
	if payload.Email != "" {
		user, err = h.userRepo.FindUserByEmail(ctx, payload.Email)
	} else {
		user, err = h.userRepo.FindUserByLoginID(ctx, payload.LoginID)
	}
	if err != nil || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kombinasi kredensial dan password salah"})
	}

	if !password.CheckPasswordHash(payload.Password, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Kombinasi kredensial dan password salah"})
	}

	token, err := h.maker.GenerateToken(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal membuat token"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "Login berhasil",
		"token":          token,
		"user_id":        user.ID.Hex(),
		"role":           user.Role,
		"is_first_login": user.IsFirstLogin,
	})
}

// ChangePassword godoc
// @Summary Ganti Password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.ChangePasswordPayload true "Password lama dan baru"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims, ok := c.Locals("user").(*paseto.Claims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Klaim token tidak valid"})
	}

	var payload models.ChangePasswordPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}

	if errors := util.ValidateStruct(payload); errors != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errors})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User tidak ditemukan"})
	}

	if !password.CheckPasswordHash(payload.OldPassword, user.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Password lama salah"})
	}

	hashedPassword, err := password.HashPassword(payload.NewPassword)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "gagal hash password"})
	}

	if err := h.userRepo.UpdatePassword(ctx, claims.UserID, hashedPassword, false); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Gagal mengupdate password"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Password berhasil diubah."})
}
