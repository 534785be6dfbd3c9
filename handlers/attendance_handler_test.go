package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"dayflow-backend/config/middleware"
	"dayflow-backend/handlers"
	"dayflow-backend/models"
	"dayflow-backend/pkg/paseto"
	"dayflow-backend/repository"
	"dayflow-backend/service"
)

// base64 dari 32 byte statis, hanya untuk test
const testSecret = "YWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWFhYWE="

type testEnv struct {
	app   *fiber.App
	store *repository.MemoryStore
	maker *paseto.Maker
	svc   *service.AttendanceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := repository.NewMemoryStore()
	maker, err := paseto.NewMaker(testSecret)
	if err != nil {
		t.Fatalf("paseto maker: %v", err)
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	svc := service.NewAttendanceService(store, store, store, nil, loc, logger)

	authHandler := handlers.NewAuthHandler(store, maker)
	attendanceHandler := handlers.NewAttendanceHandler(store, svc)
	leaveHandler := handlers.NewLeaveRequestHandler(store, svc)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/auth/login", authHandler.Login)

	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware(maker))
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyAttendanceHistory)

	leaveGroup := api.Group("/leave-requests", middleware.AuthMiddleware(maker))
	leaveGroup.Post("/", leaveHandler.CreateLeaveRequest)
	leaveGroup.Patch("/:id/status", middleware.AdminMiddleware(), leaveHandler.UpdateLeaveRequestStatus)

	return &testEnv{app: app, store: store, maker: maker, svc: svc}
}

func (e *testEnv) seedUser(t *testing.T, name, email, role string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &models.User{
		Name:          name,
		Email:         email,
		Password:      string(hashed),
		Role:          role,
		CurrentStatus: models.StatusAbsent,
	}
	if err := e.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func (e *testEnv) tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := e.maker.GenerateToken(user)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestLoginAndCheckInFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "Sarah Connor", "sarah@example.com", models.RoleEmployee)

	// Login
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/v1/auth/login", "", fiber.Map{
		"email":    "sarah@example.com",
		"password": "Password123",
	}))
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("token kosong di response login")
	}

	// Check-in
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/v1/attendance/check-in", token, nil))
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-in status = %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["status"] != models.StatusPresent {
		t.Errorf("status = %v, want %q", body["status"], models.StatusPresent)
	}

	// Check-in kedua ditolak
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/v1/attendance/check-in", token, nil))
	if err != nil {
		t.Fatalf("check-in kedua: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("check-in kedua status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Check-out
	resp, err = env.app.Test(jsonRequest(http.MethodPost, "/api/v1/attendance/check-out", token, nil))
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("check-out status = %d", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if body["status"] != models.StatusAbsent {
		t.Errorf("status setelah check-out = %v, want %q", body["status"], models.StatusAbsent)
	}
}

func TestCheckOutWithoutSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "Budi", "budi@example.com", models.RoleEmployee)
	token := env.tokenFor(t, user)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/v1/attendance/check-out", token, nil))
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAttendanceRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/v1/attendance/check-in", "", nil))
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLeaveRequestDecisionFlow(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedUser(t, "Sarah Connor", "sarah@example.com", models.RoleEmployee)
	admin := env.seedUser(t, "Admin Utama", "admin@example.com", models.RoleAdmin)

	employeeToken := env.tokenFor(t, employee)
	adminToken := env.tokenFor(t, admin)

	// Karyawan mengajukan cuti
	resp, err := env.app.Test(jsonRequest(http.MethodPost, "/api/v1/leave-requests/", employeeToken, fiber.Map{
		"request_type": "annual",
		"start_date":   "2026-12-21",
		"end_date":     "2026-12-23",
		"reason":       "liburan akhir tahun",
	}))
	if err != nil {
		t.Fatalf("create leave: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create leave status = %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	leaveData, _ := body["leave_request"].(map[string]any)
	leaveID, _ := leaveData["id"].(string)
	if leaveID == "" {
		t.Fatal("id pengajuan kosong")
	}
	if leaveData["days"] != float64(3) {
		t.Errorf("days = %v, want 3", leaveData["days"])
	}

	// Karyawan tidak boleh memutuskan
	resp, err = env.app.Test(jsonRequest(http.MethodPatch, "/api/v1/leave-requests/"+leaveID+"/status", employeeToken, fiber.Map{
		"status": "approved",
	}))
	if err != nil {
		t.Fatalf("decide as employee: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("decide as employee status = %d, want 403", resp.StatusCode)
	}
	resp.Body.Close()

	// Admin menyetujui
	resp, err = env.app.Test(jsonRequest(http.MethodPatch, "/api/v1/leave-requests/"+leaveID+"/status", adminToken, fiber.Map{
		"status": "approved",
		"note":   "selamat berlibur",
	}))
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("approve status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	// Persetujuan langsung mengubah status karyawan
	updated, err := env.store.FindUserByID(context.Background(), employee.ID)
	if err != nil || updated == nil {
		t.Fatalf("find user: %v", err)
	}
	if updated.CurrentStatus != models.StatusOnLeave {
		t.Errorf("status karyawan = %q, want %q", updated.CurrentStatus, models.StatusOnLeave)
	}

	// Keputusan kedua ditolak
	resp, err = env.app.Test(jsonRequest(http.MethodPatch, "/api/v1/leave-requests/"+leaveID+"/status", adminToken, fiber.Map{
		"status": "rejected",
	}))
	if err != nil {
		t.Fatalf("decide twice: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("decide twice status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()
}
