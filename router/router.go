package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"

	"dayflow-backend/config/middleware"
	_ "dayflow-backend/docs"
	"dayflow-backend/handlers"
	"dayflow-backend/pkg/paseto"
	"dayflow-backend/pkg/ws"
	"dayflow-backend/repository"
	"dayflow-backend/service"
)

// Deps membawa semua dependensi yang dibutuhkan rute. Repositories
// diinjeksi dari main supaya mode storage (mongo atau memory) bisa
// ditukar tanpa menyentuh router.
type Deps struct {
	Maker          *paseto.Maker
	Hub            *ws.Hub
	AttendanceSvc  *service.AttendanceService
	UserRepo       repository.UserRepository
	AttendanceRepo repository.AttendanceRepository
	LeaveRepo      repository.LeaveRequestRepository
	PayrollRepo    repository.PayrollRepository
}

func SetupRoutes(app *fiber.App, deps Deps) {
	log.Println("Memulai pendaftaran rute aplikasi...")

	// Inisialisasi Handlers
	authHandler := handlers.NewAuthHandler(deps.UserRepo, deps.Maker)
	userHandler := handlers.NewUserHandler(deps.UserRepo, deps.LeaveRepo)
	attendanceHandler := handlers.NewAttendanceHandler(deps.AttendanceRepo, deps.AttendanceSvc)
	leaveHandler := handlers.NewLeaveRequestHandler(deps.LeaveRepo, deps.AttendanceSvc)
	payrollHandler := handlers.NewPayrollHandler(deps.PayrollRepo, deps.UserRepo)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Dayflow API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Static("/uploads", "./uploads")

	// WebSocket untuk notifikasi perubahan status
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(deps.Hub.Handler))

	// API v1 group
	api := app.Group("/api/v1")

	// Authentication routes
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", middleware.AuthMiddleware(deps.Maker), middleware.AdminMiddleware(), authHandler.Register)

	// User routes
	protectedUserGroup := api.Group("/users", middleware.AuthMiddleware(deps.Maker))
	protectedUserGroup.Post("/change-password", authHandler.ChangePassword)
	protectedUserGroup.Get("/:id", userHandler.GetUserByID)
	protectedUserGroup.Patch("/:id", userHandler.UpdateUser)
	protectedUserGroup.Post("/:id/upload-photo", userHandler.UploadProfilePhoto)

	// Admin routes
	adminGroup := api.Group("/admin", middleware.AuthMiddleware(deps.Maker), middleware.AdminMiddleware())
	adminGroup.Get("/users", userHandler.GetAllUsers)
	adminGroup.Delete("/users/:id", userHandler.DeleteUser)
	adminGroup.Get("/dashboard-stats", userHandler.GetDashboardStats)

	// Rute kehadiran: check-in/check-out langsung plus alur scan QR kiosk
	attendanceGroup := api.Group("/attendance", middleware.AuthMiddleware(deps.Maker))
	attendanceGroup.Post("/check-in", attendanceHandler.CheckIn)
	attendanceGroup.Post("/check-out", attendanceHandler.CheckOut)
	attendanceGroup.Post("/scan", attendanceHandler.ScanQRCode)
	attendanceGroup.Get("/my-history", attendanceHandler.GetMyAttendanceHistory)
	attendanceGroup.Get("/today", attendanceHandler.GetTodayAttendance)

	adminAttendanceGroup := attendanceGroup.Group("/", middleware.AdminMiddleware())
	adminAttendanceGroup.Post("/generate-qr", attendanceHandler.GenerateQRCode)
	adminAttendanceGroup.Get("/", attendanceHandler.GetAllAttendances)
	adminAttendanceGroup.Get("/date/:date", attendanceHandler.GetAttendancesByDate)
	adminAttendanceGroup.Patch("/:id", attendanceHandler.UpdateAttendance)

	// Rute untuk Pengajuan Izin, Cuti, dan Sakit
	leaveGroup := api.Group("/leave-requests", middleware.AuthMiddleware(deps.Maker))
	leaveGroup.Post("/", leaveHandler.CreateLeaveRequest)
	leaveGroup.Get("/my", leaveHandler.GetMyLeaveRequests)
	leaveGroup.Post("/:id/attachment", leaveHandler.UploadAttachment)
	adminLeaveGroup := leaveGroup.Group("/", middleware.AdminMiddleware())
	adminLeaveGroup.Get("/", leaveHandler.GetAllLeaveRequests)
	adminLeaveGroup.Patch("/:id/status", leaveHandler.UpdateLeaveRequestStatus)

	// Rute penggajian
	payrollGroup := api.Group("/payrolls", middleware.AuthMiddleware(deps.Maker))
	payrollGroup.Get("/my", payrollHandler.GetMyPayrolls)
	adminPayrollGroup := payrollGroup.Group("/", middleware.AdminMiddleware())
	adminPayrollGroup.Post("/", payrollHandler.CreatePayroll)
	adminPayrollGroup.Get("/", payrollHandler.GetAllPayrolls)
	adminPayrollGroup.Patch("/:id/pay", payrollHandler.MarkPayrollPaid)

	log.Println("Semua rute aplikasi berhasil didaftarkan.")
	log.Println("Routes yang tersedia:")
	log.Println("- POST /api/v1/auth/login")
	log.Println("- POST /api/v1/auth/register (admin only)")
	log.Println("- POST /api/v1/users/change-password (protected)")
	log.Println("- GET /api/v1/users/:id (protected)")
	log.Println("- PATCH /api/v1/users/:id (protected)")
	log.Println("- POST /api/v1/users/:id/upload-photo (protected)")
	log.Println("- GET /api/v1/admin/users (admin only)")
	log.Println("- DELETE /api/v1/admin/users/:id (admin only)")
	log.Println("- GET /api/v1/admin/dashboard-stats (admin only)")
	log.Println("- POST /api/v1/attendance/check-in (protected)")
	log.Println("- POST /api/v1/attendance/check-out (protected)")
	log.Println("- POST /api/v1/attendance/scan (protected)")
	log.Println("- GET /api/v1/attendance/my-history (protected)")
	log.Println("- GET /api/v1/attendance/today (protected)")
	log.Println("- POST /api/v1/attendance/generate-qr (admin only)")
	log.Println("- GET /api/v1/attendance (admin only)")
	log.Println("- GET /api/v1/attendance/date/:date (admin only)")
	log.Println("- PATCH /api/v1/attendance/:id (admin only)")
	log.Println("- POST /api/v1/leave-requests (protected)")
	log.Println("- GET /api/v1/leave-requests/my (protected)")
	log.Println("- POST /api/v1/leave-requests/:id/attachment (protected)")
	log.Println("- GET /api/v1/leave-requests (admin only)")
	log.Println("- PATCH /api/v1/leave-requests/:id/status (admin only)")
	log.Println("- GET /api/v1/payrolls/my (protected)")
	log.Println("- POST /api/v1/payrolls (admin only)")
	log.Println("- GET /api/v1/payrolls (admin only)")
	log.Println("- PATCH /api/v1/payrolls/:id/pay (admin only)")
	log.Println("- GET /ws (websocket)")
	log.Println("Swagger documentation tersedia di: /docs/index.html")
}
