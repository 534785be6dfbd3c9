package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"dayflow-backend/config"
	"dayflow-backend/pkg/paseto"
	"dayflow-backend/pkg/ws"
	"dayflow-backend/repository"
	"dayflow-backend/router"
	"dayflow-backend/scheduler"
	"dayflow-backend/seeder"
	"dayflow-backend/service"

	_ "dayflow-backend/docs"
	_ "time/tzdata"
)

// @title Dayflow API
// @version 1.0
// @description Backend absensi, cuti, dan penggajian karyawan dengan pelacakan status harian
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.description Authentication endpoints
//
// @tag.name Users
// @tag.description User management endpoints
//
// @tag.name Attendance
// @tag.description Attendance tracking endpoints
//
// @tag.name LeaveRequests
// @tag.description Leave request endpoints
//
// @tag.name Payrolls
// @tag.description Payroll endpoints
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file tidak ditemukan, menggunakan environment variables sistem")
	}

	cfg := config.LoadConfig()

	appLogger := logrus.New()
	appLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Timezone %q tidak valid: %v", cfg.Timezone, err)
	}

	maker, err := paseto.NewMaker(cfg.PASETO_SECRET)
	if err != nil {
		log.Fatalf("Gagal inisialisasi PASETO maker: %v", err)
	}

	// Pilih backend storage: mongo untuk produksi, memory untuk
	// demo/pengembangan tanpa database.
	var (
		userRepo       repository.UserRepository
		attendanceRepo repository.AttendanceRepository
		leaveRepo      repository.LeaveRequestRepository
		payrollRepo    repository.PayrollRepository
	)
	switch cfg.Storage {
	case "memory":
		store := repository.NewMemoryStore()
		userRepo = store
		attendanceRepo = store
		leaveRepo = store
		payrollRepo = store
		seeder.SeedUsers(store)
		appLogger.Info("Storage mode: memory (data hilang saat restart)")
	default:
		config.MongoConnect(cfg.MONGOSTRING)
		config.InitDatabase()
		defer config.DisconnectDB()
		userRepo = repository.NewUserRepository()
		attendanceRepo = repository.NewAttendanceRepository()
		leaveRepo = repository.NewLeaveRequestRepository()
		payrollRepo = repository.NewPayrollRepository()
		appLogger.Info("Storage mode: mongo")
	}

	hub := ws.NewHub(appLogger)
	attendanceSvc := service.NewAttendanceService(userRepo, attendanceRepo, leaveRepo, hub, loc, appLogger)

	dailyReset, err := scheduler.NewDailyReset(attendanceSvc, loc, appLogger)
	if err != nil {
		log.Fatalf("Gagal inisialisasi scheduler reset harian: %v", err)
	}
	dailyReset.Start()
	defer dailyReset.Stop()

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app, router.Deps{
		Maker:          maker,
		Hub:            hub,
		AttendanceSvc:  attendanceSvc,
		UserRepo:       userRepo,
		AttendanceRepo: attendanceRepo,
		LeaveRepo:      leaveRepo,
		PayrollRepo:    payrollRepo,
	})

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API Documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Printf("CORS enabled for origins: %v", config.GetAllowedOrigins())
	log.Fatal(app.Listen(":" + cfg.Port))
}
