package seeder

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dayflow-backend/models"
	util "dayflow-backend/pkg/utils"
	"dayflow-backend/repository"
)

// SeedUsers mengisi akun admin dan satu karyawan demo supaya mode
// memory langsung bisa dipakai login.
func SeedUsers(userRepo repository.UserRepository) {
	log.Println("🌱 Memulai seeding user...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Gagal hash password: %v", err)
	}

	year := time.Now().Year()

	seedOne := func(name, email, role, position, department, companyName string, baseSalary float64) {
		existing, err := userRepo.FindUserByEmail(ctx, email)
		if err == nil && existing != nil {
			log.Printf("✅ User %s sudah ada, seeding dilewati.\n", email)
			return
		}

		serial, err := userRepo.NextSerialNumber(ctx, year, companyName)
		if err != nil {
			log.Printf("❌ Gagal membuat serial number untuk %s: %v\n", email, err)
			return
		}

		firstName, lastName := util.ParseFullName(name)
		user := &models.User{
			LoginID:       util.GenerateLoginID(companyName, firstName, lastName, year, serial),
			Name:          name,
			Email:         email,
			Password:      string(hashedPassword),
			Role:          role,
			Position:      position,
			Department:    department,
			BaseSalary:    baseSalary,
			Address:       "Jl. Administrasi No. 1, Jakarta",
			IsFirstLogin:  true,
			CurrentStatus: models.StatusAbsent,
			JoinYear:      year,
			SerialNumber:  serial,
			CompanyName:   companyName,
		}

		if err := userRepo.CreateUser(ctx, user); err != nil {
			log.Printf("❌ Gagal menyimpan user %s: %v\n", user.Name, err)
			return
		}
		fmt.Printf("✔ User %s (%s) berhasil ditambahkan, login ID: %s\n", user.Name, user.Role, user.LoginID)
	}

	seedOne("Admin Utama", "admin.utama@gmail.com", models.RoleAdmin, "Manajer Umum", "Manajemen", "Dayflow", 9500000.00)
	seedOne("Sarah Connor", "sarah.connor@gmail.com", models.RoleEmployee, "Software Engineer", "Teknologi Informasi (IT)", "Dayflow", 7000000.00)

	log.Println("✅ Seeding user selesai.")
}
