package util

import (
	"fmt"
	"math/rand"
	"strings"
)

// GenerateLoginID membuat Login ID unik dari nama perusahaan, nama
// karyawan, dan tahun bergabung.
// Format: [C1C2][F1F2][L1L2][YYYY][NNNN], contoh: DAADUS20260001
// (Dayflow, Admin User, 2026, serial 1).
func GenerateLoginID(companyName, firstName, lastName string, year, serialNumber int) string {
	companyCode := twoLetterCode(companyName)
	firstNameCode := twoLetterCode(firstName)
	lastNameCode := twoLetterCode(lastName)

	return fmt.Sprintf("%s%s%s%d%04d", companyCode, firstNameCode, lastNameCode, year, serialNumber)
}

func twoLetterCode(s string) string {
	// Potong per rune supaya nama non-ASCII tidak menghasilkan byte UTF-8 terpotong.
	code := []rune(strings.ToUpper(s))
	// Nama terlalu pendek di-pad dengan X
	for len(code) < 2 {
		code = append(code, 'X')
	}
	return string(code[:2])
}

// GenerateTempPassword membuat password sementara untuk karyawan baru.
// Format: Temp + 4 digit acak + !
func GenerateTempPassword() string {
	randomDigits := 1000 + rand.Intn(9000)
	return fmt.Sprintf("Temp%d!", randomDigits)
}

// ParseFullName memecah nama lengkap menjadi nama depan dan belakang.
func ParseFullName(fullName string) (firstName, lastName string) {
	parts := strings.Fields(strings.TrimSpace(fullName))
	if len(parts) == 0 {
		return "", ""
	}
	firstName = parts[0]
	if len(parts) > 1 {
		lastName = strings.Join(parts[1:], " ")
	} else {
		lastName = parts[0]
	}
	return firstName, lastName
}
