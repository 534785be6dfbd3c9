package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
)

// MemoryStore adalah implementasi in-memory dari seluruh repository.
// Dipakai untuk mode demo (STORAGE=memory) dan untuk test tanpa Mongo.
// Semua method aman dipanggil bersamaan; satu mutex melindungi semua map.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]models.User
	attendances map[string]models.Attendance
	leaves      map[string]models.LeaveRequest
	payrolls    map[string]models.Payroll
	qrCodes     map[string]models.QRCode
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[string]models.User),
		attendances: make(map[string]models.Attendance),
		leaves:      make(map[string]models.LeaveRequest),
		payrolls:    make(map[string]models.Payroll),
		qrCodes:     make(map[string]models.QRCode),
	}
}

var (
	_ UserRepository         = (*MemoryStore)(nil)
	_ AttendanceRepository   = (*MemoryStore)(nil)
	_ LeaveRequestRepository = (*MemoryStore)(nil)
	_ PayrollRepository      = (*MemoryStore)(nil)
)

// --- UserRepository ---

func (s *MemoryStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || (user.LoginID != "" && u.LoginID == user.LoginID) {
			return fmt.Errorf("email atau login ID sudah ada")
		}
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	s.users[user.ID.Hex()] = *user
	return nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id.Hex()]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindUserByLoginID(_ context.Context, loginID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.LoginID == loginID {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindAllUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

func (s *MemoryStore) UpdateUserProfile(_ context.Context, id primitive.ObjectID, payload *models.UserUpdatePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id.Hex()]
	if !ok {
		return fmt.Errorf("user tidak ditemukan")
	}
	if payload.Name != "" {
		user.Name = payload.Name
	}
	if payload.Email != "" {
		user.Email = payload.Email
	}
	if payload.Position != "" {
		user.Position = payload.Position
	}
	if payload.Department != "" {
		user.Department = payload.Department
	}
	if payload.BaseSalary != nil {
		user.BaseSalary = *payload.BaseSalary
	}
	if payload.Address != "" {
		user.Address = payload.Address
	}
	if payload.Photo != "" {
		user.Photo = payload.Photo
	}
	user.UpdatedAt = time.Now()
	s.users[id.Hex()] = user
	return nil
}

func (s *MemoryStore) UpdateUserPhoto(_ context.Context, id primitive.ObjectID, photoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id.Hex()]
	if !ok {
		return fmt.Errorf("user tidak ditemukan")
	}
	user.Photo = photoURL
	user.UpdatedAt = time.Now()
	s.users[id.Hex()] = user
	return nil
}

func (s *MemoryStore) SetUserStatus(_ context.Context, id primitive.ObjectID, status string, lastCheckIn, lastCheckOut *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id.Hex()]
	if !ok {
		return fmt.Errorf("user tidak ditemukan")
	}
	user.CurrentStatus = status
	user.LastCheckIn = lastCheckIn
	user.LastCheckOut = lastCheckOut
	user.UpdatedAt = time.Now()
	s.users[id.Hex()] = user
	return nil
}

func (s *MemoryStore) UpdatePassword(_ context.Context, id primitive.ObjectID, hashedPassword string, isFirstLogin bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id.Hex()]
	if !ok {
		return fmt.Errorf("user tidak ditemukan")
	}
	user.Password = hashedPassword
	user.IsFirstLogin = isFirstLogin
	user.UpdatedAt = time.Now()
	s.users[id.Hex()] = user
	return nil
}

func (s *MemoryStore) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id.Hex()]; !ok {
		return fmt.Errorf("user tidak ditemukan")
	}
	delete(s.users, id.Hex())
	return nil
}

func (s *MemoryStore) NextSerialNumber(_ context.Context, year int, companyName string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	max := 0
	for _, u := range s.users {
		if u.JoinYear == year && u.CompanyName == companyName && u.SerialNumber > max {
			max = u.SerialNumber
		}
	}
	return max + 1, nil
}

func (s *MemoryStore) CountUsersByStatus(_ context.Context, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, u := range s.users {
		if u.CurrentStatus == status {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) DepartmentDistribution(_ context.Context) ([]models.DepartmentCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int64)
	for _, u := range s.users {
		counts[u.Department]++
	}

	results := make([]models.DepartmentCount, 0, len(counts))
	for dept, count := range counts {
		results = append(results, models.DepartmentCount{Department: dept, Count: count})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Count > results[j].Count })
	return results, nil
}

// --- AttendanceRepository ---

func (s *MemoryStore) CreateAttendance(_ context.Context, attendance *models.Attendance) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Satu catatan per user per tanggal
	for _, a := range s.attendances {
		if a.UserID == attendance.UserID && a.Date == attendance.Date {
			return fmt.Errorf("absensi untuk user dan tanggal ini sudah ada")
		}
	}

	if attendance.ID.IsZero() {
		attendance.ID = primitive.NewObjectID()
	}
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = time.Now()
	s.attendances[attendance.ID.Hex()] = *attendance
	return nil
}

func (s *MemoryStore) FindAttendanceByUserAndDate(_ context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.attendances {
		if a.UserID == userID && a.Date == date {
			attendance := a
			return &attendance, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindAttendanceByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Attendance{}
	for _, a := range s.attendances {
		if a.UserID == userID {
			results = append(results, a)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date > results[j].Date })
	return results, nil
}

func (s *MemoryStore) FindAttendanceByID(_ context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attendance, ok := s.attendances[id.Hex()]
	if !ok {
		return nil, nil
	}
	return &attendance, nil
}

func (s *MemoryStore) ReopenAttendance(_ context.Context, id primitive.ObjectID, checkIn time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attendance, ok := s.attendances[id.Hex()]
	if !ok {
		return fmt.Errorf("absensi tidak ditemukan")
	}
	attendance.CheckIn = &checkIn
	attendance.CheckOut = nil
	attendance.Status = models.AttendancePresent
	attendance.WorkMinutes = 0
	attendance.UpdatedAt = time.Now()
	s.attendances[id.Hex()] = attendance
	return nil
}

func (s *MemoryStore) CloseAttendance(_ context.Context, id primitive.ObjectID, checkOut time.Time, status string, workMinutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attendance, ok := s.attendances[id.Hex()]
	if !ok {
		return fmt.Errorf("absensi tidak ditemukan")
	}
	attendance.CheckOut = &checkOut
	attendance.Status = status
	attendance.WorkMinutes = workMinutes
	attendance.UpdatedAt = time.Now()
	s.attendances[id.Hex()] = attendance
	return nil
}

func (s *MemoryStore) UpdateAttendance(_ context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attendance, ok := s.attendances[id.Hex()]
	if !ok {
		return fmt.Errorf("absensi tidak ditemukan")
	}
	if payload.Status != "" {
		attendance.Status = payload.Status
	}
	if payload.Note != "" {
		attendance.Note = payload.Note
	}
	attendance.UpdatedAt = time.Now()
	s.attendances[id.Hex()] = attendance
	return nil
}

func (s *MemoryStore) attendanceWithUser(a models.Attendance) models.AttendanceWithUser {
	item := models.AttendanceWithUser{
		ID:          a.ID,
		UserID:      a.UserID,
		Date:        a.Date,
		CheckIn:     a.CheckIn,
		CheckOut:    a.CheckOut,
		Status:      a.Status,
		WorkMinutes: a.WorkMinutes,
	}
	if user, ok := s.users[a.UserID.Hex()]; ok {
		item.UserName = user.Name
		item.UserEmail = user.Email
		item.UserPhoto = user.Photo
		item.UserPosition = user.Position
		item.UserDepartment = user.Department
	}
	return item
}

func (s *MemoryStore) GetAttendanceByDateWithUserDetails(_ context.Context, date string) ([]models.AttendanceWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.AttendanceWithUser{}
	for _, a := range s.attendances {
		if a.Date == date {
			results = append(results, s.attendanceWithUser(a))
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].UserName < results[j].UserName })
	return results, nil
}

func (s *MemoryStore) GetAllAttendancesWithUserDetails(_ context.Context, userID *primitive.ObjectID, page, limit int64) ([]models.AttendanceWithUser, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []models.AttendanceWithUser{}
	for _, a := range s.attendances {
		if userID != nil && a.UserID != *userID {
			continue
		}
		all = append(all, s.attendanceWithUser(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Date > all[j].Date })

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= total {
		return []models.AttendanceWithUser{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (s *MemoryStore) CreateQRCode(_ context.Context, qrCode *models.QRCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if qrCode.ID.IsZero() {
		qrCode.ID = primitive.NewObjectID()
	}
	if qrCode.CreatedAt.IsZero() {
		qrCode.CreatedAt = time.Now()
	}
	s.qrCodes[qrCode.ID.Hex()] = *qrCode
	return nil
}

func (s *MemoryStore) FindQRCodeByValue(_ context.Context, code string) (*models.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, qr := range s.qrCodes {
		if qr.Code == code {
			qrCode := qr
			return &qrCode, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindActiveQRCodeByDate(_ context.Context, date string) (*models.QRCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *models.QRCode
	for _, qr := range s.qrCodes {
		if qr.Date != date || !qr.ExpiresAt.After(time.Now()) {
			continue
		}
		qrCode := qr
		if latest == nil || qrCode.CreatedAt.After(latest.CreatedAt) {
			latest = &qrCode
		}
	}
	return latest, nil
}

func (s *MemoryStore) MarkQRCodeAsUsed(_ context.Context, qrCodeID primitive.ObjectID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	qrCode, ok := s.qrCodes[qrCodeID.Hex()]
	if !ok {
		return fmt.Errorf("QR Code tidak ditemukan")
	}
	for _, used := range qrCode.UsedBy {
		if used == userID {
			return nil
		}
	}
	qrCode.UsedBy = append(qrCode.UsedBy, userID)
	s.qrCodes[qrCodeID.Hex()] = qrCode
	return nil
}

// --- LeaveRequestRepository ---

func (s *MemoryStore) CreateLeaveRequest(_ context.Context, req *models.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	s.leaves[req.ID.Hex()] = *req
	return nil
}

func (s *MemoryStore) FindLeaveRequestByID(_ context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	request, ok := s.leaves[id.Hex()]
	if !ok {
		return nil, nil
	}
	return &request, nil
}

func (s *MemoryStore) FindLeaveRequestsByUserID(_ context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.LeaveRequest{}
	for _, lr := range s.leaves {
		if lr.UserID == userID {
			results = append(results, lr)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results, nil
}

func (s *MemoryStore) FindAllLeaveRequests(_ context.Context) ([]models.LeaveRequestWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.LeaveRequestWithUser{}
	for _, lr := range s.leaves {
		item := models.LeaveRequestWithUser{
			ID:            lr.ID,
			UserID:        lr.UserID,
			RequestType:   lr.RequestType,
			StartDate:     lr.StartDate,
			EndDate:       lr.EndDate,
			Days:          lr.Days,
			Reason:        lr.Reason,
			Status:        lr.Status,
			Note:          lr.Note,
			AttachmentURL: lr.AttachmentURL,
			CreatedAt:     lr.CreatedAt,
		}
		if user, ok := s.users[lr.UserID.Hex()]; ok {
			item.UserName = user.Name
			item.UserEmail = user.Email
			item.UserPhoto = user.Photo
		}
		results = append(results, item)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].CreatedAt.After(results[j].CreatedAt) })
	return results, nil
}

func (s *MemoryStore) UpdateLeaveRequestStatus(_ context.Context, id primitive.ObjectID, status, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.leaves[id.Hex()]
	if !ok {
		return fmt.Errorf("pengajuan tidak ditemukan")
	}
	request.Status = status
	request.Note = note
	request.UpdatedAt = time.Now()
	s.leaves[id.Hex()] = request
	return nil
}

func (s *MemoryStore) UpdateAttachmentURL(_ context.Context, id primitive.ObjectID, fileURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	request, ok := s.leaves[id.Hex()]
	if !ok {
		return fmt.Errorf("pengajuan tidak ditemukan")
	}
	request.AttachmentURL = fileURL
	request.UpdatedAt = time.Now()
	s.leaves[id.Hex()] = request
	return nil
}

func (s *MemoryStore) FindApprovedLeaveCovering(_ context.Context, userID primitive.ObjectID, date string) (*models.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, lr := range s.leaves {
		if lr.UserID == userID && lr.Status == models.LeaveApproved && lr.CoversDate(date) {
			request := lr
			return &request, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) CountPendingRequests(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, lr := range s.leaves {
		if lr.Status == models.LeavePending {
			count++
		}
	}
	return count, nil
}

// --- PayrollRepository ---

func (s *MemoryStore) CreatePayroll(_ context.Context, payroll *models.Payroll) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if payroll.ID.IsZero() {
		payroll.ID = primitive.NewObjectID()
	}
	payroll.CreatedAt = time.Now()
	payroll.UpdatedAt = time.Now()
	s.payrolls[payroll.ID.Hex()] = *payroll
	return nil
}

func (s *MemoryStore) FindPayrollByID(_ context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	payroll, ok := s.payrolls[id.Hex()]
	if !ok {
		return nil, nil
	}
	return &payroll, nil
}

func (s *MemoryStore) FindPayrollsByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []models.Payroll{}
	for _, p := range s.payrolls {
		if p.UserID == userID {
			results = append(results, p)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].PeriodStart > results[j].PeriodStart })
	return results, nil
}

func (s *MemoryStore) FindAllPayrolls(_ context.Context) ([]models.Payroll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Payroll, 0, len(s.payrolls))
	for _, p := range s.payrolls {
		results = append(results, p)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].PeriodStart > results[j].PeriodStart })
	return results, nil
}

func (s *MemoryStore) MarkPayrollPaid(_ context.Context, id primitive.ObjectID, paidAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payroll, ok := s.payrolls[id.Hex()]
	if !ok {
		return fmt.Errorf("payroll tidak ditemukan")
	}
	payroll.Status = models.PayrollPaid
	payroll.PaidAt = &paidAt
	payroll.UpdatedAt = time.Now()
	s.payrolls[id.Hex()] = payroll
	return nil
}
