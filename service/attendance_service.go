package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/repository"
)

const dateLayout = "2006-01-02"

// Sesi yang ditutup dengan durasi kerja di bawah 4 jam dicatat half-day.
const halfDayThresholdMinutes = 240

// StatusNotifier adalah port notifikasi fire-and-forget. Implementasinya
// (hub websocket) hidup di luar package ini; service tidak pernah peduli
// apakah ada client yang terhubung.
type StatusNotifier interface {
	NotifyStatusChanged(userID string, status string, timestamp time.Time)
	NotifyCheckIn(userID string, timestamp time.Time)
	NotifyCheckOut(userID string, timestamp time.Time)
}

// AttendanceService memelihara status kehadiran setiap user beserta jejak
// absensi hariannya, dengan invariant paling banyak satu sesi terbuka per
// user per tanggal.
type AttendanceService struct {
	userRepo       repository.UserRepository
	attendanceRepo repository.AttendanceRepository
	leaveRepo      repository.LeaveRequestRepository
	notifier       StatusNotifier
	logger         *logrus.Logger
	loc            *time.Location

	// diganti di test untuk mengunci jam
	now func() time.Time
}

func NewAttendanceService(
	userRepo repository.UserRepository,
	attendanceRepo repository.AttendanceRepository,
	leaveRepo repository.LeaveRequestRepository,
	notifier StatusNotifier,
	loc *time.Location,
	logger *logrus.Logger,
) *AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &AttendanceService{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		notifier:       notifier,
		logger:         logger,
		loc:            loc,
		now:            time.Now,
	}
}

// Now mengembalikan waktu sekarang pada zona waktu server.
func (s *AttendanceService) Now() time.Time {
	return s.now().In(s.loc)
}

// Today mengembalikan tanggal hari ini dalam format 2006-01-02.
func (s *AttendanceService) Today() string {
	return s.Now().Format(dateLayout)
}

// CheckIn mencatat kedatangan user. Check-in kedua pada sesi yang masih
// terbuka ditolak; check-in setelah check-out di tanggal yang sama membuka
// kembali catatan yang sama dengan check-out dikosongkan.
func (s *AttendanceService) CheckIn(ctx context.Context, userID primitive.ObjectID) (*models.User, *models.Attendance, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	now := s.Now()
	today := now.Format(dateLayout)

	attendance, err := s.attendanceRepo.FindAttendanceByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, nil, err
	}
	if attendance.IsOpen() {
		return nil, nil, ErrAlreadyCheckedIn
	}

	if attendance != nil {
		// Sudah check-out lebih awal hari ini: buka kembali sesi yang sama.
		if err := s.attendanceRepo.ReopenAttendance(ctx, attendance.ID, now); err != nil {
			return nil, nil, err
		}
		attendance.CheckIn = &now
		attendance.CheckOut = nil
		attendance.Status = models.AttendancePresent
		attendance.WorkMinutes = 0
	} else {
		attendance = &models.Attendance{
			UserID:  userID,
			Date:    today,
			CheckIn: &now,
			Status:  models.AttendancePresent,
		}
		if err := s.attendanceRepo.CreateAttendance(ctx, attendance); err != nil {
			return nil, nil, err
		}
	}

	if err := s.userRepo.SetUserStatus(ctx, userID, models.StatusPresent, &now, user.LastCheckOut); err != nil {
		return nil, nil, err
	}
	user.CurrentStatus = models.StatusPresent
	user.LastCheckIn = &now

	s.logger.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"date":    today,
		"time":    now.Format("15:04"),
	}).Info("User checked in")

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(userID.Hex(), models.StatusPresent, now)
		s.notifier.NotifyCheckIn(userID.Hex(), now)
	}

	return user, attendance, nil
}

// CheckOut menutup sesi terbuka hari ini dan menghitung menit kerja.
func (s *AttendanceService) CheckOut(ctx context.Context, userID primitive.ObjectID) (*models.User, *models.Attendance, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	now := s.Now()
	today := now.Format(dateLayout)

	attendance, err := s.attendanceRepo.FindAttendanceByUserAndDate(ctx, userID, today)
	if err != nil {
		return nil, nil, err
	}
	if attendance == nil || attendance.CheckIn == nil {
		return nil, nil, ErrNoCheckInFound
	}
	if attendance.CheckOut != nil {
		return nil, nil, ErrAlreadyCheckedOut
	}

	workMinutes := int(now.Sub(*attendance.CheckIn).Minutes())
	if workMinutes < 0 {
		workMinutes = 0
	}
	status := models.AttendancePresent
	if workMinutes < halfDayThresholdMinutes {
		status = models.AttendanceHalfDay
	}

	if err := s.attendanceRepo.CloseAttendance(ctx, attendance.ID, now, status, workMinutes); err != nil {
		return nil, nil, err
	}
	attendance.CheckOut = &now
	attendance.Status = status
	attendance.WorkMinutes = workMinutes

	if err := s.userRepo.SetUserStatus(ctx, userID, models.StatusAbsent, user.LastCheckIn, &now); err != nil {
		return nil, nil, err
	}
	user.CurrentStatus = models.StatusAbsent
	user.LastCheckOut = &now

	s.logger.WithFields(logrus.Fields{
		"user_id":      userID.Hex(),
		"date":         today,
		"work_minutes": workMinutes,
	}).Info("User checked out")

	if s.notifier != nil {
		s.notifier.NotifyStatusChanged(userID.Hex(), models.StatusAbsent, now)
		s.notifier.NotifyCheckOut(userID.Hex(), now)
	}

	return user, attendance, nil
}

// ResetAllStatuses adalah sweep harian: setiap user yang punya cuti
// approved yang memuat hari ini menjadi on-leave, sisanya absent, dan
// kedua timestamp check-in/check-out dikosongkan. Kegagalan per user
// dicatat lalu dilewati supaya sisa sweep tetap berjalan.
func (s *AttendanceService) ResetAllStatuses(ctx context.Context) error {
	today := s.Today()

	users, err := s.userRepo.FindAllUsers(ctx)
	if err != nil {
		return err
	}

	for _, user := range users {
		status := models.StatusAbsent

		leave, err := s.leaveRepo.FindApprovedLeaveCovering(ctx, user.ID, today)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID.Hex()).
				Warn("Gagal mengecek cuti saat reset, user dilewati")
			continue
		}
		if leave != nil {
			status = models.StatusOnLeave
		}

		// Satu update per user; tidak ada transaksi yang membentang
		// sepanjang sweep.
		if err := s.userRepo.SetUserStatus(ctx, user.ID, status, nil, nil); err != nil {
			s.logger.WithError(err).WithField("user_id", user.ID.Hex()).
				Warn("Gagal reset status user")
			continue
		}
	}

	s.logger.WithFields(logrus.Fields{
		"date":  today,
		"users": len(users),
	}).Info("Daily status reset selesai")
	return nil
}

// ApplyLeaveDecision memutuskan pengajuan yang masih pending. Persetujuan
// langsung menjadikan pemiliknya on-leave; penolakan tidak mengubah status
// user (tidak ada transisi balik, mengikuti perilaku awal sistem).
func (s *AttendanceService) ApplyLeaveDecision(ctx context.Context, leaveID primitive.ObjectID, status, note string) (*models.LeaveRequest, error) {
	leave, err := s.leaveRepo.FindLeaveRequestByID(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if leave == nil {
		return nil, ErrLeaveNotFound
	}
	if leave.Status != models.LeavePending {
		return nil, ErrLeaveAlreadyDecided
	}

	if err := s.leaveRepo.UpdateLeaveRequestStatus(ctx, leaveID, status, note); err != nil {
		return nil, err
	}
	leave.Status = status
	leave.Note = note

	if status == models.LeaveApproved {
		user, err := s.userRepo.FindUserByID(ctx, leave.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotFound
		}

		if err := s.userRepo.SetUserStatus(ctx, leave.UserID, models.StatusOnLeave, user.LastCheckIn, user.LastCheckOut); err != nil {
			return nil, err
		}

		now := s.Now()
		s.logger.WithFields(logrus.Fields{
			"user_id":  leave.UserID.Hex(),
			"leave_id": leaveID.Hex(),
			"range":    leave.StartDate + ".." + leave.EndDate,
		}).Info("Leave approved, user on-leave")

		if s.notifier != nil {
			s.notifier.NotifyStatusChanged(leave.UserID.Hex(), models.StatusOnLeave, now)
		}
	}

	return leave, nil
}
