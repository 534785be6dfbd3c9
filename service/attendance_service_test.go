package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"dayflow-backend/models"
	"dayflow-backend/repository"
)

type notifierEvent struct {
	kind   string
	userID string
	status string
}

// fakeNotifier merekam semua event tanpa websocket sungguhan.
type fakeNotifier struct {
	events []notifierEvent
}

func (f *fakeNotifier) NotifyStatusChanged(userID string, status string, _ time.Time) {
	f.events = append(f.events, notifierEvent{kind: "status-changed", userID: userID, status: status})
}

func (f *fakeNotifier) NotifyCheckIn(userID string, _ time.Time) {
	f.events = append(f.events, notifierEvent{kind: "check-in", userID: userID})
}

func (f *fakeNotifier) NotifyCheckOut(userID string, _ time.Time) {
	f.events = append(f.events, notifierEvent{kind: "check-out", userID: userID})
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(t *testing.T) (*AttendanceService, *repository.MemoryStore, *fakeNotifier) {
	t.Helper()
	store := repository.NewMemoryStore()
	notifier := &fakeNotifier{}
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	svc := NewAttendanceService(store, store, store, notifier, loc, quietLogger())
	return svc, store, notifier
}

func seedUser(t *testing.T, store *repository.MemoryStore, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:          name,
		Email:         name + "@example.com",
		Role:          models.RoleEmployee,
		CurrentStatus: models.StatusAbsent,
	}
	if err := store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// fixClock mengunci jam service pada waktu tertentu.
func fixClock(svc *AttendanceService, at time.Time) {
	svc.now = func() time.Time { return at }
}

func jakartaTime(t *testing.T, value string) time.Time {
	t.Helper()
	loc, _ := time.LoadLocation("Asia/Jakarta")
	parsed, err := time.ParseInLocation("2006-01-02 15:04", value, loc)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func TestCheckInSetsPresent(t *testing.T) {
	svc, store, notifier := newTestService(t)
	user := seedUser(t, store, "budi")
	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))

	updated, attendance, err := svc.CheckIn(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	if updated.CurrentStatus != models.StatusPresent {
		t.Errorf("status = %q, want %q", updated.CurrentStatus, models.StatusPresent)
	}
	if updated.LastCheckIn == nil {
		t.Fatal("LastCheckIn masih nil setelah check-in")
	}
	if attendance.Date != "2026-03-02" {
		t.Errorf("date = %q, want 2026-03-02", attendance.Date)
	}
	if !attendance.IsOpen() {
		t.Error("sesi harus terbuka setelah check-in")
	}

	stored, err := store.FindUserByID(context.Background(), user.ID)
	if err != nil || stored == nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.CurrentStatus != models.StatusPresent {
		t.Errorf("status tersimpan = %q, want %q", stored.CurrentStatus, models.StatusPresent)
	}

	if len(notifier.events) != 2 {
		t.Fatalf("jumlah event = %d, want 2", len(notifier.events))
	}
	if notifier.events[0].kind != "status-changed" || notifier.events[0].status != models.StatusPresent {
		t.Errorf("event pertama = %+v", notifier.events[0])
	}
	if notifier.events[1].kind != "check-in" {
		t.Errorf("event kedua = %+v", notifier.events[1])
	}
}

func TestCheckInTwiceRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "siti")
	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))

	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != nil {
		t.Fatalf("check-in pertama: %v", err)
	}
	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != ErrAlreadyCheckedIn {
		t.Errorf("check-in kedua err = %v, want ErrAlreadyCheckedIn", err)
	}
}

func TestCheckInUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, _, err := svc.CheckIn(context.Background(), primitive.NewObjectID()); err != ErrUserNotFound {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "agus")
	fixClock(svc, jakartaTime(t, "2026-03-02 17:00"))

	if _, _, err := svc.CheckOut(context.Background(), user.ID); err != ErrNoCheckInFound {
		t.Errorf("err = %v, want ErrNoCheckInFound", err)
	}
}

func TestCheckOutComputesWorkMinutes(t *testing.T) {
	svc, store, notifier := newTestService(t)
	user := seedUser(t, store, "dewi")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	fixClock(svc, jakartaTime(t, "2026-03-02 17:00"))
	updated, attendance, err := svc.CheckOut(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if attendance.WorkMinutes != 480 {
		t.Errorf("work minutes = %d, want 480", attendance.WorkMinutes)
	}
	if attendance.Status != models.AttendancePresent {
		t.Errorf("status absensi = %q, want %q", attendance.Status, models.AttendancePresent)
	}
	if updated.CurrentStatus != models.StatusAbsent {
		t.Errorf("status user = %q, want %q", updated.CurrentStatus, models.StatusAbsent)
	}
	if updated.LastCheckOut == nil {
		t.Fatal("LastCheckOut masih nil setelah check-out")
	}

	last := notifier.events[len(notifier.events)-1]
	if last.kind != "check-out" {
		t.Errorf("event terakhir = %+v, want check-out", last)
	}
}

func TestCheckOutShortSessionHalfDay(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "rina")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	// 3 jam kerja, di bawah ambang 4 jam
	fixClock(svc, jakartaTime(t, "2026-03-02 12:00"))
	_, attendance, err := svc.CheckOut(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("check-out: %v", err)
	}
	if attendance.Status != models.AttendanceHalfDay {
		t.Errorf("status = %q, want %q", attendance.Status, models.AttendanceHalfDay)
	}
	if attendance.WorkMinutes != 180 {
		t.Errorf("work minutes = %d, want 180", attendance.WorkMinutes)
	}
}

func TestCheckOutTwiceRejected(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "joko")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	fixClock(svc, jakartaTime(t, "2026-03-02 17:00"))
	if _, _, err := svc.CheckOut(context.Background(), user.ID); err != nil {
		t.Fatalf("check-out pertama: %v", err)
	}
	if _, _, err := svc.CheckOut(context.Background(), user.ID); err != ErrAlreadyCheckedOut {
		t.Errorf("check-out kedua err = %v, want ErrAlreadyCheckedOut", err)
	}
}

func TestCheckInAfterCheckOutReopensSameRecord(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "sri")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	_, first, err := svc.CheckIn(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("check-in: %v", err)
	}
	fixClock(svc, jakartaTime(t, "2026-03-02 12:00"))
	if _, _, err := svc.CheckOut(context.Background(), user.ID); err != nil {
		t.Fatalf("check-out: %v", err)
	}

	fixClock(svc, jakartaTime(t, "2026-03-02 13:00"))
	_, reopened, err := svc.CheckIn(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("check-in kedua: %v", err)
	}
	if reopened.ID != first.ID {
		t.Errorf("record baru dibuat, harusnya pakai ulang record %s", first.ID.Hex())
	}
	if reopened.CheckOut != nil {
		t.Error("check-out harus dikosongkan saat sesi dibuka kembali")
	}
	if !reopened.CheckIn.Equal(jakartaTime(t, "2026-03-02 13:00")) {
		t.Errorf("check-in = %v, want 13:00", reopened.CheckIn)
	}

	records, err := store.FindAttendanceByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("find attendances: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("jumlah record = %d, want 1", len(records))
	}
}

func TestResetAllStatuses(t *testing.T) {
	svc, store, notifier := newTestService(t)
	worker := seedUser(t, store, "hadi")
	vacationer := seedUser(t, store, "maya")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	if _, _, err := svc.CheckIn(context.Background(), worker.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}

	leave := &models.LeaveRequest{
		UserID:      vacationer.ID,
		RequestType: "annual",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-05",
		Status:      models.LeaveApproved,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	notifier.events = nil
	fixClock(svc, jakartaTime(t, "2026-03-03 00:00"))
	if err := svc.ResetAllStatuses(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	updatedWorker, _ := store.FindUserByID(context.Background(), worker.ID)
	if updatedWorker.CurrentStatus != models.StatusAbsent {
		t.Errorf("status worker = %q, want %q", updatedWorker.CurrentStatus, models.StatusAbsent)
	}
	if updatedWorker.LastCheckIn != nil || updatedWorker.LastCheckOut != nil {
		t.Error("timestamp check-in/check-out harus dikosongkan oleh reset")
	}

	updatedVacationer, _ := store.FindUserByID(context.Background(), vacationer.ID)
	if updatedVacationer.CurrentStatus != models.StatusOnLeave {
		t.Errorf("status vacationer = %q, want %q", updatedVacationer.CurrentStatus, models.StatusOnLeave)
	}

	// Sweep tidak mengirim notifikasi
	if len(notifier.events) != 0 {
		t.Errorf("reset mengirim %d event, harusnya 0", len(notifier.events))
	}
}

func TestResetLeaveOutsideRange(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "eko")

	leave := &models.LeaveRequest{
		UserID:    user.ID,
		StartDate: "2026-03-01",
		EndDate:   "2026-03-02",
		Status:    models.LeaveApproved,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	fixClock(svc, jakartaTime(t, "2026-03-03 00:00"))
	if err := svc.ResetAllStatuses(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}

	updated, _ := store.FindUserByID(context.Background(), user.ID)
	if updated.CurrentStatus != models.StatusAbsent {
		t.Errorf("status = %q, want %q (cuti sudah lewat)", updated.CurrentStatus, models.StatusAbsent)
	}
}

// failingUserRepo menggagalkan SetUserStatus untuk satu user tertentu.
type failingUserRepo struct {
	repository.UserRepository
	failID primitive.ObjectID
}

func (f *failingUserRepo) SetUserStatus(ctx context.Context, id primitive.ObjectID, status string, lastCheckIn, lastCheckOut *time.Time) error {
	if id == f.failID {
		return errors.New("koneksi database terputus")
	}
	return f.UserRepository.SetUserStatus(ctx, id, status, lastCheckIn, lastCheckOut)
}

// failingLeaveRepo menggagalkan pengecekan cuti untuk satu user tertentu.
type failingLeaveRepo struct {
	repository.LeaveRequestRepository
	failID primitive.ObjectID
}

func (f *failingLeaveRepo) FindApprovedLeaveCovering(ctx context.Context, userID primitive.ObjectID, date string) (*models.LeaveRequest, error) {
	if userID == f.failID {
		return nil, errors.New("koneksi database terputus")
	}
	return f.LeaveRequestRepository.FindApprovedLeaveCovering(ctx, userID, date)
}

func TestResetContinuesAfterStatusUpdateFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	rusak := seedUser(t, store, "rusak")
	sehat := seedUser(t, store, "sehat")

	checkIn := jakartaTime(t, "2026-03-02 09:00")
	for _, u := range []*models.User{rusak, sehat} {
		if err := store.SetUserStatus(context.Background(), u.ID, models.StatusPresent, &checkIn, nil); err != nil {
			t.Fatalf("set status awal: %v", err)
		}
	}

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	userRepo := &failingUserRepo{UserRepository: store, failID: rusak.ID}
	svc := NewAttendanceService(userRepo, store, store, &fakeNotifier{}, loc, quietLogger())
	fixClock(svc, jakartaTime(t, "2026-03-03 00:00"))

	if err := svc.ResetAllStatuses(context.Background()); err != nil {
		t.Fatalf("reset harus tetap sukses meski satu user gagal: %v", err)
	}

	updated, _ := store.FindUserByID(context.Background(), sehat.ID)
	if updated.CurrentStatus != models.StatusAbsent {
		t.Errorf("user sehat: status = %q, want %q", updated.CurrentStatus, models.StatusAbsent)
	}
	skipped, _ := store.FindUserByID(context.Background(), rusak.ID)
	if skipped.CurrentStatus != models.StatusPresent {
		t.Errorf("user gagal harus dilewati, status = %q, want %q", skipped.CurrentStatus, models.StatusPresent)
	}
}

func TestResetContinuesAfterLeaveCheckFailure(t *testing.T) {
	store := repository.NewMemoryStore()
	rusak := seedUser(t, store, "rusak")
	cutian := seedUser(t, store, "cutian")

	leave := &models.LeaveRequest{
		UserID:    cutian.ID,
		StartDate: "2026-03-03",
		EndDate:   "2026-03-05",
		Status:    models.LeaveApproved,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	leaveRepo := &failingLeaveRepo{LeaveRequestRepository: store, failID: rusak.ID}
	svc := NewAttendanceService(store, store, leaveRepo, &fakeNotifier{}, loc, quietLogger())
	fixClock(svc, jakartaTime(t, "2026-03-03 00:00"))

	if err := svc.ResetAllStatuses(context.Background()); err != nil {
		t.Fatalf("reset harus tetap sukses meski pengecekan cuti gagal: %v", err)
	}

	updated, _ := store.FindUserByID(context.Background(), cutian.ID)
	if updated.CurrentStatus != models.StatusOnLeave {
		t.Errorf("user dengan cuti approved: status = %q, want %q", updated.CurrentStatus, models.StatusOnLeave)
	}
}

func TestApplyLeaveDecisionApprove(t *testing.T) {
	svc, store, notifier := newTestService(t)
	user := seedUser(t, store, "dian")

	leave := &models.LeaveRequest{
		UserID:      user.ID,
		RequestType: "sick",
		StartDate:   "2026-03-02",
		EndDate:     "2026-03-04",
		Status:      models.LeavePending,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	fixClock(svc, jakartaTime(t, "2026-03-02 08:00"))
	decided, err := svc.ApplyLeaveDecision(context.Background(), leave.ID, models.LeaveApproved, "semoga lekas sembuh")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if decided.Status != models.LeaveApproved {
		t.Errorf("status = %q, want %q", decided.Status, models.LeaveApproved)
	}

	updated, _ := store.FindUserByID(context.Background(), user.ID)
	if updated.CurrentStatus != models.StatusOnLeave {
		t.Errorf("status user = %q, want %q", updated.CurrentStatus, models.StatusOnLeave)
	}

	last := notifier.events[len(notifier.events)-1]
	if last.kind != "status-changed" || last.status != models.StatusOnLeave {
		t.Errorf("event terakhir = %+v, want status-changed on-leave", last)
	}
}

func TestApplyLeaveDecisionRejectKeepsStatus(t *testing.T) {
	svc, store, notifier := newTestService(t)
	user := seedUser(t, store, "fajar")

	fixClock(svc, jakartaTime(t, "2026-03-02 09:00"))
	if _, _, err := svc.CheckIn(context.Background(), user.ID); err != nil {
		t.Fatalf("check-in: %v", err)
	}
	notifier.events = nil

	leave := &models.LeaveRequest{
		UserID:    user.ID,
		StartDate: "2026-03-03",
		EndDate:   "2026-03-04",
		Status:    models.LeavePending,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	decided, err := svc.ApplyLeaveDecision(context.Background(), leave.ID, models.LeaveRejected, "beban kerja tinggi")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if decided.Status != models.LeaveRejected {
		t.Errorf("status = %q, want %q", decided.Status, models.LeaveRejected)
	}

	updated, _ := store.FindUserByID(context.Background(), user.ID)
	if updated.CurrentStatus != models.StatusPresent {
		t.Errorf("status user berubah jadi %q, harusnya tetap %q", updated.CurrentStatus, models.StatusPresent)
	}
	if len(notifier.events) != 0 {
		t.Errorf("penolakan mengirim %d event, harusnya 0", len(notifier.events))
	}
}

func TestApplyLeaveDecisionOnlyFromPending(t *testing.T) {
	svc, store, _ := newTestService(t)
	user := seedUser(t, store, "indra")

	leave := &models.LeaveRequest{
		UserID:    user.ID,
		StartDate: "2026-03-02",
		EndDate:   "2026-03-03",
		Status:    models.LeavePending,
	}
	if err := store.CreateLeaveRequest(context.Background(), leave); err != nil {
		t.Fatalf("seed leave: %v", err)
	}

	if _, err := svc.ApplyLeaveDecision(context.Background(), leave.ID, models.LeaveApproved, ""); err != nil {
		t.Fatalf("approve pertama: %v", err)
	}
	if _, err := svc.ApplyLeaveDecision(context.Background(), leave.ID, models.LeaveRejected, ""); err != ErrLeaveAlreadyDecided {
		t.Errorf("keputusan kedua err = %v, want ErrLeaveAlreadyDecided", err)
	}
}

func TestApplyLeaveDecisionNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	if _, err := svc.ApplyLeaveDecision(context.Background(), primitive.NewObjectID(), models.LeaveApproved, ""); err != ErrLeaveNotFound {
		t.Errorf("err = %v, want ErrLeaveNotFound", err)
	}
}
