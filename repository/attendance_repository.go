package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dayflow-backend/config"
	"dayflow-backend/models"
)

type AttendanceRepository interface {
	// --- Methods for Attendance ---
	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	FindAttendanceByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error)
	FindAttendanceByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Attendance, error)
	FindAttendanceByID(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error)
	// ReopenAttendance membuka kembali sesi: check-in baru, check-out dikosongkan.
	ReopenAttendance(ctx context.Context, id primitive.ObjectID, checkIn time.Time) error
	// CloseAttendance menutup sesi dengan waktu check-out dan menit kerja terhitung.
	CloseAttendance(ctx context.Context, id primitive.ObjectID, checkOut time.Time, status string, workMinutes int) error
	UpdateAttendance(ctx context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) error
	GetAttendanceByDateWithUserDetails(ctx context.Context, date string) ([]models.AttendanceWithUser, error)
	GetAllAttendancesWithUserDetails(ctx context.Context, userID *primitive.ObjectID, page, limit int64) ([]models.AttendanceWithUser, int64, error)

	// --- Methods for QRCode ---
	CreateQRCode(ctx context.Context, qrCode *models.QRCode) error
	FindQRCodeByValue(ctx context.Context, code string) (*models.QRCode, error)
	FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error)
	MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, userID primitive.ObjectID) error
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
	qrCodeCollection     *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
		qrCodeCollection:     config.GetCollection(config.QRCodeCollection),
	}
}

func (r *attendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID.IsZero() {
		attendance.ID = primitive.NewObjectID()
	}
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = time.Now()

	_, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		return fmt.Errorf("gagal membuat absensi: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindAttendanceByUserAndDate(ctx context.Context, userID primitive.ObjectID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{"user_id": userID, "date": date}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari absensi berdasarkan user dan tanggal: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) FindAttendanceByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Attendance, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari riwayat absensi user: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode riwayat absensi: %w", err)
	}
	if len(results) == 0 {
		return []models.Attendance{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) FindAttendanceByID(ctx context.Context, id primitive.ObjectID) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.attendanceCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari absensi berdasarkan ID: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) ReopenAttendance(ctx context.Context, id primitive.ObjectID, checkIn time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"check_in":     checkIn,
			"status":       models.AttendancePresent,
			"work_minutes": 0,
			"updated_at":   time.Now(),
		},
		"$unset": bson.M{"check_out": ""},
	}
	_, err := r.attendanceCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("gagal membuka kembali sesi absensi: %w", err)
	}
	return nil
}

func (r *attendanceRepository) CloseAttendance(ctx context.Context, id primitive.ObjectID, checkOut time.Time, status string, workMinutes int) error {
	update := bson.M{
		"$set": bson.M{
			"check_out":    checkOut,
			"status":       status,
			"work_minutes": workMinutes,
			"updated_at":   time.Now(),
		},
	}
	_, err := r.attendanceCollection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("gagal update check-out absensi: %w", err)
	}
	return nil
}

func (r *attendanceRepository) UpdateAttendance(ctx context.Context, id primitive.ObjectID, payload *models.AttendanceUpdatePayload) error {
	set := bson.M{"updated_at": time.Now()}
	if payload.Status != "" {
		set["status"] = payload.Status
	}
	if payload.Note != "" {
		set["note"] = payload.Note
	}

	_, err := r.attendanceCollection.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("gagal mengupdate absensi: %w", err)
	}
	return nil
}

func attendanceUserLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: "$_id"},
			{Key: "user_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "status", Value: 1},
			{Key: "work_minutes", Value: 1},
			{Key: "user_name", Value: "$userDetails.name"},
			{Key: "user_email", Value: "$userDetails.email"},
			{Key: "user_photo", Value: "$userDetails.photo"},
			{Key: "user_position", Value: "$userDetails.position"},
			{Key: "user_department", Value: "$userDetails.department"},
		}}},
	}
}

func (r *attendanceRepository) GetAttendanceByDateWithUserDetails(ctx context.Context, date string) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "date", Value: date}}}},
	}
	pipeline = append(pipeline, attendanceUserLookupStages()...)

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation untuk daftar kehadiran hari ini: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode hasil aggregation kehadiran: %w", err)
	}
	if len(results) == 0 {
		return []models.AttendanceWithUser{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) GetAllAttendancesWithUserDetails(ctx context.Context, userID *primitive.ObjectID, page, limit int64) ([]models.AttendanceWithUser, int64, error) {
	filter := bson.M{}
	if userID != nil {
		filter["user_id"] = *userID
	}

	total, err := r.attendanceCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal menghitung total dokumen absensi: %w", err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "check_in", Value: -1}}}},
		{{Key: "$skip", Value: (page - 1) * limit}},
		{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, attendanceUserLookupStages()...)

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("gagal aggregation untuk riwayat kehadiran admin: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, 0, fmt.Errorf("gagal decode hasil aggregation riwayat kehadiran: %w", err)
	}
	if len(results) == 0 {
		return []models.AttendanceWithUser{}, total, nil
	}
	return results, total, nil
}

func (r *attendanceRepository) CreateQRCode(ctx context.Context, qrCode *models.QRCode) error {
	_, err := r.qrCodeCollection.InsertOne(ctx, qrCode)
	if err != nil {
		return fmt.Errorf("gagal membuat QR Code: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindQRCodeByValue(ctx context.Context, value string) (*models.QRCode, error) {
	var qrCode models.QRCode
	err := r.qrCodeCollection.FindOne(ctx, bson.M{"code": value}).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) FindActiveQRCodeByDate(ctx context.Context, date string) (*models.QRCode, error) {
	var qrCode models.QRCode
	filter := bson.M{
		"date":       date,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	err := r.qrCodeCollection.FindOne(ctx, filter, opts).Decode(&qrCode)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari QR Code aktif: %w", err)
	}
	return &qrCode, nil
}

func (r *attendanceRepository) MarkQRCodeAsUsed(ctx context.Context, qrCodeID primitive.ObjectID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": qrCodeID}
	update := bson.M{
		"$addToSet": bson.M{"used_by": userID},
	}

	_, err := r.qrCodeCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("gagal menandai QR Code sebagai sudah digunakan: %w", err)
	}
	return nil
}
