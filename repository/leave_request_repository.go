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

type LeaveRequestRepository interface {
	CreateLeaveRequest(ctx context.Context, req *models.LeaveRequest) error
	FindLeaveRequestByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error)
	FindLeaveRequestsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error)
	FindAllLeaveRequests(ctx context.Context) ([]models.LeaveRequestWithUser, error)
	UpdateLeaveRequestStatus(ctx context.Context, id primitive.ObjectID, status, note string) error
	UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) error
	// FindApprovedLeaveCovering mencari cuti approved milik user yang
	// rentang tanggalnya (inklusif) memuat tanggal yang diberikan.
	FindApprovedLeaveCovering(ctx context.Context, userID primitive.ObjectID, date string) (*models.LeaveRequest, error)
	CountPendingRequests(ctx context.Context) (int64, error)
}

type leaveRequestRepository struct {
	collection *mongo.Collection
}

func NewLeaveRequestRepository() LeaveRequestRepository {
	return &leaveRequestRepository{
		collection: config.GetCollection(config.LeaveRequestCollection),
	}
}

func (r *leaveRequestRepository) CreateLeaveRequest(ctx context.Context, req *models.LeaveRequest) error {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("gagal membuat pengajuan cuti: %w", err)
	}
	return nil
}

func (r *leaveRequestRepository) FindLeaveRequestByID(ctx context.Context, id primitive.ObjectID) (*models.LeaveRequest, error) {
	var request models.LeaveRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan pengajuan berdasarkan ID: %w", err)
	}
	return &request, nil
}

func (r *leaveRequestRepository) FindLeaveRequestsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.LeaveRequest, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari pengajuan cuti berdasarkan user ID: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("gagal decode hasil pengajuan cuti: %w", err)
	}
	if len(requests) == 0 {
		return []models.LeaveRequest{}, nil
	}
	return requests, nil
}

func (r *leaveRequestRepository) FindAllLeaveRequests(ctx context.Context) ([]models.LeaveRequestWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user_info"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user_info"},
			{Key: "preserveNullAndEmptyArrays", Value: false},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "user_id", Value: 1},
			{Key: "request_type", Value: 1},
			{Key: "start_date", Value: 1},
			{Key: "end_date", Value: 1},
			{Key: "days", Value: 1},
			{Key: "reason", Value: 1},
			{Key: "status", Value: 1},
			{Key: "note", Value: 1},
			{Key: "attachment_url", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "user_name", Value: "$user_info.name"},
			{Key: "user_email", Value: "$user_info.email"},
			{Key: "user_photo", Value: "$user_info.photo"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal melakukan agregasi untuk pengajuan dengan detail user: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []models.LeaveRequestWithUser
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("gagal mendecode pengajuan dengan detail user: %w", err)
	}
	if len(requests) == 0 {
		return []models.LeaveRequestWithUser{}, nil
	}
	return requests, nil
}

func (r *leaveRequestRepository) UpdateLeaveRequestStatus(ctx context.Context, id primitive.ObjectID, status, note string) error {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"note":       note,
			"updated_at": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate status pengajuan: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("pengajuan tidak ditemukan")
	}
	return nil
}

func (r *leaveRequestRepository) UpdateAttachmentURL(ctx context.Context, id primitive.ObjectID, fileURL string) error {
	update := bson.M{"$set": bson.M{"attachment_url": fileURL, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate URL lampiran: %w", err)
	}
	return nil
}

func (r *leaveRequestRepository) FindApprovedLeaveCovering(ctx context.Context, userID primitive.ObjectID, date string) (*models.LeaveRequest, error) {
	// Tanggal disimpan sebagai string 2006-01-02 sehingga perbandingan
	// leksikografis sama dengan perbandingan kronologis.
	filter := bson.M{
		"user_id":    userID,
		"status":     models.LeaveApproved,
		"start_date": bson.M{"$lte": date},
		"end_date":   bson.M{"$gte": date},
	}

	var request models.LeaveRequest
	err := r.collection.FindOne(ctx, filter).Decode(&request)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal mencari cuti approved untuk tanggal %s: %w", date, err)
	}
	return &request, nil
}

func (r *leaveRequestRepository) CountPendingRequests(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"status": models.LeavePending})
	if err != nil {
		return 0, fmt.Errorf("gagal menghitung pengajuan tertunda: %w", err)
	}
	return count, nil
}
