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

type PayrollRepository interface {
	CreatePayroll(ctx context.Context, payroll *models.Payroll) error
	FindPayrollByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error)
	FindPayrollsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Payroll, error)
	FindAllPayrolls(ctx context.Context) ([]models.Payroll, error)
	MarkPayrollPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) error
}

type payrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository() PayrollRepository {
	return &payrollRepository{
		collection: config.GetCollection(config.PayrollCollection),
	}
}

func (r *payrollRepository) CreatePayroll(ctx context.Context, payroll *models.Payroll) error {
	if payroll.ID.IsZero() {
		payroll.ID = primitive.NewObjectID()
	}
	payroll.CreatedAt = time.Now()
	payroll.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, payroll)
	if err != nil {
		return fmt.Errorf("gagal membuat payroll: %w", err)
	}
	return nil
}

func (r *payrollRepository) FindPayrollByID(ctx context.Context, id primitive.ObjectID) (*models.Payroll, error) {
	var payroll models.Payroll
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payroll)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan payroll berdasarkan ID: %w", err)
	}
	return &payroll, nil
}

func (r *payrollRepository) FindPayrollsByUserID(ctx context.Context, userID primitive.ObjectID) ([]models.Payroll, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "period_start", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mencari payroll berdasarkan user ID: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Payroll
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode daftar payroll: %w", err)
	}
	if len(results) == 0 {
		return []models.Payroll{}, nil
	}
	return results, nil
}

func (r *payrollRepository) FindAllPayrolls(ctx context.Context) ([]models.Payroll, error) {
	opts := options.Find().SetSort(bson.D{{Key: "period_start", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil daftar payroll: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Payroll
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode daftar payroll: %w", err)
	}
	if len(results) == 0 {
		return []models.Payroll{}, nil
	}
	return results, nil
}

func (r *payrollRepository) MarkPayrollPaid(ctx context.Context, id primitive.ObjectID, paidAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"status":     models.PayrollPaid,
			"paid_at":    paidAt,
			"updated_at": time.Now(),
		},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal menandai payroll sebagai dibayar: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payroll tidak ditemukan")
	}
	return nil
}
