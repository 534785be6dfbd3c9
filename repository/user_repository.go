package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dayflow-backend/config"
	"dayflow-backend/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByLoginID(ctx context.Context, loginID string) (*models.User, error)
	FindAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUserProfile(ctx context.Context, id primitive.ObjectID, payload *models.UserUpdatePayload) error
	UpdateUserPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) error
	// SetUserStatus mengganti status kehadiran beserta kedua timestamp
	// check-in/check-out; nil berarti kolom dikosongkan.
	SetUserStatus(ctx context.Context, id primitive.ObjectID, status string, lastCheckIn, lastCheckOut *time.Time) error
	UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string, isFirstLogin bool) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	NextSerialNumber(ctx context.Context, year int, companyName string) (int, error)
	CountUsersByStatus(ctx context.Context, status string) (int64, error)
	DepartmentDistribution(ctx context.Context) ([]models.DepartmentCount, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository() UserRepository {
	return &userRepository{
		collection: config.GetCollection(config.UserCollection),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("email atau login ID sudah ada")
		}
		return fmt.Errorf("gagal membuat user: %w", err)
	}
	return nil
}

func (r *userRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan user berdasarkan ID: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan user berdasarkan email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindUserByLoginID(ctx context.Context, loginID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"login_id": loginID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("gagal menemukan user berdasarkan login ID: %w", err)
	}
	return &user, nil
}

func (r *userRepository) FindAllUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil daftar user: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("gagal decode daftar user: %w", err)
	}
	if len(users) == 0 {
		return []models.User{}, nil
	}
	return users, nil
}

func (r *userRepository) UpdateUserProfile(ctx context.Context, id primitive.ObjectID, payload *models.UserUpdatePayload) error {
	set := bson.M{"updated_at": time.Now()}
	if payload.Name != "" {
		set["name"] = payload.Name
	}
	if payload.Email != "" {
		set["email"] = payload.Email
	}
	if payload.Position != "" {
		set["position"] = payload.Position
	}
	if payload.Department != "" {
		set["department"] = payload.Department
	}
	if payload.BaseSalary != nil {
		set["base_salary"] = *payload.BaseSalary
	}
	if payload.Address != "" {
		set["address"] = payload.Address
	}
	if payload.Photo != "" {
		set["photo"] = payload.Photo
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("gagal mengupdate user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateUserPhoto(ctx context.Context, id primitive.ObjectID, photoURL string) error {
	update := bson.M{"$set": bson.M{"photo": photoURL, "updated_at": time.Now()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate foto user: %w", err)
	}
	return nil
}

func (r *userRepository) SetUserStatus(ctx context.Context, id primitive.ObjectID, status string, lastCheckIn, lastCheckOut *time.Time) error {
	set := bson.M{
		"current_status": status,
		"updated_at":     time.Now(),
	}
	unset := bson.M{}
	if lastCheckIn != nil {
		set["last_check_in"] = *lastCheckIn
	} else {
		unset["last_check_in"] = ""
	}
	if lastCheckOut != nil {
		set["last_check_out"] = *lastCheckOut
	} else {
		unset["last_check_out"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate status user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string, isFirstLogin bool) error {
	update := bson.M{"$set": bson.M{
		"password":       hashedPassword,
		"is_first_login": isFirstLogin,
		"updated_at":     time.Now(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("gagal mengupdate password user: %w", err)
	}
	return nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("gagal menghapus user: %w", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("user tidak ditemukan")
	}
	return nil
}

func (r *userRepository) NextSerialNumber(ctx context.Context, year int, companyName string) (int, error) {
	filter := bson.M{"join_year": year, "company_name": companyName}
	opts := options.FindOne().SetSort(bson.D{{Key: "serial_number", Value: -1}})

	var last models.User
	err := r.collection.FindOne(ctx, filter, opts).Decode(&last)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 1, nil
		}
		return 0, fmt.Errorf("gagal mencari serial number terakhir: %w", err)
	}
	return last.SerialNumber + 1, nil
}

func (r *userRepository) CountUsersByStatus(ctx context.Context, status string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"current_status": status})
	if err != nil {
		return 0, fmt.Errorf("gagal menghitung user berdasarkan status: %w", err)
	}
	return count, nil
}

func (r *userRepository) DepartmentDistribution(ctx context.Context) ([]models.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("gagal aggregation distribusi departemen: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.DepartmentCount
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("gagal decode distribusi departemen: %w", err)
	}
	if len(results) == 0 {
		return []models.DepartmentCount{}, nil
	}
	return results, nil
}
