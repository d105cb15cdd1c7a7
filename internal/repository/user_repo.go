package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fathima-sithara/account-service/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrOTPMismatch is returned by ConsumeOTP when no document matched the
	// conditional update: wrong code, expired code, or a concurrent consume
	// that won the race. Callers must not distinguish these.
	ErrOTPMismatch = errors.New("otp mismatch or expired")
)

// UserRepository is the credential store consumed by the auth core and the
// profile manager.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	ConsumeOTP(ctx context.Context, filter bson.M, code string, now time.Time, verifiedField string) (*models.User, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
}

type mongoUserRepo struct {
	col *mongo.Collection
}

func NewMongoUserRepo(db *mongo.Database, collection string) UserRepository {
	col := db.Collection(collection)
	// sparse uniqueness: absent fields never collide
	_, _ = col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	})
	return &mongoUserRepo{col: col}
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Role == "" {
		u.Role = "user"
	}
	_, err := r.col.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"phone": phone})
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetOTP overwrites the outstanding code and its expiry; any previous code
// becomes permanently invalid.
func (r *mongoUserRepo) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"otp":            code,
		"otp_expires_at": expiresAt.UTC(),
		"updated_at":     time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ConsumeOTP clears the code and optionally flips a verified flag in a single
// conditional update keyed on the stored code and its expiry. Two concurrent
// verifications of the same code cannot both succeed.
func (r *mongoUserRepo) ConsumeOTP(ctx context.Context, filter bson.M, code string, now time.Time, verifiedField string) (*models.User, error) {
	cond := bson.M{
		"otp":            code,
		"otp_expires_at": bson.M{"$gt": now.UTC()},
	}
	for k, v := range filter {
		cond[k] = v
	}
	set := bson.M{"updated_at": now.UTC()}
	if verifiedField != "" {
		set[verifiedField] = true
	}
	update := bson.M{
		"$set":   set,
		"$unset": bson.M{"otp": "", "otp_expires_at": ""},
	}

	var u models.User
	err := r.col.FindOneAndUpdate(ctx, cond, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOTPMismatch
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	set["updated_at"] = time.Now().UTC()
	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
