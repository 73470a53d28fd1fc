package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"campus-backend/model"
)

type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, uid string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (created bool, err error)
	Update(ctx context.Context, uid string, name, role, image *string) error
	ConsumeVerificationToken(ctx context.Context, token string) error
}

type UserRepository struct {
	Col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{Col: db.Collection("users")}
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []model.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, uid string) (*model.User, error) {
	var user model.User
	err := r.Col.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts the user and reports created=false when the uid is already
// taken, leaving the existing document untouched. The duplicate is detected
// from the unique _id write error rather than a prior read, so two racing
// signups for the same uid cannot both insert.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (bool, error) {
	user.CreatedAt = time.Now().UTC()
	_, err := r.Col.InsertOne(ctx, user)
	if err == nil {
		return true, nil
	}
	var we mongo.WriteException
	if errors.As(err, &we) && len(we.WriteErrors) > 0 && we.WriteErrors[0].Code == 11000 {
		return false, nil
	}
	return false, fmt.Errorf("insert user: %w", err)
}

// Update merges only the provided fields; nil means "leave untouched".
func (r *UserRepository) Update(ctx context.Context, uid string, name, role, image *string) error {
	set := bson.M{}
	if name != nil {
		set["name"] = *name
	}
	if role != nil {
		set["role"] = *role
	}
	if image != nil {
		set["image"] = *image
	}
	if len(set) == 0 {
		// Nothing to apply; still report 404 for an unknown uid.
		if err := r.Col.FindOne(ctx, bson.M{"_id": uid}).Err(); err == mongo.ErrNoDocuments {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return nil
	}

	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeVerificationToken marks the owning user verified and removes the
// token in one update, so a token can only be consumed once.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) error {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"verificationToken": token},
		bson.M{
			"$set":   bson.M{"isVerified": true},
			"$unset": bson.M{"verificationToken": ""},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
