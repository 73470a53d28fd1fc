package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"campus-backend/model"
)

type PostStore interface {
	ListNewestFirst(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, post *model.Post) error
	ToggleLike(ctx context.Context, id bson.ObjectID, userEmail string) (liked bool, err error)
	AddComment(ctx context.Context, id bson.ObjectID, comment model.Comment) (matched bool, err error)
}

type PostRepository struct {
	Col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{Col: db.Collection("posts")}
}

func (r *PostRepository) ListNewestFirst(ctx context.Context) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.Col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []model.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	post.CreatedAt = time.Now().UTC()
	post.Likes = []string{}
	post.Comments = []model.Comment{}

	res, err := r.Col.InsertOne(ctx, post)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	post.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// ToggleLike removes userEmail from likes if present, otherwise appends it.
// Each step is a single guarded update: the removal only matches a document
// that contains the email, the insertion only one that does not. Concurrent
// toggles for the same user therefore cannot push a duplicate or lose a
// removal; there is no read-then-write window.
func (r *PostRepository) ToggleLike(ctx context.Context, id bson.ObjectID, userEmail string) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "likes": userEmail},
		bson.M{"$pull": bson.M{"likes": userEmail}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount > 0 {
		return false, nil
	}

	res, err = r.Col.UpdateOne(ctx,
		bson.M{"_id": id, "likes": bson.M{"$ne": userEmail}},
		bson.M{"$addToSet": bson.M{"likes": userEmail}},
	)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		// Neither guard matched: the post does not exist. (A concurrent
		// toggle cannot cause this; it would have satisfied one of the two
		// filters.)
		return false, ErrNotFound
	}
	return true, nil
}

// AddComment appends unconditionally and reports whether a post matched.
// Callers currently treat a zero match as success, per the API contract.
func (r *PostRepository) AddComment(ctx context.Context, id bson.ObjectID, comment model.Comment) (bool, error) {
	res, err := r.Col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
