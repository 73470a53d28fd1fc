package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"campus-backend/dto"
	"campus-backend/model"
)

type CourseStore interface {
	List(ctx context.Context) ([]model.Course, error)
	Get(ctx context.Context, id bson.ObjectID) (*model.Course, error)
	Create(ctx context.Context, course *model.Course) error
	Update(ctx context.Context, id bson.ObjectID, upd dto.UpdateCourseDTO) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type CourseRepository struct {
	Col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{Col: db.Collection("courses")}
}

func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	cur, err := r.Col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	courses := []model.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CourseRepository) Get(ctx context.Context, id bson.ObjectID) (*model.Course, error) {
	var course model.Course
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *model.Course) error {
	course.CreatedAt = time.Now().UTC()
	res, err := r.Col.InsertOne(ctx, course)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	course.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

// Update applies merge semantics: only fields present in the request enter
// the $set document. updatedAt is stamped on every successful update.
func (r *CourseRepository) Update(ctx context.Context, id bson.ObjectID, upd dto.UpdateCourseDTO) error {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Instructor != nil {
		set["instructor"] = *upd.Instructor
	}
	if upd.Credits != nil {
		set["credits"] = *upd.Credits
	}

	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
