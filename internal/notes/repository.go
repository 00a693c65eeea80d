package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pmaterna/apibase/pkg/mongo"
	"github.com/pmaterna/apibase/pkg/pagination"
	"github.com/pmaterna/apibase/pkg/services"
)

const collectionName = "notes"

type repo struct {
	registry *services.Registry
	logger   *slog.Logger
}

// New creates a mongo-backed note system. The connection is resolved from
// the registry per call, since async services become available only after
// application start.
func New(registry *services.Registry, logger *slog.Logger) System {
	return &repo{
		registry: registry,
		logger:   logger.With("system", "notes"),
	}
}

func (r *repo) collection() (*driver.Collection, error) {
	svc, err := services.Resolve[*mongo.Service](r.registry, mongo.ServiceName)
	if err != nil {
		return nil, err
	}
	return svc.Collection(collectionName), nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Note], error) {
	col, err := r.collection()
	if err != nil {
		return nil, err
	}

	filter := bson.D{}

	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count notes: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))
	if sort := mongo.SortDocument(page); sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer cursor.Close(ctx)

	var items []Note
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	result := pagination.NewPageResult(items, int(total), page.Page, page.Limit)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Note, error) {
	col, err := r.collection()
	if err != nil {
		return nil, err
	}

	var note Note
	err = col.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&note)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}

	return &note, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateNoteCommand) (*Note, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	col, err := r.collection()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := Note{
		ID:        uuid.New(),
		Title:     cmd.Title,
		Body:      cmd.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := col.InsertOne(ctx, note); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	r.logger.Info("note created", "id", note.ID, "title", note.Title)
	return &note, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateNoteCommand) (*Note, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	col, err := r.collection()
	if err != nil {
		return nil, err
	}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: cmd.Title},
		{Key: "body", Value: cmd.Body},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note Note
	err = col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, opts).Decode(&note)
	if errors.Is(err, driver.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	r.logger.Info("note updated", "id", note.ID)
	return &note, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	col, err := r.collection()
	if err != nil {
		return err
	}

	result, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}

	r.logger.Info("note deleted", "id", id)
	return nil
}
