package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dongju93/cocktail-maker/internal/infrastructure/mongodb"
)

// Repository provides document CRUD for one catalog kind.
// The kind names both the MongoDB collection and the image subdirectory.
type Repository struct {
	collection *mongo.Collection
	kind       Kind
}

// NewRepository creates a repository over the kind's collection.
func NewRepository(client *mongodb.Client, kind Kind) *Repository {
	return &Repository{
		collection: client.Collection(string(kind)),
		kind:       kind,
	}
}

// Kind returns the document kind this repository serves.
func (r *Repository) Kind() Kind {
	return r.kind
}

// Insert stores a new document and returns its ObjectID hex string.
func (r *Repository) Insert(ctx context.Context, doc any) (string, error) {
	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("inserting %s document: %w", r.kind, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type for %s document", r.kind)
	}
	return id.Hex(), nil
}

// GetByName fetches a single document by exact name match.
func (r *Repository) GetByName(ctx context.Context, name string) (bson.M, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching %s document: %w", r.kind, err)
	}

	stringifyID(doc)
	return doc, nil
}

// Search runs a filter with pagination, sorted by name ascending, and
// returns the envelope with total counts.
func (r *Repository) Search(ctx context.Context, filter bson.M, page Pagination) (*SearchResponse, error) {
	page = page.Normalise()

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting %s documents: %w", r.kind, err)
	}

	skip := int64(page.PageNumber-1) * int64(page.PageSize)

	cursor, err := r.collection.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(page.PageSize)),
	)
	if err != nil {
		return nil, fmt.Errorf("searching %s documents: %w", r.kind, err)
	}
	defer cursor.Close(ctx) //nolint:errcheck // Cursor cleanup

	items := make([]bson.M, 0, page.PageSize)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("reading %s search results: %w", r.kind, err)
	}

	for _, item := range items {
		stringifyID(item)
	}

	totalPages := int((total + int64(page.PageSize) - 1) / int64(page.PageSize))

	return &SearchResponse{
		TotalPage:       totalPages,
		CurrentPage:     page.PageNumber,
		TotalSize:       int(total),
		CurrentPageSize: len(items),
		Items:           items,
	}, nil
}

// Update replaces a document's fields by ObjectID hex string.
// The updated_at stamp is set here so callers cannot forget it.
func (r *Repository) Update(ctx context.Context, id string, doc any) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": doc, "$currentDate": bson.M{"updated_at": true}},
	)
	if err != nil {
		return fmt.Errorf("updating %s document: %w", r.kind, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a document by ObjectID hex string.
func (r *Repository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("deleting %s document: %w", r.kind, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetImagePaths writes saved image paths back into the document fields.
// No-op when paths is empty.
func (r *Repository) SetImagePaths(ctx context.Context, id string, paths map[string]string) error {
	if len(paths) == 0 {
		return nil
	}

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	fields := bson.M{"updated_at": time.Now().UTC()}
	for field, path := range paths {
		fields[field] = path
	}

	if _, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": fields},
	); err != nil {
		return fmt.Errorf("updating %s image paths: %w", r.kind, err)
	}
	return nil
}

// stringifyID converts the _id field to its hex string in place, so
// responses carry plain string identifiers.
func stringifyID(doc bson.M) {
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		doc["_id"] = id.Hex()
	}
}
