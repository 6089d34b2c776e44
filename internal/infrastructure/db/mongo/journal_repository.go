package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/journal-system/internal/core/domain"
	"github.com/99minutos/journal-system/internal/core/ports"
)

const collectionJournals = "journals"

type JournalRepository struct {
	col *mongo.Collection
	ids sequence
}

func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{col: db.Collection(collectionJournals), ids: newSequence(db, collectionJournals)}
}

// Create assigns the next journal id and inserts the document.
func (r *JournalRepository) Create(ctx context.Context, j *domain.Journal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.next(ctx)
	if err != nil {
		return err
	}
	j.ID = id

	if _, err := r.col.InsertOne(ctx, j); err != nil {
		return fmt.Errorf("insert journal: %w", err)
	}
	return nil
}

func (r *JournalRepository) FindByID(ctx context.Context, id int64) (*domain.Journal, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *JournalRepository) FindByIDAndOwner(ctx context.Context, id, ownerID int64) (*domain.Journal, error) {
	return r.findOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

// List returns one page sorted by created_at descending. OwnerID 0 lists every owner.
func (r *JournalRepository) List(ctx context.Context, filter ports.ListJournalsFilter) ([]*domain.Journal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OwnerID != 0 {
		query["owner_id"] = filter.OwnerID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count journals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Size)).
		SetLimit(int64(filter.Size))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find journals: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Journal, 0, filter.Size)
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode journals: %w", err)
	}
	return items, total, nil
}

func (r *JournalRepository) Update(ctx context.Context, j *domain.Journal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": j.ID},
		bson.M{"$set": bson.M{
			"title":      j.Title,
			"content":    j.Content,
			"updated_at": j.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update journal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJournalNotFound
	}
	return nil
}

func (r *JournalRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.deleteOne(ctx, bson.M{"_id": id})
}

func (r *JournalRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	return r.deleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
}

func (r *JournalRepository) findOne(ctx context.Context, filter bson.M) (*domain.Journal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var j domain.Journal
	if err := r.col.FindOne(ctx, filter).Decode(&j); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJournalNotFound
		}
		return nil, fmt.Errorf("find journal: %w", err)
	}
	return &j, nil
}

func (r *JournalRepository) deleteOne(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete journal: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJournalNotFound
	}
	return nil
}
