package repository

import (
	"context"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// QuotesRepository stores the calculation history.
type QuotesRepository struct {
	collection *mongo.Collection
}

// NewQuotesRepository creates a new quotes repository.
func NewQuotesRepository(db *MongoDB) *QuotesRepository {
	return &QuotesRepository{
		collection: db.Quotes,
	}
}

// Create inserts a quote record.
func (r *QuotesRepository) Create(ctx context.Context, record *model.QuoteRecord) error {
	prepareRecord(record)
	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// CreateMany inserts quote records in bulk.
func (r *QuotesRepository) CreateMany(ctx context.Context, records []*model.QuoteRecord) error {
	if len(records) == 0 {
		return nil
	}

	docs := make([]interface{}, len(records))
	for i, record := range records {
		prepareRecord(record)
		docs[i] = record
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

func prepareRecord(record *model.QuoteRecord) {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}
}

// Query returns quote records matching opts, newest first.
func (r *QuotesRepository) Query(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if opts.Limit > 0 {
		findOptions.SetLimit(int64(opts.Limit))
	}
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, quoteFilter(opts), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	records := make([]*model.QuoteRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Count returns the number of quote records matching opts. Limit and Skip are ignored.
func (r *QuotesRepository) Count(ctx context.Context, opts model.QuoteQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, quoteFilter(opts))
}

func quoteFilter(opts model.QuoteQueryOptions) bson.M {
	filter := bson.M{}

	if opts.ProductID != "" {
		filter["product_id"] = opts.ProductID
	}
	if opts.Zone != 0 {
		filter["zone"] = opts.Zone
	}
	if opts.StartTime != nil || opts.EndTime != nil {
		timeFilter := bson.M{}
		if opts.StartTime != nil {
			timeFilter["$gte"] = *opts.StartTime
		}
		if opts.EndTime != nil {
			timeFilter["$lte"] = *opts.EndTime
		}
		filter["timestamp"] = timeFilter
	}

	return filter
}
