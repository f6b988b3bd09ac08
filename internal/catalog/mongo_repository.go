package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/nerkean/vuzlyk-do-vuzlyka-site/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) ProductRepository {
	return &mongoRepository{
		collection: db.Collection("products"),
	}
}

func (m *mongoRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

func (m *mongoRepository) Query(ctx context.Context, q ProductQuery, sort domain.SortOption, skip, limit int64) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(sortSpec(sort)).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, buildFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (m *mongoRepository) Count(ctx context.Context, q ProductQuery) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, buildFilter(q))
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (m *mongoRepository) FindFeatured(ctx context.Context, limit int64) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query featured products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (m *mongoRepository) FindSimilar(ctx context.Context, category, excludeID string, limit int64) ([]*domain.Product, error) {
	filter := bson.M{
		"category": category,
		"_id":      bson.M{"$ne": excludeID},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query similar products: %w", err)
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

func (m *mongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// buildFilter translates a ProductQuery into a conjunctive Mongo filter.
// Absent criteria add no clause at all.
func buildFilter(q ProductQuery) bson.M {
	filter := bson.M{}

	if q.PriceFrom != nil || q.PriceTo != nil {
		price := bson.M{}
		if q.PriceFrom != nil {
			price["$gte"] = *q.PriceFrom
		}
		if q.PriceTo != nil {
			price["$lte"] = *q.PriceTo
		}
		filter["price"] = price
	}

	if len(q.Statuses) > 0 {
		filter["status"] = bson.M{"$in": q.Statuses}
	}

	if len(q.Tags) > 0 {
		filter["tags"] = bson.M{"$in": q.Tags}
	}

	return filter
}

// sortSpec maps a sort option to a Mongo sort document. Every option is
// suffixed with created_at and _id tie-breakers so pagination stays stable
// when the primary key compares equal.
func sortSpec(sort domain.SortOption) bson.D {
	switch sort {
	case domain.SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	case domain.SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	default:
		// "newest" and the store default order are the same.
		return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
	}
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return products, nil
}
