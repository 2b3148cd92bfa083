package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

const sweetsCollection = "sweets"

// SweetRepository implements ports.SweetRepository on MongoDB.
//
// Case-insensitive name uniqueness is backed by a stored name_lower field
// carrying a unique index; lookups by name go through it.
type SweetRepository struct {
	coll *mongo.Collection
}

func NewSweetRepository(db *mongo.Database) *SweetRepository {
	return &SweetRepository{coll: db.Collection(sweetsCollection)}
}

type mongoSweet struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	NameLower   string             `bson:"name_lower"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	Quantity    int                `bson:"quantity"`
	Description string             `bson:"description,omitempty"`
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (r *SweetRepository) Create(ctx context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	doc := mongoSweet{
		Name:        s.Name,
		NameLower:   strings.ToLower(s.Name),
		Category:    string(s.Category),
		Price:       s.Price,
		Quantity:    s.Quantity,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(s.CreatedBy); err == nil {
		doc.CreatedBy = oid
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("insert sweet: %w", err)
	}

	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *SweetRepository) FindByID(ctx context.Context, id string) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *SweetRepository) FindByName(ctx context.Context, name string) (*domain.Sweet, error) {
	return r.findOne(ctx, bson.M{"name_lower": strings.ToLower(name)})
}

func (r *SweetRepository) List(ctx context.Context, page, limit int) ([]*domain.Sweet, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count sweets: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	items, err := r.findMany(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *SweetRepository) Search(ctx context.Context, filter ports.SearchSweetsFilter) ([]*domain.Sweet, error) {
	query := bson.M{}

	if filter.Name != "" {
		query["name"] = bson.M{"$regex": regexp.QuoteMeta(filter.Name), "$options": "i"}
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.HasMinPrice || filter.HasMaxPrice {
		price := bson.M{}
		if filter.HasMinPrice {
			price["$gte"] = filter.MinPrice
		}
		if filter.HasMaxPrice {
			price["$lte"] = filter.MaxPrice
		}
		query["price"] = price
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.findMany(ctx, query, opts)
}

func (r *SweetRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	if name, ok := fields["name"].(string); ok {
		set["name_lower"] = strings.ToLower(name)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var ms mongoSweet
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("update sweet: %w", err)
	}
	return toDomainSweet(&ms), nil
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete sweet: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSweetNotFound
	}
	return nil
}

// DecrementQuantity subtracts qty guarded by quantity >= qty so the counter
// can never go negative, even under concurrent purchases.
func (r *SweetRepository) DecrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	filter := bson.M{"_id": oid, "quantity": bson.M{"$gte": qty}}
	update := bson.M{
		"$inc": bson.M{"quantity": -qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	return r.findOneAndUpdate(ctx, filter, update)
}

// IncrementQuantity adds qty unconditionally.
func (r *SweetRepository) IncrementQuantity(ctx context.Context, id string, qty int) (*domain.Sweet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	update := bson.M{
		"$inc": bson.M{"quantity": qty},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}

	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

func (r *SweetRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Sweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "quantity", Value: 1}})
	return r.findMany(ctx, bson.M{"quantity": bson.M{"$lte": threshold}}, opts)
}

// EnsureIndexes creates the catalog indexes, including the unique
// case-insensitive name index.
func (r *SweetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name_lower", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "quantity", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *SweetRepository) findOne(ctx context.Context, filter bson.M) (*domain.Sweet, error) {
	var ms mongoSweet
	if err := r.coll.FindOne(ctx, filter).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("find sweet: %w", err)
	}
	return toDomainSweet(&ms), nil
}

func (r *SweetRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.Sweet, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ms mongoSweet
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ms)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSweetNotFound
		}
		return nil, fmt.Errorf("update sweet quantity: %w", err)
	}
	return toDomainSweet(&ms), nil
}

func (r *SweetRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Sweet, error) {
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find sweets: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*domain.Sweet
	for cursor.Next(ctx) {
		var ms mongoSweet
		if err := cursor.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode sweet: %w", err)
		}
		items = append(items, toDomainSweet(&ms))
	}
	return items, cursor.Err()
}

func toDomainSweet(ms *mongoSweet) *domain.Sweet {
	s := &domain.Sweet{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		Category:    domain.Category(ms.Category),
		Price:       ms.Price,
		Quantity:    ms.Quantity,
		Description: ms.Description,
		CreatedAt:   ms.CreatedAt.UTC(),
		UpdatedAt:   ms.UpdatedAt.UTC(),
	}
	if !ms.CreatedBy.IsZero() {
		s.CreatedBy = ms.CreatedBy.Hex()
	}
	return s
}
