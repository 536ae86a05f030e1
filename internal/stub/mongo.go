package stub

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoDatabase is the database the stub keeps its fixtures in.
const mongoDatabase = "newshub"

// MongoStore serves the stub endpoints from a MongoDB instance, letting
// several stub processes share one fixture set.
type MongoStore struct {
	client     *mongo.Client
	categories *mongo.Collection
	articles   *mongo.Collection
	tickers    *mongo.Collection
}

// NewMongoStore connects to the MongoDB instance at uri and verifies the
// connection with a ping.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(mongoDatabase)
	return &MongoStore{
		client:     client,
		categories: db.Collection("categories"),
		articles:   db.Collection("articles"),
		tickers:    db.Collection("tickers"),
	}, nil
}

// EnsureSeed inserts the fixture documents into any collection that is
// still empty. Existing data is left alone.
func (s *MongoStore) EnsureSeed(ctx context.Context) error {
	if err := seedCollection(ctx, s.categories, toDocs(seedCategories())); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if err := seedCollection(ctx, s.articles, toDocs(seedArticles())); err != nil {
		return fmt.Errorf("seed articles: %w", err)
	}
	if err := seedCollection(ctx, s.tickers, toDocs(seedTickers())); err != nil {
		return fmt.Errorf("seed tickers: %w", err)
	}
	return nil
}

func seedCollection(ctx context.Context, coll *mongo.Collection, docs []any) error {
	n, err := coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = coll.InsertMany(ctx, docs)
	return err
}

func toDocs[T any](items []T) []any {
	docs := make([]any, len(items))
	for i, item := range items {
		docs[i] = item
	}
	return docs
}

// Categories returns every category.
func (s *MongoStore) Categories(ctx context.Context) ([]Category, error) {
	cur, err := s.categories.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "slug", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []Category
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryBySlug returns the category with the given slug.
func (s *MongoStore) CategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	err := s.categories.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Articles returns one page of the feed matching the filter.
func (s *MongoStore) Articles(ctx context.Context, f ArticleFilter) ([]Article, int, error) {
	filter := bson.D{}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Featured != nil {
		filter = append(filter, bson.E{Key: "featured", Value: *f.Featured})
	}
	if f.Query != "" {
		regex := bson.D{{Key: "$regex", Value: f.Query}, {Key: "$options", Value: "i"}}
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: regex}},
			bson.D{{Key: "summary", Value: regex}},
		}})
	}

	total, err := s.articles.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	cur, err := s.articles.Find(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}}).
		SetSkip(int64((page-1)*limit)).
		SetLimit(int64(limit)))
	if err != nil {
		return nil, 0, err
	}
	out := []Article{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, int(total), nil
}

// ArticleBySlug returns the article with the given slug.
func (s *MongoStore) ArticleBySlug(ctx context.Context, slug string) (*Article, error) {
	var a Article
	err := s.articles.FindOne(ctx, bson.D{{Key: "slug", Value: slug}}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Trending returns up to limit articles ordered by view count.
func (s *MongoStore) Trending(ctx context.Context, limit int) ([]Article, error) {
	opts := options.Find().SetSort(bson.D{{Key: "views", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(int64(limit))
	}
	cur, err := s.articles.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	out := []Article{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveTickers returns the tickers flagged active.
func (s *MongoStore) ActiveTickers(ctx context.Context) ([]Ticker, error) {
	cur, err := s.tickers.Find(ctx, bson.D{{Key: "active", Value: true}},
		options.Find().SetSort(bson.D{{Key: "symbol", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []Ticker{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
