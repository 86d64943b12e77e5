package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inkroom/cms/internal/core/domain"
	"github.com/inkroom/cms/internal/core/ports"
)

// ArticleRepository implements ports.ArticleRepository using MongoDB.
type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type articleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	AuthorID  primitive.ObjectID `bson:"author_id"`
	Published bool               `bson:"is_published"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d *articleDoc) toDomain() *domain.Article {
	return &domain.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  d.AuthorID.Hex(),
		Published: d.Published,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) error {
	author, err := primitive.ObjectIDFromHex(a.AuthorID)
	if err != nil {
		return fmt.Errorf("insert article: invalid author id %q", a.AuthorID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := articleDoc{
		ID:        primitive.NewObjectID(),
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  author,
		Published: a.Published,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	a.ID = doc.ID.Hex()
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	oid, err := objectID(id, domain.ErrArticleNotFound)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc articleDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns articles matching filter, newest first. Filters on the author's
// role or username join the users collection.
func (r *ArticleRepository) List(ctx context.Context, f ports.ArticleFilter) ([]*domain.Article, error) {
	pipeline, ok := articlePipeline(f)
	if !ok {
		return []*domain.Article{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []articleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}

	articles := make([]*domain.Article, 0, len(docs))
	for i := range docs {
		articles = append(articles, docs[i].toDomain())
	}
	return articles, nil
}

// articlePipeline translates f into an aggregation. ok is false when f can
// match nothing, such as a malformed author id.
func articlePipeline(f ports.ArticleFilter) (mongo.Pipeline, bool) {
	match := bson.D{}
	if f.AuthorID != "" {
		author, err := primitive.ObjectIDFromHex(f.AuthorID)
		if err != nil {
			return nil, false
		}
		match = append(match, bson.E{Key: "author_id", Value: author})
	}
	if f.Published != nil {
		match = append(match, bson.E{Key: "is_published", Value: *f.Published})
	}

	pipeline := mongo.Pipeline{}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	if f.AuthorRole != "" || f.Search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "author_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "author"},
		}}})

		joined := bson.M{}
		if f.AuthorRole != "" {
			joined["author.role"] = string(f.AuthorRole)
		}
		if f.Search != "" {
			for k, v := range containsFold(f.Search, "title", "content", "author.username") {
				joined[k] = v
			}
		}
		pipeline = append(pipeline,
			bson.D{{Key: "$match", Value: joined}},
			bson.D{{Key: "$project", Value: bson.D{{Key: "author", Value: 0}}}},
		)
	}

	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}})
	return pipeline, true
}

// Update writes title, content, publication state and update time only, so
// author_id and created_at stay as inserted.
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) error {
	oid, err := objectID(a.ID, domain.ErrArticleNotFound)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"title":        a.Title,
		"content":      a.Content,
		"is_published": a.Published,
		"updated_at":   a.UpdatedAt,
	}}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}
