package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-cms/models"
)

// postDocument is a Post plus its index in the collection.
type postDocument struct {
	models.Post `bson:",inline"`
	Position    int `bson:"position"`
}

// MongoRepository stores one document per post and rebuilds the collection order
// from the position field.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	return &MongoRepository{col: db.Collection(collection)}
}

func (r *MongoRepository) Load(ctx context.Context) ([]models.Post, error) {
	cur, err := r.col.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return nil, storageErr("mongo find", err)
	}
	defer cur.Close(ctx)

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storageErr("mongo decode", err)
	}
	posts := make([]models.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.Post)
	}
	return posts, nil
}

// Save upserts every post with its new position, then drops documents whose id is
// no longer part of the collection.
func (r *MongoRepository) Save(ctx context.Context, posts []models.Post) error {
	ids := make([]string, 0, len(posts))
	writes := make([]mongo.WriteModel, 0, len(posts))
	for i, p := range posts {
		ids = append(ids, p.ID)
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(postDocument{Post: p, Position: i}).
			SetUpsert(true))
	}

	if len(writes) > 0 {
		if _, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
			return storageErr("mongo bulk write", err)
		}
	}
	if _, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$nin": ids}}); err != nil {
		return storageErr("mongo delete stale", err)
	}
	return nil
}
