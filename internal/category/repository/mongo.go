package repository

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "categories"

type categoryDocument struct {
	ID                 primitive.ObjectID       `bson:"_id,omitempty"`
	Name               string                   `bson:"name"`
	PriceConfiguration model.PriceConfiguration `bson:"priceConfiguration"`
	Attributes         []model.Attribute        `bson:"attributes"`
	CreatedAt          time.Time                `bson:"createdAt"`
	UpdatedAt          time.Time                `bson:"updatedAt"`
}

func (d *categoryDocument) toModel() *model.Category {
	return &model.Category{
		BaseModel: model.BaseModel{
			ID:        d.ID.Hex(),
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Name:               d.Name,
		PriceConfiguration: d.PriceConfiguration,
		Attributes:         d.Attributes,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes lists the indexes the categories collection expects.
func Indexes() []mongodb.Index {
	return []mongodb.Index{{
		Collection: CollectionName,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("category_name"),
		},
	}}
}

func (r *MongoRepository) Create(ctx context.Context, c *model.Category) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := categoryDocument{
		ID:                 primitive.NewObjectID(),
		Name:               c.Name,
		PriceConfiguration: c.PriceConfiguration,
		Attributes:         c.Attributes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	c.ID = doc.ID.Hex()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// not an ObjectID, so it cannot exist
		return nil, nil
	}
	var doc categoryDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []categoryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	categories := make([]model.Category, 0, len(docs))
	for i := range docs {
		categories = append(categories, *docs[i].toModel())
	}
	return categories, nil
}

func (r *MongoRepository) Update(ctx context.Context, c *model.Category) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil, nil
	}
	update := bson.M{"$set": bson.M{
		"name":               c.Name,
		"priceConfiguration": c.PriceConfiguration,
		"attributes":         c.Attributes,
		"updatedAt":          time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc categoryDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (*model.Category, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc categoryDocument
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}
