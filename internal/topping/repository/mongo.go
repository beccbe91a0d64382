package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/topping/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "toppings"

type toppingDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Image     string             `bson:"image"`
	TenantID  string             `bson:"tenantId"`
	IsPublish bool               `bson:"isPublish"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *toppingDocument) toModel() *model.Topping {
	return &model.Topping{
		BaseModel: model.BaseModel{
			ID:        d.ID.Hex(),
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Name:      d.Name,
		Price:     d.Price,
		Image:     d.Image,
		TenantID:  d.TenantID,
		IsPublish: d.IsPublish,
	}
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Indexes lists the indexes the toppings collection expects. Every list
// query filters on tenantId.
func Indexes() []mongodb.Index {
	return []mongodb.Index{{
		Collection: CollectionName,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "tenantId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("topping_tenant"),
		},
	}}
}

func (r *MongoRepository) Create(ctx context.Context, t *model.Topping) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := toppingDocument{
		ID:        primitive.NewObjectID(),
		Name:      t.Name,
		Price:     t.Price,
		Image:     t.Image,
		TenantID:  t.TenantID,
		IsPublish: t.IsPublish,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	t.ID = doc.ID.Hex()
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

func (r *MongoRepository) FindByID(ctx context.Context, id string) (*model.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc toppingDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

type toppingFacet struct {
	Data  []toppingDocument `bson:"data"`
	Total []struct {
		Count int64 `bson:"count"`
	} `bson:"total"`
}

// FindAll returns one page of the tenant's toppings and the tenant's total
// count in a single aggregation.
func (r *MongoRepository) FindAll(ctx context.Context, filters *dto.ToppingFilters) ([]model.Topping, int64, error) {
	match := bson.M{"tenantId": filters.TenantID}
	if filters.Query != "" {
		match["name"] = bson.M{"$regex": regexp.QuoteMeta(filters.Query), "$options": "i"}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "data", Value: bson.A{
				bson.D{{Key: "$skip", Value: filters.Offset()}},
				bson.D{{Key: "$limit", Value: filters.Limit}},
			}},
			{Key: "total", Value: bson.A{
				bson.D{{Key: "$count", Value: "count"}},
			}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	var facets []toppingFacet
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, 0, err
	}

	toppings := []model.Topping{}
	var total int64
	if len(facets) > 0 {
		for i := range facets[0].Data {
			toppings = append(toppings, *facets[0].Data[i].toModel())
		}
		if len(facets[0].Total) > 0 {
			total = facets[0].Total[0].Count
		}
	}
	return toppings, total, nil
}

func (r *MongoRepository) Update(ctx context.Context, input *dto.UpdateToppingInput) (*model.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(input.ID)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC().Truncate(time.Millisecond)}
	if input.Name != nil {
		set["name"] = *input.Name
	}
	if input.Price != nil {
		set["price"] = *input.Price
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.TenantID != nil {
		set["tenantId"] = *input.TenantID
	}
	if input.IsPublish != nil {
		set["isPublish"] = *input.IsPublish
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc toppingDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) (*model.Topping, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var doc toppingDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return doc.toModel(), nil
}
