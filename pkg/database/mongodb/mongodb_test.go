package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func nameIndex(coll string) Index {
	return Index{
		Collection: coll,
		Model: mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName(coll + "_name"),
		},
	}
}

func TestNewMongoRejectsEmptyURI(t *testing.T) {
	_, err := NewMongo(context.Background(), &Config{})
	assert.EqualError(t, err, "mongo connection uri is empty")
}

func TestEnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates every index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse())
		err := EnsureIndexes(context.Background(), mt.DB, []Index{nameIndex("categories"), nameIndex("toppings")})
		assert.NoError(mt, err)
	})

	mt.Run("existing index is fine", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "Index with name: categories_name already exists with different options",
		}))
		err := EnsureIndexes(context.Background(), mt.DB, []Index{nameIndex("categories")})
		assert.NoError(mt, err)
	})

	mt.Run("other failures surface", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))
		err := EnsureIndexes(context.Background(), mt.DB, []Index{nameIndex("toppings")})
		assert.ErrorContains(mt, err, "create index on toppings")
	})
}
