package repository

import (
	"testing"

	"github.com/fekuna/textile-erp-service/internal/customer/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFilterNameJoinIgnoresCase(t *testing.T) {
	id := primitive.NewObjectID()
	filter := buildFilter(&dto.CustomerFilters{IDs: []primitive.ObjectID{id}, Names: []string{"Ali Traders", "a.b"}})

	and, ok := filter["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 1)
	anyOf := and[0].(bson.M)["$or"].(bson.A)
	require.Len(t, anyOf, 2)

	assert.Equal(t, bson.M{"_id": bson.M{"$in": []primitive.ObjectID{id}}}, anyOf[0])
	names := anyOf[1].(bson.M)["name"].(bson.M)["$in"].(bson.A)
	assert.Equal(t, bson.A{
		primitive.Regex{Pattern: `^Ali Traders$`, Options: "i"},
		primitive.Regex{Pattern: `^a\.b$`, Options: "i"},
	}, names)
}

func TestBuildFilterPlainFields(t *testing.T) {
	filter := buildFilter(&dto.CustomerFilters{Type: "retail", City: "Lahore"})
	assert.Equal(t, bson.M{"type": "retail", "city": "Lahore"}, filter)
}
