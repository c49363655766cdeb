package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

func TestCreateAndLookup(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateInput{Name: "  Northwind ", Email: "ops@northwind.test"})
	require.NoError(t, err)
	assert.Equal(t, "Northwind", c.Name)

	_, err = svc.Create(ctx, CreateInput{Name: " "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	got, err := svc.Lookup(ctx, []primitive.ObjectID{c.ID, c.ID, primitive.NewObjectID(), primitive.NilObjectID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Northwind", got[c.ID].Name)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
