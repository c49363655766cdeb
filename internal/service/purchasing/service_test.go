package purchasing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/stockroom/internal/domain"
	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

func TestCreate_DefaultsAndValidation(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	po, err := svc.Create(ctx, CreateInput{PONumber: " PO-7 ", Supplier: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "PO-7", po.PONumber)
	assert.Equal(t, models.POOpen, po.Status)
	assert.False(t, po.ID.IsZero())

	_, err = svc.Create(ctx, CreateInput{Supplier: "Acme"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = svc.Create(ctx, CreateInput{PONumber: "PO-8", Supplier: "Acme", Status: "Lost"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestResolve_ByIDAndNumber(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateInput{PONumber: "PO-1", Supplier: "Acme"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateInput{PONumber: "PO-2", Supplier: "Globex"})
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, []string{a.ID.Hex(), "PO-2", "PO-2", "missing", ""})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "Acme", got[a.ID.Hex()].Supplier)
	assert.Equal(t, b.ID, got["PO-2"].ID)
	_, ok := got["missing"]
	assert.False(t, ok)
}

func TestResolve_Empty(t *testing.T) {
	got, err := NewService(memory.NewStore(), nil).Resolve(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
