package mongodb

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

type priced struct {
	UnitPrice decimal.Decimal `bson:"unitPrice"`
}

func TestDecimalCodec_RoundTrip(t *testing.T) {
	reg := NewRegistry()

	raw, err := bson.MarshalWithRegistry(reg, priced{UnitPrice: decimal.RequireFromString("12.345")})
	require.NoError(t, err)
	assert.Equal(t, bsontype.Decimal128, bson.Raw(raw).Lookup("unitPrice").Type)

	var out priced
	require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
	assert.True(t, decimal.RequireFromString("12.345").Equal(out.UnitPrice))
}

func TestDecimalCodec_DecodesLegacyNumbers(t *testing.T) {
	reg := NewRegistry()

	for name, doc := range map[string]bson.D{
		"double": {{Key: "unitPrice", Value: 2.5}},
		"int32":  {{Key: "unitPrice", Value: int32(3)}},
		"string": {{Key: "unitPrice", Value: "4.75"}},
	} {
		t.Run(name, func(t *testing.T) {
			raw, err := bson.Marshal(doc)
			require.NoError(t, err)

			var out priced
			require.NoError(t, bson.UnmarshalWithRegistry(reg, raw, &out))
			assert.True(t, out.UnitPrice.GreaterThan(decimal.Zero))
		})
	}
}
