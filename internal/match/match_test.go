package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fixture-generator/internal/match"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"Items", "Itemz", 1},
		{"Status", "Stauts", 2},
		{"grüße", "grusse", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, match.Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, match.Levenshtein(tt.b, tt.a), "symmetric")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, match.Similarity("", ""), 1e-9)
	assert.InDelta(t, 1.0, match.Similarity("sku", "sku"), 1e-9)
	assert.InDelta(t, 0.8, match.Similarity("items", "itemz"), 1e-9)
	assert.InDelta(t, 0.0, match.Similarity("abc", "xyz"), 1e-9)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "customerid", match.Fold("CustomerID"))
	assert.Equal(t, "customerid", match.Fold("customer_id"))
	assert.Equal(t, "storeorder", match.Fold("store.Order"))
}

func TestRank(t *testing.T) {
	ranked := match.Rank("customerId", []string{"CreatedAt", "CustomerID", "Items", "Total"})

	assert.Equal(t, "CustomerID", ranked[0].Name)
	assert.InDelta(t, 1.0, ranked[0].Score, 1e-9)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}

	tied := match.Rank("X", []string{"B", "A", "C"})
	assert.Equal(t, "A", tied[0].Name, "equal scores are ordered by name")
}

func TestSuggest(t *testing.T) {
	names := []string{"Items", "ItemCount", "Status", "ShippedAt"}

	assert.Equal(t, []string{"Items"}, match.Suggest("Itemz", names, 1))
	assert.Contains(t, match.Suggest("Item", names, 3), "Items")
	assert.Empty(t, match.Suggest("Qwerty", names, 3))
	assert.Equal(t, []string{"store.Order"}, match.Suggest("store.Ordr", []string{"store.Order", "warehouse.Address"}, 3))
}
