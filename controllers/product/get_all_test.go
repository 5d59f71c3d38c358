package productcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortClause(t *testing.T) {
	assert.Equal(t, "price_cents ASC", sortClause("price_asc"))
	assert.Equal(t, "price_cents DESC", sortClause("price_desc"))
	assert.Equal(t, "created_at DESC", sortClause("new"))
	assert.Equal(t, "updated_at DESC", sortClause("featured"))

	// Anything unrecognized falls back to featured.
	assert.Equal(t, "updated_at DESC", sortClause("nonsense"))
}
