package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesOnIdentityKey(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	item := Item{Slug: "oversized-hoodie-black", Qty: 1, Size: "M", Color: "#000000"}
	_, err := repo.Add(ctx, "sess-1", item)
	require.NoError(t, err)

	// Same (slug, size, color) collapses into one line.
	items, err := repo.Add(ctx, "sess-1", Item{Slug: "oversized-hoodie-black", Qty: 2, Size: "M", Color: "#000000"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Qty)

	// A different size is a new line.
	items, err = repo.Add(ctx, "sess-1", Item{Slug: "oversized-hoodie-black", Qty: 1, Size: "L", Color: "#000000"})
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, "sess-1", Item{Slug: "cargo-pants-olive", Qty: 1})
	require.NoError(t, err)

	items, err := repo.Read(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClearEmptiesCart(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, "sess-1", Item{Slug: "ribbed-top-mocha", Qty: 1})
	require.NoError(t, err)

	require.NoError(t, repo.Clear(ctx, "sess-1"))
	items, err := repo.Read(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestObserversSeeEveryMutation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	type notification struct {
		cartID string
		count  int
	}
	var seen []notification
	repo.Subscribe(func(cartID string, items []Item) {
		seen = append(seen, notification{cartID: cartID, count: len(items)})
	})

	_, err := repo.Add(ctx, "sess-1", Item{Slug: "puffer-jacket-chalk", Qty: 1})
	require.NoError(t, err)
	require.NoError(t, repo.Write(ctx, "sess-1", []Item{{Slug: "puffer-jacket-chalk", Qty: 2}}))
	require.NoError(t, repo.Clear(ctx, "sess-1"))

	require.Len(t, seen, 3)
	assert.Equal(t, notification{"sess-1", 1}, seen[0])
	assert.Equal(t, notification{"sess-1", 1}, seen[1])
	assert.Equal(t, notification{"sess-1", 0}, seen[2])
}

func TestReadReturnsACopy(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.Add(ctx, "sess-1", Item{Slug: "cargo-pants-olive", Qty: 1})
	require.NoError(t, err)

	items, err := repo.Read(ctx, "sess-1")
	require.NoError(t, err)
	items[0].Qty = 99

	again, err := repo.Read(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again[0].Qty)
}
