package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albumvault/fetchd/internal/domain"
)

// StoreTestSuite provides the interface for running store tests against different implementations
type StoreTestSuite struct {
	Store Store
	// InitDB should be called before each test to initialize the database
	InitDB func(t *testing.T) Store
	// CleanupDB should be called after each test to clean up the database
	CleanupDB func(t *testing.T)
}

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestItem creates a test item input
func buildTestItem(itemID string, tags ...string) UpsertItemInput {
	return UpsertItemInput{
		ItemID: itemID,
		Title:  fmt.Sprintf("Album %s", itemID),
		Tags:   tags,
	}
}

// seedItem upserts an item and fails the test on error
func seedItem(t *testing.T, store Store, itemID string, tags ...string) {
	t.Helper()
	_, err := store.UpsertItem(context.Background(), buildTestItem(itemID, tags...))
	require.NoError(t, err)
}

// seedRequester upserts a requester and fails the test on error
func seedRequester(t *testing.T, store Store, requesterID, name string) {
	t.Helper()
	_, err := store.UpsertRequester(context.Background(), requesterID, name)
	require.NoError(t, err)
}

// seedFetch records n fetch events for the pair and fails the test on error
func seedFetch(t *testing.T, store Store, itemID, requesterID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := store.RecordFetch(context.Background(), itemID, requesterID)
		require.NoError(t, err)
	}
}

// =============================================================================
// Test: UpsertItem / GetItem
// =============================================================================

func testUpsertItem(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates item on first sight", func(t *testing.T) {
		item, err := store.UpsertItem(ctx, buildTestItem("101", "jazz", "live"))
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "101", item.ItemID)
		assert.Equal(t, "Album 101", item.Title)
		assert.Equal(t, []string{"jazz", "live"}, item.TagList())
		assert.Equal(t, int64(0), item.FetchCount)
		assert.False(t, item.Blacklisted)
	})

	t.Run("refreshes title and tags without touching counters", func(t *testing.T) {
		seedItem(t, store, "102", "rock")
		seedRequester(t, store, "u1", "Alice")
		seedFetch(t, store, "102", "u1", 2)

		item, err := store.UpsertItem(ctx, UpsertItemInput{
			ItemID: "102",
			Title:  "Album 102 (Remaster)",
			Tags:   []string{"rock", "remaster"},
		})
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Album 102 (Remaster)", item.Title)
		assert.Equal(t, []string{"rock", "remaster"}, item.TagList())
		assert.Equal(t, int64(2), item.FetchCount)
	})

	t.Run("get returns nil for unknown item", func(t *testing.T) {
		item, err := store.GetItem(ctx, "no-such-item")
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

// =============================================================================
// Test: UpsertRequester / GetRequester
// =============================================================================

func testUpsertRequester(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates requester on first sight", func(t *testing.T) {
		requester, err := store.UpsertRequester(ctx, "u10", "Alice")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u10", requester.RequesterID)
		assert.Equal(t, "Alice", requester.DisplayName)
	})

	t.Run("refreshes display name on subsequent sight", func(t *testing.T) {
		seedRequester(t, store, "u11", "Old Name")

		requester, err := store.UpsertRequester(ctx, "u11", "New Name")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "New Name", requester.DisplayName)
	})

	t.Run("get returns nil for unknown requester", func(t *testing.T) {
		requester, err := store.GetRequester(ctx, "no-such-requester")
		require.NoError(t, err)
		assert.Nil(t, requester)
	})
}

// =============================================================================
// Test: RecordFetch
// =============================================================================

func testRecordFetch(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("event count and fetch count stay consistent", func(t *testing.T) {
		seedItem(t, store, "201")
		seedRequester(t, store, "u20", "Alice")
		seedRequester(t, store, "u21", "Bob")

		seedFetch(t, store, "201", "u20", 2)
		seedFetch(t, store, "201", "u21", 1)

		item, err := store.GetItem(ctx, "201")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, int64(3), item.FetchCount)

		count, err := store.CountFetchEvents(ctx, "201")
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("fails for unknown item", func(t *testing.T) {
		seedRequester(t, store, "u22", "Carol")

		// The store is reachable here, so the failure must not read as
		// a ledger outage
		_, err := store.RecordFetch(ctx, "no-such-item", "u22")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
		assert.Contains(t, err.Error(), "no-such-item")
	})

	t.Run("fails for unknown requester", func(t *testing.T) {
		seedItem(t, store, "202")

		_, err := store.RecordFetch(ctx, "202", "no-such-requester")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("rejects blacklisted item", func(t *testing.T) {
		seedItem(t, store, "203")
		seedRequester(t, store, "u23", "Dave")
		require.NoError(t, store.SetBlacklist(ctx, "203", true))

		_, err := store.RecordFetch(ctx, "203", "u23")
		require.Error(t, err)
		assert.Equal(t, domain.KindBlacklisted, domain.KindOf(err))

		// No event and no count increment from the rejected attempt
		count, err := store.CountFetchEvents(ctx, "203")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

// =============================================================================
// Test: SetBlacklist
// =============================================================================

func testSetBlacklist(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("flips flag on existing item", func(t *testing.T) {
		seedItem(t, store, "301")

		require.NoError(t, store.SetBlacklist(ctx, "301", true))
		item, err := store.GetItem(ctx, "301")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.True(t, item.Blacklisted)

		require.NoError(t, store.SetBlacklist(ctx, "301", false))
		item, err = store.GetItem(ctx, "301")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.False(t, item.Blacklisted)
	})

	t.Run("creates minimal record for unseen item", func(t *testing.T) {
		require.NoError(t, store.SetBlacklist(ctx, "302", true))

		item, err := store.GetItem(ctx, "302")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.True(t, item.Blacklisted)
		assert.Empty(t, item.Title)
		assert.Equal(t, int64(0), item.FetchCount)
	})

	t.Run("later upsert keeps the flag", func(t *testing.T) {
		require.NoError(t, store.SetBlacklist(ctx, "303", true))
		seedItem(t, store, "303", "pop")

		item, err := store.GetItem(ctx, "303")
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.True(t, item.Blacklisted)
		assert.Equal(t, "Album 303", item.Title)
	})
}

// =============================================================================
// Test: MostFetchedItem
// =============================================================================

func testMostFetchedItem(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil on empty ledger", func(t *testing.T) {
		item, err := store.MostFetchedItem(ctx)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("returns highest count", func(t *testing.T) {
		seedItem(t, store, "401")
		seedItem(t, store, "402")
		seedRequester(t, store, "u40", "Alice")
		seedFetch(t, store, "401", "u40", 1)
		seedFetch(t, store, "402", "u40", 3)

		item, err := store.MostFetchedItem(ctx)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "402", item.ItemID)
		assert.Equal(t, int64(3), item.FetchCount)
	})

	t.Run("ties break on lowest item ID", func(t *testing.T) {
		seedItem(t, store, "410")
		seedItem(t, store, "409")
		seedRequester(t, store, "u41", "Bob")
		seedFetch(t, store, "410", "u41", 4)
		seedFetch(t, store, "409", "u41", 4)

		item, err := store.MostFetchedItem(ctx)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "409", item.ItemID)
	})

	t.Run("ignores items never fetched", func(t *testing.T) {
		seedItem(t, store, "420")

		item, err := store.MostFetchedItem(ctx)
		require.NoError(t, err)
		if item != nil {
			assert.NotEqual(t, "420", item.ItemID)
		}
	})
}

// =============================================================================
// Test: MostFetchedRequester
// =============================================================================

func testMostFetchedRequester(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil on empty ledger", func(t *testing.T) {
		requester, err := store.MostFetchedRequester(ctx)
		require.NoError(t, err)
		assert.Nil(t, requester)
	})

	t.Run("returns requester with most events", func(t *testing.T) {
		seedItem(t, store, "501")
		seedRequester(t, store, "u50", "Alice")
		seedRequester(t, store, "u51", "Bob")
		seedFetch(t, store, "501", "u50", 2)
		seedFetch(t, store, "501", "u51", 5)

		requester, err := store.MostFetchedRequester(ctx)
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u51", requester.RequesterID)
	})

	t.Run("ties break on lowest requester ID", func(t *testing.T) {
		seedItem(t, store, "502")
		seedRequester(t, store, "u53", "Carol")
		seedRequester(t, store, "u52", "Dave")
		seedFetch(t, store, "502", "u53", 3)
		seedFetch(t, store, "502", "u52", 3)

		requester, err := store.MostFetchedRequester(ctx)
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u52", requester.RequesterID)
	})
}

// =============================================================================
// Test: FirstRequester / LastRequester
// =============================================================================

func testFirstLastRequester(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil when item has no events", func(t *testing.T) {
		seedItem(t, store, "601")

		first, err := store.FirstRequester(ctx, "601")
		require.NoError(t, err)
		assert.Nil(t, first)

		last, err := store.LastRequester(ctx, "601")
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("orders by event sequence", func(t *testing.T) {
		seedItem(t, store, "602")
		seedRequester(t, store, "u60", "Alice")
		seedRequester(t, store, "u61", "Bob")
		seedRequester(t, store, "u62", "Carol")

		seedFetch(t, store, "602", "u61", 1)
		seedFetch(t, store, "602", "u60", 1)
		seedFetch(t, store, "602", "u62", 1)

		first, err := store.FirstRequester(ctx, "602")
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "u61", first.RequesterID)

		last, err := store.LastRequester(ctx, "602")
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, "u62", last.RequesterID)
	})

	t.Run("same requester when only one event", func(t *testing.T) {
		seedItem(t, store, "603")
		seedRequester(t, store, "u63", "Dave")
		seedFetch(t, store, "603", "u63", 1)

		first, err := store.FirstRequester(ctx, "603")
		require.NoError(t, err)
		last, err := store.LastRequester(ctx, "603")
		require.NoError(t, err)
		require.NotNil(t, first)
		require.NotNil(t, last)
		assert.Equal(t, first.RequesterID, last.RequesterID)
	})

	t.Run("scoped to the queried item", func(t *testing.T) {
		seedItem(t, store, "604")
		seedItem(t, store, "605")
		seedRequester(t, store, "u64", "Eve")
		seedRequester(t, store, "u65", "Frank")
		seedFetch(t, store, "604", "u64", 1)
		seedFetch(t, store, "605", "u65", 1)

		first, err := store.FirstRequester(ctx, "605")
		require.NoError(t, err)
		require.NotNil(t, first)
		assert.Equal(t, "u65", first.RequesterID)
	})
}

// =============================================================================
// Test: TopRequesterByTag
// =============================================================================

func testTopRequesterByTag(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("returns nil when no item matches the tag", func(t *testing.T) {
		requester, err := store.TopRequesterByTag(ctx, "no-such-tag")
		require.NoError(t, err)
		assert.Nil(t, requester)
	})

	t.Run("counts only events on matching items", func(t *testing.T) {
		seedItem(t, store, "701", "jazz")
		seedItem(t, store, "702", "rock")
		seedRequester(t, store, "u70", "Alice")
		seedRequester(t, store, "u71", "Bob")

		// Bob leads overall but Alice leads within jazz
		seedFetch(t, store, "701", "u70", 2)
		seedFetch(t, store, "702", "u71", 5)

		requester, err := store.TopRequesterByTag(ctx, "jazz")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u70", requester.RequesterID)
	})

	t.Run("matches tag case-insensitively", func(t *testing.T) {
		seedItem(t, store, "703", "Electronic")
		seedRequester(t, store, "u72", "Carol")
		seedFetch(t, store, "703", "u72", 1)

		requester, err := store.TopRequesterByTag(ctx, "electronic")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u72", requester.RequesterID)
	})

	t.Run("ties break on lowest requester ID", func(t *testing.T) {
		seedItem(t, store, "704", "ambient")
		seedRequester(t, store, "u74", "Dave")
		seedRequester(t, store, "u73", "Eve")
		seedFetch(t, store, "704", "u74", 2)
		seedFetch(t, store, "704", "u73", 2)

		requester, err := store.TopRequesterByTag(ctx, "ambient")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u73", requester.RequesterID)
	})

	t.Run("treats pattern characters in the tag literally", func(t *testing.T) {
		seedItem(t, store, "705", "50_off")
		seedItem(t, store, "706", "50 off")
		seedRequester(t, store, "u75", "Frank")
		seedRequester(t, store, "u76", "Grace")

		// Grace leads overall; an unescaped underscore would count her
		// "50 off" events toward "50_off" too
		seedFetch(t, store, "705", "u75", 1)
		seedFetch(t, store, "706", "u76", 3)

		requester, err := store.TopRequesterByTag(ctx, "50_off")
		require.NoError(t, err)
		require.NotNil(t, requester)
		assert.Equal(t, "u75", requester.RequesterID)

		// A lone % must not match everything
		requester, err = store.TopRequesterByTag(ctx, "%")
		require.NoError(t, err)
		assert.Nil(t, requester)
	})
}

// =============================================================================
// Test: TopItems / CountFetchEvents
// =============================================================================

func testTopItems(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("orders by fetch count descending", func(t *testing.T) {
		seedItem(t, store, "801")
		seedItem(t, store, "802")
		seedItem(t, store, "803")
		seedRequester(t, store, "u80", "Alice")
		seedFetch(t, store, "801", "u80", 1)
		seedFetch(t, store, "802", "u80", 3)
		seedFetch(t, store, "803", "u80", 2)

		items, err := store.TopItems(ctx, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "802", items[0].ItemID)
		assert.Equal(t, "803", items[1].ItemID)
	})

	t.Run("skips items never fetched", func(t *testing.T) {
		seedItem(t, store, "804")

		items, err := store.TopItems(ctx, 100)
		require.NoError(t, err)
		for _, item := range items {
			assert.NotEqual(t, "804", item.ItemID)
		}
	})

	t.Run("count is zero for unknown item", func(t *testing.T) {
		count, err := store.CountFetchEvents(ctx, "no-such-item")
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

// =============================================================================
// Test runner
// =============================================================================

func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertItem", testUpsertItem},
		{"UpsertRequester", testUpsertRequester},
		{"RecordFetch", testRecordFetch},
		{"SetBlacklist", testSetBlacklist},
		{"MostFetchedItem", testMostFetchedItem},
		{"MostFetchedRequester", testMostFetchedRequester},
		{"FirstLastRequester", testFirstLastRequester},
		{"TopRequesterByTag", testTopRequesterByTag},
		{"TopItems", testTopItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
