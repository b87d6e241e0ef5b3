package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jssgo/jss-edge/internal/domain/entities/layout"
)

func newTestStore(ttl time.Duration) (*LayoutsStore, *time.Time) {
	store := NewLayoutsStore(ttl)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return now }
	return store, &now
}

func TestLayoutsStoreGetSet(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	data := layout.EmptyLayoutData("en")

	_, ok := store.Get("jss", "/", "en")
	assert.False(t, ok)

	store.Set("jss", "/", "en", data)

	got, ok := store.Get("jss", "/", "EN")
	require.True(t, ok, "language keys are case-insensitive")
	assert.Same(t, data, got)

	_, ok = store.Get("other", "/", "en")
	assert.False(t, ok, "sites are isolated")
	_, ok = store.Get("jss", "/about", "en")
	assert.False(t, ok)
}

func TestLayoutsStoreExpiry(t *testing.T) {
	store, now := newTestStore(time.Minute)
	store.Set("jss", "/", "en", layout.EmptyLayoutData("en"))

	*now = now.Add(45 * time.Second)
	store.Set("jss", "/fresh", "en", layout.EmptyLayoutData("en"))

	*now = now.Add(30 * time.Second)
	_, ok := store.Get("jss", "/", "en")
	assert.False(t, ok)

	summary := store.Summary("jss")
	assert.Equal(t, 2, summary["entries"])
	assert.Equal(t, 1, summary["expired"])

	assert.Equal(t, 1, store.PurgeExpired("jss"))
	_, ok = store.Get("jss", "/fresh", "en")
	assert.True(t, ok)
}

func TestLayoutsStoreInvalidateSite(t *testing.T) {
	store, _ := newTestStore(time.Minute)
	store.Set("a", "/", "en", layout.EmptyLayoutData("en"))
	store.Set("a", "/x", "en", layout.EmptyLayoutData("en"))
	store.Set("b", "/", "en", layout.EmptyLayoutData("en"))

	assert.Equal(t, 2, store.InvalidateSite("a"))
	assert.Equal(t, 0, store.InvalidateSite("missing"))

	_, ok := store.Get("b", "/", "en")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, store.Sites())
	assert.Equal(t, 0, store.PurgeExpired("missing"))
	assert.Equal(t, 0, store.Summary("missing")["entries"])
}
