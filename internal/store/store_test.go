package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtdstore-client/config"
	"mtdstore-client/internal/api"
	"mtdstore-client/internal/apitest"
	"mtdstore-client/internal/models"
)

func newTestStore(t *testing.T, srv *apitest.Server) *Store {
	t.Helper()
	client, err := api.NewClient(&config.Config{
		APIBaseURL:        srv.URL(),
		RequestTimeout:    5 * time.Second,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Second,
	})
	require.NoError(t, err)
	return New(client)
}

func TestRefreshReplacesWholesale(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedProducts(
		models.Product{ID: 1, Name: "Tomatoes", Quantity: 100},
		models.Product{ID: 2, Name: "Onions", Quantity: 50},
	)

	st := newTestStore(t, srv)
	require.NoError(t, st.RefreshProducts(context.Background()))
	assert.Len(t, st.Products(), 2)

	// A product disappearing server-side must disappear locally too;
	// the mirror is replaced, never merged.
	srv.SeedProducts(models.Product{ID: 2, Name: "Onions", Quantity: 45})
	require.NoError(t, st.RefreshProducts(context.Background()))

	products := st.Products()
	require.Len(t, products, 1)
	assert.Equal(t, 2, products[0].ID)

	_, found := st.ProductByID(1)
	assert.False(t, found)
}

func TestSnapshotsAreCopies(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedProducts(models.Product{ID: 1, Name: "Tomatoes", Quantity: 100})

	st := newTestStore(t, srv)
	require.NoError(t, st.RefreshProducts(context.Background()))

	snapshot := st.Products()
	snapshot[0].Name = "mutated"

	fresh := st.Products()
	assert.Equal(t, "Tomatoes", fresh[0].Name)
}

func TestRefreshAllFetchesBothMirrors(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedProducts(models.Product{ID: 1, Name: "Tomatoes", Quantity: 100})
	srv.SeedOrders(models.Order{ID: 100, ProductID: 1, Buyer: "alice"})

	st := newTestStore(t, srv)
	require.NoError(t, st.RefreshAll(context.Background()))
	assert.Len(t, st.Products(), 1)
	assert.Len(t, st.Orders(), 1)
}

func TestRefreshErrorLeavesMirrorIntact(t *testing.T) {
	srv := apitest.New()
	srv.SeedProducts(models.Product{ID: 1, Name: "Tomatoes", Quantity: 100})

	st := newTestStore(t, srv)
	require.NoError(t, st.RefreshProducts(context.Background()))
	srv.Close()

	err := st.RefreshProducts(context.Background())
	require.Error(t, err)
	assert.Len(t, st.Products(), 1)
}

func TestDraftSlot(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	st := newTestStore(t, srv)

	_, ok := st.Draft()
	assert.False(t, ok)

	st.SetDraft(Draft{Product: models.Product{ID: 7, Price: 50}, Quantity: 3})
	draft, ok := st.Draft()
	require.True(t, ok)
	assert.Equal(t, 150.0, draft.Total())

	st.ClearDraft()
	_, ok = st.Draft()
	assert.False(t, ok)
}

func TestClearSessionWipesEverything(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.SeedProducts(models.Product{ID: 1, Name: "Tomatoes", Quantity: 100})
	srv.SeedOrders(models.Order{ID: 100, ProductID: 1})

	st := newTestStore(t, srv)
	require.NoError(t, st.RefreshAll(context.Background()))
	st.SetIdentity(Identity{Username: "alice", Role: models.RoleBuyer})
	st.SetDraft(Draft{Product: models.Product{ID: 1}, Quantity: 2})

	st.ClearSession()

	_, ok := st.Identity()
	assert.False(t, ok)
	_, ok = st.Draft()
	assert.False(t, ok)
	assert.Empty(t, st.Products())
	assert.Empty(t, st.Orders())
}
