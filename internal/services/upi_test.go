package services

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
	"mtdstore-client/internal/store"
	"mtdstore-client/internal/utils"
)

func newUPIFixture(t *testing.T) (*apitest.Server, *store.Store, *UPIService) {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	client, err := api.NewClient(&config.Config{
		APIBaseURL:        srv.URL(),
		RequestTimeout:    5 * time.Second,
		RateLimitRequests: 100,
		RateLimitWindow:   time.Second,
	})
	require.NoError(t, err)
	st := store.New(client)
	return srv, st, NewUPIService(client, st)
}

func TestUPIRoundTrip(t *testing.T) {
	_, st, upi := newUPIFixture(t)
	st.SetIdentity(store.Identity{Username: "ramesh", Role: models.RoleSeller})

	current, err := upi.Current(context.Background())
	require.NoError(t, err)
	assert.Empty(t, current)

	require.NoError(t, upi.Update(context.Background(), "ramesh@okaxis"))

	current, err = upi.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ramesh@okaxis", current)
}

func TestUPIValidation(t *testing.T) {
	srv, st, upi := newUPIFixture(t)
	st.SetIdentity(store.Identity{Username: "ramesh", Role: models.RoleSeller})

	var vErr *utils.ValidationError
	assert.ErrorAs(t, upi.Update(context.Background(), ""), &vErr)
	assert.ErrorAs(t, upi.Update(context.Background(), "no-at-sign"), &vErr)
	assert.Equal(t, 0, srv.TotalRequests())
}

func TestUPIRequiresLogin(t *testing.T) {
	_, _, upi := newUPIFixture(t)

	var vErr *utils.ValidationError
	_, err := upi.Current(context.Background())
	assert.ErrorAs(t, err, &vErr)
	assert.ErrorAs(t, upi.Update(context.Background(), "ramesh@okaxis"), &vErr)
}
