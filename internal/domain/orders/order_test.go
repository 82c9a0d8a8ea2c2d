package orders_test

import (
	"context"
	"testing"
	"time"

	"art-showcase/internal/domain/artworks"
	"art-showcase/internal/domain/orders"
	"art-showcase/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkPaidSellsArtwork(t *testing.T) {
	db := testutil.NewDB(t)
	store := orders.NewStore(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&artworks.Artwork{ID: "artwork-0001", Title: "Harbour", Artist: "Mara", Price: 2400, Year: 2019}).Error)
	require.NoError(t, store.Create(ctx, &orders.Order{ArtworkID: "artwork-0001", AmountEUR: 2400, StripeSessionID: "cs_test_1", Status: orders.StatusPending}))

	email := "buyer@example.com"
	paidAt := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	o, err := store.MarkPaid(ctx, "cs_test_1", &email, paidAt)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, o.Status)
	require.NotNil(t, o.CustomerEmail)
	assert.Equal(t, email, *o.CustomerEmail)

	var a artworks.Artwork
	require.NoError(t, db.First(&a, "id = ?", "artwork-0001").Error)
	assert.True(t, a.Sold)

	// replayed webhook
	again, err := store.MarkPaid(ctx, "cs_test_1", &email, paidAt)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusPaid, again.Status)
}

func TestMarkPaidConflictWhenAlreadySold(t *testing.T) {
	db := testutil.NewDB(t)
	store := orders.NewStore(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&artworks.Artwork{ID: "artwork-0002", Title: "Blue", Artist: "Tomas", Price: 650, Year: 2021, Sold: true}).Error)
	require.NoError(t, store.Create(ctx, &orders.Order{ArtworkID: "artwork-0002", AmountEUR: 650, StripeSessionID: "cs_test_2", Status: orders.StatusPending}))

	o, err := store.MarkPaid(ctx, "cs_test_2", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, orders.StatusConflict, o.Status)
}

func TestMarkPaidUnknownSession(t *testing.T) {
	store := orders.NewStore(testutil.NewDB(t))

	_, err := store.MarkPaid(context.Background(), "cs_missing", nil, time.Now())
	assert.ErrorIs(t, err, orders.ErrOrderNotFound)
}

func TestMarkExpiredOnlyTouchesPending(t *testing.T) {
	db := testutil.NewDB(t)
	store := orders.NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &orders.Order{ArtworkID: "artwork-0003", StripeSessionID: "cs_pending", Status: orders.StatusPending}))
	require.NoError(t, store.Create(ctx, &orders.Order{ArtworkID: "artwork-0003", StripeSessionID: "cs_paid", Status: orders.StatusPaid}))

	require.NoError(t, store.MarkExpired(ctx, "cs_pending"))
	require.NoError(t, store.MarkExpired(ctx, "cs_paid"))

	expired, err := store.List(ctx, orders.StatusExpired)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "cs_pending", expired[0].StripeSessionID)
}
