package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
)

func TestStoreServiceDefaultClosed(t *testing.T) {
	svc := services.NewStoreService(&fakeStoreRepo{})

	status, err := svc.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestStoreServiceSetStatus(t *testing.T) {
	repo := &fakeStoreRepo{status: models.StoreStatus{IsOpen: false}}
	svc := services.NewStoreService(repo)
	ctx := context.Background()

	opened, err := svc.SetStatus(ctx, true, "", "abrimos 9:00")
	require.NoError(t, err)
	assert.True(t, opened.IsOpen)
	assert.Equal(t, "abrimos 9:00", opened.Notes)
	assert.WithinDuration(t, time.Now(), opened.LastUpdated, time.Second)

	status, err := svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)

	closed, err := svc.SetStatus(ctx, false, "", "")
	require.NoError(t, err)
	assert.False(t, closed.IsOpen)

	status, err = svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.IsOpen, "read must reflect the most recent update")
}
