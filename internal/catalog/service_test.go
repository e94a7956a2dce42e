package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/store"
)

func newService(t *testing.T) (*Service, *clock.Fake) {
	t.Helper()
	fake := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s := newLoadedStore(t, store.NewMemory(resourceName))
	return NewService(s, fake, DefaultLatency()), fake
}

func TestServiceAppliesPerOperationLatency(t *testing.T) {
	ctx := context.Background()
	svc, fake := newService(t)

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, _, err = svc.Get(ctx, "subtitle-studio")
	require.NoError(t, err)
	require.NoError(t, svc.Save(ctx, validRecord("n", "N")))
	require.NoError(t, svc.Delete(ctx, "n"))

	assert.Equal(t, []time.Duration{
		300 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		300 * time.Millisecond,
	}, fake.Sleeps())
}

func TestServiceDelegatesToStore(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	require.NoError(t, svc.Save(ctx, validRecord("new1", "X")))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, svc.Store().List(), list)
	assert.Equal(t, "X", list[0].Title)

	r, ok, err := svc.Get(ctx, "new1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "X", r.Title)

	_, ok, err = svc.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.Save(ctx, domain.Record{ID: "bad"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestServiceCancelledContextSkipsStore(t *testing.T) {
	svc, _ := newService(t)
	before := svc.Store().List()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Save(ctx, validRecord("late", "Late"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, svc.Store().List())
}

func TestServiceSearch(t *testing.T) {
	svc, _ := newService(t)

	got, err := svc.Search(context.Background(), "ElevenLabs", domain.CategoryAll)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "viral-animal-welfare", got[0].Record.ID)

	got, err = svc.Search(context.Background(), "ElevenLabs", domain.CategoryWebApps)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestServiceCategoriesDoesNotWait(t *testing.T) {
	svc, fake := newService(t)

	assert.Len(t, svc.Categories(), 5)
	assert.Empty(t, fake.Sleeps())
}
