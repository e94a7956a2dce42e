package comments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
)

func newBoard() (*Board, *clock.Fake) {
	fake := clock.NewFake(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewBoard(fake), fake
}

func TestListSeedsThread(t *testing.T) {
	b, _ := newBoard()

	got := b.List("reel")

	require.Len(t, got, 2)
	assert.True(t, got[0].Pinned)
	assert.Equal(t, "Recruiter Dave", got[0].Author)
	assert.Equal(t, 1, b.Threads())
}

func TestPostPrependsAndSorts(t *testing.T) {
	b, fake := newBoard()

	fake.Advance(time.Minute)
	first, err := b.Post("reel", "Ana", "https://a.example/a.png", "  Great pacing  ")
	require.NoError(t, err)
	fake.Advance(time.Minute)
	second, err := b.Post("reel", "", "", "Love it")
	require.NoError(t, err)

	assert.Equal(t, "Great pacing", first.Content)
	assert.Equal(t, DefaultAuthor, second.Author)
	assert.Equal(t, DefaultAvatar, second.Avatar)
	assert.Zero(t, second.LikeCount)
	assert.NotEqual(t, first.ID, second.ID)

	got := b.List("reel")
	require.Len(t, got, 4)
	assert.True(t, got[0].Pinned, "pinned comment stays on top")
	assert.Equal(t, second.ID, got[1].ID)
	assert.Equal(t, first.ID, got[2].ID)
	assert.Equal(t, "c2", got[3].ID)
}

func TestPostRejectsEmptyContent(t *testing.T) {
	b, _ := newBoard()

	_, err := b.Post("reel", "Ana", "", " \t")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Len(t, b.List("reel"), 2)
}

func TestThreadsAreIndependent(t *testing.T) {
	b, _ := newBoard()

	_, err := b.Post("a", "", "", "only on a")
	require.NoError(t, err)

	assert.Len(t, b.List("a"), 3)
	assert.Len(t, b.List("b"), 2)
}
