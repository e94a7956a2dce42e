// Package comments keeps the visitor comment thread of every record.
// Threads live in memory only.
package comments

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/showcase/internal/clock"
	"github.com/MrSnakeDoc/showcase/internal/domain"
	"github.com/MrSnakeDoc/showcase/internal/seed"
)

const (
	DefaultAuthor = "Guest User"
	DefaultAvatar = "https://ui-avatars.com/api/?name=Guest"
)

// Board holds one thread per record id. A thread is created on first use
// and starts with the default comments.
type Board struct {
	mu      sync.Mutex
	clock   clock.Clock
	threads map[string][]domain.Comment
}

// NewBoard creates an empty board.
func NewBoard(clk clock.Clock) *Board {
	if clk == nil {
		clk = clock.System{}
	}
	return &Board{
		clock:   clk,
		threads: make(map[string][]domain.Comment),
	}
}

// threadLocked returns the thread for recordID, seeding it if needed.
// Caller must hold b.mu.
func (b *Board) threadLocked(recordID string) []domain.Comment {
	thread, ok := b.threads[recordID]
	if !ok {
		thread = seed.DefaultComments(b.clock.Now())
		b.threads[recordID] = thread
	}
	return thread
}

// List returns the thread of recordID, pinned comments first and then
// newest first.
func (b *Board) List(recordID string) []domain.Comment {
	b.mu.Lock()
	out := slices.Clone(b.threadLocked(recordID))
	b.mu.Unlock()

	slices.SortStableFunc(out, func(a, c domain.Comment) int {
		if a.Pinned != c.Pinned {
			if a.Pinned {
				return -1
			}
			return 1
		}
		return cmp.Compare(c.Timestamp.UnixNano(), a.Timestamp.UnixNano())
	})
	return out
}

// Post prepends a comment to the thread. Blank author and avatar fall back
// to the guest defaults; blank content is rejected.
func (b *Board) Post(recordID, author, avatar, content string) (domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment is empty", domain.ErrValidation)
	}
	if strings.TrimSpace(author) == "" {
		author = DefaultAuthor
	}
	if strings.TrimSpace(avatar) == "" {
		avatar = DefaultAvatar
	}

	c := domain.Comment{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Author:    author,
		Avatar:    avatar,
		Content:   content,
		Timestamp: b.clock.Now(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.threads[recordID] = append([]domain.Comment{c}, b.threadLocked(recordID)...)
	return c, nil
}

// Threads returns how many threads have been opened.
func (b *Board) Threads() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.threads)
}
