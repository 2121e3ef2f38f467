package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/momentum-app/momentum/models"
	"github.com/momentum-app/momentum/services"
)

type membershipKey struct {
	userID      uint
	challengeID uint
}

// MemoryStore implements services.Store in memory. Mutations hold a per-key
// mutex for the same serialization the MySQL store gets from row locks, and
// reads hand out deep copies so callers never share state with the store.
// It backs the unit tests.
type MemoryStore struct {
	mu sync.Mutex

	challenges      map[uint]models.Challenge
	memberships     map[membershipKey]models.ChallengeMembership
	membershipLocks map[membershipKey]*sync.Mutex
	posts           map[string]models.Post
	postLocks       map[string]*sync.Mutex
	postOrder       []string
	users           map[uint]string

	nextMembershipID uint
	nextCommentID    uint
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		challenges:      make(map[uint]models.Challenge),
		memberships:     make(map[membershipKey]models.ChallengeMembership),
		membershipLocks: make(map[membershipKey]*sync.Mutex),
		posts:           make(map[string]models.Post),
		postLocks:       make(map[string]*sync.Mutex),
		users:           make(map[uint]string),
	}
}

// AddChallenge seeds a challenge.
func (s *MemoryStore) AddChallenge(ch models.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges[ch.ID] = ch
}

// AddUser seeds a display name.
func (s *MemoryStore) AddUser(id uint, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = name
}

// GetChallenge loads one challenge by id.
func (s *MemoryStore) GetChallenge(ctx context.Context, id uint) (*models.Challenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.challenges[id]
	if !ok {
		return nil, services.ErrChallengeNotFound
	}
	return &ch, nil
}

// MutateMembership runs fn under the membership's key lock, creating the
// membership with a zero streak on first contact. Membership and event are
// committed together; a failing fn leaves both untouched.
func (s *MemoryStore) MutateMembership(ctx context.Context, userID, challengeID uint,
	fn func(m *models.ChallengeMembership) (*models.Post, error)) (*models.ChallengeMembership, *models.Post, error) {

	key := membershipKey{userID: userID, challengeID: challengeID}
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	work, ok := s.memberships[key]
	if !ok {
		s.nextMembershipID++
		work = models.ChallengeMembership{
			ID:          s.nextMembershipID,
			UserID:      userID,
			ChallengeID: challengeID,
		}
	}
	s.mu.Unlock()

	loaded := work
	post, err := fn(&work)
	if err != nil {
		return &loaded, nil, err
	}

	s.mu.Lock()
	s.memberships[key] = work
	if post != nil {
		s.posts[post.ID] = clonePost(post)
		s.postOrder = append(s.postOrder, post.ID)
	}
	s.mu.Unlock()

	result := work
	return &result, post, nil
}

// CreatePost stores a new post.
func (s *MemoryStore) CreatePost(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[post.ID]; exists {
		return services.ErrConflict
	}
	s.posts[post.ID] = clonePost(post)
	s.postOrder = append(s.postOrder, post.ID)
	return nil
}

// GetPost returns a deep copy of one post.
func (s *MemoryStore) GetPost(ctx context.Context, id string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, services.ErrPostNotFound
	}
	copied := clonePost(&post)
	return &copied, nil
}

// MutatePost runs fn under the post's key lock and stores the result.
func (s *MemoryStore) MutatePost(ctx context.Context, id string, fn func(p *models.Post) error) (*models.Post, error) {
	lock := s.postLock(id)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	post, ok := s.posts[id]
	s.mu.Unlock()
	if !ok {
		return nil, services.ErrPostNotFound
	}

	work := clonePost(&post)
	if err := fn(&work); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.posts[id] = clonePost(&work)
	s.mu.Unlock()
	return &work, nil
}

// AppendComment adds one comment to an existing post.
func (s *MemoryStore) AppendComment(ctx context.Context, postID string, c *models.Comment) error {
	lock := s.postLock(postID)
	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return services.ErrPostNotFound
	}
	s.nextCommentID++
	c.ID = s.nextCommentID
	c.PostID = postID
	post.Comments = append(post.Comments, *c)
	s.posts[postID] = post
	return nil
}

// ListPosts returns deep copies of all posts, newest first.
func (s *MemoryStore) ListPosts(ctx context.Context) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Post, 0, len(s.postOrder))
	for _, id := range s.postOrder {
		post := s.posts[id]
		out = append(out, clonePost(&post))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UserNames resolves seeded display names.
func (s *MemoryStore) UserNames(ctx context.Context, ids []uint) (map[uint]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make(map[uint]string)
	for _, id := range ids {
		if name, ok := s.users[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

func (s *MemoryStore) keyLock(key membershipKey) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.membershipLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.membershipLocks[key] = lock
	}
	return lock
}

func (s *MemoryStore) postLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.postLocks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.postLocks[id] = lock
	}
	return lock
}

func clonePost(p *models.Post) models.Post {
	copied := *p
	copied.Categories = append([]string(nil), p.Categories...)
	copied.Upvoters = append([]uint(nil), p.Upvoters...)
	copied.Downvoters = append([]uint(nil), p.Downvoters...)
	copied.Bookmarkers = append([]uint(nil), p.Bookmarkers...)
	copied.Comments = append([]models.Comment(nil), p.Comments...)
	return copied
}
