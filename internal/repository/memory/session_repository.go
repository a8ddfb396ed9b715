package memory

import (
	"time"

	"crm-insights-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// GetOrCreate returns the stored session, or starts and saves a fresh one
// under the given id.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	if sess, found := r.Get(sessionID); found {
		return sess
	}
	sess := store.NewSession(sessionID)
	r.Save(sess)
	return sess
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
