package session

import (
	"context"
	"sync"
	"time"
)

// インメモリのセッションストア。
// 単一プロセスの開発・テスト用。本番はRedis実装を使う。
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session

	stop chan struct{}
	once sync.Once
}

func NewMemoryStore() *MemoryStore {
	st := &MemoryStore{
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}

	//期限切れの掃除
	go st.sweep()

	return st
}

// 呼び出し側とストアでカート明細のスライスを共有しないよう、
// 出し入れは常にディープコピーする。
func copySession(s *Session) *Session {
	cp := *s
	cp.Cart.Lines = append([]CartLine(nil), s.Cart.Lines...)
	return &cp
}

func (st *MemoryStore) Save(ctx context.Context, s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sessions[s.ID] = copySession(s)
	return nil
}

func (st *MemoryStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[sessionID]
	if !ok || s.Expired(time.Now()) {
		return nil, ErrNotFound
	}

	return copySession(s), nil
}

// ロックを持ったまま読み→fn→書きするので、
// 同一セッションへの同時add/removeは直列化される。
// fnがエラーを返したら書き戻さない。
func (st *MemoryStore) Update(ctx context.Context, sessionID string, fn func(s *Session) error) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[sessionID]
	if !ok || s.Expired(time.Now()) {
		return ErrNotFound
	}

	cp := copySession(s)

	if err := fn(cp); err != nil {
		return err
	}

	st.sessions[sessionID] = cp
	return nil
}

func (st *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, sessionID)
	return nil
}

// Close は掃除goroutineを止める。
func (st *MemoryStore) Close() {
	st.once.Do(func() { close(st.stop) })
}

func (st *MemoryStore) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-st.stop:
			return
		case now := <-ticker.C:
			st.mu.Lock()
			for id, s := range st.sessions {
				if s.Expired(now) {
					delete(st.sessions, id)
				}
			}
			st.mu.Unlock()
		}
	}
}
