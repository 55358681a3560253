package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

// セッションの保存・取得の約束。
// Update はセッション単位で原子的に適用する（同一セッションへの同時リクエスト対策）。
type Store interface {
	Save(ctx context.Context, s *Session) error

	//期限切れ・未知のIDは ErrNotFound
	Get(ctx context.Context, sessionID string) (*Session, error)

	//読み→fn→書きを1操作として適用する。対象が無ければ ErrNotFound
	Update(ctx context.Context, sessionID string, fn func(s *Session) error) error

	Delete(ctx context.Context, sessionID string) error
}
