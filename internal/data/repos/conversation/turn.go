package conversation

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/pkg/dbctx"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

type TurnRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Turn) error
	// ListRecent returns at most limit turns, created_at DESC. Callers needing
	// chronological order reverse the slice.
	ListRecent(dbc dbctx.Context, conversationID int64, limit int) ([]*domain.Turn, error)
}

type turnRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTurnRepo(db *gorm.DB, log *logger.Logger) TurnRepo {
	return &turnRepo{db: db, log: log.With("repo", "TurnRepo")}
}

func (r *turnRepo) Create(dbc dbctx.Context, rows []*domain.Turn) error {
	if len(rows) == 0 {
		return nil
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	return txx.WithContext(dbc.Ctx).Create(&rows).Error
}

func (r *turnRepo) ListRecent(dbc dbctx.Context, conversationID int64, limit int) ([]*domain.Turn, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("missing conversation_id")
	}
	if limit <= 0 || limit > 200 {
		limit = 10
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var out []*domain.Turn
	if err := txx.WithContext(dbc.Ctx).
		Model(&domain.Turn{}).
		Where("conversation_id = ?", conversationID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
