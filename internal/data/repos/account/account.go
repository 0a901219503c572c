package account

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ElioenaiFerrari/grace-backend/internal/domain"
	"github.com/ElioenaiFerrari/grace-backend/internal/pkg/dbctx"
	pkgerrors "github.com/ElioenaiFerrari/grace-backend/internal/pkg/errors"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

type AccountRepo interface {
	// Create inserts a new account. The unique index on conversation_id is the
	// race-proof authority; a violation maps to ErrDuplicateConversation.
	Create(dbc dbctx.Context, row *domain.Account) error
	// Update writes the full record by id; ErrNotFound when no row matches.
	Update(dbc dbctx.Context, row *domain.Account) error
	// GetByConversationID returns (nil, nil) when no account exists.
	GetByConversationID(dbc dbctx.Context, conversationID int64) (*domain.Account, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, log *logger.Logger) AccountRepo {
	return &accountRepo{db: db, log: log.With("repo", "AccountRepo")}
}

func (r *accountRepo) Create(dbc dbctx.Context, row *domain.Account) error {
	if row == nil {
		return fmt.Errorf("missing account")
	}
	if row.ConversationID == 0 {
		return fmt.Errorf("missing conversation_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	if err := txx.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("account for conversation %d: %w", row.ConversationID, pkgerrors.ErrDuplicateConversation)
		}
		return err
	}
	return nil
}

func (r *accountRepo) Update(dbc dbctx.Context, row *domain.Account) error {
	if row == nil || row.ID == "" {
		return fmt.Errorf("missing account id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	row.UpdatedAt = time.Now().UTC()
	res := txx.WithContext(dbc.Ctx).
		Model(&domain.Account{}).
		Where("id = ?", row.ID).
		Select("first_name", "last_name", "verified", "did_onboarding", "last_location", "updated_at").
		Updates(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("account %s: %w", row.ID, pkgerrors.ErrNotFound)
	}
	return nil
}

func (r *accountRepo) GetByConversationID(dbc dbctx.Context, conversationID int64) (*domain.Account, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("missing conversation_id")
	}
	txx := dbc.Tx
	if txx == nil {
		txx = r.db
	}
	var row domain.Account
	err := txx.WithContext(dbc.Ctx).
		Where("conversation_id = ?", conversationID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
