package repos

import (
	"gorm.io/gorm"

	"github.com/ElioenaiFerrari/grace-backend/internal/data/repos/account"
	"github.com/ElioenaiFerrari/grace-backend/internal/data/repos/conversation"
	"github.com/ElioenaiFerrari/grace-backend/internal/platform/logger"
)

type AccountRepo = account.AccountRepo
type TurnRepo = conversation.TurnRepo

type Set struct {
	Accounts AccountRepo
	Turns    TurnRepo
}

func Wire(db *gorm.DB, log *logger.Logger) Set {
	return Set{
		Accounts: account.NewAccountRepo(db, log),
		Turns:    conversation.NewTurnRepo(db, log),
	}
}
