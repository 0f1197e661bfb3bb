package db

import (
	"context"
	"database/sql"

	"github.com/webchat-dev/webchat/internal/server/messages"
	"github.com/webchat-dev/webchat/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Messages() messages.Repository
	Close() error
}
