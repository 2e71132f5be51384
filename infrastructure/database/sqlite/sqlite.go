package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/crm-lite/internal/config"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Connection é o handle único do armazenamento local, injetado nos repositórios
type Connection struct {
	*sql.DB
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, fmt.Errorf("caminho do banco de dados é obrigatório")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
		}
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = config.BuildDSN(cfg.Path, cfg.BusyTimeoutMS)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir sqlite: %w", err)
	}

	// Um único usuário e um único escritor
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao testar conexão com sqlite: %w", err)
	}

	conn := &Connection{DB: db}
	if err := conn.ensureForeignKeysEnabled(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logrus.WithField("path", cfg.Path).Debug("Conexão com SQLite estabelecida")

	return conn, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

func (c *Connection) ensureForeignKeysEnabled(ctx context.Context) error {
	var enabled int
	if err := c.DB.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("erro ao verificar pragma foreign_keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("chaves estrangeiras desabilitadas no sqlite")
	}
	return nil
}

// RunInTransaction executa fn em uma transação, com rollback em erro ou panic
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w: rollback: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

// IsUniqueViolation verifica se o erro é uma violação de UNIQUE
func IsUniqueViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// IsForeignKeyViolation verifica se o erro é uma violação de chave estrangeira
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

// IsCheckViolation verifica se o erro é uma violação de CHECK ou NOT NULL
func IsCheckViolation(err error) bool {
	return hasCode(err, sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL)
}

func hasCode(err error, codes ...int) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}
