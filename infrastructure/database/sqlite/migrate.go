package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/vfg2006/crm-lite/infrastructure/database/sqlite/migrations"
	"github.com/vfg2006/crm-lite/pkg/log"
)

// CreateSchema aplica as migrações pendentes. Executar novamente não altera nada.
func (c *Connection) CreateSchema(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("erro ao carregar migrações: %w", err)
	}

	driver, err := sqlitemigrate.WithInstance(c.DB, &sqlitemigrate.Config{})
	if err != nil {
		return fmt.Errorf("erro ao inicializar driver de migração: %w", err)
	}

	// m.Close() fecharia a conexão compartilhada; apenas a origem é liberada
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		_ = source.Close()
		return fmt.Errorf("erro ao inicializar migrações: %w", err)
	}
	defer source.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.ForContext(ctx).Debug("Esquema já está atualizado")
			return nil
		}
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}

	version, _, _ := m.Version()
	log.ForContext(ctx).WithField("report_schema_version", version).Info("Esquema criado com sucesso")

	return nil
}
