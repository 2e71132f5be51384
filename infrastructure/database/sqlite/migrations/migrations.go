package migrations

import "embed"

// FS contém os scripts de migração versionados do banco local
//
//go:embed *.sql
var FS embed.FS
