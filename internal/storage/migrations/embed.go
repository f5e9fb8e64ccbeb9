package migrations

import "embed"

// PostgresFS holds the staging zone DDL. Files apply in lexical order,
// so new migrations take the next numeric prefix.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

// ClickhouseFS holds the warehouse DDL, applied the same way.
//
//go:embed clickhouse/*.sql
var ClickhouseFS embed.FS
