package db

import "embed"

// Migrations holds the goose migrations of every supported driver, under
// migrations/<driver>.
//
//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var Migrations embed.FS
