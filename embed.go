// Package lunchradar exposes embedded assets shared across commands.
package lunchradar

import "embed"

// Migrations holds the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS
