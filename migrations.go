// Package accounts embeds the database migrations of the account service.
package accounts

import "embed"

// Migrations holds the goose migration files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
