// Package scripts embeds the SQL run against the database at startup.
package scripts

import _ "embed"

//go:embed schema.sql
var SchemaSQL string
