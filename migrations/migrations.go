// Package migrations embeds the SQL schema migrations shipped with the
// binary so a database can always be initialized or validated offline.
package migrations

import "embed"

//go:embed sqlite
var FS embed.FS
