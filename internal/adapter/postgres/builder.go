package postgres

import sq "github.com/Masterminds/squirrel"

// Builder is the squirrel statement builder with PostgreSQL placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Table names shared by repositories and test helpers.
const (
	TableCollections = "bookmark_collections"
	TableGroups      = "bookmark_groups"
	TableItems       = "bookmark_items"
	TableShareTokens = "share_tokens"
	TableAuditLog    = "audit_log"
)
