package domain

// ResourceType names one of the three levels of the hierarchy.
type ResourceType string

const (
	ResourceCollection ResourceType = "collection"
	ResourceGroup      ResourceType = "group"
	ResourceItem       ResourceType = "item"
)

func (t ResourceType) String() string { return string(t) }

func (t ResourceType) IsValid() bool {
	switch t {
	case ResourceCollection, ResourceGroup, ResourceItem:
		return true
	}
	return false
}

// ParseResourceType accepts the current names and the legacy
// board/folder/link aliases.
func ParseResourceType(s string) (ResourceType, error) {
	switch s {
	case "collection", "board":
		return ResourceCollection, nil
	case "group", "folder":
		return ResourceGroup, nil
	case "item", "link":
		return ResourceItem, nil
	}
	return "", MalformedInput("unknown resource type %q", s)
}

// ParentType returns the type of the parent level. Collections have no
// parent entity: their siblings are scoped by owner.
func (t ResourceType) ParentType() (ResourceType, bool) {
	switch t {
	case ResourceGroup:
		return ResourceCollection, true
	case ResourceItem:
		return ResourceGroup, true
	}
	return "", false
}

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeCollection EntityType = "COLLECTION"
	EntityTypeGroup      EntityType = "GROUP"
	EntityTypeItem       EntityType = "ITEM"
	EntityTypeShareToken EntityType = "SHARE_TOKEN"
	EntityTypeHierarchy  EntityType = "HIERARCHY"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeCollection, EntityTypeGroup, EntityTypeItem, EntityTypeShareToken, EntityTypeHierarchy:
		return true
	}
	return false
}

// EntityTypeOf maps a resource level to its audit entity type.
func EntityTypeOf(t ResourceType) EntityType {
	switch t {
	case ResourceCollection:
		return EntityTypeCollection
	case ResourceGroup:
		return EntityTypeGroup
	default:
		return EntityTypeItem
	}
}

// AuditAction identifies the type of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionReorder AuditAction = "REORDER"
	AuditActionImport  AuditAction = "IMPORT"
	AuditActionShare   AuditAction = "SHARE"
	AuditActionRevoke  AuditAction = "REVOKE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete, AuditActionReorder,
		AuditActionImport, AuditActionShare, AuditActionRevoke:
		return true
	}
	return false
}
