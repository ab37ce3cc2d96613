package core

// Kind is the tagged statement kind produced by the classifier.
// The set is closed: extractors are selected by an exhaustive switch.
type Kind int

const (
	// KindUnclassified is any statement the classifier does not recognize.
	KindUnclassified Kind = iota
	KindCreateTable
	KindCreateIndex
	KindAlterTable
	KindCreateType
	KindCreateSequence
	KindCreateDomain
	KindCreateSchema
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindCreateTable:
		return "CreateTable"
	case KindCreateIndex:
		return "CreateIndex"
	case KindAlterTable:
		return "AlterTable"
	case KindCreateType:
		return "CreateType"
	case KindCreateSequence:
		return "CreateSequence"
	case KindCreateDomain:
		return "CreateDomain"
	case KindCreateSchema:
		return "CreateSchema"
	default:
		return "Unclassified"
	}
}

// EntityKind identifies the IR group an entity belongs to.
type EntityKind int

const (
	EntityTable EntityKind = iota
	EntityType
	EntitySequence
	EntityDomain
	EntitySchema
	EntityProperty
)

// GroupKey returns the key used for the entity kind in grouped output.
func (k EntityKind) GroupKey() string {
	switch k {
	case EntityTable:
		return "tables"
	case EntityType:
		return "types"
	case EntitySequence:
		return "sequences"
	case EntityDomain:
		return "domains"
	case EntitySchema:
		return "schemas"
	default:
		return "ddl_properties"
	}
}

// GroupKeys lists every grouped-output key in emission order.
var GroupKeys = []string{"tables", "types", "sequences", "domains", "schemas", "ddl_properties"}
