package core

// Grouped is the IR partitioned by entity category. Every key is always
// present in the encoded form, even when its list is empty.
type Grouped struct {
	Tables        []*Table    `json:"tables"`
	Types         []*Type     `json:"types"`
	Sequences     []*Sequence `json:"sequences"`
	Domains       []*Domain   `json:"domains"`
	Schemas       []*Schema   `json:"schemas"`
	DDLProperties []*Property `json:"ddl_properties"`
}

// NewGrouped partitions entities by kind, keeping their relative order.
func NewGrouped(entities []Entity) *Grouped {
	g := &Grouped{
		Tables:        []*Table{},
		Types:         []*Type{},
		Sequences:     []*Sequence{},
		Domains:       []*Domain{},
		Schemas:       []*Schema{},
		DDLProperties: []*Property{},
	}
	for _, e := range entities {
		switch v := e.(type) {
		case *Table:
			g.Tables = append(g.Tables, v)
		case *Type:
			g.Types = append(g.Types, v)
		case *Sequence:
			g.Sequences = append(g.Sequences, v)
		case *Domain:
			g.Domains = append(g.Domains, v)
		case *Schema:
			g.Schemas = append(g.Schemas, v)
		case *Property:
			g.DDLProperties = append(g.DDLProperties, v)
		}
	}
	return g
}

// Len returns the total number of entities across all groups.
func (g *Grouped) Len() int {
	return len(g.Tables) + len(g.Types) + len(g.Sequences) +
		len(g.Domains) + len(g.Schemas) + len(g.DDLProperties)
}
