package tableopts

// TableReaderOptions configures how a tabular input is mapped onto a target
// table. Nil name pointers mean the key was absent; an empty Fields slice
// means the columns are inferred elsewhere.
type TableReaderOptions struct {
	SchemaName *string `json:"schema,omitempty"`
	TableName  *string `json:"name,omitempty"`
	Fields     []Field `json:"fields,omitempty"`
}

// Schema returns the schema name and whether it was set.
func (o TableReaderOptions) Schema() (string, bool) {
	if o.SchemaName == nil {
		return "", false
	}
	return *o.SchemaName, true
}

// Table returns the table name and whether it was set.
func (o TableReaderOptions) Table() (string, bool) {
	if o.TableName == nil {
		return "", false
	}
	return *o.TableName, true
}

// QualifiedName returns "schema.table", falling back to defaultTable when no
// name was decoded and omitting the schema when none was decoded.
func (o TableReaderOptions) QualifiedName(defaultTable string) string {
	table, ok := o.Table()
	if !ok {
		table = defaultTable
	}
	if schema, ok := o.Schema(); ok {
		return schema + "." + table
	}
	return table
}

// Field describes one column of the tabular input.
type Field struct {
	Name     string   `json:"name"`
	Type     DataType `json:"type"`
	Nullable bool     `json:"nullable"`
	Children []Field  `json:"children,omitempty"`
}
