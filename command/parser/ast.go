// Package parser contains the statement parser for the column store shell.
//
//nolint:govet
package parser

import (
	"strings"

	"github.com/squareup/colstore/aggfuncs"
	"github.com/squareup/colstore/common"
)

// Boolean captures TRUE and FALSE literals.
type Boolean bool

func (b *Boolean) Capture(values []string) error {
	*b = Boolean(strings.EqualFold(values[0], "TRUE"))
	return nil
}

// Literal is a constant value in a statement. Numbers are kept as written and typed by the executor.
type Literal struct {
	Null   bool     `  @"NULL"`
	Bool   *Boolean `| @("TRUE" | "FALSE")`
	Number *string  `| @Number`
	String *string  `| @String`
}

// ColumnRef is a table qualified column, table.column.
type ColumnRef struct {
	Table  string `@Ident "."`
	Column string `@Ident`
}

type ColumnDef struct {
	Name      string      `@Ident`
	Kind      common.Kind `@Ident` // Conversion done by common.Kind.Capture()
	Collation string      `("COLLATE" @String)?`
}

func (c *ColumnDef) ToColumnType() common.ColumnType {
	columnType := common.ColumnTypesByKind[c.Kind]
	columnType.Collation = c.Collation
	return columnType
}

// CreateTable statement, either with a column list or as a copy of another table.
type CreateTable struct {
	Name    string       `"TABLE" @Ident`
	Columns []*ColumnDef `(  "(" @@ ("," @@)* ")"`
	CloneOf string       ` | "AS" @Ident )`
}

type DropTable struct {
	Name string `"TABLE" @Ident`
}

type Insert struct {
	Table  string     `"INTO" @Ident "VALUES"`
	Values []*Literal `"(" @@ ("," @@)* ")"`
}

type Update struct {
	Table  string   `@Ident "SET"`
	Column string   `@Ident "="`
	Value  *Literal `@@ "AT"`
	Record int      `@Number`
}

type Get struct {
	Column *ColumnRef `@@ "AT"`
	Record int        `@Number`
}

// Aggregate statement. Without a RECORDS clause every record of the table is aggregated.
type Aggregate struct {
	Type       aggfuncs.AggregateType `@Ident` // Conversion done by aggfuncs.AggregateType.Capture()
	Column     *ColumnRef             `"(" @@ ")"`
	HasRecords bool                   `( @"RECORDS" "("`
	Records    []int                  `  (@Number ("," @Number)*)? ")" )?`
}

type Sort struct {
	Table      string `@Ident "BY"`
	Column     string `@Ident`
	Descending bool   `(@"DESC" | "ASC")?`
}

type Delete struct {
	Table  string `"FROM" @Ident "AT"`
	Record int    `@Number`
}

type Show struct {
	Tables bool   `(  @"TABLES"`
	Table  string ` | @Ident )`
}

// AST root.
type AST struct {
	Create    *CreateTable ` (  "CREATE" @@`
	Drop      *DropTable   `  | "DROP" @@`
	Insert    *Insert      `  | "INSERT" @@`
	Update    *Update      `  | "UPDATE" @@`
	Get       *Get         `  | "GET" @@`
	Aggregate *Aggregate   `  | "AGGREGATE" @@`
	Sort      *Sort        `  | "SORT" @@`
	Delete    *Delete      `  | "DELETE" @@`
	Show      *Show        `  | "SHOW" @@ ) ";"?`
}
