package parser

import (
	"testing"

	"github.com/alecthomas/repr"
	"github.com/squareup/colstore/aggfuncs"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/errors"
	"github.com/stretchr/testify/require"
)

func str(s string) *string {
	return &s
}

func boolean(b bool) *Boolean {
	v := Boolean(b)
	return &v
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		statement string
		expected  *AST
	}{
		{"CreateTable", `
			create table readings(
				sensor varchar collate 'en',
				reading double,
				taken_at timestamp
			);`,
			&AST{Create: &CreateTable{
				Name: "readings",
				Columns: []*ColumnDef{
					{Name: "sensor", Kind: common.KindText, Collation: "en"},
					{Name: "reading", Kind: common.KindFloat64},
					{Name: "taken_at", Kind: common.KindDateTime},
				},
			}}},
		{"CreateTableAs", "CREATE TABLE copy AS readings",
			&AST{Create: &CreateTable{Name: "copy", CloneOf: "readings"}}},
		{"DropTable", "DROP TABLE readings",
			&AST{Drop: &DropTable{Name: "readings"}}},
		{"Insert", `INSERT INTO readings VALUES ('s1', -1.5e3, NULL, true, 42, "x")`,
			&AST{Insert: &Insert{
				Table: "readings",
				Values: []*Literal{
					{String: str("s1")},
					{Number: str("-1.5e3")},
					{Null: true},
					{Bool: boolean(true)},
					{Number: str("42")},
					{String: str("x")},
				},
			}}},
		{"Update", "update readings set reading = false at 3",
			&AST{Update: &Update{Table: "readings", Column: "reading", Value: &Literal{Bool: boolean(false)}, Record: 3}}},
		{"Get", "GET readings.`taken_at` AT 0",
			&AST{Get: &Get{Column: &ColumnRef{Table: "readings", Column: "taken_at"}, Record: 0}}},
		{"Aggregate", "AGGREGATE stdev (readings.reading)",
			&AST{Aggregate: &Aggregate{
				Type:   aggfuncs.StdDevAggregateType,
				Column: &ColumnRef{Table: "readings", Column: "reading"},
			}}},
		{"AggregateRecords", "AGGREGATE SUM (readings.reading) RECORDS (0, 2)",
			&AST{Aggregate: &Aggregate{
				Type:       aggfuncs.SumAggregateType,
				Column:     &ColumnRef{Table: "readings", Column: "reading"},
				HasRecords: true,
				Records:    []int{0, 2},
			}}},
		{"AggregateNoRecords", "AGGREGATE first (readings.reading) RECORDS ()",
			&AST{Aggregate: &Aggregate{
				Type:       aggfuncs.FirstAggregateType,
				Column:     &ColumnRef{Table: "readings", Column: "reading"},
				HasRecords: true,
			}}},
		{"Sort", "SORT readings BY reading DESC",
			&AST{Sort: &Sort{Table: "readings", Column: "reading", Descending: true}}},
		{"SortAsc", "SORT readings BY reading asc",
			&AST{Sort: &Sort{Table: "readings", Column: "reading"}}},
		{"Delete", "DELETE FROM readings AT 7",
			&AST{Delete: &Delete{Table: "readings", Record: 7}}},
		{"Show", "SHOW readings",
			&AST{Show: &Show{Table: "readings"}}},
		{"ShowTables", "show tables;",
			&AST{Show: &Show{Tables: true}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := Parse(test.statement)
			require.NoError(t, err)
			require.Equal(t,
				repr.String(test.expected, repr.Indent("  ")),
				repr.String(actual, repr.Indent("  ")),
				repr.String(actual, repr.Indent("  ")))
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, statement := range []string{
		"SELECT * FROM readings",
		"CREATE TABLE t (c BLOB)",
		"AGGREGATE MEDIAN (t.c)",
		"GET t.c AT 1.5",
		"INSERT INTO t VALUES ()",
	} {
		_, err := Parse(statement)
		require.Error(t, err, statement)
		require.True(t, errors.HasCode(err, errors.InvalidStatement), statement)
	}
}

func TestColumnDefToColumnType(t *testing.T) {
	ast, err := Parse("CREATE TABLE t (a SMALLINT, b VARCHAR COLLATE 'de')")
	require.NoError(t, err)
	require.Equal(t, common.Int16ColumnType, ast.Create.Columns[0].ToColumnType())
	require.Equal(t, common.ColumnType{Kind: common.KindText, Collation: "de"}, ast.Create.Columns[1].ToColumnType())
}
