package command

import (
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/squareup/colstore/coerce"
	"github.com/squareup/colstore/command/parser"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/conf"
	"github.com/squareup/colstore/errors"
	"github.com/squareup/colstore/metrics"
	"github.com/squareup/colstore/table"
)

const okResult = "OK"

// Session holds the tables created by a user of the shell and executes statements against them.
// A Session is not safe for concurrent use.
type Session struct {
	cfg            conf.Config
	metricsFactory metrics.Factory
	tables         map[string]*table.Table
}

func NewSession(cfg conf.Config, metricsFactory metrics.Factory) *Session {
	return &Session{
		cfg:            cfg,
		metricsFactory: metricsFactory,
		tables:         make(map[string]*table.Table),
	}
}

// Table returns a table by name. Table names are case insensitive.
func (s *Session) Table(name string) (*table.Table, error) {
	tab, ok := s.tables[strings.ToLower(name)]
	if !ok {
		return nil, errors.NewUnknownTableError(name)
	}
	return tab, nil
}

// Execute parses and runs a single statement, returning the lines of its result.
// Errors that are not StoreErrors are logged and replaced by an internal error carrying a reference.
func (s *Session) Execute(statement string) ([]string, error) {
	log.Debugf("executing statement %s", statement)
	lines, err := s.execute(statement)
	if err != nil {
		log.Warnf("statement failed: %v", err)
		return nil, common.MaybeConvertError(err)
	}
	return lines, nil
}

func (s *Session) execute(statement string) ([]string, error) {
	ast, err := parser.Parse(statement)
	if err != nil {
		return nil, err
	}
	switch {
	case ast.Create != nil:
		return s.createTable(ast.Create)
	case ast.Drop != nil:
		return s.dropTable(ast.Drop)
	case ast.Insert != nil:
		return s.insert(ast.Insert)
	case ast.Update != nil:
		return s.update(ast.Update)
	case ast.Get != nil:
		return s.get(ast.Get)
	case ast.Aggregate != nil:
		return s.aggregate(ast.Aggregate)
	case ast.Sort != nil:
		return s.sort(ast.Sort)
	case ast.Delete != nil:
		return s.delete(ast.Delete)
	case ast.Show != nil:
		return s.show(ast.Show)
	default:
		return nil, errors.Errorf("empty statement %q", statement)
	}
}

func (s *Session) createTable(create *parser.CreateTable) ([]string, error) {
	key := strings.ToLower(create.Name)
	if _, ok := s.tables[key]; ok {
		return nil, errors.NewTableAlreadyExistsError(create.Name)
	}
	var tab *table.Table
	if create.CloneOf != "" {
		src, err := s.Table(create.CloneOf)
		if err != nil {
			return nil, err
		}
		tab, err = src.Clone(create.Name)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		tab, err = table.NewTable(create.Name, s.cfg, s.metricsFactory)
		if err != nil {
			return nil, err
		}
		for _, def := range create.Columns {
			if _, err := tab.AddColumn(def.Name, def.ToColumnType()); err != nil {
				return nil, err
			}
		}
	}
	s.tables[key] = tab
	return []string{okResult}, nil
}

func (s *Session) dropTable(drop *parser.DropTable) ([]string, error) {
	if _, err := s.Table(drop.Name); err != nil {
		return nil, err
	}
	delete(s.tables, strings.ToLower(drop.Name))
	return []string{okResult}, nil
}

func (s *Session) insert(insert *parser.Insert) ([]string, error) {
	tab, err := s.Table(insert.Table)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, len(insert.Values))
	for i, lit := range insert.Values {
		values[i], err = literalValue(lit)
		if err != nil {
			return nil, err
		}
	}
	record, err := tab.InsertRecord(values...)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("Record %d", record)}, nil
}

func (s *Session) update(update *parser.Update) ([]string, error) {
	tab, err := s.Table(update.Table)
	if err != nil {
		return nil, err
	}
	value, err := literalValue(update.Value)
	if err != nil {
		return nil, err
	}
	if err := tab.SetValue(update.Record, update.Column, value); err != nil {
		return nil, err
	}
	return []string{okResult}, nil
}

func (s *Session) get(get *parser.Get) ([]string, error) {
	tab, err := s.Table(get.Column.Table)
	if err != nil {
		return nil, err
	}
	text, ok, err := tab.GetText(get.Record, get.Column.Column)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{common.Null.String()}, nil
	}
	return []string{text}, nil
}

func (s *Session) aggregate(agg *parser.Aggregate) ([]string, error) {
	tab, err := s.Table(agg.Column.Table)
	if err != nil {
		return nil, err
	}
	var records []int
	if agg.HasRecords {
		records = agg.Records
		if records == nil {
			records = []int{}
		}
	}
	res, err := tab.Aggregate(agg.Column.Column, agg.Type, records)
	if err != nil {
		return nil, err
	}
	text, err := resultText(res)
	if err != nil {
		return nil, err
	}
	return []string{text}, nil
}

func (s *Session) sort(sortStmt *parser.Sort) ([]string, error) {
	tab, err := s.Table(sortStmt.Table)
	if err != nil {
		return nil, err
	}
	if err := tab.SortBy(sortStmt.Column, sortStmt.Descending); err != nil {
		return nil, err
	}
	return []string{okResult}, nil
}

func (s *Session) delete(del *parser.Delete) ([]string, error) {
	tab, err := s.Table(del.Table)
	if err != nil {
		return nil, err
	}
	if err := tab.RemoveRecord(del.Record); err != nil {
		return nil, err
	}
	return []string{okResult}, nil
}

func (s *Session) show(show *parser.Show) ([]string, error) {
	if show.Tables {
		lines := make([]string, 0, len(s.tables))
		for _, tab := range s.tables {
			lines = append(lines, tab.String())
		}
		sort.Strings(lines)
		return lines, nil
	}
	tab, err := s.Table(show.Table)
	if err != nil {
		return nil, err
	}
	columns := tab.Columns()
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Name
	}
	lines := []string{strings.Join(header, " | ")}
	for record := 0; record < tab.RecordCount(); record++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			text, ok, err := tab.GetText(record, col.Name)
			if err != nil {
				return nil, err
			}
			if !ok {
				text = common.Null.String()
			}
			cells[i] = text
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return lines, nil
}

// literalValue types a literal. Whole numbers that fit become int64, every other number a decimal, so no digits are
// lost before the column's coercion rules see the value.
func literalValue(lit *parser.Literal) (interface{}, error) {
	switch {
	case lit.Null:
		return common.Null, nil
	case lit.Bool != nil:
		return bool(*lit.Bool), nil
	case lit.String != nil:
		return *lit.String, nil
	case lit.Number != nil:
		if i, err := coerce.Default().Convert(common.KindInt64, *lit.Number); err == nil {
			return i, nil
		}
		d, err := common.NewDecFromString(*lit.Number)
		if err != nil {
			return nil, errors.NewInvalidStatementError(fmt.Sprintf("invalid number %s", *lit.Number))
		}
		return d, nil
	default:
		return nil, errors.Errorf("empty literal")
	}
}

// resultText formats an aggregate result. nil, returned by First over no records, prints like a null.
func resultText(res interface{}) (string, error) {
	if res == nil || common.IsNull(res) {
		return common.Null.String(), nil
	}
	return coerce.FormatText(res)
}
