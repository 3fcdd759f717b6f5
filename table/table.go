// Package table groups typed column storages into an in-memory table addressed by record index.
package table

import (
	"fmt"
	"math"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/squareup/colstore/aggfuncs"
	"github.com/squareup/colstore/common"
	"github.com/squareup/colstore/conf"
	"github.com/squareup/colstore/errors"
	"github.com/squareup/colstore/metrics"
	"github.com/squareup/colstore/nullbits"
	"github.com/squareup/colstore/storage"
)

type Column struct {
	Name    string
	Type    common.ColumnType
	storage storage.Storage
}

func (c *Column) Storage() storage.Storage {
	return c.storage
}

// Table is a set of equally sized columns. Records [0, RecordCount()) are live, the storage beyond that is
// preallocated slack. A Table is not safe for concurrent use.
type Table struct {
	name          string
	cfg           conf.Config
	columns       []*Column
	columnsByName map[string]*Column
	recordCount   int
	capacity      int
	counters      *counters
}

type counters struct {
	aggregations      metrics.Counter
	aggregateFailures metrics.Counter
	growths           metrics.Counter
}

func newCounters(factory metrics.Factory) (*counters, error) {
	aggregations, err := factory.CreateCounter("colstore_aggregations_total", "Number of column aggregations")
	if err != nil {
		return nil, err
	}
	aggregateFailures, err := factory.CreateCounter("colstore_aggregate_failures_total", "Number of column aggregations that returned an error")
	if err != nil {
		return nil, err
	}
	growths, err := factory.CreateCounter("colstore_capacity_growths_total", "Number of times a table grew its column storages")
	if err != nil {
		return nil, err
	}
	return &counters{aggregations: aggregations, aggregateFailures: aggregateFailures, growths: growths}, nil
}

func NewTable(name string, cfg conf.Config, factory metrics.Factory) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c, err := newCounters(factory)
	if err != nil {
		return nil, err
	}
	return &Table{
		name:          name,
		cfg:           cfg,
		columnsByName: make(map[string]*Column),
		counters:      c,
	}, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) RecordCount() int {
	return t.recordCount
}

func (t *Table) Capacity() int {
	return t.capacity
}

func (t *Table) Columns() []*Column {
	return t.columns
}

func (t *Table) Column(name string) (*Column, error) {
	col, ok := t.columnsByName[strings.ToLower(name)]
	if !ok {
		return nil, errors.NewUnknownColumnError(t.name, name)
	}
	return col, nil
}

// AddColumn appends a column. Records that already exist are null in the new column.
// Text columns without a collation of their own use the table's configured collation.
func (t *Table) AddColumn(name string, columnType common.ColumnType) (*Column, error) {
	key := strings.ToLower(name)
	if _, ok := t.columnsByName[key]; ok {
		return nil, errors.NewColumnAlreadyExistsError(t.name, name)
	}
	if columnType.Kind == common.KindText && columnType.Collation == "" {
		columnType.Collation = t.cfg.TextCollation
	}
	s, err := storage.New(columnType)
	if err != nil {
		return nil, err
	}
	s.SetCapacity(t.capacity)
	for record := 0; record < t.recordCount; record++ {
		if err := s.Set(record, common.Null); err != nil {
			return nil, err
		}
	}
	col := &Column{Name: name, Type: columnType, storage: s}
	t.columns = append(t.columns, col)
	t.columnsByName[key] = col
	return col, nil
}

// NewRecord allocates the next record, null in every column, growing the storages if the table is full.
func (t *Table) NewRecord() (int, error) {
	if t.recordCount == t.capacity {
		if err := t.grow(); err != nil {
			return 0, err
		}
	}
	record := t.recordCount
	t.recordCount++
	for _, col := range t.columns {
		if err := col.storage.Set(record, common.Null); err != nil {
			return 0, err
		}
	}
	return record, nil
}

func (t *Table) grow() error {
	if t.capacity >= t.cfg.MaxCapacity {
		return errors.NewStoreErrorf(errors.RecordOutOfRange, "Table %s is full, it cannot hold more than %d records",
			t.name, t.cfg.MaxCapacity)
	}
	newCapacity := t.cfg.InitialCapacity
	if t.capacity > 0 {
		newCapacity = int(math.Ceil(float64(t.capacity) * t.cfg.GrowthFactor))
		if newCapacity <= t.capacity {
			newCapacity = t.capacity + 1
		}
	}
	if newCapacity > t.cfg.MaxCapacity {
		newCapacity = t.cfg.MaxCapacity
	}
	log.Debugf("growing table %s from %d to %d records", t.name, t.capacity, newCapacity)
	t.setCapacity(newCapacity)
	t.counters.growths.Inc()
	return nil
}

func (t *Table) setCapacity(capacity int) {
	for _, col := range t.columns {
		col.storage.SetCapacity(capacity)
	}
	t.capacity = capacity
}

// Shrink releases the slack beyond the last live record.
func (t *Table) Shrink() {
	if t.capacity > t.recordCount {
		log.Debugf("shrinking table %s from %d to %d records", t.name, t.capacity, t.recordCount)
		t.setCapacity(t.recordCount)
	}
}

// InsertRecord adds a record holding one value per column, in column order. If any value cannot be stored the
// record is not added.
func (t *Table) InsertRecord(values ...interface{}) (int, error) {
	if len(values) != len(t.columns) {
		return 0, errors.NewWrongNumberOfValuesError(len(t.columns), len(values))
	}
	record, err := t.NewRecord()
	if err != nil {
		return 0, err
	}
	for i, col := range t.columns {
		if err := col.storage.Set(record, values[i]); err != nil {
			t.discardLastRecord()
			return 0, err
		}
	}
	return record, nil
}

func (t *Table) discardLastRecord() {
	t.recordCount--
	for _, col := range t.columns {
		// Null is accepted by every storage
		_ = col.storage.Set(t.recordCount, common.Null)
	}
}

func (t *Table) checkRecord(record int) error {
	if record < 0 || record >= t.recordCount {
		return errors.NewRecordOutOfRangeError(record, t.recordCount)
	}
	return nil
}

func (t *Table) cell(record int, column string) (*Column, error) {
	if err := t.checkRecord(record); err != nil {
		return nil, err
	}
	return t.Column(column)
}

func (t *Table) SetValue(record int, column string, value interface{}) error {
	col, err := t.cell(record, column)
	if err != nil {
		return err
	}
	return col.storage.Set(record, value)
}

// GetValue returns the value of a cell, or common.Null.
func (t *Table) GetValue(record int, column string) (interface{}, error) {
	col, err := t.cell(record, column)
	if err != nil {
		return nil, err
	}
	return col.storage.Get(record), nil
}

// SetText parses text in the canonical text form of the column's kind and stores it.
func (t *Table) SetText(record int, column string, text string) error {
	col, err := t.cell(record, column)
	if err != nil {
		return err
	}
	value, err := col.storage.ConvertFromText(text)
	if err != nil {
		return err
	}
	return col.storage.Set(record, value)
}

// GetText returns the canonical text form of a cell. ok is false if the cell is null.
func (t *Table) GetText(record int, column string) (text string, ok bool, err error) {
	col, err := t.cell(record, column)
	if err != nil {
		return "", false, err
	}
	value := col.storage.Get(record)
	if common.IsNull(value) {
		return "", false, nil
	}
	text, err = col.storage.ConvertToText(value)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// Aggregate computes aggType over a column. A nil records slice means every live record.
func (t *Table) Aggregate(column string, aggType aggfuncs.AggregateType, records []int) (interface{}, error) {
	col, err := t.Column(column)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = t.allRecords()
	} else {
		for _, record := range records {
			if err := t.checkRecord(record); err != nil {
				return nil, err
			}
		}
	}
	t.counters.aggregations.Inc()
	res, err := col.storage.Aggregate(records, aggType)
	if err != nil {
		t.counters.aggregateFailures.Inc()
		log.Debugf("aggregate %s over %s.%s failed: %v", aggType, t.name, column, err)
		return nil, err
	}
	return res, nil
}

func (t *Table) allRecords() []int {
	records := make([]int, t.recordCount)
	for i := range records {
		records[i] = i
	}
	return records
}

// SortBy reorders the records of every column so the given column is in ascending, or descending, order.
// The sort is stable and nulls sort first in ascending order.
func (t *Table) SortBy(column string, descending bool) error {
	col, err := t.Column(column)
	if err != nil {
		return err
	}
	order := t.allRecords()
	s := col.storage
	sort.SliceStable(order, func(i, j int) bool {
		res := s.Compare(order[i], order[j])
		if descending {
			return res > 0
		}
		return res < 0
	})
	log.Debugf("sorting table %s by %s", t.name, column)
	return t.reorder(order)
}

// reorder moves record order[i] to position i in every column. The slack beyond the live records is kept as is.
func (t *Table) reorder(order []int) error {
	for _, col := range t.columns {
		snapshot, nulls := t.snapshot(col.storage, order)
		if err := col.storage.SetStorage(snapshot, nulls); err != nil {
			return errors.WithStack(err)
		}
	}
	return nil
}

func (t *Table) snapshot(s storage.Storage, order []int) (storage.Snapshot, *nullbits.Bitmap) {
	snapshot := s.GetEmptyStorage(t.capacity)
	nulls := nullbits.New(t.capacity)
	for i := 0; i < t.capacity; i++ {
		src := i
		if i < len(order) {
			src = order[i]
		}
		s.CopyValue(src, snapshot, nulls, i)
	}
	return snapshot, nulls
}

// Clone copies the table, and all of its records, under a new name.
func (t *Table) Clone(name string) (*Table, error) {
	clone := &Table{
		name:          name,
		cfg:           t.cfg,
		columnsByName: make(map[string]*Column, len(t.columns)),
		recordCount:   t.recordCount,
		capacity:      t.capacity,
		counters:      t.counters,
	}
	order := t.allRecords()
	for _, col := range t.columns {
		s, err := storage.New(col.Type)
		if err != nil {
			return nil, err
		}
		snapshot, nulls := t.snapshot(col.storage, order)
		if err := s.SetStorage(snapshot, nulls); err != nil {
			return nil, errors.WithStack(err)
		}
		cp := &Column{Name: col.Name, Type: col.Type, storage: s}
		clone.columns = append(clone.columns, cp)
		clone.columnsByName[strings.ToLower(col.Name)] = cp
	}
	return clone, nil
}

// RemoveRecord deletes a record, moving every later record down by one.
func (t *Table) RemoveRecord(record int) error {
	if err := t.checkRecord(record); err != nil {
		return err
	}
	for _, col := range t.columns {
		for i := record; i < t.recordCount-1; i++ {
			col.storage.Copy(i+1, i)
		}
	}
	t.discardLastRecord()
	return nil
}

func (t *Table) String() string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = fmt.Sprintf("%s %s", col.Name, col.Type)
	}
	return fmt.Sprintf("%s(%s) records=%d capacity=%d", t.name, strings.Join(names, ", "), t.recordCount, t.capacity)
}
