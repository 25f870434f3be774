package format

import (
	"context"
	"fmt"
	"os"

	"github.com/andys/etl/table"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
)

// ParquetReader reads Apache Parquet files through Arrow
type ParquetReader struct{}

func (ParquetReader) Format() Format { return Parquet }

func (ParquetReader) Extension() string { return ".parquet" }

// Read loads the whole file as an Arrow table and converts it column by column
func (ParquetReader) Read(path string) (*table.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	props := parquet.NewReaderProperties(memory.DefaultAllocator)
	tbl, err := pqarrow.ReadTable(context.Background(), file, props, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet: %w", err)
	}
	defer tbl.Release()

	fields := tbl.Schema().Fields()
	numRows := int(tbl.NumRows())

	schema := table.Schema{Columns: make([]table.Column, len(fields))}
	values := make([][]any, numRows)
	for i := range values {
		values[i] = make([]any, len(fields))
	}

	for col, field := range fields {
		typ, err := columnType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		schema.Columns[col] = table.Column{Name: field.Name, Type: typ}

		row := 0
		for _, chunk := range tbl.Column(col).Data().Chunks() {
			for i := 0; i < chunk.Len(); i++ {
				if !chunk.IsNull(i) {
					values[row][col] = arrowValue(chunk, i)
				}
				row++
			}
		}
	}

	return table.New(schema, values)
}

func columnType(dt arrow.DataType) (table.ColumnType, error) {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return table.Int, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return table.Float, nil
	case arrow.BOOL:
		return table.Bool, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return table.String, nil
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return table.Datetime, nil
	case arrow.NULL:
		return table.Unknown, nil
	default:
		return table.Unknown, fmt.Errorf("unsupported arrow type %s", dt)
	}
}

// arrowValue returns element i of arr as one of the table value types
func arrowValue(arr arrow.Array, i int) any {
	switch a := arr.(type) {
	case *array.Int8:
		return int64(a.Value(i))
	case *array.Int16:
		return int64(a.Value(i))
	case *array.Int32:
		return int64(a.Value(i))
	case *array.Int64:
		return a.Value(i)
	case *array.Uint8:
		return int64(a.Value(i))
	case *array.Uint16:
		return int64(a.Value(i))
	case *array.Uint32:
		return int64(a.Value(i))
	case *array.Uint64:
		return int64(a.Value(i))
	case *array.Float32:
		return float64(a.Value(i))
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(i).ToTime(unit).UTC()
	case *array.Date32:
		return a.Value(i).ToTime().UTC()
	case *array.Date64:
		return a.Value(i).ToTime().UTC()
	default:
		return nil
	}
}
