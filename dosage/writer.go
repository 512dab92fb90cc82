package dosage

import (
	"fmt"
	"math"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
)

// Leading columns of every matrix, ahead of one Float64 column per sample.
const (
	ChromColumn = "chrom"
	PosColumn   = "pos"
	SetColumn   = "set"

	leadingColumns = 3
)

// Row is one variant of the dosage matrix. A NaN dosage marks a missing
// genotype.
type Row struct {
	Chrom   string
	Pos     int64
	Set     string
	Dosages []float64
}

// Writer streams rows into an Arrow IPC file in chunks of ChunkSize rows.
type Writer struct {
	file           *os.File
	schema         *arrow.Schema
	writer         *ipc.FileWriter
	chrom          *array.StringBuilder
	pos            *array.Int64Builder
	set            *array.StringBuilder
	samples        []*array.Float64Builder
	chunkSize      int
	numRowsInChunk int
	rows           int
}

// NewWriter creates filePath and writes the schema for the given sample names.
func NewWriter(filePath string, sampleNames []string, chunkSize int) (*Writer, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	pool := memory.NewGoAllocator()

	fields := make([]arrow.Field, 0, leadingColumns+len(sampleNames))
	fields = append(fields,
		arrow.Field{Name: ChromColumn, Type: arrow.BinaryTypes.String},
		arrow.Field{Name: PosColumn, Type: arrow.PrimitiveTypes.Int64},
		arrow.Field{Name: SetColumn, Type: arrow.BinaryTypes.String},
	)
	for _, name := range sampleNames {
		fields = append(fields, arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}

	writer, err := ipc.NewFileWriter(file, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		file.Close()
		return nil, err
	}

	samples := make([]*array.Float64Builder, len(sampleNames))
	for i := range samples {
		samples[i] = array.NewFloat64Builder(pool)
	}

	return &Writer{
		file:      file,
		schema:    schema,
		writer:    writer,
		chrom:     array.NewStringBuilder(pool),
		pos:       array.NewInt64Builder(pool),
		set:       array.NewStringBuilder(pool),
		samples:   samples,
		chunkSize: chunkSize,
	}, nil
}

// Rows is the number of rows written so far.
func (w *Writer) Rows() int {
	return w.rows
}

func (w *Writer) Write(row Row) error {
	if len(row.Dosages) != len(w.samples) {
		return fmt.Errorf("mismatch in number of samples: expected %d, got %d", len(w.samples), len(row.Dosages))
	}

	w.chrom.Append(row.Chrom)
	w.pos.Append(row.Pos)
	w.set.Append(row.Set)
	for i, val := range row.Dosages {
		if math.IsNaN(val) {
			w.samples[i].AppendNull()
			continue
		}
		w.samples[i].Append(val)
	}

	w.numRowsInChunk++
	w.rows++

	if w.numRowsInChunk == w.chunkSize {
		return w.writeChunk()
	}

	return nil
}

func (w *Writer) writeChunk() error {
	cols := make([]arrow.Array, 0, leadingColumns+len(w.samples))

	// NewArray creates a new array from the builder and resets the builder
	cols = append(cols, w.chrom.NewArray(), w.pos.NewArray(), w.set.NewArray())
	for _, b := range w.samples {
		cols = append(cols, b.NewArray())
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	rec := array.NewRecord(w.schema, cols, int64(w.numRowsInChunk))
	defer rec.Release()

	if err := w.writer.Write(rec); err != nil {
		return err
	}

	w.numRowsInChunk = 0

	return nil
}

// Close flushes any partial chunk, writes the file footer and closes the file.
func (w *Writer) Close() error {
	if w.numRowsInChunk > 0 {
		if err := w.writeChunk(); err != nil {
			w.file.Close()
			return err
		}
	}

	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return err
	}

	return w.file.Close()
}
