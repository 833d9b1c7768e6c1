// Package mtxmarket reads the MatrixMarket coordinate text format into
// the edge stream and dimension the sparse graph store consumes. It is
// an external collaborator to the SCC core: it owns banner/size/entry
// parsing and produces 0-based (src, dst) pairs plus n.
package mtxmarket

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/colorscc/scc/internal/graph"
	"github.com/colorscc/scc/pkg/apperrors"
	"github.com/colorscc/scc/pkg/compression"
)

const bannerPrefix = "%%MatrixMarket"

// entryKind is the third banner field: what a data line's extra column
// (if any) means. The core only ever consumes (row, col); a weight
// column, when present, is parsed for validation and discarded.
type entryKind string

const (
	entryPattern entryKind = "pattern"
	entryInteger entryKind = "integer"
	entryReal    entryKind = "real"
)

// Result is the parsed input: dimensions plus the edge multiset, 0-based
// and in file order.
type Result struct {
	N     int
	Edges []graph.Edge
}

// LoadFile opens path (transparently decompressing gzip or zstd input
// via pkg/compression), parses it as MatrixMarket coordinate format, and
// returns the resulting dimensions and edge list.
func LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.KindIO, fmt.Sprintf("open %s", path), err)
	}
	defer f.Close()

	rc, _, err := compression.NewReader(f)
	if err != nil {
		return Result{}, apperrors.Wrap(apperrors.KindIO, fmt.Sprintf("open %s", path), err)
	}
	defer rc.Close()

	return parse(ctx, rc)
}

func parse(ctx context.Context, r io.Reader) (Result, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	kind, ok, err := readBanner(scanner)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, apperrors.New(apperrors.KindFormat, "missing MatrixMarket banner")
	}

	rows, cols, nnz, ok, err := readSizeLine(scanner)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, apperrors.New(apperrors.KindFormat, "premature EOF before size line")
	}
	if rows != cols {
		return Result{}, apperrors.Newf(apperrors.KindFormat, "non-square matrix: %d rows, %d cols", rows, cols)
	}
	if rows > math.MaxInt32 {
		return Result{}, apperrors.Newf(apperrors.KindFormat, "matrix dimension %d exceeds the int32 vertex range", rows)
	}

	edges := make([]graph.Edge, 0, nnz)
	for i := 0; i < nnz; i++ {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		line, ok := nextDataLine(scanner)
		if !ok {
			if err := scanner.Err(); err != nil {
				return Result{}, apperrors.Wrap(apperrors.KindIO, "read entry line", err)
			}
			return Result{}, apperrors.Newf(apperrors.KindFormat, "premature EOF: expected %d entries, got %d", nnz, i)
		}

		row, col, err := parseEntry(line, kind)
		if err != nil {
			return Result{}, err
		}
		if row < 1 || row > rows || col < 1 || col > cols {
			return Result{}, apperrors.Newf(apperrors.KindFormat, "entry (%d,%d) out of declared range [1,%d]", row, col, rows)
		}

		edges = append(edges, graph.Edge{Src: int32(row - 1), Dst: int32(col - 1)})
	}

	return Result{N: rows, Edges: edges}, nil
}

// readBanner reads the first line and validates it is a
// supported MatrixMarket coordinate-format banner, returning the entry
// kind (pattern/integer/real).
func readBanner(scanner *bufio.Scanner) (entryKind, bool, error) {
	if !scanner.Scan() {
		return "", false, nil
	}
	line := strings.TrimSpace(scanner.Text())
	fields := strings.Fields(line)
	if len(fields) != 5 || fields[0] != bannerPrefix {
		return "", false, apperrors.Newf(apperrors.KindFormat, "malformed MatrixMarket banner: %q", line)
	}
	if !strings.EqualFold(fields[1], "matrix") || !strings.EqualFold(fields[2], "coordinate") {
		return "", false, apperrors.Newf(apperrors.KindFormat, "unsupported matrix type: %q (only coordinate is supported)", line)
	}
	if !strings.EqualFold(fields[4], "general") {
		return "", false, apperrors.Newf(apperrors.KindFormat, "unsupported matrix form: %q (only general is supported)", fields[4])
	}

	switch strings.ToLower(fields[3]) {
	case "pattern":
		return entryPattern, true, nil
	case "integer":
		return entryInteger, true, nil
	case "real":
		return entryReal, true, nil
	default:
		return "", false, apperrors.Newf(apperrors.KindFormat, "unsupported entry type: %q", fields[3])
	}
}

// readSizeLine skips blank and comment ("%"-prefixed) lines and parses
// the first data line as "rows cols nnz".
func readSizeLine(scanner *bufio.Scanner) (rows, cols, nnz int, ok bool, err error) {
	line, found := nextDataLine(scanner)
	if !found {
		return 0, 0, 0, false, nil
	}
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, 0, 0, false, apperrors.Newf(apperrors.KindFormat, "malformed size line: %q", line)
	}
	rows, err1 := strconv.Atoi(fields[0])
	cols, err2 := strconv.Atoi(fields[1])
	nnz, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false, apperrors.Newf(apperrors.KindFormat, "non-numeric size line: %q", line)
	}
	return rows, cols, nnz, true, nil
}

// nextDataLine returns the next non-blank, non-comment line.
func nextDataLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		return line, true
	}
	return "", false
}

func parseEntry(line string, kind entryKind) (row, col int, err error) {
	fields := strings.Fields(line)
	minFields := 2
	if kind != entryPattern {
		minFields = 3
	}
	if len(fields) < minFields {
		return 0, 0, apperrors.Newf(apperrors.KindFormat, "malformed entry line: %q", line)
	}

	row, errRow := strconv.Atoi(fields[0])
	col, errCol := strconv.Atoi(fields[1])
	if errRow != nil || errCol != nil {
		return 0, 0, apperrors.Newf(apperrors.KindFormat, "non-numeric entry: %q", line)
	}

	if kind != entryPattern {
		if _, err := strconv.ParseFloat(fields[2], 64); err != nil {
			return 0, 0, apperrors.Newf(apperrors.KindFormat, "non-numeric weight: %q", line)
		}
	}

	return row, col, nil
}
