package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/petar-djukic/equipments/pkg/types"
)

// maxLineSize bounds a single JSONL record.
const maxLineSize = 16 << 20

// encodeRecords renders a slice of records as JSONL, one record per line.
func encodeRecords(records any) ([]byte, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("encoding records: want slice, got %s", v.Kind())
	}
	var buf bytes.Buffer
	for i := 0; i < v.Len(); i++ {
		line, err := json.Marshal(v.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("encoding record %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// decodeRecords parses JSONL data. Blank lines are skipped. Any malformed
// line, or a record whose ID is not a UUID, fails the whole blob.
func decodeRecords[T any](data []byte, idOf func(T) string) ([]T, error) {
	records := []T{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec T
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if _, err := uuid.Parse(idOf(rec)); err != nil {
			return nil, fmt.Errorf("line %d: %w %q", lineNo, types.ErrInvalidID, idOf(rec))
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning records: %w", err)
	}
	return records, nil
}
