package source

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/docker/go-units"
	"github.com/projecteru2/tetris/types"
)

// expected header columns, order free, case-insensitive
const (
	colService = "service"
	colCount   = "count"
)

// LoadReplicas reads a service inventory CSV and expands each row into
// `count` identical replicas.
//
// Columns: service,count,cpu,memory,network,disk_io,storage. cpu takes core
// counts, a trailing % divides by 100 (legacy percent inventories). memory
// and storage take GiB, or a human size like 4GiB / 512MB.
func LoadReplicas(path string) ([]*types.Replica, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return ParseReplicas(f)
}

// ParseReplicas .
func ParseReplicas(r io.Reader) ([]*types.Replica, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(types.ErrBadCSV, "read header: %v", err)
	}
	columns, err := resolveColumns(header)
	if err != nil {
		return nil, err
	}

	replicas := []*types.Replica{}
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(types.ErrBadCSV, "row %d: %v", row, err)
		}

		service := strings.TrimSpace(record[columns[colService]])
		if service == "" {
			return nil, errors.Wrapf(types.ErrBadCSV, "row %d: empty service name", row)
		}
		count, err := strconv.Atoi(strings.TrimSpace(record[columns[colCount]]))
		if err != nil || count < 0 {
			return nil, errors.Wrapf(types.ErrBadCount, "row %d: %s", row, record[columns[colCount]])
		}

		demand := types.ResourceVector{}
		for d := types.Dimension(0); d < types.NumDimensions; d++ {
			value, err := parseValue(d, record[columns[d.String()]])
			if err != nil {
				return nil, errors.Wrapf(err, "row %d", row)
			}
			demand[d] = value
		}

		for i := 0; i < count; i++ {
			replicas = append(replicas, &types.Replica{Service: service, Demand: demand})
		}
	}
	return replicas, nil
}

func resolveColumns(header []string) (map[string]int, error) {
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	required := []string{colService, colCount}
	for d := types.Dimension(0); d < types.NumDimensions; d++ {
		required = append(required, d.String())
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, errors.Wrapf(types.ErrBadCSV, "missing column %s", name)
		}
	}
	return columns, nil
}

func parseValue(d types.Dimension, raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if d == types.CPU && strings.HasSuffix(raw, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
		if err != nil {
			return 0, errors.Wrapf(types.ErrBadValue, "%s: %s", d, raw)
		}
		return pct / 100.0, nil
	}
	if value, err := strconv.ParseFloat(raw, 64); err == nil {
		if value < 0 {
			return 0, errors.Wrapf(types.ErrBadValue, "%s: negative %s", d, raw)
		}
		return value, nil
	}
	// human sizes only make sense for byte-measured dimensions
	if d == types.Memory || d == types.Storage {
		bytes, err := units.RAMInBytes(raw)
		if err == nil && bytes >= 0 {
			return float64(bytes) / float64(units.GiB), nil
		}
	}
	return 0, errors.Wrapf(types.ErrBadValue, "%s: %s", d, raw)
}
