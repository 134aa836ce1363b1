package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"election-assistant-be/internal/repository/contract"
)

const (
	columnPosition = "Position"
	columnName     = "Candidate Name"
	columnParty    = "Party"
)

// CSVSource reads a header-led CSV with Position, Candidate Name and Party
// columns. Column order is free.
type CSVSource struct {
	name string
	open func() (io.ReadCloser, error)
}

func NewCSVFileSource(path string) *CSVSource {
	return &CSVSource{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

func NewCSVReaderSource(name string, r io.Reader) *CSVSource {
	return &CSVSource{
		name: name,
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
	}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.name
}

func (s *CSVSource) Records(ctx context.Context) ([]Record, error) {
	rc, err := s.open()
	if err != nil {
		return nil, fmt.Errorf("failed to open candidate list: %w", err)
	}
	defer rc.Close()

	reader := csv.NewReader(rc)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, required := range []string{columnPosition, columnName, columnParty} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []Record
	for {
		if err := ctx.Err(); err != nil {
			return records, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return records, fmt.Errorf("line %d: %w", len(records)+2, err)
		}
		records = append(records, Record{
			Position: cell(row, cols[columnPosition]),
			Name:     cell(row, cols[columnName]),
			Party:    cell(row, cols[columnParty]),
		})
	}
	return records, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// RepositorySource reads the candidates table through the repository layer.
type RepositorySource struct {
	repo contract.CandidateRepository
}

func NewRepositorySource(repo contract.CandidateRepository) *RepositorySource {
	return &RepositorySource{repo: repo}
}

func (s *RepositorySource) Name() string {
	return "db:candidates"
}

func (s *RepositorySource) Records(ctx context.Context) ([]Record, error) {
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{Position: r.Position, Name: r.Name, Party: r.Party})
	}
	return records, nil
}
