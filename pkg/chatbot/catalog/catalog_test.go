package catalog_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"election-assistant-be/internal/entity"
	"election-assistant-be/internal/pkg/logger"
	"election-assistant-be/pkg/chatbot/catalog"
	"election-assistant-be/pkg/chatbot/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = "\ufeffPosition,Candidate Name,Party\n" +
	"Barangay Kapitan,Juan Dela Cruz,Partido A\n" +
	"Barangay Kapitan,  ,Partido B\n" +
	"SK Chairman,Maria Santos,Independent\n" +
	"Kagawad 1,Pedro Reyes,Partido A\n" +
	"Barangay KAGAWAD,Ana Lim,Partido C\n" +
	"Mayor,Someone Else,Partido Z\n"

func loadCSV(t *testing.T, data string) *catalog.Catalog {
	t.Helper()
	src := catalog.NewCSVReaderSource("test", strings.NewReader(data))
	return catalog.Load(context.Background(), src, logger.NewNopLogger())
}

func TestLoad_CSV(t *testing.T) {
	c := loadCSV(t, sampleCSV)

	assert.Equal(t, []catalog.Candidate{{Name: "Juan Dela Cruz", Party: "Partido A"}}, c.ByPosition(catalog.BarangayKapitan))
	assert.Equal(t, []catalog.Candidate{{Name: "Maria Santos", Party: "Independent"}}, c.ByPosition(catalog.SKChairman))
	assert.Len(t, c.ByPosition(catalog.Kagawad), 2)

	assert.Equal(t, catalog.Stats{Total: 4, Kapitan: 1, SKChairman: 1, Kagawad: 2}, c.Stats())
}

func TestLoad_ColumnOrderIsFree(t *testing.T) {
	c := loadCSV(t, "Party,Position,Candidate Name\nPartido A,SK Chairman,Maria Santos\n")
	assert.Equal(t, []catalog.Candidate{{Name: "Maria Santos", Party: "Partido A"}}, c.ByPosition(catalog.SKChairman))
}

func TestLoad_MissingFileYieldsEmptyCatalog(t *testing.T) {
	src := catalog.NewCSVFileSource("/nonexistent/candidates.csv")
	c := catalog.Load(context.Background(), src, logger.NewNopLogger())

	assert.Equal(t, 0, c.Stats().Total)
	for _, p := range catalog.Positions {
		assert.Empty(t, c.ByPosition(p))
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	src := catalog.NewCSVReaderSource("test", strings.NewReader("Position,Name\nSK Chairman,Maria\n"))
	_, err := src.Records(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Candidate Name")

	c := catalog.Load(context.Background(), src, logger.NewNopLogger())
	assert.Equal(t, 0, c.Stats().Total)
}

func TestClassifyPosition(t *testing.T) {
	tests := []struct {
		raw  string
		want catalog.Position
		ok   bool
	}{
		{"Barangay Kapitan", catalog.BarangayKapitan, true},
		{" SK Chairman ", catalog.SKChairman, true},
		{"Kagawad 7", catalog.Kagawad, true},
		{"barangay kagawad", catalog.Kagawad, true},
		{"barangay kapitan", "", false},
		{"SK Kagawad", catalog.Kagawad, true},
		{"Mayor", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := catalog.ClassifyPosition(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	c := loadCSV(t, sampleCSV)

	out := c.Format(catalog.BarangayKapitan)
	assert.True(t, strings.HasPrefix(out, "**Mga Kandidato para sa Barangay Kapitan:**"))
	assert.Contains(t, out, "• Juan Dela Cruz (Partido A)")
	assert.True(t, strings.HasSuffix(out, "Kabuuang kandidato: 1"))

	kagawad := c.Format(catalog.Kagawad)
	assert.Contains(t, kagawad, "• Pedro Reyes (Partido A)\n• Ana Lim (Partido C)")
	assert.True(t, strings.HasSuffix(kagawad, "Kabuuang kandidato: 2"))
}

func TestFormat_EmptyPosition(t *testing.T) {
	c := loadCSV(t, "Position,Candidate Name,Party\nBarangay Kapitan,Juan Dela Cruz,Partido A\n")
	assert.Equal(t, "Walang nahanap na kandidato para sa SK Chairman sa database.", c.Format(catalog.SKChairman))
}

func TestFormatAll(t *testing.T) {
	c := loadCSV(t, sampleCSV)
	out := c.FormatAll()

	assert.True(t, strings.HasPrefix(out, "**Lahat ng Kandidato / All Candidates:**"))
	kapitan := strings.Index(out, "Barangay Kapitan")
	sk := strings.Index(out, "SK Chairman")
	kagawad := strings.Index(out, "para sa Kagawad")
	assert.Less(t, kapitan, sk)
	assert.Less(t, sk, kagawad)
	assert.True(t, strings.HasSuffix(out, "Choose wisely!"))
}

func TestFindByName(t *testing.T) {
	c := loadCSV(t, sampleCSV)

	cand, pos, ok := c.FindByName("sino si maria santos?")
	require.True(t, ok)
	assert.Equal(t, "Maria Santos", cand.Name)
	assert.Equal(t, catalog.SKChairman, pos)

	_, _, ok = c.FindByName("sino si maria?")
	assert.False(t, ok)

	detail := catalog.FormatDetail(cand, pos)
	assert.Contains(t, detail, "Posisyon: SK Chairman")
	assert.Contains(t, detail, "Partido: Independent")
}

func TestPositionFor(t *testing.T) {
	p, err := catalog.PositionFor(intent.KagawadCandidates)
	require.NoError(t, err)
	assert.Equal(t, catalog.Kagawad, p)

	_, err = catalog.PositionFor(intent.AllCandidates)
	assert.ErrorIs(t, err, catalog.ErrUnknownPosition)
}

type fakeCandidateRepo struct {
	rows []*entity.Candidate
	err  error
}

func (f *fakeCandidateRepo) FindAll(ctx context.Context) ([]*entity.Candidate, error) {
	return f.rows, f.err
}

func (f *fakeCandidateRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.rows)), f.err
}

func (f *fakeCandidateRepo) ReplaceAll(ctx context.Context, candidates []*entity.Candidate) error {
	f.rows = candidates
	return f.err
}

func TestRepositorySource(t *testing.T) {
	repo := &fakeCandidateRepo{rows: []*entity.Candidate{
		{Id: 1, Position: "Barangay Kapitan", Name: "Juan Dela Cruz", Party: "Partido A"},
		{Id: 2, Position: "Kagawad 2", Name: "Ana Lim", Party: "Partido C"},
	}}
	c := catalog.Load(context.Background(), catalog.NewRepositorySource(repo), logger.NewNopLogger())
	assert.Equal(t, catalog.Stats{Total: 2, Kapitan: 1, Kagawad: 1}, c.Stats())

	failing := &fakeCandidateRepo{err: errors.New("connection refused")}
	c = catalog.Load(context.Background(), catalog.NewRepositorySource(failing), logger.NewNopLogger())
	assert.Equal(t, 0, c.Stats().Total)
}
