// Package storage keeps sweep results on disk, one directory per run
// holding metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/mechdyn/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Joint      string             `json:"joint"`
	Coord      int                `json:"coord"`
	Samples    int                `json:"samples"`
	Quantities []string           `json:"quantities"`
	Summary    map[string]float64 `json:"summary"`
}

// Save writes the sweep under a fresh run directory and returns its id.
func (s *Store) Save(model string, res *sweep.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	summary := make(map[string]float64, 2*len(res.Names))
	for _, name := range res.Names {
		col := res.Series[name]
		if len(col) == 0 {
			continue
		}
		summary[name+"_min"] = floats.Min(col)
		summary[name+"_max"] = floats.Max(col)
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Joint:      res.Joint,
		Coord:      res.Coord,
		Samples:    len(res.Values),
		Quantities: res.Names,
		Summary:    summary,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeSamples(csvFile, res); err != nil {
		return "", err
	}
	return runID, nil
}

func writeSamples(out io.Writer, res *sweep.Result) error {
	w := csv.NewWriter(out)

	header := append([]string{"coordinate"}, res.Names...)
	if err := w.Write(header); err != nil {
		return err
	}
	for i, v := range res.Values {
		row := []string{strconv.FormatFloat(v, 'g', -1, 64)}
		for _, name := range res.Names {
			row = append(row, strconv.FormatFloat(res.Series[name][i], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadResult reads a saved sweep back into memory.
func (s *Store) LoadResult(runID string) (*sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("storage: run %s has no sample header", runID)
	}

	names := records[0][1:]
	res := &sweep.Result{
		Joint:  meta.Joint,
		Coord:  meta.Coord,
		Values: make([]float64, 0, len(records)-1),
		Names:  names,
		Series: make(map[string][]float64, len(names)),
	}
	for _, name := range names {
		res.Series[name] = make([]float64, 0, len(records)-1)
	}
	for _, record := range records[1:] {
		if len(record) != len(names)+1 {
			return nil, fmt.Errorf("storage: run %s has a ragged sample row", runID)
		}
		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: run %s: %w", runID, err)
		}
		res.Values = append(res.Values, v)
		for k, name := range names {
			q, err := strconv.ParseFloat(record[k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s: %w", runID, err)
			}
			res.Series[name] = append(res.Series[name], q)
		}
	}
	return res, nil
}
