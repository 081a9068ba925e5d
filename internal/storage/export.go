package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/mechdyn/internal/sweep"
)

type ExportData struct {
	Model   string               `json:"model"`
	Joint   string               `json:"joint"`
	Coord   int                  `json:"coord"`
	Samples int                  `json:"samples"`
	Values  []float64            `json:"values"`
	Series  map[string][]float64 `json:"series"`
}

func ExportJSON(w io.Writer, model string, res *sweep.Result) error {
	data := ExportData{
		Model:   model,
		Joint:   res.Joint,
		Coord:   res.Coord,
		Samples: len(res.Values),
		Values:  res.Values,
		Series:  res.Series,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSONFile(path, model string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportJSON(f, model, res)
}

// ExportCSV writes the same column layout Save uses for samples.csv.
func ExportCSV(w io.Writer, res *sweep.Result) error {
	return writeSamples(w, res)
}

func ExportCSVFile(path string, res *sweep.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ExportCSV(f, res)
}
