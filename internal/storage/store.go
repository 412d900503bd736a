// Package storage keeps finished runs on disk, one directory per run with a
// metadata.json and a series.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/cardiosim/internal/experiment"
	"github.com/san-kum/cardiosim/internal/pacer"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name,omitempty"`
	Headline  string             `json:"headline"`
	Drugs     []string           `json:"drugs"`
	Plotted   string             `json:"plotted"`
	Legend    string             `json:"legend,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Samples   int                `json:"samples"`
	Domain    float64            `json:"domain"`
	Schedule  pacer.Schedule     `json:"schedule"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *experiment.Result) (string, error) {
	return s.SaveAs("", result)
}

// SaveAs records result under a user-chosen name. The name prefixes the run
// ID in place of the headline. A run that fails to write is removed.
func (s *Store) SaveAs(name string, result *experiment.Result) (runID string, err error) {
	if len(result.Times) != len(result.Pressures) {
		return "", fmt.Errorf("series mismatch: %d times, %d pressures", len(result.Times), len(result.Pressures))
	}

	prefix := slug(result.Headline)
	if strings.TrimSpace(name) != "" {
		prefix = slug(name)
	}
	runID = fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
			runID = ""
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Headline:  result.Headline,
		Drugs:     result.Applied,
		Plotted:   result.Plotted,
		Legend:    result.Legend,
		Timestamp: time.Now(),
		Samples:   len(result.Times),
		Schedule:  result.Schedule,
		Metrics:   result.Metrics,
	}
	if n := len(result.Times); n > 0 {
		meta.Domain = result.Times[n-1]
	}

	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "series.csv"), func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"time", "pressure"}); err != nil {
			return err
		}
		for i := range result.Times {
			row := []string{
				strconv.FormatFloat(result.Times[i], 'f', 6, 64),
				strconv.FormatFloat(result.Pressures[i], 'f', 6, 64),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	}); err != nil {
		return "", err
	}

	return runID, nil
}

// writeFile creates path and hands it to write, reporting the close error
// when write succeeded.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// List returns every readable run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads the sampled pressure series of a run.
func (s *Store) LoadSeries(runID string) (times, pressures []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	times = make([]float64, 0, len(records)-1)
	pressures = make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		p, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		pressures = append(pressures, p)
	}

	return times, pressures, nil
}

// Delete removes a run directory.
func (s *Store) Delete(runID string) error {
	if _, err := s.Load(runID); err != nil {
		return err
	}
	return os.RemoveAll(filepath.Join(s.baseDir, runID))
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "run"
	}
	return out
}
