package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/simlab/internal/dynamo"
)

const (
	metadataFile    = "metadata.json"
	diagnosticsFile = "diagnostics.csv"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID         string             `json:"id"`
	Simulation string             `json:"simulation"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Dt         float64            `json:"dt"`
	Duration   float64            `json:"duration"`
	Steps      int                `json:"steps"`
	Every      int                `json:"every"`
	Params     map[string]float64 `json:"params,omitempty"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
}

// Sample is one diagnostics reading at one step. Runs are stored in long
// form so every simulation shares the same CSV layout.
type Sample struct {
	Step  int     `csv:"step"`
	Time  float64 `csv:"time"`
	Name  string  `csv:"name"`
	Value float64 `csv:"value"`
	Unit  string  `csv:"unit"`
}

// Create makes a fresh run directory and returns a Recorder writing into it.
func (s *Store) Create(simulation string, every int, now time.Time) (*Recorder, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}
	base := fmt.Sprintf("%s_%s", simulation, now.UTC().Format("20060102T150405.000"))
	id := base
	for n := 2; ; n++ {
		err := os.Mkdir(filepath.Join(s.baseDir, id), 0755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("creating run %s: %w", id, err)
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}

	runDir := filepath.Join(s.baseDir, id)
	f, err := os.Create(filepath.Join(runDir, diagnosticsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", diagnosticsFile, err)
	}
	if every < 1 {
		every = 1
	}
	return &Recorder{id: id, dir: runDir, file: f, every: every, started: now}, nil
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decoding %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// Latest returns the most recent run, optionally restricted to one
// simulation.
func (s *Store) Latest(simulation string) (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if simulation == "" || runs[i].Simulation == simulation {
			return &runs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no runs for %q", ErrRunNotFound, simulation)
}

func (s *Store) LoadSamples(runID string) ([]Sample, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, diagnosticsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []Sample{}, nil
		}
		return nil, fmt.Errorf("reading %s samples: %w", runID, err)
	}
	return samples, nil
}

// Series extracts one named reading as parallel time and value slices.
func Series(samples []Sample, name string) (times, values []float64) {
	for _, sm := range samples {
		if sm.Name == name {
			times = append(times, sm.Time)
			values = append(values, sm.Value)
		}
	}
	return times, values
}

// Names lists the distinct readings in first-seen order.
func Names(samples []Sample) []string {
	seen := make(map[string]bool)
	var names []string
	for _, sm := range samples {
		if !seen[sm.Name] {
			seen[sm.Name] = true
			names = append(names, sm.Name)
		}
	}
	return names
}

// Recorder is a sim.Observer that appends every Nth step to a run's CSV.
// The first write error is kept and returned from Close; later steps are
// dropped.
type Recorder struct {
	id            string
	dir           string
	file          *os.File
	every         int
	started       time.Time
	headerWritten bool
	rows          int
	err           error
}

func (r *Recorder) ID() string { return r.id }
func (r *Recorder) Rows() int  { return r.rows }

func (r *Recorder) OnStep(step int, t float64, d dynamo.Diagnostics) {
	if r.err != nil || step%r.every != 0 {
		return
	}
	records := make([]Sample, 0, len(d))
	for _, rd := range d {
		records = append(records, Sample{Step: step, Time: t, Name: rd.Name, Value: rd.Value, Unit: rd.Unit})
	}
	if len(records) == 0 {
		return
	}

	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			r.err = fmt.Errorf("writing diagnostics: %w", err)
			return
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
			r.err = fmt.Errorf("writing diagnostics: %w", err)
			return
		}
	}
	r.rows += len(records)
}

// Close finishes the run by writing its metadata. ID, Timestamp and
// Every are filled in from the recorder.
func (r *Recorder) Close(meta RunMetadata) error {
	if err := r.file.Close(); err != nil && r.err == nil {
		r.err = fmt.Errorf("closing %s: %w", diagnosticsFile, err)
	}
	if r.err != nil {
		return r.err
	}

	meta.ID = r.id
	meta.Timestamp = r.started
	meta.Every = r.every

	metaFile, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return fmt.Errorf("creating %s: %w", metadataFile, err)
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("writing %s: %w", metadataFile, err)
	}
	return nil
}
