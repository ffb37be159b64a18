package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/fieldsim/internal/field"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var ErrNoRunID = errors.New("storage: empty run id")

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
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Mode      string             `json:"mode"`
	Frames    int                `json:"frames"`
	Seeds     int                `json:"seeds"`
	Metrics   map[string]float64 `json:"metrics"`
}

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Frame     uint64  `csv:"frame"`
	Particles int     `csv:"particles"`
	Links     int     `csv:"links"`
	Mode      string  `csv:"mode"`
	ElapsedMS float64 `csv:"elapsed_ms"`
}

func Records(stats []field.FrameStats) []FrameRecord {
	out := make([]FrameRecord, len(stats))
	for i, s := range stats {
		out[i] = FrameRecord{
			Frame:     s.Frame,
			Particles: s.Particles,
			Links:     s.Links,
			Mode:      string(s.Mode),
			ElapsedMS: float64(s.Elapsed) / float64(time.Millisecond),
		}
	}
	return out
}

// Save writes meta and the per-frame records into a new run directory and
// returns the run id. An empty meta.ID is derived from the preset and time.
func (s *Store) Save(meta RunMetadata, frames []FrameRecord) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	if meta.ID == "" {
		preset := meta.Preset
		if preset == "" {
			preset = "run"
		}
		meta.ID = fmt.Sprintf("%s_%d", preset, meta.Timestamp.UnixNano())
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("writing metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	if len(frames) > 0 {
		if err := gocsv.MarshalFile(&frames, csvFile); err != nil {
			csvFile.Close()
			return "", fmt.Errorf("writing frames: %w", err)
		}
	}
	if err := csvFile.Close(); err != nil {
		return "", fmt.Errorf("writing frames: %w", err)
	}

	return meta.ID, nil
}

// writeJSON encodes v indented into a new file at path.
func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	if runID == "" {
		return nil, ErrNoRunID
	}
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing metadata for %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads frames.csv back. A run saved without frames loads as an
// empty slice.
func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	if runID == "" {
		return nil, ErrNoRunID
	}
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	frames := []FrameRecord{}
	if info.Size() == 0 {
		return frames, nil
	}
	if err := gocsv.UnmarshalFile(file, &frames); err != nil {
		return nil, fmt.Errorf("parsing frames for %s: %w", runID, err)
	}
	return frames, nil
}

// ExportData bundles a run's metadata and frames into one document.
type ExportData struct {
	RunMetadata
	Records []FrameRecord `json:"records"`
}

// ExportJSON writes a run as a single JSON file at path.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	return writeJSON(path, ExportData{RunMetadata: *meta, Records: frames})
}
