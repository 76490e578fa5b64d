package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/neuralbg/internal/render"
)

var ErrNoRun = errors.New("run not found")

var frameHeader = []string{"tick", "particles", "links", "reflections", "width", "height"}

// Store keeps one directory per recorded run: metadata.json plus
// frames.csv with one row per rendered frame.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Count      int                `json:"count"`
	Distance   float64            `json:"distance"`
	Width      int                `json:"width"`
	Height     int                `json:"height"`
	Frames     uint64             `json:"frames"`
	LinkPeriod float64            `json:"link_period,omitempty"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes meta and the frame log under a fresh run id, which it
// returns. ID and Timestamp in meta are overwritten.
func (s *Store) Save(meta RunMetadata, frames []render.FrameStats) (string, error) {
	ts := s.now()
	runID := fmt.Sprintf("%s_%s", meta.Preset, ts.UTC().Format("20060102T150405.000000000"))
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = ts
	if err := writeJSON(filepath.Join(runDir, "metadata.json"), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, "frames.csv"), frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFrames(path string, frames []render.FrameStats) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeFile(f, &err)

	w := csv.NewWriter(f)
	if err := w.Write(frameHeader); err != nil {
		return err
	}
	for _, fs := range frames {
		row := []string{
			strconv.FormatUint(fs.Tick, 10),
			strconv.Itoa(fs.Particles),
			strconv.Itoa(fs.Links),
			strconv.Itoa(fs.Reflections),
			strconv.Itoa(fs.Width),
			strconv.Itoa(fs.Height),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// closeFile closes c and reports its error through err unless an earlier
// error is already set.
func closeFile(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = cerr
	}
}

// List returns every readable run, oldest first. Directories without
// valid metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0, len(entries))
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the frame log of a run back.
func (s *Store) LoadFrames(runID string) ([]render.FrameStats, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoRun, runID)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(frameHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []render.FrameStats{}, nil
	}

	frames := make([]render.FrameStats, 0, len(records)-1)
	for i, rec := range records[1:] {
		var ints [5]int
		for j := range ints {
			v, err := strconv.Atoi(rec[j+1])
			if err != nil {
				return nil, fmt.Errorf("frames.csv line %d: %w", i+2, err)
			}
			ints[j] = v
		}
		tick, err := strconv.ParseUint(rec[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("frames.csv line %d: %w", i+2, err)
		}
		frames = append(frames, render.FrameStats{
			Tick:        tick,
			Particles:   ints[0],
			Links:       ints[1],
			Reflections: ints[2],
			Width:       ints[3],
			Height:      ints[4],
		})
	}
	return frames, nil
}
