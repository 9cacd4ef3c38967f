package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wavefield/internal/driver"
	"github.com/san-kum/wavefield/internal/grid"
	"github.com/san-kum/wavefield/internal/wave"
)

var ErrNoHeights = errors.New("storage: frame has no heights")

const (
	metadataFile = "metadata.json"
	heightsFile  = "heights.csv"
)

// Store keeps frame snapshots, one directory each, under baseDir.
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

type SnapshotMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Clock     string             `json:"clock"`
	Frame     uint64             `json:"frame"`
	Elapsed   float64            `json:"elapsed"`
	Segments  int                `json:"segments"`
	Size      float64            `json:"size"`
	Layers    wave.Layers        `json:"layers"`
	PointSize float64            `json:"point_size"`
	Tint      string             `json:"tint"`
	Backend   string             `json:"backend"`
	Metrics   map[string]float64 `json:"metrics,omitempty"`
}

// Save writes metadata.json and heights.csv for one frame and returns the
// snapshot id.
func (s *Store) Save(f driver.Frame, plane *grid.Plane, backend string, metrics map[string]float64) (string, error) {
	if len(f.Heights) != plane.Len() {
		return "", fmt.Errorf("%w: %d heights for %d vertices", ErrNoHeights, len(f.Heights), plane.Len())
	}

	now := time.Now()
	id := fmt.Sprintf("frame_%d_%d", now.UnixNano(), f.Index)
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	meta := SnapshotMetadata{
		ID:        id,
		Timestamp: now,
		Clock:     f.Display,
		Frame:     f.Index,
		Elapsed:   f.Elapsed,
		Segments:  plane.Segments,
		Size:      plane.Size,
		Layers:    f.Layers,
		PointSize: f.Appearance.PointSize,
		Tint:      f.Appearance.Tint,
		Backend:   backend,
		Metrics:   metrics,
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeHeights(filepath.Join(dir, heightsFile), f.Heights, plane); err != nil {
		return "", err
	}
	return id, nil
}

func writeJSON(path string, v any) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeHeights(path string, heights []float64, plane *grid.Plane) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write([]string{"row", "col", "x", "z", "height"}); err != nil {
		return err
	}
	side := plane.Side()
	for i, h := range heights {
		v := plane.Vertices[i]
		row := []string{
			strconv.Itoa(i / side),
			strconv.Itoa(i % side),
			strconv.FormatFloat(v.X, 'f', 6, 64),
			strconv.FormatFloat(v.Z, 'f', 6, 64),
			strconv.FormatFloat(h, 'f', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable snapshot, oldest first. A missing base
// directory is an empty store.
func (s *Store) List() ([]SnapshotMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SnapshotMetadata{}, nil
		}
		return nil, err
	}

	snaps := make([]SnapshotMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		snaps = append(snaps, *meta)
	}

	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Timestamp.Before(snaps[j].Timestamp) })
	return snaps, nil
}

func (s *Store) Load(id string) (*SnapshotMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta SnapshotMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadHeights reads the row-major heights of a snapshot.
func (s *Store) LoadHeights(id string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, heightsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	heights := make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		h, err := strconv.ParseFloat(record[len(record)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", heightsFile, i+2, err)
		}
		heights = append(heights, h)
	}
	return heights, nil
}

// LoadFrame rebuilds a snapshot as a frame on its own plane, for exporting
// after the fact.
func (s *Store) LoadFrame(id string) (driver.Frame, *grid.Plane, error) {
	meta, err := s.Load(id)
	if err != nil {
		return driver.Frame{}, nil, err
	}
	plane, err := grid.NewPlane(meta.Segments, meta.Size)
	if err != nil {
		return driver.Frame{}, nil, err
	}
	heights, err := s.LoadHeights(id)
	if err != nil {
		return driver.Frame{}, nil, err
	}
	if len(heights) != plane.Len() {
		return driver.Frame{}, nil, fmt.Errorf("%w: %d heights for %d vertices", ErrNoHeights, len(heights), plane.Len())
	}
	f := driver.Frame{
		Index:      meta.Frame,
		Layers:     meta.Layers,
		Display:    meta.Clock,
		Elapsed:    meta.Elapsed,
		Heights:    heights,
		Appearance: driver.Appearance{PointSize: meta.PointSize, Tint: meta.Tint}.Clamped(),
	}
	return f, plane, nil
}
