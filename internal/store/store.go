package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	apperrors "github.com/burnsba/tasktracker/internal/errors"
	"github.com/burnsba/tasktracker/internal/logging"
	"github.com/burnsba/tasktracker/internal/models"
	"github.com/burnsba/tasktracker/internal/timer"
)

// FileExtension is the conventional extension of task files.
const FileExtension = ".ttt"

// MaxElapsedSeconds is the largest stored total that fits a time.Duration.
const MaxElapsedSeconds = int64(math.MaxInt64 / int64(time.Second))

// Storage reads and writes one task record per file, keyed by path.
type Storage struct {
	clock        clockwork.Clock
	saveInterval time.Duration
	logger       *slog.Logger
	timerOpts    []timer.Option
	mu           sync.Mutex
}

// Option configures a Storage.
type Option func(*Storage)

// WithClock sets the clock used for save debouncing and handed to timers.
func WithClock(c clockwork.Clock) Option {
	return func(s *Storage) { s.clock = c }
}

// WithSaveInterval sets the minimum time between non-forced saves of a timer,
// which is also its auto-save tick.
func WithSaveInterval(d time.Duration) Option {
	return func(s *Storage) {
		if d > 0 {
			s.saveInterval = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Storage) { s.logger = l }
}

// WithTimerOptions adds options applied to every timer the storage creates.
func WithTimerOptions(opts ...timer.Option) Option {
	return func(s *Storage) { s.timerOpts = append(s.timerOpts, opts...) }
}

func NewStorage(opts ...Option) *Storage {
	s := &Storage{
		clock:        clockwork.NewRealClock(),
		saveInterval: timer.DefaultSaveInterval,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.WithComponent(s.logger, "store")
	return s
}

func (s *Storage) newTimer(path string, record models.TaskTime, extra []timer.Option) *timer.SessionTimer {
	opts := []timer.Option{
		timer.WithClock(s.clock),
		timer.WithSaveInterval(s.saveInterval),
		timer.WithLogger(s.logger),
	}
	opts = append(opts, s.timerOpts...)
	opts = append(opts, extra...)
	return timer.New(path, record, s, opts...)
}

// CreateNew writes a default record to path and returns a timer bound to it.
// An existing file at path is overwritten.
func (s *Storage) CreateNew(path string, opts ...timer.Option) (*timer.SessionTimer, error) {
	if path == "" {
		return nil, apperrors.InvalidArgument("path is empty")
	}

	t := s.newTimer(path, models.NewTaskTime(), opts)
	if _, err := s.Save(t, true); err != nil {
		return nil, err
	}

	s.logger.Info("Created task file", "path", path)
	return t, nil
}

// Load reads the record at path and returns an inactive timer bound to it.
func (s *Storage) Load(path string, opts ...timer.Option) (*timer.SessionTimer, error) {
	if path == "" {
		return nil, apperrors.InvalidArgument("path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("file not found: " + path).WithContext("path", path)
		}
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}

	record, err := decode(path, data)
	if err != nil {
		return nil, apperrors.CorruptData("failed to parse task file", err).WithContext("path", path)
	}
	if record.PriorElapsedSeconds < 0 {
		return nil, apperrors.CorruptData(fmt.Sprintf("negative elapsed seconds %d", record.PriorElapsedSeconds), nil).
			WithContext("path", path)
	}
	if record.PriorElapsedSeconds > MaxElapsedSeconds {
		return nil, apperrors.CorruptData(fmt.Sprintf("elapsed seconds %d out of range", record.PriorElapsedSeconds), nil).
			WithContext("path", path)
	}

	s.logger.Info("Loaded task file", "path", path, "task", record.TaskName, "prior_elapsed_seconds", record.PriorElapsedSeconds)
	return s.newTimer(path, record, opts), nil
}

// Save writes t to its bound path. Unless force is set, the write is skipped
// when the previous successful write of t was less than the save interval
// ago. It reports whether a write happened.
func (s *Storage) Save(t *timer.SessionTimer, force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := t.Snapshot()
	if snap.SourceID == "" {
		return false, apperrors.InvalidArgument("timer has no source path")
	}

	now := s.clock.Now()
	if !force && !snap.LastSavedAt.IsZero() && now.Sub(snap.LastSavedAt) < s.saveInterval {
		return false, nil
	}

	data, err := encode(snap.SourceID, snap.Record)
	if err != nil {
		return false, fmt.Errorf("failed to encode task file: %w", err)
	}
	if err := writeFileAtomic(snap.SourceID, data); err != nil {
		return false, err
	}

	t.MarkSaved(now)
	s.logger.Debug("Saved task file", "path", snap.SourceID, "forced", force, "prior_elapsed_seconds", snap.Record.PriorElapsedSeconds)
	return true, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func encode(path string, record models.TaskTime) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(record)
	}
	return json.MarshalIndent(record, "", "  ")
}

var jsonNull = []byte("null")

// decode starts from the defaults so keys missing from the file keep them.
// Input without a record (empty, null, a bare scalar or list) is rejected.
func decode(path string, data []byte) (models.TaskTime, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return models.TaskTime{}, errors.New("file is empty")
	}

	record := models.NewTaskTime()
	if isYAML(path) {
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return models.TaskTime{}, err
		}
		if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
			return models.TaskTime{}, errors.New("file does not hold a record mapping")
		}
		if err := doc.Decode(&record); err != nil {
			return models.TaskTime{}, err
		}
		return record, nil
	}

	if bytes.Equal(trimmed, jsonNull) {
		return models.TaskTime{}, errors.New("file holds null instead of a record")
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return models.TaskTime{}, err
	}
	return record, nil
}

// writeFileAtomic replaces path with data via a temporary file in the same
// directory, so a crash mid-write leaves the previous record intact.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close task file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set task file permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace task file: %w", err)
	}
	return nil
}
