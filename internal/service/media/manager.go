// Package media manages the file-backed binary attachments of mood entries:
// images and audio clips stored under an application-private asset
// directory on a timestamp-based naming scheme. It owns the files only; the
// journal store owns the references, and orphan reclamation bridges the two
// through a caller-supplied snapshot of live handles.
package media

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Asset naming scheme. The orphan scan matches exactly these two prefixes
// and ignores everything else in the directory.
const (
	ImagePrefix = "mood_image_"
	AudioPrefix = "recording_"

	imageExt = ".jpg"
	audioExt = ".m4a"
)

// UnknownSize is the sentinel returned by SizeOf when the file size cannot
// be determined. SizeOf is best-effort and never errors.
const UnknownSize = "未知"

// ErrInvalidHandle is returned when a handle is empty or would escape the
// asset directory.
var ErrInvalidHandle = errors.New("invalid media handle")

// Manager performs synchronous, blocking file I/O for media assets. It is
// designed for single-threaded use; the sub-second timestamp in generated
// names guarantees uniqueness under that discipline.
type Manager struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// NewManager creates a media manager rooted at dir, creating the directory
// if needed. If logger is nil, the default logger is used.
func NewManager(dir string, logger *slog.Logger) (*Manager, error) {
	if dir == "" {
		return nil, errors.New("media: dir cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("media: creating asset dir: %w", err)
	}

	return &Manager{
		dir:    dir,
		logger: logger.With(slog.String("component", "media_manager")),
		now:    time.Now,
	}, nil
}

// SaveImage writes image bytes to a uniquely named file and returns its
// handle. The file is created exclusively, so an existing file is never
// overwritten.
func (m *Manager) SaveImage(data []byte) (string, error) {
	return m.save(ImagePrefix, imageExt, data)
}

// SaveAudio writes an audio clip to a uniquely named file and returns its
// handle.
func (m *Manager) SaveAudio(data []byte) (string, error) {
	return m.save(AudioPrefix, audioExt, data)
}

func (m *Manager) save(prefix, ext string, data []byte) (string, error) {
	handle := fmt.Sprintf("%s%.6f%s", prefix, float64(m.now().UnixNano())/1e9, ext)

	file, err := os.OpenFile(filepath.Join(m.dir, handle), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("media: creating %s: %w", handle, err)
	}

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(filepath.Join(m.dir, handle))
		return "", fmt.Errorf("media: writing %s: %w", handle, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(filepath.Join(m.dir, handle))
		return "", fmt.Errorf("media: closing %s: %w", handle, err)
	}

	m.logger.Info("media asset saved",
		slog.String("handle", handle),
		slog.Int("bytes", len(data)))
	return handle, nil
}

// Delete removes the file backing the handle. A missing file is not an
// error, so deletes are idempotent.
func (m *Manager) Delete(handle string) error {
	path, err := m.path(handle)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("media: deleting %s: %w", handle, err)
	}
	return nil
}

// SizeOf returns the human-readable size of the file backing the handle,
// or the UnknownSize sentinel when it cannot be determined.
func (m *Manager) SizeOf(handle string) string {
	path, err := m.path(handle)
	if err != nil {
		return UnknownSize
	}

	info, err := os.Stat(path)
	if err != nil {
		return UnknownSize
	}
	return humanize.Bytes(uint64(info.Size()))
}

// ReclaimOrphans deletes every file in the asset directory that matches the
// manager's naming scheme but whose handle is absent from live, and returns
// the number of files removed. The live set must be a snapshot of every
// handle referenced by any entry, taken atomically with respect to the
// journal's in-memory state; this is an explicit maintenance operation, not
// part of entry CRUD.
func (m *Manager) ReclaimOrphans(live map[string]struct{}) (int, error) {
	dirEntries, err := os.ReadDir(m.dir)
	if err != nil {
		return 0, fmt.Errorf("media: scanning asset dir: %w", err)
	}

	reclaimed := 0
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() {
			continue
		}
		name := dirEntry.Name()
		if !strings.HasPrefix(name, ImagePrefix) && !strings.HasPrefix(name, AudioPrefix) {
			continue
		}
		if _, referenced := live[name]; referenced {
			continue
		}

		if err := os.Remove(filepath.Join(m.dir, name)); err != nil {
			m.logger.Warn("failed to reclaim orphan",
				slog.String("handle", name),
				slog.String("error", err.Error()))
			continue
		}

		reclaimed++
		m.logger.Info("orphan reclaimed", slog.String("handle", name))
	}

	return reclaimed, nil
}

// path maps a handle to its file, rejecting handles that would escape the
// asset directory.
func (m *Manager) path(handle string) (string, error) {
	if handle == "" || strings.ContainsAny(handle, `/\`) || handle == "." || handle == ".." {
		return "", ErrInvalidHandle
	}
	return filepath.Join(m.dir, handle), nil
}
