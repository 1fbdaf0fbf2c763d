package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/convertly/convertly/pkg/logger"
)

// UploadedFile is a single received upload persisted to the uploads
// directory. OriginalName is client-supplied and untrusted; StoredPath is
// server-generated and collision-free.
type UploadedFile struct {
	OriginalName string
	StoredPath   string
	SizeBytes    int64
	MimeType     string
}

// Layout owns the uploads/ and output/ directories. Directories are created
// lazily on first write. All generated names embed a timestamp and a random
// suffix so concurrent writers cannot collide.
type Layout struct {
	fs         afero.Fs
	uploadsDir string
	outputDir  string
	maxBytes   int64
	log        logger.Logger
}

// NewLayout creates a Layout over fs. maxBytes is the per-file upload size
// ceiling; saves exceeding it are rejected and leave no partial file behind.
func NewLayout(fs afero.Fs, uploadsDir, outputDir string, maxBytes int64, log logger.Logger) *Layout {
	return &Layout{
		fs:         fs,
		uploadsDir: uploadsDir,
		outputDir:  outputDir,
		maxBytes:   maxBytes,
		log:        log,
	}
}

// UploadsDir returns the uploads directory path.
func (l *Layout) UploadsDir() string { return l.uploadsDir }

// OutputDir returns the output directory path.
func (l *Layout) OutputDir() string { return l.outputDir }

// Fs exposes the underlying filesystem for read access in handlers.
func (l *Layout) Fs() afero.Fs { return l.fs }

// GeneratedName produces a collision-free storage name for an upload:
// <field>-<millisecond-timestamp>-<random-suffix><original-extension>.
func GeneratedName(field, originalName string) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s-%d-%s%s", field, time.Now().UnixMilli(), suffix, ext)
}

// SaveUpload writes one multipart part to the uploads directory under a
// generated name, enforcing the per-file size ceiling. On any failure the
// partial file is removed.
func (l *Layout) SaveUpload(field, originalName string, r io.Reader) (*UploadedFile, error) {
	if err := l.fs.MkdirAll(l.uploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	name := GeneratedName(field, originalName)
	path := filepath.Join(l.uploadsDir, name)

	f, err := l.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload file: %w", err)
	}

	// Read one byte past the ceiling so an oversize stream is detectable.
	n, err := io.Copy(f, io.LimitReader(r, l.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = l.fs.Remove(path)
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if n > l.maxBytes {
		_ = l.fs.Remove(path)
		return nil, fmt.Errorf("file %q exceeds the maximum upload size of %s",
			originalName, humanize.IBytes(uint64(l.maxBytes)))
	}

	return &UploadedFile{
		OriginalName: originalName,
		StoredPath:   path,
		SizeBytes:    n,
	}, nil
}

// OutputPath returns the full path for a new artifact name, creating the
// output directory if needed.
func (l *Layout) OutputPath(name string) (string, error) {
	if err := l.fs.MkdirAll(l.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(l.outputDir, name), nil
}

// ResolveDownload maps a public artifact name to a file on disk. The output
// directory is checked first, then the uploads directory as a secondary
// lookup. Names carrying path separators or traversal segments are rejected.
func (l *Layout) ResolveDownload(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid artifact name %q", name)
	}

	for _, dir := range []string{l.outputDir, l.uploadsDir} {
		path := filepath.Join(dir, name)
		if ok, err := afero.Exists(l.fs, path); err == nil && ok {
			return path, nil
		}
	}
	return "", fmt.Errorf("artifact %q not found", name)
}

// FileSize returns the byte length of a file.
func (l *Layout) FileSize(path string) (int64, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Open opens a file for reading.
func (l *Layout) Open(path string) (afero.File, error) {
	return l.fs.Open(path)
}

// Remove deletes a file. A missing file is a no-op.
func (l *Layout) Remove(path string) error {
	err := l.fs.Remove(path)
	if err != nil {
		if ok, statErr := afero.Exists(l.fs, path); statErr == nil && !ok {
			return nil
		}
		return err
	}
	return nil
}
