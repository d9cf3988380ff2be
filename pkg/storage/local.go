// Package storage keeps uploaded service images on the local disk.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"home-services/pkg/utils"
)

// URLPrefix is where stored files are served from.
const URLPrefix = "/uploads/"

var (
	ErrUnsupportedType = errors.New("only images are allowed")
	ErrTooLarge        = errors.New("file too large")
)

var allowedExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

type Local struct {
	dir      string
	maxBytes int64
}

func NewLocal(dir string, maxBytes int64) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &Local{dir: dir, maxBytes: maxBytes}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) MaxBytes() int64 {
	return l.maxBytes
}

// FileSystem exposes stored files for http.FileServer. Directories are
// reported as missing so the upload folder is never listed.
func (l *Local) FileSystem() http.FileSystem {
	return filesOnly{http.Dir(l.dir)}
}

type filesOnly struct {
	http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// Save stores an uploaded image under a generated name and returns its public URL.
func (l *Local) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExt[ext] {
		return "", ErrUnsupportedType
	}
	if header.Size > l.maxBytes {
		return "", ErrTooLarge
	}

	// sniff the content too, the extension is client supplied
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !strings.HasPrefix(http.DetectContentType(head[:n]), "image/") {
		return "", ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := utils.GenerateFileName(header.Filename)
	dst, err := os.OpenFile(filepath.Join(l.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}

	written, err := io.Copy(dst, io.LimitReader(file, l.maxBytes+1))
	closeErr := dst.Close()
	if err == nil && written > l.maxBytes {
		err = ErrTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filepath.Join(l.dir, name))
		return "", fmt.Errorf("write %s: %w", name, err)
	}

	return URLPrefix + name, nil
}

// Remove deletes the file behind a URL returned by Save. URLs pointing
// elsewhere are ignored, as are files that are already gone.
func (l *Local) Remove(url string) error {
	name, ok := l.fileName(url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func (l *Local) fileName(url string) (string, bool) {
	if !strings.HasPrefix(url, URLPrefix) {
		return "", false
	}
	name := path.Base(strings.TrimPrefix(url, URLPrefix))
	if name == "." || name == "/" || name == ".." {
		return "", false
	}
	return name, true
}

// Sweep removes files older than maxAge that no url in keep refers to.
// It returns the removed file names.
func (l *Local) Sweep(keep []string, maxAge time.Duration) ([]string, error) {
	referenced := make(map[string]bool, len(keep))
	for _, url := range keep {
		if name, ok := l.fileName(url); ok {
			referenced[name] = true
		}
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read upload dir: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	var removed []string
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(l.dir, entry.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, entry.Name())
	}

	return removed, errors.Join(errs...)
}
