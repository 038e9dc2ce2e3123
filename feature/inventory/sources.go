package inventory

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"

	"stock-reconciler/core/runcache"
	"stock-reconciler/core/storage"
	"stock-reconciler/feature/inventory/extract"
)

// Source abstracts where the extracts live. The pipeline only ever lists,
// stats and opens files, so both a local folder tree and an object-storage
// bucket can serve it.
type Source interface {
	// List returns the files under prefix whose names end in one of exts,
	// with the size/modtime needed for fingerprinting.
	List(ctx context.Context, prefix string, exts ...string) ([]runcache.FileStat, error)

	// Stat returns the FileStat for a single named file.
	Stat(ctx context.Context, name string) (runcache.FileStat, error)

	// Open returns the raw contents of a named file.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// PrepareStock performs source-side housekeeping on the stock extract
	// location before listing it.
	PrepareStock(ctx context.Context, prefix string) error
}

// opener adapts a Source to the loaders' context-free Opener.
type opener struct {
	ctx context.Context
	src Source
}

func (o opener) Open(name string) (io.ReadCloser, error) {
	return o.src.Open(o.ctx, name)
}

var _ extract.Opener = opener{}

// LocalSource reads extracts from folders on the local filesystem.
type LocalSource struct{}

// NewLocalSource creates a local filesystem Source.
func NewLocalSource() *LocalSource {
	return &LocalSource{}
}

func (s *LocalSource) List(_ context.Context, prefix string, exts ...string) ([]runcache.FileStat, error) {
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return nil, err
	}
	var stats []runcache.FileStat
	for _, entry := range entries {
		if entry.IsDir() || !hasAnySuffix(entry.Name(), exts) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats = append(stats, runcache.FileStat{
			Name:    filepath.Join(prefix, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return stats, nil
}

func (s *LocalSource) Stat(_ context.Context, name string) (runcache.FileStat, error) {
	info, err := os.Stat(name)
	if err != nil {
		return runcache.FileStat{}, err
	}
	return runcache.FileStat{Name: name, Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (s *LocalSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// PrepareStock renames spreadsheet-suffixed extract files (*.xls*) to .txt.
// The exporting system saves tab-delimited text under a spreadsheet
// extension; the rename keeps discovery a single glob over *.txt.
func (s *LocalSource) PrepareStock(_ context.Context, prefix string) error {
	entries, err := os.ReadDir(prefix)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.Contains(strings.ToLower(filepath.Ext(name)), ".xls") {
			continue
		}
		base := strings.TrimSuffix(name, filepath.Ext(name))
		target := filepath.Join(prefix, base+".txt")
		if _, err := os.Stat(target); err == nil {
			continue
		}
		if err := os.Rename(filepath.Join(prefix, name), target); err != nil {
			return fmt.Errorf("rename stock extract %s: %w", name, err)
		}
	}
	return nil
}

// BucketSource reads extracts from an object-storage bucket, using the
// configured folder paths as object prefixes.
type BucketSource struct {
	client storage.Client
	bucket string
}

// NewBucketSource creates a bucket-backed Source.
func NewBucketSource(client storage.Client, bucket string) *BucketSource {
	return &BucketSource{client: client, bucket: bucket}
}

// Ping verifies the configured bucket exists before any run starts, so a
// misconfigured endpoint fails up front instead of as an empty input set.
func (s *BucketSource) Ping(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// Publish uploads a result table into the bucket, next to the extracts.
func (s *BucketSource) Publish(ctx context.Context, name string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	return err
}

func (s *BucketSource) List(ctx context.Context, prefix string, exts ...string) ([]runcache.FileStat, error) {
	var stats []runcache.FileStat
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    strings.TrimSuffix(prefix, "/") + "/",
		Recursive: true,
	}) {
		if info.Err != nil {
			return nil, info.Err
		}
		if !hasAnySuffix(info.Key, exts) {
			continue
		}
		stats = append(stats, runcache.FileStat{
			Name:    info.Key,
			Size:    info.Size,
			ModTime: info.LastModified,
		})
	}
	return stats, nil
}

func (s *BucketSource) Stat(ctx context.Context, name string) (runcache.FileStat, error) {
	// Minio exposes stat through listing the exact key.
	for info := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: name}) {
		if info.Err != nil {
			return runcache.FileStat{}, info.Err
		}
		if info.Key == name {
			return runcache.FileStat{Name: info.Key, Size: info.Size, ModTime: info.LastModified}, nil
		}
	}
	return runcache.FileStat{}, fmt.Errorf("object %s not found: %w", name, os.ErrNotExist)
}

func (s *BucketSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
}

// PrepareStock is a no-op for buckets: uploads are expected to arrive with
// their final names.
func (s *BucketSource) PrepareStock(context.Context, string) error { return nil }

func hasAnySuffix(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
