package inventory

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stock-reconciler/core/storage/mocks"
)

func objectChannel(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func TestBucketSource_ListFiltersByExtension(t *testing.T) {
	mockClient := new(mocks.Client)
	src := NewBucketSource(mockClient, "extracts")

	now := time.Now()
	mockClient.On("ListObjects", mock.Anything, "extracts", mock.Anything).Return(objectChannel(
		minio.ObjectInfo{Key: "SAP/giacenze.txt", Size: 10, LastModified: now},
		minio.ObjectInfo{Key: "SAP/readme.md", Size: 5, LastModified: now},
	))

	stats, err := src.List(context.Background(), "SAP", ".txt")
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "SAP/giacenze.txt", stats[0].Name)
	assert.Equal(t, int64(10), stats[0].Size)
}

func TestBucketSource_StatMatchesExactKey(t *testing.T) {
	mockClient := new(mocks.Client)
	src := NewBucketSource(mockClient, "extracts")

	mockClient.On("ListObjects", mock.Anything, "extracts", mock.Anything).Return(objectChannel(
		minio.ObjectInfo{Key: "NAV.xlsx.bak", Size: 1},
		minio.ObjectInfo{Key: "NAV.xlsx", Size: 99},
	))

	stat, err := src.Stat(context.Background(), "NAV.xlsx")
	require.NoError(t, err)
	assert.Equal(t, int64(99), stat.Size)
}

func TestBucketSource_StatMissing(t *testing.T) {
	mockClient := new(mocks.Client)
	src := NewBucketSource(mockClient, "extracts")

	mockClient.On("ListObjects", mock.Anything, "extracts", mock.Anything).Return(objectChannel())

	_, err := src.Stat(context.Background(), "NAV.xlsx")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBucketSource_Ping(t *testing.T) {
	mockClient := new(mocks.Client)
	src := NewBucketSource(mockClient, "extracts")

	mockClient.On("BucketExists", mock.Anything, "extracts").Return(true, nil).Once()
	assert.NoError(t, src.Ping(context.Background()))

	mockClient.On("BucketExists", mock.Anything, "extracts").Return(false, nil).Once()
	assert.Error(t, src.Ping(context.Background()))
}

func TestBucketSource_Publish(t *testing.T) {
	mockClient := new(mocks.Client)
	src := NewBucketSource(mockClient, "extracts")

	mockClient.On("PutObject", mock.Anything, "extracts", "riepilogo.csv",
		mock.Anything, int64(4), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := src.Publish(context.Background(), "riepilogo.csv", strings.NewReader("a,b\n"), 4)
	require.NoError(t, err)
	mockClient.AssertExpectations(t)
}

func TestLocalSource_PrepareStockRenamesSpreadsheetSuffixes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "giacenze.XLSX"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "già.txt"), []byte("y"), 0o644))

	src := NewLocalSource()
	require.NoError(t, src.PrepareStock(context.Background(), dir))

	assert.NoFileExists(t, filepath.Join(dir, "giacenze.XLSX"))
	assert.FileExists(t, filepath.Join(dir, "giacenze.txt"))
	assert.FileExists(t, filepath.Join(dir, "già.txt"))
}

func TestLocalSource_PrepareStockKeepsExistingTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "giacenze.xls"), []byte("old"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "giacenze.txt"), []byte("new"), 0o644))

	src := NewLocalSource()
	require.NoError(t, src.PrepareStock(context.Background(), dir))

	data, err := os.ReadFile(filepath.Join(dir, "giacenze.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
	assert.FileExists(t, filepath.Join(dir, "giacenze.xls"))
}

func TestLocalSource_ListAndOpen(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "export.csv"), []byte("a,b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("n"), 0o644))

	src := NewLocalSource()
	stats, err := src.List(context.Background(), dir, ".csv")
	require.NoError(t, err)
	require.Len(t, stats, 1)

	rc, err := src.Open(context.Background(), stats[0].Name)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}
