package reliability

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	testingutil "github.com/aristath/advisor/internal/testing"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr map[string]error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{objects: map[string][]byte{}, deleteErr: map[string]error{}}
}

func (m *memoryStore) Upload(_ context.Context, key string, body io.Reader, _ int64) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = data
	return nil
}

func (m *memoryStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			out = append(out, ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return out, nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	if err := m.deleteErr[key]; err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	gz, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	tr := tar.NewReader(gz)

	files := map[string][]byte{}
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(tr)
		require.NoError(t, err)
		files[hdr.Name] = content
	}
	return files
}

func TestCreateAndUploadBackup(t *testing.T) {
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	defer cleanup()

	_, err := db.Conn().Exec(`INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ('Ana', 'ana@example.com', 'x', 0, 0)`)
	require.NoError(t, err)

	store := newMemoryStore()
	service := NewBackupService(store, db, t.TempDir(), zerolog.Nop())
	fixed := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	name, err := service.CreateAndUploadBackup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "advisor-backup-2026-03-04-050607.tar.gz", name)
	require.Equal(t, []string{name}, store.keys())

	files := readArchive(t, store.objects[name])
	require.Contains(t, files, "advisor.db")
	require.Contains(t, files, metadataFilename)

	var metadata BackupMetadata
	require.NoError(t, json.Unmarshal(files[metadataFilename], &metadata))
	assert.Equal(t, fixed, metadata.Timestamp)
	require.Len(t, metadata.Databases, 1)
	assert.Equal(t, "advisor", metadata.Databases[0].Name)
	assert.Equal(t, int64(len(files["advisor.db"])), metadata.Databases[0].SizeBytes)
	assert.True(t, strings.HasPrefix(metadata.Databases[0].Checksum, "sha256:"))
}

func TestCreateAndUploadBackup_UploadFailure(t *testing.T) {
	db, cleanup := testingutil.NewTestDB(t, "advisor")
	defer cleanup()

	store := newMemoryStore()
	store.uploadErr = errors.New("bucket unavailable")
	service := NewBackupService(store, db, t.TempDir(), zerolog.Nop())

	_, err := service.CreateAndUploadBackup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestListBackups_NewestFirstAndSkipsForeignObjects(t *testing.T) {
	store := newMemoryStore()
	store.objects["advisor-backup-2026-01-01-000000.tar.gz"] = []byte("a")
	store.objects["advisor-backup-2026-01-03-000000.tar.gz"] = []byte("abc")
	store.objects["advisor-backup-2026-01-02-000000.tar.gz"] = []byte("ab")
	store.objects["advisor-backup-garbage.tar.gz"] = []byte("x")

	service := NewBackupService(store, nil, t.TempDir(), zerolog.Nop())
	service.now = func() time.Time { return time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC) }

	backups, err := service.ListBackups(context.Background())
	require.NoError(t, err)
	require.Len(t, backups, 3)

	assert.Equal(t, "advisor-backup-2026-01-03-000000.tar.gz", backups[0].Filename)
	assert.Equal(t, int64(3), backups[0].SizeBytes)
	assert.Equal(t, int64(24), backups[0].AgeHours)
	assert.Equal(t, "advisor-backup-2026-01-01-000000.tar.gz", backups[2].Filename)
}

func TestRotateOldBackups(t *testing.T) {
	now := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)

	seed := func() *memoryStore {
		store := newMemoryStore()
		for _, daysAgo := range []int{1, 2, 40, 50, 60} {
			store.objects[BackupFilename(now.AddDate(0, 0, -daysAgo))] = []byte("x")
		}
		return store
	}

	t.Run("deletes expired beyond minimum", func(t *testing.T) {
		store := seed()
		service := NewBackupService(store, nil, t.TempDir(), zerolog.Nop())
		service.now = func() time.Time { return now }

		deleted, err := service.RotateOldBackups(context.Background(), 30)
		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		// The 40-day-old archive survives as one of the newest three
		assert.Equal(t, []string{
			BackupFilename(now.AddDate(0, 0, -40)),
			BackupFilename(now.AddDate(0, 0, -2)),
			BackupFilename(now.AddDate(0, 0, -1)),
		}, store.keys())
	})

	t.Run("keeps minimum regardless of age", func(t *testing.T) {
		store := newMemoryStore()
		for _, daysAgo := range []int{100, 200, 300} {
			store.objects[BackupFilename(now.AddDate(0, 0, -daysAgo))] = []byte("x")
		}
		service := NewBackupService(store, nil, t.TempDir(), zerolog.Nop())
		service.now = func() time.Time { return now }

		deleted, err := service.RotateOldBackups(context.Background(), 1)
		require.NoError(t, err)
		assert.Zero(t, deleted)
		assert.Len(t, store.keys(), 3)
	})

	t.Run("delete failure is skipped", func(t *testing.T) {
		store := seed()
		store.deleteErr[BackupFilename(now.AddDate(0, 0, -50))] = errors.New("denied")
		service := NewBackupService(store, nil, t.TempDir(), zerolog.Nop())
		service.now = func() time.Time { return now }

		deleted, err := service.RotateOldBackups(context.Background(), 30)
		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
		assert.Len(t, store.keys(), 4)
	})
}

func TestParseBackupFilename(t *testing.T) {
	ts := time.Date(2026, 1, 8, 14, 30, 22, 0, time.UTC)

	got, ok := ParseBackupFilename(BackupFilename(ts))
	require.True(t, ok)
	assert.Equal(t, ts, got)

	_, ok = ParseBackupFilename("advisor-backup-2026-01-08.tar.gz")
	assert.False(t, ok)
	_, ok = ParseBackupFilename("other-2026-01-08-143022.tar.gz")
	assert.False(t, ok)
}
