package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/mymaps/pkg/maps"
)

func newMap(t *testing.T, title string, places ...maps.Place) maps.Map {
	t.Helper()
	m, err := maps.New(title, places)
	require.NoError(t, err)
	return m
}

func newStore(t *testing.T, name string, opts Options) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), name), opts)
	require.NoError(t, err)
	return st
}

// recorder is an Observer that keeps every notification.
type recorder struct {
	reloads    []Collection
	insertions []int
	last       Collection
}

func (r *recorder) Reloaded(c Collection) {
	r.reloads = append(r.reloads, c)
	r.last = c
}

func (r *recorder) Inserted(pos int, c Collection) {
	r.insertions = append(r.insertions, pos)
	r.last = c
}

func TestLoad_FirstRun(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})

	c, err := st.Load()
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.Equal(t, 0, st.Len())

	_, statErr := os.Stat(st.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "load must not create the data file")
}

func TestAppend_ThenLoad(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	_, err := st.Load()
	require.NoError(t, err)

	trip := newMap(t, "Trip")
	pos, err := st.Append(trip)
	require.NoError(t, err)
	assert.Equal(t, 0, pos)

	// A fresh store on the same file sees the write-through.
	other, err := New(st.Path(), Options{})
	require.NoError(t, err)
	c, err := other.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Trip"}, c.Titles())
}

func TestAppend_NSequenceMatchesDisk(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			st := newStore(t, "maps."+string(format), Options{})
			_, err := st.Load()
			require.NoError(t, err)

			for i := 0; i < 5; i++ {
				m := newMap(t, "map "+string(rune('A'+i)), maps.Place{Title: "p", Latitude: float64(i), Longitude: float64(-i)})
				_, err := st.Append(m)
				require.NoError(t, err)

				reader, err := New(st.Path(), Options{})
				require.NoError(t, err)
				onDisk, err := reader.Load()
				require.NoError(t, err)

				if diff := cmp.Diff(st.Snapshot(), onDisk); diff != "" {
					t.Fatalf("after append %d disk differs from memory (-mem +disk):\n%s", i+1, diff)
				}
			}
		})
	}
}

func TestAppend_Ordering(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	_, err := st.Load()
	require.NoError(t, err)

	_, err = st.Append(newMap(t, "m1"))
	require.NoError(t, err)
	_, err = st.Append(newMap(t, "m2"))
	require.NoError(t, err)

	assert.Equal(t, []string{"m1", "m2"}, st.Snapshot().Titles())
}

func TestLoad_Idempotent(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, st.Save(Collection{newMap(t, "A"), newMap(t, "B")}))

	first, err := st.Load()
	require.NoError(t, err)
	second, err := st.Load()
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second load differs (-first +second):\n%s", diff)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 123, time.UTC)
	full := Collection{
		{ID: "1", Title: "Coffee", CreatedAt: now, Places: []maps.Place{
			{Title: "Blue Bottle", Description: "pour over", Latitude: 37.776, Longitude: -122.423},
			{Title: "Sightglass", Latitude: 37.771, Longitude: -122.409},
		}},
		{ID: "2", Title: "Empty map", CreatedAt: now, Places: []maps.Place{}},
	}

	tests := []struct {
		name string
		file string
		c    Collection
	}{
		{name: "json empty", file: "maps.json", c: Collection{}},
		{name: "json full", file: "maps.json", c: full},
		{name: "yaml empty", file: "maps.yaml", c: Collection{}},
		{name: "yaml full", file: "maps.yml", c: full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := newStore(t, tt.file, Options{})
			require.NoError(t, st.Save(tt.c))

			got, err := st.Load()
			require.NoError(t, err)
			if diff := cmp.Diff(tt.c, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAppend_WriteFailureRollsBack(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, st.Save(Collection{newMap(t, "A")}))
	_, err := st.Load()
	require.NoError(t, err)

	before, err := os.ReadFile(st.Path())
	require.NoError(t, err)

	rec := &recorder{}
	st.Subscribe(rec)
	st.writeFile = func(string, []byte) error { return errors.New("disk full") }

	pos, err := st.Append(newMap(t, "B"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWrite)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, -1, pos)

	assert.Equal(t, []string{"A"}, st.Snapshot().Titles(), "failed append must be rolled back")
	assert.Empty(t, rec.insertions, "observers must not hear about a rolled back append")

	after, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAppend_NotifiesObservers(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, st.Save(Collection{newMap(t, "A"), newMap(t, "B")}))

	rec := &recorder{}
	st.Subscribe(rec)

	_, err := st.Load()
	require.NoError(t, err)
	require.Len(t, rec.reloads, 1)
	assert.Equal(t, []string{"A", "B"}, rec.reloads[0].Titles())

	pos, err := st.Append(newMap(t, "C"))
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
	assert.Equal(t, []int{2}, rec.insertions)
	assert.Equal(t, []string{"A", "B", "C"}, rec.last.Titles())
}

func TestSnapshot_IsACopy(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	_, err := st.Append(newMap(t, "A", maps.Place{Title: "p"}))
	require.NoError(t, err)

	snap := st.Snapshot()
	snap[0].Title = "mutated"
	snap[0].Places[0].Title = "mutated"

	m, err := st.At(0)
	require.NoError(t, err)
	assert.Equal(t, "A", m.Title)
	assert.Equal(t, "p", m.Places[0].Title)
}

func TestAt_OutOfRange(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	for _, pos := range []int{-1, 0, 3} {
		_, err := st.At(pos)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}
}

func TestLoad_CorruptFails(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, os.WriteFile(st.Path(), []byte("\xac\xed\x00\x05not json"), 0o600))

	_, err := st.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, st.Quarantined())

	// The bad file is left where it was.
	_, statErr := os.Stat(st.Path())
	assert.NoError(t, statErr)
}

func TestLoad_CorruptQuarantine(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{OnCorrupt: CorruptionQuarantine})
	fixed := time.Unix(1700000000, 0)
	st.now = func() time.Time { return fixed }

	garbage := []byte("{\"version\": 1, \"maps\": [")
	require.NoError(t, os.WriteFile(st.Path(), garbage, 0o600))

	c, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, c)

	want := st.Path() + ".corrupt-1700000000"
	assert.Equal(t, want, st.Quarantined())

	moved, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, garbage, moved)

	_, statErr := os.Stat(st.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestLoad_UnsupportedVersion(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, os.WriteFile(st.Path(), []byte(`{"version": 7, "maps": []}`), 0o600))

	_, err := st.Load()
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestLoad_ReadErrorIsNotCorruption(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be cannot be read as a file.
	path := filepath.Join(dir, "UserMaps.json")
	require.NoError(t, os.Mkdir(path, 0o750))

	st, err := New(path, Options{OnCorrupt: CorruptionQuarantine})
	require.NoError(t, err)

	_, err = st.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCorrupt))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	st := newStore(t, "UserMaps.json", Options{})
	require.NoError(t, st.Save(Collection{newMap(t, "A")}))
	require.NoError(t, st.Save(Collection{newMap(t, "A"), newMap(t, "B")}))

	entries, err := os.ReadDir(filepath.Dir(st.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "UserMaps.json")
	st, err := New(path, Options{})
	require.NoError(t, err)

	require.NoError(t, st.Save(Collection{}))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", Options{})
	assert.Error(t, err)

	_, err = New("x.json", Options{OnCorrupt: "ignore"})
	assert.Error(t, err)

	st, err := New("x.yml", Options{})
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, st.Format())

	st, err = New("x.data", Options{Format: FormatYAML})
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, st.Format())
}
