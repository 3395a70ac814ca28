package config

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryStore keeps sections in memory and records how often Save ran.
type memoryStore struct {
	sections map[string]map[string]interface{}
	loadErr  error
	saveErr  error
	saves    int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sections: make(map[string]map[string]interface{})}
}

func (m *memoryStore) Load() error { return m.loadErr }

func (m *memoryStore) Save() error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	return nil
}

func (m *memoryStore) GetSection(id string) (map[string]interface{}, error) {
	return copySection(m.sections[id]), nil
}

func (m *memoryStore) SetSection(id string, data map[string]interface{}) error {
	m.sections[id] = copySection(data)
	return nil
}

func TestManager_RegisterSection(t *testing.T) {
	manager := NewManager(newMemoryStore())

	require.NoError(t, manager.RegisterSection(NewStorageSection()))
	require.NoError(t, manager.RegisterSection(NewUISection()))
	assert.Error(t, manager.RegisterSection(NewUISection()), "duplicate IDs are rejected")

	sections := manager.GetSections()
	require.Len(t, sections, 2)
	assert.Equal(t, SectionIDStorage, sections[0].ID())
	assert.Equal(t, SectionIDUI, sections[1].ID())

	_, ok := manager.GetSection("missing")
	assert.False(t, ok)
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("applies stored data", func(t *testing.T) {
		store := newMemoryStore()
		store.sections[SectionIDStorage] = map[string]interface{}{"data_file": "/data/maps.yaml"}

		manager := NewManager(store)
		storage := NewStorageSection()
		ui := NewUISection()
		require.NoError(t, manager.RegisterSection(storage))
		require.NoError(t, manager.RegisterSection(ui))

		require.NoError(t, manager.LoadAll())
		assert.Equal(t, "/data/maps.yaml", storage.DataFile)
		assert.Equal(t, "fail", storage.OnCorrupt, "keys absent from the store keep defaults")
		assert.Equal(t, defaultToastDuration, ui.GetToastDuration())
	})

	t.Run("store error", func(t *testing.T) {
		store := newMemoryStore()
		store.loadErr = errors.New("disk gone")

		err := NewManager(store).LoadAll()
		assert.ErrorContains(t, err, "disk gone")
	})

	t.Run("bad section data", func(t *testing.T) {
		store := newMemoryStore()
		store.sections[SectionIDUI] = map[string]interface{}{"toast_duration": "soon"}

		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(NewUISection()))
		assert.Error(t, manager.LoadAll())
	})
}

func TestManager_SaveAll(t *testing.T) {
	t.Run("writes every section", func(t *testing.T) {
		store := newMemoryStore()
		manager := NewManager(store)
		storage := NewStorageSection()
		require.NoError(t, manager.RegisterSection(storage))
		require.NoError(t, manager.RegisterSection(NewUISection()))

		storage.OnCorrupt = "quarantine"
		require.NoError(t, manager.SaveAll())

		assert.Equal(t, 1, store.saves)
		assert.Equal(t, "quarantine", store.sections[SectionIDStorage]["on_corrupt"])
		assert.Equal(t, "monokai", store.sections[SectionIDUI]["detail_style"])
	})

	t.Run("invalid section blocks the write", func(t *testing.T) {
		store := newMemoryStore()
		manager := NewManager(store)
		storage := NewStorageSection()
		require.NoError(t, manager.RegisterSection(storage))

		storage.OnCorrupt = "ignore"
		assert.Error(t, manager.SaveAll())
		assert.Zero(t, store.saves)
		assert.Empty(t, store.sections)
	})

	t.Run("store error", func(t *testing.T) {
		store := newMemoryStore()
		store.saveErr = errors.New("read-only")
		manager := NewManager(store)
		require.NoError(t, manager.RegisterSection(NewUISection()))

		assert.ErrorContains(t, manager.SaveAll(), "read-only")
	})
}

func TestManager_ResetAll(t *testing.T) {
	manager := NewManager(newMemoryStore())
	storage := NewStorageSection()
	ui := NewUISection()
	require.NoError(t, manager.RegisterSection(storage))
	require.NoError(t, manager.RegisterSection(ui))

	storage.DataFile = "/elsewhere.json"
	ui.SetToastDuration(10 * defaultToastDuration)

	manager.ResetAll()
	assert.Empty(t, storage.DataFile)
	assert.Equal(t, defaultToastDuration, ui.GetToastDuration())
}

func TestManager_ConcurrentRegistration(t *testing.T) {
	manager := NewManager(newMemoryStore())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			manager.RegisterSection(&StorageSection{OnCorrupt: "fail", DataFile: string(rune('a'+i)) + ".json"})
			manager.GetSections()
		}(i)
	}
	wg.Wait()

	// every goroutine used the same ID so exactly one wins
	assert.Len(t, manager.GetSections(), 1)
}
