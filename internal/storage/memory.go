package storage

import (
	"context"
	"sort"
	"sync"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	networks    map[string]NetworkRecord
	populations map[string]PopulationRecord
	runs        map[string]RunRecord
	history     map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.networks = make(map[string]NetworkRecord)
	s.populations = make(map[string]PopulationRecord)
	s.runs = make(map[string]RunRecord)
	s.history = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) SaveNetwork(_ context.Context, record NetworkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks[record.ID] = cloneNetworkRecord(record)
	return nil
}

func (s *MemoryStore) GetNetwork(_ context.Context, id string) (NetworkRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.networks[id]
	if !ok {
		return NetworkRecord{}, false, nil
	}
	return cloneNetworkRecord(record), true, nil
}

func (s *MemoryStore) ListNetworks(_ context.Context) ([]NetworkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]NetworkRecord, 0, len(s.networks))
	for _, record := range s.networks {
		records = append(records, cloneNetworkRecord(record))
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *MemoryStore) SavePopulation(_ context.Context, record PopulationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.populations[record.ID] = clonePopulationRecord(record)
	return nil
}

func (s *MemoryStore) GetPopulation(_ context.Context, id string) (PopulationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.populations[id]
	if !ok {
		return PopulationRecord{}, false, nil
	}
	return clonePopulationRecord(record), true, nil
}

func (s *MemoryStore) SaveRun(_ context.Context, record RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[record.ID] = record
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.runs[id]
	return record, ok, nil
}

func (s *MemoryStore) ListRuns(_ context.Context) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]RunRecord, 0, len(s.runs))
	for _, record := range s.runs {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].StartedAt.Equal(records[j].StartedAt) {
			return records[i].ID < records[j].ID
		}
		return records[i].StartedAt.Before(records[j].StartedAt)
	})
	return records, nil
}

func (s *MemoryStore) SaveErrorHistory(_ context.Context, runID string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := append([]float64(nil), history...)
	s.history[runID] = copied
	return nil
}

func (s *MemoryStore) GetErrorHistory(_ context.Context, runID string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[runID]
	if !ok {
		return nil, false, nil
	}
	copied := append([]float64(nil), history...)
	return copied, true, nil
}

func cloneNetworkRecord(record NetworkRecord) NetworkRecord {
	cloned := record
	cloned.Layers = make([]LayerRecord, 0, len(record.Layers))
	for _, layer := range record.Layers {
		neurons := make([]NeuronRecord, 0, len(layer.Neurons))
		for _, neuron := range layer.Neurons {
			neurons = append(neurons, NeuronRecord{
				Weights:   append([]float64(nil), neuron.Weights...),
				Threshold: neuron.Threshold,
			})
		}
		cloned.Layers = append(cloned.Layers, LayerRecord{Neurons: neurons})
	}
	return cloned
}

func clonePopulationRecord(record PopulationRecord) PopulationRecord {
	cloned := record
	cloned.Members = make([]ChromosomeRecord, len(record.Members))
	copy(cloned.Members, record.Members)
	return cloned
}
