package storage

import (
	"fmt"
	"time"

	"neurevo/internal/neuro"
)

// VersionedRecord stamps persisted records with the schema and codec
// versions they were written with.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// NewVersionedRecord returns the stamp for records written now.
func NewVersionedRecord() VersionedRecord {
	return VersionedRecord{
		SchemaVersion: CurrentSchemaVersion,
		CodecVersion:  CurrentCodecVersion,
	}
}

// NetworkRecord is a persisted snapshot of a network: its topology,
// activation function and all weights and thresholds.
type NetworkRecord struct {
	VersionedRecord

	ID          string        `json:"id"`
	Kind        string        `json:"kind"`
	Activation  string        `json:"activation,omitempty"`
	Alpha       float64       `json:"alpha,omitempty"`
	InputsCount int           `json:"inputs_count"`
	Layers      []LayerRecord `json:"layers"`
}

// Network kinds.
const (
	NetworkKindActivation = "activation"
	NetworkKindDistance   = "distance"
)

// LayerRecord holds one layer's neurons.
type LayerRecord struct {
	Neurons []NeuronRecord `json:"neurons"`
}

// NeuronRecord holds one neuron's weights. Threshold stays zero for
// distance networks.
type NeuronRecord struct {
	Weights   []float64 `json:"weights"`
	Threshold float64   `json:"threshold,omitempty"`
}

// PopulationRecord is a persisted snapshot of a genetic population's
// state and statistics.
type PopulationRecord struct {
	VersionedRecord

	ID                     string             `json:"id"`
	Size                   int                `json:"size"`
	CrossoverRate          float64            `json:"crossover_rate"`
	MutationRate           float64            `json:"mutation_rate"`
	RandomSelectionPortion float64            `json:"random_selection_portion"`
	FitnessMax             float64            `json:"fitness_max"`
	FitnessAvg             float64            `json:"fitness_avg"`
	Members                []ChromosomeRecord `json:"members"`
}

// ChromosomeRecord holds one population member in its string encoding.
type ChromosomeRecord struct {
	Genes   string  `json:"genes"`
	Fitness float64 `json:"fitness"`
}

// RunRecord describes one completed training run.
type RunRecord struct {
	VersionedRecord

	ID         string    `json:"id"`
	Experiment string    `json:"experiment"`
	StartedAt  time.Time `json:"started_at"`
	Duration   float64   `json:"duration_seconds"`
	Epochs     int       `json:"epochs"`
	FinalError float64   `json:"final_error"`
	Converged  bool      `json:"converged"`
}

// SnapshotActivationNetwork captures the network into a record under
// the given id.
func SnapshotActivationNetwork(id string, network *neuro.ActivationNetwork) (NetworkRecord, error) {
	function := network.Layers[0].Neurons[0].Function
	name, err := neuro.ActivationName(function)
	if err != nil {
		return NetworkRecord{}, err
	}

	record := NetworkRecord{
		VersionedRecord: NewVersionedRecord(),
		ID:              id,
		Kind:            NetworkKindActivation,
		Activation:      name,
		Alpha:           neuro.ActivationAlpha(function),
		InputsCount:     network.InputsCount(),
	}

	for _, layer := range network.Layers {
		layerRecord := LayerRecord{Neurons: make([]NeuronRecord, 0, len(layer.Neurons))}
		for _, neuron := range layer.Neurons {
			layerRecord.Neurons = append(layerRecord.Neurons, NeuronRecord{
				Weights:   append([]float64(nil), neuron.Weights...),
				Threshold: neuron.Threshold,
			})
		}
		record.Layers = append(record.Layers, layerRecord)
	}
	return record, nil
}

// RestoreActivationNetwork rebuilds a network from its record.
func RestoreActivationNetwork(record NetworkRecord) (*neuro.ActivationNetwork, error) {
	if record.Kind != NetworkKindActivation {
		return nil, fmt.Errorf("record %s is not an activation network: %s", record.ID, record.Kind)
	}
	if len(record.Layers) == 0 {
		return nil, fmt.Errorf("record %s has no layers", record.ID)
	}

	function, err := neuro.ActivationByName(record.Activation, record.Alpha)
	if err != nil {
		return nil, err
	}

	neuronCounts := make([]int, len(record.Layers))
	for i, layer := range record.Layers {
		neuronCounts[i] = len(layer.Neurons)
	}

	network := neuro.NewActivationNetwork(function, record.InputsCount, neuronCounts...)
	for i, layer := range record.Layers {
		for j, neuronRecord := range layer.Neurons {
			neuron := network.Layers[i].Neurons[j]
			if len(neuronRecord.Weights) != len(neuron.Weights) {
				return nil, fmt.Errorf("record %s layer %d neuron %d has %d weights, want %d",
					record.ID, i, j, len(neuronRecord.Weights), len(neuron.Weights))
			}
			copy(neuron.Weights, neuronRecord.Weights)
			neuron.Threshold = neuronRecord.Threshold
		}
	}
	return network, nil
}

// SnapshotDistanceNetwork captures the network into a record under the
// given id.
func SnapshotDistanceNetwork(id string, network *neuro.DistanceNetwork) NetworkRecord {
	record := NetworkRecord{
		VersionedRecord: NewVersionedRecord(),
		ID:              id,
		Kind:            NetworkKindDistance,
		InputsCount:     network.InputsCount(),
	}

	layerRecord := LayerRecord{Neurons: make([]NeuronRecord, 0, len(network.Layer.Neurons))}
	for _, neuron := range network.Layer.Neurons {
		layerRecord.Neurons = append(layerRecord.Neurons, NeuronRecord{
			Weights: append([]float64(nil), neuron.Weights...),
		})
	}
	record.Layers = []LayerRecord{layerRecord}
	return record
}

// RestoreDistanceNetwork rebuilds a network from its record.
func RestoreDistanceNetwork(record NetworkRecord) (*neuro.DistanceNetwork, error) {
	if record.Kind != NetworkKindDistance {
		return nil, fmt.Errorf("record %s is not a distance network: %s", record.ID, record.Kind)
	}
	if len(record.Layers) != 1 {
		return nil, fmt.Errorf("record %s has %d layers, distance networks have 1", record.ID, len(record.Layers))
	}

	layerRecord := record.Layers[0]
	network := neuro.NewDistanceNetwork(record.InputsCount, len(layerRecord.Neurons))
	for j, neuronRecord := range layerRecord.Neurons {
		neuron := network.Layer.Neurons[j]
		if len(neuronRecord.Weights) != len(neuron.Weights) {
			return nil, fmt.Errorf("record %s neuron %d has %d weights, want %d",
				record.ID, j, len(neuronRecord.Weights), len(neuron.Weights))
		}
		copy(neuron.Weights, neuronRecord.Weights)
	}
	return network, nil
}
