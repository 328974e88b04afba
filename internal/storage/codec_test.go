package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestDecodeNetworkFixture(t *testing.T) {
	record := decodeNetworkFixture(t, "minimal_network_v1.json")
	if record.ID != "network-minimal-1" {
		t.Fatalf("unexpected network id: %s", record.ID)
	}
	if record.Kind != NetworkKindActivation {
		t.Fatalf("unexpected network kind: %s", record.Kind)
	}
	if record.Activation != "sigmoid" || record.Alpha != 2 {
		t.Fatalf("unexpected activation: %s alpha=%f", record.Activation, record.Alpha)
	}
	if len(record.Layers) != 1 || len(record.Layers[0].Neurons) != 1 {
		t.Fatalf("unexpected topology: %+v", record.Layers)
	}
}

func TestNetworkCodecRoundTripFixtureEquality(t *testing.T) {
	expected := decodeNetworkFixture(t, "minimal_network_v1.json")

	encoded, err := EncodeNetwork(expected)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	actual, err := DecodeNetwork(encoded)
	if err != nil {
		t.Fatalf("decode roundtrip: %v", err)
	}

	if !reflect.DeepEqual(actual, expected) {
		t.Fatalf("roundtrip mismatch\nactual=%+v\nexpected=%+v", actual, expected)
	}
}

func TestNetworkCodecVersionMismatch(t *testing.T) {
	record := NetworkRecord{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion + 1},
		ID:              "n1",
		Kind:            NetworkKindActivation,
	}
	encoded, err := EncodeNetwork(record)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = DecodeNetwork(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestPopulationCodecRoundTrip(t *testing.T) {
	input := PopulationRecord{
		VersionedRecord:        NewVersionedRecord(),
		ID:                     "p1",
		Size:                   40,
		CrossoverRate:          0.75,
		MutationRate:           0.1,
		RandomSelectionPortion: 0.2,
		FitnessMax:             3.5,
		FitnessAvg:             1.25,
		Members: []ChromosomeRecord{
			{Genes: "1010", Fitness: 3.5},
			{Genes: "0011", Fitness: 1.0},
		},
	}

	encoded, err := EncodePopulation(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodePopulation(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded population mismatch: got=%+v want=%+v", decoded, input)
	}
}

func TestRunCodecRoundTrip(t *testing.T) {
	input := RunRecord{
		VersionedRecord: NewVersionedRecord(),
		ID:              "run-1",
		Experiment:      "backprop_xor",
		StartedAt:       time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC),
		Duration:        1.5,
		Epochs:          2500,
		FinalError:      0.08,
		Converged:       true,
	}

	encoded, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRun(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded run mismatch: got=%+v want=%+v", decoded, input)
	}
}

func TestRunCodecVersionMismatch(t *testing.T) {
	input := RunRecord{
		VersionedRecord: VersionedRecord{SchemaVersion: CurrentSchemaVersion + 1, CodecVersion: CurrentCodecVersion},
		ID:              "run-1",
	}
	encoded, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = DecodeRun(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestErrorHistoryCodecRoundTrip(t *testing.T) {
	input := []float64{0.9, 0.4, 0.1}
	encoded, err := EncodeErrorHistory(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeErrorHistory(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded history mismatch: got=%+v want=%+v", decoded, input)
	}
}

func fixturePath(name string) string {
	return filepath.Join("testdata", name)
}

func decodeNetworkFixture(t *testing.T, name string) NetworkRecord {
	t.Helper()

	path := fixturePath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}

	record, err := DecodeNetwork(data)
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}

	return record
}
