package storage

import (
	"encoding/json"
	"errors"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeNetwork(record NetworkRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeNetwork(data []byte) (NetworkRecord, error) {
	var record NetworkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return NetworkRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return NetworkRecord{}, err
	}
	return record, nil
}

func EncodePopulation(record PopulationRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodePopulation(data []byte) (PopulationRecord, error) {
	var record PopulationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return PopulationRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return PopulationRecord{}, err
	}
	return record, nil
}

func EncodeRun(record RunRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeRun(data []byte) (RunRecord, error) {
	var record RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return RunRecord{}, err
	}
	return record, nil
}

func EncodeErrorHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeErrorHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
