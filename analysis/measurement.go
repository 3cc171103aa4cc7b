// Package analysis provides measurements of datasets before any model is
// trained on them, with executors that cache measurement results.
package analysis

import (
	"bytes"
	"encoding/gob"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/hscells/parity/dataset"
	"github.com/hscells/parity/stats"
	"github.com/peterbourgon/diskv"
)

// Measurement is a representation for how a measurement fits into the pipeline.
type Measurement interface {
	// Name is the name of the measurement in the output. It should not contain any spaces.
	Name() string
	// Execute computes the implemented measurement for a dataset using the specified statistics.
	Execute(d dataset.Dataset, s stats.StatisticsSource) (float64, error)
}

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// MeasurementExecutor executes measurements while caching the results on a
// per-dataset basis. Datasets are identified by name, so two datasets with
// the same name are assumed to measure identically.
type MeasurementExecutor struct {
	cache measurementCache
}

type measurementCache interface {
	get(key string) (float64, bool)
	put(key string, value float64)
}

// NewMemoryMeasurementExecutor creates an executor backed by an in-memory lru cache.
func NewMemoryMeasurementExecutor(size int) (MeasurementExecutor, error) {
	c, err := lru.New(size)
	if err != nil {
		return MeasurementExecutor{}, err
	}
	return MeasurementExecutor{cache: memoryCache{c}}, nil
}

// NewDiskMeasurementExecutor creates an executor that persists measurement
// results to disk, surviving between experiment runs.
func NewDiskMeasurementExecutor(dv *diskv.Diskv) MeasurementExecutor {
	return MeasurementExecutor{cache: diskCache{dv}}
}

// Empty reports whether the executor has been configured with a cache.
func (m MeasurementExecutor) Empty() bool {
	return m.cache == nil
}

// Execute computes (or recalls) each measurement for a dataset.
func (m MeasurementExecutor) Execute(d dataset.Dataset, s stats.StatisticsSource, measurements ...Measurement) ([]float64, error) {
	results := make([]float64, len(measurements))
	for i, measurement := range measurements {
		key := fmt.Sprintf("%s.%s", d.Name, measurement.Name())
		if v, ok := m.cache.get(key); ok {
			results[i] = v
			continue
		}
		v, err := measurement.Execute(d, s)
		if err != nil {
			return nil, err
		}
		m.cache.put(key, v)
		results[i] = v
	}
	return results, nil
}

type memoryCache struct {
	*lru.Cache
}

func (c memoryCache) get(key string) (float64, bool) {
	if v, ok := c.Get(key); ok {
		return v.(float64), true
	}
	return 0, false
}

func (c memoryCache) put(key string, value float64) {
	c.Add(key, value)
}

type diskCache struct {
	*diskv.Diskv
}

func (c diskCache) get(key string) (float64, bool) {
	if !c.Has(key) {
		return 0, false
	}
	b, err := c.Read(key)
	if err != nil {
		return 0, false
	}
	var v float64
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil {
		return 0, false
	}
	return v, true
}

func (c diskCache) put(key string, value float64) {
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(value); err != nil {
		return
	}
	_ = c.Write(key, buff.Bytes())
}
