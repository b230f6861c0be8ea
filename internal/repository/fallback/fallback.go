// Package fallback serves the built-in demo catalog that replaces the
// document store when reads fail.
package fallback

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"vpp-configurator/internal/repository/contract"
	"vpp-configurator/internal/repository/document"

	"gopkg.in/yaml.v3"
)

//go:embed dataset.yaml
var datasetYAML []byte

type dataset struct {
	Features        []contract.Document `yaml:"features"`
	AlaCarteOptions []contract.Document `yaml:"alacarte_options"`
	Packages        []contract.Document `yaml:"packages"`
}

var (
	loadOnce sync.Once
	loaded   dataset
	loadErr  error
)

func load() (dataset, error) {
	loadOnce.Do(func() {
		decoder := yaml.NewDecoder(bytes.NewReader(datasetYAML))
		decoder.KnownFields(true)
		if err := decoder.Decode(&loaded); err != nil {
			loadErr = fmt.Errorf("failed to parse fallback dataset: %w", err)
		}
	})
	return loaded, loadErr
}

// Collection returns a private copy of one fallback collection
func Collection(name string) ([]contract.Document, error) {
	ds, err := load()
	if err != nil {
		return nil, err
	}

	var src []contract.Document
	switch name {
	case contract.CollectionFeatures:
		src = ds.Features
	case contract.CollectionAlaCarteOptions:
		src = ds.AlaCarteOptions
	case contract.CollectionPackages:
		src = ds.Packages
	default:
		return nil, fmt.Errorf("unknown collection %q", name)
	}

	out := make([]contract.Document, len(src))
	for i, doc := range src {
		out[i] = document.Clone(doc)
	}
	return out, nil
}

// Snapshot returns the full fallback catalog, marked degraded
func Snapshot() (*contract.RawSnapshot, error) {
	snap := &contract.RawSnapshot{Degraded: true}
	var err error
	if snap.Features, err = Collection(contract.CollectionFeatures); err != nil {
		return nil, err
	}
	if snap.AlaCarteOptions, err = Collection(contract.CollectionAlaCarteOptions); err != nil {
		return nil, err
	}
	if snap.Packages, err = Collection(contract.CollectionPackages); err != nil {
		return nil, err
	}
	return snap, nil
}
