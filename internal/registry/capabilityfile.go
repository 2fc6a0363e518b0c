// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metamap/pkg/types"
)

// ResourceKind selects the adapter implementation backing a resource.
type ResourceKind string

const (
	KindREST  ResourceKind = "rest"
	KindTable ResourceKind = "table"
	KindCache ResourceKind = "cache"
)

// Resource declares one lookup resource and the hops it can attempt.
type Resource struct {
	// Name is the unique resource identifier (e.g. "unichem").
	Name string `yaml:"name"`

	// Kind selects the adapter implementation: rest, table, or cache.
	Kind ResourceKind `yaml:"kind"`

	// Priority orders resources sharing a hop; lower is tried first.
	Priority int `yaml:"priority"`

	// URLTemplate is the endpoint template for rest resources, with
	// {id}, {source}, and {target} placeholders.
	URLTemplate string `yaml:"url_template,omitempty"`

	// APIKeySecret names the secret file holding the API key for rest
	// resources that require one.
	APIKeySecret string `yaml:"api_key_secret,omitempty"`

	// File is the mapping table path for table resources.
	File string `yaml:"file,omitempty"`

	// ServesAll binds the resource to every hop the other resources form.
	// Meaningful for cache resources.
	ServesAll bool `yaml:"serves_all,omitempty"`

	// Capabilities lists the hops this resource can attempt.
	Capabilities []Capability `yaml:"capabilities,omitempty"`
}

// Capability declares one hop a resource can attempt.
type Capability struct {
	Source types.OntologyType `yaml:"source"`
	Target types.OntologyType `yaml:"target"`
}

// capabilityFile is the on-disk representation of the capability table.
type capabilityFile struct {
	Resources []Resource `yaml:"resources"`
}

// Load reads and validates a capability file and builds the registry.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading capability file %s: %w", path, err)
	}
	var file capabilityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing capability file %s: %w", path, err)
	}
	if len(file.Resources) == 0 {
		return nil, fmt.Errorf("capability file %s declares no resources", path)
	}
	return New(file.Resources)
}
