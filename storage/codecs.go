package storage

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"github.com/ghodss/yaml"
)

// Codec translates a value to and from a backend's encoding.
type Codec interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error

	// Extension returns the file extension used for this encoding.
	Extension() string
}

// Available codecs.
var (
	JSON Codec = jsonCodec{}
	CBOR Codec = cborCodec{}
	YAML Codec = yamlCodec{}
)

type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Extension() string {
	return "json"
}

type cborCodec struct{}

func (cborCodec) Marshal(v interface{}) ([]byte, error) {
	return cbor.Marshal(v)
}

func (cborCodec) Unmarshal(data []byte, v interface{}) error {
	return cbor.Unmarshal(data, v)
}

func (cborCodec) Extension() string {
	return "cbor"
}

type yamlCodec struct{}

func (yamlCodec) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
}

func (yamlCodec) Extension() string {
	return "yaml"
}
