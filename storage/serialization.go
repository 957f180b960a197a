// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/firmdex/core"
)

// MarshalCompany serializes a Company to bytes.
func MarshalCompany(company *core.Company) []byte {
	buf := make([]byte, core.CompanyMUS.Size(*company))
	core.CompanyMUS.Marshal(*company, buf)
	return buf
}

// UnmarshalCompany deserializes a Company from bytes.
func UnmarshalCompany(data []byte) (*core.Company, error) {
	company, _, err := core.CompanyMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// MarshalVector serializes an embedding vector to bytes.
func MarshalVector(vector []float32) []byte {
	buf := make([]byte, core.VectorMUS.Size(vector))
	core.VectorMUS.Marshal(vector, buf)
	return buf
}

// UnmarshalVector deserializes an embedding vector from bytes.
func UnmarshalVector(data []byte) ([]float32, error) {
	vector, _, err := core.VectorMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return vector, nil
}

// Meta describes a stored snapshot: its vector dimension and company count.
// It is written last during a save, so a readable Meta implies a complete
// snapshot.
type Meta struct {
	Dimension int
	Count     int
}

// MarshalMeta serializes snapshot metadata to bytes.
func MarshalMeta(meta Meta) []byte {
	buf := make([]byte, varint.Int.Size(meta.Dimension)+varint.Int.Size(meta.Count))
	n := varint.Int.Marshal(meta.Dimension, buf)
	varint.Int.Marshal(meta.Count, buf[n:])
	return buf
}

// UnmarshalMeta deserializes snapshot metadata from bytes.
func UnmarshalMeta(data []byte) (Meta, error) {
	var meta Meta
	dimension, n, err := varint.Int.Unmarshal(data)
	if err != nil {
		return meta, err
	}
	count, _, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return meta, err
	}
	meta.Dimension = dimension
	meta.Count = count
	return meta, nil
}
