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


package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the core types. Field order is part of the wire format
// and must not change between releases.

// float32Slice encodes vector components with fixed-width raw encoding under
// a varint length prefix.
var float32Slice = ord.NewSliceSer[float32](raw.Float32)

// CompanyMUS serializes Company values in MUS format.
var CompanyMUS = companyMUS{}

type companyMUS struct{}

func (companyMUS) Marshal(v Company, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += ord.String.Marshal(v.Industry, bs[n:])
	n += ord.String.Marshal(v.Location, bs[n:])
	n += varint.Int64.Marshal(v.Revenue, bs[n:])
	n += varint.Int.Marshal(v.TeamSize, bs[n:])
	n += varint.Int.Marshal(v.Founded, bs[n:])
	n += ord.String.Marshal(v.Website, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Needs, bs[n:])
	n += ord.String.Marshal(v.Challenges, bs[n:])
	return n
}

func (companyMUS) Unmarshal(bs []byte) (v Company, n int, err error) {
	var n1 int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	if v.Industry, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Location, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Revenue, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.TeamSize, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Founded, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Website, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Description, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Needs, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	if v.Challenges, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return
	}
	n += n1
	return
}

func (companyMUS) Size(v Company) (size int) {
	size = ord.String.Size(v.Name)
	size += ord.String.Size(v.Industry)
	size += ord.String.Size(v.Location)
	size += varint.Int64.Size(v.Revenue)
	size += varint.Int.Size(v.TeamSize)
	size += varint.Int.Size(v.Founded)
	size += ord.String.Size(v.Website)
	size += ord.String.Size(v.Description)
	size += ord.String.Size(v.Needs)
	size += ord.String.Size(v.Challenges)
	return size
}

// VectorMUS serializes embedding vectors in MUS format.
var VectorMUS = vectorMUS{}

type vectorMUS struct{}

func (vectorMUS) Marshal(v []float32, bs []byte) (n int) {
	return float32Slice.Marshal(v, bs)
}

func (vectorMUS) Unmarshal(bs []byte) (v []float32, n int, err error) {
	return float32Slice.Unmarshal(bs)
}

func (vectorMUS) Size(v []float32) (size int) {
	return float32Slice.Size(v)
}
