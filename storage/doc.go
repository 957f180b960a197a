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


// Package storage defines snapshot persistence for company catalogs.
//
// The catalog itself is an in-memory structure; storage captures it as a
// Snapshot (records plus both vector lists in position order) so a process
// can restart without re-embedding every company. Serialization uses the MUS
// binary format.
package storage
