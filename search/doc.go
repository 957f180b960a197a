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


// Package search provides semantic, filtered, and combined queries over a
// company catalog.
//
// The Searcher type supports three query shapes:
//   - Pure semantic search over the description or needs vector space
//   - Pure structured filtering over typed record fields
//   - Combined search, which oversamples the semantic candidate set and then
//     narrows it with filters while preserving similarity rank
//
// Semantic results carry a similarity score derived from squared Euclidean
// distance; filter-only results are unranked.
package search
