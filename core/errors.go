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

import "errors"

// Error taxonomy for the catalog. All package errors wrap one of these
// sentinels so callers can classify failures with errors.Is.
var (
	// ErrValidation indicates malformed or out-of-range caller input.
	// Always raised before any state is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the referenced position does not exist.
	ErrNotFound = errors.New("company not found")

	// ErrEmbedding indicates the external embedding provider failed or was
	// given text it cannot embed.
	ErrEmbedding = errors.New("embedding failed")
)

// Field-level validation errors, wrapped together with ErrValidation.
var (
	// ErrFieldRequired indicates a required field is missing or blank.
	ErrFieldRequired = errors.New("field is required")

	// ErrFieldTooLong indicates a string field exceeds MaxStringLength.
	ErrFieldTooLong = errors.New("field too long")

	// ErrFieldOutOfRange indicates an integer field is outside its
	// declared inclusive bounds.
	ErrFieldOutOfRange = errors.New("field out of range")
)
