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
	"fmt"
	"strings"
)

// Validation bounds for company fields. All ranges are inclusive.
const (
	MinRevenue      int64 = 0
	MaxRevenue      int64 = 1_000_000_000_000 // 1 trillion
	MinTeamSize           = 1
	MaxTeamSize           = 1_000_000
	MinFoundedYear        = 1800
	MaxFoundedYear        = 2100
	MaxStringLength       = 10_000
)

// ValidateCompany validates every field of a company and returns a cleaned
// copy with string fields trimmed. Validation is fail-fast: the first
// offending field produces an error and no further fields are checked.
//
// The returned error always wraps ErrValidation plus a field-level sentinel,
// and names the field and its bound.
func ValidateCompany(c Company) (Company, error) {
	var clean Company
	var err error

	if clean.Name, err = validateStringField(c.Name, "name"); err != nil {
		return Company{}, err
	}
	if clean.Industry, err = validateStringField(c.Industry, "industry"); err != nil {
		return Company{}, err
	}
	if clean.Location, err = validateStringField(c.Location, "location"); err != nil {
		return Company{}, err
	}
	if err = validateIntField(c.Revenue, "revenue", MinRevenue, MaxRevenue); err != nil {
		return Company{}, err
	}
	clean.Revenue = c.Revenue
	if err = validateIntField(int64(c.TeamSize), "team_size", MinTeamSize, MaxTeamSize); err != nil {
		return Company{}, err
	}
	clean.TeamSize = c.TeamSize
	if err = validateIntField(int64(c.Founded), "founded", MinFoundedYear, MaxFoundedYear); err != nil {
		return Company{}, err
	}
	clean.Founded = c.Founded
	if clean.Website, err = validateStringField(c.Website, "website"); err != nil {
		return Company{}, err
	}
	if clean.Description, err = validateStringField(c.Description, "description"); err != nil {
		return Company{}, err
	}
	if clean.Needs, err = validateStringField(c.Needs, "needs"); err != nil {
		return Company{}, err
	}
	if clean.Challenges, err = validateStringField(c.Challenges, "challenges"); err != nil {
		return Company{}, err
	}

	return clean, nil
}

// validateStringField trims the value and enforces presence and length.
func validateStringField(value, field string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: %w: %s cannot be empty", ErrValidation, ErrFieldRequired, field)
	}
	if len(value) > MaxStringLength {
		return "", fmt.Errorf("%w: %w: %s exceeds %d characters", ErrValidation, ErrFieldTooLong, field, MaxStringLength)
	}
	return value, nil
}

// validateIntField enforces the inclusive [min, max] range.
func validateIntField(value int64, field string, min, max int64) error {
	if value < min || value > max {
		return fmt.Errorf("%w: %w: %s must be between %d and %d", ErrValidation, ErrFieldOutOfRange, field, min, max)
	}
	return nil
}
