// Copyright 2023 Greenmask
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

package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinimumSupportedVersion - older servers are audited with a warning.
const MinimumSupportedVersion = 80400

var ErrInvalidTargetVersion = errors.New("target version should be formatted as MAJOR.MINOR")

// ParseTargetVersion - parses either MAJOR.MINOR or a number in server_version_num format (5+ digits).
func ParseTargetVersion(s string) (int, error) {
	majorStr, minorStr, hasDot := strings.Cut(s, ".")
	major, err := parseDigits(majorStr)
	if err != nil {
		return 0, fmt.Errorf("invalid target version \"%s\": %w", s, ErrInvalidTargetVersion)
	}
	if !hasDot {
		if major >= 10000 {
			return major, nil
		}
		return 0, fmt.Errorf("invalid target version \"%s\": %w", s, ErrInvalidTargetVersion)
	}
	minor, err := parseDigits(minorStr)
	if err != nil {
		return 0, fmt.Errorf("invalid target version \"%s\": %w", s, ErrInvalidTargetVersion)
	}
	return major*10000 + minor*100, nil
}

// FormatVersion - renders server_version_num as MAJOR.MINOR.
func FormatVersion(v int) string {
	if v >= 100000 {
		return fmt.Sprintf("%d.%d", v/10000, v%10000)
	}
	return fmt.Sprintf("%d.%d", v/10000, (v/100)%100)
}

func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("unexpected character %q", c)
		}
	}
	return strconv.Atoi(s)
}
