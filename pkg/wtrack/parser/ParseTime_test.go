// Copyright 2023 Jack Bister
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package parser

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tableTests := []struct {
		layout   string
		value    string
		expected time.Time
	}{
		{LayoutUnix, "1610000000", time.Unix(1610000000, 0)},
		{LayoutUnixMillis, "1610000000123", time.UnixMilli(1610000000123)},
		{LayoutUnixDecimalNanos, "1610000000.5", time.Unix(1610000000, 5)},
		{LayoutUnixDecimal, "1610000000.25", time.Unix(1610000000, 250000000)},
		{LayoutUnixDecimal, "1610000000", time.Unix(1610000000, 0)},
		{LayoutAuto, "2021-01-07T06:13:20Z", time.Unix(1610000000, 0)},
		{time.RFC3339, "2021-01-07T06:13:20Z", time.Unix(1610000000, 0)},
	}
	for _, tt := range tableTests {
		t.Run(tt.layout+"/"+tt.value, func(t *testing.T) {
			got, err := ParseTime(tt.layout, tt.value)
			if err != nil {
				t.Fatalf("got error when parsing time: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParseTime_Errors(t *testing.T) {
	tableTests := []struct {
		layout string
		value  string
	}{
		{LayoutUnix, "abc"},
		{LayoutUnixMillis, "1.5"},
		{LayoutUnixDecimalNanos, "1610000000"},
		{LayoutUnixDecimal, "abc"},
		{LayoutUnixDecimal, "inf"},
		{LayoutAuto, "not a time"},
		{time.RFC3339, "1610000000"},
	}
	for _, tt := range tableTests {
		t.Run(tt.layout+"/"+tt.value, func(t *testing.T) {
			_, err := ParseTime(tt.layout, tt.value)
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}
