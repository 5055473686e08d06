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


package fake

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brianvoe/gofakeit"
)

// Record describes a generated observation so tests can compare against it.
type Record struct {
	Fields   []string
	NumPairs int
	Orphan   bool
}

func (r Record) String() string {
	return strings.Join(r.Fields, "\t") + "\n"
}

// Observation generates a random record with up to maxPairs attribute pairs. Keys
// are "0", "1", ... so they never collide. If orphan is set a dangling attribute key
// is appended.
func Observation(maxPairs int, orphan bool) Record {
	signal := gofakeit.Number(-120, 0)
	fields := []string{
		fmt.Sprintf("%.6f", gofakeit.Float64Range(1e9, 2e9)),
		strconv.Itoa(gofakeit.Number(2412, 5825)),
		strconv.Itoa(signal),
		strconv.Itoa(gofakeit.Number(0, 2)),
		strconv.Itoa(gofakeit.Number(0, 15)),
		Mac(),
		Mac(),
	}
	numPairs := gofakeit.Number(0, maxPairs)
	for i := 0; i < numPairs; i++ {
		fields = append(fields, strconv.Itoa(i), gofakeit.Generate("{lorem.word}"))
	}
	if orphan {
		fields = append(fields, "orphan")
	}
	return Record{
		Fields:   fields,
		NumPairs: numPairs,
		Orphan:   orphan,
	}
}

func Mac() string {
	parts := make([]string, 6)
	for i := range parts {
		parts[i] = fmt.Sprintf("%02X", gofakeit.Number(0, 255))
	}
	return strings.Join(parts, ":")
}
