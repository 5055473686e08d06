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


package main

import (
	"bufio"
	"flag"
	"os"
	"time"

	"github.com/brianvoe/gofakeit"
	"github.com/jackbister/wtrack/internal/fake"
)

func main() {
	count := flag.Int("count", 0, "The number of records to print. 0 prints forever.")
	maxPairs := flag.Int("maxPairs", 3, "The maximum number of attribute pairs per record.")
	seed := flag.Int64("seed", 0, "Seed for the generator. 0 uses the current time.")
	sleepTime := flag.Duration("sleepTime", 100*time.Millisecond, "The duration to sleep between records")

	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gofakeit.Seed(*seed)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i := 0; *count == 0 || i < *count; i++ {
		w.WriteString(fake.Observation(*maxPairs, false).String())
		if sleepTime.Nanoseconds() != 0 {
			w.Flush()
			time.Sleep(*sleepTime)
		}
	}
}
