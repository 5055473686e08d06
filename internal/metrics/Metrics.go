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


package metrics

import (
	"strconv"

	"github.com/jackbister/wtrack/pkg/wtrack/observation"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	parsed *prometheus.CounterVec
	ap     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		parsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wtrack_observations_parsed_total",
			Help: "Number of observation records parsed.",
		}, []string{"valid"}),
		ap: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wtrack_observations_ap_total",
			Help: "Number of parsed observation records that were beacon frames.",
		}),
	}
	if err := reg.Register(m.parsed); err != nil {
		return nil, err
	}
	if err := reg.Register(m.ap); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) Observe(o *observation.Observation) {
	m.parsed.WithLabelValues(strconv.FormatBool(o.Valid())).Inc()
	if o.AP() {
		m.ap.Inc()
	}
}
