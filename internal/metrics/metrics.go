/*
 * metrics.go, part of molsvg.
 *
 * Copyright 2013 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package metrics counts what a molsvg run did, on a private Prometheus registry.
//The command line tool is short lived, so instead of being scraped the counters
//are written to a file in the text format, ready for a node exporter textfile
//collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	chem "github.com/rmera/molsvg"
)

const namespace = "molsvg"

//Metrics holds the collectors of one run.
type Metrics struct {
	registry       *prometheus.Registry
	moleculesAdded *prometheus.CounterVec
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
}

//New returns Metrics registered on a new registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		moleculesAdded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "molecules_added_total",
			Help:      "Molecules stored, by result.",
		}, []string{"result"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "SVG documents rendered, by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent building SVG documents.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}),
	}
	m.registry.MustRegister(m.moleculesAdded, m.renders, m.renderDuration)
	return m
}

//Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

//Result is the label value for err: "ok", or the kind of the error.
func Result(err error) string {
	if err == nil {
		return "ok"
	}
	return chem.KindOf(err).String()
}

//ObserveAdd counts one attempt to store a molecule.
func (m *Metrics) ObserveAdd(err error) {
	m.moleculesAdded.WithLabelValues(Result(err)).Inc()
}

//ObserveRender counts one render that began at start.
func (m *Metrics) ObserveRender(start time.Time, err error) {
	m.renders.WithLabelValues(Result(err)).Inc()
	if err == nil {
		m.renderDuration.Observe(time.Since(start).Seconds())
	}
}

//WriteToTextfile writes every metric to path, replacing it atomically.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: writing %s: %w", path, err)
	}
	return nil
}
