package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/islandepoch/islandepoch-go/internal/domain/building"
	"github.com/islandepoch/islandepoch-go/internal/domain/game"
	"github.com/islandepoch/islandepoch-go/internal/domain/production"
)

// EconomyCollector mirrors the game state into gauges and counts tick outcomes.
// It satisfies the application's tick and snapshot recorder ports.
type EconomyCollector struct {
	catalog building.Catalog

	gold      prometheus.Gauge
	tick      prometheus.Gauge
	epoch     prometheus.Gauge
	resources *prometheus.GaugeVec
	workers   *prometheus.GaugeVec
	buildings *prometheus.GaugeVec

	ticksTotal      prometheus.Counter
	goldIncomeTotal prometheus.Counter
	runsTotal       *prometheus.CounterVec
	producedTotal   *prometheus.CounterVec
	consumedTotal   *prometheus.CounterVec
}

func NewEconomyCollector(catalog building.Catalog) *EconomyCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Subsystem: subsystem, Name: name, Help: help})
	}
	return &EconomyCollector{
		catalog: catalog,
		gold:    gauge("gold", "Current gold balance"),
		tick:    gauge("tick", "Ticks elapsed since the game started"),
		epoch:   gauge("epoch", "Current epoch number"),
		resources: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "resource_quantity",
			Help: "Resource stock per island",
		}, []string{"island", "resource"}),
		workers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "workers",
			Help: "Workers per island by state (available, assigned, unassigned)",
		}, []string{"island", "state"}),
		buildings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "buildings",
			Help: "Buildings per island and blueprint",
		}, []string{"island", "blueprint"}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "ticks_total",
			Help: "Ticks processed by this process",
		}),
		goldIncomeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "gold_income_total",
			Help: "Passive gold credited by ticks",
		}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "building_runs_total",
			Help: "Per-building tick results by blueprint and outcome",
		}, []string{"blueprint", "outcome"}),
		producedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "produced_total",
			Help: "Resources produced by ticks",
		}, []string{"resource"}),
		consumedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "consumed_total",
			Help: "Resources consumed by ticks",
		}, []string{"resource"}),
	}
}

// Register registers all economy metrics with reg
func (c *EconomyCollector) Register(reg prometheus.Registerer) error {
	return register(reg,
		c.gold, c.tick, c.epoch, c.resources, c.workers, c.buildings,
		c.ticksTotal, c.goldIncomeTotal, c.runsTotal, c.producedTotal, c.consumedTotal,
	)
}

// RecordTick counts the outcomes in report and refreshes the state gauges
func (c *EconomyCollector) RecordTick(report production.TickReport, state *game.State) {
	c.ticksTotal.Inc()
	c.goldIncomeTotal.Add(float64(report.GoldIncome))
	for _, run := range report.Runs {
		c.runsTotal.WithLabelValues(string(run.BlueprintID), string(run.Outcome)).Inc()
		for k, q := range run.Produced {
			c.producedTotal.WithLabelValues(string(k)).Add(float64(q))
		}
		for k, q := range run.Consumed {
			c.consumedTotal.WithLabelValues(string(k)).Add(float64(q))
		}
	}
	c.RecordState(state)
}

// RecordState sets every gauge from state
func (c *EconomyCollector) RecordState(state *game.State) {
	c.gold.Set(float64(state.Gold()))
	c.tick.Set(float64(state.Tick()))
	c.epoch.Set(float64(state.Epoch().Current()))

	c.resources.Reset()
	c.workers.Reset()
	c.buildings.Reset()
	for i, isl := range state.Islands() {
		label := strconv.Itoa(i)
		for _, e := range isl.Ledger().Entries() {
			c.resources.WithLabelValues(label, string(e.Kind)).Set(float64(e.Quantity))
		}
		c.workers.WithLabelValues(label, "available").Set(float64(isl.WorkersAvailable(c.catalog)))
		c.workers.WithLabelValues(label, "assigned").Set(float64(isl.TotalWorkersAssigned()))
		c.workers.WithLabelValues(label, "unassigned").Set(float64(isl.UnassignedWorkers(c.catalog)))
		for _, o := range isl.Occupants() {
			c.buildings.WithLabelValues(label, string(o.Building.BlueprintID())).Inc()
		}
	}
}
