package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type ProviderInterface interface {
	IncEntriesCreated()
	IncEntriesUpdated()
	IncRemindersSent(category string)
	IncScheduleRebuilds(category string)
}

type Provider struct {
	entriesCreated   prometheus.Counter
	entriesUpdated   prometheus.Counter
	remindersSent    *prometheus.CounterVec
	scheduleRebuilds *prometheus.CounterVec
}

func NewProvider(registerer prometheus.Registerer) *Provider {
	factory := promauto.With(registerer)

	return &Provider{
		entriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "somnia_entries_created_total",
			Help: "Journal entries created.",
		}),
		entriesUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "somnia_entries_updated_total",
			Help: "Journal entries updated.",
		}),
		remindersSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "somnia_reminders_sent_total",
			Help: "Reminder notifications delivered.",
		}, []string{"category"}),
		scheduleRebuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "somnia_schedule_rebuilds_total",
			Help: "Full cancel-then-recreate schedule rebuilds.",
		}, []string{"category"}),
	}
}

func (provider *Provider) IncEntriesCreated() {
	provider.entriesCreated.Inc()
}

func (provider *Provider) IncEntriesUpdated() {
	provider.entriesUpdated.Inc()
}

func (provider *Provider) IncRemindersSent(category string) {
	provider.remindersSent.WithLabelValues(category).Inc()
}

func (provider *Provider) IncScheduleRebuilds(category string) {
	provider.scheduleRebuilds.WithLabelValues(category).Inc()
}
