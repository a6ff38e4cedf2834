package views

import (
	"context"

	"github.com/urban-transit-lab/transit-explorer/engine"
)

// BuildAlertsTable lists alerts active right now.
func (b *Builder) BuildAlertsTable(ctx context.Context) (*AlertsTable, error) {
	alerts, err := b.Engine.Alerts(ctx, engine.AlertFilter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	table := &AlertsTable{Alerts: make([]AlertRow, 0, len(alerts))}
	for _, a := range alerts {
		table.Alerts = append(table.Alerts, AlertRow{
			ID:          a.ID,
			Header:      a.Header,
			Description: a.Description,
			Cause:       a.Cause,
			Effect:      a.Effect,
			URL:         a.URL,
			ActiveFrom:  a.ActiveFrom,
			ActiveUntil: a.ActiveUntil,
			RouteIDs:    a.RouteIDs,
			StopIDs:     a.StopIDs,
		})
	}
	return table, nil
}
