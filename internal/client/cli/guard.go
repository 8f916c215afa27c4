package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/services"
)

var (
	errSessionLoading = errors.New("session is still loading, try again")
	errLoginRequired  = errors.New("please log in first")
	errForbidden      = errors.New("you are not allowed to use this command")
)

// authorize maps the route guard decision for required to a command error.
func (a *App) authorize(required models.Role) error {
	switch services.Authorize(a.session, required) {
	case services.DecisionAllow:
		return nil
	case services.DecisionPending:
		return errSessionLoading
	case services.DecisionLogin:
		return errLoginRequired
	default:
		return errForbidden
	}
}

// authorizeManager allows admins and the creator of the event, and returns
// the event.
func (a *App) authorizeManager(ctx context.Context, eventID int64) (*models.Event, error) {
	if err := a.authorize(""); err != nil {
		return nil, err
	}

	e, err := a.events.Get(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !a.session.IsAdmin() && e.Creator != a.session.Profile().ID {
		return nil, errForbidden
	}
	return e, nil
}

// metricTotals sums every counter of the API client by metric name.
func (a *App) metricTotals() (map[string]float64, error) {
	families, err := a.registry.Gather()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(families))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				totals[mf.GetName()] += c.GetValue()
			}
		}
	}
	return totals, nil
}
