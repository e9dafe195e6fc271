package services

import (
	"context"

	"github.com/anuj66688/ambulance-live-tracking-system/internal/models"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/utils"
	"github.com/anuj66688/ambulance-live-tracking-system/internal/validators"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/logger"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/maps"
	"github.com/anuj66688/ambulance-live-tracking-system/pkg/realtime"

	"golang.org/x/sync/errgroup"
)

// tripSnapshotStatus is the status carried by a dispatch snapshot. It is not
// a ledger status.
const tripSnapshotStatus = "active"

type RoutingService interface {
	ComputeRoutes(ctx context.Context, req *validators.RoutesRequest) (*models.RoutesResult, error)
	StartTrip(ctx context.Context, req *validators.StartTripRequest) (*models.StartTripResult, error)
}

type routingService struct {
	directions maps.DirectionsProvider
	relay      realtime.Relay
	logger     *logger.Logger
}

// NewRoutingService accepts a nil relay; snapshots are then not published.
func NewRoutingService(directions maps.DirectionsProvider, relay realtime.Relay, log *logger.Logger) RoutingService {
	return &routingService{
		directions: directions,
		relay:      relay,
		logger:     log,
	}
}

// ComputeRoutes asks for alternatives and reports a non-OK provider status as
// a provider error carrying the status and message.
func (s *routingService) ComputeRoutes(ctx context.Context, req *validators.RoutesRequest) (*models.RoutesResult, error) {
	if appErr := validators.ValidateRoutes(req); appErr != nil {
		return nil, appErr
	}

	resp, err := s.directions.GetDirections(ctx, &maps.DirectionsRequest{
		Origin:       *req.Origin,
		Destination:  *req.Destination,
		Waypoints:    req.Waypoints,
		Alternatives: true,
	})
	if err != nil {
		s.logger.WithError(err).WithField("provider", s.directions.Name()).Error("directions request failed")
		return nil, models.NewProviderError("Failed to get routes", nil, err)
	}

	if resp.Status != models.DirectionsStatusOK {
		s.logger.WithFields(map[string]interface{}{
			"provider": s.directions.Name(),
			"status":   resp.Status,
		}).Warn("directions provider returned non-OK status")
		return nil, models.NewProviderError(utils.MsgRoutesFailed, map[string]string{
			"status":       resp.Status,
			"errorMessage": resp.ErrorMessage,
		}, nil)
	}

	routes := resp.Routes
	if routes == nil {
		routes = []models.Route{}
	}

	result := &models.RoutesResult{
		Success:           true,
		Routes:            routes,
		AlternativeRoutes: []models.Route{},
	}
	if len(routes) > 0 {
		result.PrimaryRoute = &routes[0]
		result.AlternativeRoutes = routes[1:]
	}

	return result, nil
}

// StartTrip resolves the primary and shortcut routes concurrently and builds
// the dispatch snapshot. The snapshot is relayed but not stored in the ledger.
func (s *routingService) StartTrip(ctx context.Context, req *validators.StartTripRequest) (*models.StartTripResult, error) {
	if appErr := validators.ValidateStartTrip(req); appErr != nil {
		return nil, appErr
	}

	var primary, alternatives *models.DirectionsResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		resp, err := s.directions.GetDirections(gctx, &maps.DirectionsRequest{
			Origin:      *req.Origin,
			Destination: *req.Destination,
		})
		primary = resp
		return err
	})
	g.Go(func() error {
		resp, err := s.directions.GetDirections(gctx, &maps.DirectionsRequest{
			Origin:       *req.Origin,
			Destination:  *req.Destination,
			Alternatives: true,
		})
		alternatives = resp
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WithAmbulanceID(req.AmbulanceID).WithError(err).Error("failed to resolve trip routes")
		return nil, models.NewProviderError("Failed to start trip", nil, err)
	}

	snapshot := &models.TripSnapshot{
		AmbulanceID:     req.AmbulanceID,
		Origin:          *req.Origin,
		Destination:     *req.Destination,
		Status:          tripSnapshotStatus,
		StartTime:       utils.NowMillis(),
		CurrentLocation: *req.Origin,
		PrimaryRoute:    routeAt(primary, 0),
		ShortcutRoute:   shortcutRoute(alternatives),
	}

	if s.relay != nil {
		if err := s.relay.Publish(ctx, realtime.TripPath(req.AmbulanceID), snapshot); err != nil {
			s.logger.WithAmbulanceID(req.AmbulanceID).WithError(err).Warn("failed to relay trip snapshot")
		}
	}

	s.logger.LogAmbulanceEvent(req.AmbulanceID, "dispatched", map[string]interface{}{
		"has_primary":  snapshot.PrimaryRoute != nil,
		"has_shortcut": snapshot.ShortcutRoute != nil,
	})

	return &models.StartTripResult{
		Success:  true,
		TripData: snapshot,
		Message:  utils.MsgTripStarted,
	}, nil
}

// shortcutRoute prefers the second-ranked alternative and falls back to the first.
func shortcutRoute(resp *models.DirectionsResponse) *models.Route {
	if route := routeAt(resp, 1); route != nil {
		return route
	}
	return routeAt(resp, 0)
}

func routeAt(resp *models.DirectionsResponse, i int) *models.Route {
	if resp == nil || i >= len(resp.Routes) {
		return nil
	}
	route := resp.Routes[i]
	return &route
}
