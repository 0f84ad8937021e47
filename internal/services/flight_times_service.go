package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"openpilotlog/nightlog/internal/calc"
	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/db/repositories"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/metrics"
	gormModels "openpilotlog/nightlog/internal/models/gorm"

	"go.uber.org/zap"
)

// CoordinateResolver maps an ICAO or IATA identifier to its position
type CoordinateResolver interface {
	Resolve(ctx context.Context, ident string) (calc.GeoCoordinate, error)
}

// FlightStore iterates and persists logbook entries
type FlightStore interface {
	ForEachFlight(ctx context.Context, visit repositories.FlightVisitor) error
	ForEachFlightUsingAircraft(ctx context.Context, aircraftID uint, visit repositories.FlightVisitor) error
	Commit(ctx context.Context, flight *gormModels.Flight) error
}

type AircraftStore interface {
	FindByID(ctx context.Context, id uint) (*gormModels.Aircraft, error)
}

type SettingsProvider interface {
	ReadNightAngle(ctx context.Context) (float64, error)
}

// RecomputeResult summarises a batch pass over the flight store
type RecomputeResult struct {
	Job      constants.JobName `json:"job"`
	Visited  int               `json:"visited"`
	Updated  int               `json:"updated"`
	Failed   int               `json:"failed"`
	Duration time.Duration     `json:"duration_ns"`
}

// FlightTimesService derives night time and time categories for logged flights
type FlightTimesService struct {
	resolver CoordinateResolver
	flights  FlightStore
	aircraft AircraftStore
	settings SettingsProvider
	metrics  *metrics.MetricsRegistry
	logger   *zap.SugaredLogger
}

// NewFlightTimesService wires the service. metrics may be nil and logger
// defaults to the global logger.
func NewFlightTimesService(
	resolver CoordinateResolver,
	flights FlightStore,
	aircraft AircraftStore,
	settings SettingsProvider,
	m *metrics.MetricsRegistry,
	logger *zap.SugaredLogger,
) *FlightTimesService {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &FlightTimesService{
		resolver: resolver,
		flights:  flights,
		aircraft: aircraft,
		settings: settings,
		metrics:  m,
		logger:   logger,
	}
}

// RecomputeNightTimes recalculates night minutes and the day/night split of
// takeoffs and landings for every flight, using the configured night angle.
// A flight that cannot be computed is logged and left unchanged.
func (s *FlightTimesService) RecomputeNightTimes(ctx context.Context) (*RecomputeResult, error) {
	start := time.Now()
	result := &RecomputeResult{Job: constants.JobRecomputeNightTimes}

	angle, err := s.settings.ReadNightAngle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read night angle: %w", err)
	}

	err = s.flights.ForEachFlight(ctx, func(ctx context.Context, flight *gormModels.Flight) error {
		result.Visited++
		if err := s.recomputeNightTime(ctx, flight, angle); err != nil {
			result.Failed++
			s.logger.Warnw("Skipping night time recompute for flight",
				"flight_id", flight.ID,
				"dept", flight.Dept,
				"dest", flight.Dest,
				"error", err,
			)
			return nil
		}
		result.Updated++
		return nil
	})

	s.finish(result, start)
	if err != nil {
		return result, fmt.Errorf("night time recompute aborted: %w", err)
	}

	s.logger.Infow("Night time recompute complete",
		"night_angle", angle,
		"visited", result.Visited,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *FlightTimesService) recomputeNightTime(ctx context.Context, flight *gormModels.Flight, angle float64) error {
	blockOff, err := flight.BlockOffUTC()
	if err != nil {
		return err
	}

	values, err := s.nightTimeValues(ctx, flight.Dept, flight.Dest, blockOff, flight.TBLK, angle)
	if err != nil {
		return err
	}

	// work on a copy so a failed commit leaves the visited row as it was
	updated := *flight
	updated.TNight = values.NightMinutes

	split := calc.SplitTakeoffsLandings(*values, flight.Takeoffs(), flight.Landings())
	updated.ToDay = split.TakeoffsDay
	updated.ToNight = split.TakeoffsNight
	updated.LdgDay = split.LandingsDay
	updated.LdgNight = split.LandingsNight

	if err := s.flights.Commit(ctx, &updated); err != nil {
		return err
	}
	*flight = updated
	return nil
}

// RecomputeTimeCategories assigns the block time of every flight on the
// aircraft to exactly one of multi-pilot, single-pilot multi-engine or
// single-pilot single-engine time.
func (s *FlightTimesService) RecomputeTimeCategories(ctx context.Context, aircraftID uint) (*RecomputeResult, error) {
	start := time.Now()
	result := &RecomputeResult{Job: constants.JobRecomputeTimeCategories}

	aircraft, err := s.aircraft.FindByID(ctx, aircraftID)
	if err != nil {
		return nil, err
	}

	err = s.flights.ForEachFlightUsingAircraft(ctx, aircraftID, func(ctx context.Context, flight *gormModels.Flight) error {
		result.Visited++

		updated := *flight
		applyTimeCategory(&updated, aircraft)

		if err := s.flights.Commit(ctx, &updated); err != nil {
			result.Failed++
			s.logger.Warnw("Skipping time category recompute for flight",
				"flight_id", flight.ID,
				"aircraft_id", aircraftID,
				"error", err,
			)
			return nil
		}
		*flight = updated
		result.Updated++
		return nil
	})

	s.finish(result, start)
	if err != nil {
		return result, fmt.Errorf("time category recompute aborted: %w", err)
	}

	s.logger.Infow("Time category recompute complete",
		"aircraft_id", aircraftID,
		"registration", aircraft.Registration,
		"visited", result.Visited,
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

func applyTimeCategory(flight *gormModels.Flight, aircraft *gormModels.Aircraft) {
	block := sql.NullInt64{Int64: int64(flight.TBLK), Valid: true}
	flight.TMP = sql.NullInt64{}
	flight.TSPME = sql.NullInt64{}
	flight.TSPSE = sql.NullInt64{}

	switch {
	case aircraft.MultiPilot:
		flight.TMP = block
	case aircraft.MultiEngine:
		flight.TSPME = block
	default:
		flight.TSPSE = block
	}
}

// ComputeNightTime calculates night values for a single prospective flight
// using the configured night angle. Unknown identifiers surface as
// repositories.ErrAirportNotFound rather than as zero night minutes.
func (s *FlightTimesService) ComputeNightTime(ctx context.Context, dept, dest string, blockOff time.Time, blockMinutes int) (*calc.NightTimeValues, error) {
	angle, err := s.settings.ReadNightAngle(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read night angle: %w", err)
	}
	return s.nightTimeValues(ctx, dept, dest, blockOff, blockMinutes, angle)
}

// IsNightAt reports whether it is night at the airport at instant t
func (s *FlightTimesService) IsNightAt(ctx context.Context, ident string, t time.Time) (bool, error) {
	angle, err := s.settings.ReadNightAngle(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read night angle: %w", err)
	}

	coord, err := s.resolver.Resolve(ctx, ident)
	if err != nil {
		return false, err
	}
	return calc.IsNight(coord, t, angle), nil
}

// DistanceBetweenAirports returns the great circle distance in nautical miles
func (s *FlightTimesService) DistanceBetweenAirports(ctx context.Context, dept, dest string) (float64, error) {
	from, to, err := s.resolvePair(ctx, dept, dest)
	if err != nil {
		return 0, err
	}
	return calc.RadToNauticalMiles(calc.Distance(from, to)), nil
}

func (s *FlightTimesService) nightTimeValues(ctx context.Context, dept, dest string, blockOff time.Time, blockMinutes int, angle float64) (*calc.NightTimeValues, error) {
	from, to, err := s.resolvePair(ctx, dept, dest)
	if err != nil {
		return nil, err
	}

	values, err := calc.NewNightTimeValues(from, to, blockOff, blockMinutes, angle)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.NightTimeComputationsTotal.Inc()
	}
	return &values, nil
}

func (s *FlightTimesService) resolvePair(ctx context.Context, dept, dest string) (calc.GeoCoordinate, calc.GeoCoordinate, error) {
	from, err := s.resolver.Resolve(ctx, dept)
	if err != nil {
		return calc.GeoCoordinate{}, calc.GeoCoordinate{}, fmt.Errorf("departure %s: %w", dept, err)
	}
	to, err := s.resolver.Resolve(ctx, dest)
	if err != nil {
		return calc.GeoCoordinate{}, calc.GeoCoordinate{}, fmt.Errorf("destination %s: %w", dest, err)
	}
	return from, to, nil
}

func (s *FlightTimesService) finish(result *RecomputeResult, start time.Time) {
	result.Duration = time.Since(start)
	if s.metrics == nil {
		return
	}
	job := string(result.Job)
	s.metrics.RecomputeFlightsTotal.WithLabelValues(job, metrics.OutcomeUpdated).Add(float64(result.Updated))
	s.metrics.RecomputeFlightsTotal.WithLabelValues(job, metrics.OutcomeFailed).Add(float64(result.Failed))
	s.metrics.RecomputeDuration.WithLabelValues(job).Observe(result.Duration.Seconds())
}
