package db

import (
	"database/sql"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/rangesim/internal/agent"
	"github.com/banshee-data/rangesim/internal/lidar"
)

// ErrSessionNotFound is returned when a session id does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Session describes one simulation run.
type Session struct {
	SessionID        string  `json:"session_id"`
	AgentID          string  `json:"agent_id"`
	MapSource        string  `json:"map_source,omitempty"`
	MapWidth         int     `json:"map_width"`
	MapHeight        int     `json:"map_height"`
	RayCount         int     `json:"ray_count"`
	MaxRange         float64 `json:"max_range"`
	SamplesPerRay    int     `json:"samples_per_ray"`
	DistanceVariance float64 `json:"distance_variance"`
	AngleVariance    float64 `json:"angle_variance"`
	AgentRadius      float64 `json:"agent_radius"`
	MovementStep     float64 `json:"movement_step"`
	CreatedAtNanos   int64   `json:"created_at_ns"`
}

// TickRecord is the stored agent state after one tick.
type TickRecord struct {
	SessionID      string     `json:"session_id"`
	Tick           int        `json:"tick"`
	Position       lidar.Vec2 `json:"position"`
	Direction      string     `json:"direction,omitempty"`
	Moved          bool       `json:"moved"`
	PointCount     int        `json:"point_count"`
	RayCount       int        `json:"ray_count"`
	RecordedAtNano int64      `json:"recorded_at_ns"`
}

// Cloud kinds stored in sim_cloud_points.
const (
	CloudKindHit = "hit"
	CloudKindRay = "ray"
)

// StartSession inserts s, assigning a new id and creation time when unset.
func (db *DB) StartSession(s *Session) error {
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	if s.CreatedAtNanos == 0 {
		s.CreatedAtNanos = time.Now().UnixNano()
	}
	_, err := db.Exec(`
		INSERT INTO sim_sessions (
			session_id, agent_id, map_source, map_width, map_height,
			ray_count, max_range, samples_per_ray, distance_variance, angle_variance,
			agent_radius, movement_step, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.SessionID, s.AgentID, nullString(s.MapSource), s.MapWidth, s.MapHeight,
		s.RayCount, s.MaxRange, s.SamplesPerRay, s.DistanceVariance, s.AngleVariance,
		s.AgentRadius, s.MovementStep, s.CreatedAtNanos,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// GetSession loads a session by id.
func (db *DB) GetSession(sessionID string) (*Session, error) {
	var s Session
	var mapSource sql.NullString
	err := db.QueryRow(`
		SELECT session_id, agent_id, map_source, map_width, map_height,
			ray_count, max_range, samples_per_ray, distance_variance, angle_variance,
			agent_radius, movement_step, created_at_ns
		FROM sim_sessions WHERE session_id = ?`, sessionID,
	).Scan(
		&s.SessionID, &s.AgentID, &mapSource, &s.MapWidth, &s.MapHeight,
		&s.RayCount, &s.MaxRange, &s.SamplesPerRay, &s.DistanceVariance, &s.AngleVariance,
		&s.AgentRadius, &s.MovementStep, &s.CreatedAtNanos,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	s.MapSource = mapSource.String
	return &s, nil
}

// RecordTick stores the agent state after a tick together with the full
// point and ray clouds, in one transaction. dir is empty for the initial
// scan before any move.
func (db *DB) RecordTick(sessionID string, tick int, dir string, moved bool, snap agent.Snapshot) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin tick tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec(`
		INSERT INTO sim_ticks (
			session_id, tick, pos_x, pos_y, direction, moved, point_count, ray_count, recorded_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionID, tick, snap.Position.X, snap.Position.Y, nullString(dir), moved,
		len(snap.Points), len(snap.Rays), time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert tick %d: %w", tick, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO sim_cloud_points (session_id, tick, kind, seq, x, y, origin_x, origin_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cloud insert: %w", err)
	}
	defer stmt.Close()

	for kind, entries := range map[string][]agent.CloudEntry{CloudKindHit: snap.Points, CloudKindRay: snap.Rays} {
		for i, e := range entries {
			if _, err = stmt.Exec(sessionID, tick, kind, i, e.Point.X, e.Point.Y, e.Origin.X, e.Origin.Y); err != nil {
				return fmt.Errorf("insert %s point %d: %w", kind, i, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit tick %d: %w", tick, err)
	}
	return nil
}

// ListTicks returns the ticks of a session in order.
func (db *DB) ListTicks(sessionID string) ([]TickRecord, error) {
	rows, err := db.Query(`
		SELECT session_id, tick, pos_x, pos_y, direction, moved, point_count, ray_count, recorded_at_ns
		FROM sim_ticks WHERE session_id = ? ORDER BY tick`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var r TickRecord
		var dir sql.NullString
		if err := rows.Scan(&r.SessionID, &r.Tick, &r.Position.X, &r.Position.Y, &dir, &r.Moved,
			&r.PointCount, &r.RayCount, &r.RecordedAtNano); err != nil {
			return nil, fmt.Errorf("scan tick: %w", err)
		}
		r.Direction = dir.String
		out = append(out, r)
	}
	return out, rows.Err()
}

// CloudPoints returns the stored cloud of the given kind at a tick, in
// insertion order.
func (db *DB) CloudPoints(sessionID string, tick int, kind string) ([]agent.CloudEntry, error) {
	rows, err := db.Query(`
		SELECT x, y, origin_x, origin_y FROM sim_cloud_points
		WHERE session_id = ? AND tick = ? AND kind = ? ORDER BY seq`, sessionID, tick, kind)
	if err != nil {
		return nil, fmt.Errorf("query cloud points: %w", err)
	}
	defer rows.Close()

	var out []agent.CloudEntry
	for rows.Next() {
		var e agent.CloudEntry
		var x, y int
		if err := rows.Scan(&x, &y, &e.Origin.X, &e.Origin.Y); err != nil {
			return nil, fmt.Errorf("scan cloud point: %w", err)
		}
		e.Point = image.Pt(x, y)
		out = append(out, e)
	}
	return out, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
