//nolint:whitespace // can't make both editor and linter happy
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/raceiq/raceiq-engine/pkg/model"
	"github.com/raceiq/raceiq-engine/pkg/repository"
)

var selector = `select s.id, s.driver_name, s.car_number, s.team, s.session_type,
	s.track_name, s.weather, s.created_at
	from session s`

// Upsert stores the session and replaces its laps.
// Each call moves the session to the front of the save order.
func Upsert(ctx context.Context, conn repository.Querier, s *model.Session) error {
	_, err := conn.Exec(ctx, `
	insert into session (
		id, driver_name, car_number, team, session_type, track_name, weather,
		created_at, saved_seq
	) values ($1,$2,$3,$4,$5,$6,$7,$8,nextval('session_saved_seq'))
	on conflict (id) do update set
		driver_name=excluded.driver_name,
		car_number=excluded.car_number,
		team=excluded.team,
		session_type=excluded.session_type,
		track_name=excluded.track_name,
		weather=excluded.weather,
		created_at=excluded.created_at,
		saved_seq=excluded.saved_seq
	`,
		s.ID, s.DriverName, s.CarNumber, s.Team, string(s.SessionType),
		s.TrackName, string(s.Weather), s.CreatedAt,
	)
	if err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, "delete from lap where session_id=$1", s.ID); err != nil {
		return err
	}
	for i := range s.Laps {
		if err := createLap(ctx, conn, s.ID, &s.Laps[i]); err != nil {
			return err
		}
	}
	return nil
}

func createLap(
	ctx context.Context,
	conn repository.Querier,
	sessionID uuid.UUID,
	l *model.LapRecord,
) error {
	_, err := conn.Exec(ctx, `
	insert into lap (
		session_id, lap_number, lap_time, sector1, sector2, sector3, speed,
		compound, fuel_load, is_personal_best, is_session_best, notes
	) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		sessionID, l.LapNumber, l.LapTime, l.Sector1, l.Sector2, l.Sector3, l.Speed,
		string(l.Compound), l.FuelLoad, l.IsPersonalBest, l.IsSessionBest, l.Notes,
	)
	return err
}

// PruneSaved keeps the keep most recently saved sessions.
// Returns the number of sessions deleted.
func PruneSaved(ctx context.Context, conn repository.Querier, keep int) (int, error) {
	cmdTag, err := conn.Exec(ctx, `
	delete from session where id not in (
		select id from session order by saved_seq desc limit $1
	)`, keep)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func LoadByID(ctx context.Context, conn repository.Querier, id uuid.UUID) (
	*model.Session, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where s.id=$1", selector), id)
	s, err := readData(row)
	if err != nil {
		return nil, err
	}
	if s.Laps, err = loadLaps(ctx, conn, id); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadRecent returns up to limit sessions, most recently saved first.
func LoadRecent(ctx context.Context, conn repository.Querier, limit int) (
	[]*model.Session, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s order by s.saved_seq desc limit $1", selector), limit)
	if err != nil {
		return nil, err
	}
	ret := make([]*model.Session, 0)
	defer rows.Close()
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range ret {
		if s.Laps, err = loadLaps(ctx, conn, s.ID); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func loadLaps(ctx context.Context, conn repository.Querier, sessionID uuid.UUID) (
	[]model.LapRecord, error,
) {
	rows, err := conn.Query(ctx, `
	select lap_number, lap_time, sector1, sector2, sector3, speed, compound,
		fuel_load, is_personal_best, is_session_best, notes
	from lap where session_id=$1 order by lap_number asc`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.LapRecord, 0)
	for rows.Next() {
		var l model.LapRecord
		var compound string
		if err := rows.Scan(
			&l.LapNumber, &l.LapTime, &l.Sector1, &l.Sector2, &l.Sector3, &l.Speed,
			&compound, &l.FuelLoad, &l.IsPersonalBest, &l.IsSessionBest, &l.Notes,
		); err != nil {
			return nil, err
		}
		l.Compound = model.Compound(compound)
		ret = append(ret, l)
	}
	return ret, rows.Err()
}

// deletes an entry from the database, returns number of rows deleted.
func DeleteByID(ctx context.Context, conn repository.Querier, id uuid.UUID) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from session where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func LoadCurrent(ctx context.Context, conn repository.Querier) (*model.Session, error) {
	var data []byte
	row := conn.QueryRow(ctx, "select data from current_session where id=1")
	if err := row.Scan(&data); err != nil {
		return nil, err
	}
	var ret model.Session
	if err := json.Unmarshal(data, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

func StoreCurrent(ctx context.Context, conn repository.Querier, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = conn.Exec(ctx, `
	insert into current_session (id, data) values (1, $1)
	on conflict (id) do update set data=excluded.data`, data)
	return err
}

func DeleteCurrent(ctx context.Context, conn repository.Querier) error {
	_, err := conn.Exec(ctx, "delete from current_session")
	return err
}

func readData(row pgx.Row) (*model.Session, error) {
	var item model.Session
	var sessionType, weather string
	if err := row.Scan(
		&item.ID,
		&item.DriverName,
		&item.CarNumber,
		&item.Team,
		&sessionType,
		&item.TrackName,
		&weather,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}
	item.SessionType = model.SessionType(sessionType)
	item.Weather = model.Weather(weather)
	return &item, nil
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrSessionNotFound
	}
	return err
}
