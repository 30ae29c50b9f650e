package mysql

import (
	"context"
	"database/sql"

	"house_price/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertPrediction(ctx context.Context, p domain.PredictionLog) error {
	rec := p.Record
	_, err := r.db.ExecContext(ctx, insertPredictionSQL,
		p.ArtifactID,
		p.Endpoint,
		rec.AreaType,
		rec.Availability,
		rec.Location,
		rec.Size,
		rec.Society,
		rec.TotalSqft,
		rec.Bath,
		rec.Balcony,
		p.Prediction,
	)
	return err
}

func (r *Repo) ListPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, listPredictionsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.PredictionLog, 0, limit)
	for rows.Next() {
		var p domain.PredictionLog
		rec := &p.Record
		if err := rows.Scan(
			&p.ID,
			&p.ArtifactID,
			&p.Endpoint,
			&rec.AreaType,
			&rec.Availability,
			&rec.Location,
			&rec.Size,
			&rec.Society,
			&rec.TotalSqft,
			&rec.Bath,
			&rec.Balcony,
			&p.Prediction,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
