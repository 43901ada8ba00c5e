package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
)

type appraisalRepository struct {
	db database.Querier
}

func NewAppraisalRepository(db database.Querier) performance.AppraisalRepository {
	return &appraisalRepository{db: db}
}

// ListPublished implements performance.AppraisalRepository.
func (r *appraisalRepository) ListPublished(ctx context.Context, since time.Time) ([]performance.Appraisal, error) {
	query := `
		SELECT id::text, employee_id::text, cycle_id, rater_id::text, score::float8,
			   potential, status, published_at
		FROM appraisals
		WHERE status = $1
		  AND published_at >= $2
		ORDER BY published_at, id
	`

	rows, err := r.db.Query(ctx, query, performance.StatusPublished, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list published appraisals: %w", err)
	}
	defer rows.Close()

	var out []performance.Appraisal
	for rows.Next() {
		var (
			a         performance.Appraisal
			potential *string
		)
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.CycleID, &a.RaterID, &a.Score, &potential, &a.Status, &a.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan appraisal: %w", err)
		}
		if potential != nil {
			p := performance.PotentialRating(*potential)
			a.Potential = &p
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appraisals: %w", err)
	}
	return out, nil
}
