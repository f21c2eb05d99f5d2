package progress

import (
	"context"
	"fmt"

	"github.com/ericzhangohoh/caplet/internal/domain"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/auth"
	"github.com/ericzhangohoh/caplet/internal/infrastructure/driver"
	"go.elastic.co/apm"
)

// SQLProgress reads the lesson_progress table written by the learning
// platform. The viewer token is verified locally and its uid claim selects
// the rows.
type SQLProgress struct {
	Conn    driver.DB
	JWTUtil *auth.JWTUtil
}

var _ domain.ProgressService = &SQLProgress{}

// NewSQLProgress ...
func NewSQLProgress(Conn driver.DB, JWTUtil *auth.JWTUtil) *SQLProgress {
	return &SQLProgress{
		Conn:    Conn,
		JWTUtil: JWTUtil,
	}
}

// GetCourseProgress implement domain.ProgressService
func (sp *SQLProgress) GetCourseProgress(ctx context.Context, courseID domain.ID, viewer domain.Viewer) (*domain.ProgressRecord, error) {
	if viewer.Anonymous() {
		return nil, domain.ErrUnauthorized
	}
	claims, err := sp.JWTUtil.Validate(viewer.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	if claims.UID == "" {
		return nil, fmt.Errorf("%w: token has no uid", domain.ErrUnauthorized)
	}

	apmSpan, ctx := apm.StartSpan(ctx, "SQLProgress.GetCourseProgress", "db.sql")
	defer apmSpan.End()

	rows, err := sp.Conn.QueryContext(ctx, `
SELECT
    lp."lesson_id", lp."status"
FROM
    lesson_progress lp
WHERE
    lp.user_id = $1 AND lp.course_id = $2
ORDER BY
    lp.updated_at
	`, claims.UID, courseID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	defer rows.Close()

	record := domain.EmptyProgress()
	record.CourseID = courseID
	for rows.Next() {
		var lessonID, status string
		if err := rows.Scan(&lessonID, &status); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
		}
		record.LessonProgress = append(record.LessonProgress, domain.LessonProgress{
			LessonID: domain.ID(lessonID),
			Status:   status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrServiceUnavailable, err)
	}
	return record, nil
}
