// backend-go/internal/repository/cleanup_repository.go
package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shelfwatch/backend-go/internal/domain"
)

type CleanupRepository interface {
	// GetUnresolvedCleanupIssues returns every open issue for the tenant.
	// Resolved issues stay in the table as audit records and are not read
	// here.
	GetUnresolvedCleanupIssues(ctx context.Context, tenantID string) ([]domain.CleanupIssue, error)
}

type cleanupRepository struct {
	db *sqlx.DB
}

func NewCleanupRepository(db *sqlx.DB) CleanupRepository {
	return &cleanupRepository{db: db}
}

func (r *cleanupRepository) GetUnresolvedCleanupIssues(ctx context.Context, tenantID string) ([]domain.CleanupIssue, error) {
	query := `
		SELECT id, issue_type, severity, affected_items, resolved
		FROM cleanup_issues
		WHERE tenant_id = $1 AND resolved = FALSE
		ORDER BY severity, id
	`

	rows, err := r.db.QueryxContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("error getting cleanup issues: %w", err)
	}
	defer rows.Close()

	var issues []domain.CleanupIssue
	for rows.Next() {
		var issue domain.CleanupIssue
		var affected pq.StringArray
		if err := rows.Scan(&issue.ID, &issue.IssueType, &issue.Severity, &affected, &issue.Resolved); err != nil {
			return nil, fmt.Errorf("error scanning cleanup issue: %w", err)
		}
		issue.AffectedItems = []string(affected)
		issues = append(issues, issue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading cleanup issues: %w", err)
	}

	return issues, nil
}
