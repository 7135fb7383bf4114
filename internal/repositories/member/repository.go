// Package member is the roster store: read-only member lookups the
// matching pipeline and review UI run against.
package member

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"
	"github.com/huandu/go-sqlbuilder"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

var memberColumns = []string{"id", "employee_number", "given_name", "family_name", "status", "division_id"}

// Repository handles roster member lookups
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new member repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// SearchMembers finds active members whose given or family name contains
// either fragment, case-insensitively, optionally scoped to a division.
// It satisfies the import pipeline's RosterSearcher interface.
func (r *Repository) SearchMembers(ctx context.Context, givenFragment, familyFragment string, divisionID *string) ([]models.RosterMember, error) {
	ctx, span := tracing.StartSpan(ctx, "member.Repository.SearchMembers")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(memberColumns...)
	sb.From("members")
	sb.Where(sb.Equal("status", models.MemberStatusActive))

	var nameConds []string
	if givenFragment != "" {
		nameConds = append(nameConds, sb.ILike("given_name", "%"+givenFragment+"%"))
	}
	if familyFragment != "" {
		nameConds = append(nameConds, sb.ILike("family_name", "%"+familyFragment+"%"))
	}
	if len(nameConds) > 0 {
		// either fragment hitting is enough; the classifier narrows the net
		sb.Where(sb.Or(nameConds...))
	}

	if divisionID != nil {
		sb.Where(sb.Equal("division_id", *divisionID))
	}

	sb.OrderBy("employee_number")

	query, args := sb.Build()
	var members []models.RosterMember
	if err := r.db.SelectContext(ctx, &members, query, args...); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"given_fragment":  givenFragment,
			"family_fragment": familyFragment,
		}).Error("Failed to search members")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to search members")
	}

	return members, nil
}

// GetByEmployeeNumber retrieves a single member by their stable employee
// number.
func (r *Repository) GetByEmployeeNumber(ctx context.Context, employeeNumber int) (*models.RosterMember, error) {
	ctx, span := tracing.StartSpan(ctx, "member.Repository.GetByEmployeeNumber")
	defer span.End()

	sb := sqlbuilder.PostgreSQL.NewSelectBuilder()
	sb.Select(memberColumns...)
	sb.From("members")
	sb.Where(sb.Equal("employee_number", employeeNumber))

	query, args := sb.Build()
	var member models.RosterMember
	if err := r.db.GetContext(ctx, &member, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, httperror.NewHTTPError(http.StatusNotFound, "member not found")
		}
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"employee_number": employeeNumber,
		}).Error("Failed to get member")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to get member")
	}

	return &member, nil
}
