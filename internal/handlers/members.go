package handlers

import (
	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/internal/repositories/member"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// MemberHandler exposes roster search for the review UI.
type MemberHandler struct {
	repo   *member.Repository
	logger ectologger.Logger
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(repo *member.Repository, logger ectologger.Logger) *MemberHandler {
	return &MemberHandler{
		repo:   repo,
		logger: logger,
	}
}

// MemberListResponse wraps the search result.
type MemberListResponse struct {
	Members []models.RosterMember `json:"members"`
}

// Register registers member routes
func (h *MemberHandler) Register(g *echo.Group) {
	g.GET("", h.Search)
}

// Search finds active members by name fragments.
func (h *MemberHandler) Search(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "MemberHandler.Search")
	defer span.End()
	c.SetRequest(c.Request().WithContext(ctx))

	given := c.QueryParam("given")
	family := c.QueryParam("family")
	if given == "" && family == "" {
		return BadRequest("at least one of given or family is required")
	}

	var divisionID *string
	if div := c.QueryParam("division_id"); div != "" {
		divisionID = &div
	}

	members, err := h.repo.SearchMembers(ctx, given, family, divisionID)
	if err != nil {
		return err
	}

	return SuccessResponse(c, MemberListResponse{Members: members})
}
