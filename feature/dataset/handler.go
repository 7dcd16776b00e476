package dataset

import (
	"strings"

	"roster-manager/core/logger"
	"roster-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Identity headers, used when the query carries no identity.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserName = "X-User-Name"
)

// Handler handles HTTP requests for participant datasets.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the dataset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dataset")
	group.Get("/:eventId", h.HandleGetDataset)
	group.Get("/:eventId/team", h.HandleGetTeam)

	app.Get("/idcard/:idCard", h.HandleGetIDCard)
}

func identityOf(c *fiber.Ctx) reconcile.Identity {
	userID := c.Query("user_id", c.Get(HeaderUserID))
	names := c.Query("user_name", c.Get(HeaderUserName))

	id := reconcile.Identity{UserID: strings.TrimSpace(userID)}
	for _, n := range strings.Split(names, ",") {
		if n = strings.TrimSpace(n); n != "" {
			id.Names = append(id.Names, n)
		}
	}
	return id
}

// HandleGetDataset returns the reconciled participant dataset of an event.
// @Summary Get Participant Dataset
// @Description Merge every participant record of an event (and team) into one ordered, deduplicated dataset.
// @Tags dataset
// @Produce json
// @Param eventId path string true "Event ID"
// @Param team_id query string false "Team ID"
// @Param include_players query bool false "Include players" default(true)
// @Param include_staff query bool false "Include coaches, medics and staff" default(true)
// @Param include_pending query bool false "Count pending team applications" default(false)
// @Param prefer_snapshot query bool false "Seed from the submitted snapshot" default(false)
// @Param user_id query string false "Caller user id (or X-User-Id header)"
// @Param user_name query string false "Caller names, comma separated (or X-User-Name header)"
// @Success 200 {object} reconcile.Dataset "Dataset"
// @Router /dataset/{eventId} [get]
func (h *Handler) HandleGetDataset(c *fiber.Ctx) error {
	opts := reconcile.Options{
		EventID:        c.Params("eventId"),
		TeamID:         c.Query("team_id"),
		ExcludePlayers: !c.QueryBool("include_players", true),
		ExcludeStaff:   !c.QueryBool("include_staff", true),
		IncludePending: c.QueryBool("include_pending", false),
		PreferSnapshot: c.QueryBool("prefer_snapshot", false),
		Identity:       identityOf(c),
	}

	ds := h.service.Dataset(c.UserContext(), opts)
	logger.WithRayID(h.service.logger, c).Debug("Dataset served",
		zap.String("event_id", opts.EventID),
		zap.Int("total", ds.Meta.Total),
	)
	return c.JSON(ds)
}

// HandleGetTeam returns the team context resolved for an event.
// @Summary Get Team Context
// @Description Resolve the team an event view belongs to.
// @Tags dataset
// @Produce json
// @Param eventId path string true "Event ID"
// @Param team_id query string false "Team ID"
// @Param user_id query string false "Caller user id (or X-User-Id header)"
// @Param user_name query string false "Caller names, comma separated (or X-User-Name header)"
// @Success 200 {object} reconcile.Team "Team"
// @Failure 404 {object} map[string]string "Team not found"
// @Router /dataset/{eventId}/team [get]
func (h *Handler) HandleGetTeam(c *fiber.Ctx) error {
	team := h.service.Team(c.UserContext(), c.Params("eventId"), c.Query("team_id"), identityOf(c))
	if team == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "team not found",
		})
	}
	return c.JSON(team)
}

// HandleGetIDCard derives gender, age and the masked number from an ID card.
// @Summary Inspect ID Card
// @Description Derive gender, age and the masked form of a resident ID card.
// @Tags dataset
// @Produce json
// @Param idCard path string true "ID card number"
// @Success 200 {object} IDCardInfo "Derived values"
// @Router /idcard/{idCard} [get]
func (h *Handler) HandleGetIDCard(c *fiber.Ctx) error {
	return c.JSON(h.service.IDCard(c.Params("idCard")))
}
