package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// SweetHandler handles catalog CRUD and search endpoints.
type SweetHandler struct {
	catalog ports.CatalogService
}

func NewSweetHandler(catalog ports.CatalogService) *SweetHandler {
	return &SweetHandler{catalog: catalog}
}

// Create handles POST /api/sweets.
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	sweet, err := h.catalog.Create(c.Request().Context(), toCreateInput(req), actorID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, "Sweet created successfully", toSweetResponse(sweet))
}

// List handles GET /api/sweets?page&limit.
//
// @Summary      List sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Page size (default 10)"
// @Success      200    {object}  listSweetsResponse
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	page := intQuery(c, "page", 0)
	limit := intQuery(c, "limit", 0)

	result, err := h.catalog.List(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", listSweetsResponse{
		Count: len(result.Items),
		Total: result.Total,
		Page:  result.Page,
		Pages: result.TotalPages,
		Items: toSweetResponses(result.Items),
	})
}

// Search handles GET /api/sweets/search?name&category&minPrice&maxPrice.
//
// @Summary      Search sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        name      query     string  false  "Case-insensitive substring match"
// @Param        category  query     string  false  "Exact category"
// @Param        minPrice  query     number  false  "Inclusive lower price bound"
// @Param        maxPrice  query     number  false  "Inclusive upper price bound"
// @Success      200       {object}  searchSweetsResponse
// @Failure      400       {object}  errorResponse
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	filter := ports.SearchSweetsFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
	}
	if v, err := strconv.ParseFloat(c.QueryParam("minPrice"), 64); err == nil {
		filter.MinPrice = v
		filter.HasMinPrice = true
	}
	if v, err := strconv.ParseFloat(c.QueryParam("maxPrice"), 64); err == nil {
		filter.MaxPrice = v
		filter.HasMaxPrice = true
	}

	items, err := h.catalog.Search(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "", searchSweetsResponse{
		Count: len(items),
		Items: toSweetResponses(items),
	})
}

// Get handles GET /api/sweets/:id.
//
// @Summary      Get a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  sweetResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [get]
func (h *SweetHandler) Get(c echo.Context) error {
	sweet, err := h.catalog.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, "", toSweetResponse(sweet))
}

// Update handles PUT /api/sweets/:id.
//
// @Summary      Update a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	actorID, err := ctxActor(c)
	if err != nil {
		return err
	}

	sweet, err := h.catalog.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req), actorID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Sweet updated successfully", toSweetResponse(sweet))
}

// Delete handles DELETE /api/sweets/:id. Admin-only via route middleware.
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.catalog.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return respond(c, http.StatusOK, "Sweet deleted successfully", nil)
}

// intQuery parses an integer query parameter, falling back to def when the
// parameter is absent or non-numeric.
func intQuery(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}
