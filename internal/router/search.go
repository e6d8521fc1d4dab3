package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/0xhtml/search-engine/internal/apperr"
	"github.com/0xhtml/search-engine/internal/dto"
	"github.com/0xhtml/search-engine/internal/search"
)

type SearchRouter struct {
	e       *echo.Echo
	service *search.Service
}

func NewSearchRouter(e *echo.Echo, service *search.Service) *SearchRouter {
	return &SearchRouter{
		e:       e,
		service: service,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/search", r.searchHandler)
}

// searchHandler godoc
// @Summary Search across upstream engines
// @Description Fans the query out to all applicable engines and returns one merged, ranked result page
// @Tags search
// @Produce json
// @Param q query string true "Search query, supports quoted phrases and site:/lang: filters"
// @Param mode query string false "Result mode" Enums(web, images, scholar) default(web)
// @Param page query int false "1-based result page" default(1)
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} map[string]string
// @Router /search [get]
func (r *SearchRouter) searchHandler(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		var err error
		page, err = strconv.Atoi(raw)
		if err != nil {
			return apperr.NewValidationWrap("page must be a number", err)
		}
	}

	resp, err := r.service.Search(c.Request().Context(), search.Params{
		Query:          c.QueryParam("q"),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
		Mode:           c.QueryParam("mode"),
		Page:           page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.NewSearchResponse(resp))
}
