package insights

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"genolens/api/contexts"
	"genolens/api/models"
	"genolens/api/models/constants"
	"genolens/api/models/dtos"
	"genolens/api/models/dtos/errors"

	"github.com/labstack/echo"
)

const DefaultPerCategory = 2

/*
GetInsights serves the canned insights browser: a random pick of
`perCategory` collections for each canned category, or every matching
collection when a `q` search query is given
*/
func GetInsights(c echo.Context) error {
	gc := c.(*contexts.GenolensContext)

	query := strings.TrimSpace(c.QueryParam("q"))
	if query != "" {
		return c.JSON(http.StatusOK, dtos.InsightsResponseDto{
			Query:       query,
			Collections: gc.Catalog.Search(query),
		})
	}

	perCategory := DefaultPerCategory
	if perCategoryQP := c.QueryParam("perCategory"); perCategoryQP != "" {
		parsed, err := strconv.Atoi(perCategoryQP)
		if err != nil || parsed < 1 {
			return c.JSON(http.StatusBadRequest, errors.CreateSimpleBadRequest(
				fmt.Sprintf("invalid perCategory %s - please provide a positive integer", perCategoryQP)))
		}
		perCategory = parsed
	}

	collections := map[constants.Category][]models.InsightCollection{}
	for _, category := range gc.Catalog.Categories() {
		collections[category] = gc.Sampler.Sample(category, perCategory)
	}

	return c.JSON(http.StatusOK, dtos.InsightsResponseDto{Collections: collections})
}
