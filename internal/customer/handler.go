package customer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfectbrow/consent-api/internal/customer/model"
	"github.com/perfectbrow/consent-api/internal/system/utils"
)

type customerHandler struct {
	service CustomerService
}

func newCustomerHandler(service CustomerService) *customerHandler {
	return &customerHandler{
		service: service,
	}
}

// findMatches handles POST /customer-matches
func (h *customerHandler) findMatches(c *gin.Context) {
	var req model.MatchAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "first_name, last_name, and phone are required")
		return
	}

	matches, serviceErr := h.service.FindMatches(c.Request.Context(), req.FirstName, req.LastName, req.Phone)
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}

	response := model.MatchAPIResponse{
		Matches:             matches,
		HasExactMatch:       len(matches) > 0 && matches[0].MatchType == model.MatchTypeExact,
		HasSuggestedMatches: len(matches) > 0 && matches[0].MatchType == model.MatchTypeSuggested,
	}
	c.JSON(http.StatusOK, response)
}

// getCustomer handles GET /customers/{customerId}
func (h *customerHandler) getCustomer(c *gin.Context) {
	customer, serviceErr := h.service.GetCustomer(c.Request.Context(), c.Param("customerId"))
	if serviceErr != nil {
		utils.SendError(c, serviceErr)
		return
	}
	c.JSON(http.StatusOK, customer)
}
