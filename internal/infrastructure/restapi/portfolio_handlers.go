package restapi

import (
	"errors"
	"net/http"

	"portfolio_analyzer/internal/app/port"
	"portfolio_analyzer/internal/app/service"
	"portfolio_analyzer/internal/domain/entity"
	"portfolio_analyzer/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidateAddressResponse reports whether an address is well-formed.
type ValidateAddressResponse struct {
	Address string `json:"address"`
	Valid   bool   `json:"valid"`
}

// APIWatchlistResponse is the answer of the watchlist endpoint.
type APIWatchlistResponse struct {
	Reports       []entity.PortfolioReport `json:"reports"`
	Errors        []entity.PortfolioError  `json:"errors,omitempty"`
	StatusMessage string                   `json:"status_message"`
}

// SearchRequest is the body of a session search.
type SearchRequest struct {
	Address string `json:"address" binding:"required"`
}

// SearchResponse carries the outcome of one search and whether it became the session's state.
type SearchResponse struct {
	Report  *entity.PortfolioReport `json:"report,omitempty"`
	Applied bool                    `json:"applied"`
	Error   string                  `json:"error,omitempty"`
}

// PortfolioHandler serves the portfolio and session endpoints.
type PortfolioHandler struct {
	portfolioService port.PortfolioService
	tracker          *service.SearchTracker
	logger           port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(ps port.PortfolioService, tracker *service.SearchTracker, l port.Logger) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: ps,
		tracker:          tracker,
		logger:           l,
	}
}

// ValidateAddressHandler answers whether the path address is a well-formed wallet address.
func (h *PortfolioHandler) ValidateAddressHandler(c *gin.Context) {
	address := c.Param("address")
	c.JSON(http.StatusOK, ValidateAddressResponse{
		Address: address,
		Valid:   utils.ValidateAddress(utils.NormalizeAddress(address)),
	})
}

// GetWalletPortfolioHandler fetches and analyzes a single wallet.
func (h *PortfolioHandler) GetWalletPortfolioHandler(c *gin.Context) {
	walletAddress := c.Param("walletAddress")

	report, err := h.portfolioService.AnalyzeWallet(c.Request.Context(), walletAddress)
	if err != nil {
		h.logger.Warn("Wallet analysis failed", "wallet", walletAddress, "error", err)
		_ = c.Error(err)
		c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetWatchlistPortfoliosHandler analyzes every wallet of the configured watchlist.
func (h *PortfolioHandler) GetWatchlistPortfoliosHandler(c *gin.Context) {
	reports, serviceErrors := h.portfolioService.AnalyzeWatchlist(c.Request.Context())
	if reports == nil {
		reports = []entity.PortfolioReport{}
	}

	response := APIWatchlistResponse{
		Reports: reports,
		Errors:  serviceErrors,
	}

	switch {
	case len(serviceErrors) > 0 && len(reports) == 0:
		response.StatusMessage = "Failed to analyze any wallet of the watchlist."
	case len(serviceErrors) > 0:
		response.StatusMessage = "Watchlist analyzed. Some wallets could not be analyzed."
	case len(reports) == 0:
		response.StatusMessage = "No wallets found. Check the watchlist file."
	default:
		response.StatusMessage = "Watchlist analyzed successfully."
	}

	c.JSON(http.StatusOK, response)
}

// SearchHandler runs a search as the newest generation of the session.
// The report is returned even when a newer search superseded it; Applied tells which case occurred.
func (h *PortfolioHandler) SearchHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be {\"address\": \"0x...\"}"})
		return
	}

	report, applied, err := h.tracker.Search(c.Request.Context(), sessionID, req.Address, h.portfolioService.AnalyzeWallet)
	if err != nil {
		_ = c.Error(err)
		c.JSON(statusFor(err), SearchResponse{Applied: applied, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, SearchResponse{Report: report, Applied: applied})
}

// GetSessionHandler returns the current state of a search session.
func (h *PortfolioHandler) GetSessionHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.State(c.Param("sessionID")))
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var aggErr *entity.AggregationError
	switch {
	case errors.Is(err, entity.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.As(err, &aggErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
