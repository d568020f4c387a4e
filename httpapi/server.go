package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	tracker "github.com/clee0412/crypto-balance-tracker-sub000"
)

// Server is the thin HTTP transport over the core services. It shapes
// requests and responses and maps error kinds onto status codes; no
// business rules live here.
type Server struct {
	transferService *tracker.TransferService
	marketService   *tracker.MarketService
	logger          tracker.Logger
}

func NewServer(
	transferService *tracker.TransferService,
	marketService *tracker.MarketService,
	logger tracker.Logger,
) *Server {
	return &Server{
		transferService: transferService,
		marketService:   marketService,
		logger:          logger,
	}
}

func (s *Server) Run(address string) error {
	router := gin.Default()

	router.POST("/users/:userID/transfers", s.transfer)
	router.GET("/assets", s.assets)
	router.GET("/assets/:assetID", s.asset)

	return router.Run(address)
}

type transferRequest struct {
	SourceHoldingID  string          `json:"sourceHoldingId" binding:"required"`
	FromPlatform     string          `json:"fromPlatform"`
	ToPlatform       string          `json:"toPlatform"`
	Amount           decimal.Decimal `json:"amount"`
	Fee              decimal.Decimal `json:"fee"`
	SendFullQuantity bool            `json:"sendFullQuantity"`
}

type transferResponse struct {
	SourceHoldingID  string          `json:"sourceHoldingId"`
	TargetHoldingID  string          `json:"targetHoldingId"`
	FromPlatform     string          `json:"fromPlatform"`
	ToPlatform       string          `json:"toPlatform"`
	Amount           decimal.Decimal `json:"amount"`
	Fee              decimal.Decimal `json:"fee"`
	CreditedQuantity decimal.Decimal `json:"creditedQuantity"`
}

func (s *Server) transfer(c *gin.Context) {
	userID := c.Param("userID")

	var request transferRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.transferService.Transfer(userID, &tracker.TransferRequest{
		SourceHoldingID:  request.SourceHoldingID,
		FromPlatform:     request.FromPlatform,
		ToPlatform:       request.ToPlatform,
		Amount:           request.Amount,
		Fee:              request.Fee,
		SendFullQuantity: request.SendFullQuantity,
	})
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, transferResponse{
		SourceHoldingID:  result.SourceHoldingID,
		TargetHoldingID:  result.TargetHoldingID,
		FromPlatform:     result.FromPlatform,
		ToPlatform:       result.ToPlatform,
		Amount:           result.Amount,
		Fee:              result.Fee,
		CreditedQuantity: result.CreditedQuantity,
	})
}

type assetResponse struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"imageUrl,omitempty"`
	USDPrice      decimal.Decimal `json:"usdPrice"`
	EURPrice      decimal.Decimal `json:"eurPrice"`
	BTCPrice      decimal.Decimal `json:"btcPrice"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

func (s *Server) asset(c *gin.Context) {
	asset, err := s.marketService.GetAsset(
		c.Request.Context(),
		c.Param("assetID"),
	)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, toAssetResponse(asset))
}

func (s *Server) assets(c *gin.Context) {
	assets, err := s.marketService.GetAllAssets()
	if err != nil {
		s.renderError(c, err)
		return
	}

	response := make([]assetResponse, 0, len(assets))
	for _, asset := range assets {
		response = append(response, toAssetResponse(asset))
	}

	c.JSON(http.StatusOK, response)
}

func toAssetResponse(asset *tracker.Asset) assetResponse {
	return assetResponse{
		ID:            asset.ID,
		Symbol:        asset.Symbol,
		Name:          asset.Name,
		ImageURL:      asset.ImageURL,
		USDPrice:      asset.Prices.USD,
		EURPrice:      asset.Prices.EUR,
		BTCPrice:      asset.Prices.BTC,
		LastUpdatedAt: asset.LastUpdatedAt,
	}
}

func (s *Server) renderError(c *gin.Context, err error) {
	kind, typed := tracker.ErrorKindOf(err)
	if !typed {
		s.logger.Errorf("internal error: [%v]", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(statusCode(kind), gin.H{"error": err.Error()})
}

func statusCode(kind tracker.ErrorKind) int {
	switch kind {
	case tracker.KindValidation:
		return http.StatusBadRequest
	case tracker.KindConflict:
		return http.StatusConflict
	case tracker.KindNotFound:
		return http.StatusNotFound
	case tracker.KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
