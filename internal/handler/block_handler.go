package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/chainstats/internal/logic"
	"github.com/gin-gonic/gin"
)

type BlockHandler struct {
	blockLogic *logic.BlockLogic
}

func NewBlockHandler(blockLogic *logic.BlockLogic) *BlockHandler {
	return &BlockHandler{blockLogic: blockLogic}
}

// GetBlocks lists recorded blocks with filtering and pagination.
func (h *BlockHandler) GetBlocks(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page_size"})
		return
	}

	currencyName := c.Query("currency_name")

	var providerId int64
	if raw := c.Query("provider_id"); raw != "" {
		providerId, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid provider_id"})
			return
		}
	}

	list, err := h.blockLogic.ListBlocks(c.Request.Context(), page, pageSize, currencyName, providerId)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetBlockByKey fetches a block by currency name and block number.
func (h *BlockHandler) GetBlockByKey(c *gin.Context) {
	currencyName := c.Param("currency_name")

	blockNumber, err := strconv.ParseInt(c.Param("block_number"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block number"})
		return
	}

	block, err := h.blockLogic.GetBlockByKey(c.Request.Context(), currencyName, blockNumber)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, block)
}

// GetBlockById fetches a block by its application id.
func (h *BlockHandler) GetBlockById(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("block_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid block id"})
		return
	}

	block, err := h.blockLogic.GetBlockById(c.Request.Context(), id)
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, block)
}

// GetProviders lists all providers.
func (h *BlockHandler) GetProviders(c *gin.Context) {
	providers, err := h.blockLogic.ListProviders(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, providers)
}

// GetCurrencies lists all currencies.
func (h *BlockHandler) GetCurrencies(c *gin.Context) {
	currencies, err := h.blockLogic.ListCurrencies(c.Request.Context())
	if err != nil {
		ErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, currencies)
}
