package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/setavenger/raito-oracle/internal/config"
	"github.com/setavenger/raito-oracle/internal/logging"
	"github.com/setavenger/raito-oracle/internal/proofs"
	"github.com/setavenger/raito-oracle/internal/store"
	"github.com/setavenger/raito-oracle/internal/types"
)

// ApiHandler serves the read surface. The store backend is injected at startup;
// handlers never know which variant they talk to.
type ApiHandler struct {
	store  store.Store
	proofs *proofs.Locator
}

func NewApiHandler(s store.Store, locator *proofs.Locator) *ApiHandler {
	return &ApiHandler{store: s, proofs: locator}
}

type blocksQuery struct {
	Limit  *int    `form:"limit" binding:"omitempty,min=1,max=50"`
	Cursor *uint32 `form:"cursor"`
}

func (h *ApiHandler) GetBlocks(c *gin.Context) {
	var q blocksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid query parameter: " + err.Error(),
		})
		return
	}

	limit := config.DefaultPageLimit
	if q.Limit != nil {
		limit = *q.Limit
	}

	page, err := h.store.ListBlocks(c.Request.Context(), limit, q.Cursor)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ApiHandler) GetBlockByIdentifier(c *gin.Context) {
	id := store.ClassifyIdentifier(c.Param("identifier"))

	var detail types.BlockDetail
	var err error
	switch id.Kind {
	case store.IdentifierHeight:
		detail, err = h.store.BlockByHeight(c.Request.Context(), id.Height)
	case store.IdentifierHash:
		detail, err = h.store.BlockByHash(c.Request.Context(), id.Hash)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error": store.InvalidIdentifierErr{Identifier: id.Raw}.Error(),
		})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *ApiHandler) GetBlockProof(c *gin.Context) {
	identifier := c.Param("identifier")
	height, err := strconv.ParseUint(identifier, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": store.InvalidIdentifierErr{Identifier: identifier}.Error(),
		})
		return
	}

	data, err := h.proofs.Fetch(c.Request.Context(), uint32(height))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("block_%d_proof.json", height)))
	c.Data(http.StatusOK, "application/json", data)
}

func (h *ApiHandler) GetTransactionStatus(c *gin.Context) {
	txid := c.Param("txid")
	if !store.IsHex64(txid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid transaction id: " + txid,
		})
		return
	}

	status, err := h.store.TransactionStatus(c.Request.Context(), txid)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ApiHandler) GetHeaderStatus(c *gin.Context) {
	hash := c.Param("hash")
	if !store.IsHex64(hash) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid header hash: " + hash,
		})
		return
	}

	status, err := h.store.HeaderStatus(c.Request.Context(), hash)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *ApiHandler) HealthCheck(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		logging.L.Err(err).Msg("health check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store error"})
		return
	}
	c.JSON(http.StatusOK, types.HealthStatus{
		Status:    "up",
		Timestamp: time.Now().Unix(),
	})
}

// respondError maps the failure taxonomy to status codes. Anything outside the
// taxonomy is an opaque store fault.
func (h *ApiHandler) respondError(c *gin.Context, err error) {
	var notFound store.NotFoundErr
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
		return
	}
	var proofNotFound store.ProofNotFoundErr
	if errors.As(err, &proofNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": proofNotFound.Error()})
		return
	}
	var invalid store.InvalidIdentifierErr
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error()})
		return
	}

	logging.L.Err(err).Msg("store failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "store error"})
}
