package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/prospect-fusion/app/requests"
	"github.com/prospect-fusion/app/responses"
	"github.com/prospect-fusion/app/services"
)

// ProspectController handles comparison, fusion and run endpoints.
type ProspectController struct {
	prospectService *services.ProspectService
	logger          *zap.Logger
}

// NewProspectController builds the controller.
func NewProspectController(prospectService *services.ProspectService, logger *zap.Logger) *ProspectController {
	return &ProspectController{
		prospectService: prospectService,
		logger:          logger,
	}
}

// CompareAddress compares one structured address against a free-text one.
func (pc *ProspectController) CompareAddress(c *gin.Context) {
	var req requests.CompareAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "requete invalide: " + err.Error(),
		})
		return
	}

	startTime := time.Now()

	result, cacheHit, err := pc.prospectService.CompareAddresses(c.Request.Context(), req.Address, req.FreeText)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "COMPARE_ERROR",
			Message: "erreur de comparaison: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.CompareAddressResponse{
		Result:           *result,
		CacheHit:         cacheHit,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// ParseAddress parses one free-text address into components.
func (pc *ProspectController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "requete invalide: " + err.Error(),
		})
		return
	}

	parsed := pc.prospectService.ParseAddress(req.Address)
	c.JSON(http.StatusOK, responses.ParseAddressResponse{
		Parsed: parsed,
		Ok:     parsed != nil,
	})
}

// Fuse merges the two pipelines without classification.
func (pc *ProspectController) Fuse(c *gin.Context) {
	var req requests.FuseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "requete invalide: " + err.Error(),
		})
		return
	}

	startTime := time.Now()
	fused := pc.prospectService.Fuse(req.Directory, req.Registry)

	c.JSON(http.StatusOK, responses.FuseResponse{
		Fused:            fused,
		Count:            len(fused),
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
	})
}

// Classify runs the zone filter over already-fused records.
func (pc *ProspectController) Classify(c *gin.Context) {
	var req requests.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "requete invalide: " + err.Error(),
		})
		return
	}

	inZone, outInteresting, outExcluded := pc.prospectService.Classify(
		req.Records, req.Zone.CenterLat, req.Zone.CenterLon, req.Zone.RadiusKm)

	c.JSON(http.StatusOK, responses.ClassifyResponse{
		InZone:             inZone,
		OutZoneInteresting: outInteresting,
		OutZoneExcluded:    outExcluded,
	})
}

// RunProspect executes a full prospecting run and returns it.
func (pc *ProspectController) RunProspect(c *gin.Context) {
	var req requests.RunProspectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:   "INVALID_REQUEST",
			Message: "requete invalide: " + err.Error(),
		})
		return
	}

	run, err := pc.prospectService.RunProspect(c.Request.Context(), req.Directory, req.Registry,
		req.Zone.CenterLat, req.Zone.CenterLon, req.Zone.RadiusKm)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, responses.ErrorResponse{
			Error:   "RUN_ERROR",
			Message: "erreur d'execution du run: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, run)
}

// GetRun returns one run by id.
func (pc *ProspectController) GetRun(c *gin.Context) {
	runID := c.Param("runID")

	run, err := pc.prospectService.GetRun(c.Request.Context(), runID)
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   "RUN_NOT_FOUND",
				Message: "run introuvable: " + runID,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "RUN_FETCH_ERROR",
			Message: "erreur de lecture du run: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRuns returns recent run summaries.
func (pc *ProspectController) ListRuns(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	runs, err := pc.prospectService.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:   "RUN_LIST_ERROR",
			Message: "erreur de listing des runs: " + err.Error(),
		})
		return
	}

	summaries := make([]responses.RunSummary, 0, len(runs))
	for i := range runs {
		summaries = append(summaries, responses.Summarize(&runs[i]))
	}

	c.JSON(http.StatusOK, responses.RunListResponse{
		Runs:  summaries,
		Total: len(summaries),
	})
}

// SearchRun free-text searches within one run's results.
func (pc *ProspectController) SearchRun(c *gin.Context) {
	runID := c.Param("runID")
	query := c.Query("q")
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)

	resp, err := pc.prospectService.SearchRun(c.Request.Context(), runID, query, limit)
	if err != nil {
		if errors.Is(err, services.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, responses.ErrorResponse{
				Error:   "RUN_NOT_FOUND",
				Message: "run introuvable: " + runID,
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, responses.ErrorResponse{
			Error:   "SEARCH_ERROR",
			Message: "erreur de recherche: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SearchRunResponse{
		RunID:            runID,
		Query:            query,
		Hits:             resp.Hits,
		EstimatedTotal:   resp.EstimatedTotalHits,
		ProcessingTimeMs: resp.ProcessingTimeMs,
	})
}

// HealthCheck is the liveness/readiness probe.
func (pc *ProspectController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthResponse{
		Status:  "ok",
		Service: "prospect-fusion",
		Version: "1.0.0",
		Uptime:  time.Since(pc.prospectService.GetStartTime()).Round(time.Second).String(),
	})
}
