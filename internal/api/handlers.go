package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"invsim/internal/report"
	"invsim/internal/runner"
	"invsim/internal/scenario"
	"invsim/internal/visuals"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds scenario uploads. Even a 52-week scenario is a few kilobytes.
const maxBodyBytes = 1 << 20

// Handlers serves the simulation endpoints.
type Handlers struct {
	runner *runner.Runner
	charts bool
}

// NewHandlers creates the endpoint handlers. charts enables Mermaid charts in HTML reports.
func NewHandlers(r *runner.Runner, charts bool) *Handlers {
	return &Handlers{runner: r, charts: charts}
}

// RegisterRoutes mounts the handlers on a router group.
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/simulations", h.Simulate)
	rg.GET("/scenarios/reference", h.Reference)
	rg.POST("/ranges", h.Ranges)
	rg.POST("/sweeps", h.Sweep)
}

// Simulate runs the posted scenario. The format query parameter selects json (default),
// csv, html or text.
func (h *Handlers) Simulate(c *gin.Context) {
	format, err := report.ParseFormat(c.DefaultQuery("format", string(report.FormatJSON)))
	if err != nil {
		respondWithAppError(c, ErrBadRequest(err))
		return
	}

	sc, err := readScenario(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rep, err := h.runner.Run(c.Request.Context(), runner.SurfaceHTTP, sc)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if format == report.FormatJSON {
		c.JSON(http.StatusOK, rep)
		return
	}

	opts := report.Options{}
	if h.charts && format != report.FormatCSV {
		opts.Chart = visuals.Charts(rep.Result, sc.OrderPoint, sc.MaxInventory, rep.Scale())
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, rep, format, opts); err != nil {
		respondWithError(c, err)
		return
	}

	contentType := map[report.Format]string{
		report.FormatCSV:  "text/csv; charset=utf-8",
		report.FormatHTML: "text/html; charset=utf-8",
		report.FormatText: "text/plain; charset=utf-8",
	}[format]
	if format == report.FormatCSV {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="simulation_%s.csv"`, rep.RunID))
	}
	c.Header("X-Run-ID", rep.RunID)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// Reference returns the textbook scenario as a starting point for edits.
func (h *Handlers) Reference(c *gin.Context) {
	c.JSON(http.StatusOK, scenario.Reference())
}

// Ranges returns the digit assignment of the posted scenario's distributions.
func (h *Handlers) Ranges(c *gin.Context) {
	sc, err := readScenario(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if err := sc.Validate(h.runner.MaxWeeks()); err != nil {
		respondWithError(c, err)
		return
	}

	demand, leadTime, err := h.runner.Ranges(sc)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"demand":    demand,
		"lead_time": leadTime,
	})
}

// SweepRequest is the body of POST /sweeps. Without a scenario the reference case is swept.
type SweepRequest struct {
	Scenario    json.RawMessage `json:"scenario,omitempty"`
	OrderPoints []int           `json:"order_points" binding:"required,min=1,dive,gte=0"`
	MaxLevels   []int           `json:"max_levels" binding:"required,min=1,dive,gte=1"`
}

// Sweep ranks every order point / max level combination by total cost.
func (h *Handlers) Sweep(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithAppError(c, bindingError(err))
		return
	}

	sc := scenario.Reference()
	if len(req.Scenario) > 0 && string(req.Scenario) != "null" {
		decoded, err := scenario.Decode(req.Scenario, scenario.FormatJSON)
		if err != nil {
			respondWithAppError(c, ErrBadRequest(err))
			return
		}
		sc = decoded
	}

	sweep, err := h.runner.Sweep(c.Request.Context(), runner.SurfaceHTTP, sc, runner.SweepRequest{
		OrderPoints: req.OrderPoints,
		MaxLevels:   req.MaxLevels,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, sweep)
}

// readScenario decodes the request body as a JSON scenario document.
func readScenario(c *gin.Context) (scenario.Scenario, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return scenario.Scenario{}, ErrBadRequest(fmt.Errorf("failed to read request body: %w", err))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return scenario.Scenario{}, ErrBadRequest(errors.New("request body must be a scenario document"))
	}

	sc, err := scenario.Decode(body, scenario.FormatJSON)
	if err != nil {
		return scenario.Scenario{}, ErrBadRequest(err)
	}
	return sc, nil
}

// bindingError turns gin binding failures into a validation error keyed by JSON field.
func bindingError(err error) *AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrBadRequest(err)
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return &AppError{
		Code:       CodeValidationError,
		Message:    "request failed validation",
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}
