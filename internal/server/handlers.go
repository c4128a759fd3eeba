package server

import (
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/toyz/valuegen/internal/builder"
	"github.com/toyz/valuegen/internal/errors"
	"github.com/toyz/valuegen/internal/generator"
	"github.com/toyz/valuegen/internal/models"
	"github.com/toyz/valuegen/internal/parser"
	"github.com/toyz/valuegen/internal/utils"
	"github.com/toyz/valuegen/pkg/objc"
)

// requestSource labels errors in descriptors posted to the server
const requestSource = "request"

// BuilderResponse holds the files generated for one value type
type BuilderResponse struct {
	ValueType string      `json:"valueType" yaml:"valueType"`
	Skipped   bool        `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Files     []objc.File `json:"files" yaml:"files"`
}

// BatchResponse holds one BuilderResponse per posted value type, in order
type BatchResponse struct {
	RequestID string            `json:"requestId" yaml:"requestId"`
	Builders  []BuilderResponse `json:"builders" yaml:"builders"`
}

// PluginInfo describes a registered plugin
type PluginInfo struct {
	Name             string   `json:"name" yaml:"name"`
	RequiredIncludes []string `json:"requiredIncludes" yaml:"requiredIncludes"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePlugins(c echo.Context) error {
	plugins := []PluginInfo{}
	for _, plugin := range s.generator.Plugins() {
		plugins = append(plugins, PluginInfo{
			Name:             plugin.Name(),
			RequiredIncludes: plugin.RequiredIncludesToRun(),
		})
	}
	return s.respond(c, http.StatusOK, plugins)
}

// handleBuilder generates the builder for exactly one posted value type
func (s *Server) handleBuilder(c echo.Context) error {
	valueTypes, err := s.decodeRequest(c)
	if err != nil {
		return err
	}
	if len(valueTypes) != 1 {
		return ErrBadRequest("expected one value type, use /v1/builders/batch for several")
	}

	vt := valueTypes[0]
	plugin, err := s.generator.Plugin(builder.PluginName)
	if err != nil {
		return err
	}
	if !generator.ShouldRun(plugin, vt) {
		return ErrUnprocessableEntityWithDetails(
			"value type does not request a builder",
			[]ErrorDetail{{
				Code:        errors.ValidationErrorCode.String(),
				Message:     vt.TypeName + " does not include " + models.IncludeBuilder,
				Suggestions: []string{"Add " + models.IncludeBuilder + " to includes or set options.builder"},
			}},
		)
	}

	files, err := s.generator.GenerateFiles(vt)
	if err != nil {
		return err
	}
	s.diagnostics.Verbose("Generated builder for %s", vt.TypeName)

	return s.respond(c, http.StatusOK, BuilderResponse{ValueType: vt.TypeName, Files: files})
}

// handleBatch generates builders for every posted value type concurrently;
// value types without the builder include come back skipped
func (s *Server) handleBatch(c echo.Context) error {
	valueTypes, err := s.decodeRequest(c)
	if err != nil {
		return err
	}
	if s.config.MaxBatchSize > 0 && len(valueTypes) > s.config.MaxBatchSize {
		return ErrRequestEntityTooLarge("too many value types in one batch")
	}

	plugin, err := s.generator.Plugin(builder.PluginName)
	if err != nil {
		return err
	}

	builders := make([]BuilderResponse, len(valueTypes))
	var (
		positions []int
		runnable  []models.ValueType
	)
	for i, vt := range valueTypes {
		if !generator.ShouldRun(plugin, vt) {
			builders[i] = BuilderResponse{ValueType: vt.TypeName, Skipped: true, Files: []objc.File{}}
			continue
		}
		positions = append(positions, i)
		runnable = append(runnable, vt)
	}

	results, err := s.generator.GenerateAll(c.Request().Context(), runnable)
	if err != nil {
		return err
	}
	for i, result := range results {
		builders[positions[i]] = BuilderResponse{ValueType: result.ValueType.TypeName, Files: result.Files}
	}
	s.diagnostics.Verbose("Generated %d builders, skipped %d", len(results), len(valueTypes)-len(results))

	return s.respond(c, http.StatusOK, BatchResponse{
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
		Builders:  builders,
	})
}

// decodeRequest reads descriptors from the body. YAML content types decode
// as YAML; everything else is JSON.
func (s *Server) decodeRequest(c echo.Context) ([]models.ValueType, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, ErrBadRequest("failed to read request body")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrBadRequest("request body is empty")
	}

	format := parser.FormatJSON
	if strings.Contains(c.Request().Header.Get(echo.HeaderContentType), "yaml") {
		format = parser.FormatYAML
	}
	return s.loader.Decode(body, format, requestSource)
}

// respond encodes v in the format named by the format query parameter
func (s *Server) respond(c echo.Context, status int, v any) error {
	format := c.QueryParam("format")
	if format == "" {
		format = utils.FormatJSON
	}
	if err := utils.ValidateOutputFormat("format")(format); err != nil {
		return ErrBadRequest(err.Error())
	}

	data, err := utils.Encode(format, v)
	if err != nil {
		return ErrInternalServerError(err.Error())
	}

	contentType := echo.MIMEApplicationJSON
	if format == utils.FormatYAML {
		contentType = "application/yaml"
	}
	return c.Blob(status, contentType, data)
}
