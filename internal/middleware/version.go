package middleware

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"shoepos/internal/common"

	"github.com/labstack/echo/v4"
)

// APIVersion describes one published API version
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // active, deprecated, sunset
	SunsetDate *time.Time `json:"sunsetDate,omitempty"`
	Message    string     `json:"message,omitempty"`
}

type VersionMiddleware struct {
	supportedVersions map[string]APIVersion
	defaultVersion    string
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		supportedVersions: map[string]APIVersion{
			"v1": {
				Version: "v1",
				Status:  "active",
				Message: "Current stable POS API version",
			},
		},
		defaultVersion: "v1",
	}
}

// VersionHeader stamps responses with the version and its deprecation state
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			if ver, ok := vm.supportedVersions[version]; ok {
				if ver.Status == "deprecated" && ver.SunsetDate != nil {
					h.Set("X-API-Deprecated", "true")
					h.Set("X-API-Sunset", ver.SunsetDate.Format(time.RFC3339))
					h.Set("Warning", `299 shoepos "This API version is deprecated and will be removed on `+ver.SunsetDate.Format("2006-01-02")+`"`)
				}
				if ver.Message != "" {
					h.Set("X-API-Message", ver.Message)
				}
			}
			return next(c)
		}
	}
}

// VersionRoute creates the route group for version
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string) *echo.Group {
	group := e.Group("/" + version)
	group.Use(vm.VersionHeader(version))
	return group
}

// APIVersionResolver rejects unknown /vN prefixes and records the version
// in the echo context
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := extractVersionFromPath(c.Request().URL.Path)
			if version == "" {
				c.Set("api_version", vm.defaultVersion)
				return next(c)
			}

			ver, ok := vm.supportedVersions[version]
			if !ok || ver.Status == "sunset" {
				return c.JSON(http.StatusNotFound, common.CreateErrorResponse(
					"UNSUPPORTED_VERSION",
					"Unsupported API version",
					map[string]string{"supported_versions": strings.Join(vm.SupportedVersions(), ", ")},
				))
			}
			c.Set("api_version", version)
			return next(c)
		}
	}
}

// AddVersion registers or replaces a version
func (vm *VersionMiddleware) AddVersion(version, status, message string, sunsetDate *time.Time) {
	vm.supportedVersions[version] = APIVersion{
		Version:    version,
		Status:     status,
		SunsetDate: sunsetDate,
		Message:    message,
	}
}

// SupportedVersions lists active and deprecated versions in order
func (vm *VersionMiddleware) SupportedVersions() []string {
	versions := make([]string, 0, len(vm.supportedVersions))
	for version, info := range vm.supportedVersions {
		if info.Status == "active" || info.Status == "deprecated" {
			versions = append(versions, version)
		}
	}
	sort.Strings(versions)
	return versions
}

// extractVersionFromPath returns "vN" for paths like /v1/...
func extractVersionFromPath(path string) string {
	if !strings.HasPrefix(path, "/v") {
		return ""
	}
	rest := path[2:]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return ""
	}
	return "v" + strconv.Itoa(n)
}
