package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
)

const (
	uriSettings            = "tourism://settings"
	uriStats               = "tourism://stats"
	uriDestinationTemplate = "tourism://destinations/{slug}"
	uriExperienceTemplate  = "tourism://experiences/{slug}"
)

// registerResources adds read-only JSON views of the public settings, the
// content counters and single destinations/experiences by slug.
func registerResources(s *server.MCPServer, store *app.ContentStore, logger *log.Logger) {
	s.AddResource(
		mcp.NewResource(uriSettings, "Site settings",
			mcp.WithResourceDescription("Public site settings (credentials stripped)."),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return jsonResource(req.Params.URI, store.Settings().Public())
		},
	)

	s.AddResource(
		mcp.NewResource(uriStats, "Content stats",
			mcp.WithResourceDescription("Collection counts, average destination rating and the site counters."),
			mcp.WithMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return jsonResource(req.Params.URI, store.Stats())
		},
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(uriDestinationTemplate, "Destination",
			mcp.WithTemplateDescription("A single destination by slug."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			slug := strings.TrimPrefix(req.Params.URI, "tourism://destinations/")
			logger.Printf("Resource template read: destinations/%s", slug)
			d, ok := store.DestinationBySlug(slug)
			if !ok {
				return nil, fmt.Errorf("destination %q not found", slug)
			}
			return jsonResource(req.Params.URI, d)
		},
	)

	s.AddResourceTemplate(
		mcp.NewResourceTemplate(uriExperienceTemplate, "Experience",
			mcp.WithTemplateDescription("A single experience by slug."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			slug := strings.TrimPrefix(req.Params.URI, "tourism://experiences/")
			logger.Printf("Resource template read: experiences/%s", slug)
			e, ok := store.ExperienceBySlug(slug)
			if !ok {
				return nil, fmt.Errorf("experience %q not found", slug)
			}
			return jsonResource(req.Params.URI, e)
		},
	)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", uri, err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: "application/json", Text: string(data)},
	}, nil
}
