package cms

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
)

const (
	collectionDestinations = "destinations"
	collectionExperiences  = "experiences"
	collectionTestimonials = "testimonials"
	collectionGallery      = "gallery"
)

func registerListContent(s *server.MCPServer, store *app.ContentStore) {
	s.AddTool(
		mcp.NewTool("list_content",
			mcp.WithDescription("List a content collection. destinations, experiences and gallery accept an optional search query and category filter."),
			mcp.WithString("collection", mcp.Required(), mcp.Description("Collection to list"),
				mcp.Enum(collectionDestinations, collectionExperiences, collectionTestimonials, collectionGallery)),
			mcp.WithString("query", mcp.Description("Case-insensitive search text (optional)")),
			mcp.WithString("category", mcp.Description("Category filter; empty or 'All' matches everything (optional)")),
			mcp.WithBoolean("featured_only", mcp.Description("Only featured entries (default: false)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			collection, err := requireString(args, "collection")
			if err != nil {
				return nil, err
			}
			query := optionalString(args, "query")
			category := optionalString(args, "category")
			featured, _ := args["featured_only"].(bool)

			switch collection {
			case collectionDestinations:
				if featured {
					return jsonResult(store.FeaturedDestinations(0))
				}
				return jsonResult(store.SearchDestinations(query, category))
			case collectionExperiences:
				if featured {
					return jsonResult(store.FeaturedExperiences(0))
				}
				return jsonResult(store.SearchExperiences(query, category))
			case collectionTestimonials:
				if featured {
					return jsonResult(store.FeaturedTestimonials())
				}
				return jsonResult(store.Testimonials())
			case collectionGallery:
				return jsonResult(store.FilterGallery(query, category))
			default:
				return nil, fmt.Errorf("unknown collection %q", collection)
			}
		},
	)
}

func registerGetContent(s *server.MCPServer, store *app.ContentStore) {
	s.AddTool(
		mcp.NewTool("get_content",
			mcp.WithDescription("Fetch one entry by id, or a destination/experience by slug."),
			mcp.WithString("collection", mcp.Required(), mcp.Description("Collection to read"),
				mcp.Enum(collectionDestinations, collectionExperiences, collectionTestimonials, collectionGallery)),
			mcp.WithString("id", mcp.Description("Entry id")),
			mcp.WithString("slug", mcp.Description("Entry slug (destinations and experiences only)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			collection, err := requireString(args, "collection")
			if err != nil {
				return nil, err
			}
			id := optionalString(args, "id")
			slug := optionalString(args, "slug")
			if id == "" && slug == "" {
				return nil, fmt.Errorf("id or slug is required")
			}

			var (
				entry any
				found bool
			)
			switch collection {
			case collectionDestinations:
				if id != "" {
					entry, found = store.DestinationByID(id)
				} else {
					entry, found = store.DestinationBySlug(slug)
				}
			case collectionExperiences:
				if id != "" {
					entry, found = store.ExperienceByID(id)
				} else {
					entry, found = store.ExperienceBySlug(slug)
				}
			case collectionTestimonials:
				entry, found = store.TestimonialByID(id)
			case collectionGallery:
				entry, found = store.GalleryItemByID(id)
			default:
				return nil, fmt.Errorf("unknown collection %q", collection)
			}
			if !found {
				return mcp.NewToolResultError(fmt.Sprintf("no %s entry matches", collection)), nil
			}
			return jsonResult(entry)
		},
	)
}

func registerGetSettings(s *server.MCPServer, store *app.ContentStore, gate *Gate) {
	s.AddTool(
		mcp.NewTool("get_settings",
			mcp.WithDescription("Show the site settings. Admin credentials are included only for the logged-in admin."),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			settings := store.Settings()
			if _, ok := gate.admin(ctx); !ok {
				settings = settings.Public()
			}
			return jsonResult(settings)
		},
	)
}
