package cms

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/search"
)

// Searcher runs full-text queries. *search.Index implements it.
type Searcher interface {
	Query(query, collection string, limit int) ([]search.Result, error)
}

// RegisterSearch adds the search_content tool backed by index.
func RegisterSearch(s *server.MCPServer, index Searcher, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("search_content",
			mcp.WithDescription("Full-text search across destinations, experiences, testimonials and gallery items. Results are ranked and carry the entry id for get_content."),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search terms; all terms must match")),
			mcp.WithString("collection", mcp.Description("Restrict to one collection (optional)"),
				mcp.Enum(collectionDestinations, collectionExperiences, collectionTestimonials, collectionGallery)),
			mcp.WithNumber("limit", mcp.Description("Maximum results (default: 10, max: 50)")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args := req.GetArguments()
			query, err := requireString(args, "query")
			if err != nil {
				return nil, err
			}
			collection := optionalString(args, "collection")
			switch collection {
			case "", collectionDestinations, collectionExperiences, collectionTestimonials, collectionGallery:
			default:
				return nil, fmt.Errorf("unknown collection %q", collection)
			}
			limit := 0
			if v, ok := args["limit"].(float64); ok {
				limit = int(v)
			}

			results, err := index.Query(query, collection, limit)
			if err != nil {
				logger.Printf("search_content %q: %v", query, err)
				return mcp.NewToolResultErrorFromErr("search failed", err), nil
			}
			return jsonResult(results)
		},
	)
}
