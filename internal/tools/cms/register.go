// Package cms exposes the content store to MCP clients: session tools,
// read tools, per-collection create/update/delete tools and read-only
// resources.
package cms

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
)

// Register registers the content tools and resources with the mcp-go server.
// gate decides which callers may use the admin tools.
func Register(s *server.MCPServer, store *app.ContentStore, gate *Gate, logger *log.Logger) {
	// Session tools (3)
	registerLogin(s, store, gate, logger)
	registerLogout(s, store, gate, logger)
	registerSessionStatus(s, store, gate)

	// Read tools (3)
	registerListContent(s, store)
	registerGetContent(s, store)
	registerGetSettings(s, store, gate)

	// Collection tools (4 x 3)
	registerCollection(s, gate, logger, destinationTools(store))
	registerCollection(s, gate, logger, experienceTools(store))
	registerCollection(s, gate, logger, testimonialTools(store))
	registerCollection(s, gate, logger, galleryItemTools(store))

	// Settings tool (1)
	registerUpdateSettings(s, store, gate, logger)

	registerResources(s, store, logger)
}

// jsonResult renders v as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// storeError turns a store failure into a tool error result. A persistence
// failure still reports that the change was applied.
func storeError(err error) *mcp.CallToolResult {
	if errors.Is(err, app.ErrPersist) {
		return mcp.NewToolResultErrorFromErr("change applied in memory but not saved", err)
	}
	return mcp.NewToolResultError(err.Error())
}
