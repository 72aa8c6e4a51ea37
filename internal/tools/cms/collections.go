package cms

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jaakkos/tourism-cms/internal/app"
	"github.com/jaakkos/tourism-cms/internal/domain"
)

// collectionTools binds one collection's store operations. T is the entity
// type and P its patch type.
type collectionTools[T, P any] struct {
	kind     string // tool suffix, e.g. "gallery_item"
	label    string // human label, e.g. "gallery item"
	required string
	create   func(T) (T, error)
	update   func(string, P) (app.Outcome, error)
	byID     func(string) (T, bool)
	remove   func(string) (app.Outcome, error)
}

func destinationTools(store *app.ContentStore) collectionTools[domain.Destination, domain.DestinationPatch] {
	return collectionTools[domain.Destination, domain.DestinationPatch]{
		kind:     "destination",
		label:    "destination",
		required: "name, location, shortDescription, description",
		create:   store.CreateDestination,
		update:   store.UpdateDestination,
		byID:     store.DestinationByID,
		remove:   store.DeleteDestination,
	}
}

func experienceTools(store *app.ContentStore) collectionTools[domain.Experience, domain.ExperiencePatch] {
	return collectionTools[domain.Experience, domain.ExperiencePatch]{
		kind:     "experience",
		label:    "experience",
		required: "name",
		create:   store.CreateExperience,
		update:   store.UpdateExperience,
		byID:     store.ExperienceByID,
		remove:   store.DeleteExperience,
	}
}

func testimonialTools(store *app.ContentStore) collectionTools[domain.Testimonial, domain.TestimonialPatch] {
	return collectionTools[domain.Testimonial, domain.TestimonialPatch]{
		kind:     "testimonial",
		label:    "testimonial",
		required: "name, text",
		create:   store.CreateTestimonial,
		update:   store.UpdateTestimonial,
		byID:     store.TestimonialByID,
		remove:   store.DeleteTestimonial,
	}
}

func galleryItemTools(store *app.ContentStore) collectionTools[domain.GalleryItem, domain.GalleryItemPatch] {
	return collectionTools[domain.GalleryItem, domain.GalleryItemPatch]{
		kind:     "gallery_item",
		label:    "gallery item",
		required: "title",
		create:   store.CreateGalleryItem,
		update:   store.UpdateGalleryItem,
		byID:     store.GalleryItemByID,
		remove:   store.DeleteGalleryItem,
	}
}

// registerCollection registers create_<kind>, update_<kind> and delete_<kind>.
func registerCollection[T, P any](s *server.MCPServer, gate *Gate, logger *log.Logger, c collectionTools[T, P]) {
	s.AddTool(
		mcp.NewTool("create_"+c.kind,
			mcp.WithDescription(fmt.Sprintf("Create a %s. The id (and slug, createdAt where applicable) are assigned by the server. Requires login.", c.label)),
			mcp.WithObject("fields", mcp.Required(), mcp.Description(fmt.Sprintf("%s fields as JSON; required: %s", c.label, c.required))),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if denied := gate.require(ctx); denied != nil {
				return denied, nil
			}
			var entity T
			if err := decodeFields(req.GetArguments(), "fields", &entity); err != nil {
				return nil, err
			}
			created, err := c.create(entity)
			if err != nil {
				return storeError(err), nil
			}
			logger.Printf("MCP created %s", c.label)
			return jsonResult(created)
		},
	)

	s.AddTool(
		mcp.NewTool("update_"+c.kind,
			mcp.WithDescription(fmt.Sprintf("Merge fields into the %s with the given id. Only the keys present are changed. Requires login.", c.label)),
			mcp.WithString("id", mcp.Required(), mcp.Description(c.label+" id")),
			mcp.WithObject("fields", mcp.Required(), mcp.Description("Fields to change, as JSON")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if denied := gate.require(ctx); denied != nil {
				return denied, nil
			}
			args := req.GetArguments()
			id, err := requireString(args, "id")
			if err != nil {
				return nil, err
			}
			var patch P
			if err := decodeFields(args, "fields", &patch); err != nil {
				return nil, err
			}
			outcome, err := c.update(id, patch)
			if err != nil {
				return storeError(err), nil
			}
			if outcome != app.Applied {
				return mcp.NewToolResultError(fmt.Sprintf("%s %q not found", c.label, id)), nil
			}
			logger.Printf("MCP updated %s %s", c.label, id)
			updated, _ := c.byID(id)
			return jsonResult(updated)
		},
	)

	s.AddTool(
		mcp.NewTool("delete_"+c.kind,
			mcp.WithDescription(fmt.Sprintf("Delete the %s with the given id. Requires login.", c.label)),
			mcp.WithString("id", mcp.Required(), mcp.Description(c.label+" id")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if denied := gate.require(ctx); denied != nil {
				return denied, nil
			}
			id, err := requireString(req.GetArguments(), "id")
			if err != nil {
				return nil, err
			}
			outcome, err := c.remove(id)
			if err != nil {
				return storeError(err), nil
			}
			if outcome != app.Applied {
				return mcp.NewToolResultError(fmt.Sprintf("%s %q not found", c.label, id)), nil
			}
			logger.Printf("MCP deleted %s %s", c.label, id)
			return mcp.NewToolResultText(fmt.Sprintf("Deleted %s %s", c.label, id)), nil
		},
	)
}

func registerUpdateSettings(s *server.MCPServer, store *app.ContentStore, gate *Gate, logger *log.Logger) {
	s.AddTool(
		mcp.NewTool("update_settings",
			mcp.WithDescription("Merge fields into the site settings. Nested blocks (contact, social, hero, stats, adminCredentials) merge key by key. Requires login."),
			mcp.WithObject("fields", mcp.Required(), mcp.Description("Settings fields to change, as JSON")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			if denied := gate.require(ctx); denied != nil {
				return denied, nil
			}
			var patch domain.SettingsPatch
			if err := decodeFields(req.GetArguments(), "fields", &patch); err != nil {
				return nil, err
			}
			if err := store.UpdateSettings(patch); err != nil {
				return storeError(err), nil
			}
			logger.Println("MCP updated settings")
			return jsonResult(store.Settings())
		},
	)
}
