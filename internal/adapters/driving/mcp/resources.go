package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for ServiLink resources.
	uriScheme = "servilink://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "session",
		Name:        "session",
		Description: "The user the CLI is logged in as",
		MIMEType:    "application/json",
	}, s.handleSessionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Service categories usable as search filters",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "services/{serviceId}",
		Name:        "service",
		Description: "A single service with its reviews",
		MIMEType:    "application/json",
	}, s.handleServiceResource)
}

// handleSessionResource describes the logged-in user, or a guest.
func (s *Server) handleSessionResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type sessionInfo struct {
		Authenticated bool   `json:"authenticated"`
		ID            int64  `json:"id,omitempty"`
		Name          string `json:"name,omitempty"`
		Email         string `json:"email,omitempty"`
		Role          string `json:"role,omitempty"`
	}

	info := sessionInfo{}
	if s.ports.Session != nil {
		if u := s.ports.Session.Current().User(); u != nil {
			info = sessionInfo{
				Authenticated: true,
				ID:            u.ID,
				Name:          u.Name,
				Email:         u.Email,
				Role:          u.Role.String(),
			}
		}
	}
	return jsonResult(req.Params.URI, info)
}

// handleCategoriesResource lists the service categories.
func (s *Server) handleCategoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	skills, err := s.ports.Search.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}

	type categoryInfo struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	infos := make([]categoryInfo, len(skills))
	for i, sk := range skills {
		infos[i] = categoryInfo{ID: sk.ID, Name: sk.Name, Description: sk.Description}
	}
	return jsonResult(req.Params.URI, infos)
}

// handleServiceResource returns one service and its reviews.
func (s *Server) handleServiceResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractServiceID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	_, detail, err := s.handleGetService(ctx, nil, ServiceInput{ServiceID: id})
	if err != nil {
		return nil, fmt.Errorf("getting service %d: %w", id, err)
	}
	return jsonResult(req.Params.URI, detail)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractServiceID extracts the service ID from a URI like servilink://services/{serviceId}.
func extractServiceID(uri string) (int64, bool) {
	const prefix = uriScheme + "services/"

	rest, found := strings.CutPrefix(uri, prefix)
	if !found || rest == "" {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
