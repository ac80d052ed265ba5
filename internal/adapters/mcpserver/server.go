// Package mcpserver exposes squad recommendations as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	service "github.com/okian/nsl/internal/app"
	"github.com/okian/nsl/internal/domain/model"
	"github.com/okian/nsl/internal/domain/scoring"
	"github.com/okian/nsl/internal/domain/squad"
	"github.com/okian/nsl/pkg/logger"
)

// ServerName is the implementation name reported to MCP clients.
const ServerName = "nsl-squad-builder"

var errMissingArgument = errors.New("missing argument")

// Backend is the slice of the service the tools call into.
type Backend interface {
	Positions() []service.PositionInfo
	FindPlayers(ctx context.Context, q service.PlayerQuery) ([]model.Player, error)
	Recommend(ctx context.Context, position, q1, q2 string) ([]scoring.Candidate, error)
	Squad(ctx context.Context, customerID string) (*squad.Squad, error)
	Authenticate(ctx context.Context, customerID, pin string) (model.Customer, error)
	AssignPosition(ctx context.Context, customerID, position, q1, q2 string) (*squad.Squad, []scoring.Candidate, error)
}

// ToolInfo describes a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RecommendArgs are the arguments of recommend_players.
type RecommendArgs struct {
	Position string `json:"position" jsonschema:"Goalkeeper, Defender, Midfielder or Forward"`
	Q1       string `json:"q1" jsonschema:"first quality from the position vocabulary"`
	Q2       string `json:"q2" jsonschema:"second quality from the position vocabulary"`
}

// SquadArgs are the arguments of get_squad.
type SquadArgs struct {
	CustomerID string `json:"customer_id" jsonschema:"customer id, e.g. customer1"`
}

// AssignArgs are the arguments of assign_position.
type AssignArgs struct {
	CustomerID string   `json:"customer_id" jsonschema:"customer id, e.g. customer1"`
	PIN        string   `json:"pin" jsonschema:"the customer's 4-digit pin"`
	Position   string   `json:"position" jsonschema:"Goalkeeper, Defender, Midfielder or Forward"`
	Qualities  []string `json:"qualities" jsonschema:"exactly two qualities from the position vocabulary"`
}

// LookupArgs are the arguments of lookup_player. Empty fields are ignored.
type LookupArgs struct {
	Name        string `json:"name,omitempty" jsonschema:"exact player name, case-insensitive"`
	Position    string `json:"position,omitempty" jsonschema:"player position"`
	Nationality string `json:"nationality,omitempty" jsonschema:"nationality, case-insensitive"`
}

type slotView struct {
	Position   string `json:"position"`
	PlayerName string `json:"player_name"`
	Qualities  string `json:"qualities"`
}

type squadView struct {
	CustomerID string     `json:"customer_id"`
	Size       int        `json:"size"`
	Slots      []slotView `json:"slots"`
}

type playerView struct {
	Name        string `json:"name"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Attributes  string `json:"attributes,omitempty"`
}

// Server holds the MCP server and its tool registry.
type Server struct {
	backend  Backend
	server   *mcp.Server
	registry []ToolInfo
	logger   logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithLogger sets the tool call logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer registers every tool against backend.
func NewServer(backend Backend, version string, opts ...Option) *Server {
	s := &Server{
		backend:  backend,
		registry: make([]ToolInfo, 0, 5),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.server = mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)

	addTool(s, &mcp.Tool{
		Name:        "list_positions",
		Description: "Positions with their squad quota and the qualities that can be asked for",
	}, s.listPositions)
	addTool(s, &mcp.Tool{
		Name:        "recommend_players",
		Description: "Rank players for a position against two qualities, capped at the position quota",
	}, s.recommendPlayers)
	addTool(s, &mcp.Tool{
		Name:        "get_squad",
		Description: "Current squad of a customer, including unsaved assignments",
	}, s.getSquad)
	addTool(s, &mcp.Tool{
		Name:        "assign_position",
		Description: "Fill a position of a customer's draft squad from a fresh ranking, replacing earlier picks",
	}, s.assignPosition)
	addTool(s, &mcp.Tool{
		Name:        "lookup_player",
		Description: "Find roster players by name, position or nationality",
	}, s.lookupPlayer)

	return s
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server { return s.server }

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	out := make([]ToolInfo, len(s.registry))
	copy(out, s.registry)
	return out
}

// HTTPHandler serves the tools over the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

// RunStdio serves the tools over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.registry = append(s.registry, ToolInfo{Name: tool.Name, Description: tool.Description})
	name := tool.Name
	mcp.AddTool(s.server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		res, out, err := handler(ctx, req, args)
		if res != nil && res.IsError {
			s.logger.Warn(ctx, "tool call failed", logger.String("tool", name))
		} else {
			s.logger.Debug(ctx, "tool call", logger.String("tool", name))
		}
		return res, out, err
	})
}

func (s *Server) listPositions(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
	return toolJSON(json.MarshalIndent(map[string]any{"positions": s.backend.Positions()}, "", "  "))
}

func (s *Server) recommendPlayers(ctx context.Context, _ *mcp.CallToolRequest, args RecommendArgs) (*mcp.CallToolResult, any, error) {
	if args.Position == "" || args.Q1 == "" || args.Q2 == "" {
		return toolError(fmt.Errorf("%w: position, q1 and q2 are required", errMissingArgument)), nil, nil
	}
	ranked, err := s.backend.Recommend(ctx, args.Position, args.Q1, args.Q2)
	if err != nil {
		return toolError(err), nil, nil
	}
	if ranked == nil {
		ranked = []scoring.Candidate{}
	}
	return toolJSON(json.MarshalIndent(map[string]any{
		"position":  args.Position,
		"qualities": model.Descriptor{First: args.Q1, Second: args.Q2}.String(),
		"ranked":    ranked,
	}, "", "  "))
}

func (s *Server) getSquad(ctx context.Context, _ *mcp.CallToolRequest, args SquadArgs) (*mcp.CallToolResult, any, error) {
	if args.CustomerID == "" {
		return toolError(fmt.Errorf("%w: customer_id is required", errMissingArgument)), nil, nil
	}
	sq, err := s.backend.Squad(ctx, args.CustomerID)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(json.MarshalIndent(toSquadView(sq), "", "  "))
}

func (s *Server) assignPosition(ctx context.Context, _ *mcp.CallToolRequest, args AssignArgs) (*mcp.CallToolResult, any, error) {
	if args.CustomerID == "" || args.PIN == "" || args.Position == "" {
		return toolError(fmt.Errorf("%w: customer_id, pin and position are required", errMissingArgument)), nil, nil
	}
	if len(args.Qualities) != 2 {
		return toolError(fmt.Errorf("%w: exactly two qualities are required, got %d", errMissingArgument, len(args.Qualities))), nil, nil
	}
	if _, err := s.backend.Authenticate(ctx, args.CustomerID, args.PIN); err != nil {
		return toolError(err), nil, nil
	}
	sq, ranked, err := s.backend.AssignPosition(ctx, args.CustomerID, args.Position, args.Qualities[0], args.Qualities[1])
	if err != nil {
		return toolError(err), nil, nil
	}
	if ranked == nil {
		ranked = []scoring.Candidate{}
	}
	return toolJSON(json.MarshalIndent(map[string]any{
		"squad":  toSquadView(sq),
		"ranked": ranked,
	}, "", "  "))
}

func (s *Server) lookupPlayer(ctx context.Context, _ *mcp.CallToolRequest, args LookupArgs) (*mcp.CallToolResult, any, error) {
	if args.Name == "" && args.Position == "" && args.Nationality == "" {
		return toolError(fmt.Errorf("%w: give a name, position or nationality", errMissingArgument)), nil, nil
	}
	players, err := s.backend.FindPlayers(ctx, service.PlayerQuery{
		Name:        args.Name,
		Position:    args.Position,
		Nationality: args.Nationality,
	})
	if err != nil {
		return toolError(err), nil, nil
	}
	views := make([]playerView, 0, len(players))
	for _, p := range players {
		views = append(views, playerView{
			Name:        p.Name,
			Team:        p.Team,
			Position:    p.Position,
			Nationality: p.Nationality,
			Attributes:  p.Attributes,
		})
	}
	return toolJSON(json.MarshalIndent(map[string]any{"players": views}, "", "  "))
}

func toSquadView(sq *squad.Squad) squadView {
	v := squadView{CustomerID: sq.CustomerID(), Size: sq.Len(), Slots: []slotView{}}
	for _, p := range model.Positions {
		for _, sl := range sq.ByPosition(p) {
			v.Slots = append(v.Slots, slotView{Position: p.String(), PlayerName: sl.PlayerName, Qualities: sl.Qualities})
		}
	}
	return v
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSONBytes(res), nil, nil
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(res)}},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)}},
	}
}
