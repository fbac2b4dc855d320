// Package mcp exposes the catalog view model as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/cardcol/cardcol/internal/catalog"
	"github.com/cardcol/cardcol/internal/logger"
	"github.com/cardcol/cardcol/internal/viewmodel"
)

// Server wraps the MCP server with catalog tools.
type Server struct {
	server *mcp.Server
	vm     *viewmodel.Catalog
	log    logger.Logger

	// filters on vm are shared state; list calls set and read them together
	listMu sync.Mutex
}

// NewServer creates a new MCP server over a view model.
func NewServer(vm *viewmodel.Catalog, version string, log logger.Logger) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "cardcol",
		Version: version,
	}, nil)

	s := &Server{
		server: mcpServer,
		vm:     vm,
		log:    log.WithComponent("mcp"),
	}
	s.registerTools()
	return s
}

// Run loads the catalog and serves MCP over stdio.
func (s *Server) Run(ctx context.Context) error {
	if err := s.vm.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cards_list",
		Description: "List cards in the collection with optional filters and sort",
	}, s.handleList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "card_adjust",
		Description: "Change the owned count of a card by a signed delta (default +1)",
	}, s.handleAdjust)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "series_list",
		Description: "List series with their card counts",
	}, s.handleSeries)
}

type ListInput struct {
	SeriesID   *int64   `json:"seriesId,omitempty" jsonschema:"Only cards of this series"`
	Search     string   `json:"search,omitempty" jsonschema:"Case-insensitive substring of the card name"`
	Ownership  string   `json:"ownership,omitempty" jsonschema:"all, collected or uncollected"`
	Rarities   []string `json:"rarities,omitempty" jsonschema:"Only cards with one of these rarities"`
	Sort       string   `json:"sort,omitempty" jsonschema:"Sort key: name, number, in_collection, rarity, card_type, collection_number or series"`
	Descending bool     `json:"descending,omitempty" jsonschema:"Sort descending"`
	Refresh    bool     `json:"refresh,omitempty" jsonschema:"Reload the catalog from the store first"`
}

type ListOutput struct {
	Cards   []ListEntry       `json:"cards"`
	Summary viewmodel.Summary `json:"summary"`
}

type ListEntry struct {
	Number       string `json:"number"`
	Name         string `json:"name"`
	Rarity       string `json:"rarity"`
	CardType     string `json:"cardType"`
	SeriesID     int64  `json:"seriesId"`
	InCollection int    `json:"inCollection"`
}

type AdjustInput struct {
	Number string `json:"number" jsonschema:"Card number, e.g. LOB-001"`
	Delta  *int   `json:"delta,omitempty" jsonschema:"Signed change to the owned count; omitted means +1"`
}

type AdjustOutput struct {
	Number       string `json:"number"`
	InCollection int    `json:"inCollection"`
}

type SeriesInput struct{}

type SeriesOutput struct {
	Series []catalog.Series `json:"series"`
}

func (s *Server) handleList(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	ownership, err := viewmodel.ParseOwnership(input.Ownership)
	if err != nil {
		return nil, ListOutput{}, err
	}
	key, err := viewmodel.ParseSortKey(input.Sort)
	if err != nil {
		return nil, ListOutput{}, err
	}

	s.listMu.Lock()
	defer s.listMu.Unlock()

	state := viewmodel.SortState{Key: key}
	if key != viewmodel.SortNone && input.Descending {
		state.Direction = viewmodel.Descending
	}
	// sorting reorders the cached cards, so dropping a sort reloads store order
	reload := input.Refresh || (!state.Active() && s.vm.Sort().Active())
	s.vm.SetSort(state)
	if reload {
		if err := s.vm.Refresh(ctx); err != nil {
			return nil, ListOutput{}, fmt.Errorf("failed to refresh catalog: %w", err)
		}
	}

	s.vm.SelectSeries(input.SeriesID)
	s.vm.SetSearch(input.Search)
	s.vm.SetOwnership(ownership)
	s.vm.SetRarities(input.Rarities)

	visible := s.vm.Visible()
	entries := make([]ListEntry, 0, len(visible))
	for _, card := range visible {
		entries = append(entries, ListEntry{
			Number:       card.Number,
			Name:         card.Name,
			Rarity:       card.Rarity.Name,
			CardType:     card.CardType.Display(),
			SeriesID:     card.SeriesID,
			InCollection: card.InCollection,
		})
	}

	return nil, ListOutput{
		Cards:   entries,
		Summary: s.vm.Summary(),
	}, nil
}

func (s *Server) handleAdjust(ctx context.Context, req *mcp.CallToolRequest, input AdjustInput) (*mcp.CallToolResult, AdjustOutput, error) {
	if input.Number == "" {
		return nil, AdjustOutput{}, fmt.Errorf("number is required")
	}

	number, _ := catalog.CanonicalNumber(input.Number)
	if err := s.vm.Adjust(ctx, number, input.Delta); err != nil {
		return nil, AdjustOutput{}, err
	}

	card, _ := s.vm.Card(number)
	return nil, AdjustOutput{
		Number:       card.Number,
		InCollection: card.InCollection,
	}, nil
}

func (s *Server) handleSeries(ctx context.Context, req *mcp.CallToolRequest, input SeriesInput) (*mcp.CallToolResult, SeriesOutput, error) {
	series := s.vm.Series()
	if series == nil {
		series = []catalog.Series{}
	}
	return nil, SeriesOutput{Series: series}, nil
}
