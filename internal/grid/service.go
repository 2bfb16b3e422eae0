package grid

import (
	"context"
	"fmt"

	"github.com/angelmondragon/bookstore-admin/pkg/db"
	"github.com/angelmondragon/bookstore-admin/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bookstore-admin/pkg/errors"
	"github.com/angelmondragon/bookstore-admin/pkg/logger"
	"github.com/angelmondragon/bookstore-admin/pkg/metrics"
	"github.com/google/uuid"
)

// Service serves the product grid of a signed-in session.
type Service interface {
	ReportViewport(ctx context.Context, accessID string, width int) (*Layout, error)
	View(ctx context.Context, accessID string, query ViewQuery) (*View, error)
	Select(ctx context.Context, accessID string, productID *uuid.UUID) (*Row, error)
	Selected(ctx context.Context, accessID string) (*Row, error)
}

// ProductSource is the inventory the grid reads from.
type ProductSource interface {
	ListAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Layout is the column set for one width.
type Layout struct {
	Width   int      `json:"width"`
	Tier    string   `json:"tier"`
	Columns []Column `json:"columns"`
}

// ViewQuery selects the width and ordering for a grid read. A nil Width falls
// back to the session's last reported width.
type ViewQuery struct {
	Width     *int
	Sort      ColumnKey
	Direction Direction
}

// View is a full grid read. Columns is omitted while LayoutPending is set.
type View struct {
	Width         *int     `json:"width,omitempty"`
	Tier          string   `json:"tier,omitempty"`
	Columns       []Column `json:"columns,omitempty"`
	Rows          []Row    `json:"rows"`
	LayoutPending bool     `json:"layout_pending"`
}

type service struct {
	products ProductSource
	state    StateStore
	metrics  *metrics.GridMetrics
	logg     *logger.Logger
}

func NewService(products ProductSource, state StateStore, gridMetrics *metrics.GridMetrics, logg *logger.Logger) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product source required")
	}
	if state == nil {
		return nil, fmt.Errorf("grid state store required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{products: products, state: state, metrics: gridMetrics, logg: logg}, nil
}

// ReportViewport records a width-change notification for the session.
func (s *service) ReportViewport(ctx context.Context, accessID string, width int) (*Layout, error) {
	if width < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "width must be zero or greater")
	}
	if err := s.state.SaveWidth(ctx, accessID, width); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store viewport width")
	}

	tier := Tier(width)
	s.metrics.ObserveLayout(tier)
	s.logg.Debug(s.logg.WithFields(ctx, map[string]any{"width": width, "tier": tier}), "grid viewport updated")

	return &Layout{Width: width, Tier: tier, Columns: Columns(width)}, nil
}

func (s *service) View(ctx context.Context, accessID string, query ViewQuery) (*View, error) {
	if query.Width != nil && *query.Width < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "width must be zero or greater")
	}

	items, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}

	table := NewTable(items)
	if query.Sort != "" {
		table.Sort(query.Sort, query.Direction)
	}

	if query.Width != nil {
		table.Resize(*query.Width)
	} else {
		width, ok, err := s.state.Width(ctx, accessID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load viewport width")
		}
		if ok {
			table.Resize(width)
		}
	}

	view := &View{Rows: table.Rows()}
	columns, ok := table.Columns()
	if !ok {
		view.LayoutPending = true
		s.metrics.ObserveDeferred()
		return view, nil
	}

	width, _ := table.Width()
	view.Width = &width
	view.Tier = Tier(width)
	view.Columns = columns
	s.metrics.ObserveLayout(view.Tier)
	return view, nil
}

// Select sets the session's selected row; a nil productID clears it.
func (s *service) Select(ctx context.Context, accessID string, productID *uuid.UUID) (*Row, error) {
	if productID == nil {
		if err := s.state.ClearSelection(ctx, accessID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear selection")
		}
		return nil, nil
	}

	product, err := s.loadProduct(ctx, *productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, pkgerrors.NotFound("product")
	}
	if err := s.state.SaveSelection(ctx, accessID, product.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store selection")
	}

	row := FormatRow(*product)
	return &row, nil
}

// Selected returns the session's selected row, or nil when nothing is selected.
// A selection pointing at a deleted product is dropped.
func (s *service) Selected(ctx context.Context, accessID string) (*Row, error) {
	id, ok, err := s.state.Selection(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load selection")
	}
	if !ok {
		return nil, nil
	}

	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		if err := s.state.ClearSelection(ctx, accessID); err != nil {
			s.logg.WarnErr(ctx, "failed to clear stale grid selection", err)
		}
		return nil, nil
	}

	row := FormatRow(*product)
	return &row, nil
}

// loadProduct returns nil without error when the product does not exist.
func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) || pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}
