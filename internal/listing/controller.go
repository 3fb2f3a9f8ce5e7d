// Package listing implements the screen workflow every entity shares: a
// paginated list with a client-side text filter, a selection-driven dialog,
// and create/update/delete operations that refetch the page and surface a
// transient status message.
package listing

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/munivisitas/gateway/internal/domain"
	apperrors "github.com/munivisitas/gateway/pkg/util"
)

// ErrMutationInFlight is returned when a second mutation is attempted while
// one is still running; duplicate submissions are rejected locally.
var ErrMutationInFlight = errors.New("mutation already in flight")

// Page is one loaded page of records plus the backend's total count.
type Page[E any] struct {
	Items []E
	Total int
}

// Messages configures the status bodies per entity. Conflict is optional;
// when set, a backend conflict on create yields an informational message
// instead of the generic error.
type Messages struct {
	Created  string
	Updated  string
	Deleted  string
	Failed   string
	Conflict string
}

// Config binds a controller to one entity's endpoints and display rules.
type Config[E, P any] struct {
	PageSizes  []int
	Load       func(ctx context.Context, page, pageSize int) (Page[E], error)
	Create     func(ctx context.Context, payload P) error
	Update     func(ctx context.Context, id string, payload P) error
	Delete     func(ctx context.Context, id string) error
	ID         func(E) string
	SearchText func(E) []string
	// FormFrom renders the selected record as its flat dialog form,
	// resolving nested references into foreign-key fields.
	FormFrom func(E) any
	Messages Messages
	Logger   *zap.Logger
}

// Controller is the per-screen state machine. The loaded page is the only
// cached data; every mutation is followed by a refetch rather than a local
// edit, so the backend stays the source of truth.
type Controller[E, P any] struct {
	cfg Config[E, P]

	mu         sync.Mutex
	page       int
	pageSize   int
	total      int
	items      []E
	searchText string
	selected   *E
	dialogOpen bool
	status     *domain.StatusMessage
	loadSeq    uint64
	loading    bool
	mutating   bool
}

// New builds a controller on the first allowed page size.
func New[E, P any](cfg Config[E, P]) *Controller[E, P] {
	if len(cfg.PageSizes) == 0 {
		cfg.PageSizes = []int{10, 50, 100}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Controller[E, P]{cfg: cfg, page: 1, pageSize: cfg.PageSizes[0]}
}

// Load fetches the current page. A response that arrives after a newer load
// was issued is discarded so the screen never reverts to older data. On
// failure the previous items stay put and an error status with a retry hint
// is recorded.
func (c *Controller[E, P]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	page, size := c.page, c.pageSize
	c.loading = true
	c.mu.Unlock()

	result, err := c.cfg.Load(ctx, page, size)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.loadSeq {
		// A newer request owns the screen now.
		return nil
	}
	c.loading = false
	if err != nil {
		c.cfg.Logger.Warn("list load failed", zap.Int("page", page), zap.Error(err))
		status := domain.ErrorStatus("No se pudieron cargar los registros. Intenta nuevamente.")
		c.status = &status
		return err
	}
	c.items = result.Items
	c.total = result.Total
	return nil
}

// SetSearchText updates the filter and resets to the first page. It never
// issues a request; filtering applies to the already-loaded page only.
func (c *Controller[E, P]) SetSearchText(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchText = s
	c.page = 1
}

// SetPageSize switches to an allowed page size and resets to page 1.
// Unknown sizes are ignored.
func (c *Controller[E, P]) SetPageSize(size int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, allowed := range c.cfg.PageSizes {
		if allowed == size {
			c.pageSize = size
			c.page = 1
			return true
		}
	}
	return false
}

// SetPage clamps into [1, totalPages].
func (c *Controller[E, P]) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampPage(page)
}

// NextPage advances one page; a no-op at the last page.
func (c *Controller[E, P]) NextPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampPage(c.page + 1)
}

// PrevPage goes back one page; a no-op at the first page.
func (c *Controller[E, P]) PrevPage() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = c.clampPage(c.page - 1)
}

func (c *Controller[E, P]) clampPage(page int) int {
	max := c.totalPagesLocked()
	if max < 1 {
		max = 1
	}
	if page < 1 {
		return 1
	}
	if page > max {
		return max
	}
	return page
}

func (c *Controller[E, P]) totalPagesLocked() int {
	if c.pageSize <= 0 {
		return 0
	}
	return (c.total + c.pageSize - 1) / c.pageSize
}

// Create submits a new record, then refetches and records the outcome.
func (c *Controller[E, P]) Create(ctx context.Context, payload P) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.cfg.Create(ctx, payload)
	}, c.cfg.Messages.Created, true)
}

// Update submits changes for an existing record.
func (c *Controller[E, P]) Update(ctx context.Context, id string, payload P) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.cfg.Update(ctx, id, payload)
	}, c.cfg.Messages.Updated, false)
}

// Delete removes a record.
func (c *Controller[E, P]) Delete(ctx context.Context, id string) error {
	return c.mutate(ctx, func(ctx context.Context) error {
		return c.cfg.Delete(ctx, id)
	}, c.cfg.Messages.Deleted, false)
}

// mutate runs one backend mutation with the duplicate-submission guard.
// Backend failures never propagate; they become a status message.
func (c *Controller[E, P]) mutate(ctx context.Context, op func(context.Context) error, successBody string, isCreate bool) error {
	c.mu.Lock()
	if c.mutating {
		c.mu.Unlock()
		return ErrMutationInFlight
	}
	c.mutating = true
	c.mu.Unlock()

	err := op(ctx)

	c.mu.Lock()
	c.mutating = false
	if err != nil {
		c.cfg.Logger.Warn("mutation failed", zap.Error(err))
		var status domain.StatusMessage
		if isCreate && c.cfg.Messages.Conflict != "" && apperrors.IsConflict(err) {
			status = domain.InfoStatus(c.cfg.Messages.Conflict)
		} else {
			status = domain.ErrorStatus(c.cfg.Messages.Failed)
		}
		c.status = &status
		c.mu.Unlock()
		return nil
	}
	status := domain.SuccessStatus(successBody)
	c.status = &status
	c.mu.Unlock()

	if err := c.Load(ctx); err != nil {
		// The write landed; the refetch failure must not repaint the
		// outcome as an error.
		c.mu.Lock()
		c.status = &status
		c.mu.Unlock()
		return err
	}
	return nil
}

// OpenCreate opens the dialog with no selection.
func (c *Controller[E, P]) OpenCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.dialogOpen = true
}

// OpenEdit opens the dialog pre-populated from the record.
func (c *Controller[E, P]) OpenEdit(record E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &record
	c.dialogOpen = true
}

// CloseDialog clears the selection and closes the dialog.
func (c *Controller[E, P]) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
	c.dialogOpen = false
}

// SubmitDialog routes to update when a record is selected, create otherwise.
// The dialog closes and the selection clears whatever the outcome.
func (c *Controller[E, P]) SubmitDialog(ctx context.Context, payload P) error {
	c.mu.Lock()
	selected := c.selected
	c.mu.Unlock()

	var err error
	if selected != nil {
		err = c.Update(ctx, c.cfg.ID(*selected), payload)
	} else {
		err = c.Create(ctx, payload)
	}

	c.CloseDialog()
	return err
}

// Selected returns the record pending edit, if any.
func (c *Controller[E, P]) Selected() (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero E
		return zero, false
	}
	return *c.selected, true
}

// Find returns the loaded record with the given ID.
func (c *Controller[E, P]) Find(id string) (E, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if c.cfg.ID(item) == id {
			return item, true
		}
	}
	var zero E
	return zero, false
}

// Filtered returns the loaded page narrowed by the search text:
// a case-insensitive substring match over the configured fields.
func (c *Controller[E, P]) Filtered() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.searchText == "" {
		return append([]E(nil), c.items...)
	}
	needle := strings.ToLower(c.searchText)
	var out []E
	for _, item := range c.items {
		for _, field := range c.cfg.SearchText(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Snapshot is the serializable view of the screen state.
type Snapshot[E any] struct {
	Items      []E                   `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalCount int                   `json:"totalCount"`
	TotalPages int                   `json:"totalPages"`
	HasPrev    bool                  `json:"hasPrev"`
	HasNext    bool                  `json:"hasNext"`
	SearchText string                `json:"searchText"`
	DialogOpen bool                  `json:"dialogOpen"`
	Selected   *E                    `json:"selected,omitempty"`
	Form       any                   `json:"form,omitempty"`
	Status     *domain.StatusMessage `json:"status,omitempty"`
	Loading    bool                  `json:"loading"`
}

// Snapshot renders the current state for the UI.
func (c *Controller[E, P]) Snapshot() Snapshot[E] {
	filtered := c.Filtered()

	c.mu.Lock()
	defer c.mu.Unlock()
	totalPages := c.totalPagesLocked()
	var form any
	if c.selected != nil && c.cfg.FormFrom != nil {
		form = c.cfg.FormFrom(*c.selected)
	}
	return Snapshot[E]{
		Items:      filtered,
		Page:       c.page,
		PageSize:   c.pageSize,
		TotalCount: c.total,
		TotalPages: totalPages,
		HasPrev:    c.page > 1,
		HasNext:    c.page < totalPages,
		SearchText: c.searchText,
		DialogOpen: c.dialogOpen,
		Selected:   c.selected,
		Form:       form,
		Status:     c.status,
		Loading:    c.loading,
	}
}
