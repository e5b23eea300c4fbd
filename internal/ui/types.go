package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"unifiedlist/internal/api"
	"unifiedlist/internal/auth"
	"unifiedlist/internal/config"
)

// --- Model / State ---
type state int

const (
	stateList state = iota
	stateSearch
	stateCreate
	stateDetail
	stateConfirmDelete
	stateAlert
	stateLogin
	stateQuit
)

// Backend is the REST resource the list is bound to. *api.Client implements it.
type Backend interface {
	List(ctx context.Context, page int, search string) (api.ListResponse, error)
	Get(ctx context.Context, id string) (api.Record, error)
	Create(ctx context.Context, rec api.Record) (api.MutationResult, error)
	Update(ctx context.Context, id string, rec api.Record) (api.MutationResult, error)
	Delete(ctx context.Context, ids []int64) (api.MutationResult, error)
	Export(ctx context.Context, search, defaultName string) (*api.Download, error)
}

// CountListener is notified with totalElements after every successful list load.
type CountListener func(total int64)

// Options carries the optional collaborators of a Model.
type Options struct {
	// Metrics feeds the request counters shown in the footer.
	Metrics *api.Metrics
	// OnCount listeners receive the count-updated notification.
	OnCount []CountListener
	// Clipboard replaces the system clipboard, mostly for tests.
	Clipboard func(string) error
}

// pageState is the list position and the rows currently on screen.
type pageState struct {
	current int
	total   int64
	records []api.Record
	rows    []tableRow
	pager   []pageButton
	cursor  int
}

// formState backs the create and detail views. Fields are title and owner;
// the detail view additionally shows the read-only id and registration date.
type formState struct {
	inputs  []textinput.Model
	focus   int
	id      string
	regDate string
}

const (
	fieldTitle = iota
	fieldOwner
)

// alertState is a blocking notice. Dismissing it moves to next.
type alertState struct {
	msg   string
	isErr bool
	next  state
}

type Model struct {
	state         state
	cfg           config.Config
	api           Backend
	store         auth.Store
	metrics       *api.Metrics
	width, height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	loading bool

	// listGen is the generation of the newest list load; older answers are dropped.
	listGen uint64
	// session counts expiries; detail, mutation and export answers issued
	// under an earlier session are dropped.
	session uint64
	page    pageState
	sel     selectionSet

	searchInput textinput.Model
	create      formState
	detail      formState

	pendingDelete []int64
	alert         alertState

	loginInput textinput.Model
	claims     auth.Claims
	hasClaims  bool

	listeners []CountListener
	clipboard func(string) error
	statusMsg string
}
