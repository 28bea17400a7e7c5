package main

import (
	"strings"

	"charm-approve-tui/approval"
	"charm-approve-tui/config"
	"charm-approve-tui/reconcile"
	"charm-approve-tui/rpc"
	"charm-approve-tui/store"
	"charm-approve-tui/styles"
	"charm-approve-tui/views/home"
	"charm-approve-tui/views/nft"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// -------------------- MODEL --------------------

// model represents the application state following The Elm Architecture.
// It is the only writer of the reconciler; everything async comes back as a
// message.
type model struct {
	w, h int

	cfg        config.Config
	configPath string

	store   *store.Store
	storeCh <-chan store.State

	// pending approval request
	request  *config.ApprovalRequest
	calldata []byte
	from     common.Address
	token    common.Address
	spender  common.Address
	gasLimit uint64

	rec     *reconcile.Reconciler
	details rpc.AssetDetails
	loading bool
	fee     rpc.Fee
	feeErr  string

	// chain access
	rpcURL        string
	client        rpc.Backend
	clientURL     string
	rpcConnected  bool
	rpcConnecting bool
	spin          spinner.Model

	// home menu
	homeForm *huh.Form

	// modal form, which one is open lives in the store
	modalForm *huh.Form

	// create NFT form
	nftForm nft.Model

	// approve buttons
	focused int

	// QR panel
	showQR    bool
	packaging bool
	qrURI     string
	qrCustom  bool
	qrErr     string

	// clipboard feedback
	copiedMsg string

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// -------------------- INIT --------------------

// newModel creates the model for the given start page. req may be nil.
func newModel(cfg config.Config, configPath string, req *config.ApprovalRequest, page config.Page) model {
	if req == nil && page == config.PageConfirmApprove {
		page = config.PageHome
	}

	st := store.New(store.State{
		UseNonceField:          cfg.UseNonceField,
		NativeCurrency:         cfg.Currency(),
		ExplorerURL:            cfg.ExplorerURL,
		Page:                   page,
		MostRecentOverviewPage: config.PageHome,
	})
	ch := st.Subscribe()

	// spinner
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	// Initialize log viewport
	vp := viewport.New(0, 20) // Will be resized in Update on first WindowSizeMsg
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	// Initialize log spinner
	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	m := model{
		cfg:         cfg,
		configPath:  configPath,
		store:       st,
		storeCh:     ch,
		rec:         reconcile.New(""),
		rpcURL:      cfg.ActiveRPC(),
		spin:        sp,
		nftForm:     nft.New(),
		focused:     0,
		logEnabled:  cfg.Logger,
		logViewport: vp,
		logBuffer:   &strings.Builder{},
		logSpinner:  logSpin,
	}

	if req != nil {
		m.setRequest(req)
	}
	m.homeForm = home.CreateForm(m.request != nil)

	return m
}

// setRequest decodes the parts of the request the screen needs up front
func (m *model) setRequest(req *config.ApprovalRequest) {
	m.request = req
	m.from = common.HexToAddress(req.TxParams.From)
	m.token = common.HexToAddress(req.TxParams.To)
	m.calldata, _ = hexutil.Decode(req.TxParams.Data)
	if appr, err := approval.DecodeApproval(m.calldata); err == nil {
		m.spender = appr.Spender
	}
	if gas, err := hexutil.DecodeUint64(req.TxParams.Gas); err == nil {
		m.gasLimit = gas
	}
	m.loading = true

	if subj, ok := m.cfg.Subjects[req.Origin]; ok {
		m.store.Dispatch(store.SetSubjectMetadata{
			Origin:  req.Origin,
			Subject: store.Subject{Name: subj.Name, IconURL: subj.IconURL},
		})
	}
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick, waitForStore(m.storeCh)}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}
	if store.Select(m.store, store.CurrentPage) == config.PageCreateNFT {
		cmds = append(cmds, m.nftForm.Init())
	}
	// connect if rpc is set
	if m.rpcURL != "" {
		m.rpcConnecting = true
		cmds = append(cmds, connectRPC(m.rpcURL))
	} else if m.request != nil {
		// no chain access: the details read fails fast with a readable error
		cmds = append(cmds, loadAssetDetails(nil, m.token, m.from, m.calldata))
	}
	return tea.Batch(cmds...)
}
