package container

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"

	"billed/internal/model"
	"billed/internal/nav"
	"billed/internal/session"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/rs/zerolog"
)

// Phase is the form completion state
type Phase int

const (
	PhaseEmpty Phase = iota
	PhasePartiallyFilled
	PhaseComplete
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// allowedExtensions is the attachment allow-list. Matching is by extension
// string only, not content-type sniffing; the looser check is deliberate and
// mirrors what the rest of the system expects.
var allowedExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// MsgInvalidFile is the validation message shown for a rejected attachment
const MsgInvalidFile = "Seuls les fichiers jpg, jpeg et png sont acceptés"

// MsgSubmitFailed is shown when the final submission is rejected
const MsgSubmitFailed = "L'envoi de la note de frais a échoué, veuillez réessayer"

// FileEvent carries the selected attachment from the file input
type FileEvent struct {
	FileName string
	Data     []byte
}

// FormEvent carries the form field values as entered
type FormEvent struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// NewBill renders the creation form, validates and uploads the attachment and
// submits the assembled bill.
type NewBill struct {
	store    store.Bills
	session  *session.Manager
	renderer *view.Renderer
	navigate func(ctx context.Context, path string)
	log      zerolog.Logger

	form     FormEvent
	fileRef  *store.FileRef
	fileName string
	message  string
	rejected bool
	phase    Phase
}

// NewNewBill creates a NewBill container
func NewNewBill(c Context) *NewBill {
	return &NewBill{
		store:    c.Store,
		session:  c.Session,
		renderer: c.Renderer,
		navigate: c.Navigate,
		log:      c.Log,
	}
}

// HandleChangeFile validates the selected file against the allow-list and
// uploads it. A rejected file resets the input and surfaces a validation
// message without uploading; an upload failure is caught and reported, never
// left dangling.
func (n *NewBill) HandleChangeFile(ctx context.Context, ev FileEvent) {
	ext := strings.ToLower(filepath.Ext(ev.FileName))
	if !allowedExtensions[ext] {
		n.fileRef = nil
		n.fileName = ""
		n.message = MsgInvalidFile
		n.rejected = true
		n.log.Warn().Str("file", ev.FileName).Msg("attachment rejected by extension allow-list")
		n.refreshPhase()
		return
	}

	email := ""
	if user, err := n.session.User(); err == nil {
		email = user.Email
	}

	ref, err := n.store.Create(ctx, store.Upload{
		FileName: ev.FileName,
		Data:     ev.Data,
		Email:    email,
	})
	if err != nil {
		n.fileRef = nil
		n.fileName = ""
		n.message = MsgSubmitFailed
		n.rejected = true
		n.log.Error().Err(err).Str("file", ev.FileName).Msg("attachment upload failed")
		n.refreshPhase()
		return
	}

	n.fileRef = ref
	n.fileName = filepath.Base(ev.FileName)
	n.message = ""
	n.rejected = false
	n.refreshPhase()
}

// SetFields records the field values as entered, keeping them across a failed
// submission
func (n *NewBill) SetFields(ev FormEvent) {
	n.form = ev
	n.refreshPhase()
}

// SetFile restores a previously uploaded attachment reference
func (n *NewBill) SetFile(ref *store.FileRef, fileName string) {
	n.fileRef = ref
	n.fileName = fileName
	n.rejected = false
	n.refreshPhase()
}

// HandleSubmit assembles a bill from the entered values, the uploaded file
// reference and the session email, persists it and navigates back to the
// listing. A rejected attachment blocks submission until a valid file is
// selected; on failure the user stays on the form with the values intact.
func (n *NewBill) HandleSubmit(ctx context.Context, ev FormEvent) {
	n.form = ev

	if n.rejected {
		n.phase = PhaseFailed
		n.log.Warn().Msg("submission blocked by rejected attachment")
		return
	}

	user, err := n.session.User()
	if err != nil {
		n.phase = PhaseFailed
		n.message = MsgSubmitFailed
		n.log.Error().Err(err).Msg("submission without session")
		return
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(ev.Amount), 64)
	if err != nil {
		n.log.Warn().Str("amount", ev.Amount).Msg("unparsable amount, submitting 0")
		amount = 0
	}
	pct := model.DefaultPct
	if p := strings.TrimSpace(ev.Pct); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			pct = v
		}
	}

	bill := model.Bill{
		Email:      user.Email,
		Type:       ev.Type,
		Name:       ev.Name,
		Amount:     amount,
		Date:       ev.Date,
		VAT:        ev.VAT,
		Pct:        pct,
		Commentary: ev.Commentary,
		Status:     model.StatusPending,
	}
	if n.fileRef != nil {
		bill.FileURL = &n.fileRef.FileURL
		bill.FileName = &n.fileName
	}

	n.phase = PhaseSubmitting
	if _, err := n.store.Update(ctx, bill); err != nil {
		n.phase = PhaseFailed
		n.message = MsgSubmitFailed
		n.log.Error().Err(err).Msg("bill submission failed")
		return
	}

	n.phase = PhaseSucceeded
	n.navigate(ctx, nav.PathBills)
}

// Render produces the form markup with the retained values
func (n *NewBill) Render(ctx context.Context) string {
	return n.renderer.NewBill(view.NewBillData{
		Types: model.ExpenseTypes,
		Form: view.FormValues{
			Type:       n.form.Type,
			Name:       n.form.Name,
			Date:       n.form.Date,
			Amount:     n.form.Amount,
			VAT:        n.form.VAT,
			Pct:        n.form.Pct,
			Commentary: n.form.Commentary,
		},
		File:     n.fileRef,
		FileName: n.fileName,
		Message:  n.message,
	})
}

// Phase exposes the form completion state
func (n *NewBill) Phase() Phase {
	return n.phase
}

// Message exposes the current validation or failure message
func (n *NewBill) Message() string {
	return n.message
}

// FileRef exposes the uploaded attachment reference, nil until a valid file
// was accepted
func (n *NewBill) FileRef() *store.FileRef {
	return n.fileRef
}

func (n *NewBill) refreshPhase() {
	switch {
	case n.form == (FormEvent{}) && n.fileRef == nil:
		n.phase = PhaseEmpty
	case n.form.Date != "" && n.form.Amount != "" && n.fileRef != nil:
		n.phase = PhaseComplete
	default:
		n.phase = PhasePartiallyFilled
	}
}
