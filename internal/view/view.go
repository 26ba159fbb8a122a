package view

import (
	"embed"
	"fmt"
	"html/template"
	"strings"

	"billed/internal/model"
	"billed/internal/store"

	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer turns view state into markup. The data-testid attributes in the
// templates are a stable contract; renaming any of them breaks the boundary
// other layers rely on.
type Renderer struct {
	tpl *template.Template
	log zerolog.Logger
}

// NewRenderer parses the embedded templates
func NewRenderer(log zerolog.Logger) (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl, log: log}, nil
}

func (r *Renderer) render(name string, data any) string {
	var sb strings.Builder
	if err := r.tpl.ExecuteTemplate(&sb, name, data); err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("template execution failed")
		return `<div class="error-page"><div data-testid="error-message">Erreur</div></div>`
	}
	return sb.String()
}

// Modal is the attachment overlay state
type Modal struct {
	Open bool
	URL  string
}

// Display returns the CSS display value for the overlay
func (m Modal) Display() string {
	if m.Open {
		return "block"
	}
	return "none"
}

// BillsData drives the bill listing view
type BillsData struct {
	Active string
	Bills  []model.DisplayBill
	Modal  Modal
}

// FormValues are the new-bill form fields as entered, before any coercion
type FormValues struct {
	Type       string
	Name       string
	Date       string
	Amount     string
	VAT        string
	Pct        string
	Commentary string
}

// NewBillData drives the new-bill form view
type NewBillData struct {
	Active   string
	Types    []string
	Form     FormValues
	File     *store.FileRef
	FileName string
	Message  string
}

// DashboardData drives the admin dashboard view
type DashboardData struct {
	Active string
	Bills  []model.DisplayBill
}

type errorData struct {
	Message string
}

// Bills renders the bill listing
func (r *Renderer) Bills(d BillsData) string {
	if d.Active == "" {
		d.Active = "bills"
	}
	return r.render("bills.html", d)
}

// NewBill renders the new-bill form
func (r *Renderer) NewBill(d NewBillData) string {
	if d.Active == "" {
		d.Active = "newbill"
	}
	if d.Types == nil {
		d.Types = model.ExpenseTypes
	}
	return r.render("newbill.html", d)
}

// Login renders the login page
func (r *Renderer) Login() string {
	return r.render("login.html", struct{}{})
}

// Error renders the error view. The "Erreur" text is always visible; the
// optional message carries no status detail, that stays in the logs.
func (r *Renderer) Error(message string) string {
	return r.render("error.html", errorData{Message: message})
}

// Dashboard renders the admin dashboard
func (r *Renderer) Dashboard(d DashboardData) string {
	if d.Active == "" {
		d.Active = "dashboard"
	}
	return r.render("dashboard.html", d)
}
