package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"billed/internal/container"
	"billed/internal/middleware"
	"billed/internal/nav"
	"billed/internal/store"
	"billed/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// BillHandler serves the bill views and their form actions
type BillHandler struct {
	bills      store.Scoper
	uploadsDir string
	renderer   *view.Renderer
	log        zerolog.Logger
}

// NewBillHandler creates a BillHandler
func NewBillHandler(bills store.Scoper, uploadsDir string, renderer *view.Renderer, log zerolog.Logger) *BillHandler {
	return &BillHandler{bills: bills, uploadsDir: uploadsDir, renderer: renderer, log: log}
}

// page returns a handler that drives a fresh client to the given route and
// returns its rendered body
func (h *BillHandler) page(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		cl := newClient(middleware.StorageFrom(c), h.bills, h.renderer, h.log)
		cl.nav.Navigate(c.Request.Context(), path)
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cl.nav.Body()))
	}
}

// UploadFile runs the attachment through the new-bill container's file
// validation and upload, returning the file reference on acceptance
func (h *BillHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	cl := newClient(middleware.StorageFrom(c), h.bills, h.renderer, h.log)
	cl.newBill.HandleChangeFile(c.Request.Context(), container.FileEvent{
		FileName: fileHeader.Filename,
		Data:     data,
	})

	ref := cl.newBill.FileRef()
	if ref == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": cl.newBill.Message()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"fileUrl":  ref.FileURL,
		"key":      ref.Key,
		"fileName": fileHeader.Filename,
	})
}

// SubmitBill assembles the form into a bill via the new-bill container. On
// success the client navigates to the listing, which maps to a redirect; on
// failure the form is re-rendered with the entered values intact.
func (h *BillHandler) SubmitBill(c *gin.Context) {
	cl := newClient(middleware.StorageFrom(c), h.bills, h.renderer, h.log)

	// Attachment either rides along in this request or was uploaded earlier
	// and comes back through the hidden fields
	if fileHeader, err := c.FormFile("file"); err == nil {
		if src, err := fileHeader.Open(); err == nil {
			data, err := io.ReadAll(src)
			src.Close()
			if err == nil {
				cl.newBill.HandleChangeFile(c.Request.Context(), container.FileEvent{
					FileName: fileHeader.Filename,
					Data:     data,
				})
			}
		}
	} else if fileURL := c.PostForm("fileUrl"); fileURL != "" {
		cl.newBill.SetFile(&store.FileRef{Key: c.PostForm("fileKey"), FileURL: fileURL}, c.PostForm("fileName"))
	}

	cl.newBill.HandleSubmit(c.Request.Context(), container.FormEvent{
		Type:       c.PostForm("type"),
		Name:       c.PostForm("name"),
		Date:       c.PostForm("date"),
		Amount:     c.PostForm("amount"),
		VAT:        c.PostForm("vat"),
		Pct:        c.PostForm("pct"),
		Commentary: c.PostForm("commentary"),
	})

	if cl.newBill.Phase() == container.PhaseSucceeded {
		c.Redirect(http.StatusSeeOther, "/employee/bills")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cl.newBill.Render(c.Request.Context())))
}

// GetFile serves a stored attachment
func (h *BillHandler) GetFile(c *gin.Context) {
	path := filepath.Join(h.uploadsDir, filepath.Base(c.Param("key")), filepath.Base(c.Param("name")))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}
	c.File(path)
}

// RegisterRoutes registers the bill pages and actions
func (h *BillHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.page(nav.PathLogin))
	r.GET("/employee/bills", h.page(nav.PathBills))
	r.GET("/employee/bill/new", h.page(nav.PathNewBill))
	r.POST("/employee/bill/new/file", h.UploadFile)
	r.POST("/employee/bill/new", h.SubmitBill)
	r.GET("/admin/dashboard", h.page(nav.PathDashboard))
	r.GET("/admin/bill", h.page(nav.PathAdminBill))
	r.GET("/files/:key/:name", h.GetFile)
}
