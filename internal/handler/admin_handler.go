package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/masknetdesign/mercado-online/internal/admin"
	"github.com/masknetdesign/mercado-online/internal/model"

	"github.com/rs/zerolog"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 8 << 20

// AdminHandler handles operator-facing HTTP requests.
type AdminHandler struct {
	controller *admin.Controller
	sessions   *admin.Sessions
	logger     zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(controller *admin.Controller, sessions *admin.Sessions, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		controller: controller,
		sessions:   sessions,
		logger:     logger.With().Str("handler", "admin").Logger(),
	}
}

// Login handles POST /api/admin/login and issues a session token.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.controller.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	token := h.sessions.Create(*user)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/admin/logout. It revokes the presented session
// token and signs the operator out of the gateway.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		h.sessions.Revoke(strings.TrimSpace(token))
	}

	if err := h.controller.Logout(r.Context()); err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Products handles GET and POST on /api/admin/products.
func (h *AdminHandler) Products(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if err := h.controller.LoadProducts(r.Context()); err != nil {
			writeError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, h.controller.Products())
	case http.MethodPost:
		h.saveProduct(w, r, 0)
	default:
		methodNotAllowed(w)
	}
}

// Product handles PUT and delete-flow requests on /api/admin/products/{id}...
func (h *AdminHandler) Product(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")

	if idStr, ok := strings.CutSuffix(rest, "/delete-request"); ok {
		h.requestDelete(w, r, idStr)
		return
	}

	productID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		writeError(w, model.NewValidationError("ID de produto inválido"), h.logger)
		return
	}

	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	h.saveProduct(w, r, productID)
}

// saveProduct binds a product form, for create (id 0) or update. The form
// arrives either as JSON or as multipart/form-data with an optional "image"
// file part.
func (h *AdminHandler) saveProduct(w http.ResponseWriter, r *http.Request, id int64) {
	form, err := h.bindProductForm(r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	form.ID = id

	saved, err := h.controller.SaveProduct(r.Context(), form)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	status := http.StatusOK
	if id == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved)
}

func (h *AdminHandler) bindProductForm(r *http.Request) (admin.ProductForm, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var req struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			Price       string `json:"price"`
			Category    string `json:"category"`
		}
		if err := decodeJSON(r, &req); err != nil {
			return admin.ProductForm{}, err
		}
		return admin.ProductForm{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
		}, nil
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return admin.ProductForm{}, model.NewValidationError("Formulário multipart inválido")
	}

	form := admin.ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Category:    r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return form, nil
	}
	if err != nil {
		return admin.ProductForm{}, model.NewValidationError("Arquivo de imagem inválido")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return admin.ProductForm{}, model.NewValidationError("Falha ao ler o arquivo de imagem")
	}

	form.Image = &model.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	}
	return form, nil
}

func (h *AdminHandler) requestDelete(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, model.NewValidationError("ID de produto inválido"), h.logger)
		return
	}

	token, err := h.controller.RequestDelete(productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// ConfirmDelete handles POST /api/admin/products/delete-confirm.
func (h *AdminHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	removed, err := h.controller.ConfirmDelete(r.Context(), req.Token)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, removed)
}

// CancelDelete handles POST /api/admin/products/delete-cancel.
func (h *AdminHandler) CancelDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	h.controller.CancelDelete(req.Token)
	w.WriteHeader(http.StatusNoContent)
}

// Upload handles POST /api/admin/uploads: a standalone multipart image
// upload that returns the stored URL.
func (h *AdminHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, model.NewValidationError("Formulário multipart inválido"), h.logger)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, model.NewValidationError("Arquivo de imagem ausente"), h.logger)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, model.NewValidationError("Falha ao ler o arquivo de imagem"), h.logger)
		return
	}

	url, err := h.controller.UploadImage(r.Context(), model.ImageUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     content,
	})
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// WhatsAppSetting handles GET and PUT on /api/admin/settings/whatsapp.
func (h *AdminHandler) WhatsAppSetting(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]string{
			"number": h.controller.WhatsAppNumber(r.Context()),
		})
	case http.MethodPut:
		var req struct {
			Number string `json:"number"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err, h.logger)
			return
		}
		if err := h.controller.SaveWhatsAppNumber(r.Context(), req.Number); err != nil {
			writeError(w, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"number": req.Number})
	default:
		methodNotAllowed(w)
	}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	writeJSON(w, http.StatusOK, h.controller.Stats())
}

// Export handles GET /api/admin/export and streams the catalogue as CSV.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	out, err := h.controller.ExportCSV()
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="produtos.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(out)
}
