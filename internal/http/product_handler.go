package http

import (
	"log/slog"
	"net/http"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/service"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/money"
	"github.com/HenriqueBragaMoreira/gesture-pro/pkg/validator"
)

// maxUploadMemory bounds the in-memory part of a multipart CSV upload.
const maxUploadMemory = 32 << 20

type ProductHandler struct {
	svc      service.ProductService
	validate validator.Validator
	logger   *slog.Logger
}

func NewProductHandler(svc service.ProductService, validate validator.Validator, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, validate: validate, logger: logger}
}

type createProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
	Price       string  `json:"price" validate:"required"`
	CategoryID  int64   `json:"category_id" validate:"required,gt=0"`
	Brand       *string `json:"brand"`
}

type categoryRefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type productResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	Price       float64             `json:"price"`
	Brand       *string             `json:"brand"`
	Category    categoryRefResponse `json:"category"`
}

type productsListResponse struct {
	Products []productResponse `json:"products"`
	Total    int64             `json:"totalProducts"`
}

type importResponse struct {
	Message      string             `json:"message"`
	CreatedCount int                `json:"created_count"`
	Created      []productResponse  `json:"created"`
	ParseErrors  []service.RowError `json:"parse_errors"`
	DBErrors     []service.RowError `json:"db_errors"`
}

func toProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Brand:       p.Brand,
		Category: categoryRefResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
		},
	}
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}
	if err := h.validate.Validate(req); err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	price, err := money.Parse(req.Price)
	if err != nil {
		respondError(h.logger, w, r, apperr.ErrValidation.WithMsg("invalid price: "+err.Error()))
		return
	}

	product, err := h.svc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		CategoryID:  req.CategoryID,
		Brand:       req.Brand,
	})
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	product, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)
	params := service.ListProductsParams{
		Offset:       offset,
		Limit:        limit,
		CategoryName: r.URL.Query().Get("category"),
	}

	products, total, err := h.svc.ListProducts(r.Context(), params)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res := productsListResponse{
		Products: make([]productResponse, 0, len(products)),
		Total:    total,
	}
	for _, p := range products {
		res.Products = append(res.Products, toProductResponse(p))
	}

	respondJSON(w, http.StatusOK, res)
}

// UploadCSV accepts a multipart form with a "file" part containing the
// product CSV and reports per-row results.
func (h *ProductHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondError(h.logger, w, r, apperr.ErrInvalidCSVFormat.WithMsg("request is not a valid multipart form"))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(h.logger, w, r, apperr.ErrInvalidCSVFormat.WithMsg(`missing "file" form field`))
		return
	}
	defer file.Close()

	report, err := h.svc.ImportCSV(r.Context(), file)
	if err != nil {
		respondError(h.logger, w, r, err)
		return
	}

	res := importResponse{
		Message:      "import finished",
		CreatedCount: len(report.Created),
		Created:      make([]productResponse, 0, len(report.Created)),
		ParseErrors:  report.ParseErrors,
		DBErrors:     report.DBErrors,
	}
	for _, p := range report.Created {
		res.Created = append(res.Created, toProductResponse(p))
	}
	if res.ParseErrors == nil {
		res.ParseErrors = []service.RowError{}
	}
	if res.DBErrors == nil {
		res.DBErrors = []service.RowError{}
	}

	respondJSON(w, http.StatusOK, res)
}
