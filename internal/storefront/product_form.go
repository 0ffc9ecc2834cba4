package storefront

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ghaggin/storefront/internal/api"
	"github.com/ghaggin/storefront/internal/model"
	"github.com/ghaggin/storefront/internal/template"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxUpload = 10 << 20

// productForm is the create/edit product form as typed by the seller.
type productForm struct {
	ID          string
	Name        string
	Description string
	Category    string
	Tags        string
	Price       string
	Stock       string
}

func formFromProduct(p *model.Product) *productForm {
	return &productForm{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Tags:        strings.Join(p.Tags, ", "),
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:       strconv.Itoa(p.Stock),
	}
}

// input converts the form for the backend. A non-empty message is the
// reason the form was rejected.
func (f *productForm) input() (api.ProductInput, string) {
	if f.Name == "" || f.Description == "" || f.Category == "" || f.Price == "" {
		return api.ProductInput{}, "Name, description, category and price are required"
	}

	price, err := strconv.ParseFloat(f.Price, 64)
	if err != nil || price < 0 {
		return api.ProductInput{}, "Price must be a number"
	}
	stock := 0
	if f.Stock != "" {
		stock, err = strconv.Atoi(f.Stock)
		if err != nil || stock < 0 {
			return api.ProductInput{}, "Stock must be a whole number"
		}
	}

	var tags []string
	for _, t := range strings.Split(f.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return api.ProductInput{
		Name:        f.Name,
		Description: f.Description,
		Category:    f.Category,
		Tags:        tags,
		Price:       price,
		Stock:       stock,
	}, ""
}

func (s *Storefront) createProductPage(w http.ResponseWriter, r *http.Request) {
	form := &productForm{}
	title := "create product"
	if id := chi.URLParam(r, "id"); id != "" {
		p, err := s.client.Product(r.Context(), id)
		if err != nil {
			s.fetchFailed(w, r, "create_product.html", "edit product", &productForm{ID: id}, err, "Failed to load product")
			return
		}
		form, title = formFromProduct(p), "edit product"
	}

	s.render(w, r, http.StatusOK, "create_product.html", &template.Data{
		PageTitle: title,
		Page:      form,
	})
}

func (s *Storefront) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := &productForm{
		ID:          chi.URLParam(r, "id"),
		Name:        strings.TrimSpace(r.PostForm.Get("name")),
		Description: strings.TrimSpace(r.PostForm.Get("description")),
		Category:    strings.TrimSpace(r.PostForm.Get("category")),
		Tags:        strings.TrimSpace(r.PostForm.Get("tags")),
		Price:       strings.TrimSpace(r.PostForm.Get("price")),
		Stock:       strings.TrimSpace(r.PostForm.Get("stock")),
	}
	title := "create product"
	if form.ID != "" {
		title = "edit product"
	}

	msg := s.saveProduct(r, form)
	if msg != "" {
		s.render(w, r, http.StatusBadRequest, "create_product.html", &template.Data{
			PageTitle: title,
			Error:     msg,
			Page:      form,
		})
		return
	}

	if form.ID == "" {
		s.back(w, r, "/my-products", "Product created")
		return
	}
	s.back(w, r, "/my-products", "Product updated")
}

// saveProduct sends the form to the backend, returning the message to show
// when it could not be saved.
func (s *Storefront) saveProduct(r *http.Request, form *productForm) string {
	ctx := r.Context()
	in, msg := form.input()
	if msg != "" {
		return msg
	}

	images, err := uploads(r)
	if err != nil {
		s.log.Warn("error reading product images", zap.Error(err))
		return "Error reading images"
	}
	in.Images = images

	email := s.sessions.Email(ctx)
	if form.ID == "" {
		err = s.client.CreateProduct(ctx, email, in)
	} else {
		err = s.client.UpdateProduct(ctx, form.ID, email, in)
	}
	if err != nil {
		s.log.Warn("error saving product", zap.String("product", form.ID), zap.Error(err))
		return api.Message(err, "Error saving product")
	}
	return ""
}

// uploads reads the image files of a parsed multipart request.
func uploads(r *http.Request) ([]api.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}

	var out []api.Upload
	for _, fh := range r.MultipartForm.File["images"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, api.Upload{Filename: fh.Filename, Data: data})
	}
	return out, nil
}
