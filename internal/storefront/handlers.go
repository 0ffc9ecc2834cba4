package storefront

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ghaggin/storefront/internal/api"
	"github.com/ghaggin/storefront/internal/model"
	"github.com/ghaggin/storefront/internal/template"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type productCard struct {
	model.Product
	Image string
}

type productsPage struct {
	Products []productCard
}

type productPage struct {
	Product *model.Product
	Images  []string
}

type cartPage struct {
	Items   []cartLine
	Summary Summary
}

type profilePage struct {
	User      model.User
	Avatar    string
	Addresses []model.Address
}

type addressesPage struct {
	Addresses []model.Address
}

type confirmationPage struct {
	Address model.Address
	Items   []cartLine
	Summary Summary
}

type ordersPage struct {
	Tabs   []string
	Tab    string
	Orders []model.Order
}

type credentialsForm struct {
	Name  string
	Email string
}

// render writes a page for the current session. Render failures can only be
// logged, the status line is already out.
func (s *Storefront) render(w http.ResponseWriter, r *http.Request, status int, tmpl string, td *template.Data) {
	ctx := r.Context()
	td.Email = s.sessions.Email(ctx)
	if td.Flash == "" {
		td.Flash = s.sessions.PopFlash(ctx)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := template.Render(w, r, tmpl, td); err != nil {
		s.log.Error("error rendering template", zap.String("template", tmpl), zap.Error(err))
	}
}

// fetchFailed renders tmpl in its error state.
func (s *Storefront) fetchFailed(w http.ResponseWriter, r *http.Request, tmpl, title string, page any, err error, msg string) {
	s.log.Warn("error fetching "+title, zap.Error(err))

	status := http.StatusBadGateway
	if errors.Is(err, api.ErrNotFound) {
		status = http.StatusNotFound
	}
	s.render(w, r, status, tmpl, &template.Data{
		PageTitle: title,
		Error:     api.Message(err, msg),
		Page:      page,
	})
}

// back redirects to path after a form post, leaving msg for the next page.
func (s *Storefront) back(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		s.sessions.Flash(r.Context(), msg)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// notFound runs outside the session middleware, so it cannot use render.
func (s *Storefront) notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := template.Render(w, r, "error.html", &template.Data{PageTitle: "not found"}); err != nil {
		s.log.Error("error rendering template", zap.String("template", "error.html"), zap.Error(err))
	}
}

func (s *Storefront) cards(products []model.Product) []productCard {
	cards := make([]productCard, 0, len(products))
	for _, p := range products {
		card := productCard{Product: p}
		if len(p.Images) > 0 {
			card.Image = imageURL(s.client.BaseURL(), p.Images[0])
		}
		cards = append(cards, card)
	}
	return cards
}

func (s *Storefront) home(w http.ResponseWriter, r *http.Request) {
	products, err := s.client.Products(r.Context())
	if err != nil {
		s.fetchFailed(w, r, "home.html", "home", &productsPage{}, err, "Failed to load products")
		return
	}

	s.render(w, r, http.StatusOK, "home.html", &template.Data{
		PageTitle: "home",
		Page:      &productsPage{Products: s.cards(products)},
	})
}

func (s *Storefront) loginPage(w http.ResponseWriter, r *http.Request) {
	td := &template.Data{
		PageTitle: "login",
		Page:      &credentialsForm{},
	}
	if r.URL.Query().Get("registered") != "" {
		td.Flash = "Account created, please log in."
	}
	s.render(w, r, http.StatusOK, "login.html", td)
}

func (s *Storefront) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := &credentialsForm{Email: strings.TrimSpace(r.PostForm.Get("email"))}
	password := r.PostForm.Get("password")
	if form.Email == "" || password == "" {
		s.render(w, r, http.StatusBadRequest, "login.html", &template.Data{
			PageTitle: "login",
			Error:     "Email and password are required",
			Page:      form,
		})
		return
	}

	email, cookies, err := s.client.Login(ctx, form.Email, password)
	if err != nil {
		s.log.Info("login failed", zap.Error(err))
		s.render(w, r, http.StatusUnauthorized, "login.html", &template.Data{
			PageTitle: "login",
			Error:     api.Message(err, "Login failed"),
			Page:      form,
		})
		return
	}

	if err := s.sessions.RenewToken(ctx); err != nil {
		s.log.Error("error renewing session token", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := s.sessions.SetEmail(ctx, email); err != nil {
		s.log.Error("error storing user", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	for _, c := range cookies {
		http.SetCookie(w, localCookie(c))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Storefront) signupPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "signup.html", &template.Data{
		PageTitle: "signup",
		Page:      &credentialsForm{},
	})
}

func (s *Storefront) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	form := &credentialsForm{
		Name:  strings.TrimSpace(r.PostForm.Get("name")),
		Email: strings.TrimSpace(r.PostForm.Get("email")),
	}
	password := r.PostForm.Get("password")
	if form.Name == "" || form.Email == "" || password == "" {
		s.render(w, r, http.StatusBadRequest, "signup.html", &template.Data{
			PageTitle: "signup",
			Error:     "Name, email and password are required",
			Page:      form,
		})
		return
	}

	if err := s.client.Signup(r.Context(), form.Name, form.Email, password); err != nil {
		s.log.Info("signup failed", zap.Error(err))
		s.render(w, r, http.StatusBadRequest, "signup.html", &template.Data{
			PageTitle: "signup",
			Error:     api.Message(err, "Signup failed"),
			Page:      form,
		})
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}

func (s *Storefront) product(w http.ResponseWriter, r *http.Request) {
	p, err := s.client.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fetchFailed(w, r, "product.html", "product", &productPage{}, err, "Failed to load product")
		return
	}

	images := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, imageURL(s.client.BaseURL(), img))
	}

	s.render(w, r, http.StatusOK, "product.html", &template.Data{
		PageTitle: p.Name,
		Page:      &productPage{Product: p, Images: images},
	})
}

func (s *Storefront) addToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := s.client.AddToCart(ctx, s.sessions.Email(ctx), id, parseQuantity(r.PostForm.Get("quantity")))
	if err != nil {
		s.log.Warn("error adding to cart", zap.String("product", id), zap.Error(err))
		s.back(w, r, "/product/"+id, api.Message(err, "Error adding to cart"))
		return
	}
	s.back(w, r, "/product/"+id, "Added to cart")
}

func (s *Storefront) cart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	items, err := s.client.Cart(ctx, s.sessions.Email(ctx))
	if err != nil {
		s.fetchFailed(w, r, "cart.html", "cart", &cartPage{}, err, "Failed to load cart items")
		return
	}

	s.render(w, r, http.StatusOK, "cart.html", &template.Data{
		PageTitle: "cart",
		Page: &cartPage{
			Items:   s.cartLines(items),
			Summary: summarize(items),
		},
	})
}

func (s *Storefront) updateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	err := s.client.UpdateCartQuantity(ctx, s.sessions.Email(ctx), id, parseQuantity(r.PostForm.Get("quantity")))
	if err != nil {
		s.log.Warn("error updating quantity", zap.String("product", id), zap.Error(err))
		s.back(w, r, "/cart", api.Message(err, "Error updating quantity"))
		return
	}
	s.back(w, r, "/cart", "")
}

func (s *Storefront) removeFromCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := s.client.RemoveFromCart(ctx, s.sessions.Email(ctx), id); err != nil {
		s.log.Warn("error removing item", zap.String("product", id), zap.Error(err))
		s.back(w, r, "/cart", api.Message(err, "Error removing item"))
		return
	}
	s.back(w, r, "/cart", "")
}

func (s *Storefront) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.client.Profile(ctx, s.sessions.Email(ctx))
	if err != nil {
		s.fetchFailed(w, r, "profile.html", "profile", &profilePage{}, err, "Failed to load profile")
		return
	}

	s.render(w, r, http.StatusOK, "profile.html", &template.Data{
		PageTitle: "profile",
		Page: &profilePage{
			User:      p.User,
			Avatar:    imageURL(s.client.BaseURL(), p.User.AvatarURL),
			Addresses: p.Addresses,
		},
	})
}

func (s *Storefront) createAddressPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "create_address.html", &template.Data{
		PageTitle: "add address",
		Page:      &model.Address{},
	})
}

func (s *Storefront) createAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	addr := &model.Address{
		Country:     strings.TrimSpace(r.PostForm.Get("country")),
		City:        strings.TrimSpace(r.PostForm.Get("city")),
		Address1:    strings.TrimSpace(r.PostForm.Get("address1")),
		Address2:    strings.TrimSpace(r.PostForm.Get("address2")),
		ZipCode:     strings.TrimSpace(r.PostForm.Get("zipCode")),
		AddressType: strings.TrimSpace(r.PostForm.Get("addressType")),
	}

	msg := ""
	if addr.Country == "" || addr.City == "" || addr.Address1 == "" || addr.ZipCode == "" {
		msg = "Country, city, address and zip code are required"
	} else if err := s.client.AddAddress(ctx, s.sessions.Email(ctx), *addr); err != nil {
		s.log.Warn("error adding address", zap.Error(err))
		msg = api.Message(err, "Error adding address")
	}
	if msg != "" {
		s.render(w, r, http.StatusBadRequest, "create_address.html", &template.Data{
			PageTitle: "add address",
			Error:     msg,
			Page:      addr,
		})
		return
	}

	s.back(w, r, "/profile", "Address added")
}

func (s *Storefront) selectAddress(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := s.client.Profile(ctx, s.sessions.Email(ctx))
	if err != nil {
		s.fetchFailed(w, r, "select_address.html", "select address", &addressesPage{}, err, "Failed to load addresses")
		return
	}

	s.render(w, r, http.StatusOK, "select_address.html", &template.Data{
		PageTitle: "select address",
		Page:      &addressesPage{Addresses: p.Addresses},
	})
}

func (s *Storefront) orderConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	email := s.sessions.Email(ctx)

	addressID := r.URL.Query().Get("address")
	if addressID == "" {
		s.back(w, r, "/select-address", "Please select an address")
		return
	}

	p, err := s.client.Profile(ctx, email)
	if err != nil {
		s.fetchFailed(w, r, "order_confirmation.html", "order confirmation", &confirmationPage{}, err, "Failed to load addresses")
		return
	}

	var addr *model.Address
	for i := range p.Addresses {
		if p.Addresses[i].ID == addressID {
			addr = &p.Addresses[i]
			break
		}
	}
	if addr == nil {
		s.back(w, r, "/select-address", "Please select an address")
		return
	}

	items, err := s.client.Cart(ctx, email)
	if err != nil {
		s.fetchFailed(w, r, "order_confirmation.html", "order confirmation", &confirmationPage{Address: *addr}, err, "Failed to load cart items")
		return
	}

	s.render(w, r, http.StatusOK, "order_confirmation.html", &template.Data{
		PageTitle: "order confirmation",
		Page: &confirmationPage{
			Address: *addr,
			Items:   s.cartLines(items),
			Summary: summarize(items),
		},
	})
}

func (s *Storefront) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	addressID := r.PostForm.Get("address")
	if addressID == "" {
		s.back(w, r, "/select-address", "Please select an address")
		return
	}

	if err := s.client.PlaceOrder(ctx, s.sessions.Email(ctx), addressID); err != nil {
		s.log.Warn("error placing order", zap.Error(err))
		s.back(w, r, "/order-confirmation?address="+addressID, api.Message(err, "Error placing order"))
		return
	}
	s.back(w, r, "/myorders", "Order placed")
}

func (s *Storefront) myOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tab := normalizeTab(r.URL.Query().Get("tab"))
	page := &ordersPage{Tabs: orderTabs, Tab: tab}

	orders, err := s.client.Orders(ctx, s.sessions.Email(ctx))
	if err != nil {
		s.fetchFailed(w, r, "myorders.html", "my orders", page, err, "Error fetching orders")
		return
	}

	page.Orders = filterOrders(orders, tab)
	s.render(w, r, http.StatusOK, "myorders.html", &template.Data{
		PageTitle: "my orders",
		Page:      page,
	})
}

func (s *Storefront) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.client.CancelOrder(r.Context(), id); err != nil {
		s.log.Warn("error cancelling order", zap.String("order", id), zap.Error(err))
		s.back(w, r, "/myorders", api.Message(err, "Error cancelling order"))
		return
	}
	s.back(w, r, "/myorders", "Order cancelled")
}

func (s *Storefront) myProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := s.client.MyProducts(ctx, s.sessions.Email(ctx))
	if err != nil {
		s.fetchFailed(w, r, "my_products.html", "my products", &productsPage{}, err, "Failed to load products")
		return
	}

	s.render(w, r, http.StatusOK, "my_products.html", &template.Data{
		PageTitle: "my products",
		Page:      &productsPage{Products: s.cards(products)},
	})
}

func (s *Storefront) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.client.DeleteProduct(r.Context(), id); err != nil {
		s.log.Warn("error deleting product", zap.String("product", id), zap.Error(err))
		s.back(w, r, "/my-products", api.Message(err, "Error deleting product"))
		return
	}
	s.back(w, r, "/my-products", "Product deleted")
}
