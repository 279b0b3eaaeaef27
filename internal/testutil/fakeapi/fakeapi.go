// Package fakeapi is an in-process stand-in for the catalog REST API used by
// tests. It keeps users, products and notifications in memory, records every
// request and can be told to fail a route with a given status and body.
package fakeapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/catalog/internal/client/models"
	"github.com/dmitrijs2005/catalog/internal/common"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Route names, usable with Fail and Calls.
const (
	RouteListUsers         = "listUsers"
	RouteGetUser           = "getUser"
	RouteCreateUser        = "createUser"
	RouteUpdateUser        = "updateUser"
	RouteListProducts      = "listProducts"
	RouteGetProduct        = "getProduct"
	RouteCreateProduct     = "createProduct"
	RouteListNotifications = "listNotifications"
	RouteReadAll           = "readAllNotifications"
	RouteUpdateNotif       = "updateNotification"
	RouteDeleteNotif       = "deleteNotification"
)

// Request is what the fake saw for one call.
type Request struct {
	Route     string
	Method    string
	Path      string
	RequestID string
	Form      map[string]string
	FileName  string
	FileType  string
	FileData  []byte
	JSON      map[string]any
}

type failure struct {
	status int
	body   string
}

type Server struct {
	*httptest.Server

	mu            sync.Mutex
	users         []models.User
	products      []models.Product
	notifications []models.Notification
	requests      []Request
	failures      map[string]failure
}

// New starts a fake server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{failures: map[string]failure{}}
	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.record)

	r.HandleFunc("/users", s.listUsers).Methods(http.MethodGet).Name(RouteListUsers)
	r.HandleFunc("/users", s.createUser).Methods(http.MethodPost).Name(RouteCreateUser + "NoSlash")
	r.HandleFunc("/users/", s.createUser).Methods(http.MethodPost).Name(RouteCreateUser)
	r.HandleFunc("/users/{id:[0-9]+}", s.getUser).Methods(http.MethodGet).Name(RouteGetUser)
	r.HandleFunc("/users/{id:[0-9]+}", s.updateUser).Methods(http.MethodPut).Name(RouteUpdateUser)

	r.HandleFunc("/products/", s.listProducts).Methods(http.MethodGet).Name(RouteListProducts)
	r.HandleFunc("/products/{id:[0-9]+}", s.getProduct).Methods(http.MethodGet).Name(RouteGetProduct)
	r.HandleFunc("/users/{id:[0-9]+}/products/", s.createProduct).Methods(http.MethodPost).Name(RouteCreateProduct)

	r.HandleFunc("/users/{id:[0-9]+}/notifications/", s.listNotifications).Methods(http.MethodGet).Name(RouteListNotifications)
	r.HandleFunc("/users/{id:[0-9]+}/notifications/read_all", s.readAll).Methods(http.MethodPut).Name(RouteReadAll)
	r.HandleFunc("/users/{id:[0-9]+}/notifications/{nid:[0-9]+}", s.updateNotification).Methods(http.MethodPut).Name(RouteUpdateNotif)
	r.HandleFunc("/users/{id:[0-9]+}/notifications/{nid:[0-9]+}", s.deleteNotification).Methods(http.MethodDelete).Name(RouteDeleteNotif)
	return r
}

// AddUser stores u as is; the caller picks the id.
func (s *Server) AddUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = append(s.users, u)
}

func (s *Server) AddProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

func (s *Server) AddNotification(n models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, n)
}

// Fail makes every call to route answer status with body until Recover.
func (s *Server) Fail(route string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, body: body}
}

func (s *Server) Recover(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Calls counts recorded requests to route.
func (s *Server) Calls(route string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Route == route {
			n++
		}
	}
	return n
}

func (s *Server) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

func (s *Server) Notifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification(nil), s.notifications...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if route := mux.CurrentRoute(r); route != nil {
			name = route.GetName()
		}
		if name == RouteCreateUser+"NoSlash" {
			name = RouteCreateUser
		}

		rec := Request{
			Route:     name,
			Method:    r.Method,
			Path:      r.URL.Path,
			RequestID: r.Header.Get(common.RequestIDHeaderName),
		}

		if err := r.ParseMultipartForm(8 << 20); err == nil {
			rec.Form = map[string]string{}
			for k, v := range r.MultipartForm.Value {
				rec.Form[k] = v[0]
			}
			if fhs := r.MultipartForm.File["image"]; len(fhs) > 0 {
				rec.FileName = fhs[0].Filename
				rec.FileType = fhs[0].Header.Get("Content-Type")
				if f, err := fhs[0].Open(); err == nil {
					rec.FileData, _ = io.ReadAll(f)
					f.Close()
				}
			}
		} else if r.Header.Get("Content-Type") == "application/json" {
			_ = json.NewDecoder(r.Body).Decode(&rec.JSON)
		}

		s.mu.Lock()
		s.requests = append(s.requests, rec)
		f, failing := s.failures[name]
		s.mu.Unlock()

		if failing {
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}

		r = r.WithContext(withRecord(r.Context(), rec))
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": what + " not found"})
}

func pathID(r *http.Request, key string) int {
	id, _ := strconv.Atoi(mux.Vars(r)[key])
	return id
}

func (s *Server) uploadURL(r *http.Request) *string {
	rec := recordFrom(r.Context())
	if rec.FileName == "" {
		return nil
	}
	u := s.URL + "/uploads/" + uuid.NewString() + path.Ext(rec.FileName)
	return &u
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, nonNil(s.Users()))
}

func (s *Server) findUser(id int) (int, bool) {
	for i, u := range s.users {
		if u.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findUser(pathID(r, "id"))
	if !ok {
		notFound(w, "User")
		return
	}
	writeJSON(w, http.StatusOK, s.users[i])
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	form := recordFrom(r.Context()).Form
	for _, k := range []string{"name", "email", "cellphone", "password"} {
		if form[k] == "" {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []map[string]any{{"loc": []string{"body", k}, "msg": "Field required"}},
			})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := 1
	for _, u := range s.users {
		if u.ID >= id {
			id = u.ID + 1
		}
	}
	u := models.User{
		ID:        id,
		Name:      form["name"],
		Email:     form["email"],
		Cellphone: form["cellphone"],
		Password:  form["password"],
		Image:     s.uploadURL(r),
	}
	s.users = append(s.users, u)
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	form := recordFrom(r.Context()).Form

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findUser(pathID(r, "id"))
	if !ok {
		notFound(w, "User")
		return
	}
	u := &s.users[i]
	if v, ok := form["name"]; ok {
		u.Name = v
	}
	if v, ok := form["email"]; ok {
		u.Email = v
	}
	if v, ok := form["cellphone"]; ok {
		u.Cellphone = v
	}
	if img := s.uploadURL(r); img != nil {
		u.Image = img
	}
	writeJSON(w, http.StatusOK, *u)
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(s.products))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r, "id")
	for _, p := range s.products {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	notFound(w, "Product")
}

func (s *Server) createProduct(w http.ResponseWriter, r *http.Request) {
	form := recordFrom(r.Context()).Form
	price, err := strconv.ParseFloat(form["price"], 64)
	if form["name"] == "" || err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{"loc": []string{"body", "price"}, "msg": "Input should be a valid number"}},
		})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	userID := pathID(r, "id")
	if _, ok := s.findUser(userID); !ok {
		notFound(w, "User")
		return
	}
	p := models.Product{
		ID:     len(s.products) + 1,
		UserID: userID,
		Name:   form["name"],
		Price:  price,
		Image:  s.uploadURL(r),
	}
	if d, ok := form["description"]; ok {
		p.Description = &d
	}
	s.products = append(s.products, p)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := pathID(r, "id")
	if _, ok := s.findUser(userID); !ok {
		notFound(w, "User")
		return
	}
	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) readAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID := pathID(r, "id")
	if _, ok := s.findUser(userID); !ok {
		notFound(w, "User")
		return
	}
	changed := []models.Notification{}
	for i := range s.notifications {
		n := &s.notifications[i]
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			changed = append(changed, *n)
		}
	}
	writeJSON(w, http.StatusOK, changed)
}

func (s *Server) findNotification(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID := pathID(r, "id")
	if _, ok := s.findUser(userID); !ok {
		notFound(w, "User")
		return 0, false
	}
	nid := pathID(r, "nid")
	for i, n := range s.notifications {
		if n.ID == nid && n.UserID == userID {
			return i, true
		}
	}
	notFound(w, "Notification")
	return 0, false
}

func (s *Server) updateNotification(w http.ResponseWriter, r *http.Request) {
	body := recordFrom(r.Context()).JSON

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findNotification(w, r)
	if !ok {
		return
	}
	if v, ok := body["is_read"].(bool); ok {
		s.notifications[i].IsRead = v
	}
	writeJSON(w, http.StatusOK, s.notifications[i])
}

func (s *Server) deleteNotification(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.findNotification(w, r)
	if !ok {
		return
	}
	s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted successfully"})
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
