// Package models defines the client-side view of catalog API resources.
package models

// User is a registered account as returned by the API.
type User struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Cellphone string  `json:"cellphone"`
	Password  string  `json:"password"`
	Image     *string `json:"image"`
}

// ImageURL returns the profile image reference or "".
func (u User) ImageURL() string {
	if u.Image == nil {
		return ""
	}
	return *u.Image
}

// UserFields is the signup / edit-profile form payload.
// On update, empty fields are left unchanged by the server.
type UserFields struct {
	Name      string
	Email     string
	Cellphone string
	Password  string
}

// Form returns the non-empty fields as multipart form values.
func (f UserFields) Form() map[string]string {
	form := make(map[string]string, 4)
	put(form, "name", f.Name)
	put(form, "email", f.Email)
	put(form, "cellphone", f.Cellphone)
	put(form, "password", f.Password)
	return form
}

func put(form map[string]string, key, value string) {
	if value != "" {
		form[key] = value
	}
}
