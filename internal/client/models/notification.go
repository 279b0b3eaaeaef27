package models

// Notification is a message addressed to a user.
type Notification struct {
	ID      int    `json:"id"`
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
}

// Unread keeps only the notifications with IsRead == false, preserving order.
func Unread(ns []Notification) []Notification {
	out := make([]Notification, 0, len(ns))
	for _, n := range ns {
		if !n.IsRead {
			out = append(out, n)
		}
	}
	return out
}
