// Package session holds the logged-in user's session and the navigation
// targets screens move between.
package session

import (
	"errors"
	"time"
)

var ErrNoSession = errors.New("not logged in")

// Session is created at login or signup and dropped at logout. Screens get
// it by pointer; a nil Session means nobody is logged in.
type Session struct {
	UserID    int
	Email     string
	StartedAt time.Time
}

func New(userID int, email string, now time.Time) *Session {
	return &Session{UserID: userID, Email: email, StartedAt: now}
}

func (s *Session) Valid() bool {
	return s != nil && s.UserID > 0
}

// Require returns ErrNoSession unless s is a valid session.
func Require(s *Session) error {
	if !s.Valid() {
		return ErrNoSession
	}
	return nil
}

type Route int

const (
	RouteNone Route = iota
	RouteLogin
	RouteSignup
	RouteCatalog
	RouteAddItem
	RouteProfile
	RouteEditProfile
	RouteNotifications
)

var routeNames = map[Route]string{
	RouteNone:          "none",
	RouteLogin:         "login",
	RouteSignup:        "signup",
	RouteCatalog:       "catalog",
	RouteAddItem:       "additem",
	RouteProfile:       "profile",
	RouteEditProfile:   "editprofile",
	RouteNotifications: "notifications",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

// RequiresSession is false only for the login and signup screens.
func (r Route) RequiresSession() bool {
	return r != RouteLogin && r != RouteSignup && r != RouteNone
}
