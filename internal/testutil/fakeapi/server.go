// Package fakeapi provides an in-memory users API for tests. It follows the
// collection contract the console talks to and records every call it serves.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	domain "user-console/internal/domain/user"
)

// BasePath is the collection path served by the fake
const BasePath = "/api/v1/users"

// Failure is a canned response returned instead of the normal handler
type Failure struct {
	Status      int
	ContentType string
	Body        string
}

// Server is an httptest server backed by gin and an in-memory user list
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	users    []domain.User
	nextID   int64
	calls    map[string]int
	failures map[string][]Failure
}

// New starts a fake API seeded with users. It is closed when t finishes.
func New(t testing.TB, seed ...domain.User) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := &Server{
		nextID:   1,
		calls:    make(map[string]int),
		failures: make(map[string][]Failure),
	}
	for _, u := range seed {
		s.users = append(s.users, u)
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}

	s.Server = httptest.NewServer(s.router())
	t.Cleanup(s.Close)
	return s
}

// UsersURL returns the collection endpoint
func (s *Server) UsersURL() string {
	return s.Server.URL + BasePath
}

// Calls returns how many requests with method reached the collection
func (s *Server) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// TotalCalls returns how many requests reached the collection
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// Users returns a snapshot of the stored users in order
func (s *Server) Users() []domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.User, len(s.users))
	copy(out, s.users)
	return out
}

// FailNext queues a canned failure for the next request with method
func (s *Server) FailNext(method string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = append(s.failures[method], f)
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(s.record())

	users := r.Group(BasePath)
	{
		users.POST("", s.createUser)
		users.GET("", s.listUsers)
		users.GET("/:id", s.getUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}

	return r
}

// record counts the call and serves any queued failure for its method
func (s *Server) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method

		s.mu.Lock()
		s.calls[method]++
		var failure *Failure
		if queued := s.failures[method]; len(queued) > 0 {
			failure = &queued[0]
			s.failures[method] = queued[1:]
		}
		s.mu.Unlock()

		if failure != nil {
			c.Data(failure.Status, failure.ContentType, []byte(failure.Body))
			c.Abort()
			return
		}

		c.Next()
	}
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.Users())
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		c.JSON(http.StatusOK, s.users[i])
		return
	}
	c.String(http.StatusNotFound, "user not found")
}

func (s *Server) createUser(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}

	s.mu.Lock()
	u := domain.User{ID: s.nextID, Name: in.Name, Email: in.Email}
	s.nextID++
	s.users = append(s.users, u)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, u)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "user not found"})
		return
	}
	s.users[i].Name = in.Name
	s.users[i].Email = in.Email
	c.JSON(http.StatusOK, s.users[i])
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		c.String(http.StatusNotFound, "user not found")
		return
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	c.Status(http.StatusNoContent)
}

// indexOf must be called with s.mu held
func (s *Server) indexOf(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_id", "message": "User ID must be a valid number"})
		return 0, false
	}
	return id, true
}

func bindInput(c *gin.Context) (domain.Input, bool) {
	var in domain.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.String(http.StatusBadRequest, "invalid JSON: "+err.Error())
		return in, false
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" {
		c.String(http.StatusBadRequest, "name and email must not be empty")
		return in, false
	}
	return in, true
}
