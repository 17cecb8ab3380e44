package catalog

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("catalog: book not found")
	// ErrDuplicateID is returned when adding a book whose id is taken.
	ErrDuplicateID = errors.New("catalog: book id already exists")
)

// Catalog is an in-memory, insertion-ordered book collection that is safe
// for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	books []Book
}

// New returns a catalog holding a copy of books.
func New(books ...Book) *Catalog {
	return &Catalog{books: append([]Book(nil), books...)}
}

// List returns the first limit books, or all of them when limit is zero or
// exceeds the catalog size. limit must not be negative.
func (c *Catalog) List(limit int) []Book {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := len(c.books)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Book, n)
	copy(out, c.books[:n])
	return out
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.books)
}

// Get returns the book with id.
func (c *Catalog) Get(id uuid.UUID) (Book, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.books[i], nil
	}
	return Book{}, ErrNotFound
}

// Add appends b.
func (c *Catalog) Add(b Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(b.ID) >= 0 {
		return ErrDuplicateID
	}
	c.books = append(c.books, b)
	return nil
}

// Replace overwrites the book with id, keeping its position and id.
func (c *Catalog) Replace(id uuid.UUID, b Book) (Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return Book{}, ErrNotFound
	}
	b.ID = id
	c.books[i] = b
	return b, nil
}

// Delete removes the book with id.
func (c *Catalog) Delete(id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.books = append(c.books[:i], c.books[i+1:]...)
	return nil
}

// indexOf requires c.mu to be held.
func (c *Catalog) indexOf(id uuid.UUID) int {
	for i := range c.books {
		if c.books[i].ID == id {
			return i
		}
	}
	return -1
}
