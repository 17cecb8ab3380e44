package catalog

import "github.com/google/uuid"

// Book is a catalog entry.
type Book struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
}

// Summary is a book without its rating.
type Summary struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
}

// Summary returns the rating-free view of b.
func (b Book) Summary() Summary {
	return Summary{ID: b.ID, Title: b.Title, Author: b.Author, Description: b.Description}
}

// BookInput is the create and update request body. ID is optional on create.
type BookInput struct {
	ID          *uuid.UUID `json:"id"`
	Title       string     `json:"title" validate:"required,min=1,max=100"`
	Author      string     `json:"author" validate:"required,min=1,max=100"`
	Description string     `json:"description" validate:"required,min=1,max=1000"`
	Rating      int        `json:"rating" validate:"min=1,max=5"`
}

func (in BookInput) book(id uuid.UUID) Book {
	return Book{ID: id, Title: in.Title, Author: in.Author, Description: in.Description, Rating: in.Rating}
}

// Seed is the initial catalog content.
func Seed() []Book {
	const author = "Douglas Adams"
	return []Book{
		{
			ID:          uuid.MustParse("c2b2f7c3-2f3b-4b3a-8e7c-1a6b9c9d0b6a"),
			Title:       "The Hitchhiker's Guide to the Galaxy",
			Author:      author,
			Description: "The Hitchhiker's Guide to the Galaxy is a science fiction comedy series created by Douglas Adams.",
			Rating:      5,
		},
		{
			ID:          uuid.MustParse("c2b2f7c3-2f3b-4b3a-8e7c-1a6b9c9d0b6b"),
			Title:       "The Restaurant at the End of the Universe",
			Author:      author,
			Description: "The Restaurant at the End of the Universe is a science fiction comedy novel by Douglas Adams.",
			Rating:      5,
		},
		{
			ID:          uuid.MustParse("c2b2f7c3-2f3b-4b3a-8e7c-1a6b9c9d0b6c"),
			Title:       "Life, the Universe and Everything",
			Author:      author,
			Description: "Life, the Universe and Everything is a science fiction comedy novel by Douglas Adams.",
			Rating:      5,
		},
		{
			ID:          uuid.MustParse("c2b2f7c3-2f3b-4b3a-8e7c-1a6b9c9d0b6d"),
			Title:       "So Long, and Thanks for All the Fish",
			Author:      author,
			Description: "So Long, and Thanks for All the Fish is a science fiction comedy novel by Douglas Adams.",
			Rating:      5,
		},
	}
}
