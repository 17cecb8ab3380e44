package todo

import "time"

// Todo is a task owned by a single user.
type Todo struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Priority    int       `gorm:"not null" json:"priority"`
	Complete    bool      `gorm:"not null" json:"complete"`
	OwnerID     int64     `gorm:"not null;index:idx_todos_owner_id" json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName pins the table created by the schema migrations.
func (Todo) TableName() string { return "todos" }

// Input is the create and update request body.
type Input struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Priority    int    `json:"priority" validate:"min=1,max=5"`
	Complete    bool   `json:"complete"`
}

func (in Input) apply(t *Todo) {
	t.Title = in.Title
	t.Description = in.Description
	t.Priority = in.Priority
	t.Complete = in.Complete
}
