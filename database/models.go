package database

// Task statuses accepted at write time. The CHECK constraint in the
// schema backs these up at the storage layer.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusDone       = "Done"
)

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusToDo || s == StatusInProgress || s == StatusDone
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// Password carries the bcrypt hash internally and never serializes.
	Password string `json:"-"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Deadline    string   `json:"deadline"`
	Tags        []string `json:"tags"`
	Completed   bool     `json:"completed"`
	Comments    string   `json:"comments"`
}

// DueTask is one row of the reminder query: a task joined with the name
// of its project. ProjectName is nil when the project has been deleted.
type DueTask struct {
	Title       string
	Description string
	Status      string
	Deadline    string
	ProjectName *string
}
