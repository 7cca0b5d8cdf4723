package domain

// Task is an ephemeral to-do item held only in process memory.
type Task struct {
	ID          uint64  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TaskInput is the payload for creating a task.
type TaskInput struct {
	Title       string  `json:"title" validate:"notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// Validate checks the payload and returns the first violated rule.
func (in TaskInput) Validate() error {
	return validateStruct(in)
}

// TaskPatch is a partial update of a task. A nil field is left unchanged.
type TaskPatch struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	Completed   *bool   `json:"completed"`
}

// Validate checks only the fields that are present.
func (p TaskPatch) Validate() error {
	return validateStruct(p)
}

// Apply returns a copy of t with every present field of the patch applied.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		t.Description = &d
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
