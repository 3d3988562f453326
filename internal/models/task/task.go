package task

// MaxTextLength соответствует колонке task VARCHAR(256).
const MaxTextLength = 256

// Task - единственная сохраняемая сущность: свободный текст с номером, который выдаёт хранилище.
type Task struct {
	ID   int64  `json:"id" db:"id" gorm:"column:id;primaryKey"`
	Text string `json:"task" db:"task" gorm:"column:task;type:varchar(256);not null"`
}

func (Task) TableName() string {
	return "task"
}
