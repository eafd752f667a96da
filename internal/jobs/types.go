package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskResolveFavoriteName = "favorites:resolve_name"
	QueueFavorites          = "favorites"
)

type ResolveFavoriteNamePayload struct {
	ID int `json:"id"`
}

func NewResolveFavoriteNameTask(id int) (*asynq.Task, error) {
	payload, err := json.Marshal(ResolveFavoriteNamePayload{ID: id})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskResolveFavoriteName, payload), nil
}
