package usecase

import (
	"fmt"

	"github.com/listing-portal/internal/domain"
)

// ToggleFlag переключает один бит в агрегате группы. Остальные биты не меняются.
func ToggleFlag(stored, value int) (int, error) {
	if value <= 0 || value&(value-1) != 0 {
		return stored, fmt.Errorf("flag value %d is not a single bit", value)
	}
	if stored&value != 0 {
		return stored &^ value, nil
	}
	return stored | value, nil
}

// SelectedFlags - варианты, чей бит выставлен в агрегате
func SelectedFlags(stored int, options []domain.Option) []domain.Option {
	selected := make([]domain.Option, 0, len(options))
	for _, o := range options {
		if stored&o.ID != 0 {
			selected = append(selected, o)
		}
	}
	return selected
}
