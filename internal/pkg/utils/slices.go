package utils

import "fmt"

// Move - перемещение элемента с позиции from на позицию to (аналог arrayMove).
// Возвращает новый срез, исходный не меняется. Элементы между позициями
// сдвигаются на одну позицию, остальные остаются на месте.
func Move[T any](items []T, from, to int) ([]T, error) {
	if from < 0 || from >= len(items) || to < 0 || to >= len(items) {
		return nil, fmt.Errorf("move %d -> %d out of range [0, %d)", from, to, len(items))
	}

	result := make([]T, len(items))
	copy(result, items)
	if from == to {
		return result, nil
	}

	item := result[from]
	if from < to {
		copy(result[from:to], result[from+1:to+1])
	} else {
		copy(result[to+1:from+1], result[to:from])
	}
	result[to] = item
	return result, nil
}
