package usecase

import "sync"

// Memo - запоминает последний результат вычисления для ключа зависимостей.
// Повторный вызов с тем же ключом не пересчитывает значение.
type Memo[K comparable, V any] struct {
	mu    sync.Mutex
	key   K
	value V
	set   bool
}

// Get возвращает значение для key, вычисляя его через compute при смене ключа
func (m *Memo[K, V]) Get(key K, compute func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.set && m.key == key {
		return m.value
	}
	m.value = compute()
	m.key = key
	m.set = true
	return m.value
}

// Reset сбрасывает запомненное значение
func (m *Memo[K, V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zeroK K
	var zeroV V
	m.key, m.value, m.set = zeroK, zeroV, false
}
