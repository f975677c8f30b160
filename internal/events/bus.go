// Package events implementa o pub/sub tipado em processo que substitui os
// eventos ad hoc de window (`pauloCell_dataUpdated`, `documentUpdated`, ...):
// assinantes recebem structs tipadas em vez de adivinhar nomes e payloads.
package events

import (
	"sync"
	"time"
)

// Type identifica o tipo do evento.
type Type string

const (
	DataUpdated     Type = "dataUpdated"     // qualquer mutação em uma store de entidades
	DocumentCreated Type = "documentCreated" // nota fiscal criada
	DocumentUpdated Type = "documentUpdated" // nota fiscal alterada
	DocumentsLoaded Type = "documentsLoaded" // listagem de notas recarregada
	TrashChanged    Type = "trashChanged"    // item movido, restaurado ou removido da lixeira
)

// Event payload entregue aos assinantes.
type Event struct {
	Type  Type
	Store string // store afetada, quando aplicável
	Key   string // chave afetada, quando aplicável
	At    time.Time
}

type subscriber struct {
	ch    chan Event
	types map[Type]bool // vazio = todos os tipos
}

// Bus barramento de eventos em processo.
// Publish nunca bloqueia: assinante com buffer cheio perde o evento.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
}

// NewBus constrói o barramento.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe registra um assinante para os tipos indicados (nenhum tipo = todos).
// Devolve o canal de eventos e a função de cancelamento da assinatura.
func (b *Bus) Subscribe(buffer int, types ...Type) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &subscriber{
		ch:    make(chan Event, buffer),
		types: make(map[Type]bool, len(types)),
	}
	for _, t := range types {
		sub.types[t] = true
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, unsubscribe
}

// Publish entrega o evento a todos os assinantes interessados, sem bloquear.
func (b *Bus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if len(sub.types) > 0 && !sub.types[ev.Type] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// assinante lento: evento descartado
		}
	}
}
