package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound          = errors.New("recurso não encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflito com o estado atual")
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrUnknownStore      = errors.New("store desconhecida")
	ErrOffline           = errors.New("API remota indisponível")
)
