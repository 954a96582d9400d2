package entity

import "time"

// Item é a concessão do razão de estoque: não tem capacidade fixa,
// a capacidade disponível é alimentada pelas entradas.
type Item struct {
	ID        string
	Nome      string
	Descricao string
	Unidade   string
	CriadoEm  time.Time
}
