package usecase

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/cfdi-pro/internal/domain"
	"github.com/tu-usuario/cfdi-pro/internal/domain/entity"
)

// Session es el estado de trabajo de un contribuyente: un lote por categoría,
// reemplazado entero en cada corrida. Todo vive en memoria y muere con la
// sesión.
type Session struct {
	ID        string
	CreadaEn  time.Time
	ultimoUso time.Time

	mu    sync.RWMutex
	lotes map[string]*ResultadoLote // por categoría
}

// GuardaLote reemplaza el lote de la categoría. El lote anterior de esa
// categoría se descarta completo.
func (s *Session) GuardaLote(res *ResultadoLote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lotes[res.Categoria] = res
}

// Lote devuelve el lote de la categoría, o nil si aún no se procesa.
func (s *Session) Lote(categoria string) *ResultadoLote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lotes[categoria]
}

// CadaLote invoca fn sobre cada lote existente, emitidos primero.
func (s *Session) CadaLote(fn func(*ResultadoLote)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cat := range []string{entity.CategoriaEmitidos, entity.CategoriaRecibidos} {
		if l, ok := s.lotes[cat]; ok {
			fn(l)
		}
	}
}

// Consolidado devuelve las filas de ambas categorías concatenadas, emitidos
// primero.
func (s *Session) Consolidado() *entity.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := &entity.Dataset{}
	for _, cat := range []string{entity.CategoriaEmitidos, entity.CategoriaRecibidos} {
		if l, ok := s.lotes[cat]; ok {
			out = out.Concat(l.Dataset)
		}
	}
	return out
}

// SessionStore administra sesiones en memoria con expiración por inactividad.
type SessionStore struct {
	mu       sync.RWMutex
	sesiones map[string]*Session
	ttl      time.Duration
}

// NewSessionStore crea el almacén. Un TTL de cero desactiva la expiración.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sesiones: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Crea registra una sesión nueva con identificador aleatorio.
func (st *SessionStore) Crea() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreadaEn:  time.Now(),
		ultimoUso: time.Now(),
		lotes:     make(map[string]*ResultadoLote),
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sesiones[s.ID] = s
	return s
}

// Obtiene devuelve la sesión y renueva su marca de uso. Las sesiones vencidas
// se tratan como inexistentes.
func (st *SessionStore) Obtiene(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sesiones[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if st.ttl > 0 && time.Since(s.ultimoUso) > st.ttl {
		delete(st.sesiones, id)
		return nil, domain.ErrNotFound
	}
	s.ultimoUso = time.Now()
	return s, nil
}

// Elimina descarta la sesión y todo su estado.
func (st *SessionStore) Elimina(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sesiones, id)
}

// Purga elimina las sesiones vencidas; devuelve cuántas se descartaron.
func (st *SessionStore) Purga() int {
	if st.ttl <= 0 {
		return 0
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	var n int
	for id, s := range st.sesiones {
		if time.Since(s.ultimoUso) > st.ttl {
			delete(st.sesiones, id)
			n++
		}
	}
	return n
}
