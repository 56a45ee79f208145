package api

import (
	"github.com/om-khorwal/NotesFlow/internal/config"
	"github.com/om-khorwal/NotesFlow/internal/database"
)

type Server struct {
	config *config.Config
	store  *database.Store
}

func NewServer(cfg *config.Config, store *database.Store) *Server {
	return &Server{
		config: cfg,
		store:  store,
	}
}
