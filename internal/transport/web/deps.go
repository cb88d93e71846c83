package web

import "github.com/Brian-Gachiri/secure-academic-notes/internal/domain"

// Repos — срез портов хранилища, нужный веб-слою.
type Repos struct {
	Users  domain.UsersRepo
	Notes  domain.NotesRepo
	Links  domain.ShareLinksRepo
	Access domain.AccessLogsRepo
}
