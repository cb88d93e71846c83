package share

import (
	"log"

	"github.com/Brian-Gachiri/secure-academic-notes/internal/accesslog"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/domain"
	"github.com/Brian-Gachiri/secure-academic-notes/internal/sharelink"
)

type Handler struct {
	Log     *log.Logger
	Notes   domain.NotesRepo
	Links   *sharelink.Engine
	Storage domain.BlobStorage
	Access  *accesslog.Recorder
}
