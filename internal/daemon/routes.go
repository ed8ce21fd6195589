package daemon

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/theirongolddev/staffplan/internal/document"
	"github.com/theirongolddev/staffplan/internal/model"
	"github.com/theirongolddev/staffplan/internal/projection"
)

const maxBodySize = 1 << 20 // 1 MB

// RegisterRoutes mounts the health check and the /v1 API on r.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok\n")
	})

	v1 := r.Group("/v1")
	v1.Use(s.authorize())
	v1.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.snapshotStatus(c.Request.Context()))
	})
	v1.GET("/events", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.recentEvents())
	})
	v1.GET("/stream", s.handleStream)

	v1.GET("/proposals", s.listProposals)
	v1.POST("/proposals", s.saveProposal)
	v1.GET("/proposals/:id", s.getProposal)
	v1.DELETE("/proposals/:id", s.deleteProposal)
	v1.GET("/proposals/:id/versions", s.listVersions)
	v1.GET("/proposals/:id/projection", s.projectStored)
	v1.POST("/projections", s.projectPosted)
}

type errorBody struct {
	Error string `json:"error"`
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorBody{Error: msg})
}

func (s *Service) authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.Token == "" {
			c.Next()
			return
		}
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.Token)) != 1 {
			abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Next()
	}
}

// storeError maps a store failure onto an HTTP response.
func (s *Service) storeError(c *gin.Context, err error) {
	if errors.Is(err, document.ErrNotFound) {
		abort(c, http.StatusNotFound, err.Error())
		return
	}
	s.recordError(err)
	abort(c, http.StatusInternalServerError, "store error")
}

func readProposal(c *gin.Context) (model.Proposal, bool) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abort(c, http.StatusRequestEntityTooLarge, fmt.Sprintf("body exceeds %d bytes", maxBodySize))
			return model.Proposal{}, false
		}
		abort(c, http.StatusBadRequest, "reading body: "+err.Error())
		return model.Proposal{}, false
	}
	p, err := document.Decode(data)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return model.Proposal{}, false
	}
	return p, true
}

func writeProposal(c *gin.Context, p model.Proposal) {
	data, err := document.Encode(p)
	if err != nil {
		abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Service) listProposals(c *gin.Context) {
	entries, err := s.store.List(c.Request.Context())
	if err != nil {
		s.storeError(c, err)
		return
	}
	if entries == nil {
		entries = []document.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Service) saveProposal(c *gin.Context) {
	p, ok := readProposal(c)
	if !ok {
		return
	}
	res, err := s.store.Save(c.Request.Context(), p)
	if err != nil {
		s.storeError(c, err)
		return
	}

	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	s.emit(EventSaved, res.ID, p.Title, res.Version)
	s.log.Info("proposal saved",
		slog.String("id", res.ID),
		slog.String("title", p.Title),
		slog.Int("version", res.Version),
	)

	c.JSON(http.StatusOK, res)
}

func (s *Service) getProposal(c *gin.Context) {
	p, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	writeProposal(c, p)
}

func (s *Service) deleteProposal(c *gin.Context) {
	id := c.Param("id")
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.storeError(c, err)
		return
	}
	s.emit(EventDeleted, id, "", 0)
	c.Status(http.StatusNoContent)
}

func (s *Service) listVersions(c *gin.Context) {
	versions, err := s.store.Versions(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, versions)
}

func (s *Service) project(c *gin.Context, p model.Proposal) {
	view := c.DefaultQuery("view", p.View)

	s.mu.Lock()
	s.projections++
	s.mu.Unlock()

	c.JSON(http.StatusOK, projection.Project(p.InputFor(view)))
}

func (s *Service) projectStored(c *gin.Context) {
	p, err := s.store.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.storeError(c, err)
		return
	}
	s.project(c, p)
}

func (s *Service) projectPosted(c *gin.Context) {
	p, ok := readProposal(c)
	if !ok {
		return
	}
	s.project(c, p)
}
