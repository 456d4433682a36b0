package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jask/worldinsights/internal/dataset"
	"github.com/jask/worldinsights/internal/nav"
	"github.com/jask/worldinsights/internal/view"
)

const defaultSearchLimit = 10

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to Opportunities API"})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}

func (s *Server) handleOpportunities(c *gin.Context) {
	minMatch, err := intQuery(c, "min_match", 0)
	if err != nil || minMatch < 0 || minMatch > 100 {
		badRequest(c, "min_match must be an integer between 0 and 100")
		return
	}
	all := s.world.Opportunities()
	out := make([]dataset.OpportunityRef, 0, len(all))
	for _, o := range all {
		if o.Match >= minMatch {
			out = append(out, o)
		}
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": out})
}

func (s *Server) handleRegions(c *gin.Context) {
	v := view.Render(s.world, nav.New(), view.DefaultFilters())
	c.JSON(http.StatusOK, gin.H{"regions": v.Regions})
}

func (s *Server) handleOverview(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"overview":        s.world.Overview(s.ui.MatchThreshold),
		"match_threshold": s.ui.MatchThreshold,
	})
}

// handleView renders the screen for ?path=Region/Country/Sector, with
// optional issue, severity and time parameters. Paths that do not resolve
// render as empty lists, the same as in the terminal UI.
func (s *Server) handleView(c *gin.Context) {
	st, err := nav.FromPath(nav.ParsePath(c.Query("path")))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if raw := c.Query("issue"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "issue must be an integer")
			return
		}
		st, err = nav.Reduce(s.world, st, nav.SelectIssue{ID: id})
		if err != nil {
			writeError(c, err)
			return
		}
	}
	f := view.DefaultFilters()
	if f.Severity, err = view.ParseSeverityFilter(c.Query("severity")); err != nil {
		badRequest(c, err.Error())
		return
	}
	if f.Time, err = view.ParseTimeFilter(c.Query("time")); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, view.Render(s.world, st, f))
}

func (s *Server) handleIssue(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "issue id must be an integer")
		return
	}
	is, ok := s.world.IssueByID(id)
	if !ok {
		writeError(c, fmt.Errorf("%w: %d", nav.ErrUnknownIssue, id))
		return
	}
	path, _ := s.world.PathOf(id)
	c.JSON(http.StatusOK, gin.H{"issue": is, "path": path})
}

func (s *Server) handleSearch(c *gin.Context) {
	limit, err := intQuery(c, "limit", defaultSearchLimit)
	if err != nil || limit < 0 {
		badRequest(c, "limit must be a non-negative integer")
		return
	}
	hits := s.world.Search(c.Query("q"), limit)
	if hits == nil {
		c.JSON(http.StatusOK, gin.H{"hits": []any{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hits": hits})
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, nav.ErrUnknownIssue):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
