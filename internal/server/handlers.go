package server

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lkoehler/ladeplan/constants"
	"github.com/lkoehler/ladeplan/internal/common"
	"github.com/lkoehler/ladeplan/internal/entity"
	"github.com/lkoehler/ladeplan/internal/plan"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type indexData struct {
	Error       string
	MaxUploadMB int64
}

func (s *Server) handleIndex(c *gin.Context) {
	s.renderIndex(c, http.StatusOK, "")
}

func (s *Server) renderIndex(c *gin.Context, status int, msg string) {
	c.HTML(status, "index.html", indexData{
		Error:       msg,
		MaxUploadMB: s.cfg.Upload.MaxUploadBytes >> 20,
	})
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.renderIndex(c, http.StatusBadRequest, "Bitte zuerst eine PDF-Datei hochladen.")
		return
	}
	if !constants.IsAllowedExt(filepath.Ext(fh.Filename)) {
		s.renderIndex(c, http.StatusBadRequest, "Nur PDF-Dateien werden unterstützt.")
		return
	}
	if fh.Size > s.cfg.Upload.MaxUploadBytes {
		s.renderIndex(c, http.StatusBadRequest, "Die Datei ist zu groß.")
		return
	}

	src, err := fh.Open()
	if err != nil {
		s.renderIndex(c, http.StatusInternalServerError, "Die Datei konnte nicht gelesen werden.")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		s.renderIndex(c, http.StatusInternalServerError, "Die Datei konnte nicht gelesen werden.")
		return
	}

	s.logger.Info("upload.received",
		"request_id", common.RequestIDFromContext(c.Request.Context()),
		"filename", fh.Filename,
		"size", fh.Size,
	)

	ctx, cancel := common.WithTimeout(c.Request.Context(), s.cfg.Upload.ParseTimeout)
	defer cancel()

	lp, err := s.processor.Process(ctx, fh.Filename, data)
	if err != nil {
		if errors.Is(err, common.ErrUnreadablePDF) {
			s.renderIndex(c, common.HTTPStatus(err),
				"Die PDF-Datei konnte nicht gelesen werden (beschädigt oder verschlüsselt?).")
			return
		}
		s.renderIndex(c, http.StatusInternalServerError, "Die Auswertung ist fehlgeschlagen.")
		return
	}

	id := s.store.Put(lp)
	c.Redirect(http.StatusSeeOther, "/plans/"+id.String())
}

// viewFilter wraps the plan filter with the membership helpers the
// templates need for checkbox state.
type viewFilter struct {
	plan.Filter
}

func (f viewFilter) HasTruckType(t string) bool {
	// no selection means everything is selected
	if len(f.TruckTypes) == 0 {
		return true
	}
	for _, v := range f.TruckTypes {
		if v == t {
			return true
		}
	}
	return false
}

func (f viewFilter) ExcludesInsert(t string) bool {
	for _, v := range f.ExcludeInserts {
		if v == t {
			return true
		}
	}
	return false
}

type planViewData struct {
	Plan      *entity.LoadingPlan
	Records   []entity.ComponentRecord
	Summaries []entity.TruckSummary
	Total     entity.TruckSummary
	Filter    viewFilter
	Query     string
	Error     string
}

func (s *Server) handlePlanView(c *gin.Context) {
	lp, ok := s.lookupPlan(c)
	if !ok {
		return
	}

	f, err := filterFromQuery(c)
	if err != nil {
		s.renderPlan(c, http.StatusBadRequest, lp, plan.Filter{}, err.Error())
		return
	}
	s.renderPlan(c, http.StatusOK, lp, f, "")
}

func (s *Server) renderPlan(c *gin.Context, status int, lp *entity.LoadingPlan, f plan.Filter, msg string) {
	visible := plan.Apply(lp, f)
	sums := plan.Summarize(visible, plan.BundleRecords(lp, f))

	c.HTML(status, "plan.html", planViewData{
		Plan:      lp,
		Records:   visible,
		Summaries: sums,
		Total:     plan.Total(sums),
		Filter:    viewFilter{Filter: f},
		Query:     c.Request.URL.RawQuery,
		Error:     msg,
	})
}

func (s *Server) handlePlanJSON(c *gin.Context) {
	lp, ok := s.lookupPlan(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	visible := plan.Apply(lp, f)
	sums := plan.Summarize(visible, plan.BundleRecords(lp, f))
	c.JSON(http.StatusOK, gin.H{
		"plan_id":  lp.ID,
		"filename": lp.Filename,
		"pages":    lp.Pages,
		"records":  visible,
		"summary":  sums,
		"total":    plan.Total(sums),
	})
}

func (s *Server) handleExport(c *gin.Context) {
	lp, ok := s.lookupPlan(c)
	if !ok {
		return
	}
	f, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	xlsx, err := s.exporter.ExportXLSX(c.Request.Context(), lp, f)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "plan_id", lp.ID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="Ladeplan_Auswertung.xlsx"`)
	c.Data(http.StatusOK, xlsxMIME, xlsx)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "plans": s.store.Len()})
}

// lookupPlan resolves the :id path param against the session store and
// writes the error response itself when the plan is gone.
func (s *Server) lookupPlan(c *gin.Context) (*entity.LoadingPlan, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "error.html", gin.H{"Message": "Ungültige Plan-ID."})
		c.Abort()
		return nil, false
	}
	lp, err := s.store.Get(id)
	if err != nil {
		c.HTML(common.HTTPStatus(err), "error.html", gin.H{
			"Message": "Plan nicht gefunden oder abgelaufen. Bitte die PDF erneut hochladen.",
		})
		c.Abort()
		return nil, false
	}
	return lp, true
}

// filterFromQuery builds the filter from the view's query parameters.
// Selections are stateless; every request recomputes the subset.
func filterFromQuery(c *gin.Context) (plan.Filter, error) {
	f := plan.Filter{
		TruckTypes:     c.QueryArray("truck_type"),
		TruckID:        c.Query("truck_id"),
		ExcludeInserts: c.QueryArray("exclude_insert"),
		IncludeBundles: c.Query("include_bundles") == "1",
	}
	// The filter form always submits filtered=1; arriving with it set but
	// no truck type checked means the user deselected everything.
	if c.Query("filtered") == "1" && len(f.TruckTypes) == 0 {
		return plan.Filter{}, errors.New("Bitte mindestens eine Pritschen-Bezeichnung auswählen.")
	}
	return f, nil
}
