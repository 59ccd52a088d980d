package server

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"oncallconv/internal/converter"
	"oncallconv/internal/model"
	"oncallconv/internal/store"
)

// downloadPrefixes import file names per department, matching the
// names the schedulers expect to hand to the import system.
var downloadPrefixes = map[model.Department]string{
	model.DepartmentRadiology:  "RadCall_import",
	model.DepartmentCardiology: "OnCall_Import_Cardiology",
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleConvert accepts a department's schedule uploads, runs the
// conversion, records the run, and registers the output for download.
// POST /api/convert/:department
func (s *Server) handleConvert(c *gin.Context) {
	dept, ok := model.ParseDepartment(c.Param("department"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown department %q", c.Param("department"))})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no uploaded files found"})
		return
	}

	inputs := make([]converter.Input, 0, len(files))
	names := make([]string, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read upload %q", fh.Filename)})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read upload %q", fh.Filename)})
			return
		}
		inputs = append(inputs, converter.Input{Name: fh.Filename, Data: data})
		names = append(names, fh.Filename)
	}

	runID := uuid.New().String()
	result, err := converter.Convert(dept, inputs, s.tables)

	logEntry := store.ConversionLog{
		RunID:      runID,
		Department: string(dept),
		InputFiles: strings.Join(names, ", "),
	}

	if err != nil {
		kind := converter.ErrorKind(err)
		logEntry.Status = "error"
		logEntry.ErrorKind = kind
		logEntry.ErrorMessage = err.Error()
		if _, logErr := s.store.InsertConversionLog(logEntry); logErr != nil {
			s.logger.Error("failed to record conversion log", zap.Error(logErr))
		}

		s.logger.Warn("conversion failed",
			zap.String("runId", runID),
			zap.String("department", string(dept)),
			zap.String("kind", kind),
			zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"runId": runID,
			"kind":  kind,
			"error": err.Error(),
		})
		return
	}

	logEntry.Status = "ok"
	logEntry.Year = result.Year
	logEntry.Month = int(result.Month)
	logEntry.Records = result.Records
	logEntry.Warnings = result.Warnings
	if _, logErr := s.store.InsertConversionLog(logEntry); logErr != nil {
		s.logger.Error("failed to record conversion log", zap.Error(logErr))
	}

	token := s.downloads.put(result.CSV, result.Workbook, downloadPrefixes[dept])

	s.logger.Info("conversion completed",
		zap.String("runId", runID),
		zap.String("department", string(dept)),
		zap.Int("records", result.Records),
		zap.Int("warnings", len(result.Warnings)))

	c.JSON(http.StatusOK, gin.H{
		"runId":    runID,
		"token":    token,
		"records":  result.Records,
		"year":     result.Year,
		"month":    int(result.Month),
		"warnings": result.Warnings,
	})
}

// handleDownload streams a finished conversion output.
// GET /api/download/:token?format=csv|xlsx
func (s *Server) handleDownload(c *gin.Context) {
	item, ok := s.downloads.get(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or unknown"})
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", item.prefix))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", item.workbook)
	case "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", item.prefix))
		c.Data(http.StatusOK, "text/csv", item.csv)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or xlsx"})
	}
}

// handleConversions lists recent runs.
// GET /api/conversions?limit=N
func (s *Server) handleConversions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := s.store.ListConversionLogs(limit)
	if err != nil {
		s.logger.Error("failed to list conversion logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list conversions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"conversions": logs})
}
