package routes

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"visitor-reception/internal/broadcast"
	"visitor-reception/internal/report"
	"visitor-reception/internal/storage"
	"visitor-reception/internal/utils"
	"visitor-reception/internal/visitor"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// visitorResponse is a visitor record plus its derived status.
type visitorResponse struct {
	storage.Visitor
	Status string `json:"status"`
}

func toResponse(records []storage.Visitor) []visitorResponse {
	out := make([]visitorResponse, 0, len(records))
	for _, v := range records {
		out = append(out, visitorResponse{Visitor: v, Status: v.Status()})
	}
	return out
}

// Visitors wires the visitor lifecycle endpoints onto the router group.
func Visitors(r *gin.RouterGroup, manager *visitor.Manager, exporter *report.Exporter, broadcaster *broadcast.Broadcaster, dataDir string) {

	r.POST("", func(c *gin.Context) {
		reg := visitor.Registration{
			FullName:           c.PostForm("full_name"),
			ContactNumber:      c.PostForm("contact_number"),
			DepartmentVisiting: c.PostForm("department_visiting"),
			PersonToVisit:      c.PostForm("person_to_visit"),
			HostEmail:          c.PostForm("host_email"),
		}

		// Optional camera capture. Stored before registration so the record
		// can reference the file path.
		if file, err := c.FormFile("photo"); err == nil && file != nil {
			path, err := savePhoto(c, file, dataDir)
			if err != nil {
				slog.Error("Failed to store visitor photo", "error", err)
				AbortWithError(c, ErrInternalServer)
				return
			}
			reg.PhotoPath = path
		}

		id, err := manager.Register(c.Request.Context(), reg)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "success", "id": id})
	})

	r.GET("", func(c *gin.Context) {
		filter := storage.Filter(c.Query("status"))
		switch filter {
		case storage.FilterAll, storage.FilterActive, storage.FilterReleased, storage.FilterSecurityPending:
		default:
			AbortWithError(c, ErrInvalidFilter)
			return
		}

		records, err := manager.List(c.Request.Context(), filter)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"visitors": toResponse(records)})
	})

	r.GET("/stats", func(c *gin.Context) {
		stats, err := manager.Stats(c.Request.Context())
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	r.GET("/export", func(c *gin.Context) {
		period := report.Period(c.DefaultQuery("period", string(report.PeriodDay)))

		buf, filename, err := exporter.Export(c.Request.Context(), period)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	})

	r.GET("/updates", updatesHandler(broadcaster))

	r.GET("/:id/approve", func(c *gin.Context) {
		id, ok := visitorID(c)
		if !ok {
			return
		}

		record, err := manager.Approve(c.Request.Context(), id)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		HTML(c, http.StatusOK, "approve", gin.H{
			"Visitor":    record,
			"ReleaseURL": utils.UrlFor(c, fmt.Sprintf("/visitors/%d/release", record.ID)),
		})
	})

	r.POST("/:id/release", func(c *gin.Context) {
		id, ok := visitorID(c)
		if !ok {
			return
		}
		if err := manager.Release(c.Request.Context(), id); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	r.POST("/:id/security-checkout", func(c *gin.Context) {
		id, ok := visitorID(c)
		if !ok {
			return
		}
		if err := manager.ConfirmSecurity(c.Request.Context(), id); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
}

func visitorID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		AbortWithError(c, ErrInvalidVisitorID)
		return 0, false
	}
	return id, true
}

// savePhoto writes the uploaded photo under the data directory and returns
// its path. Filenames are timestamped to avoid collisions.
func savePhoto(c *gin.Context, file *multipart.FileHeader, dataDir string) (string, error) {
	dir := filepath.Join(dataDir, "photos")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("photo_%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(dir, name)

	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}
