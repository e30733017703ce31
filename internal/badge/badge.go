package badge

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"

	"visitor-reception/internal/config"
)

// Generator renders scannable badge codes for visitors. Each badge encodes
// the approval URL for one visitor record.
type Generator struct {
	dataDir string
	logger  *slog.Logger
}

func NewGenerator(dataDir string) *Generator {
	return &Generator{
		dataDir: dataDir,
		logger:  slog.With("component", "badge"),
	}
}

// Generate encodes approvalURL as a PNG QR image and writes it under the
// data directory. Returns the path of the written file.
func (g *Generator) Generate(visitorID int64, approvalURL string) (string, error) {
	png, err := qrcode.Encode(approvalURL, qrcode.Medium, config.QR_IMAGE_SIZE)
	if err != nil {
		return "", fmt.Errorf("failed to encode badge QR: %w", err)
	}

	dir := filepath.Join(g.dataDir, "qrcodes")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create badge directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("visitor_%d.png", visitorID))
	if err := os.WriteFile(path, png, 0644); err != nil {
		return "", fmt.Errorf("failed to write badge file: %w", err)
	}

	g.logger.Debug("Badge code written", "visitor_id", visitorID, "path", path)
	return path, nil
}
