package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"companion-llm/internal/domain"
)

var ErrReportNotFound = errors.New("chat report not found")

// FileChatReportStore guarda un reporte por sesion en <dir>/<session>.json.
// Escrituras concurrentes sobre la misma sesion: gana la ultima.
type FileChatReportStore struct {
	dir string
}

func NewFileChatReportStore(dir string) (*FileChatReportStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "reports"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create reports dir: %w", err)
	}
	return &FileChatReportStore{dir: dir}, nil
}

func (s *FileChatReportStore) Save(ctx context.Context, report domain.StoredChatReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, s.path(report.SessionID)); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

func (s *FileChatReportStore) GetBySessionID(ctx context.Context, sessionID string) (domain.StoredChatReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.StoredChatReport{}, err
	}
	data, err := os.ReadFile(s.path(sessionID))
	if errors.Is(err, os.ErrNotExist) {
		return domain.StoredChatReport{}, ErrReportNotFound
	}
	if err != nil {
		return domain.StoredChatReport{}, fmt.Errorf("read report: %w", err)
	}
	var report domain.StoredChatReport
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.StoredChatReport{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}

func (s *FileChatReportStore) path(sessionID string) string {
	return filepath.Join(s.dir, SanitizeSessionID(sessionID)+".json")
}

// SanitizeSessionID deja solo letras, digitos, '-' y '_' para usarlo como nombre de archivo.
// Si hubo que reemplazar caracteres agrega un sufijo con hash del id original,
// asi "a.b" y "a_b" no comparten archivo.
func SanitizeSessionID(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	var b strings.Builder
	changed := false
	for _, r := range sessionID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
			changed = true
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	if changed {
		sum := sha256.Sum256([]byte(sessionID))
		b.WriteString("-")
		b.WriteString(hex.EncodeToString(sum[:4]))
	}
	return b.String()
}
