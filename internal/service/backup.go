package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"metagift-api/internal/docstore"
	"metagift-api/internal/logger"
)

// Backup copies every known document out of the store into a timestamped
// directory and prunes old backups. Failures are logged, never fatal.
type Backup struct {
	docs      docstore.Store
	dir       string
	retention time.Duration
}

// NewBackup creates a backup job writing under dir.
func NewBackup(docs docstore.Store, dir string, retention time.Duration) *Backup {
	return &Backup{docs: docs, dir: dir, retention: retention}
}

// Run performs one backup pass.
func (b *Backup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	target := filepath.Join(b.dir, "backup_"+time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(target, 0o755); err != nil {
		logger.Error("backup dir creation failed", zap.String("dir", target), zap.Error(err))
		return
	}

	saved := 0
	for _, name := range docstore.Names {
		data, err := b.docs.Get(ctx, name)
		if err != nil {
			logger.Error("backup read failed", zap.String("document", name), zap.Error(err))
			continue
		}
		if len(data) == 0 {
			continue
		}
		path := filepath.Join(target, name+".json")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Error("backup write failed", zap.String("document", name), zap.Error(err))
			continue
		}
		saved++
	}

	logger.Info("backup complete", zap.String("dir", target), zap.Int("documents", saved))
	b.cleanOld()
}

// cleanOld removes backup directories older than the retention window.
func (b *Backup) cleanOld() {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-b.retention)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "backup_") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(b.dir, entry.Name())
			if err := os.RemoveAll(path); err != nil {
				logger.Error("backup cleanup failed", zap.String("dir", path), zap.Error(err))
			}
		}
	}
}
