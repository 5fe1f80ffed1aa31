package storage

import (
	"errors"
	"fmt"
	"io/fs"
)

const (
	// BackupSuffix separates a key from its rotation number.
	BackupSuffix = ".bak"
	// MaxBackupCount is the number of backups kept per key.
	MaxBackupCount = 3
)

// BackupInfo describes one stored backup of a key.
type BackupInfo struct {
	Number int    // 1 is the most recent
	Key    string // backend key holding the copy
	Size   int
}

// BackupKey returns the backend key for backup n of name.
func (s *Store) BackupKey(name string, n int) string {
	return fmt.Sprintf("%s%s.%d", s.Key(name), BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 -> .bak.3, dropping the oldest.
func (s *Store) rotateBackups(name string) error {
	oldest := s.BackupKey(name, MaxBackupCount)
	if s.backend.Has(oldest) {
		if err := s.backend.Erase(oldest); err != nil {
			return fmt.Errorf("%w: erase %s: %v", ErrStorage, oldest, err)
		}
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		current := s.BackupKey(name, i)
		data, err := s.backend.Read(current)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: read %s: %v", ErrStorage, current, err)
		}
		if err := s.backend.Write(s.BackupKey(name, i+1), data); err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrStorage, s.BackupKey(name, i+1), err)
		}
		if err := s.backend.Erase(current); err != nil {
			return fmt.Errorf("%w: erase %s: %v", ErrStorage, current, err)
		}
	}
	return nil
}

// Backup copies the current value of name into .bak.1 after rotating older
// copies. A missing value is not an error and creates no backup.
func (s *Store) Backup(name string) error {
	data, err := s.backend.Read(s.Key(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", ErrStorage, s.Key(name), err)
	}

	if err := s.rotateBackups(name); err != nil {
		return err
	}

	key := s.BackupKey(name, 1)
	if err := s.backend.Write(key, data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, key, err)
	}
	s.logger.Debugw("backup created", "key", key)
	return nil
}

// Backups lists the stored backups of name, most recent first.
func (s *Store) Backups(name string) []BackupInfo {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		key := s.BackupKey(name, i)
		data, err := s.backend.Read(key)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Number: i, Key: key, Size: len(data)})
	}
	return backups
}

// Restore replaces the value of name with backup n. The current value is
// backed up first, so a restore can itself be undone.
func (s *Store) Restore(name string, n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	key := s.BackupKey(name, n)
	data, err := s.backend.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("backup %d of %s does not exist", n, name)
		}
		return fmt.Errorf("%w: read %s: %v", ErrStorage, key, err)
	}

	if err := s.Backup(name); err != nil {
		return err
	}
	return s.write(s.Key(name), data)
}
