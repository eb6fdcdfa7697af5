// Package files implements the lifecycle of uploaded files: metadata rows in
// the database paired with blobs in the local store.
package files

import (
	"errors"
	"filevault-backend/internal/models"
	"filevault-backend/internal/repository"
	"filevault-backend/internal/storage"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrNoFile       = errors.New("no file selected")
	ErrTooLarge     = errors.New("file exceeds the size limit")
	ErrBlobMissing  = errors.New("stored file is missing from disk")
)

// MaxListSize caps the page size a caller may request.
const MaxListSize = 100

const uploadFieldName = "file"

type FileService struct {
	repo    *repository.FileRepository
	store   *storage.BlobStore
	maxSize int64
}

func NewFileService(repo *repository.FileRepository, store *storage.BlobStore, maxSize int64) *FileService {
	return &FileService{
		repo:    repo,
		store:   store,
		maxSize: maxSize,
	}
}

// Upload writes the blob and inserts its metadata row. The blob is removed
// again if the insert fails.
func (s *FileService) Upload(originalName, mimeType string, src io.Reader, size int64) (*models.File, error) {
	if size > s.maxSize {
		return nil, ErrTooLarge
	}

	storedName, written, err := s.store.Save(uploadFieldName, originalName, src)
	if err != nil {
		return nil, err
	}

	file := &models.File{
		OriginalName: originalName,
		StoredName:   storedName,
		Extension:    strings.ToLower(filepath.Ext(originalName)),
		MimeType:     mimeType,
		Size:         written,
	}

	if err := s.repo.Create(file); err != nil {
		if rmErr := s.store.Remove(storedName); rmErr != nil {
			log.Error().Err(rmErr).Str("blob", storedName).Msg("Failed to remove orphan blob")
		}
		return nil, err
	}

	return file, nil
}

// Get returns the metadata record for id.
func (s *FileService) Get(id uint) (*models.File, error) {
	file, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// List returns one page of records plus paging totals. Page and listSize fall
// back to 1 and 10; listSize is clamped to MaxListSize.
func (s *FileService) List(page, listSize int) ([]models.File, int64, int, error) {
	if page < 1 {
		page = 1
	}
	if listSize < 1 {
		listSize = 10
	}
	if listSize > MaxListSize {
		listSize = MaxListSize
	}

	offset := (page - 1) * listSize
	fileList, total, err := s.repo.List(listSize, offset)
	if err != nil {
		return nil, 0, 0, err
	}

	totalPages := int((total + int64(listSize) - 1) / int64(listSize))
	return fileList, total, totalPages, nil
}

// Update replaces the blob and metadata of an existing file. The old blob
// must still be on disk or the operation is refused. The new blob is written
// first, then the metadata row is swapped, and only then is the old blob
// removed, so the row never points at a missing blob.
func (s *FileService) Update(id uint, originalName, mimeType string, src io.Reader, size int64) (*models.File, error) {
	file, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	if size > s.maxSize {
		return nil, ErrTooLarge
	}

	oldStoredName := file.StoredName
	if !s.store.Exists(oldStoredName) {
		return nil, ErrBlobMissing
	}

	newStoredName, written, err := s.store.Save(uploadFieldName, originalName, src)
	if err != nil {
		return nil, err
	}

	file.OriginalName = originalName
	file.StoredName = newStoredName
	file.Extension = strings.ToLower(filepath.Ext(originalName))
	file.MimeType = mimeType
	file.Size = written

	if err := s.repo.Update(file); err != nil {
		if rmErr := s.store.Remove(newStoredName); rmErr != nil {
			log.Error().Err(rmErr).Str("blob", newStoredName).Msg("Failed to remove orphan blob")
		}
		return nil, err
	}

	if err := s.store.Remove(oldStoredName); err != nil {
		// Metadata already points at the new blob; the stale one is only
		// wasted space.
		log.Warn().Err(err).Str("blob", oldStoredName).Msg("Failed to remove replaced blob")
	}

	return file, nil
}

// Delete removes the blob and then the metadata row. A missing row or a
// missing blob both refuse the delete, so deleting the same id twice fails
// the second time.
func (s *FileService) Delete(id uint) error {
	file, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if file == nil {
		return ErrFileNotFound
	}

	if !s.store.Exists(file.StoredName) {
		return ErrBlobMissing
	}

	if err := s.store.Remove(file.StoredName); err != nil {
		return err
	}

	return s.repo.Delete(id)
}

// Download resolves id to the blob's on-disk path and the original filename
// to present to the caller.
func (s *FileService) Download(id uint) (string, string, error) {
	file, err := s.repo.GetByID(id)
	if err != nil {
		return "", "", err
	}
	if file == nil {
		return "", "", ErrFileNotFound
	}

	if !s.store.Exists(file.StoredName) {
		return "", "", ErrBlobMissing
	}

	return s.store.Path(file.StoredName), file.OriginalName, nil
}
