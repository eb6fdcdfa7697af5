package handlers

import (
	"errors"
	"filevault-backend/internal/files"
	"filevault-backend/internal/models"
	"filevault-backend/internal/response"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type FileHandler struct {
	fileService *files.FileService
}

func NewFileHandler(fileService *files.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// ListResponse represents one page of file records with paging totals
type ListResponse struct {
	Page       int         `json:"page"`
	ListSize   int         `json:"listSize"`
	TotalPages int         `json:"totalPages"`
	TotalRows  int64       `json:"totalRows"`
	Files      interface{} `json:"files"`
}

// Upload stores a new file from the multipart "file" field
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, "no file selected", fiber.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}
	defer src.Close()

	file, err := h.fileService.Upload(
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src,
		fileHeader.Size,
	)
	if err != nil {
		if errors.Is(err, files.ErrTooLarge) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		}
		log.Error().Err(err).Msg("Upload failed")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}

	return response.Success(c, file, "File uploaded successfully")
}

// Get returns the metadata record for one file
func (h *FileHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "invalid file id", fiber.StatusBadRequest)
	}

	file, err := h.fileService.Get(id)
	if err != nil {
		if errors.Is(err, files.ErrFileNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		}
		log.Error().Err(err).Msg("File lookup failed")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}

	return response.Success(c, file, "Success")
}

// List returns a page of file records; list_size and page default to 10 and 1
func (h *FileHandler) List(c *fiber.Ctx) error {
	listSize, err := strconv.Atoi(c.Query("list_size"))
	if err != nil || listSize < 1 {
		listSize = 10
	}
	if listSize > files.MaxListSize {
		listSize = files.MaxListSize
	}
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	fileList, totalRows, totalPages, err := h.fileService.List(page, listSize)
	if err != nil {
		log.Error().Err(err).Msg("File listing failed")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}

	if fileList == nil {
		fileList = []models.File{}
	}

	return response.Success(c, ListResponse{
		Page:       page,
		ListSize:   listSize,
		TotalPages: totalPages,
		TotalRows:  totalRows,
		Files:      fileList,
	}, "Success")
}

// Update replaces the stored blob and metadata of an existing file
func (h *FileHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "invalid file id", fiber.StatusBadRequest)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, "no file selected", fiber.StatusBadRequest)
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return response.Error(c, "internal server error", fiber.StatusInternalServerError)
	}
	defer src.Close()

	_, err = h.fileService.Update(
		id,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		src,
		fileHeader.Size,
	)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrFileNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound)
		case errors.Is(err, files.ErrTooLarge):
			return response.Error(c, err.Error(), fiber.StatusBadRequest)
		case errors.Is(err, files.ErrBlobMissing):
			return response.Error(c, err.Error(), fiber.StatusInternalServerError)
		default:
			log.Error().Err(err).Msg("File update failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return response.Success(c, nil, "File updated successfully")
}

// Delete removes the blob and then the metadata record
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "invalid file id", fiber.StatusBadRequest)
	}

	if err := h.fileService.Delete(id); err != nil {
		switch {
		case errors.Is(err, files.ErrFileNotFound), errors.Is(err, files.ErrBlobMissing):
			return response.Error(c, "file not found", fiber.StatusNotFound)
		default:
			log.Error().Err(err).Msg("File delete failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return response.Success(c, nil, "File deleted successfully")
}

// Download streams the blob back under its original filename
func (h *FileHandler) Download(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.Error(c, "invalid file id", fiber.StatusBadRequest)
	}

	path, originalName, err := h.fileService.Download(id)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrFileNotFound), errors.Is(err, files.ErrBlobMissing):
			return response.Error(c, "file not found", fiber.StatusNotFound)
		default:
			log.Error().Err(err).Msg("File download failed")
			return response.Error(c, "internal server error", fiber.StatusInternalServerError)
		}
	}

	return c.Download(path, originalName)
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
