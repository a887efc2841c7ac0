package httpapi

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/dmitrijs2005/filekeeper/internal/server/filepolicy"
	"github.com/dmitrijs2005/filekeeper/internal/server/filestore"
	"github.com/dmitrijs2005/filekeeper/internal/server/models"
	"github.com/dmitrijs2005/filekeeper/internal/server/quota"
	"github.com/labstack/echo/v4"
)

type storageResponse struct {
	UsedBytes       int64   `json:"used_bytes"`
	MaxBytes        int64   `json:"max_bytes"`
	AvailableBytes  int64   `json:"available_bytes"`
	UsagePercentage float64 `json:"usage_percentage"`
	Used            string  `json:"used"`
	Max             string  `json:"max"`
	Full            bool    `json:"full"`
	Warning         bool    `json:"warning"`
}

func newStorageResponse(u quota.Usage) storageResponse {
	return storageResponse{
		UsedBytes:       u.UsedBytes,
		MaxBytes:        u.MaxBytes,
		AvailableBytes:  u.Available(),
		UsagePercentage: u.Percentage(),
		Used:            common.FormatFileSize(u.UsedBytes),
		Max:             common.FormatFileSize(u.MaxBytes),
		Full:            u.IsFull(),
		Warning:         u.IsWarning(),
	}
}

func (s *Server) storageInfo(c echo.Context) error {
	u, err := s.services.Files.Usage()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStorageResponse(u))
}

type fileResponse struct {
	models.StoredFile
	Size     string `json:"size_human"`
	Type     string `json:"type"`
	Preview  string `json:"preview"`
	Download string `json:"download_url"`
}

func newFileResponse(f models.StoredFile) fileResponse {
	return fileResponse{
		StoredFile: f,
		Size:       common.FormatFileSize(f.SizeBytes),
		Type:       filepolicy.DescribeType(f.Name),
		Preview:    string(filepolicy.PreviewKindOf(f.Name)),
		Download:   "/download/" + url.PathEscape(f.Name),
	}
}

func (s *Server) listFiles(c echo.Context) error {
	files, err := s.services.Files.List(c.Request().Context())
	if err != nil {
		return err
	}
	u, err := s.services.Files.Usage()
	if err != nil {
		return err
	}

	res := make([]fileResponse, 0, len(files))
	for _, f := range files {
		res = append(res, newFileResponse(f))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"files":   res,
		"storage": newStorageResponse(u),
	})
}

type uploadResult struct {
	Name   string        `json:"name"`
	OK     bool          `json:"ok"`
	File   *fileResponse `json:"file,omitempty"`
	Reason string        `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func (s *Server) uploadFiles(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errBadRequest
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		return errNoFiles
	}

	u, err := s.services.Files.Usage()
	if err != nil {
		return err
	}
	if u.IsFull() {
		return errStorageFull
	}

	uploads := make([]filestore.FileUpload, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			return errBadRequest
		}
		defer src.Close()
		uploads = append(uploads, toUpload(fh, src))
	}

	batch, err := s.services.Files.UploadBatch(c.Request().Context(), uploads)
	if err != nil {
		return err
	}

	results := make([]uploadResult, 0, len(batch.Items))
	for _, it := range batch.Items {
		r := uploadResult{Name: it.Name, OK: it.Err == nil}
		if it.Err != nil {
			var rej *filestore.RejectError
			if errors.As(it.Err, &rej) {
				r.Reason = rej.Reason
			}
			_, r.Error = statusFor(it.Err)
		} else {
			fr := newFileResponse(*it.File)
			r.File = &fr
		}
		results = append(results, r)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"uploaded": batch.Succeeded(),
		"results":  results,
		"storage":  newStorageResponse(batch.Usage),
	})
}

func toUpload(fh *multipart.FileHeader, src multipart.File) filestore.FileUpload {
	return filestore.FileUpload{Name: rawFilename(fh), Size: fh.Size, Body: src}
}

// rawFilename returns the filename exactly as the client sent it.
// FileHeader.Filename has directory components stripped, which would let
// "../x.txt" pass the name check as "x.txt".
func rawFilename(fh *multipart.FileHeader) string {
	_, params, err := mime.ParseMediaType(fh.Header.Get(echo.HeaderContentDisposition))
	if err == nil {
		if name, ok := params["filename"]; ok {
			return name
		}
	}
	return fh.Filename
}

func (s *Server) downloadFile(c echo.Context) error {
	f, info, err := s.services.Files.Open(c.Param("name"))
	if err != nil {
		return err
	}
	defer f.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": info.Name})
	c.Response().Header().Set(echo.HeaderContentDisposition, disposition)
	http.ServeContent(c.Response(), c.Request(), info.Name, info.ModifiedAt, f)
	return nil
}

type previewResponse struct {
	fileResponse
	Content   string `json:"content,omitempty"`
	Encoding  string `json:"encoding,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

func (s *Server) previewFile(c echo.Context) error {
	name := c.Param("name")
	info, err := s.services.Files.Stat(name)
	if err != nil {
		return err
	}

	res := previewResponse{fileResponse: newFileResponse(info)}
	if filepolicy.PreviewKindOf(name) == filepolicy.PreviewText {
		text, err := s.services.Files.ReadPreviewText(name)
		if err != nil {
			return err
		}
		res.Content = text.Content
		res.Encoding = text.Encoding
		res.Truncated = text.Truncated
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) deleteFile(c echo.Context) error {
	deleted, err := s.services.Files.Delete(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": deleted})
}

type deleteFilesRequest struct {
	Filenames []string `json:"filenames"`
}

func (s *Server) deleteFiles(c echo.Context) error {
	var req deleteFilesRequest
	if err := c.Bind(&req); err != nil {
		return errBadRequest
	}

	n, err := s.services.Files.DeleteBatch(c.Request().Context(), req.Filenames)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "deleted_count": n})
}
