package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ledgerone/backend/internal/application/usecase/csvimport"
	domainerror "github.com/ledgerone/backend/internal/domain/error"
	"github.com/ledgerone/backend/internal/integration/entrypoint/dto"
)

// ImportController handles CSV batch import endpoints.
type ImportController struct {
	importUseCase  *csvimport.ImportTransactionsUseCase
	maxUploadBytes int64
}

// NewImportController creates a new import controller instance.
func NewImportController(importUseCase *csvimport.ImportTransactionsUseCase, maxUploadBytes int64) *ImportController {
	return &ImportController{
		importUseCase:  importUseCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// ImportCSV handles POST /api/import/csv requests. The CSV file is expected
// as a multipart form field named "file".
func (c *ImportController) ImportCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Missing CSV file, upload it as multipart field 'file'",
			Code:  string(domainerror.ErrCodeMissingImportFile),
		})
		return
	}

	if c.maxUploadBytes > 0 && fileHeader.Size > c.maxUploadBytes {
		ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error: "CSV file exceeds the maximum upload size",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Failed to read uploaded file",
			Code:  string(domainerror.ErrCodeMissingImportFile),
		})
		return
	}
	defer file.Close()

	output, err := c.importUseCase.Execute(ctx.Request.Context(), csvimport.ImportTransactionsInput{
		Reader: file,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportCSVResponse(output))
}

// handleImportError maps import errors to HTTP responses. Schema level
// failures (missing header, missing required columns) reject the whole
// upload; row level failures never reach here.
func (c *ImportController) handleImportError(ctx *gin.Context, err error) {
	var impErr *domainerror.ImportError
	if errors.As(err, &impErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: impErr.Message,
			Code:  string(impErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
